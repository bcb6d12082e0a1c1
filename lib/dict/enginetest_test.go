package dict_test

import (
	"testing"

	"github.com/tesserakv/kvcore/lib/dict"
	"github.com/tesserakv/kvcore/lib/enginetest"
)

func TestDictSuite(t *testing.T) {
	enginetest.RunDictTests(t, "default", func() *dict.Dict[string, []byte] {
		return dict.New(dict.StringDiscipline[[]byte](dict.RandomSeed()))
	})

	enginetest.RunDictTests(t, "can-resize", func() *dict.Dict[string, []byte] {
		disc := dict.StringDiscipline[[]byte](dict.RandomSeed())
		disc.CanResize = true
		return dict.New(disc)
	})
}
