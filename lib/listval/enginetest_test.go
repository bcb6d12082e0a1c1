package listval_test

import (
	"testing"

	"github.com/tesserakv/kvcore/lib/enginetest"
	"github.com/tesserakv/kvcore/lib/listval"
)

func TestListSuite(t *testing.T) {
	enginetest.RunListTests(t, "large-segments", func() *listval.List {
		return listval.New(listval.Options{MaxSegmentSize: 128})
	})

	enginetest.RunListTests(t, "single-element-segments", func() *listval.List {
		return listval.New(listval.Options{MaxSegmentSize: 1})
	})
}
