package enginetest

import (
	"fmt"
	"testing"

	"github.com/tesserakv/kvcore/lib/dict"
)

// DictFactory builds a fresh, empty string-keyed dict for one subtest.
type DictFactory func() *dict.Dict[string, []byte]

// RunDictTests runs a comprehensive test suite against a dict.Dict
// construction, so the same checks exercise every KeyDiscipline/size
// combination a caller cares about (e.g. a small initial table versus
// one seeded to force an immediate rehash).
func RunDictTests(t *testing.T, name string, factory DictFactory) {
	t.Run(name, func(t *testing.T) {
		t.Run("AddGetDelete", func(t *testing.T) { testDictAddGetDelete(t, factory()) })
		t.Run("Replace", func(t *testing.T) { testDictReplace(t, factory()) })
		t.Run("ResizeAndRehash", func(t *testing.T) { testDictResizeAndRehash(t, factory()) })
		t.Run("ScanCoversAllKeys", func(t *testing.T) { testDictScanCoversAllKeys(t, factory()) })
		t.Run("EdgeCases", func(t *testing.T) { testDictEdgeCases(t, factory()) })
	})
}

func testDictAddGetDelete(t *testing.T, d *dict.Dict[string, []byte]) {
	if err := d.Add("k1", []byte("v1")); err != nil {
		t.Fatalf("Add(k1): %v", err)
	}
	if err := d.Add("k1", []byte("dup")); err != dict.ErrKeyExists {
		t.Fatalf("Add(k1) again: got %v, want ErrKeyExists", err)
	}
	val, ok := d.Get("k1")
	if !ok || string(val) != "v1" {
		t.Fatalf("Get(k1) = %q, %v", val, ok)
	}
	if err := d.Delete("missing"); err != dict.ErrKeyNotFound {
		t.Fatalf("Delete(missing): got %v, want ErrKeyNotFound", err)
	}
	if err := d.Delete("k1"); err != nil {
		t.Fatalf("Delete(k1): %v", err)
	}
	if d.Has("k1") {
		t.Fatalf("expected k1 gone after Delete")
	}
}

func testDictReplace(t *testing.T, d *dict.Dict[string, []byte]) {
	if added := d.Replace("k1", []byte("v1")); !added {
		t.Fatalf("Replace on missing key should report added=true")
	}
	if added := d.Replace("k1", []byte("v2")); added {
		t.Fatalf("Replace on existing key should report added=false")
	}
	val, ok := d.Get("k1")
	if !ok || string(val) != "v2" {
		t.Fatalf("Get(k1) after Replace = %q, %v", val, ok)
	}
}

func testDictResizeAndRehash(t *testing.T, d *dict.Dict[string, []byte]) {
	const n = 500
	for i := 0; i < n; i++ {
		key := fmt.Sprintf("key-%d", i)
		if err := d.Add(key, []byte(key)); err != nil {
			t.Fatalf("Add(%s): %v", key, err)
		}
	}

	// drive any in-progress rehash to completion
	for d.IsRehashing() {
		d.RehashStep(1)
	}

	if got := d.Len(); got != n {
		t.Fatalf("Len() = %d, want %d", got, n)
	}

	for i := 0; i < n; i++ {
		key := fmt.Sprintf("key-%d", i)
		val, ok := d.Get(key)
		if !ok || string(val) != key {
			t.Fatalf("Get(%s) after resize = %q, %v", key, val, ok)
		}
	}
}

func testDictScanCoversAllKeys(t *testing.T, d *dict.Dict[string, []byte]) {
	const n = 200
	want := make(map[string]bool, n)
	for i := 0; i < n; i++ {
		key := fmt.Sprintf("scan-%d", i)
		want[key] = true
		if err := d.Add(key, []byte(key)); err != nil {
			t.Fatalf("Add(%s): %v", key, err)
		}
	}

	seen := make(map[string]bool, n)
	cursor := uint64(0)
	for {
		cursor = d.Scan(cursor, func(key string, val []byte) {
			seen[key] = true
		})
		if cursor == 0 {
			break
		}
	}

	for key := range want {
		if !seen[key] {
			t.Errorf("Scan missed key %s", key)
		}
	}
}

func testDictEdgeCases(t *testing.T, d *dict.Dict[string, []byte]) {
	if _, ok := d.Get("nope"); ok {
		t.Fatalf("Get on empty dict should report ok=false")
	}
	if err := d.Add("", []byte("empty-key")); err != nil {
		t.Fatalf("Add(\"\"): %v", err)
	}
	if val, ok := d.Get(""); !ok || string(val) != "empty-key" {
		t.Fatalf("Get(\"\") = %q, %v", val, ok)
	}
	if val, err := d.Unlink(""); err != nil || string(val) != "empty-key" {
		t.Fatalf("Unlink(\"\") = %q, %v", val, err)
	}
}
