package enginetest

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/tesserakv/kvcore/lib/hashval"
)

// HashFactory builds a fresh, empty Hash for one subtest.
type HashFactory func() *hashval.Hash

// RunHashTests runs a comprehensive test suite against a hashval.Hash
// construction, so the same checks exercise both the compact small
// encoding and the promoted full-map encoding.
func RunHashTests(t *testing.T, name string, factory HashFactory) {
	t.Run(name, func(t *testing.T) {
		t.Run("SetGetDelete", func(t *testing.T) { testHashSetGetDelete(t, factory()) })
		t.Run("OverwriteReportsNotAdded", func(t *testing.T) { testHashOverwrite(t, factory()) })
		t.Run("ForEachCoversAllFields", func(t *testing.T) { testHashForEach(t, factory()) })
		t.Run("EdgeCases", func(t *testing.T) { testHashEdgeCases(t, factory()) })
	})
}

func testHashSetGetDelete(t *testing.T, h *hashval.Hash) {
	if added := h.Set("f1", []byte("v1")); !added {
		t.Fatalf("Set(f1) on a fresh hash should report added=true")
	}
	val, ok := h.Get("f1")
	if !ok || !bytes.Equal(val, []byte("v1")) {
		t.Fatalf("Get(f1) = %q, %v", val, ok)
	}
	if !h.Has("f1") {
		t.Fatalf("Has(f1) should be true after Set")
	}
	if !h.Delete("f1") {
		t.Fatalf("Delete(f1) should report true")
	}
	if h.Delete("f1") {
		t.Fatalf("Delete(f1) again should report false")
	}
}

func testHashOverwrite(t *testing.T, h *hashval.Hash) {
	h.Set("f1", []byte("v1"))
	if added := h.Set("f1", []byte("v2")); added {
		t.Fatalf("Set(f1) overwrite should report added=false")
	}
	val, _ := h.Get("f1")
	if !bytes.Equal(val, []byte("v2")) {
		t.Fatalf("Get(f1) after overwrite = %q", val)
	}
}

func testHashForEach(t *testing.T, h *hashval.Hash) {
	const n = 50
	want := make(map[string][]byte, n)
	for i := 0; i < n; i++ {
		field := fmt.Sprintf("f%d", i)
		val := []byte(fmt.Sprintf("v%d", i))
		want[field] = val
		h.Set(field, val)
	}

	seen := make(map[string][]byte, n)
	h.ForEach(func(field string, value []byte) {
		seen[field] = append([]byte(nil), value...)
	})

	if len(seen) != len(want) {
		t.Fatalf("ForEach visited %d fields, want %d", len(seen), len(want))
	}
	for field, val := range want {
		if !bytes.Equal(seen[field], val) {
			t.Errorf("ForEach field %s = %q, want %q", field, seen[field], val)
		}
	}
	if h.Len() != n {
		t.Fatalf("Len() = %d, want %d", h.Len(), n)
	}
}

func testHashEdgeCases(t *testing.T, h *hashval.Hash) {
	if _, ok := h.Get("nope"); ok {
		t.Fatalf("Get on empty hash should report ok=false")
	}
	if h.Delete("nope") {
		t.Fatalf("Delete on empty hash should report false")
	}
	h.Set("", []byte(""))
	if val, ok := h.Get(""); !ok || len(val) != 0 {
		t.Fatalf("Get(\"\") = %q, %v", val, ok)
	}
}
