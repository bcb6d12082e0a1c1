package hashval

import (
	"bytes"
	"strings"
	"testing"
)

func testOptions() Options {
	return Options{MaxSmallEntries: 4, MaxSmallValue: 64}
}

func TestSmallFormBasics(t *testing.T) {
	h := New(testOptions(), 1)
	if added := h.Set("f1", []byte("v1")); !added {
		t.Fatalf("expected new field to report added")
	}
	if added := h.Set("f1", []byte("v1b")); added {
		t.Fatalf("expected overwrite to report added=false")
	}
	val, ok := h.Get("f1")
	if !ok || !bytes.Equal(val, []byte("v1b")) {
		t.Fatalf("Get(f1) = %q, %v", val, ok)
	}
	if h.EncodingKind() != EncodingSmall {
		t.Fatalf("expected small encoding, got %v", h.EncodingKind())
	}
	if h.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", h.Len())
	}
}

func TestPromoteOnEntryCount(t *testing.T) {
	h := New(testOptions(), 1)
	for i := 0; i < 4; i++ {
		h.Set(string(rune('a'+i)), []byte("v"))
	}
	if h.EncodingKind() != EncodingSmall {
		t.Fatalf("expected still small at threshold, got %v", h.EncodingKind())
	}
	h.Set("e", []byte("v"))
	if h.EncodingKind() != EncodingMap {
		t.Fatalf("expected promotion once entry count exceeds threshold")
	}
	if h.Len() != 5 {
		t.Fatalf("Len() = %d, want 5", h.Len())
	}
	for i, f := range []string{"a", "b", "c", "d", "e"} {
		v, ok := h.Get(f)
		if !ok || string(v) != "v" {
			t.Fatalf("field %d (%q) missing after promotion", i, f)
		}
	}
}

func TestPromoteOnLargeValue(t *testing.T) {
	h := New(testOptions(), 1)
	big := []byte(strings.Repeat("x", 100))
	h.Set("f", big)
	if h.EncodingKind() != EncodingMap {
		t.Fatalf("expected promotion on oversized value")
	}
	v, ok := h.Get("f")
	if !ok || !bytes.Equal(v, big) {
		t.Fatalf("value lost across promotion")
	}
}

func TestDeleteAndShrink(t *testing.T) {
	h := New(testOptions(), 1)
	for i := 0; i < 200; i++ {
		h.Set(string(rune(i)), []byte("v"))
	}
	if h.EncodingKind() != EncodingMap {
		t.Fatalf("expected map form after 200 fields")
	}
	for i := 0; i < 195; i++ {
		if !h.Delete(string(rune(i))) {
			t.Fatalf("Delete(%d) reported missing", i)
		}
	}
	if h.Len() != 5 {
		t.Fatalf("Len() = %d, want 5", h.Len())
	}
	if h.Delete("nonexistent") {
		t.Fatalf("Delete of missing field reported success")
	}
}

func TestForEachOrderSmallForm(t *testing.T) {
	h := New(testOptions(), 1)
	order := []string{"z", "a", "m"}
	for _, f := range order {
		h.Set(f, []byte(f))
	}
	var seen []string
	h.ForEach(func(field string, value []byte) { seen = append(seen, field) })
	if len(seen) != len(order) {
		t.Fatalf("ForEach visited %d fields, want %d", len(seen), len(order))
	}
	for i, f := range order {
		if seen[i] != f {
			t.Fatalf("small-form ForEach order mismatch at %d: got %q want %q", i, seen[i], f)
		}
	}
}
