package enginetest

import (
	"fmt"
	"testing"

	"github.com/tesserakv/kvcore/lib/listval"
)

// ListFactory builds a fresh, empty List for one subtest.
type ListFactory func() *listval.List

// RunListTests runs a comprehensive test suite against a listval.List
// construction, so the same checks exercise every segment-size option
// a caller cares about (single-element segments force splits/merges on
// nearly every push/pop; large segments exercise the plain-slice path).
func RunListTests(t *testing.T, name string, factory ListFactory) {
	t.Run(name, func(t *testing.T) {
		t.Run("PushPopBothEnds", func(t *testing.T) { testListPushPopBothEnds(t, factory()) })
		t.Run("IndexedGetSet", func(t *testing.T) { testListIndexedGetSet(t, factory()) })
		t.Run("RangeAndDeleteRange", func(t *testing.T) { testListRangeAndDeleteRange(t, factory()) })
		t.Run("EdgeCases", func(t *testing.T) { testListEdgeCases(t, factory()) })
	})
}

func listValues(l *listval.List) []string {
	var out []string
	l.Range(0, -1, func(_ int, e listval.Elem) bool {
		out = append(out, string(e.Bytes()))
		return true
	})
	return out
}

func equalStrSlices(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func testListPushPopBothEnds(t *testing.T, l *listval.List) {
	l.PushTail(listval.BytesElem([]byte("b")))
	l.PushTail(listval.BytesElem([]byte("c")))
	l.PushHead(listval.BytesElem([]byte("a")))

	if got := listValues(l); !equalStrSlices(got, []string{"a", "b", "c"}) {
		t.Fatalf("got %v, want [a b c]", got)
	}
	if l.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", l.Len())
	}

	head, ok := l.PopHead()
	if !ok || string(head.Bytes()) != "a" {
		t.Fatalf("PopHead() = %q, %v", head.Bytes(), ok)
	}
	tail, ok := l.PopTail()
	if !ok || string(tail.Bytes()) != "c" {
		t.Fatalf("PopTail() = %q, %v", tail.Bytes(), ok)
	}
	if l.Len() != 1 {
		t.Fatalf("Len() after pops = %d, want 1", l.Len())
	}
}

func testListIndexedGetSet(t *testing.T, l *listval.List) {
	const n = 100
	for i := 0; i < n; i++ {
		l.PushTail(listval.BytesElem([]byte(fmt.Sprintf("v%d", i))))
	}

	for i := 0; i < n; i++ {
		e, ok := l.Get(i)
		if !ok || string(e.Bytes()) != fmt.Sprintf("v%d", i) {
			t.Fatalf("Get(%d) = %q, %v", i, e.Bytes(), ok)
		}
	}

	if ok := l.Set(0, listval.BytesElem([]byte("replaced"))); !ok {
		t.Fatalf("Set(0) should report true")
	}
	e, _ := l.Get(0)
	if string(e.Bytes()) != "replaced" {
		t.Fatalf("Get(0) after Set = %q", e.Bytes())
	}

	if ok := l.Set(n+5, listval.BytesElem([]byte("oob"))); ok {
		t.Fatalf("Set out of bounds should report false")
	}
}

func testListRangeAndDeleteRange(t *testing.T, l *listval.List) {
	for i := 0; i < 20; i++ {
		l.PushTail(listval.BytesElem([]byte(fmt.Sprintf("v%d", i))))
	}

	removed := l.DeleteRange(5, 9)
	if removed != 5 {
		t.Fatalf("DeleteRange(5,9) removed %d, want 5", removed)
	}
	if l.Len() != 15 {
		t.Fatalf("Len() after DeleteRange = %d, want 15", l.Len())
	}

	e, ok := l.Get(5)
	if !ok || string(e.Bytes()) != "v10" {
		t.Fatalf("Get(5) after DeleteRange = %q, %v, want v10", e.Bytes(), ok)
	}
}

func testListEdgeCases(t *testing.T, l *listval.List) {
	if _, ok := l.PopHead(); ok {
		t.Fatalf("PopHead on empty list should report ok=false")
	}
	if _, ok := l.PopTail(); ok {
		t.Fatalf("PopTail on empty list should report ok=false")
	}
	if _, ok := l.Get(0); ok {
		t.Fatalf("Get(0) on empty list should report ok=false")
	}
	if l.Len() != 0 {
		t.Fatalf("Len() on empty list = %d, want 0", l.Len())
	}
}
