package listval

import (
	"bytes"
	"testing"
)

func testOpts() Options {
	return Options{MaxSegmentSize: 4}
}

func collect(l *List) []string {
	var out []string
	l.Range(0, -1, func(_ int, e Elem) bool {
		out = append(out, string(e.Bytes()))
		return true
	})
	return out
}

func TestPushPopBothEnds(t *testing.T) {
	l := New(testOpts())
	l.PushTail(BytesElem([]byte("b")))
	l.PushTail(BytesElem([]byte("c")))
	l.PushHead(BytesElem([]byte("a")))

	if got := collect(l); !equalStrs(got, []string{"a", "b", "c"}) {
		t.Fatalf("got %v", got)
	}

	e, ok := l.PopHead()
	if !ok || string(e.Bytes()) != "a" {
		t.Fatalf("PopHead = %v, %v", e, ok)
	}
	e, ok = l.PopTail()
	if !ok || string(e.Bytes()) != "c" {
		t.Fatalf("PopTail = %v, %v", e, ok)
	}
	if l.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", l.Len())
	}
}

func TestPushManySplitsSegments(t *testing.T) {
	l := New(testOpts())
	const n = 50
	for i := 0; i < n; i++ {
		l.PushTail(IntElem(int64(i)))
	}
	if l.Len() != n {
		t.Fatalf("Len() = %d, want %d", l.Len(), n)
	}
	for i := 0; i < n; i++ {
		e, ok := l.Get(i)
		if !ok {
			t.Fatalf("Get(%d) missing", i)
		}
		v, isInt := e.Int()
		if !isInt || v != int64(i) {
			t.Fatalf("Get(%d) = %v, want int %d", i, e, i)
		}
	}
}

func TestNegativeIndex(t *testing.T) {
	l := New(testOpts())
	for _, s := range []string{"a", "b", "c"} {
		l.PushTail(BytesElem([]byte(s)))
	}
	e, ok := l.Get(-1)
	if !ok || string(e.Bytes()) != "c" {
		t.Fatalf("Get(-1) = %v, %v", e, ok)
	}
}

func TestInsertBeforeAfter(t *testing.T) {
	l := New(testOpts())
	l.PushTail(BytesElem([]byte("a")))
	l.PushTail(BytesElem([]byte("c")))

	c, ok := l.Seek(1)
	if !ok {
		t.Fatalf("Seek(1) failed")
	}
	l.InsertBefore(c, BytesElem([]byte("b")))
	if got := collect(l); !equalStrs(got, []string{"a", "b", "c"}) {
		t.Fatalf("after InsertBefore: %v", got)
	}

	c, _ = l.Seek(2)
	l.InsertAfter(c, BytesElem([]byte("d")))
	if got := collect(l); !equalStrs(got, []string{"a", "b", "c", "d"}) {
		t.Fatalf("after InsertAfter: %v", got)
	}
}

func TestDeleteAtAndRange(t *testing.T) {
	l := New(testOpts())
	for _, s := range []string{"a", "b", "c", "d", "e"} {
		l.PushTail(BytesElem([]byte(s)))
	}
	c, _ := l.Seek(1)
	l.DeleteAt(c)
	if got := collect(l); !equalStrs(got, []string{"a", "c", "d", "e"}) {
		t.Fatalf("after DeleteAt: %v", got)
	}

	removed := l.DeleteRange(1, 2)
	if removed != 2 {
		t.Fatalf("DeleteRange removed %d, want 2", removed)
	}
	if got := collect(l); !equalStrs(got, []string{"a", "e"}) {
		t.Fatalf("after DeleteRange: %v", got)
	}
}

func TestSet(t *testing.T) {
	l := New(testOpts())
	l.PushTail(BytesElem([]byte("a")))
	l.PushTail(BytesElem([]byte("b")))
	if !l.Set(1, BytesElem([]byte("x"))) {
		t.Fatalf("Set(1) failed")
	}
	if got := collect(l); !equalStrs(got, []string{"a", "x"}) {
		t.Fatalf("after Set: %v", got)
	}
	if l.Set(5, BytesElem([]byte("y"))) {
		t.Fatalf("Set(5) should fail out of range")
	}
}

func TestFindRankAndCount(t *testing.T) {
	l := New(testOpts())
	for _, s := range []string{"a", "b", "a", "c", "a"} {
		l.PushTail(BytesElem([]byte(s)))
	}
	matchA := func(e Elem) bool { return bytes.Equal(e.Bytes(), []byte("a")) }

	idxs := l.Find(matchA, FindOptions{Count: 0})
	if !equalInts(idxs, []int{0, 2, 4}) {
		t.Fatalf("Find all: %v", idxs)
	}

	idxs = l.Find(matchA, FindOptions{Rank: 2, Count: 1})
	if !equalInts(idxs, []int{2}) {
		t.Fatalf("Find rank 2: %v", idxs)
	}

	idxs = l.Find(matchA, FindOptions{Rank: -1, Count: 1})
	if !equalInts(idxs, []int{4}) {
		t.Fatalf("Find rank -1: %v", idxs)
	}
}

func equalStrs(a, b []string) bool {
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

func equalInts(a, b []int) bool {
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
