package listval

import "container/list"

// Options bounds how large a single segment is allowed to grow before
// a push or insert splits it.
type Options struct {
	// MaxSegmentSize is the maximum element count per segment. Zero
	// means unbounded by count.
	MaxSegmentSize int
	// MaxSegmentBytes is the maximum total element byte size per
	// segment. Zero means unbounded by size.
	MaxSegmentBytes int
	// CompressDepth is the number of segments at each end that are
	// exempt from mid-list compression. This implementation never
	// compresses segment payloads (see DESIGN.md); the field is kept
	// so callers can size lists the way the tunable intends, and a
	// later compressor has a well-defined depth to respect.
	CompressDepth int
}

// segment is one node of the list's backing chain.
type segment struct {
	elems []Elem
}

// List is a segmented sequence of elements with O(1) push/pop at
// either end. Not safe for concurrent use.
type List struct {
	opts   Options
	segs   *list.List
	length int
}

// New creates an empty list governed by opts.
func New(opts Options) *List {
	return &List{opts: opts, segs: list.New()}
}

// Len returns the number of elements in the list.
func (l *List) Len() int { return l.length }

// SegmentCount returns the number of backing segments, used by the lazy
// reclaimer's effort estimate (a list's free cost is proportional to
// segment count, not element count).
func (l *List) SegmentCount() int { return l.segs.Len() }

func (l *List) segFull(s *segment) bool {
	if l.opts.MaxSegmentSize > 0 && len(s.elems) >= l.opts.MaxSegmentSize {
		return true
	}
	if l.opts.MaxSegmentBytes > 0 {
		total := 0
		for _, e := range s.elems {
			total += e.size()
		}
		if total >= l.opts.MaxSegmentBytes {
			return true
		}
	}
	return false
}

// PushHead prepends e to the list.
func (l *List) PushHead(e Elem) {
	front := l.segs.Front()
	if front == nil || l.segFull(front.Value.(*segment)) {
		l.segs.PushFront(&segment{elems: []Elem{e}})
	} else {
		seg := front.Value.(*segment)
		seg.elems = append(seg.elems, Elem{})
		copy(seg.elems[1:], seg.elems)
		seg.elems[0] = e
	}
	l.length++
}

// PushTail appends e to the list.
func (l *List) PushTail(e Elem) {
	back := l.segs.Back()
	if back == nil || l.segFull(back.Value.(*segment)) {
		l.segs.PushBack(&segment{elems: []Elem{e}})
	} else {
		seg := back.Value.(*segment)
		seg.elems = append(seg.elems, e)
	}
	l.length++
}

// PopHead removes and returns the first element.
func (l *List) PopHead() (Elem, bool) {
	front := l.segs.Front()
	if front == nil {
		return Elem{}, false
	}
	seg := front.Value.(*segment)
	e := seg.elems[0]
	seg.elems = seg.elems[1:]
	if len(seg.elems) == 0 {
		l.segs.Remove(front)
	}
	l.length--
	return e, true
}

// PopTail removes and returns the last element.
func (l *List) PopTail() (Elem, bool) {
	back := l.segs.Back()
	if back == nil {
		return Elem{}, false
	}
	seg := back.Value.(*segment)
	n := len(seg.elems)
	e := seg.elems[n-1]
	seg.elems = seg.elems[:n-1]
	if len(seg.elems) == 0 {
		l.segs.Remove(back)
	}
	l.length--
	return e, true
}

func (l *List) normalizeIndex(i int) (int, bool) {
	if i < 0 {
		i += l.length
	}
	if i < 0 || i >= l.length {
		return 0, false
	}
	return i, true
}

// Cursor references a specific element's position within its owning
// segment, letting Insert/Delete splice at that spot without a fresh
// O(n) seek.
type Cursor struct {
	segEl *list.Element
	idx   int
}

// Seek locates the element at index (negative counts from the tail),
// returning a Cursor to it.
func (l *List) Seek(index int) (Cursor, bool) {
	idx, ok := l.normalizeIndex(index)
	if !ok {
		return Cursor{}, false
	}
	for e := l.segs.Front(); e != nil; e = e.Next() {
		seg := e.Value.(*segment)
		if idx < len(seg.elems) {
			return Cursor{segEl: e, idx: idx}, true
		}
		idx -= len(seg.elems)
	}
	return Cursor{}, false
}

// At dereferences a Cursor.
func (l *List) At(c Cursor) Elem {
	return c.segEl.Value.(*segment).elems[c.idx]
}

// Get returns the element at index.
func (l *List) Get(index int) (Elem, bool) {
	c, ok := l.Seek(index)
	if !ok {
		return Elem{}, false
	}
	return l.At(c), true
}

// Set replaces the element at index, reporting whether index was in
// range.
func (l *List) Set(index int, e Elem) bool {
	c, ok := l.Seek(index)
	if !ok {
		return false
	}
	c.segEl.Value.(*segment).elems[c.idx] = e
	return true
}

// InsertBefore splices e in immediately before the cursor's element.
func (l *List) InsertBefore(c Cursor, e Elem) {
	seg := c.segEl.Value.(*segment)
	seg.elems = append(seg.elems, Elem{})
	copy(seg.elems[c.idx+1:], seg.elems[c.idx:])
	seg.elems[c.idx] = e
	l.length++
	l.maybeSplit(c.segEl)
}

// InsertAfter splices e in immediately after the cursor's element.
func (l *List) InsertAfter(c Cursor, e Elem) {
	seg := c.segEl.Value.(*segment)
	at := c.idx + 1
	seg.elems = append(seg.elems, Elem{})
	copy(seg.elems[at+1:], seg.elems[at:])
	seg.elems[at] = e
	l.length++
	l.maybeSplit(c.segEl)
}

// maybeSplit halves an over-full segment, keeping later elements in a
// freshly inserted successor segment.
func (l *List) maybeSplit(segEl *list.Element) {
	seg := segEl.Value.(*segment)
	if l.opts.MaxSegmentSize <= 0 || len(seg.elems) <= l.opts.MaxSegmentSize {
		return
	}
	mid := len(seg.elems) / 2
	tail := append([]Elem(nil), seg.elems[mid:]...)
	seg.elems = seg.elems[:mid]
	l.segs.InsertAfter(&segment{elems: tail}, segEl)
}

// DeleteAt removes the element the cursor references.
func (l *List) DeleteAt(c Cursor) {
	seg := c.segEl.Value.(*segment)
	seg.elems = append(seg.elems[:c.idx], seg.elems[c.idx+1:]...)
	l.length--
	if len(seg.elems) == 0 {
		l.segs.Remove(c.segEl)
	}
}

// DeleteRange removes elements with index in [a, b] inclusive
// (negative indices count from the tail), returning the number
// removed.
func (l *List) DeleteRange(a, b int) int {
	if a < 0 {
		a += l.length
	}
	if b < 0 {
		b += l.length
	}
	if a < 0 {
		a = 0
	}
	if b >= l.length {
		b = l.length - 1
	}
	if a > b {
		return 0
	}
	removed := 0
	for i := a; i <= b; i++ {
		c, ok := l.Seek(a)
		if !ok {
			break
		}
		l.DeleteAt(c)
		removed++
		_ = i
	}
	return removed
}
