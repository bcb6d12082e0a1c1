package listval

// FindOptions controls Find's search: rank skips over that many
// matches before the first one returned (searching from the tail when
// negative), and count caps how many indices are returned (0 means
// "every remaining match").
type FindOptions struct {
	Rank  int
	Count int
	// MaxScan bounds how many elements are visited before giving up,
	// regardless of matches found. Zero means unbounded.
	MaxScan int
}

// Find returns the indices of elements for which match returns true,
// honoring FindOptions the way LPOS honors RANK/COUNT/MAXLEN.
func (l *List) Find(match func(Elem) bool, opts FindOptions) []int {
	rank := opts.Rank
	if rank == 0 {
		rank = 1
	}
	forward := rank > 0
	if rank < 0 {
		rank = -rank
	}

	var indices []int
	matched := 0
	scanned := 0

	visit := func(idx int, e Elem) bool {
		if match(e) {
			matched++
			if matched >= rank {
				indices = append(indices, idx)
				if opts.Count > 0 && len(indices) >= opts.Count {
					return false
				}
			}
		}
		scanned++
		if opts.MaxScan > 0 && scanned >= opts.MaxScan {
			return false
		}
		return true
	}

	if forward {
		idx := 0
		for e := l.segs.Front(); e != nil; e = e.Next() {
			seg := e.Value.(*segment)
			for _, el := range seg.elems {
				if !visit(idx, el) {
					return indices
				}
				idx++
			}
		}
	} else {
		idx := l.length - 1
		for e := l.segs.Back(); e != nil; e = e.Prev() {
			seg := e.Value.(*segment)
			for i := len(seg.elems) - 1; i >= 0; i-- {
				if !visit(idx, seg.elems[i]) {
					return indices
				}
				idx--
			}
		}
	}
	return indices
}

// Range calls fn for every element with index in [start, stop]
// inclusive (negative indices count from the tail), stopping early if
// fn returns false.
func (l *List) Range(start, stop int, fn func(index int, e Elem) bool) {
	if start < 0 {
		start += l.length
	}
	if stop < 0 {
		stop += l.length
	}
	if start < 0 {
		start = 0
	}
	if stop >= l.length {
		stop = l.length - 1
	}
	if start > stop {
		return
	}
	c, ok := l.Seek(start)
	if !ok {
		return
	}
	idx := start
	segEl, i := c.segEl, c.idx
	for idx <= stop {
		seg := segEl.Value.(*segment)
		if !fn(idx, seg.elems[i]) {
			return
		}
		idx++
		i++
		if i >= len(seg.elems) {
			segEl = segEl.Next()
			if segEl == nil {
				return
			}
			i = 0
		}
	}
}
