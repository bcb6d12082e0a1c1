package listval

import "strconv"

// Elem is a single list element. Small integers are kept inline as an
// int64 so pushing a counter-like value never allocates a byte slice;
// everything else is stored as raw bytes.
type Elem struct {
	isInt bool
	i     int64
	b     []byte
}

// BytesElem wraps a byte slice as a list element.
func BytesElem(b []byte) Elem { return Elem{b: b} }

// IntElem wraps an integer as a list element, avoiding an allocation
// until (if ever) it is read back out as bytes.
func IntElem(v int64) Elem { return Elem{isInt: true, i: v} }

// Int returns the element's integer value, if it was stored as one.
func (e Elem) Int() (int64, bool) { return e.i, e.isInt }

// Bytes returns the element's value as bytes, formatting an inline
// integer on demand.
func (e Elem) Bytes() []byte {
	if e.isInt {
		return []byte(strconv.FormatInt(e.i, 10))
	}
	return e.b
}

func (e Elem) size() int {
	if e.isInt {
		return 8
	}
	return len(e.b)
}
