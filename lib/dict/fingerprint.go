package dict

import "unsafe"

// fingerprint returns a 64 bit summary of the dict's table pointers and
// sizes, used to detect illegal mutation of a dict while an unsafe
// iterator is bound to it. Two fingerprints computed on the same table
// state are equal; any resize or rehash step changes at least one of
// the six values folded in and (with overwhelming probability) the
// fingerprint.
func (d *Dict[K, V]) fingerprint() int64 {
	var bucketsPtr [2]uintptr
	if len(d.t0.buckets) > 0 {
		bucketsPtr[0] = sliceAddr(d.t0.buckets)
	}
	if len(d.t1.buckets) > 0 {
		bucketsPtr[1] = sliceAddr(d.t1.buckets)
	}
	ints := [6]int64{
		int64(bucketsPtr[0]), int64(d.t0.size()), int64(d.t0.used),
		int64(bucketsPtr[1]), int64(d.t1.size()), int64(d.t1.used),
	}
	var hash int64
	for _, v := range ints {
		hash += v
		hash = wangHashInt64(hash)
	}
	return hash
}

// wangHashInt64 is Thomas Wang's 64 bit integer hash mix, used both for
// the fingerprint above and available to callers that need a decent
// integer hash for KeyDiscipline.Hash.
func wangHashInt64(key int64) int64 {
	hash := uint64(key)
	hash = (^hash) + (hash << 21)
	hash = hash ^ (hash >> 24)
	hash = (hash + (hash << 3)) + (hash << 8)
	hash = hash ^ (hash >> 14)
	hash = (hash + (hash << 2)) + (hash << 4)
	hash = hash ^ (hash >> 28)
	hash = hash + (hash << 31)
	return int64(hash)
}

// WangHash64 exposes the integer hash mix used internally for
// fingerprinting as a ready-made KeyDiscipline.Hash for uint64/int64
// keys.
func WangHash64(key uint64) uint64 {
	return uint64(wangHashInt64(int64(key)))
}

func sliceAddr[T any](s []T) uintptr {
	return uintptr(unsafe.Pointer(unsafe.SliceData(s)))
}
