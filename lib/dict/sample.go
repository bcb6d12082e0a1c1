package dict

import "math/rand"

// RandomKey returns a uniformly-chosen key/value pair from the dict, or
// ok=false if the dict is empty. During a rehash it samples across both
// tables in proportion to their occupied range so that the choice
// remains uniform despite the two tables having different sizes.
func (d *Dict[K, V]) RandomKey(rng *rand.Rand) (key K, val V, ok bool) {
	if d.Len() == 0 {
		return key, val, false
	}
	if d.IsRehashing() {
		d.RehashStep(1)
	}

	var he *entry[K, V]
	if d.IsRehashing() {
		for he == nil {
			span := d.t0.size() + d.t1.size() - uint64(d.rehashIdx)
			h := uint64(d.rehashIdx) + rng.Uint64()%span
			if h >= d.t0.size() {
				he = d.t1.buckets[h-d.t0.size()]
			} else {
				he = d.t0.buckets[h]
			}
		}
	} else {
		for he == nil {
			h := rng.Uint64() & d.t0.mask
			he = d.t0.buckets[h]
		}
	}

	listLen := 0
	for e := he; e != nil; e = e.next {
		listLen++
	}
	pick := rng.Intn(listLen)
	for ; pick > 0; pick-- {
		he = he.next
	}
	return he.key, he.val, true
}

// Sample returns up to count entries
// drawn from scattered, mostly-contiguous regions of the table. Unlike
// RandomKey it makes no uniformity guarantee and may return duplicates
// or fewer than count entries; in exchange it is far cheaper per
// element, which suits statistics-gathering or approximate eviction
// scans rather than randomized algorithms that need a fair sample.
func (d *Dict[K, V]) Sample(rng *rand.Rand, count int) []KV[K, V] {
	size := d.Len()
	if uint64(count) > size {
		count = int(size)
	}
	if count == 0 {
		return nil
	}
	out := make([]KV[K, V], 0, count)

	maxSteps := count * 10
	for j := 0; j < count && d.IsRehashing(); j++ {
		d.RehashStep(1)
	}

	tables := 1
	if d.IsRehashing() {
		tables = 2
	}
	maxMask := d.t0.mask
	if tables > 1 && maxMask < d.t1.mask {
		maxMask = d.t1.mask
	}

	i := rng.Uint64() & maxMask
	emptyLen := 0
	for len(out) < count && maxSteps > 0 {
		maxSteps--
		for j := 0; j < tables; j++ {
			t := &d.t0
			if j == 1 {
				t = &d.t1
			}
			if tables == 2 && j == 0 && i < uint64(d.rehashIdx) {
				if i >= d.t1.size() {
					i = uint64(d.rehashIdx)
				}
				continue
			}
			if i >= t.size() {
				continue
			}
			he := t.buckets[i]
			if he == nil {
				emptyLen++
				if emptyLen >= 5 && emptyLen > count {
					i = rng.Uint64() & maxMask
					emptyLen = 0
				}
			} else {
				emptyLen = 0
				for he != nil {
					out = append(out, KV[K, V]{Key: he.key, Val: he.val})
					he = he.next
					if len(out) == count {
						return out
					}
				}
			}
		}
		i = (i + 1) & maxMask
	}
	return out
}

// KV is a key/value pair, used by Sample to report results without an
// intermediate iterator.
type KV[K any, V any] struct {
	Key K
	Val V
}
