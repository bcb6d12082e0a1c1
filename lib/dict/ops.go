package dict

// keyIndex returns the bucket index a key belongs in (in the table that
// new entries are currently inserted into), or -1 with existing set to
// the matching entry if the key is already present. It also drives
// expandIfNeeded, matching the reference's practice of growing the
// table lazily on the insert path rather than eagerly on every write.
func (d *Dict[K, V]) keyIndex(key K) (idx int, existing *entry[K, V]) {
	_ = d.expandIfNeeded()

	h := d.opts.Hash(key)
	for itable := 0; itable <= 1; itable++ {
		t := &d.t0
		if itable == 1 {
			t = &d.t1
		}
		i := h & t.mask
		for e := t.buckets[i]; e != nil; e = e.next {
			if d.opts.Equal(key, e.key) {
				return -1, e
			}
		}
		idx = int(i)
		if !d.IsRehashing() {
			break
		}
	}
	return idx, nil
}

// addRaw inserts an empty-valued entry for key and returns it, or
// returns nil and the pre-existing entry if the key is already present.
func (d *Dict[K, V]) addRaw(key K) (added *entry[K, V], existing *entry[K, V]) {
	if d.IsRehashing() {
		d.opportunisticRehashStep()
	}
	idx, existing := d.keyIndex(key)
	if idx == -1 {
		return nil, existing
	}
	t := d.activeTable()
	e := &entry[K, V]{key: key, next: t.buckets[idx]}
	t.buckets[idx] = e
	t.used++
	return e, nil
}

// Add inserts key/val, failing with ErrKeyExists if key is already
// present.
func (d *Dict[K, V]) Add(key K, val V) error {
	e, _ := d.addRaw(key)
	if e == nil {
		return ErrKeyExists
	}
	e.val = val
	return nil
}

// Replace inserts key/val, overwriting any existing value. It reports
// true if the key was newly added, false if an existing value was
// overwritten.
func (d *Dict[K, V]) Replace(key K, val V) (added bool) {
	e, existing := d.addRaw(key)
	if e != nil {
		e.val = val
		return true
	}
	old := existing.val
	existing.val = val
	if d.opts.OnKeyRemoved != nil {
		d.opts.OnKeyRemoved(existing.key, old)
	}
	return false
}

// find returns the entry for key, driving one opportunistic rehash step
// first the way every reference lookup does.
func (d *Dict[K, V]) find(key K) *entry[K, V] {
	if d.Len() == 0 {
		return nil
	}
	if d.IsRehashing() {
		d.opportunisticRehashStep()
	}
	h := d.opts.Hash(key)
	for itable := 0; itable <= 1; itable++ {
		t := &d.t0
		if itable == 1 {
			t = &d.t1
		}
		idx := h & t.mask
		for e := t.buckets[idx]; e != nil; e = e.next {
			if d.opts.Equal(key, e.key) {
				return e
			}
		}
		if !d.IsRehashing() {
			return nil
		}
	}
	return nil
}

// Get returns the value stored for key, if any.
func (d *Dict[K, V]) Get(key K) (val V, ok bool) {
	e := d.find(key)
	if e == nil {
		return val, false
	}
	return e.val, true
}

// Has reports whether key is present.
func (d *Dict[K, V]) Has(key K) bool { return d.find(key) != nil }

// genericDelete unlinks key from its bucket, optionally invoking
// OnKeyRemoved, and returns the unlinked entry or nil if key wasn't
// found.
func (d *Dict[K, V]) genericDelete(key K, notify bool) *entry[K, V] {
	if d.t0.used == 0 && d.t1.used == 0 {
		return nil
	}
	if d.IsRehashing() {
		d.opportunisticRehashStep()
	}
	h := d.opts.Hash(key)
	for itable := 0; itable <= 1; itable++ {
		t := &d.t0
		if itable == 1 {
			t = &d.t1
		}
		idx := h & t.mask
		var prev *entry[K, V]
		for e := t.buckets[idx]; e != nil; e = e.next {
			if d.opts.Equal(key, e.key) {
				if prev != nil {
					prev.next = e.next
				} else {
					t.buckets[idx] = e.next
				}
				t.used--
				if notify && d.opts.OnKeyRemoved != nil {
					d.opts.OnKeyRemoved(e.key, e.val)
				}
				return e
			}
			prev = e
		}
		if !d.IsRehashing() {
			break
		}
	}
	return nil
}

// Delete removes key, invoking OnKeyRemoved if set. It returns
// ErrKeyNotFound if key wasn't present.
func (d *Dict[K, V]) Delete(key K) error {
	if d.genericDelete(key, true) == nil {
		return ErrKeyNotFound
	}
	return nil
}

// Unlink removes key from the table without invoking OnKeyRemoved,
// returning the removed value so the caller can dispose of it in their
// own time (e.g. hand it to a lazy reclaimer). It returns
// ErrKeyNotFound if key wasn't present.
func (d *Dict[K, V]) Unlink(key K) (val V, err error) {
	e := d.genericDelete(key, false)
	if e == nil {
		return val, ErrKeyNotFound
	}
	return e.val, nil
}

// Clear empties the table, invoking callback (if non-nil) periodically
// so long-running clears can yield or report progress.
func (d *Dict[K, V]) Clear(callback func()) {
	clearTable(&d.t0, d.opts.OnKeyRemoved, callback)
	clearTable(&d.t1, d.opts.OnKeyRemoved, callback)
	d.rehashIdx = -1
	d.safeIterators = 0
}

func clearTable[K any, V any](t *table[K, V], onRemoved func(K, V), callback func()) {
	for i := 0; i < len(t.buckets) && t.used > 0; i++ {
		if callback != nil && i&65535 == 0 {
			callback()
		}
		for e := t.buckets[i]; e != nil; {
			next := e.next
			if onRemoved != nil {
				onRemoved(e.key, e.val)
			}
			t.used--
			e = next
		}
		t.buckets[i] = nil
	}
	*t = table[K, V]{}
}
