package keyspace

import "github.com/tesserakv/kvcore/lib/dict"

// DB is one numbered database: a key→value map and a parallel
// key→expiry map that share the same key strings without either owning
// the other's lifetime beyond spec.md §4.D's "same SDS allocation
// referenced by dict (which owns it) and expires (non-owning)" — in Go
// this collapses to two independent string-keyed dicts kept in
// lockstep by the operations in ops.go.
type DB struct {
	id      uint32
	data    *dict.Dict[string, *Value]
	expires *dict.Dict[string, int64]
}

func newDB(id uint32, seed uint64, opts Options, onResize func()) *DB {
	dataDiscipline := dict.StringDiscipline[*Value](seed)
	dataDiscipline.OnResize = onResize
	dataDiscipline.CanResize = opts.CanResize
	dataDiscipline.ForceResizeRatio = opts.ForceResizeRatio
	expireDiscipline := dict.StringDiscipline[int64](seed)
	expireDiscipline.OnResize = onResize
	expireDiscipline.CanResize = opts.CanResize
	expireDiscipline.ForceResizeRatio = opts.ForceResizeRatio
	return &DB{
		id:      id,
		data:    dict.New(dataDiscipline),
		expires: dict.New(expireDiscipline),
	}
}

// expireIfNeeded removes key (from both maps) if it carries an expiry
// at or before nowNanos, reporting whether it did.
func (db *DB) expireIfNeeded(key string, nowNanos int64) bool {
	at, ok := db.expires.Get(key)
	if !ok || nowNanos < at {
		return false
	}
	_ = db.data.Delete(key)
	_ = db.expires.Delete(key)
	return true
}

// lookupRead resolves key for a read, applying lazy expiry first.
func (db *DB) lookupRead(key string, nowNanos int64) (*Value, bool) {
	if db.expireIfNeeded(key, nowNanos) {
		return nil, false
	}
	return db.data.Get(key)
}

// lookupWrite resolves key for a write, applying lazy expiry first. It
// is identical to lookupRead here; the reference distinguishes them for
// LRU/LFU bookkeeping the core engine doesn't carry.
func (db *DB) lookupWrite(key string, nowNanos int64) (*Value, bool) {
	return db.lookupRead(key, nowNanos)
}

// Len returns the number of live keys, not counting lazily-expired ones
// that haven't been touched by a read yet.
func (db *DB) Len() int { return int(db.data.Len()) }

// Scan performs one step of the cursor-based SCAN command, wrapping
// dict.Scan. It keeps visiting successive buckets until it has
// collected at least count keys or exhausted the table, matching the
// reference SCAN's "count is a hint, not a hard limit" behavior. A
// returned cursor of 0 means the scan is complete. Already-expired
// keys are skipped rather than lazily deleted, since Scan performs no
// writes.
func (db *DB) Scan(cursor uint64, count int) (keys []string, next uint64) {
	if count <= 0 {
		count = 10
	}
	now := nowNanos()
	for {
		next = db.data.Scan(cursor, func(k string, v *Value) {
			if at, ok := db.expires.Get(k); ok && now >= at {
				return
			}
			keys = append(keys, k)
		})
		cursor = next
		if cursor == 0 || len(keys) >= count {
			return keys, cursor
		}
	}
}
