package keyspace

import (
	"time"

	"github.com/tesserakv/kvcore/lib/reclaim"
)

// LookupRead resolves key in database dbID for a read, expiring it
// first if its deadline has passed.
func (ks *Keyspace) LookupRead(dbID uint32, key string) (*Value, bool) {
	return ks.DB(dbID).lookupRead(key, nowNanos())
}

// LookupWrite resolves key in database dbID for a write, expiring it
// first if its deadline has passed.
func (ks *Keyspace) LookupWrite(dbID uint32, key string) (*Value, bool) {
	return ks.DB(dbID).lookupWrite(key, nowNanos())
}

// Add inserts val under key, failing with ErrKeyExists if key is
// already present (and not merely expired-but-unswept: LookupWrite or
// LookupRead should be used first if overwrite-on-expiry is desired).
func (ks *Keyspace) Add(dbID uint32, key string, val *Value) error {
	db := ks.DB(dbID)
	db.expireIfNeeded(key, nowNanos())
	if err := db.data.Add(key, val); err != nil {
		return ErrKeyExists
	}
	return nil
}

// Set inserts or overwrites key with val, clearing any expiry that
// applied to a previous value at the same key, matching the reference's
// practice of dropping a key's TTL on a plain overwrite.
func (ks *Keyspace) Set(dbID uint32, key string, val *Value) {
	db := ks.DB(dbID)
	db.data.Replace(key, val)
	_ = db.expires.Delete(key)
}

// Delete removes key synchronously, returning ErrNoSuchKey if it wasn't
// present (after lazy expiry).
func (ks *Keyspace) Delete(dbID uint32, key string) error {
	db := ks.DB(dbID)
	if _, ok := db.lookupWrite(key, nowNanos()); !ok {
		return ErrNoSuchKey
	}
	_ = db.data.Delete(key)
	_ = db.expires.Delete(key)
	return nil
}

// DeleteAsync unlinks key's value entry and any expiry entry, then
// estimates its reclamation effort (spec.md §4.E: element count for
// hashes, segment count for lists, one unit otherwise) and either frees
// it inline or hands it to the background reclaimer. It returns
// ErrNoSuchKey if key wasn't present.
func (ks *Keyspace) DeleteAsync(dbID uint32, key string) error {
	db := ks.DB(dbID)
	db.expireIfNeeded(key, nowNanos())
	val, err := db.data.Unlink(key)
	if err != nil {
		return ErrNoSuchKey
	}
	_ = db.expires.Delete(key)
	ks.reclaimer.Reclaim(estimateEffort(val), func() { freeValue(val) })
	return nil
}

// estimateEffort mirrors lazyfreeGetFreeEffort: hashes cost their field
// count, lists cost their segment count, everything else costs one
// unit.
func estimateEffort(val *Value) int {
	switch val.Kind {
	case KindHash:
		return reclaim.EstimateEffort(val.Hash.Len(), true)
	case KindList:
		return reclaim.EstimateEffort(val.List.SegmentCount(), true)
	default:
		return reclaim.EstimateEffort(0, false)
	}
}

// freeValue walks val's elements before it drops out of scope, mirroring
// the per-element work the reference does when it decrements refcounts
// on every field or list node during a free. Go's GC will reclaim the
// backing memory regardless; this only accounts for the effort estimate
// spent choosing between an inline and an async free.
func freeValue(val *Value) {
	switch val.Kind {
	case KindHash:
		val.Hash.ForEach(func(string, []byte) {})
	case KindList:
		for i := 0; i < val.List.Len(); i++ {
			val.List.Get(i)
		}
	}
}

// SetExpire sets key's expiry to at, independent of whether key
// currently exists.
func (ks *Keyspace) SetExpire(dbID uint32, key string, at time.Time) {
	ks.DB(dbID).expires.Replace(key, at.UnixNano())
}

// GetExpire returns key's configured expiry, if any.
func (ks *Keyspace) GetExpire(dbID uint32, key string) (time.Time, bool) {
	at, ok := ks.DB(dbID).expires.Get(key)
	if !ok {
		return time.Time{}, false
	}
	return time.Unix(0, at), true
}

// PersistExpire removes key's expiry without touching its value,
// reporting whether one was present.
func (ks *Keyspace) PersistExpire(dbID uint32, key string) bool {
	return ks.DB(dbID).expires.Delete(key) == nil
}

// Rename moves src's value (and, if present, its expiry) to dst,
// keeping dict and expires in lockstep the way spec.md §4.D requires
// ("On rename or overwrite, expires is updated in lockstep"). dst is
// overwritten if it already exists. It returns ErrNoSuchKey if src
// isn't present.
func (ks *Keyspace) Rename(dbID uint32, src, dst string) error {
	db := ks.DB(dbID)
	now := nowNanos()
	val, ok := db.lookupWrite(src, now)
	if !ok {
		return ErrNoSuchKey
	}

	db.data.Replace(dst, val)
	_ = db.expires.Delete(dst)
	if at, ok := db.expires.Get(src); ok {
		db.expires.Replace(dst, at)
	}

	_ = db.data.Delete(src)
	_ = db.expires.Delete(src)
	return nil
}

// Flush drops every key in database dbID, swapping in fresh empty maps
// and handing the old ones to the reclaimer along with their element
// count, matching spec.md §4.E's "dropping an entire database" case.
func (ks *Keyspace) Flush(dbID uint32) {
	db, ok := ks.dbs[dbID]
	if !ok {
		return
	}
	oldData, oldExpires := db.data, db.expires
	count := int(oldData.Len())
	fresh := newDB(dbID, ks.seed, ks.opts, ks.onDictResize)
	db.data = fresh.data
	db.expires = fresh.expires

	ks.reclaimer.Reclaim(reclaim.EstimateEffort(count, true), func() {
		oldData.Clear(nil)
		oldExpires.Clear(nil)
	})
}
