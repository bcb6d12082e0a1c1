package keyspace

import (
	"github.com/tesserakv/kvcore/lib/blocking"
	"github.com/tesserakv/kvcore/lib/listval"
)

// Keyspace implements blocking.ListAccessor so lib/blocking never has
// to import (or know about) lib/listval or the Value tagged union — it
// only ever calls back through this narrow interface, per spec.md §9's
// "encapsulate each behind an explicit dependency passed into the
// engine at construction".
var _ blocking.ListAccessor = (*Keyspace)(nil)

// PopForBlocking implements blocking.ListAccessor.
func (ks *Keyspace) PopForBlocking(ref blocking.KeyRef, fromTail bool) (value []byte, remaining int, existedAsList bool) {
	db := ks.DB(ref.DB)
	val, ok := db.lookupWrite(ref.Key, nowNanos())
	if !ok || val.Kind != KindList {
		return nil, 0, false
	}

	var e listval.Elem
	if fromTail {
		e, ok = val.List.PopTail()
	} else {
		e, ok = val.List.PopHead()
	}
	if !ok {
		return nil, 0, false
	}

	remaining = val.List.Len()
	if remaining == 0 {
		_ = db.data.Delete(ref.Key)
		_ = db.expires.Delete(ref.Key)
	}
	return e.Bytes(), remaining, true
}

// PushToTarget implements blocking.ListAccessor: it pushes onto the
// atomic-move destination, creating it as an empty list if it doesn't
// exist yet, and reports ErrWrongType if it exists as something else.
func (ks *Keyspace) PushToTarget(ref blocking.KeyRef, value []byte) error {
	db := ks.DB(ref.DB)
	val, ok := db.lookupWrite(ref.Key, nowNanos())
	if !ok {
		val = NewListValue(ks.NewList())
		db.data.Replace(ref.Key, val)
	} else if val.Kind != KindList {
		return ErrWrongType
	}
	val.List.PushHead(listval.BytesElem(value))
	return nil
}

// PushFront implements blocking.ListAccessor's undo path: it restores a
// popped element to whichever end it came from, recreating the key as
// an empty list first if serveKey's pop had just deleted it.
func (ks *Keyspace) PushFront(ref blocking.KeyRef, value []byte, wasTail bool) {
	db := ks.DB(ref.DB)
	val, ok := db.lookupWrite(ref.Key, nowNanos())
	if !ok {
		val = NewListValue(ks.NewList())
		db.data.Replace(ref.Key, val)
	}
	if wasTail {
		val.List.PushTail(listval.BytesElem(value))
	} else {
		val.List.PushHead(listval.BytesElem(value))
	}
}

// DeleteIfEmpty implements blocking.ListAccessor.
func (ks *Keyspace) DeleteIfEmpty(ref blocking.KeyRef) {
	db := ks.DB(ref.DB)
	val, ok := db.data.Get(ref.Key)
	if ok && val.Kind == KindList && val.List.Len() == 0 {
		_ = db.data.Delete(ref.Key)
		_ = db.expires.Delete(ref.Key)
	}
}

// Push appends (fromTail=true) or prepends (fromTail=false) value onto
// the list at key, creating it if necessary, and signals any blocked
// waiters that the key is ready. It returns ErrWrongType if key holds a
// non-list value. This is the entry point ordinary RPUSH/LPUSH commands
// use, as opposed to the blocking.ListAccessor methods above which only
// the blocking manager calls.
func (ks *Keyspace) Push(dbID uint32, key string, value []byte, fromTail bool) (length int, err error) {
	db := ks.DB(dbID)
	val, ok := db.lookupWrite(key, nowNanos())
	if !ok {
		val = NewListValue(ks.NewList())
		db.data.Replace(key, val)
	} else if val.Kind != KindList {
		return 0, ErrWrongType
	}
	if fromTail {
		val.List.PushTail(listval.BytesElem(value))
	} else {
		val.List.PushHead(listval.BytesElem(value))
	}
	ks.blocking.SignalListAsReady(dbID, key)
	return val.List.Len(), nil
}
