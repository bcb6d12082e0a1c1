package engine

import (
	"sync"
	"time"

	"github.com/tesserakv/kvcore/lib/config"
	"github.com/tesserakv/kvcore/lib/keyspace"
	"github.com/tesserakv/kvcore/lib/listval"
)

// Engine owns a Keyspace and answers the fixed command set the demo
// transport (rpc/server) exposes: SET/GET/DEL/HSET/HGET/HDEL/RPUSH/
// LPUSH/LPOP/RPOP/BLPOP/SCAN. It is the single caller of
// HandleClientsBlockedOnLists/SweepTimeouts. HandleClientsBlockedOnLists
// runs after RPush and LPush, the only commands here that can make a
// key ready, and after BLPop registers its wait.
//
// spec.md §5 requires the core never be touched concurrently, but the
// demo transport (rpc/transport/base) fans a connection's requests out
// to a per-connection worker pool. mu is the command mutex that turns
// those workers back into single-threaded access to ks: every command
// holds it for the duration of its keyspace/blocking work and releases
// it before a caller that can block (BLPop) parks on its wait channel,
// so a suspended client never holds the core.
type Engine struct {
	ks *keyspace.Keyspace
	mu sync.Mutex
}

// New builds an Engine backed by a fresh Keyspace configured from t.
func New(t config.Tunables) *Engine {
	return &Engine{ks: keyspace.New(t.KeyspaceOptions())}
}

// Close releases the underlying Keyspace's background goroutines.
func (e *Engine) Close() { e.ks.Close() }

// Keyspace exposes the underlying Keyspace, e.g. so cmd/kvcore can
// attach a metrics.Registry via SetMetrics.
func (e *Engine) Keyspace() *keyspace.Keyspace { return e.ks }

func (e *Engine) afterCommand() {
	e.ks.HandleClientsBlockedOnLists()
}

// Set implements SET.
func (e *Engine) Set(dbID uint32, key string, value []byte) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.ks.Set(dbID, key, keyspace.NewStringValue(value))
}

// Get implements GET.
func (e *Engine) Get(dbID uint32, key string) ([]byte, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	val, ok := e.ks.LookupRead(dbID, key)
	if !ok {
		return nil, NewError(KindNotFound, "no such key")
	}
	if val.Kind != keyspace.KindString {
		return nil, NewError(KindWrongType, "value is not a string")
	}
	return val.Str, nil
}

// Del implements DEL.
func (e *Engine) Del(dbID uint32, key string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.ks.Delete(dbID, key); err != nil {
		return NewError(KindNotFound, err.Error())
	}
	return nil
}

// HSet implements HSET.
func (e *Engine) HSet(dbID uint32, key, field string, value []byte) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	val, ok := e.ks.LookupWrite(dbID, key)
	if !ok {
		h := e.ks.NewHash()
		h.Set(field, value)
		return e.ks.Add(dbID, key, keyspace.NewHashValue(h))
	}
	if val.Kind != keyspace.KindHash {
		return NewError(KindWrongType, "value is not a hash")
	}
	val.Hash.Set(field, value)
	return nil
}

// HGet implements HGET.
func (e *Engine) HGet(dbID uint32, key, field string) ([]byte, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	val, ok := e.ks.LookupRead(dbID, key)
	if !ok {
		return nil, NewError(KindNotFound, "no such key")
	}
	if val.Kind != keyspace.KindHash {
		return nil, NewError(KindWrongType, "value is not a hash")
	}
	fv, ok := val.Hash.Get(field)
	if !ok {
		return nil, NewError(KindNotFound, "no such field")
	}
	return fv, nil
}

// HDel implements HDEL.
func (e *Engine) HDel(dbID uint32, key, field string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	val, ok := e.ks.LookupWrite(dbID, key)
	if !ok {
		return NewError(KindNotFound, "no such key")
	}
	if val.Kind != keyspace.KindHash {
		return NewError(KindWrongType, "value is not a hash")
	}
	if !val.Hash.Delete(field) {
		return NewError(KindNotFound, "no such field")
	}
	if val.Hash.Len() == 0 {
		_ = e.ks.Delete(dbID, key)
	}
	return nil
}

// RPush implements RPUSH.
func (e *Engine) RPush(dbID uint32, key string, value []byte) (int, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	defer e.afterCommand()
	n, err := e.ks.Push(dbID, key, value, true)
	if err != nil {
		return 0, NewError(KindWrongType, err.Error())
	}
	return n, nil
}

// LPush implements LPUSH.
func (e *Engine) LPush(dbID uint32, key string, value []byte) (int, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	defer e.afterCommand()
	n, err := e.ks.Push(dbID, key, value, false)
	if err != nil {
		return 0, NewError(KindWrongType, err.Error())
	}
	return n, nil
}

func (e *Engine) pop(dbID uint32, key string, fromTail bool) ([]byte, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	val, ok := e.ks.LookupWrite(dbID, key)
	if !ok {
		return nil, NewError(KindNotFound, "no such key")
	}
	if val.Kind != keyspace.KindList {
		return nil, NewError(KindWrongType, "value is not a list")
	}

	var (
		elem listval.Elem
		got  bool
	)
	if fromTail {
		elem, got = val.List.PopTail()
	} else {
		elem, got = val.List.PopHead()
	}
	if !got {
		return nil, NewError(KindNotFound, "list is empty")
	}
	if val.List.Len() == 0 {
		_ = e.ks.Delete(dbID, key)
	}
	return elem.Bytes(), nil
}

// LPop implements LPOP.
func (e *Engine) LPop(dbID uint32, key string) ([]byte, error) { return e.pop(dbID, key, false) }

// RPop implements RPOP.
func (e *Engine) RPop(dbID uint32, key string) ([]byte, error) { return e.pop(dbID, key, true) }

// BLPopResult is the outcome of a BLPop call: either an immediate or
// eventually-woken value, or a timeout.
type BLPopResult struct {
	Key      string
	Value    []byte
	TimedOut bool
}

// BLPop implements BLPOP: it blocks clientID on keys (in FIFO order)
// until one has an element to pop or timeout elapses (a zero timeout
// blocks forever). Callers must arrange for SweepTimeouts to run
// periodically against a shared clock; this call registers the wait,
// pops at once from the first key that already holds a list, and
// otherwise awaits a later push or the timeout.
//
// The command mutex is held only long enough to register the wait and
// run afterCommand; the calling worker then parks on w.Result() with
// the core unlocked, so a blocked client never keeps other commands
// from running.
func (e *Engine) BLPop(dbID uint32, clientID uint64, keys []string, timeout time.Duration) BLPopResult {
	var deadline time.Time
	if timeout > 0 {
		deadline = time.Now().Add(timeout)
	}

	e.mu.Lock()
	w := e.ks.BlockForKeys(dbID, clientID, keys, false, nil, deadline)
	// Keys that already hold a list are queued so the drain below pops
	// from the first of them right away; missing keys are skipped.
	for _, k := range keys {
		e.ks.Blocking().SignalListAsReady(dbID, k)
	}
	e.afterCommand()
	e.mu.Unlock()

	res := <-w.Result()
	return BLPopResult{Key: res.Key, Value: res.Value, TimedOut: res.TimedOut}
}

// Scan implements SCAN: one cursor step over database dbID, returning
// the keys found and the cursor to resume from (0 means the scan is
// complete). count is a hint: the step continues until it has at least
// count keys or the cursor wraps, so it can return more or fewer.
func (e *Engine) Scan(dbID uint32, cursor uint64, count int) (keys []string, next uint64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	db := e.ks.DB(dbID)
	return db.Scan(cursor, count)
}

// SweepTimeouts unblocks every client whose BLPop deadline has passed
// as of now. The transport layer should call this on a periodic tick,
// from any goroutine: it takes the same command mutex as every other
// command.
func (e *Engine) SweepTimeouts(now time.Time) []uint64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.ks.SweepTimeouts(now)
}

// Unblock cancels clientID's pending BLPop, e.g. on client disconnect.
func (e *Engine) Unblock(clientID uint64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.ks.Unblock(clientID)
}
