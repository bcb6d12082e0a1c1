package blocking

import (
	"time"

	"github.com/tesserakv/kvcore/lib/queue"
)

// ListAccessor is the callback surface the Manager uses to actually
// move elements: it never inspects list values itself.
type ListAccessor interface {
	// PopForBlocking removes one element from the front (fromTail
	// false) or back (fromTail true) of the list at ref, reporting the
	// popped value, the remaining length, and whether the key existed
	// as a list at all.
	PopForBlocking(ref KeyRef, fromTail bool) (value []byte, remaining int, existedAsList bool)
	// PushToTarget delivers value onto the target list, creating it if
	// necessary. It returns an error if target exists but isn't a
	// list, in which case the caller must undo the pop with PushFront.
	PushToTarget(ref KeyRef, value []byte) error
	// PushFront undoes a pop by putting value back where it was popped
	// from.
	PushFront(ref KeyRef, value []byte, wasTail bool)
	// DeleteIfEmpty removes the key entirely once its list has zero
	// elements.
	DeleteIfEmpty(ref KeyRef)
}

// Manager drives the blocking/wake protocol described in spec.md
// §4.F: BlockForKeys registers a waiter, SignalListAsReady enqueues a
// key once a push makes it worth checking, and
// HandleClientsBlockedOnLists drains that queue after a command that
// may have made a key ready.
//
// The ready-key list is a plain in-thread FIFO, not a
// goroutine-backed queue: spec.md §5 requires the core (and its
// blocking bookkeeping) never be touched concurrently, and
// HandleClientsBlockedOnLists always runs on the same command-dispatch
// goroutine that called SignalListAsReady, so there is nothing to
// synchronize.
type Manager struct {
	states   map[uint32]*KeyState
	accessor ListAccessor
	ready    []KeyRef
	deadline *queue.DeadlineHeap[uint64]
	byClient map[uint64]*Waiter
}

// NewManager creates a Manager that calls back into accessor to move
// list elements.
func NewManager(accessor ListAccessor) *Manager {
	return &Manager{
		states:   make(map[uint32]*KeyState),
		accessor: accessor,
		deadline: queue.NewDeadlineHeap[uint64](),
		byClient: make(map[uint64]*Waiter),
	}
}

// Close is a no-op: the Manager owns no goroutines or other resources
// that need releasing.
func (m *Manager) Close() {}

// BlockedClientCount returns the number of clients currently blocked,
// for diagnostics/metrics gauges.
func (m *Manager) BlockedClientCount() int { return len(m.byClient) }

// PendingReadyKeys returns the depth of the process-wide ready-keys
// FIFO, for diagnostics/metrics gauges.
func (m *Manager) PendingReadyKeys() int { return len(m.ready) }

func (m *Manager) stateFor(dbID uint32) *KeyState {
	s, ok := m.states[dbID]
	if !ok {
		s = NewKeyState()
		m.states[dbID] = s
	}
	return s
}

// BlockForKeys registers clientID as waiting on every key in keys
// within database dbID, deduplicated, and returns the Waiter whose
// Result() channel eventually receives exactly one WakeResult. A
// zero deadline means no timeout.
func (m *Manager) BlockForKeys(dbID uint32, clientID uint64, keys []string, fromTail bool, target *KeyRef, deadline time.Time) *Waiter {
	state := m.stateFor(dbID)

	w := &Waiter{
		ClientID: clientID,
		FromTail: fromTail,
		Target:   target,
		elems:    make(map[KeyRef]*keyElem),
		result:   make(chan WakeResult, 1),
	}

	seen := make(map[string]bool, len(keys))
	for _, k := range keys {
		if seen[k] {
			continue
		}
		seen[k] = true
		ref := KeyRef{DB: dbID, Key: k}
		w.keys = append(w.keys, ref)
		elem := state.register(k, w)
		w.elems[ref] = &keyElem{elem: elem}
	}

	m.byClient[clientID] = w
	if !deadline.IsZero() {
		m.deadline.Set(clientID, deadline.UnixNano())
	}
	return w
}

// Result returns the channel that receives this waiter's outcome.
func (w *Waiter) Result() <-chan WakeResult { return w.result }

// Unblock removes clientID from every key it registered for, clears its
// deadline, and delivers a WakeResult with no Key or Value whose
// TimedOut field is timedOut (false means the block was canceled). It
// is always safe to call, including after the client has already been
// served, in which case it does nothing.
func (m *Manager) Unblock(clientID uint64, timedOut bool) {
	w, ok := m.byClient[clientID]
	if !ok {
		return
	}
	delete(m.byClient, clientID)
	m.deadline.Remove(clientID)

	for _, ref := range w.keys {
		state := m.states[ref.DB]
		if state == nil {
			continue
		}
		if ke, ok := w.elems[ref]; ok && !ke.served {
			state.unregister(ref.Key, ke.elem)
		}
	}
	select {
	case w.result <- WakeResult{TimedOut: timedOut}:
	default:
	}
}

// SignalListAsReady is called from every list-push path. It enqueues
// {dbID, key} on the process-wide ready list exactly once between
// consecutive drains, and only when someone is actually waiting on the
// key. Called only from the command-dispatch goroutine.
func (m *Manager) SignalListAsReady(dbID uint32, key string) {
	state := m.stateFor(dbID)
	if !state.HasWaiters(key) || state.IsReady(key) {
		return
	}
	state.markReady(key)
	m.ready = append(m.ready, KeyRef{DB: dbID, Key: key})
}

// HandleClientsBlockedOnLists drains the ready-key FIFO, serving FIFO
// waiters on each key until the key runs dry or has no more waiters,
// matching spec.md §4.F's swap-and-walk protocol: it swaps the
// process-wide FIFO for a fresh empty one and walks the captured
// slice, looping as long as serving a key enqueues more (the
// atomic-move target can itself become ready). Must be called from the
// same goroutine as SignalListAsReady.
func (m *Manager) HandleClientsBlockedOnLists() {
	for len(m.ready) > 0 {
		pending := m.ready
		m.ready = nil
		for _, ref := range pending {
			m.serveKey(ref)
		}
	}
}

func (m *Manager) serveKey(ref KeyRef) {
	state := m.states[ref.DB]
	if state == nil {
		return
	}
	state.clearReady(ref.Key)

	for {
		w, _, ok := state.front(ref.Key)
		if !ok {
			return
		}
		value, remaining, existed := m.accessor.PopForBlocking(ref, w.FromTail)
		if !existed {
			return
		}

		if w.Target != nil {
			if err := m.accessor.PushToTarget(*w.Target, value); err != nil {
				m.accessor.PushFront(ref, value, w.FromTail)
				m.finishWaiter(w, ref, state)
				select {
				case w.result <- WakeResult{Key: ref.Key, Failed: true, Err: err}:
				default:
				}
				return
			}
			m.SignalListAsReady(w.Target.DB, w.Target.Key)
		}

		m.finishWaiter(w, ref, state)
		select {
		case w.result <- WakeResult{Key: ref.Key, Value: value}:
		default:
		}

		if remaining == 0 {
			m.accessor.DeleteIfEmpty(ref)
			return
		}
	}
}

// finishWaiter unregisters w from every key it was blocking on (the
// key that just served it, and every other key it never got to) and
// tears down its client-level bookkeeping.
func (m *Manager) finishWaiter(w *Waiter, servedRef KeyRef, servedState *KeyState) {
	for _, ref := range w.keys {
		ke, ok := w.elems[ref]
		if !ok || ke.served {
			continue
		}
		ke.served = true
		if ref == servedRef {
			servedState.unregister(ref.Key, ke.elem)
			continue
		}
		if st := m.states[ref.DB]; st != nil {
			st.unregister(ref.Key, ke.elem)
		}
	}
	delete(m.byClient, w.ClientID)
	m.deadline.Remove(w.ClientID)
}

// SweepTimeouts unblocks every client whose deadline is at or before
// now, delivering a timed-out WakeResult to each. It is meant to be
// called periodically (spec.md §5: "Timeouts are enforced by a
// periodic sweep").
func (m *Manager) SweepTimeouts(now time.Time) []uint64 {
	expired := m.deadline.PopExpired(now.UnixNano())
	for _, clientID := range expired {
		m.Unblock(clientID, true)
	}
	return expired
}
