package blocking

import (
	"errors"
	"sync"
	"testing"
	"time"
)

// fakeList is a minimal ListAccessor backed by plain slices, enough to
// exercise the wake protocol without pulling in lib/listval.
type fakeList struct {
	mu    sync.Mutex
	lists map[KeyRef][][]byte
	// notLists marks keys that exist but aren't lists, to exercise the
	// atomic-move undo path.
	notLists map[KeyRef]bool
}

func newFakeList() *fakeList {
	return &fakeList{lists: make(map[KeyRef][][]byte), notLists: make(map[KeyRef]bool)}
}

func (f *fakeList) push(ref KeyRef, v []byte) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lists[ref] = append(f.lists[ref], v)
}

func (f *fakeList) PopForBlocking(ref KeyRef, fromTail bool) (value []byte, remaining int, existedAsList bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	l, ok := f.lists[ref]
	if !ok || len(l) == 0 {
		return nil, 0, false
	}
	if fromTail {
		value = l[len(l)-1]
		l = l[:len(l)-1]
	} else {
		value = l[0]
		l = l[1:]
	}
	f.lists[ref] = l
	return value, len(l), true
}

func (f *fakeList) PushToTarget(ref KeyRef, value []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.notLists[ref] {
		return errors.New("wrong type")
	}
	f.lists[ref] = append(f.lists[ref], value)
	return nil
}

func (f *fakeList) PushFront(ref KeyRef, value []byte, wasTail bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if wasTail {
		f.lists[ref] = append(f.lists[ref], value)
	} else {
		f.lists[ref] = append([][]byte{value}, f.lists[ref]...)
	}
}

func (f *fakeList) DeleteIfEmpty(ref KeyRef) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.lists[ref]) == 0 {
		delete(f.lists, ref)
	}
}

func TestBlockThenPushWakesClient(t *testing.T) {
	fl := newFakeList()
	m := NewManager(fl)
	defer m.Close()

	w := m.BlockForKeys(0, 1, []string{"K"}, false, nil, time.Time{})

	fl.push(KeyRef{DB: 0, Key: "K"}, []byte("v"))
	m.SignalListAsReady(0, "K")
	m.HandleClientsBlockedOnLists()

	select {
	case res := <-w.Result():
		if res.TimedOut || res.Key != "K" || string(res.Value) != "v" {
			t.Fatalf("unexpected result: %+v", res)
		}
	default:
		t.Fatalf("waiter was not woken")
	}
}

func TestFIFOOrderingAcrossWaiters(t *testing.T) {
	fl := newFakeList()
	m := NewManager(fl)
	defer m.Close()

	const waiters = 5
	ws := make([]*Waiter, waiters)
	for i := 0; i < waiters; i++ {
		ws[i] = m.BlockForKeys(0, uint64(i+1), []string{"K"}, false, nil, time.Time{})
	}

	const pushes = 3
	for i := 0; i < pushes; i++ {
		fl.push(KeyRef{DB: 0, Key: "K"}, []byte{byte('a' + i)})
	}
	m.SignalListAsReady(0, "K")
	m.HandleClientsBlockedOnLists()

	for i := 0; i < pushes; i++ {
		select {
		case res := <-ws[i].Result():
			if res.TimedOut {
				t.Fatalf("waiter %d timed out, want served", i)
			}
		default:
			t.Fatalf("waiter %d (registered before the %d pushes) was not served", i, pushes)
		}
	}
	for i := pushes; i < waiters; i++ {
		select {
		case res := <-ws[i].Result():
			t.Fatalf("waiter %d should still be blocked, got %+v", i, res)
		default:
		}
	}
}

func TestAtomicMoveUndoOnWrongType(t *testing.T) {
	fl := newFakeList()
	fl.notLists[KeyRef{DB: 0, Key: "dst"}] = true
	m := NewManager(fl)
	defer m.Close()

	target := KeyRef{DB: 0, Key: "dst"}
	w := m.BlockForKeys(0, 1, []string{"src"}, false, &target, time.Time{})

	fl.push(KeyRef{DB: 0, Key: "src"}, []byte("v"))
	m.SignalListAsReady(0, "src")
	m.HandleClientsBlockedOnLists()

	select {
	case <-w.Result():
	default:
		t.Fatalf("waiter should have been unblocked with an error result")
	}
	if v, _, existed := fl.PopForBlocking(KeyRef{DB: 0, Key: "src"}, false); !existed || string(v) != "v" {
		t.Fatalf("popped value was not pushed back: existed=%v v=%q", existed, v)
	}
}

func TestSweepTimeouts(t *testing.T) {
	fl := newFakeList()
	m := NewManager(fl)
	defer m.Close()

	w := m.BlockForKeys(0, 1, []string{"K"}, false, nil, time.Now().Add(-time.Millisecond))
	expired := m.SweepTimeouts(time.Now())
	if len(expired) != 1 || expired[0] != 1 {
		t.Fatalf("SweepTimeouts = %v, want [1]", expired)
	}
	select {
	case res := <-w.Result():
		if !res.TimedOut {
			t.Fatalf("expected TimedOut result")
		}
	default:
		t.Fatalf("waiter did not receive timeout result")
	}
}

func TestUnblockIsIdempotent(t *testing.T) {
	fl := newFakeList()
	m := NewManager(fl)
	defer m.Close()

	m.BlockForKeys(0, 1, []string{"K"}, false, nil, time.Time{})
	m.Unblock(1, false)
	m.Unblock(1, false) // must not panic
}
