package keyspace

import (
	"time"

	"github.com/tesserakv/kvcore/lib/blocking"
)

// BlockForKeys registers clientID as waiting on keys in database dbID
// (spec.md §4.F), returning the Waiter whose Result channel eventually
// receives exactly one outcome. target, if non-nil, names the
// atomic-move destination for the BRPOPLPUSH-equivalent variant. A
// zero deadline means no timeout.
func (ks *Keyspace) BlockForKeys(dbID uint32, clientID uint64, keys []string, fromTail bool, target *blocking.KeyRef, deadline time.Time) *blocking.Waiter {
	return ks.blocking.BlockForKeys(dbID, clientID, keys, fromTail, target, deadline)
}

// HandleClientsBlockedOnLists drains the ready-key queue and serves
// FIFO waiters, per spec.md §4.F. lib/engine runs it after RPush,
// LPush and BLPop.
func (ks *Keyspace) HandleClientsBlockedOnLists() { ks.blocking.HandleClientsBlockedOnLists() }

// SweepTimeouts unblocks every client whose deadline has passed as of
// now, returning their client IDs.
func (ks *Keyspace) SweepTimeouts(now time.Time) []uint64 {
	expired := ks.blocking.SweepTimeouts(now)
	if ks.metrics != nil && len(expired) > 0 {
		ks.metrics.ClientsTimedOut.Add(len(expired))
	}
	return expired
}

// Unblock cancels clientID's block, e.g. on client disconnect.
func (ks *Keyspace) Unblock(clientID uint64) { ks.blocking.Unblock(clientID, false) }
