package keyspace

import (
	"time"

	"github.com/tesserakv/kvcore/lib/blocking"
	"github.com/tesserakv/kvcore/lib/dict"
	"github.com/tesserakv/kvcore/lib/hashval"
	"github.com/tesserakv/kvcore/lib/listval"
	"github.com/tesserakv/kvcore/lib/metrics"
	"github.com/tesserakv/kvcore/lib/reclaim"
)

// Options carries every spec.md §6 tunable that governs how a Keyspace
// builds and reclaims its values. The engine layer is expected to
// source these from lib/config's Tunables.
type Options struct {
	HashMaxSmallEntries int
	HashMaxSmallValue   int
	ListMaxSegmentSize  int
	ListMaxSegmentBytes int
	ListCompressDepth   int
	LazyFreeThreshold   int
	CanResize           bool
	ForceResizeRatio    uint64
}

// DefaultOptions matches the reference implementation's defaults named
// in spec.md §6.
func DefaultOptions() Options {
	return Options{
		HashMaxSmallEntries: 128,
		HashMaxSmallValue:   64,
		ListMaxSegmentSize:  128,
		ListMaxSegmentBytes: 8 * 1024,
		ListCompressDepth:   0,
		LazyFreeThreshold:   reclaim.DefaultThreshold,
		CanResize:           true,
		ForceResizeRatio:    5,
	}
}

// Keyspace owns every numbered database plus the process-wide
// collaborators spec.md §9 calls out as singletons that must be
// "encapsulated behind an explicit dependency passed into the engine at
// construction": the lazy reclaimer and the blocking-wait manager.
type Keyspace struct {
	opts      Options
	seed      uint64
	dbs       map[uint32]*DB
	reclaimer *reclaim.Reclaimer
	blocking  *blocking.Manager
	metrics   *metrics.Registry
}

// New creates a Keyspace governed by opts. The returned Keyspace owns a
// background reclaimer goroutine; call Close when done.
func New(opts Options) *Keyspace {
	ks := &Keyspace{
		opts:      opts,
		seed:      dict.RandomSeed(),
		dbs:       make(map[uint32]*DB),
		reclaimer: reclaim.New(opts.LazyFreeThreshold),
	}
	ks.blocking = blocking.NewManager(ks)
	return ks
}

// Close stops the background reclaimer and the blocking manager's
// internal queue.
func (ks *Keyspace) Close() {
	ks.blocking.Close()
	ks.reclaimer.Close()
}

// DB returns database id, creating it empty on first reference.
func (ks *Keyspace) DB(id uint32) *DB {
	db, ok := ks.dbs[id]
	if !ok {
		db = newDB(id, ks.seed, ks.opts, ks.onDictResize)
		ks.dbs[id] = db
	}
	return db
}

func (ks *Keyspace) onDictResize() {
	if ks.metrics != nil {
		ks.metrics.DictResizeEvents.Inc()
	}
}

// SetMetrics attaches reg to this Keyspace: every dict this Keyspace
// creates from this point on reports its resize events to reg, the
// reclaimer's queued/completed counters feed reg directly, and reg
// gains pull-based gauges for the reclaimer's pending count and the
// blocking manager's live client/ready-key depth. Call it once, right
// after New, before any DB is touched — dicts created before SetMetrics
// don't retroactively start reporting.
func (ks *Keyspace) SetMetrics(reg *metrics.Registry) {
	ks.metrics = reg
	ks.reclaimer.SetHooks(reg.ReclaimJobsQueued.Inc, reg.ReclaimJobsCompleted.Inc)
	reg.RegisterGauge("kvcore_reclaim_pending", func() float64 { return float64(ks.reclaimer.Pending()) })
	reg.RegisterGauge("kvcore_blocked_clients", func() float64 { return float64(ks.blocking.BlockedClientCount()) })
	reg.RegisterGauge("kvcore_ready_keys_depth", func() float64 { return float64(ks.blocking.PendingReadyKeys()) })
}

func (ks *Keyspace) hashOptions() hashval.Options {
	return hashval.Options{
		MaxSmallEntries:  ks.opts.HashMaxSmallEntries,
		MaxSmallValue:    ks.opts.HashMaxSmallValue,
		CanResize:        ks.opts.CanResize,
		ForceResizeRatio: ks.opts.ForceResizeRatio,
	}
}

func (ks *Keyspace) listOptions() listval.Options {
	return listval.Options{
		MaxSegmentSize:  ks.opts.ListMaxSegmentSize,
		MaxSegmentBytes: ks.opts.ListMaxSegmentBytes,
		CompressDepth:   ks.opts.ListCompressDepth,
	}
}

// NewHash creates an empty hash value governed by this Keyspace's
// hash thresholds.
func (ks *Keyspace) NewHash() *hashval.Hash { return hashval.New(ks.hashOptions(), ks.seed) }

// NewList creates an empty list value governed by this Keyspace's
// segment sizing.
func (ks *Keyspace) NewList() *listval.List { return listval.New(ks.listOptions()) }

// Reclaimer exposes the shared lazy reclaimer, e.g. for diagnostics
// (pending job count, duration histogram).
func (ks *Keyspace) Reclaimer() *reclaim.Reclaimer { return ks.reclaimer }

// Blocking exposes the shared blocking-wait manager so the engine layer
// can drive BlockForKeys/HandleClientsBlockedOnLists/SweepTimeouts
// around command execution.
func (ks *Keyspace) Blocking() *blocking.Manager { return ks.blocking }

func nowNanos() int64 { return time.Now().UnixNano() }
