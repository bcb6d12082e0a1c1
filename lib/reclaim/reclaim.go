package reclaim

import (
	"sync/atomic"
	"time"

	metrics "github.com/rcrowley/go-metrics"

	"github.com/tesserakv/kvcore/lib/queue"
)

// DefaultThreshold is the effort above which a free is handed off to
// the background worker instead of running inline.
const DefaultThreshold = 64

// Job is a single unit of deferred work: Free performs the actual
// teardown (walking a large hash/list so the cost of visiting every
// element happens off the caller's goroutine) and Effort is the
// estimate that decided whether it was queued at all.
type Job struct {
	Effort int
	Free   func()
}

// Reclaimer drains a handoff queue of Jobs on a background goroutine,
// tracking how many jobs are outstanding so callers can observe
// quiescence (spec's pending-count-returns-to-zero property).
type Reclaimer struct {
	threshold int
	queue     *queue.MPSC[Job]
	pending   atomic.Int64
	durations metrics.Histogram
	stopped   chan struct{}

	// onQueued and onCompleted, if set via SetHooks, observe hand-offs
	// to the background worker and their completions without this
	// package depending on any particular metrics library.
	onQueued    func()
	onCompleted func()
}

// New creates a Reclaimer with the given effort threshold (see
// EstimateEffort) and starts its background worker.
func New(threshold int) *Reclaimer {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	r := &Reclaimer{
		threshold: threshold,
		queue:     queue.NewMPSC[Job](),
		durations: metrics.NewHistogram(metrics.NewExpDecaySample(1028, 0.015)),
		stopped:   make(chan struct{}),
	}
	go r.run()
	return r
}

// EstimateEffort mirrors the reference's lazyfreeGetFreeEffort:
// container-shaped values cost their element count to free, everything
// else costs one unit.
func EstimateEffort(elementCount int, isContainer bool) int {
	if !isContainer {
		return 1
	}
	if elementCount < 1 {
		return 1
	}
	return elementCount
}

// Reclaim frees a value either inline (effort at or below the
// threshold) or by handing it to the background worker, which is the
// path that increments Pending until the job completes.
func (r *Reclaimer) Reclaim(effort int, free func()) {
	if effort <= r.threshold {
		free()
		return
	}
	r.pending.Add(1)
	r.queue.Push(&Job{Effort: effort, Free: free})
	if r.onQueued != nil {
		r.onQueued()
	}
}

// SetHooks registers callbacks invoked after a job is queued and after
// it completes, e.g. to drive a metrics.Registry's counters. Either may
// be nil.
func (r *Reclaimer) SetHooks(onQueued, onCompleted func()) {
	r.onQueued = onQueued
	r.onCompleted = onCompleted
}

// Pending returns the number of handed-off jobs not yet completed.
func (r *Reclaimer) Pending() int64 { return r.pending.Load() }

// DurationHistogram exposes the per-job free-duration distribution,
// sampled with an exponentially decaying reservoir the way the
// teacher's dependency is meant to be used.
func (r *Reclaimer) DurationHistogram() metrics.Histogram { return r.durations }

func (r *Reclaimer) run() {
	for job := range r.queue.Recv() {
		start := time.Now()
		job.Free()
		r.durations.Update(time.Since(start).Nanoseconds())
		r.pending.Add(-1)
		if r.onCompleted != nil {
			r.onCompleted()
		}
	}
	close(r.stopped)
}

// Close stops accepting new jobs and waits for the worker to drain the
// queue and exit.
func (r *Reclaimer) Close() {
	r.queue.Close()
	<-r.stopped
}
