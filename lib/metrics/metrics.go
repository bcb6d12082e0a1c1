package metrics

import (
	"io"

	vm "github.com/VictoriaMetrics/metrics"
)

// Registry is one isolated set of named counters and gauges. Using
// vm.NewSet per Registry (instead of the package-level default set)
// means creating a second Keyspace/engine in the same process, or
// running the package's tests repeatedly, never hits VictoriaMetrics's
// panic-on-duplicate-name registration.
type Registry struct {
	set *vm.Set

	// DictResizeEvents counts every successful lib/dict.Expand call
	// across all dicts an engine wires this registry into.
	DictResizeEvents *vm.Counter
	// ReclaimJobsQueued and ReclaimJobsCompleted count lazy-reclaim
	// hand-offs to the background worker and their completions.
	ReclaimJobsQueued    *vm.Counter
	ReclaimJobsCompleted *vm.Counter
	// ClientsTimedOut counts blocking waiters unblocked by the timeout
	// sweep rather than by a push.
	ClientsTimedOut *vm.Counter
}

// New creates an empty Registry with its counters pre-registered.
func New() *Registry {
	s := vm.NewSet()
	return &Registry{
		set:                  s,
		DictResizeEvents:     s.NewCounter("kvcore_dict_resize_events_total"),
		ReclaimJobsQueued:    s.NewCounter("kvcore_reclaim_jobs_queued_total"),
		ReclaimJobsCompleted: s.NewCounter("kvcore_reclaim_jobs_completed_total"),
		ClientsTimedOut:      s.NewCounter("kvcore_blocking_clients_timed_out_total"),
	}
}

// RegisterGauge attaches a pull-based gauge to the registry: f is
// called at scrape time, matching VictoriaMetrics/metrics's model for
// "current value" metrics like a pending-job count or a queue depth,
// which this package uses instead of pushing updates on every mutation.
func (r *Registry) RegisterGauge(name string, f func() float64) *vm.Gauge {
	return r.set.NewGauge(name, f)
}

// WritePrometheus writes every metric in this registry in Prometheus
// exposition format.
func (r *Registry) WritePrometheus(w io.Writer) {
	r.set.WritePrometheus(w)
}
