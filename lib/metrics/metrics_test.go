package metrics

import (
	"bytes"
	"strings"
	"testing"
)

func TestCountersAndGaugesAppearInOutput(t *testing.T) {
	r := New()
	r.DictResizeEvents.Inc()
	r.ReclaimJobsQueued.Add(3)
	r.RegisterGauge("kvcore_test_gauge", func() float64 { return 42 })

	var buf bytes.Buffer
	r.WritePrometheus(&buf)
	out := buf.String()

	for _, want := range []string{
		"kvcore_dict_resize_events_total 1",
		"kvcore_reclaim_jobs_queued_total 3",
		"kvcore_test_gauge 42",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q, got:\n%s", want, out)
		}
	}
}

func TestTwoRegistriesDoNotCollide(t *testing.T) {
	a := New()
	b := New()
	a.DictResizeEvents.Inc()
	if b.DictResizeEvents.Get() != 0 {
		t.Fatalf("registries are not isolated")
	}
}
