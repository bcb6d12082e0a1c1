// Package metrics wraps github.com/VictoriaMetrics/metrics behind a
// per-process Registry so tests and multiple engine instances in one
// binary each get an isolated metric set instead of colliding on the
// library's global default set.
package metrics
