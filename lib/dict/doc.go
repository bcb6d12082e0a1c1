// Package dict implements an incrementally rehashed chained hash table,
// generic over key and value type.
//
// The table never blocks to grow: a resize allocates a second table and
// migrates buckets a few at a time on subsequent operations (Get, Add,
// Delete, ...) until the old table is empty, at which point it is
// discarded. This bounds the latency of any single call at the cost of
// running two tables side by side while a rehash is in flight.
package dict
