// Package queue provides two small concurrency primitives shared by the
// lazy reclaimer and the blocking wait queues: an unbounded
// multi-producer/single-consumer handoff queue, and a priority queue
// that combines a binary heap with a hash map for O(1) key lookup
// alongside O(log n) priority operations.
package queue
