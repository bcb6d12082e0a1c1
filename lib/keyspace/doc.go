// Package keyspace composes the per-database key→value map with its
// key→expiry map and the process's blocking wait-queue state, lazily
// expiring keys on read and routing oversized deletes through the lazy
// reclaimer.
package keyspace
