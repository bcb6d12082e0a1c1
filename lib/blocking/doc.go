// Package blocking implements the wait-queue machinery behind
// commands that block a client until a list key becomes non-empty:
// per-key FIFO registration, a process-wide ready-keys queue, and a
// deadline sweep for clients that time out before anyone pushes.
//
// The package never touches list contents directly. It is handed a
// ListAccessor at construction and calls back into it to actually pop
// or push elements, which keeps the wait-queue bookkeeping independent
// of the keyspace and value types it serves.
package blocking
