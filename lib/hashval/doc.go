// Package hashval implements the dual-encoded hash collection value:
// a small linear form for short-lived, small hashes and a map form
// backed by lib/dict once a hash grows past its thresholds.
package hashval
