package keyspace

import "errors"

var (
	// ErrNoSuchKey is returned when an operation names a key that isn't
	// present (or has just lazily expired).
	ErrNoSuchKey = errors.New("keyspace: no such key")
	// ErrWrongType is returned when an operation expects one Kind but
	// finds the key holding another.
	ErrWrongType = errors.New("keyspace: value is not the requested type")
	// ErrKeyExists is returned by Add when the key is already present.
	ErrKeyExists = errors.New("keyspace: key already exists")
)
