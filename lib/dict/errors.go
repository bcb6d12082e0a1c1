package dict

import "errors"

// --------------------------------------------------------------------------
// Errors
// --------------------------------------------------------------------------

var (
	// ErrKeyExists is returned by Add when the key is already present.
	ErrKeyExists = errors.New("dict: key already exists")
	// ErrKeyNotFound is returned by Delete/Unlink when the key is absent.
	ErrKeyNotFound = errors.New("dict: key not found")
	// ErrResizeSkipped is returned by Expand/Resize when a resize was not
	// necessary or not permitted (already rehashing, resize disabled, or
	// the requested size would not change the table).
	ErrResizeSkipped = errors.New("dict: resize skipped")
	// ErrFingerprintMismatch is raised by an unsafe iterator's Release
	// when the table was structurally mutated (any operation other than
	// updating the value of an already-yielded entry) while the unsafe
	// iterator was live.
	ErrFingerprintMismatch = errors.New("dict: unsafe iterator fingerprint mismatch")
)
