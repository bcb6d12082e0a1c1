package dict

import (
	"crypto/rand"
	"encoding/binary"
)

// RandomSeed returns a process-random 64 bit seed suitable for
// StringDiscipline, so that two dicts (or two runs of the same
// program) don't share predictable bucket placement.
func RandomSeed() uint64 {
	var b [8]byte
	if _, err := rand.Read(b[:]); err != nil {
		return 0x9e3779b97f4a7c15 // fallback: fixed odd constant, still spreads keys
	}
	return binary.LittleEndian.Uint64(b[:])
}

// hashStringFNV1a is an FNV-1a hash seeded so that its output isn't
// predictable across processes, keeping worst-case collision chains
// from being triggerable by an adversary who knows the algorithm.
func hashStringFNV1a(s string, seed uint64) uint64 {
	const (
		offset64 = 14695981039346656037
		prime64  = 1099511628211
	)
	hash := uint64(offset64) ^ seed
	for i := 0; i < len(s); i++ {
		hash ^= uint64(s[i])
		hash *= prime64
	}
	return hash
}

// StringDiscipline builds a KeyDiscipline for string keys, hashed with
// a seeded FNV-1a so identical field/key names hash the same way
// within one dict but not predictably across processes.
func StringDiscipline[V any](seed uint64) KeyDiscipline[string, V] {
	return KeyDiscipline[string, V]{
		Hash:  func(k string) uint64 { return hashStringFNV1a(k, seed) },
		Equal: func(a, b string) bool { return a == b },
	}
}
