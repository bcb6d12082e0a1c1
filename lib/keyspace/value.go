package keyspace

import (
	"github.com/tesserakv/kvcore/lib/hashval"
	"github.com/tesserakv/kvcore/lib/listval"
)

// Kind names which of Value's fields is live, playing the role of the
// reference implementation's redisObject encoding tag without
// reimplementing SDS: the set of kinds is closed, so callers switch on
// Kind rather than relying on virtual dispatch.
type Kind int

const (
	KindString Kind = iota
	KindHash
	KindList
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindHash:
		return "hash"
	case KindList:
		return "list"
	default:
		return "unknown"
	}
}

// Value is the tagged union stored under every key in a DB.
type Value struct {
	Kind Kind
	Str  []byte
	Hash *hashval.Hash
	List *listval.List
}

// NewStringValue wraps b as a string value.
func NewStringValue(b []byte) *Value { return &Value{Kind: KindString, Str: b} }

// NewHashValue wraps h as a hash value.
func NewHashValue(h *hashval.Hash) *Value { return &Value{Kind: KindHash, Hash: h} }

// NewListValue wraps l as a list value.
func NewListValue(l *listval.List) *Value { return &Value{Kind: KindList, List: l} }
