package hashval

import "github.com/tesserakv/kvcore/lib/dict"

// Encoding names which internal representation a Hash currently uses.
type Encoding int

const (
	// EncodingSmall is the linear, insertion-ordered representation
	// used while the hash stays under both thresholds.
	EncodingSmall Encoding = iota
	// EncodingMap is the lib/dict-backed representation a hash is
	// promoted to once it outgrows the small form. Promotion is
	// one-way: a hash never demotes back to EncodingSmall.
	EncodingMap
)

func (e Encoding) String() string {
	if e == EncodingMap {
		return "hashtable"
	}
	return "listpack"
}

// minMapBuckets is the smallest bucket count a map-form hash is ever
// shrunk back to, mirroring the reference's DICT_HT_INITIAL_SIZE floor
// on htNeedsResize.
const minMapBuckets = 4

type fieldValue struct {
	field string
	value []byte
}

// Options controls the small/map-form promotion thresholds.
type Options struct {
	// MaxSmallEntries is the number of fields a small-form hash may
	// hold before it is promoted.
	MaxSmallEntries int
	// MaxSmallValue is the maximum byte length either a field name or
	// its value may reach before promotion, checked on every insert.
	MaxSmallValue int
	// CanResize and ForceResizeRatio govern the map-form dict's growth
	// and shrink behavior once a hash is promoted; see
	// dict.KeyDiscipline for their exact meaning.
	CanResize        bool
	ForceResizeRatio uint64
}

// Hash is a field/value collection that starts in a compact linear
// form and is promoted, once, to a lib/dict-backed hash table when it
// outgrows Options' thresholds.
type Hash struct {
	opts     Options
	seed     uint64
	encoding Encoding
	small    []fieldValue
	m        *dict.Dict[string, []byte]
}

// New creates an empty small-form hash. seed is used to construct the
// map-form dict's string hashing if/when the hash is promoted.
func New(opts Options, seed uint64) *Hash {
	return &Hash{opts: opts, seed: seed, encoding: EncodingSmall}
}

// Len returns the number of fields stored.
func (h *Hash) Len() int {
	if h.encoding == EncodingMap {
		return int(h.m.Len())
	}
	return len(h.small)
}

// EncodingKind reports whether the hash is currently small-form or
// map-form.
func (h *Hash) EncodingKind() Encoding { return h.encoding }

func (h *Hash) exceedsThreshold(field string, value []byte) bool {
	return len(field) > h.opts.MaxSmallValue || len(value) > h.opts.MaxSmallValue
}

// Set stores value under field, reporting whether field is newly
// added (false means an existing value was overwritten). Setting a
// field that breaches either threshold promotes the whole hash to
// map-form in the same call.
func (h *Hash) Set(field string, value []byte) (added bool) {
	if h.encoding == EncodingMap {
		return h.m.Replace(field, value)
	}

	for i := range h.small {
		if h.small[i].field == field {
			h.small[i].value = value
			if h.exceedsThreshold(field, value) {
				h.promote()
			}
			return false
		}
	}

	h.small = append(h.small, fieldValue{field: field, value: value})
	if h.exceedsThreshold(field, value) || len(h.small) > h.opts.MaxSmallEntries {
		h.promote()
	}
	return true
}

// Get returns the value stored under field, if any.
func (h *Hash) Get(field string) ([]byte, bool) {
	if h.encoding == EncodingMap {
		return h.m.Get(field)
	}
	for _, fv := range h.small {
		if fv.field == field {
			return fv.value, true
		}
	}
	return nil, false
}

// Has reports whether field is present.
func (h *Hash) Has(field string) bool {
	_, ok := h.Get(field)
	return ok
}

// Delete removes field, reporting whether it was present. In map-form
// it may shrink the backing table once the load factor drops below
// 10%, matching the reference's htNeedsResize check on delete.
func (h *Hash) Delete(field string) bool {
	if h.encoding == EncodingMap {
		if _, err := h.m.Unlink(field); err != nil {
			return false
		}
		h.maybeShrink()
		return true
	}
	for i, fv := range h.small {
		if fv.field == field {
			h.small = append(h.small[:i], h.small[i+1:]...)
			return true
		}
	}
	return false
}

func (h *Hash) maybeShrink() {
	if h.m.IsRehashing() {
		return
	}
	size := h.m.BucketCount()
	if size <= minMapBuckets {
		return
	}
	if h.m.Len()*10 < size {
		_ = h.m.Resize()
	}
}

// promote converts a small-form hash into map-form in a single pass,
// after which small is discarded. Promotion never reverses.
func (h *Hash) promote() {
	disc := dict.StringDiscipline[[]byte](h.seed)
	disc.CanResize = h.opts.CanResize
	disc.ForceResizeRatio = h.opts.ForceResizeRatio
	m := dict.New(disc)
	m.Expand(nextPow2(uint64(len(h.small))))
	for _, fv := range h.small {
		m.Replace(fv.field, fv.value)
	}
	h.m = m
	h.small = nil
	h.encoding = EncodingMap
}

func nextPow2(n uint64) uint64 {
	i := uint64(4)
	for i < n {
		i *= 2
	}
	return i
}

// ForEach calls fn once per field/value pair. Order is insertion order
// in small-form and unspecified in map-form.
func (h *Hash) ForEach(fn func(field string, value []byte)) {
	if h.encoding == EncodingSmall {
		for _, fv := range h.small {
			fn(fv.field, fv.value)
		}
		return
	}
	it := dict.NewIterator(h.m, true)
	defer it.Release()
	for {
		f, v, ok := it.Next()
		if !ok {
			return
		}
		fn(f, v)
	}
}
