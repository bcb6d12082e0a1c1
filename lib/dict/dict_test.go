package dict

import (
	"math/rand"
	"testing"
)

func intDiscipline() KeyDiscipline[int, string] {
	return KeyDiscipline[int, string]{
		Hash:  func(k int) uint64 { return WangHash64(uint64(k)) },
		Equal: func(a, b int) bool { return a == b },
	}
}

func TestAddGetDelete(t *testing.T) {
	d := New(intDiscipline())

	if err := d.Add(1, "one"); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := d.Add(1, "uno"); err != ErrKeyExists {
		t.Fatalf("expected ErrKeyExists, got %v", err)
	}
	val, ok := d.Get(1)
	if !ok || val != "one" {
		t.Fatalf("Get(1) = %q, %v", val, ok)
	}
	if err := d.Delete(2); err != ErrKeyNotFound {
		t.Fatalf("expected ErrKeyNotFound, got %v", err)
	}
	if err := d.Delete(1); err != nil {
		t.Fatalf("Delete(1): %v", err)
	}
	if d.Has(1) {
		t.Fatalf("expected key 1 gone")
	}
}

func TestReplace(t *testing.T) {
	d := New(intDiscipline())
	if added := d.Replace(1, "one"); !added {
		t.Fatalf("expected first Replace to report added")
	}
	if added := d.Replace(1, "uno"); added {
		t.Fatalf("expected second Replace to report overwrite")
	}
	val, _ := d.Get(1)
	if val != "uno" {
		t.Fatalf("Get(1) = %q, want uno", val)
	}
}

func TestUnlinkVsDeleteCallback(t *testing.T) {
	var removed []int
	opts := intDiscipline()
	opts.OnKeyRemoved = func(k int, v string) { removed = append(removed, k) }
	d := New(opts)

	d.Add(1, "one")
	d.Add(2, "two")

	if _, err := d.Unlink(1); err != nil {
		t.Fatalf("Unlink: %v", err)
	}
	if len(removed) != 0 {
		t.Fatalf("Unlink must not invoke OnKeyRemoved, got %v", removed)
	}
	if err := d.Delete(2); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if len(removed) != 1 || removed[0] != 2 {
		t.Fatalf("Delete must invoke OnKeyRemoved, got %v", removed)
	}
}

// TestIncrementalRehashPreservesAllKeys grows a dict well past its
// initial size and checks that every key is reachable at every point
// during the rehash, not just once it completes.
func TestIncrementalRehashPreservesAllKeys(t *testing.T) {
	d := New(intDiscipline())
	const n = 5000
	for i := 0; i < n; i++ {
		if err := d.Add(i, "v"); err != nil {
			t.Fatalf("Add(%d): %v", i, err)
		}
		// spot-check a handful of previously inserted keys while a
		// rehash may be in flight.
		if i%97 == 0 {
			for j := 0; j <= i; j += 31 {
				if !d.Has(j) {
					t.Fatalf("key %d missing mid-rehash at i=%d", j, i)
				}
			}
		}
	}
	if d.Len() != n {
		t.Fatalf("Len() = %d, want %d", d.Len(), n)
	}
	for i := 0; i < n; i++ {
		if !d.Has(i) {
			t.Fatalf("key %d missing after fill", i)
		}
	}
}

func TestRehashStepDrainsFully(t *testing.T) {
	d := New(intDiscipline())
	for i := 0; i < 200; i++ {
		d.Add(i, "v")
	}
	d.Expand(1024)
	if !d.IsRehashing() {
		t.Fatalf("expected rehash in progress after Expand")
	}
	for d.RehashStep(10) {
	}
	if d.IsRehashing() {
		t.Fatalf("expected rehash to complete")
	}
	if d.Len() != 200 {
		t.Fatalf("Len() = %d, want 200", d.Len())
	}
}

func TestSafeIteratorSurvivesMutation(t *testing.T) {
	d := New(intDiscipline())
	for i := 0; i < 50; i++ {
		d.Add(i, "v")
	}
	d.Expand(256) // force a rehash in progress

	it := NewIterator(d, true)
	seen := map[int]bool{}
	for {
		k, _, ok := it.Next()
		if !ok {
			break
		}
		seen[k] = true
		if k == 10 {
			d.Delete(11) // mutate mid-iteration; must not panic
		}
	}
	it.Release()

	if len(seen) < 40 {
		t.Fatalf("safe iterator saw too few keys: %d", len(seen))
	}
}

func TestUnsafeIteratorDetectsMutation(t *testing.T) {
	d := New(intDiscipline())
	for i := 0; i < 10; i++ {
		d.Add(i, "v")
	}

	defer func() {
		r := recover()
		if r != ErrFingerprintMismatch {
			t.Fatalf("expected ErrFingerprintMismatch panic, got %v", r)
		}
	}()

	it := NewIterator(d, false)
	it.Next()
	d.Add(1000, "intruder")
	it.Release()
	t.Fatalf("expected panic before reaching here")
}

func TestScanVisitsEveryKey(t *testing.T) {
	d := New(intDiscipline())
	const n = 300
	for i := 0; i < n; i++ {
		d.Add(i, "v")
	}

	seen := map[int]bool{}
	var cursor uint64
	iterations := 0
	for {
		cursor = d.Scan(cursor, func(k int, v string) { seen[k] = true })
		iterations++
		if cursor == 0 {
			break
		}
		if iterations > n*4 {
			t.Fatalf("scan did not terminate")
		}
	}

	for i := 0; i < n; i++ {
		if !seen[i] {
			t.Fatalf("scan missed key %d", i)
		}
	}
}

func TestScanDuringRehash(t *testing.T) {
	d := New(intDiscipline())
	const n = 200
	for i := 0; i < n; i++ {
		d.Add(i, "v")
	}
	d.Expand(1024)
	if !d.IsRehashing() {
		t.Fatalf("expected rehash in progress")
	}

	seen := map[int]bool{}
	var cursor uint64
	iterations := 0
	for {
		cursor = d.Scan(cursor, func(k int, v string) { seen[k] = true })
		iterations++
		if cursor == 0 {
			break
		}
		if iterations > n*8 {
			t.Fatalf("scan did not terminate during rehash")
		}
	}
	for i := 0; i < n; i++ {
		if !seen[i] {
			t.Fatalf("scan missed key %d during rehash", i)
		}
	}
}

func TestRandomKeyUniformish(t *testing.T) {
	d := New(intDiscipline())
	for i := 0; i < 100; i++ {
		d.Add(i, "v")
	}
	rng := rand.New(rand.NewSource(1))
	counts := make(map[int]int)
	for i := 0; i < 5000; i++ {
		k, _, ok := d.RandomKey(rng)
		if !ok {
			t.Fatalf("RandomKey returned ok=false on non-empty dict")
		}
		counts[k]++
	}
	if len(counts) < 50 {
		t.Fatalf("RandomKey only ever returned %d distinct keys out of 100", len(counts))
	}
}

func TestSampleRespectsCount(t *testing.T) {
	d := New(intDiscipline())
	for i := 0; i < 1000; i++ {
		d.Add(i, "v")
	}
	rng := rand.New(rand.NewSource(2))
	out := d.Sample(rng, 50)
	if len(out) != 50 {
		t.Fatalf("Sample returned %d items, want 50", len(out))
	}
	out = d.Sample(rng, 10000)
	if len(out) > 1000 {
		t.Fatalf("Sample returned more items than dict has entries")
	}
}

func TestResizeShrinksAfterDeletes(t *testing.T) {
	opts := intDiscipline()
	opts.CanResize = true
	d := New(opts)
	for i := 0; i < 1000; i++ {
		d.Add(i, "v")
	}
	for i := 0; i < 990; i++ {
		d.Delete(i)
	}
	before := d.t0.size()
	if err := d.Resize(); err != nil {
		t.Fatalf("Resize: %v", err)
	}
	for d.RehashStep(10) {
	}
	if d.t0.size() >= before {
		t.Fatalf("Resize did not shrink table: before=%d after=%d", before, d.t0.size())
	}
	if d.Len() != 10 {
		t.Fatalf("Len() = %d, want 10", d.Len())
	}
}

func TestExpandRejectsRedundantResize(t *testing.T) {
	d := New(intDiscipline())
	d.Add(1, "v")
	if err := d.Expand(d.t0.size()); err != ErrResizeSkipped {
		t.Fatalf("expected ErrResizeSkipped, got %v", err)
	}
}
