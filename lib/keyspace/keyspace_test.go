package keyspace

import (
	"testing"
	"time"

	"github.com/tesserakv/kvcore/lib/metrics"
)

func TestAddLookupDelete(t *testing.T) {
	ks := New(DefaultOptions())
	defer ks.Close()

	if err := ks.Add(0, "a", NewStringValue([]byte("1"))); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := ks.Add(0, "a", NewStringValue([]byte("2"))); err != ErrKeyExists {
		t.Fatalf("Add duplicate = %v, want ErrKeyExists", err)
	}

	val, ok := ks.LookupRead(0, "a")
	if !ok || string(val.Str) != "1" {
		t.Fatalf("LookupRead = %+v, %v", val, ok)
	}

	if err := ks.Delete(0, "a"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, ok := ks.LookupRead(0, "a"); ok {
		t.Fatalf("key still visible after Delete")
	}
	if err := ks.Delete(0, "a"); err != ErrNoSuchKey {
		t.Fatalf("Delete missing key = %v, want ErrNoSuchKey", err)
	}
}

func TestLazyExpiry(t *testing.T) {
	ks := New(DefaultOptions())
	defer ks.Close()

	ks.Set(0, "a", NewStringValue([]byte("1")))
	ks.SetExpire(0, "a", time.Now().Add(-time.Millisecond))

	if _, ok := ks.LookupRead(0, "a"); ok {
		t.Fatalf("expired key still visible")
	}
	if _, ok := ks.GetExpire(0, "a"); ok {
		t.Fatalf("expiry entry should have been swept along with the key")
	}
}

func TestRenameKeepsExpiryInLockstep(t *testing.T) {
	ks := New(DefaultOptions())
	defer ks.Close()

	deadline := time.Now().Add(time.Hour)
	ks.Set(0, "src", NewStringValue([]byte("v")))
	ks.SetExpire(0, "src", deadline)

	if err := ks.Rename(0, "src", "dst"); err != nil {
		t.Fatalf("Rename: %v", err)
	}
	if _, ok := ks.LookupRead(0, "src"); ok {
		t.Fatalf("src still present after rename")
	}
	val, ok := ks.LookupRead(0, "dst")
	if !ok || string(val.Str) != "v" {
		t.Fatalf("dst missing after rename")
	}
	at, ok := ks.GetExpire(0, "dst")
	if !ok || !at.Equal(deadline) {
		t.Fatalf("dst expiry = %v, %v, want %v", at, ok, deadline)
	}
	if _, ok := ks.GetExpire(0, "src"); ok {
		t.Fatalf("src expiry should have moved to dst")
	}
}

func TestRenameOverwritesDestinationExpiry(t *testing.T) {
	ks := New(DefaultOptions())
	defer ks.Close()

	ks.Set(0, "src", NewStringValue([]byte("v")))
	ks.Set(0, "dst", NewStringValue([]byte("old")))
	ks.SetExpire(0, "dst", time.Now().Add(time.Hour))

	if err := ks.Rename(0, "src", "dst"); err != nil {
		t.Fatalf("Rename: %v", err)
	}
	if _, ok := ks.GetExpire(0, "dst"); ok {
		t.Fatalf("dst kept its old expiry after being overwritten by an unexpiring src")
	}
}

func TestDeleteAsyncDrainsPendingCount(t *testing.T) {
	ks := New(DefaultOptions())
	defer ks.Close()

	h := ks.NewHash()
	for i := 0; i < 10000; i++ {
		h.Set(string(rune('a'+i%26))+string(rune(i)), []byte("v"))
	}
	ks.Set(0, "bighash", NewHashValue(h))

	if err := ks.DeleteAsync(0, "bighash"); err != nil {
		t.Fatalf("DeleteAsync: %v", err)
	}
	if _, ok := ks.LookupRead(0, "bighash"); ok {
		t.Fatalf("key still visible immediately after DeleteAsync")
	}

	deadline := time.Now().Add(2 * time.Second)
	for ks.Reclaimer().Pending() != 0 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	if ks.Reclaimer().Pending() != 0 {
		t.Fatalf("reclaimer pending count did not reach zero")
	}
}

func TestDeleteAsyncSmallValueIsInline(t *testing.T) {
	ks := New(DefaultOptions())
	defer ks.Close()

	ks.Set(0, "a", NewStringValue([]byte("1")))
	if err := ks.DeleteAsync(0, "a"); err != nil {
		t.Fatalf("DeleteAsync: %v", err)
	}
	if ks.Reclaimer().Pending() != 0 {
		t.Fatalf("a plain string delete should never be handed to the background reclaimer")
	}
}

// TestBlockingPushWake exercises spec.md §8 scenario 4: a client blocks
// on a missing key with BLPOP-equivalent semantics, another client
// pushes, and the blocked client is woken with the value while the key
// itself no longer exists.
func TestBlockingPushWake(t *testing.T) {
	ks := New(DefaultOptions())
	defer ks.Close()

	w := ks.BlockForKeys(0, 1, []string{"K"}, false, nil, time.Time{})

	if _, err := ks.Push(0, "K", []byte("v"), true); err != nil {
		t.Fatalf("Push: %v", err)
	}
	ks.HandleClientsBlockedOnLists()

	select {
	case res := <-w.Result():
		if res.TimedOut || res.Key != "K" || string(res.Value) != "v" {
			t.Fatalf("unexpected wake result: %+v", res)
		}
	default:
		t.Fatalf("waiter was not woken")
	}
	if _, ok := ks.LookupRead(0, "K"); ok {
		t.Fatalf("K should no longer exist once its only element was popped")
	}
}

func TestMetricsWiring(t *testing.T) {
	ks := New(DefaultOptions())
	defer ks.Close()

	reg := metrics.New()
	ks.SetMetrics(reg)

	// Force a resize by inserting enough keys that the underlying dict
	// grows past its initial 4-bucket table.
	for i := 0; i < 64; i++ {
		ks.Set(0, string(rune('a'+i%26))+string(rune(i)), NewStringValue([]byte("v")))
	}
	if reg.DictResizeEvents.Get() == 0 {
		t.Fatalf("expected at least one dict resize event")
	}

	w := ks.BlockForKeys(0, 1, []string{"K"}, false, nil, time.Now().Add(-time.Millisecond))
	expired := ks.SweepTimeouts(time.Now())
	if len(expired) != 1 {
		t.Fatalf("SweepTimeouts = %v, want 1 expired", expired)
	}
	if reg.ClientsTimedOut.Get() != 1 {
		t.Fatalf("ClientsTimedOut = %d, want 1", reg.ClientsTimedOut.Get())
	}
	select {
	case res := <-w.Result():
		if !res.TimedOut {
			t.Fatalf("expected TimedOut result")
		}
	default:
		t.Fatalf("waiter did not receive a result")
	}
}

func TestPushWrongTypeError(t *testing.T) {
	ks := New(DefaultOptions())
	defer ks.Close()

	ks.Set(0, "s", NewStringValue([]byte("not a list")))
	if _, err := ks.Push(0, "s", []byte("v"), true); err != ErrWrongType {
		t.Fatalf("Push on string key = %v, want ErrWrongType", err)
	}
}
