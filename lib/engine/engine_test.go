package engine

import (
	"testing"
	"time"

	"github.com/tesserakv/kvcore/lib/config"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	e := New(config.DefaultTunables())
	t.Cleanup(e.Close)
	return e
}

func TestSetGetDel(t *testing.T) {
	e := newTestEngine(t)

	e.Set(0, "a", []byte("1"))
	v, err := e.Get(0, "a")
	if err != nil || string(v) != "1" {
		t.Fatalf("Get = %s, %v", v, err)
	}

	if err := e.Del(0, "a"); err != nil {
		t.Fatalf("Del: %v", err)
	}
	if _, err := e.Get(0, "a"); !IsKind(err, KindNotFound) {
		t.Fatalf("Get after Del = %v, want KindNotFound", err)
	}
}

func TestHSetHGetHDel(t *testing.T) {
	e := newTestEngine(t)

	if err := e.HSet(0, "h", "f", []byte("v")); err != nil {
		t.Fatalf("HSet: %v", err)
	}
	v, err := e.HGet(0, "h", "f")
	if err != nil || string(v) != "v" {
		t.Fatalf("HGet = %s, %v", v, err)
	}

	if err := e.HDel(0, "h", "f"); err != nil {
		t.Fatalf("HDel: %v", err)
	}
	if _, err := e.Get(0, "h"); !IsKind(err, KindNotFound) {
		t.Fatalf("hash key should be gone once its last field is removed")
	}
}

func TestHSetWrongType(t *testing.T) {
	e := newTestEngine(t)
	e.Set(0, "s", []byte("str"))
	if err := e.HSet(0, "s", "f", []byte("v")); !IsKind(err, KindWrongType) {
		t.Fatalf("HSet on string key = %v, want KindWrongType", err)
	}
}

func TestPushPop(t *testing.T) {
	e := newTestEngine(t)

	if n, err := e.RPush(0, "l", []byte("a")); err != nil || n != 1 {
		t.Fatalf("RPush = %d, %v", n, err)
	}
	if n, err := e.LPush(0, "l", []byte("b")); err != nil || n != 2 {
		t.Fatalf("LPush = %d, %v", n, err)
	}

	v, err := e.LPop(0, "l")
	if err != nil || string(v) != "b" {
		t.Fatalf("LPop = %s, %v", v, err)
	}
	v, err = e.RPop(0, "l")
	if err != nil || string(v) != "a" {
		t.Fatalf("RPop = %s, %v", v, err)
	}
	if _, err := e.LPop(0, "l"); !IsKind(err, KindNotFound) {
		t.Fatalf("LPop on drained list = %v, want KindNotFound", err)
	}
}

func TestBLPopWakesOnPush(t *testing.T) {
	e := newTestEngine(t)

	resCh := make(chan BLPopResult, 1)
	go func() {
		resCh <- e.BLPop(0, 1, []string{"K"}, 0)
	}()

	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if e.Keyspace().Blocking().BlockedClientCount() > 0 {
			break
		}
		time.Sleep(time.Millisecond)
	}

	if _, err := e.RPush(0, "K", []byte("v")); err != nil {
		t.Fatalf("RPush: %v", err)
	}

	select {
	case res := <-resCh:
		if res.TimedOut || res.Key != "K" || string(res.Value) != "v" {
			t.Fatalf("unexpected BLPop result: %+v", res)
		}
	case <-time.After(time.Second):
		t.Fatalf("BLPop never woke")
	}
}

func TestBLPopTimesOut(t *testing.T) {
	e := newTestEngine(t)

	resCh := make(chan BLPopResult, 1)
	go func() {
		resCh <- e.BLPop(0, 1, []string{"missing"}, 5*time.Millisecond)
	}()

	deadline := time.Now().Add(200 * time.Millisecond)
	for time.Now().Before(deadline) {
		if len(e.SweepTimeouts(time.Now())) > 0 {
			break
		}
		time.Sleep(time.Millisecond)
	}

	select {
	case res := <-resCh:
		if !res.TimedOut {
			t.Fatalf("expected timeout result, got %+v", res)
		}
	case <-time.After(time.Second):
		t.Fatalf("BLPop never timed out")
	}
}

func TestScanVisitsAllKeys(t *testing.T) {
	e := newTestEngine(t)
	want := map[string]bool{}
	for i := 0; i < 50; i++ {
		k := string(rune('a'+i%26)) + string(rune(i))
		e.Set(0, k, []byte("v"))
		want[k] = true
	}

	seen := map[string]bool{}
	var cursor uint64
	for {
		keys, next := e.Scan(0, cursor, 10)
		for _, k := range keys {
			seen[k] = true
		}
		cursor = next
		if cursor == 0 {
			break
		}
	}

	if len(seen) != len(want) {
		t.Fatalf("scan saw %d keys, want %d", len(seen), len(want))
	}
}
