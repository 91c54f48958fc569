package tickdriver

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestTickDriverCallsBothClocks(t *testing.T) {
	var physicsTicks int64
	var chronoTicks int64

	d := New(
		func() { atomic.AddInt64(&physicsTicks, 1) },
		func(ms int64) { atomic.AddInt64(&chronoTicks, 1) },
	)
	d.Init()
	time.Sleep(50 * time.Millisecond)
	d.Stop()

	if atomic.LoadInt64(&physicsTicks) == 0 {
		t.Errorf("expected at least one physics tick")
	}
	if atomic.LoadInt64(&chronoTicks) == 0 {
		t.Errorf("expected at least one chronometer tick")
	}
}

func TestPauseSuspendsCallbacks(t *testing.T) {
	var ticks int64
	d := New(func() { atomic.AddInt64(&ticks, 1) }, func(int64) {})
	d.Init()
	d.Pause()
	time.Sleep(30 * time.Millisecond)
	got := atomic.LoadInt64(&ticks)
	time.Sleep(30 * time.Millisecond)
	if atomic.LoadInt64(&ticks) != got {
		t.Errorf("expected no physics ticks while paused, before=%d after=%d", got, atomic.LoadInt64(&ticks))
	}
	d.Stop()
}

func TestStopIsIdempotent(t *testing.T) {
	d := New(func() {}, func(int64) {})
	d.Init()
	d.Stop()
	d.Stop() // must not panic or block
}

func TestPauseIsIdempotent(t *testing.T) {
	d := New(func() {}, func(int64) {})
	d.Init()
	d.Pause()
	d.Pause()
	d.Enable()
	d.Stop()
}
