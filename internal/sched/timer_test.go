package sched

import (
	"testing"
	"time"
)

func TestTickTimer(t *testing.T) {
	tt := NewTickTimer()
	if tt.Tick() {
		t.Fatal("disarmed timer must not expire")
	}

	tt.Arm(3)
	for i := 1; i <= 2; i++ {
		if tt.Tick() {
			t.Fatalf("expired early at tick %d", i)
		}
	}
	if !tt.Tick() {
		t.Fatal("expected expiry on the third tick")
	}

	tt.Disarm()
	if tt.Tick() {
		t.Error("disarmed timer must not expire")
	}
}

func TestWallTimer(t *testing.T) {
	wt := NewWallTimer(time.Millisecond)
	wt.Arm(2)

	fired := false
	for range 1000 {
		if wt.Tick() {
			fired = true
			break
		}
	}
	if !fired {
		t.Fatal("wall timer never fired")
	}

	wt.Disarm()
	if wt.Tick() {
		t.Error("Disarm should clear the expiry")
	}
}

func TestInterrupts_MaskHoldsEvents(t *testing.T) {
	tt := NewTickTimer()
	irq := newInterrupts(tt)
	irq.arm(1)
	irq.requestPause()

	if _, ok := irq.tick(); ok {
		t.Fatal("masked controller delivered an event")
	}

	irq.unmask()
	if kind, ok := irq.tick(); !ok || kind != yieldPause {
		t.Fatalf("got %v/%v, want pause", kind, ok)
	}
	if kind, ok := irq.tick(); !ok || kind != yieldPreempt {
		t.Fatalf("got %v/%v, want latched preempt", kind, ok)
	}
	if _, ok := irq.tick(); ok {
		t.Error("events should be delivered once")
	}
}
