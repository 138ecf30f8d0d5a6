// internal/sched/timer.go

package sched

import (
	"sync/atomic"
	"time"
)

// Timer is the one-shot quantum timer. Arm and Disarm are called by the
// scheduler; Tick is called from the running task once per time unit of work
// and reports, once, that the armed quantum has expired.
type Timer interface {
	Arm(quantum int)
	Disarm()
	Tick() bool
}

// TickTimer is a deterministic timer: every Tick is one time unit.
type TickTimer struct {
	armed     atomic.Bool
	remaining atomic.Int64
}

// NewTickTimer creates a disarmed tick timer.
func NewTickTimer() *TickTimer { return &TickTimer{} }

func (t *TickTimer) Arm(quantum int) {
	t.remaining.Store(int64(quantum))
	t.armed.Store(true)
}

func (t *TickTimer) Disarm() { t.armed.Store(false) }

func (t *TickTimer) Tick() bool {
	if !t.armed.Load() {
		return false
	}
	if t.remaining.Add(-1) > 0 {
		return false
	}
	t.armed.Store(false) // one-shot
	return true
}

// WallTimer fires after quantum*unit of real time. Tick burns one unit.
type WallTimer struct {
	unit  time.Duration
	timer *time.Timer
	gen   atomic.Uint64 // invalidates callbacks of disarmed timers
	fired atomic.Bool
}

// NewWallTimer creates a disarmed timer with the given time unit.
func NewWallTimer(unit time.Duration) *WallTimer {
	return &WallTimer{unit: unit}
}

func (w *WallTimer) Arm(quantum int) {
	w.Disarm()
	g := w.gen.Load()
	w.timer = time.AfterFunc(time.Duration(quantum)*w.unit, func() {
		if w.gen.Load() == g {
			w.fired.Store(true)
		}
	})
}

func (w *WallTimer) Disarm() {
	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
	w.gen.Add(1)
	w.fired.Store(false)
}

func (w *WallTimer) Tick() bool {
	time.Sleep(w.unit)
	return w.fired.Swap(false)
}
