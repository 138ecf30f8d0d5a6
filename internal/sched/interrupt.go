package sched

import "sync/atomic"

// interrupts latches asynchronous events (quantum expiry, pause requests)
// and delivers them to the running task at its next preemption point.
// While masked nothing is delivered; pending events stay latched.
type interrupts struct {
	timer  Timer
	masked atomic.Bool
	pause  atomic.Bool
	expiry atomic.Bool
}

func newInterrupts(timer Timer) *interrupts {
	irq := &interrupts{timer: timer}
	irq.masked.Store(true)
	return irq
}

func (irq *interrupts) mask()   { irq.masked.Store(true) }
func (irq *interrupts) unmask() { irq.masked.Store(false) }

func (irq *interrupts) requestPause() { irq.pause.Store(true) }

// arm starts the one-shot quantum timer and drops any stale expiry.
func (irq *interrupts) arm(quantum int) {
	irq.expiry.Store(false)
	irq.timer.Arm(quantum)
}

// disarm stops the timer; called first by every handler.
func (irq *interrupts) disarm() {
	irq.timer.Disarm()
	irq.expiry.Store(false)
}

// reset clears every latched event, e.g. before a new Start.
func (irq *interrupts) reset() {
	irq.disarm()
	irq.pause.Store(false)
}

// tick accounts one unit of work and returns the event to deliver, if any.
func (irq *interrupts) tick() (yieldKind, bool) {
	if irq.timer.Tick() {
		irq.expiry.Store(true)
	}
	if irq.masked.Load() {
		return 0, false
	}
	if irq.pause.Swap(false) {
		return yieldPause, true
	}
	if irq.expiry.Swap(false) {
		return yieldPreempt, true
	}
	return 0, false
}
