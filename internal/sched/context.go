package sched

import (
	"fmt"
	"runtime"
)

// yieldKind says why a task handed control back to the scheduler.
type yieldKind int

const (
	yieldPreempt yieldKind = iota // quantum expired
	yieldPause                    // external pause request
	yieldSuspend                  // voluntary Suspend
	yieldExit                     // body returned
	yieldFault                    // body panicked
)

type yieldEvent struct {
	kind     yieldKind
	duration int   // yieldSuspend
	fault    error // yieldFault
}

// execContext is the resumable control state of one task: a goroutine that
// runs only between a switchTo and the next park. The scheduler side blocks
// in switchTo while the task side runs, so one flow is active at a time.
type execContext struct {
	body     Body
	proc     *Proc
	resume   chan struct{}
	yield    chan yieldEvent
	quit     chan struct{}
	started  bool
	finished bool
	released bool
}

func newExecContext(body Body, proc *Proc) *execContext {
	return &execContext{
		body:   body,
		proc:   proc,
		resume: make(chan struct{}),
		yield:  make(chan yieldEvent),
		quit:   make(chan struct{}),
	}
}

// switchTo enters (first call) or resumes the context and blocks until it
// yields. Scheduler side only.
func (c *execContext) switchTo() yieldEvent {
	if !c.started {
		c.started = true
		go c.trampoline()
	} else {
		c.resume <- struct{}{}
	}
	ev := <-c.yield
	if ev.kind == yieldExit || ev.kind == yieldFault {
		c.finished = true
	}
	return ev
}

func (c *execContext) trampoline() {
	defer func() {
		// runtime.Goexit from park also lands here, with nothing to recover.
		if r := recover(); r != nil {
			c.yield <- yieldEvent{kind: yieldFault, fault: fmt.Errorf("task panicked: %v", r)}
		}
	}()
	c.body.Run(c.proc)
	c.yield <- yieldEvent{kind: yieldExit}
}

// park hands ev to the scheduler and blocks until resumed. Task side only.
// If the context is released while parked the goroutine exits here; the
// body's deferred calls run but nothing else unwinds.
func (c *execContext) park(ev yieldEvent) {
	c.yield <- ev
	select {
	case <-c.resume:
	case <-c.quit:
		runtime.Goexit()
	}
}

// release frees a context that is not currently running.
func (c *execContext) release() {
	if c.released {
		return
	}
	c.released = true
	if c.started && !c.finished {
		close(c.quit)
	}
}
