package sched

import (
	"fmt"
	"log/slog"
)

// Proc is the handle a task body uses to talk to the scheduler. Its methods
// must only be called from the body it was handed to.
type Proc struct {
	s    *Scheduler
	task *Task
	ctx  *execContext
}

// PID returns the pid of the calling task.
func (p *Proc) PID() PID { return p.task.PID }

// Name returns the catalog name of the calling task.
func (p *Proc) Name() string { return p.task.Name }

// Step performs one time unit of work. It is a preemption point: if the
// quantum expired or a pause was requested, control goes back to the
// scheduler and Step returns once the task is selected again.
func (p *Proc) Step() {
	if kind, ok := p.s.irq.tick(); ok {
		p.ctx.park(yieldEvent{kind: kind})
	}
}

// Work performs units time units of work.
func (p *Proc) Work(units int) {
	for range units {
		p.Step()
	}
}

// Suspend blocks the calling task for d*SuspendScale time units, or until it
// is woken up. It returns when the task runs again.
func (p *Proc) Suspend(d int) {
	p.ctx.park(yieldEvent{kind: yieldSuspend, duration: d})
}

// Create adds a READY task from inside a running body and returns its pid.
func (p *Proc) Create(name string, class QuantumClass, prio Priority) (PID, error) {
	return p.s.Create(name, class, prio)
}

// WakeupPID makes a WAITING task READY.
func (p *Proc) WakeupPID(pid PID) bool { return p.s.WakeupPID(pid) }

// WakeupName makes every WAITING task with the given name READY.
func (p *Proc) WakeupName(name string) int { return p.s.WakeupName(name) }

// Printf writes to the simulator's task output.
func (p *Proc) Printf(format string, args ...any) {
	fmt.Fprintf(p.s.out, format, args...)
}

// Logger returns a logger tagged with the task identity.
func (p *Proc) Logger() *slog.Logger {
	return p.s.log.With("pid", int(p.task.PID), "name", p.task.Name)
}

// WakeupPID promotes the task with the given pid from WAITING to READY,
// regardless of its remaining waiting time. Other states are left alone.
func (s *Scheduler) WakeupPID(pid PID) bool {
	s.mu.Lock()
	defer s.unlock()

	t := s.reg.Lookup(pid)
	if t == nil || t.State != StateWaiting {
		return false
	}
	s.wake(t)
	return true
}

// WakeupName promotes every WAITING task named name and returns how many.
func (s *Scheduler) WakeupName(name string) int {
	s.mu.Lock()
	defer s.unlock()

	n := 0
	for _, t := range s.reg.Tasks() {
		if t.Name == name && t.State == StateWaiting {
			s.wake(t)
			n++
		}
	}
	return n
}

func (s *Scheduler) wake(t *Task) {
	t.State = StateReady
	t.WaitingTime = 0
	s.emit(EventWakeup, t)
}
