// internal/sched/scheduler.go

package sched

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
)

// Outcome tells the driving loop why Start returned control.
type Outcome int

const (
	OutcomeNoTask        Outcome = iota // registry is empty
	OutcomeAllTerminated                // every task has finished
	OutcomePaused                       // Pause or context cancellation
)

func (o Outcome) String() string {
	switch o {
	case OutcomeNoTask:
		return "no task"
	case OutcomeAllTerminated:
		return "all terminated"
	case OutcomePaused:
		return "paused"
	default:
		return "unknown"
	}
}

// Scheduler implements a single-CPU round-robin scheduler over a Registry.
// All scheduling state of one simulation session lives here.
type Scheduler struct {
	// Scheduler-related
	mu      sync.Mutex  // protects the scheduler state; never held across a context switch
	cfg     Config      // quanta, suspend scale, timer mode
	catalog *Catalog    // name -> body
	reg     *Registry   // tasks and cursor
	irq     *interrupts // quantum timer + pause latch
	current *Task       // task holding the CPU, nil between dispatches
	elapsed int64       // simulated time units advanced by bookkeeping
	running atomic.Bool // true while Start is on the stack

	// logging-related
	session string
	baseLog *slog.Logger
	log     *slog.Logger
	out     io.Writer // task body output
	trace   *traceWriter
	hooks   []func(Event)
	pending []Event // emitted under mu, delivered to hooks on unlock
}

// Option customises a Scheduler.
type Option func(*Scheduler)

// WithLogger sets the structured logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Scheduler) { s.baseLog = l }
}

// WithOutput sets where task bodies print.
func WithOutput(w io.Writer) Option {
	return func(s *Scheduler) { s.out = w }
}

// WithTimer overrides the timer selected by the config.
func WithTimer(t Timer) Option {
	return func(s *Scheduler) { s.irq = newInterrupts(t) }
}

// New creates a Scheduler with an empty registry.
func New(cfg Config, catalog *Catalog, opts ...Option) *Scheduler {
	cfg = cfg.normalize()
	s := &Scheduler{
		cfg:     cfg,
		catalog: catalog,
		reg:     NewRegistry(catalog),
		irq:     newInterrupts(cfg.NewTimer()),
		baseLog: slog.New(slog.NewTextHandler(io.Discard, nil)),
		out:     io.Discard,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.newSession()
	return s
}

func (s *Scheduler) newSession() {
	s.session = uuid.NewString()
	s.log = s.baseLog.With("session", s.session)
}

// Config returns the effective configuration.
func (s *Scheduler) Config() Config { return s.cfg }

// Session identifies the current simulation session.
func (s *Scheduler) Session() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session
}

// Elapsed is the simulated time in time units.
func (s *Scheduler) Elapsed() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.elapsed
}

// Create adds a READY task running the named body and returns its pid.
func (s *Scheduler) Create(name string, class QuantumClass, prio Priority) (PID, error) {
	s.mu.Lock()
	defer s.unlock()

	t, err := s.reg.Create(name, s.cfg.Quantum(class), prio)
	if err != nil {
		s.log.Warn("create task", "name", name, "err", err)
		return -1, err
	}
	s.emit(EventCreate, t)
	return t.PID, nil
}

// Remove deletes a task. A suspended context is discarded without running
// the rest of its body.
func (s *Scheduler) Remove(pid PID) error {
	s.mu.Lock()
	defer s.unlock()

	if s.current != nil && s.current.PID == pid {
		return fmt.Errorf("remove %d: %w", pid, ErrTaskRunning)
	}
	t := s.reg.Lookup(pid)
	if err := s.reg.Remove(pid); err != nil {
		s.log.Warn("remove task", "pid", int(pid), "err", err)
		return err
	}
	s.emit(EventRemove, t)
	return nil
}

// Start hands the CPU to the scheduler. It returns when the registry is
// empty, every task has terminated, or a pause was requested (by Pause or
// by cancelling ctx). Scheduler state survives for the next Start.
func (s *Scheduler) Start(ctx context.Context) (Outcome, error) {
	if !s.running.CompareAndSwap(false, true) {
		return OutcomePaused, ErrAlreadyRunning
	}
	defer s.running.Store(false)

	s.irq.reset()
	stop := context.AfterFunc(ctx, s.irq.requestPause)
	defer stop()

	for {
		s.mu.Lock()
		s.irq.mask()
		if err := ctx.Err(); err != nil {
			// cancelled between dispatches: nothing is running
			s.irq.disarm()
			s.removePlaceholder()
			s.emit(EventPause, nil)
			s.unlock()
			return OutcomePaused, err
		}

		t, outcome := s.selectNext()
		if t == nil {
			s.unlock()
			return outcome, nil
		}
		c := s.dispatch(t)
		s.unlock()

		ev := c.switchTo()

		s.mu.Lock()
		s.irq.mask()
		paused := s.handle(t, ev)
		s.unlock()

		if paused {
			return OutcomePaused, ctx.Err()
		}
	}
}

// Pause asks the running simulation to return control to the driving loop.
// Safe to call from any goroutine, including a signal handler. It reports
// whether a simulation was running.
func (s *Scheduler) Pause() bool {
	if !s.running.Load() {
		return false
	}
	s.irq.requestPause()
	return true
}

// selectNext scans the ring from the cursor for the first runnable task.
// A task left RUNNING by a pause is resumed before anything else.
func (s *Scheduler) selectNext() (*Task, Outcome) {
	if s.reg.Len() == 0 {
		s.log.Info("no task in the queue")
		return nil, OutcomeNoTask
	}

	start := s.reg.Cursor()
	allTerminated := true
	t := start
	for {
		if t.State == StateReady || t.State == StateRunning {
			s.reg.setCursor(t)
			return t, 0
		}
		if t.State != StateTerminated {
			allTerminated = false
		}
		t = s.reg.Next(t)
		if t == start {
			break
		}
	}

	if allTerminated {
		s.irq.disarm()
		s.log.Info("all tasks were terminated")
		s.emit(EventAllTerminated, nil)
		return nil, OutcomeAllTerminated
	}

	// Everything is WAITING: run the placeholder so time keeps moving.
	ph := s.reg.Placeholder()
	if ph == nil {
		var err error
		ph, err = s.reg.Create(PlaceholderName, s.cfg.ShortQuantum, PriorityLow)
		if err != nil {
			panic(fmt.Sprintf("inject placeholder: %v", err))
		}
		s.emit(EventIdle, ph)
	}
	s.reg.setCursor(ph)
	return ph, 0
}

// dispatch arms the quantum timer and prepares t's context for the switch.
func (s *Scheduler) dispatch(t *Task) *execContext {
	if t.ctx == nil {
		p := &Proc{s: s, task: t}
		t.ctx = newExecContext(t.body, p)
		p.ctx = t.ctx
	}
	s.current = t
	t.State = StateRunning
	s.irq.arm(t.Quantum)
	s.emit(EventDispatch, t)
	s.irq.unmask()
	return t.ctx
}

// handle runs the handler for the way t gave up the CPU. Called masked.
// It reports whether control goes back to the driving loop.
func (s *Scheduler) handle(t *Task, ev yieldEvent) bool {
	defer func() { s.current = nil }()

	switch ev.kind {
	case yieldPreempt:
		s.preempt(t)
	case yieldSuspend:
		s.suspend(t, ev.duration)
	case yieldExit:
		s.terminate(t)
	case yieldFault:
		s.log.Error("task body failed", "pid", int(t.PID), "name", t.Name, "err", ev.fault)
		s.terminate(t)
	case yieldPause:
		s.pause(t)
		return true
	}
	return false
}

// preempt handles quantum expiry.
func (s *Scheduler) preempt(t *Task) {
	s.irq.disarm()
	s.bookkeeping(t)
	// t may have suspended itself before the timer fired
	if t.State == StateRunning {
		t.State = StateReady
	}
	s.emit(EventPreempt, t)
	if s.reg.Cursor() == t {
		s.reg.advance()
	}
}

// suspend handles a voluntary Suspend(d).
func (s *Scheduler) suspend(t *Task, d int) {
	s.irq.disarm()
	s.bookkeeping(t)
	if d < 0 {
		d = 0
	}
	t.State = StateWaiting
	t.WaitingTime = d * s.cfg.SuspendScale
	s.emit(EventSuspend, t)
}

// terminate is the only path to TERMINATED.
func (s *Scheduler) terminate(t *Task) {
	s.irq.disarm()
	s.removePlaceholder()
	s.bookkeeping(t)
	t.State = StateTerminated
	t.release()
	s.emit(EventFinish, t)
}

// pause returns to the driving loop. The interrupted task keeps its context.
func (s *Scheduler) pause(t *Task) {
	s.irq.disarm()
	s.removePlaceholder()
	s.bookkeeping(t)
	s.emit(EventPause, t)
}

func (s *Scheduler) removePlaceholder() {
	ph := s.reg.Placeholder()
	if ph == nil {
		return
	}
	_ = s.reg.Remove(PlaceholderPID)
	s.emit(EventRemove, ph)
}

// Reset discards every task and starts a new session.
func (s *Scheduler) Reset() error {
	if s.running.Load() {
		return ErrAlreadyRunning
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.reg.Clear()
	s.irq.reset()
	s.current = nil
	s.elapsed = 0
	s.newSession()
	return nil
}

// Close releases every task and closes the event trace.
func (s *Scheduler) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.reg.Clear()
	if s.trace != nil {
		err := s.trace.close()
		s.trace = nil
		return err
	}
	return nil
}
