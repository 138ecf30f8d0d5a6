// internal/sched/event.go

package sched

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"
	"time"
)

// EventKind represents the type of scheduler event
type EventKind int

const (
	EventCreate EventKind = iota
	EventRemove
	EventDispatch
	EventPreempt
	EventSuspend
	EventWakeup
	EventFinish
	EventPause
	EventIdle // placeholder injected
	EventAllTerminated
)

// Event is emitted on every lifecycle change of a task.
type Event struct {
	Time    time.Time
	Kind    EventKind
	PID     PID
	Name    string
	Elapsed int64 // simulated time units when the event happened
}

func (k EventKind) String() string {
	switch k {
	case EventCreate:
		return "Create"
	case EventRemove:
		return "Remove"
	case EventDispatch:
		return "Dispatch"
	case EventPreempt:
		return "Preempt"
	case EventSuspend:
		return "Suspend"
	case EventWakeup:
		return "Wakeup"
	case EventFinish:
		return "Finish"
	case EventPause:
		return "Pause"
	case EventIdle:
		return "Idle"
	case EventAllTerminated:
		return "AllTerminated"
	default:
		return "Unknown"
	}
}

// traceWriter writes events as CSV rows.
type traceWriter struct {
	w      *csv.Writer
	closer io.Closer
}

func newTraceWriter(w io.Writer) *traceWriter {
	cw := csv.NewWriter(w)
	// write header
	cw.Write([]string{"timestamp", "elapsed", "event", "pid", "name"})
	cw.Flush()
	tw := &traceWriter{w: cw}
	if c, ok := w.(io.Closer); ok {
		tw.closer = c
	}
	return tw
}

func (tw *traceWriter) write(ev Event) {
	tw.w.Write([]string{
		ev.Time.Format(time.RFC3339Nano),
		strconv.FormatInt(ev.Elapsed, 10),
		ev.Kind.String(),
		strconv.Itoa(int(ev.PID)),
		ev.Name,
	})
	tw.w.Flush()
}

func (tw *traceWriter) close() error {
	tw.w.Flush()
	if tw.closer != nil {
		return tw.closer.Close()
	}
	return tw.w.Error()
}

// EnableCSVLogging opens the given file path for CSV logging of events.
// Must be called before Start().
func (s *Scheduler) EnableCSVLogging(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	s.SetTrace(f)
	return nil
}

// SetTrace streams events as CSV to w. A nil w disables the trace.
func (s *Scheduler) SetTrace(w io.Writer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.trace != nil {
		s.trace.close()
		s.trace = nil
	}
	if w != nil {
		s.trace = newTraceWriter(w)
	}
}

// OnEvent registers a callback invoked for every event, in order, on the
// flow that caused it. Callbacks run after the scheduler lock is released,
// so they may call back into the Scheduler.
func (s *Scheduler) OnEvent(fn func(Event)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hooks = append(s.hooks, fn)
}

// emit must be called with s.mu held.
func (s *Scheduler) emit(kind EventKind, t *Task) {
	ev := Event{Time: time.Now(), Kind: kind, Elapsed: s.elapsed}
	if t != nil {
		ev.PID, ev.Name = t.PID, t.Name
	}
	s.log.Debug("scheduler event", "event", kind.String(), "pid", int(ev.PID), "name", ev.Name, "elapsed", ev.Elapsed)
	if s.trace != nil {
		s.trace.write(ev)
	}
	if len(s.hooks) > 0 {
		s.pending = append(s.pending, ev)
	}
}

// unlock releases s.mu, then hands the events emitted while it was held
// to the hooks.
func (s *Scheduler) unlock() {
	evs, hooks := s.pending, s.hooks
	s.pending = nil
	s.mu.Unlock()

	for _, ev := range evs {
		for _, fn := range hooks {
			fn(ev)
		}
	}
}
