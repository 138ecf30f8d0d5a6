package sched

import "strings"

// PID uniquely identifies a live task in the registry. 0 is the placeholder.
type PID int

// PlaceholderPID is reserved for the idle placeholder task.
const PlaceholderPID PID = 0

// State is the scheduling state of a task.
type State int

const (
	StateRunning State = iota
	StateReady
	StateWaiting
	StateTerminated
)

func (s State) String() string {
	switch s {
	case StateRunning:
		return "TASK_RUNNING"
	case StateReady:
		return "TASK_READY"
	case StateWaiting:
		return "TASK_WAITING"
	case StateTerminated:
		return "TASK_TERMINATED"
	default:
		return "TASK_UNKNOWN"
	}
}

// Priority is recorded and displayed only; selection never looks at it.
type Priority byte

const (
	PriorityHigh Priority = 'H'
	PriorityLow  Priority = 'L'
)

// ParsePriority accepts "H" or "L"; anything else is low.
func ParsePriority(s string) Priority {
	if strings.EqualFold(s, "H") {
		return PriorityHigh
	}
	return PriorityLow
}

// QuantumClass selects between the long and short time slice.
type QuantumClass byte

const (
	ClassLong  QuantumClass = 'L'
	ClassShort QuantumClass = 'S'
)

// ParseQuantumClass accepts "L" or "S"; anything else is short.
func ParseQuantumClass(s string) QuantumClass {
	if strings.EqualFold(s, "L") {
		return ClassLong
	}
	return ClassShort
}

// Task represents one schedulable unit of work.
type Task struct {
	PID          PID
	Name         string
	State        State
	Quantum      int      // time slice in time units
	QueueingTime int      // time spent READY while other tasks ran
	WaitingTime  int      // remaining time before a WAITING task becomes READY
	Priority     Priority // H or L, display only

	body Body
	ctx  *execContext // nil until first dispatch and after release
}

// newTask creates a READY task with zeroed accounting.
// NOTE: the execution context is built lazily on first dispatch.
func newTask(pid PID, name string, body Body, quantum int, prio Priority) *Task {
	return &Task{
		PID:      pid,
		Name:     name,
		State:    StateReady,
		Quantum:  quantum,
		Priority: prio,
		body:     body,
	}
}

// IsPlaceholder reports whether t is the synthetic idle task.
func (t *Task) IsPlaceholder() bool { return t.PID == PlaceholderPID }

// release drops the execution context, unblocking its goroutine if parked.
func (t *Task) release() {
	if t.ctx != nil {
		t.ctx.release()
		t.ctx = nil
	}
}
