package sched

import (
	"fmt"

	"github.com/emirpasic/gods/lists/singlylinkedlist"
)

// Registry owns the tasks in insertion order and the scheduling cursor.
// It is a ring: the successor of the tail is the head.
type Registry struct {
	catalog        *Catalog
	list           *singlylinkedlist.List // *Task, insertion ordered
	cursor         *Task                  // next task to consider; nil iff empty
	nextPID        PID
	hasPlaceholder bool
}

// NewRegistry creates an empty registry resolving names against catalog.
func NewRegistry(catalog *Catalog) *Registry {
	return &Registry{
		catalog: catalog,
		list:    singlylinkedlist.New(),
		nextPID: 1,
	}
}

// Create appends a READY task running the named body.
func (r *Registry) Create(name string, quantum int, prio Priority) (*Task, error) {
	body, ok := r.catalog.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("create %q: %w", name, ErrUnknownTaskBody)
	}

	var pid PID
	if name == PlaceholderName {
		if r.hasPlaceholder {
			return nil, ErrPlaceholderExists
		}
		pid = PlaceholderPID
		r.hasPlaceholder = true
	} else {
		pid = r.nextPID
		r.nextPID++
	}

	t := newTask(pid, name, body, quantum, prio)
	r.list.Add(t)
	if r.cursor == nil {
		r.cursor = t
	}
	return t, nil
}

// Remove unlinks the task with the given pid and releases its context.
func (r *Registry) Remove(pid PID) error {
	idx, t := r.find(pid)
	if t == nil {
		return fmt.Errorf("remove %d: %w", pid, ErrNoSuchTask)
	}

	if r.cursor == t {
		if r.list.Size() == 1 {
			r.cursor = nil
		} else {
			r.cursor = r.Next(t)
		}
	}
	r.list.Remove(idx)
	if t.IsPlaceholder() {
		r.hasPlaceholder = false
	}
	t.release()
	return nil
}

// Lookup returns the task with the given pid, or nil.
func (r *Registry) Lookup(pid PID) *Task {
	_, t := r.find(pid)
	return t
}

func (r *Registry) find(pid PID) (int, *Task) {
	it := r.list.Iterator()
	for it.Next() {
		if t := it.Value().(*Task); t.PID == pid {
			return it.Index(), t
		}
	}
	return -1, nil
}

// Tasks returns the tasks in registry order.
func (r *Registry) Tasks() []*Task {
	tasks := make([]*Task, 0, r.list.Size())
	it := r.list.Iterator()
	for it.Next() {
		tasks = append(tasks, it.Value().(*Task))
	}
	return tasks
}

// Len is the number of tasks, placeholder included.
func (r *Registry) Len() int { return r.list.Size() }

// Cursor is where the next selection scan begins.
func (r *Registry) Cursor() *Task { return r.cursor }

// Placeholder returns the tracked placeholder task, or nil.
func (r *Registry) Placeholder() *Task {
	if !r.hasPlaceholder {
		return nil
	}
	return r.Lookup(PlaceholderPID)
}

func (r *Registry) setCursor(t *Task) { r.cursor = t }

// Next returns the ring successor of t.
func (r *Registry) Next(t *Task) *Task {
	idx := r.list.IndexOf(t)
	if idx < 0 || r.list.Size() == 0 {
		return nil
	}
	v, _ := r.list.Get((idx + 1) % r.list.Size())
	return v.(*Task)
}

// advance moves the cursor to its ring successor.
func (r *Registry) advance() {
	if r.cursor != nil {
		r.cursor = r.Next(r.cursor)
	}
}

// Clear releases every task and empties the registry. Pids restart at 1.
func (r *Registry) Clear() {
	for _, t := range r.Tasks() {
		t.release()
	}
	r.list.Clear()
	r.cursor = nil
	r.nextPID = 1
	r.hasPlaceholder = false
}
