package sched

import (
	"fmt"
	"io"
)

// StatusRow is one line of the process status table.
type StatusRow struct {
	PID          PID
	Name         string
	State        State
	QueueingTime int
	Priority     Priority
	Class        QuantumClass
}

func (r StatusRow) String() string {
	return fmt.Sprintf("%d\t%s\t%s\t%d\t%c\t%c", r.PID, r.Name, r.State, r.QueueingTime, r.Priority, r.Class)
}

// Status snapshots every task in registry order.
func (s *Scheduler) Status() []StatusRow {
	s.mu.Lock()
	defer s.mu.Unlock()

	tasks := s.reg.Tasks()
	rows := make([]StatusRow, 0, len(tasks))
	for _, t := range tasks {
		class := ClassShort
		if t.Quantum == s.cfg.LongQuantum {
			class = ClassLong
		}
		rows = append(rows, StatusRow{
			PID:          t.PID,
			Name:         t.Name,
			State:        t.State,
			QueueingTime: t.QueueingTime,
			Priority:     t.Priority,
			Class:        class,
		})
	}
	return rows
}

// WriteStatus prints the status table, one tab-separated row per task,
// and returns the number of rows.
func (s *Scheduler) WriteStatus(w io.Writer) (int, error) {
	rows := s.Status()
	for _, r := range rows {
		if _, err := fmt.Fprintln(w, r.String()); err != nil {
			return 0, err
		}
	}
	return len(rows), nil
}
