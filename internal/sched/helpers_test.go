package sched

import (
	"testing"
)

// spin returns a body doing units of work.
func spin(units int) Body {
	return BodyFunc(func(p *Proc) { p.Work(units) })
}

func newTestScheduler(t *testing.T, bodies map[string]Body) *Scheduler {
	t.Helper()
	cat := NewCatalog()
	for name, body := range bodies {
		cat.Register(name, body)
	}
	s := New(DefaultConfig(), cat)
	t.Cleanup(func() { s.Close() })
	return s
}

type step struct {
	Kind EventKind
	PID  PID
}

// record collects scheduler events from now on.
func record(s *Scheduler) *[]step {
	var got []step
	s.OnEvent(func(ev Event) {
		got = append(got, step{Kind: ev.Kind, PID: ev.PID})
	})
	return &got
}

func mustCreate(t *testing.T, s *Scheduler, name string, class QuantumClass, prio Priority) PID {
	t.Helper()
	pid, err := s.Create(name, class, prio)
	if err != nil {
		t.Fatalf("Create(%s) failed: %v", name, err)
	}
	return pid
}
