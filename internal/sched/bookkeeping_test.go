package sched

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestBookkeeping(t *testing.T) {
	s := newTestScheduler(t, map[string]Body{"spin": spin(1)})
	for range 6 {
		mustCreate(t, s, "spin", ClassShort, PriorityLow)
	}
	set := func(pid PID, st State, queueing, waiting int) {
		task := s.reg.Lookup(pid)
		task.State, task.QueueingTime, task.WaitingTime = st, queueing, waiting
	}
	set(1, StateRunning, 3, 0)    // the task that ran
	set(2, StateReady, 5, 0)      // accrues the quantum
	set(3, StateWaiting, 0, 25)   // counts down
	set(4, StateWaiting, 0, 4)    // floors at zero and wakes
	set(5, StateWaiting, 0, 10)   // reaches exactly zero and wakes
	set(6, StateTerminated, 7, 0) // untouched

	ran := s.reg.Lookup(1)
	ran.Quantum = 10
	s.mu.Lock()
	s.bookkeeping(ran)
	s.mu.Unlock()

	type row struct {
		State             State
		Queueing, Waiting int
	}
	var got []row
	for _, task := range s.reg.Tasks() {
		got = append(got, row{task.State, task.QueueingTime, task.WaitingTime})
	}
	want := []row{
		{StateRunning, 3, 0},
		{StateReady, 15, 0},
		{StateWaiting, 0, 15},
		{StateReady, 0, 0},
		{StateReady, 0, 0},
		{StateTerminated, 7, 0},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("bookkeeping mismatch (-want +got):\n%s", diff)
	}
	if s.Elapsed() != 10 {
		t.Errorf("elapsed = %d, want 10", s.Elapsed())
	}
}

func TestBookkeeping_WaitingNeverNegative(t *testing.T) {
	s := newTestScheduler(t, map[string]Body{"spin": spin(1)})
	mustCreate(t, s, "spin", ClassLong, PriorityLow)
	mustCreate(t, s, "spin", ClassShort, PriorityLow)

	ran := s.reg.Lookup(1)
	sleeper := s.reg.Lookup(2)
	sleeper.State, sleeper.WaitingTime = StateWaiting, 30

	var seen []int
	for sleeper.State == StateWaiting {
		s.mu.Lock()
		s.bookkeeping(ran)
		s.mu.Unlock()
		seen = append(seen, sleeper.WaitingTime)
	}
	if diff := cmp.Diff([]int{10, 0}, seen); diff != "" {
		t.Errorf("countdown mismatch (-want +got):\n%s", diff)
	}
}
