package sched

// bookkeeping advances simulated time by ran's quantum for every other task.
// It is the only place time moves. Called masked, with s.mu held.
func (s *Scheduler) bookkeeping(ran *Task) {
	q := ran.Quantum
	s.elapsed += int64(q)

	for _, t := range s.reg.Tasks() {
		if t == ran {
			continue
		}
		switch t.State {
		case StateReady:
			t.QueueingTime += q
		case StateWaiting:
			if t.WaitingTime > 0 {
				t.WaitingTime = max(t.WaitingTime-q, 0)
			}
			if t.WaitingTime == 0 {
				t.State = StateReady
				s.emit(EventWakeup, t)
			}
		}
	}
}
