package job

import "rrsched/internal/sched"

// task1 is pure CPU work spanning a few quanta.
func task1(p *sched.Proc) {
	for i := 1; i <= 3; i++ {
		p.Work(15)
		p.Printf("task1: pass %d\n", i)
	}
}

// task2 alternates short bursts with sleeps.
func task2(p *sched.Proc) {
	for i := 1; i <= 3; i++ {
		p.Work(5)
		p.Printf("task2: sleeping (%d)\n", i)
		p.Suspend(2)
	}
}

// task3 sleeps once and then finishes.
func task3(p *sched.Proc) {
	p.Work(5)
	p.Suspend(5)
	p.Printf("task3: done\n")
}

// task4 waits for a long time unless somebody wakes it up.
func task4(p *sched.Proc) {
	p.Printf("task4: waiting for a wakeup\n")
	p.Suspend(1000)
	p.Printf("task4: woke up\n")
}

// task5 wakes every task4.
func task5(p *sched.Proc) {
	p.Work(10)
	n := p.WakeupName("task4")
	p.Printf("task5: woke %d task4\n", n)
}

// task6 sleeps briefly then wakes pid 1.
func task6(p *sched.Proc) {
	Sleeper(3).Run(p)
	if p.WakeupPID(1) {
		p.Printf("task6: woke pid 1\n")
	}
	p.Work(20)
}

// Sleeper returns a body that suspends for d ticks and then returns.
func Sleeper(d int) sched.Body {
	return sched.BodyFunc(func(p *sched.Proc) {
		p.Suspend(d)
	})
}

// Spinner returns a body that performs units of work and then returns.
func Spinner(units int) sched.Body {
	return sched.BodyFunc(func(p *sched.Proc) {
		p.Work(units)
	})
}
