// Package job holds the concrete task bodies users can add by name.
package job

import "rrsched/internal/sched"

// Bodies returns the built-in bodies by name.
func Bodies() map[string]sched.Body {
	return map[string]sched.Body{
		"task1": sched.BodyFunc(task1),
		"task2": sched.BodyFunc(task2),
		"task3": sched.BodyFunc(task3),
		"task4": sched.BodyFunc(task4),
		"task5": sched.BodyFunc(task5),
		"task6": sched.BodyFunc(task6),
	}
}

// Register adds the built-in bodies to c.
func Register(c *sched.Catalog) {
	for name, body := range Bodies() {
		c.Register(name, body)
	}
}

// NewCatalog returns a catalog with the built-in bodies.
func NewCatalog() *sched.Catalog {
	c := sched.NewCatalog()
	Register(c)
	return c
}
