package sched

import (
	"runtime"

	"github.com/emirpasic/gods/maps/treemap"
)

// PlaceholderName is the reserved catalog name of the idle placeholder body.
const PlaceholderName = "waiting"

// Body is the entry point of a task. Run returns when the task is finished.
type Body interface {
	Run(p *Proc)
}

// BodyFunc adapts a plain function to Body.
type BodyFunc func(p *Proc)

func (f BodyFunc) Run(p *Proc) { f(p) }

// Catalog maps task names to bodies. The placeholder is always present.
type Catalog struct {
	bodies *treemap.Map // string -> Body, sorted by name
}

// NewCatalog returns a catalog holding only the placeholder body.
func NewCatalog() *Catalog {
	c := &Catalog{bodies: treemap.NewWithStringComparator()}
	c.bodies.Put(PlaceholderName, BodyFunc(idle))
	return c
}

// Register adds or replaces a body. The placeholder name cannot be replaced.
func (c *Catalog) Register(name string, body Body) {
	if name == PlaceholderName || body == nil {
		return
	}
	c.bodies.Put(name, body)
}

// Lookup resolves a name to its body.
func (c *Catalog) Lookup(name string) (Body, bool) {
	v, ok := c.bodies.Get(name)
	if !ok {
		return nil, false
	}
	return v.(Body), true
}

// Names lists the user-visible bodies in name order.
func (c *Catalog) Names() []string {
	names := make([]string, 0, c.bodies.Size())
	for _, k := range c.bodies.Keys() {
		if n := k.(string); n != PlaceholderName {
			names = append(names, n)
		}
	}
	return names
}

// idle keeps the preemption clock advancing while every real task waits.
func idle(p *Proc) {
	for {
		p.Step()
		runtime.Gosched()
	}
}
