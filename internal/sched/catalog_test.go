package sched

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestCatalog(t *testing.T) {
	c := NewCatalog()
	c.Register("task2", spin(1))
	c.Register("task1", spin(1))
	c.Register(PlaceholderName, spin(1))

	if diff := cmp.Diff([]string{"task1", "task2"}, c.Names()); diff != "" {
		t.Errorf("names mismatch (-want +got):\n%s", diff)
	}
	if _, ok := c.Lookup("task1"); !ok {
		t.Error("task1 should resolve")
	}
	if _, ok := c.Lookup("nope"); ok {
		t.Error("unknown name should not resolve")
	}
	if _, ok := c.Lookup(PlaceholderName); !ok {
		t.Error("placeholder body is always registered")
	}
}
