package sched

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	yaml "github.com/goccy/go-yaml"
)

// Timer modes.
const (
	TimerTick = "tick" // deterministic: one time unit per Proc.Step
	TimerWall = "wall" // real one-shot timer, TickMS per time unit
)

// Config mirrors config.yml
type Config struct {
	Timer        string `yaml:"timer"`         // tick (by default)
	TickMS       int    `yaml:"tick_ms"`       // 1 (by default), wall mode only
	LongQuantum  int    `yaml:"long_quantum"`  // 20 (by default)
	ShortQuantum int    `yaml:"short_quantum"` // 10 (by default)
	SuspendScale int    `yaml:"suspend_scale"` // 10 (by default): Suspend(d) waits d*scale units
	CSVPath      string `yaml:"csv_path"`      // empty = no event trace
}

// DefaultConfig returns the values used when no config file is given.
func DefaultConfig() Config {
	return Config{
		Timer:        TimerTick,
		TickMS:       1,
		LongQuantum:  20,
		ShortQuantum: 10,
		SuspendScale: 10,
	}
}

// Load reads YAML and overrides defaults; empty path or a missing file = defaults only.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("parse config %s: %w", path, err)
	}

	return cfg.normalize(), nil
}

// sanity clamps
func (c Config) normalize() Config {
	d := DefaultConfig()
	c.Timer = strings.ToLower(strings.TrimSpace(c.Timer))
	if c.Timer != TimerWall {
		c.Timer = TimerTick
	}
	if c.TickMS <= 0 {
		c.TickMS = d.TickMS
	}
	if c.LongQuantum <= 0 {
		c.LongQuantum = d.LongQuantum
	}
	if c.ShortQuantum <= 0 {
		c.ShortQuantum = d.ShortQuantum
	}
	if c.SuspendScale <= 0 {
		c.SuspendScale = d.SuspendScale
	}
	return c
}

// Quantum maps a quantum class to its length in time units.
func (c Config) Quantum(class QuantumClass) int {
	if class == ClassLong {
		return c.LongQuantum
	}
	return c.ShortQuantum
}

// Unit is the wall-clock length of one time unit.
func (c Config) Unit() time.Duration {
	return time.Duration(c.TickMS) * time.Millisecond
}

// NewTimer builds the quantum timer selected by the config.
func (c Config) NewTimer() Timer {
	if c.Timer == TimerWall {
		return NewWallTimer(c.Unit())
	}
	return NewTickTimer()
}
