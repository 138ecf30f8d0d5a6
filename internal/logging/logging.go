package logging

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// Options selects the handler and threshold of a logger.
type Options struct {
	Level  string // debug, info, warn (or warning), error; slog offsets like "warn+2" work too
	Format string // text or json
	Source bool   // add file:line of the call site
}

// New builds the simulator logger. Logs go to w (stderr in the binary);
// stdout is reserved for the prompt, the status table and task output.
func New(w io.Writer, o Options) (*slog.Logger, error) {
	level, err := ParseLevel(o.Level)
	if err != nil {
		return nil, err
	}
	opts := &slog.HandlerOptions{Level: level, AddSource: o.Source}

	switch strings.ToLower(o.Format) {
	case "", "text":
		return slog.New(slog.NewTextHandler(w, opts)), nil
	case "json":
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	default:
		return nil, fmt.Errorf("unknown log format %q", o.Format)
	}
}

// ParseLevel converts a level name to slog.Level. Empty means warn, which
// keeps the interactive prompt quiet.
func ParseLevel(s string) (slog.Level, error) {
	s = strings.TrimSpace(s)
	switch strings.ToLower(s) {
	case "":
		return slog.LevelWarn, nil
	case "warning":
		s = "warn"
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelWarn, fmt.Errorf("log level %q: %w", s, err)
	}
	return level, nil
}
