package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/spf13/pflag"

	"rrsched/internal/sched"
)

// Shell is the line-oriented driving loop in front of a Scheduler.
type Shell struct {
	sched *sched.Scheduler
	in    io.Reader
	out   io.Writer
	log   *slog.Logger
}

// NewShell creates a shell reading commands from in and printing to out.
func NewShell(s *sched.Scheduler, in io.Reader, out io.Writer, logger *slog.Logger) *Shell {
	return &Shell{sched: s, in: in, out: out, log: logger}
}

// Run reads commands until EOF or exit.
func (sh *Shell) Run(ctx context.Context) error {
	sc := bufio.NewScanner(sh.in)
	for {
		fmt.Fprint(sh.out, "$ ")
		if !sc.Scan() {
			fmt.Fprintln(sh.out)
			return sc.Err()
		}
		if quit := sh.Exec(ctx, sc.Text()); quit {
			return nil
		}
		if ctx.Err() != nil {
			return nil
		}
	}
}

// Exec runs one command line. It reports whether the shell should exit.
func (sh *Shell) Exec(ctx context.Context, line string) bool {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false
	}

	cmd, args := fields[0], fields[1:]
	switch cmd {
	case "add":
		sh.add(args)
	case "remove":
		sh.remove(args)
	case "start":
		sh.start(ctx)
	case "ps":
		sh.ps()
	case "wakeup":
		sh.wakeup(args)
	case "reset":
		if err := sh.sched.Reset(); err != nil {
			fmt.Fprintln(sh.out, err)
		}
	case "help":
		sh.help()
	case "exit", "quit":
		return true
	default:
		fmt.Fprintln(sh.out, "Command is unavailable")
	}
	return false
}

// add accepts both "add NAME L H" and "add NAME -t L -p H".
func (sh *Shell) add(args []string) {
	fs := pflag.NewFlagSet("add", pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	quantum := fs.StringP("time-quantum", "t", "", "L or S")
	prio := fs.StringP("priority", "p", "", "H or L")
	if err := fs.Parse(args); err != nil {
		fmt.Fprintln(sh.out, "usage: add <name> [-t L|S] [-p H|L]")
		return
	}

	pos := fs.Args()
	if len(pos) == 0 {
		fmt.Fprintln(sh.out, "the task name should be entered!")
		return
	}
	if *quantum == "" && len(pos) > 1 {
		*quantum = pos[1]
	}
	if *prio == "" && len(pos) > 2 {
		*prio = pos[2]
	}

	pid, err := sh.sched.Create(pos[0], sched.ParseQuantumClass(*quantum), sched.ParsePriority(*prio))
	if errors.Is(err, sched.ErrUnknownTaskBody) {
		fmt.Fprintln(sh.out, "No such task name to create.")
		return
	}
	if err != nil {
		fmt.Fprintln(sh.out, err)
		return
	}
	sh.log.Info("task added", "pid", int(pid), "name", pos[0])
}

func (sh *Shell) remove(args []string) {
	if len(args) == 0 {
		fmt.Fprintln(sh.out, "usage: remove <pid>")
		return
	}
	pid, err := strconv.Atoi(args[0])
	if err != nil {
		fmt.Fprintln(sh.out, "No such pid in the queue.")
		return
	}
	switch err := sh.sched.Remove(sched.PID(pid)); {
	case err == nil:
	case errors.Is(err, sched.ErrNoSuchTask):
		fmt.Fprintln(sh.out, "No such pid in the queue.")
	default:
		fmt.Fprintln(sh.out, err)
	}
}

func (sh *Shell) start(ctx context.Context) {
	fmt.Fprintln(sh.out, "simulating:...")
	outcome, err := sh.sched.Start(ctx)
	if err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintln(sh.out, err)
		return
	}
	switch outcome {
	case sched.OutcomeNoTask:
		fmt.Fprintln(sh.out, "No task in the queue.")
	case sched.OutcomeAllTerminated:
		fmt.Fprintln(sh.out, "All tasks were terminated.")
	case sched.OutcomePaused:
		fmt.Fprintln(sh.out)
	}
}

func (sh *Shell) ps() {
	n, err := sh.sched.WriteStatus(sh.out)
	if err != nil {
		sh.log.Error("write status", "err", err)
		return
	}
	if n == 0 {
		fmt.Fprintln(sh.out, "No task in the queue.")
	}
}

// wakeup takes a pid or a task name.
func (sh *Shell) wakeup(args []string) {
	if len(args) == 0 {
		fmt.Fprintln(sh.out, "usage: wakeup <pid|name>")
		return
	}
	n := 0
	if pid, err := strconv.Atoi(args[0]); err == nil {
		if sh.sched.WakeupPID(sched.PID(pid)) {
			n = 1
		}
	} else {
		n = sh.sched.WakeupName(args[0])
	}
	fmt.Fprintf(sh.out, "woke %d task(s)\n", n)
}

func (sh *Shell) help() {
	fmt.Fprint(sh.out, `commands:
  add <name> [L|S] [H|L]   add a task (also: add <name> -t L|S -p H|L)
  remove <pid>             remove a task
  start                    run the simulation (pause with Ctrl+Z)
  ps                       show the task table
  wakeup <pid|name>        wake waiting tasks
  reset                    drop every task and start a new session
  exit                     quit
`)
}
