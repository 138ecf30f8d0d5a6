package cli

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"rrsched/internal/job"
	"rrsched/internal/sched"
)

func runShell(t *testing.T, script string) string {
	t.Helper()
	var out bytes.Buffer
	s := sched.New(sched.DefaultConfig(), job.NewCatalog(), sched.WithOutput(&out))
	defer s.Close()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	if err := NewShell(s, strings.NewReader(script), &out, logger).Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	return out.String()
}

func TestShell_AddAndPs(t *testing.T) {
	out := runShell(t, "add task1 L H\nadd task2 -t S -p L\nps\n")

	for _, want := range []string{
		"1\ttask1\tTASK_READY\t0\tH\tL\n",
		"2\ttask2\tTASK_READY\t0\tL\tS\n",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in output:\n%s", want, out)
		}
	}
}

func TestShell_AddDefaults(t *testing.T) {
	out := runShell(t, "add task3\nadd task4 X Y\nps\n")

	for _, want := range []string{
		"1\ttask3\tTASK_READY\t0\tL\tS\n",
		"2\ttask4\tTASK_READY\t0\tL\tS\n",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in output:\n%s", want, out)
		}
	}
}

func TestShell_Diagnostics(t *testing.T) {
	out := runShell(t, "add nope\nadd\nremove 9\nremove x\nremove 99999999999999999999\nfrobnicate\n\nps\nstart\n")

	for _, want := range []string{
		"No such task name to create.",
		"the task name should be entered!",
		"No such pid in the queue.",
		"Command is unavailable",
		"No task in the queue.",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in output:\n%s", want, out)
		}
	}
	if strings.Count(out, "No such pid in the queue.") != 3 {
		t.Errorf("expected three remove diagnostics:\n%s", out)
	}
}

func TestShell_StartRunsToCompletion(t *testing.T) {
	out := runShell(t, "add task1 L H\nstart\nps\nstart\n")

	for _, want := range []string{
		"simulating:...",
		"task1: pass 3",
		"All tasks were terminated.",
		"1\ttask1\tTASK_TERMINATED\t0\tH\tL\n",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in output:\n%s", want, out)
		}
	}
}

func TestShell_RemoveAndReset(t *testing.T) {
	out := runShell(t, "add task1\nadd task2\nremove 1\nps\nreset\nadd task3\nps\nexit\nps\n")

	for _, want := range []string{
		"2\ttask2\tTASK_READY\t0\tL\tS\n",
		"1\ttask3\tTASK_READY\t0\tL\tS\n",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in output:\n%s", want, out)
		}
	}
	if strings.Contains(out, "1\ttask1") {
		t.Errorf("removed task still listed:\n%s", out)
	}
	// nothing after exit runs
	if strings.Count(out, "TASK_READY") != 2 {
		t.Errorf("unexpected rows after exit:\n%s", out)
	}
}

func TestShell_Wakeup(t *testing.T) {
	out := runShell(t, "add task1\nwakeup 1\nwakeup task4\nwakeup\n")

	if strings.Count(out, "woke 0 task(s)") != 2 {
		t.Errorf("expected no-op wakeups:\n%s", out)
	}
	if !strings.Contains(out, "usage: wakeup <pid|name>") {
		t.Errorf("missing usage:\n%s", out)
	}
}

func TestRootCmd(t *testing.T) {
	var out bytes.Buffer
	root := NewRootCmd()
	root.SetArgs([]string{"--config", filepath.Join(t.TempDir(), "none.yml"), "--log-level", "error"})
	root.SetIn(strings.NewReader("ps\nadd task1 L H\nps\nexit\n"))
	root.SetOut(&out)
	root.SetErr(io.Discard)

	if err := root.Execute(); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	for _, want := range []string{"No task in the queue.", "1\ttask1\tTASK_READY\t0\tH\tL"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("missing %q in output:\n%s", want, out.String())
		}
	}
}

func TestRootCmd_BadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yml")
	if err := writeFile(path, "short_quantum: lots\n"); err != nil {
		t.Fatal(err)
	}
	root := NewRootCmd()
	root.SetArgs([]string{"--config", path})
	root.SetIn(strings.NewReader(""))
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)

	if err := root.Execute(); err == nil {
		t.Error("expected a config error")
	}
}

func TestRootCmd_BadLogFlags(t *testing.T) {
	for _, args := range [][]string{
		{"--log-level", "loud"},
		{"--log-format", "xml"},
	} {
		root := NewRootCmd()
		root.SetArgs(append([]string{"--config", filepath.Join(t.TempDir(), "none.yml")}, args...))
		root.SetIn(strings.NewReader(""))
		root.SetOut(io.Discard)
		root.SetErr(io.Discard)

		if err := root.Execute(); err == nil {
			t.Errorf("%v: expected a logging error", args)
		}
	}
}

func writeFile(path, body string) error {
	return os.WriteFile(path, []byte(body), 0o644)
}
