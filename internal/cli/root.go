package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"rrsched/internal/job"
	"rrsched/internal/logging"
	"rrsched/internal/sched"
)

var (
	flagConfig    string
	flagTimer     string
	flagCSV       string
	flagLogLevel  string
	flagLogFormat string
	flagLogSource bool
)

// NewRootCmd creates the root cobra command for rrsched.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "rrsched",
		Short:        "Round-robin scheduler simulator",
		Long:         "rrsched runs tasks on a simulated single CPU with round-robin time slicing.",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE:         run,
	}

	root.Flags().StringVar(&flagConfig, "config", "config.yml", "YAML config file (missing file = defaults)")
	root.Flags().StringVar(&flagTimer, "timer", "", "Timer mode override (tick, wall)")
	root.Flags().StringVar(&flagCSV, "csv", "", "Write a CSV event trace to this path")
	root.Flags().StringVar(&flagLogLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
	root.Flags().StringVar(&flagLogFormat, "log-format", "text", "Log format (text, json)")
	root.Flags().BoolVar(&flagLogSource, "log-source", false, "Add source locations to log records")

	return root
}

func run(cmd *cobra.Command, _ []string) error {
	logger, err := logging.New(cmd.ErrOrStderr(), logging.Options{
		Level:  flagLogLevel,
		Format: flagLogFormat,
		Source: flagLogSource,
	})
	if err != nil {
		return err
	}

	cfg, err := sched.Load(flagConfig)
	if err != nil {
		return err
	}
	if flagTimer != "" {
		cfg.Timer = flagTimer
	}
	if flagCSV != "" {
		cfg.CSVPath = flagCSV
	}

	s := sched.New(cfg, job.NewCatalog(),
		sched.WithLogger(logger),
		sched.WithOutput(cmd.OutOrStdout()),
	)
	defer s.Close()

	if cfg.CSVPath != "" {
		if err := s.EnableCSVLogging(cfg.CSVPath); err != nil {
			return fmt.Errorf("open event trace: %w", err)
		}
	}
	logger.Debug("simulator ready", "session", s.Session(), "timer", s.Config().Timer)

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()
	go watchPause(ctx, s)

	return NewShell(s, cmd.InOrStdin(), cmd.OutOrStdout(), logger).Run(ctx)
}

// watchPause turns the pause signal into Scheduler.Pause.
func watchPause(ctx context.Context, s *sched.Scheduler) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, pauseSignals...)
	defer signal.Stop(sigCh)

	for {
		select {
		case <-ctx.Done():
			return
		case <-sigCh:
			s.Pause()
		}
	}
}
