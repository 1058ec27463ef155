package cli

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/mrlokans/qawash/internal/logger"
	"github.com/mrlokans/qawash/internal/scheduler"
)

// WatchCommand re-washes a directory on a cron schedule until interrupted.
type WatchCommand struct {
	washFlags
	Schedule string
}

func NewWatchCommand() *WatchCommand {
	return &WatchCommand{}
}

func (cmd *WatchCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("watch", flag.ExitOnError)

	cmd.register(fs)
	fs.StringVar(&cmd.Schedule, "schedule", "", "Cron schedule, e.g. \"*/10 * * * *\" or @hourly (default from config)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s watch [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Wash the directory once, then again on every scheduled tick.\n")
		fmt.Fprintf(os.Stderr, "A tick is skipped while the previous run is still going.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}
	cmd.remember(fs)
	return nil
}

func (cmd *WatchCommand) Run() error {
	cfg, err := cmd.loadConfig()
	if err != nil {
		return err
	}
	schedule := cfg.Schedule
	if cmd.Schedule != "" {
		schedule = cmd.Schedule
	}
	if err := scheduler.ValidateSchedule(schedule); err != nil {
		return fmt.Errorf("invalid schedule %q: %w", schedule, err)
	}

	runner, cleanup, err := buildRunner(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	watcher := scheduler.NewWatchScheduler(func(ctx context.Context) error {
		_, err := runner.Run(ctx, cfg.Input.Dir, "")
		return err
	})

	if err := watcher.RunNow(ctx); err != nil {
		return err
	}
	if err := watcher.Start(ctx, schedule); err != nil {
		return err
	}
	if next := watcher.GetNextRunTime(); next != nil {
		logger.Get().Info().Str("schedule", schedule).Time("next_run", *next).Msg("watching for changes")
	}

	<-ctx.Done()
	watcher.Stop()
	logWatchSummary(watcher)
	return nil
}

func logWatchSummary(watcher *scheduler.WatchScheduler) {
	runs, err := watcher.LastResult()
	if err != nil {
		logger.Warnf("Watch stopped after %d runs, last run failed: %v", runs, err)
		return
	}
	logger.Infof("Watch stopped after %d runs", runs)
}
