package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/mrlokans/qawash/internal/logger"
)

// Job is one full batch run.
type Job func(ctx context.Context) error

// WatchScheduler re-runs a batch on a cron schedule. A tick that fires while
// the previous run is still going is skipped, so two runs never touch the
// same files at once.
type WatchScheduler struct {
	job Job

	cron       *cron.Cron
	entryID    cron.EntryID
	mu         sync.RWMutex
	isRunning  bool
	cancelFunc context.CancelFunc

	// stateMu guards the fields below. Jobs never take mu, which Stop holds
	// while waiting for them.
	stateMu sync.Mutex
	ctx     context.Context
	lastErr error
	runs    int
}

// NewWatchScheduler creates a new scheduler instance.
func NewWatchScheduler(job Job) *WatchScheduler {
	cronLogger := cron.PrintfLogger(logger.Get())
	return &WatchScheduler{
		job: job,
		cron: cron.New(
			cron.WithParser(cron.NewParser(cron.Minute|cron.Hour|cron.Dom|cron.Month|cron.Dow|cron.Descriptor)),
			cron.WithChain(cron.Recover(cronLogger), cron.SkipIfStillRunning(cronLogger)),
		),
	}
}

// ValidateSchedule reports whether schedule is a five-field cron expression
// or a descriptor such as @hourly.
func ValidateSchedule(schedule string) error {
	if schedule == "" {
		return errors.New("schedule is empty")
	}
	_, err := cron.ParseStandard(schedule)
	return err
}

// Start schedules the job. The scheduler stops when ctx is cancelled.
func (s *WatchScheduler) Start(ctx context.Context, schedule string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}

	if err := ValidateSchedule(schedule); err != nil {
		return fmt.Errorf("invalid cron schedule '%s': %w", schedule, err)
	}

	runCtx, cancel := context.WithCancel(ctx)
	s.cancelFunc = cancel
	s.stateMu.Lock()
	s.ctx = runCtx
	s.stateMu.Unlock()

	entryID, err := s.cron.AddFunc(schedule, s.runJob)
	if err != nil {
		s.cancelFunc()
		return fmt.Errorf("failed to schedule wash job: %w", err)
	}
	s.entryID = entryID

	s.cron.Start()
	s.isRunning = true

	logger.Infof("Watch scheduler: started with schedule '%s'. Next run: %v", schedule, s.nextRunLocked())

	go func() {
		<-runCtx.Done()
		s.Stop()
	}()

	return nil
}

// Stop waits for a running job to finish and stops the scheduler.
func (s *WatchScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}

	// Stop accepting new jobs and wait for running jobs to complete
	ctx := s.cron.Stop()
	<-ctx.Done()

	s.cron.Remove(s.entryID)
	s.cancelFunc()
	s.isRunning = false
	s.cancelFunc = nil

	logger.Info("Watch scheduler: stopped")
}

// RunNow runs the job synchronously, outside the schedule.
func (s *WatchScheduler) RunNow(ctx context.Context) error {
	return s.execute(ctx)
}

// IsRunning returns whether the scheduler is active.
func (s *WatchScheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// GetNextRunTime returns when the next run will occur.
func (s *WatchScheduler) GetNextRunTime() *time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.isRunning {
		return nil
	}
	return s.nextRunLocked()
}

// LastResult returns the number of completed runs and the error of the last one.
func (s *WatchScheduler) LastResult() (int, error) {
	s.stateMu.Lock()
	defer s.stateMu.Unlock()
	return s.runs, s.lastErr
}

func (s *WatchScheduler) nextRunLocked() *time.Time {
	for _, entry := range s.cron.Entries() {
		if entry.ID == s.entryID {
			t := entry.Next
			return &t
		}
	}
	return nil
}

func (s *WatchScheduler) runJob() {
	s.stateMu.Lock()
	ctx := s.ctx
	s.stateMu.Unlock()

	if ctx == nil {
		ctx = context.Background()
	}
	_ = s.execute(ctx)
}

func (s *WatchScheduler) execute(ctx context.Context) error {
	logger.Info("Watch: starting batch run")
	startTime := time.Now()

	err := s.job(ctx)

	s.stateMu.Lock()
	s.runs++
	s.lastErr = err
	s.stateMu.Unlock()

	if err != nil {
		logger.Errorf("Watch: batch run failed: %v", err)
		return err
	}
	logger.Infof("Watch: batch run finished in %v", time.Since(startTime).Round(time.Millisecond))
	return nil
}
