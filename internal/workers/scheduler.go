package workers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/hibiken/asynq"
	"github.com/robfig/cron/v3"

	"github.com/ammerola/swifttrack-be/internal/core/domain"
	"github.com/ammerola/swifttrack-be/internal/pkg/config"
)

// Scheduled job names
const (
	JobAlertScan      = "alert-scan"
	JobNightlyReports = "nightly-reports"
	JobCleanup        = "report-cleanup"
	JobWarmup         = "analytics-warmup"
)

// Scheduler enqueues the periodic tasks on cron schedules. It only submits
// tasks; the worker server runs them.
type Scheduler struct {
	cron      *cron.Cron
	queue     Enqueuer
	reports   []domain.ReportKind
	retention time.Duration
	clock     func() time.Time
	jobs      map[string]func()
	logger    *slog.Logger
}

// NewScheduler registers a job for every non-empty spec in cfg
func NewScheduler(cfg config.SchedulerConfig, retention time.Duration, queue Enqueuer, logger *slog.Logger) (*Scheduler, error) {
	loc := time.UTC
	if cfg.Timezone != "" {
		var err error
		if loc, err = time.LoadLocation(cfg.Timezone); err != nil {
			return nil, fmt.Errorf("failed to load scheduler timezone: %w", err)
		}
	}

	reports := make([]domain.ReportKind, 0, len(cfg.NightlyReports))
	for _, name := range cfg.NightlyReports {
		kind, err := domain.ParseReportKind(name)
		if err != nil {
			return nil, fmt.Errorf("invalid nightly report: %w", err)
		}
		reports = append(reports, kind)
	}

	l := logger.With(slog.String("component", "scheduler"))
	cl := cronLogger{l}
	s := &Scheduler{
		cron: cron.New(
			cron.WithLocation(loc),
			cron.WithLogger(cl),
			cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
		),
		queue:     queue,
		reports:   reports,
		retention: retention,
		clock:     time.Now,
		jobs:      make(map[string]func()),
		logger:    l,
	}

	specs := []struct {
		name string
		spec string
		run  func()
	}{
		{JobAlertScan, cfg.AlertScanSpec, s.enqueueAlertScan},
		{JobNightlyReports, cfg.ReportsSpec, s.enqueueNightlyReports},
		{JobCleanup, cfg.CleanupSpec, s.enqueueCleanup},
		{JobWarmup, cfg.WarmupSpec, s.enqueueWarmup},
	}
	for _, j := range specs {
		if j.spec == "" {
			continue
		}
		if _, err := s.cron.AddFunc(j.spec, j.run); err != nil {
			return nil, fmt.Errorf("invalid %s schedule %q: %w", j.name, j.spec, err)
		}
		s.jobs[j.name] = j.run
	}

	return s, nil
}

// WithClock replaces the time source used for task ids
func (s *Scheduler) WithClock(clock func() time.Time) *Scheduler {
	s.clock = clock
	return s
}

// Jobs lists the registered job names
func (s *Scheduler) Jobs() []string {
	names := make([]string, 0, len(s.jobs))
	for name := range s.jobs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Trigger runs a registered job immediately
func (s *Scheduler) Trigger(name string) error {
	run, ok := s.jobs[name]
	if !ok {
		return fmt.Errorf("unknown scheduled job %q", name)
	}
	run()
	return nil
}

// Start begins firing jobs in the background
func (s *Scheduler) Start() {
	s.logger.Info("starting scheduler", slog.Any("jobs", s.Jobs()))
	s.cron.Start()
}

// Stop halts the schedule and waits for running jobs until ctx is done
func (s *Scheduler) Stop(ctx context.Context) {
	s.logger.Info("stopping scheduler")
	select {
	case <-s.cron.Stop().Done():
	case <-ctx.Done():
		s.logger.Warn("scheduler stop timed out")
	}
}

func (s *Scheduler) enqueue(job string, task *asynq.Task, opts ...asynq.Option) {
	info, err := s.queue.Enqueue(task, opts...)
	if errors.Is(err, asynq.ErrTaskIDConflict) || errors.Is(err, asynq.ErrDuplicateTask) {
		s.logger.Debug("task already queued", slog.String("job", job), slog.String("type", task.Type()))
		return
	}
	if err != nil {
		s.logger.Error("failed to enqueue scheduled task",
			slog.String("job", job),
			slog.String("type", task.Type()),
			slog.String("error", err.Error()))
		return
	}
	s.logger.Info("scheduled task enqueued",
		slog.String("job", job),
		slog.String("task_id", info.ID),
		slog.String("queue", info.Queue))
}

func (s *Scheduler) enqueueAlertScan() {
	s.enqueue(JobAlertScan, NewAlertScanTask())
}

// enqueueNightlyReports uses one task id per kind and day so a restarted
// scheduler does not render the same report twice.
func (s *Scheduler) enqueueNightlyReports() {
	date := s.clock().Format(domain.DateLayout)
	for _, kind := range s.reports {
		task, err := NewReportTask(kind, "")
		if err != nil {
			s.logger.Error("failed to build report task",
				slog.String("kind", string(kind)),
				slog.String("error", err.Error()))
			continue
		}
		s.enqueue(JobNightlyReports, task, asynq.TaskID(fmt.Sprintf("nightly:%s:%s", kind, date)))
	}
}

func (s *Scheduler) enqueueCleanup() {
	task, err := NewCleanupTask(s.retention)
	if err != nil {
		s.logger.Error("failed to build cleanup task", slog.String("error", err.Error()))
		return
	}
	s.enqueue(JobCleanup, task)
}

func (s *Scheduler) enqueueWarmup() {
	s.enqueue(JobWarmup, NewRefreshAnalyticsTask())
}

// cronLogger adapts slog to cron.Logger
type cronLogger struct {
	logger *slog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Debug(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.logger.Error(msg, append([]interface{}{slog.String("error", err.Error())}, keysAndValues...)...)
}
