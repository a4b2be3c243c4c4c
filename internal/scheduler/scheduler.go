package scheduler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/bwc/pos/internal/config"
	"github.com/bwc/pos/internal/domain/models"
	"github.com/bwc/pos/internal/service/whatsapp"
)

// Reporter produces the end-of-day report.
type Reporter interface {
	GenerateDailyReport(ctx context.Context, day time.Time) (models.DailyReport, error)
	FormatDailyReport(report models.DailyReport) string
}

// Scheduler manages scheduled tasks.
type Scheduler struct {
	cron         *cron.Cron
	schedule     string
	reportingSvc Reporter
	messagingSvc whatsapp.MessagingService
	now          func() time.Time
	logger       *zap.Logger
}

// NewScheduler creates a new scheduler instance running in the configured
// timezone. messagingSvc may be nil, in which case reports are only stored.
func NewScheduler(cfg config.ReportingConfig, reportingSvc Reporter, messagingSvc whatsapp.MessagingService, logger *zap.Logger) (*Scheduler, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %s: %w", cfg.Timezone, err)
	}

	// Standard 5-field cron expressions (min, hour, dom, month, dow).
	cronLog := newCronLogger(logger.Named("cron"))
	c := cron.New(cron.WithLocation(loc), cron.WithLogger(cronLog), cron.WithChain(cron.Recover(cronLog)))

	return &Scheduler{
		cron:         c,
		schedule:     cfg.CronSchedule,
		reportingSvc: reportingSvc,
		messagingSvc: messagingSvc,
		now:          time.Now,
		logger:       logger,
	}, nil
}

// Start registers the jobs and starts the scheduler.
func (s *Scheduler) Start() error {
	s.logger.Info("starting scheduler", zap.String("daily_report", s.schedule))

	if _, err := s.cron.AddFunc(s.schedule, s.sendDailyReport); err != nil {
		return fmt.Errorf("schedule daily report %q: %w", s.schedule, err)
	}

	s.cron.Start()
	return nil
}

// Stop stops the scheduler and waits for running jobs to finish.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	<-s.cron.Stop().Done()
}

func (s *Scheduler) sendDailyReport() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if err := s.RunDailyReport(ctx); err != nil {
		s.logger.Error("daily report failed", zap.Error(err))
	}
}

// RunDailyReport generates today's report and notifies the manager.
func (s *Scheduler) RunDailyReport(ctx context.Context) error {
	s.logger.Info("generating daily report")

	report, err := s.reportingSvc.GenerateDailyReport(ctx, s.now())
	if err != nil {
		return fmt.Errorf("generate daily report: %w", err)
	}

	if s.messagingSvc == nil {
		return nil
	}

	if err := s.messagingSvc.NotifyManager(ctx, s.reportingSvc.FormatDailyReport(report)); err != nil {
		if errors.Is(err, whatsapp.ErrNoRecipient) {
			s.logger.Warn("daily report not sent, no manager configured")
			return nil
		}
		return fmt.Errorf("send daily report: %w", err)
	}

	s.logger.Info("daily report sent successfully")
	return nil
}
