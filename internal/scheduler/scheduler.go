// Package scheduler runs the morning watchlist report on a cron
// schedule.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
	"github.com/yourusername/stock-sentry/internal/config"
	"github.com/yourusername/stock-sentry/internal/logger"
	"github.com/yourusername/stock-sentry/internal/models"
	"github.com/yourusername/stock-sentry/internal/notifier"
	"github.com/yourusername/stock-sentry/internal/service"
)

// Scheduler manages the scheduled morning report job.
type Scheduler struct {
	cron            *cron.Cron
	analyzer        *service.Analyzer
	watchlist       *service.WatchlistService
	notify          notifier.Notifier
	recipient       string
	logger          *logrus.Logger
	sigLog          *logger.SignalLogger
	mu              sync.RWMutex
	isRunning       bool
	jobIDs          []cron.EntryID
	gracefulTimeout time.Duration
}

// New creates a scheduler in the configured timezone. Falls back to
// UTC when the timezone cannot be loaded.
func New(
	cfg config.SchedulerConfig,
	analyzer *service.Analyzer,
	watchlist *service.WatchlistService,
	notify notifier.Notifier,
	log *logrus.Logger,
) *Scheduler {
	if log == nil {
		log = logrus.New()
	}

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		log.WithError(err).WithField("timezone", cfg.Timezone).Warn("Bad timezone, using UTC")
		loc = time.UTC
	}

	return &Scheduler{
		cron:            cron.New(cron.WithLocation(loc)),
		analyzer:        analyzer,
		watchlist:       watchlist,
		notify:          notify,
		recipient:       cfg.AdminUserID,
		logger:          log,
		sigLog:          logger.NewSignalLogger(log),
		jobIDs:          make([]cron.EntryID, 0),
		gracefulTimeout: 30 * time.Second,
	}
}

// ScheduleMorningReport registers the watchlist digest job.
func (s *Scheduler) ScheduleMorningReport(cronExpression string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return fmt.Errorf("cannot schedule job while scheduler is running")
	}

	entryID, err := s.cron.AddFunc(cronExpression, s.runMorningReport)
	if err != nil {
		return fmt.Errorf("failed to add job: %w", err)
	}

	s.jobIDs = append(s.jobIDs, entryID)
	s.logger.WithField("cron", cronExpression).Info("Scheduled morning report")

	return nil
}

// runMorningReport analyzes every watched ticker and pushes the digest.
// Individual ticker failures are collected, not fatal.
func (s *Scheduler) runMorningReport() {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Minute)
	defer cancel()

	started := time.Now()
	s.logger.Info("Morning report starting")

	entries, err := s.watchlist.List(ctx)
	if err != nil {
		s.logger.WithError(err).Error("Morning report: failed to load watchlist")
		return
	}

	var results []*models.AnalysisResult
	var failures []string
	for _, entry := range entries {
		result, err := s.analyzer.Analyze(ctx, entry.Ticker)
		if err != nil {
			s.logger.WithError(err).WithField("ticker", entry.Ticker).Warn("Morning report: analysis failed")
			failures = append(failures, entry.Ticker)
			continue
		}
		if result.Live.IsBuy {
			s.sigLog.LogBuySignal(result.Ticker, result.Snapshot.Price, result.Live.Reason)
		}
		results = append(results, result)
	}

	text := notifier.FormatMorningReport(results, failures)
	if err := s.notify.Send(ctx, s.recipient, text); err != nil {
		s.logger.WithError(err).Error("Morning report: send failed")
		return
	}

	s.sigLog.LogNotification(s.recipient, len(text))
	s.sigLog.LogMorningReport(len(results), len(failures), float64(time.Since(started).Milliseconds()))
}

// Start starts the scheduler.
func (s *Scheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return fmt.Errorf("scheduler is already running")
	}

	if len(s.jobIDs) == 0 {
		return fmt.Errorf("no jobs scheduled")
	}

	s.cron.Start()
	s.isRunning = true
	s.logger.WithField("jobs", len(s.jobIDs)).Info("Scheduler started")

	return nil
}

// Stop gracefully stops the scheduler.
func (s *Scheduler) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.gracefulTimeout)
	defer cancel()

	select {
	case <-s.cron.Stop().Done():
	case <-ctx.Done():
	}
	s.isRunning = false
	s.logger.Info("Scheduler stopped")

	return nil
}

// IsRunning reports whether the scheduler is currently running.
func (s *Scheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// NextRun returns the time of the next scheduled job run.
func (s *Scheduler) NextRun() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.isRunning || len(s.jobIDs) == 0 {
		return time.Time{}
	}

	nextRun := time.Time{}
	for _, jobID := range s.jobIDs {
		entry := s.cron.Entry(jobID)
		if entry.Valid() {
			if nextRun.IsZero() || entry.Next.Before(nextRun) {
				nextRun = entry.Next
			}
		}
	}

	return nextRun
}
