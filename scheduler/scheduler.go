// Package scheduler runs the service's background maintenance jobs: the
// daily log retention cleanup and an hourly health snapshot mirrored to the
// metrics. The catalog itself is never reloaded.
package scheduler

import (
	"fmt"
	"time"

	"github.com/giygas/interactions-api/interfaces"
	"github.com/giygas/interactions-api/logging"
	"github.com/giygas/interactions-api/metrics"
	"github.com/go-co-op/gocron"
)

// Compile-time check to ensure Scheduler implements Scheduler interface
var _ interfaces.Scheduler = (*Scheduler)(nil)

// Scheduler handles maintenance jobs using dependency injection
type Scheduler struct {
	healthChecker interfaces.HealthChecker
	logCleaner    interfaces.LogCleaner
	scheduler     *gocron.Scheduler
}

// NewScheduler creates a scheduler. logCleaner may be nil when file logging
// is disabled.
func NewScheduler(healthChecker interfaces.HealthChecker, logCleaner interfaces.LogCleaner) *Scheduler {
	return &Scheduler{
		healthChecker: healthChecker,
		logCleaner:    logCleaner,
		scheduler:     gocron.NewScheduler(time.Local),
	}
}

// Start registers the jobs and starts the scheduler in the background
func (s *Scheduler) Start() error {
	if s.healthChecker != nil {
		if _, err := s.scheduler.Every(1).Hour().Do(s.reportHealth); err != nil {
			logging.Error("Failed to schedule health snapshot", "error", err)
			return fmt.Errorf("failed to schedule health snapshot: %w", err)
		}
	}

	if s.logCleaner != nil {
		if _, err := s.scheduler.Every(1).Day().At("03:00").Do(s.cleanupLogs); err != nil {
			logging.Error("Failed to schedule log cleanup", "error", err)
			return fmt.Errorf("failed to schedule log cleanup: %w", err)
		}
	}

	s.scheduler.StartAsync()
	logging.Info("Scheduler started", "jobs", s.scheduler.Len())

	return nil
}

// Stop stops the scheduler
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}

// JobCount returns the number of registered jobs
func (s *Scheduler) JobCount() int {
	return s.scheduler.Len()
}

// reportHealth logs the current health and mirrors it to the metrics
func (s *Scheduler) reportHealth() {
	status, details, _ := s.healthChecker.HealthCheck()
	metrics.SetHealthStatus(status)

	if status != "healthy" {
		logging.Warn("Health snapshot", "status", status, "details", details)
		return
	}
	logging.Debug("Health snapshot", "status", status)
}

// cleanupLogs removes log files past their retention
func (s *Scheduler) cleanupLogs() {
	if err := s.logCleaner.CleanupOldLogs(); err != nil {
		logging.Warn("Failed to cleanup old logs", "error", err)
	}
}
