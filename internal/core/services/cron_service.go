package services

import (
	"fmt"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// CronService runs periodic housekeeping jobs
type CronService struct {
	cron     *cron.Cron
	sessions *SessionManager
	logger   *zap.Logger
}

// NewCronService creates a cron service that sweeps idle sessions on
// schedule, a standard five-field cron expression.
func NewCronService(sessions *SessionManager, schedule string, logger *zap.Logger) (*CronService, error) {
	s := &CronService{
		cron:     cron.New(),
		sessions: sessions,
		logger:   logger.Named("cron"),
	}

	if _, err := s.cron.AddFunc(schedule, s.sweepSessions); err != nil {
		return nil, fmt.Errorf("invalid session sweep schedule %q: %w", schedule, err)
	}
	return s, nil
}

// Start starts the scheduler in its own goroutine
func (s *CronService) Start() {
	s.cron.Start()
	s.logger.Info("cron service started", zap.Int("jobs", len(s.cron.Entries())))
}

// Stop stops the scheduler and waits for running jobs
func (s *CronService) Stop() {
	<-s.cron.Stop().Done()
	s.logger.Info("cron service stopped")
}

func (s *CronService) sweepSessions() {
	removed := s.sessions.Sweep()
	s.logger.Debug("session sweep finished", zap.Int("removed", removed), zap.Int("active", s.sessions.Count()))
}
