package service

import (
	"context"
	"time"

	"github.com/remsins/webhook/internal/domain"
	"github.com/remsins/webhook/pkg/logger"
)

// RetentionService periodically deletes delivery logs older than the
// retention horizon. Purges are idempotent and safe to run concurrently
// with delivery.
type RetentionService struct {
	logRepo  domain.DeliveryLogRepository
	logger   logger.Logger
	period   time.Duration
	interval time.Duration
	now      func() time.Time
}

// NewRetentionService creates a retention service that purges rows
// older than period, checking every interval.
func NewRetentionService(logRepo domain.DeliveryLogRepository, logger logger.Logger, period, interval time.Duration) *RetentionService {
	return &RetentionService{
		logRepo:  logRepo,
		logger:   logger,
		period:   period,
		interval: interval,
		now:      time.Now,
	}
}

// Run purges on a ticker until the context is cancelled.
func (s *RetentionService) Run(ctx context.Context) {
	s.logger.WithField("interval", s.interval.String()).Info("Retention purge task started")

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("Retention purge task stopping")
			return
		case <-ticker.C:
			if _, err := s.PurgeOnce(ctx); err != nil {
				s.logger.WithField("error", err.Error()).Error("Retention purge failed")
			}
		}
	}
}

// PurgeOnce deletes all logs older than the retention horizon and
// returns the number deleted.
func (s *RetentionService) PurgeOnce(ctx context.Context) (int64, error) {
	cutoff := s.now().UTC().Add(-s.period)

	deleted, err := s.logRepo.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		return 0, err
	}

	s.logger.WithFields(map[string]interface{}{
		"deleted": deleted,
		"cutoff":  cutoff.Format(time.RFC3339),
	}).Info("Purged old delivery logs")

	return deleted, nil
}
