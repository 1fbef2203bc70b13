package service

import (
	"context"

	"github.com/remsins/webhook/internal/domain"
)

const (
	defaultAttemptLimit = 20
	maxAttemptLimit     = 100
)

// StatusService exposes read-only projections over the delivery log.
type StatusService struct {
	logRepo domain.DeliveryLogRepository
}

// NewStatusService creates a new status service
func NewStatusService(logRepo domain.DeliveryLogRepository) *StatusService {
	return &StatusService{
		logRepo: logRepo,
	}
}

// WebhookStatus summarizes all attempts for one webhook: totals, the
// newest row's outcome, and up to 20 recent attempts, newest first.
func (s *StatusService) WebhookStatus(ctx context.Context, webhookID string) (*domain.WebhookStatus, error) {
	total, err := s.logRepo.CountByWebhookID(ctx, webhookID)
	if err != nil {
		return nil, err
	}
	if total == 0 {
		return nil, &domain.ErrNotFound{Entity: "delivery logs", ID: webhookID}
	}

	logs, err := s.logRepo.ListByWebhookID(ctx, webhookID, defaultAttemptLimit)
	if err != nil {
		return nil, err
	}

	last := logs[0]
	return &domain.WebhookStatus{
		WebhookID:      webhookID,
		SubscriptionID: last.SubscriptionID,
		TotalAttempts:  total,
		FinalOutcome:   last.Outcome,
		LastAttemptAt:  last.Timestamp,
		LastStatusCode: last.StatusCode,
		Error:          last.Error,
		RecentAttempts: logs,
	}, nil
}

// SubscriptionAttempts lists recent attempts for one subscription,
// newest first. The limit defaults to 20 and is capped at 100.
func (s *StatusService) SubscriptionAttempts(ctx context.Context, subscriptionID string, limit int) ([]*domain.DeliveryLog, error) {
	if limit <= 0 {
		limit = defaultAttemptLimit
	}
	if limit > maxAttemptLimit {
		limit = maxAttemptLimit
	}
	return s.logRepo.ListBySubscriptionID(ctx, subscriptionID, limit)
}
