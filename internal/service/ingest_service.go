package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/remsins/webhook/internal/domain"
	"github.com/remsins/webhook/pkg/logger"
)

// IngestService accepts one event for a subscription and hands it to
// the delivery queue as attempt 1. On success exactly one job has been
// enqueued for the returned webhook id; on failure, none.
type IngestService struct {
	cache  domain.SubscriptionCache
	queue  domain.DeliveryQueue
	logger logger.Logger
}

// NewIngestService creates a new ingest service
func NewIngestService(cache domain.SubscriptionCache, queue domain.DeliveryQueue, logger logger.Logger) *IngestService {
	return &IngestService{
		cache:  cache,
		queue:  queue,
		logger: logger,
	}
}

// Ingest resolves the subscription, validates the payload, and enqueues
// the first delivery attempt. It returns the webhook id assigned to the
// event. The event type and signature headers are forwarded verbatim.
func (s *IngestService) Ingest(ctx context.Context, subscriptionID string, payload []byte, eventType, signature string) (string, error) {
	if _, err := s.cache.GetOrLoad(ctx, subscriptionID); err != nil {
		return "", err
	}

	if !json.Valid(payload) {
		return "", domain.NewValidationError("Invalid JSON body received.")
	}

	webhookID := uuid.New().String()
	job := &domain.DeliveryJob{
		WebhookID:      webhookID,
		SubscriptionID: subscriptionID,
		Payload:        json.RawMessage(payload),
		EventType:      eventType,
		Signature:      signature,
		Attempt:        1,
	}

	if err := s.queue.Enqueue(ctx, job); err != nil {
		return "", fmt.Errorf("failed to enqueue delivery: %w", err)
	}

	s.logger.WithFields(map[string]interface{}{
		"webhook_id":      webhookID,
		"subscription_id": subscriptionID,
	}).Debug("Webhook accepted for delivery")

	return webhookID, nil
}
