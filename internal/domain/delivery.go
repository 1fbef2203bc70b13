package domain

//go:generate mockgen -destination mocks/mock_delivery_log_repository.go -package mocks github.com/remsins/webhook/internal/domain DeliveryLogRepository
//go:generate mockgen -destination mocks/mock_delivery_queue.go -package mocks github.com/remsins/webhook/internal/domain DeliveryQueue

import (
	"context"
	"encoding/json"
	"time"
)

// Delivery outcome constants. Success and Failure are terminal; a
// Failed Attempt row means another retry is scheduled.
const (
	OutcomeSuccess       = "Success"
	OutcomeFailedAttempt = "Failed Attempt"
	OutcomeFailure       = "Failure"
)

// DeliveryJob is one queued delivery attempt. The payload is the
// ingested JSON body, forwarded verbatim to the target. EventType and
// Signature are opaque header values supplied at ingestion.
type DeliveryJob struct {
	WebhookID      string          `json:"webhook_id"`
	SubscriptionID string          `json:"subscription_id"`
	Payload        json.RawMessage `json:"payload"`
	EventType      string          `json:"event_type,omitempty"`
	Signature      string          `json:"signature,omitempty"`
	Attempt        int             `json:"attempt"`
}

// QueuedJob pairs a decoded job with the raw queue entry it was decoded
// from, which the queue needs back to acknowledge it.
type QueuedJob struct {
	Job DeliveryJob
	Raw string
}

// DeliveryLog is one append-only row recording a delivery attempt.
type DeliveryLog struct {
	ID             string    `json:"id"`
	WebhookID      string    `json:"webhook_id"`
	SubscriptionID string    `json:"subscription_id"`
	TargetURL      string    `json:"target_url"`
	Timestamp      time.Time `json:"timestamp"`
	AttemptNumber  int       `json:"attempt_number"`
	Outcome        string    `json:"outcome"`
	StatusCode     *int      `json:"status_code"`
	Error          *string   `json:"error"`
}

// WebhookStatus is the projection returned by the status query: the
// newest log row plus aggregates over all rows for the webhook.
type WebhookStatus struct {
	WebhookID      string         `json:"webhook_id"`
	SubscriptionID string         `json:"subscription_id"`
	TotalAttempts  int            `json:"total_attempts"`
	FinalOutcome   string         `json:"final_outcome"`
	LastAttemptAt  time.Time      `json:"last_attempt_at"`
	LastStatusCode *int           `json:"last_status_code"`
	Error          *string        `json:"error"`
	RecentAttempts []*DeliveryLog `json:"recent_attempts"`
}

// DeliveryLogRepository defines the interface for delivery log data access
type DeliveryLogRepository interface {
	Create(ctx context.Context, log *DeliveryLog) error
	CountByWebhookID(ctx context.Context, webhookID string) (int, error)
	ListByWebhookID(ctx context.Context, webhookID string, limit int) ([]*DeliveryLog, error)
	ListBySubscriptionID(ctx context.Context, subscriptionID string, limit int) ([]*DeliveryLog, error)
	// DeleteOlderThan bulk-deletes rows with timestamp < cutoff and
	// returns the number deleted.
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

// DeliveryQueue is the delivery job queue: a ready FIFO plus a
// time-delayed queue for scheduled retries. Delivery is at-least-once:
// a dequeued job stays reserved until acknowledged, and unacknowledged
// jobs are returned to the ready queue by RequeueOrphans.
type DeliveryQueue interface {
	Enqueue(ctx context.Context, job *DeliveryJob) error
	EnqueueIn(ctx context.Context, delay time.Duration, job *DeliveryJob) error
	// Dequeue returns one ready job, or nil if none became ready
	// within the timeout. Scheduled jobs whose ready-at time has
	// passed are promoted before each poll.
	Dequeue(ctx context.Context, timeout time.Duration) (*QueuedJob, error)
	Ack(ctx context.Context, qj *QueuedJob) error
	CountReady(ctx context.Context) (int64, error)
	// RequeueOrphans returns reserved-but-unacknowledged jobs to the
	// ready queue and reports how many were moved.
	RequeueOrphans(ctx context.Context) (int64, error)
}
