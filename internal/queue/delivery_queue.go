package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/remsins/webhook/internal/domain"
	"github.com/remsins/webhook/pkg/logger"
)

const (
	readyKey      = "webhooks:deliveries:ready"
	processingKey = "webhooks:deliveries:processing"
	scheduledKey  = "webhooks:deliveries:scheduled"

	// pollInterval is how long Dequeue sleeps between polls of the
	// ready queue.
	pollInterval = 200 * time.Millisecond

	// promoteBatch bounds how many due scheduled jobs are promoted per
	// poll round.
	promoteBatch = 100
)

// deliveryQueue implements domain.DeliveryQueue on Redis: a ready list
// consumed head-first, a processing list holding reserved jobs until
// they are acknowledged, and a sorted set of scheduled jobs scored by
// their ready-at time in milliseconds.
type deliveryQueue struct {
	client *redis.Client
	logger logger.Logger
	now    func() time.Time
}

// NewDeliveryQueue creates a Redis-backed delivery queue.
func NewDeliveryQueue(client *redis.Client, logger logger.Logger) domain.DeliveryQueue {
	return &deliveryQueue{
		client: client,
		logger: logger,
		now:    time.Now,
	}
}

// Enqueue appends a job to the tail of the ready queue.
func (q *deliveryQueue) Enqueue(ctx context.Context, job *domain.DeliveryJob) error {
	raw, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("failed to encode delivery job: %w", err)
	}

	if err := q.client.RPush(ctx, readyKey, raw).Err(); err != nil {
		return fmt.Errorf("failed to enqueue delivery job: %w", err)
	}

	return nil
}

// EnqueueIn schedules a job to become ready after the given delay.
// The scheduled queue promises "not before", not a precise firing time.
func (q *deliveryQueue) EnqueueIn(ctx context.Context, delay time.Duration, job *domain.DeliveryJob) error {
	raw, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("failed to encode delivery job: %w", err)
	}

	readyAt := q.now().Add(delay)
	err = q.client.ZAdd(ctx, scheduledKey, redis.Z{
		Score:  float64(readyAt.UnixMilli()),
		Member: string(raw),
	}).Err()
	if err != nil {
		return fmt.Errorf("failed to schedule delivery job: %w", err)
	}

	return nil
}

// Dequeue reserves one ready job, polling until the timeout elapses.
// It returns nil when no job became ready in time. The job stays on the
// processing list until Ack is called, so a consumer crash leaves it
// recoverable via RequeueOrphans.
func (q *deliveryQueue) Dequeue(ctx context.Context, timeout time.Duration) (*domain.QueuedJob, error) {
	deadline := q.now().Add(timeout)

	for {
		if err := q.promoteDue(ctx); err != nil {
			return nil, err
		}

		raw, err := q.client.LMove(ctx, readyKey, processingKey, "LEFT", "RIGHT").Result()
		if err != nil && err != redis.Nil {
			return nil, fmt.Errorf("failed to dequeue delivery job: %w", err)
		}

		if err == nil {
			var job domain.DeliveryJob
			if uerr := json.Unmarshal([]byte(raw), &job); uerr != nil {
				// Undecodable entry; drop it rather than poison the queue.
				q.logger.WithField("error", uerr.Error()).Error("Dropping undecodable delivery job")
				_ = q.client.LRem(ctx, processingKey, 1, raw).Err()
				continue
			}
			return &domain.QueuedJob{Job: job, Raw: raw}, nil
		}

		if !q.now().Before(deadline) {
			return nil, nil
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(pollInterval):
		}
	}
}

// Ack removes a reserved job from the processing list.
func (q *deliveryQueue) Ack(ctx context.Context, qj *domain.QueuedJob) error {
	if err := q.client.LRem(ctx, processingKey, 1, qj.Raw).Err(); err != nil {
		return fmt.Errorf("failed to ack delivery job: %w", err)
	}
	return nil
}

// CountReady returns the observed size of the ready queue.
func (q *deliveryQueue) CountReady(ctx context.Context) (int64, error) {
	n, err := q.client.LLen(ctx, readyKey).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to count ready jobs: %w", err)
	}
	return n, nil
}

// RequeueOrphans moves reserved-but-unacknowledged jobs back to the
// ready queue. Called at worker start to recover jobs abandoned by a
// crashed consumer.
func (q *deliveryQueue) RequeueOrphans(ctx context.Context) (int64, error) {
	var moved int64
	for {
		_, err := q.client.LMove(ctx, processingKey, readyKey, "LEFT", "RIGHT").Result()
		if err == redis.Nil {
			return moved, nil
		}
		if err != nil {
			return moved, fmt.Errorf("failed to requeue orphaned job: %w", err)
		}
		moved++
	}
}

// promoteDue moves scheduled jobs whose ready-at time has passed onto
// the ready queue. The ZRem guard keeps concurrent consumers from
// promoting the same member twice.
func (q *deliveryQueue) promoteDue(ctx context.Context) error {
	max := strconv.FormatInt(q.now().UnixMilli(), 10)
	members, err := q.client.ZRangeByScore(ctx, scheduledKey, &redis.ZRangeBy{
		Min:   "-inf",
		Max:   max,
		Count: promoteBatch,
	}).Result()
	if err != nil {
		return fmt.Errorf("failed to read scheduled jobs: %w", err)
	}

	for _, member := range members {
		removed, err := q.client.ZRem(ctx, scheduledKey, member).Result()
		if err != nil {
			return fmt.Errorf("failed to remove scheduled job: %w", err)
		}
		if removed == 0 {
			continue
		}
		if err := q.client.RPush(ctx, readyKey, member).Err(); err != nil {
			return fmt.Errorf("failed to promote scheduled job: %w", err)
		}
	}

	return nil
}
