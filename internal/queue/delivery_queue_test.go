package queue

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/remsins/webhook/internal/domain"
	"github.com/remsins/webhook/pkg/logger"
)

func setupQueueTest(t *testing.T) (*miniredis.Miniredis, *redis.Client, *deliveryQueue) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	q := NewDeliveryQueue(client, logger.NewTestLogger(t)).(*deliveryQueue)
	return mr, client, q
}

func testJob(webhookID string, attempt int) *domain.DeliveryJob {
	return &domain.DeliveryJob{
		WebhookID:      webhookID,
		SubscriptionID: "sub-1",
		Payload:        json.RawMessage(`{"event":"order.created"}`),
		EventType:      "order.created",
		Attempt:        attempt,
	}
}

func TestDeliveryQueue_EnqueueDequeueFIFO(t *testing.T) {
	_, _, q := setupQueueTest(t)
	ctx := context.Background()

	require.NoError(t, q.Enqueue(ctx, testJob("wh-1", 1)))
	require.NoError(t, q.Enqueue(ctx, testJob("wh-2", 1)))

	first, err := q.Dequeue(ctx, 0)
	require.NoError(t, err)
	require.NotNil(t, first)
	assert.Equal(t, "wh-1", first.Job.WebhookID)
	assert.Equal(t, 1, first.Job.Attempt)
	assert.JSONEq(t, `{"event":"order.created"}`, string(first.Job.Payload))

	second, err := q.Dequeue(ctx, 0)
	require.NoError(t, err)
	require.NotNil(t, second)
	assert.Equal(t, "wh-2", second.Job.WebhookID)
}

func TestDeliveryQueue_DequeueEmptyReturnsNil(t *testing.T) {
	_, _, q := setupQueueTest(t)

	qj, err := q.Dequeue(context.Background(), 0)
	require.NoError(t, err)
	assert.Nil(t, qj)
}

func TestDeliveryQueue_DequeueReservesUntilAck(t *testing.T) {
	_, client, q := setupQueueTest(t)
	ctx := context.Background()

	require.NoError(t, q.Enqueue(ctx, testJob("wh-1", 1)))

	qj, err := q.Dequeue(ctx, 0)
	require.NoError(t, err)
	require.NotNil(t, qj)

	// Reserved: gone from ready, held on processing.
	ready, err := q.CountReady(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), ready)
	processing, err := client.LLen(ctx, processingKey).Result()
	require.NoError(t, err)
	assert.Equal(t, int64(1), processing)

	require.NoError(t, q.Ack(ctx, qj))
	processing, err = client.LLen(ctx, processingKey).Result()
	require.NoError(t, err)
	assert.Equal(t, int64(0), processing)
}

func TestDeliveryQueue_EnqueueInNotVisibleUntilDue(t *testing.T) {
	_, _, q := setupQueueTest(t)
	ctx := context.Background()

	base := time.Now()
	q.now = func() time.Time { return base }

	require.NoError(t, q.EnqueueIn(ctx, 10*time.Second, testJob("wh-1", 2)))

	// Not yet due.
	qj, err := q.Dequeue(ctx, 0)
	require.NoError(t, err)
	assert.Nil(t, qj)

	// Past the ready-at time the job is promoted and served.
	q.now = func() time.Time { return base.Add(11 * time.Second) }
	qj, err = q.Dequeue(ctx, 0)
	require.NoError(t, err)
	require.NotNil(t, qj)
	assert.Equal(t, "wh-1", qj.Job.WebhookID)
	assert.Equal(t, 2, qj.Job.Attempt)
}

func TestDeliveryQueue_ScheduledOrderByReadyAt(t *testing.T) {
	_, _, q := setupQueueTest(t)
	ctx := context.Background()

	base := time.Now()
	q.now = func() time.Time { return base }

	require.NoError(t, q.EnqueueIn(ctx, 30*time.Second, testJob("wh-late", 2)))
	require.NoError(t, q.EnqueueIn(ctx, 10*time.Second, testJob("wh-early", 2)))

	q.now = func() time.Time { return base.Add(time.Minute) }

	first, err := q.Dequeue(ctx, 0)
	require.NoError(t, err)
	require.NotNil(t, first)
	assert.Equal(t, "wh-early", first.Job.WebhookID)

	second, err := q.Dequeue(ctx, 0)
	require.NoError(t, err)
	require.NotNil(t, second)
	assert.Equal(t, "wh-late", second.Job.WebhookID)
}

func TestDeliveryQueue_RequeueOrphans(t *testing.T) {
	_, _, q := setupQueueTest(t)
	ctx := context.Background()

	require.NoError(t, q.Enqueue(ctx, testJob("wh-1", 1)))
	require.NoError(t, q.Enqueue(ctx, testJob("wh-2", 1)))

	// Reserve both without acknowledging, as a crashed consumer would.
	_, err := q.Dequeue(ctx, 0)
	require.NoError(t, err)
	_, err = q.Dequeue(ctx, 0)
	require.NoError(t, err)

	moved, err := q.RequeueOrphans(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), moved)

	ready, err := q.CountReady(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), ready)
}

func TestDeliveryQueue_RequeueOrphansEmpty(t *testing.T) {
	_, _, q := setupQueueTest(t)

	moved, err := q.RequeueOrphans(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(0), moved)
}

func TestDeliveryQueue_DropsUndecodableEntry(t *testing.T) {
	_, client, q := setupQueueTest(t)
	ctx := context.Background()

	require.NoError(t, client.RPush(ctx, readyKey, "{not json").Err())
	require.NoError(t, q.Enqueue(ctx, testJob("wh-1", 1)))

	qj, err := q.Dequeue(ctx, 0)
	require.NoError(t, err)
	require.NotNil(t, qj)
	assert.Equal(t, "wh-1", qj.Job.WebhookID)

	// The poison entry was removed from the processing list too.
	processing, err := client.LLen(ctx, processingKey).Result()
	require.NoError(t, err)
	assert.Equal(t, int64(1), processing)
}

func TestDeliveryQueue_DequeueRespectsContext(t *testing.T) {
	_, _, q := setupQueueTest(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := q.Dequeue(ctx, time.Minute)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}
