package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/remsins/webhook/internal/domain"
	"github.com/remsins/webhook/pkg/logger"
)

// MaxAttempts is the total number of delivery attempts per webhook,
// the first attempt included.
const MaxAttempts = 5

// backoffSchedule holds the delay before attempt N+1 after attempt N
// fails, indexed by N-1.
var backoffSchedule = []time.Duration{
	10 * time.Second,
	30 * time.Second,
	60 * time.Second,
	300 * time.Second,
	900 * time.Second,
}

// DeliveryWorker drains the delivery queue: it resolves the
// subscription, POSTs the payload to the target URL, records exactly
// one log row per attempt, and reschedules failed attempts with
// bounded exponential backoff. Delivery is at-least-once: a job is
// acknowledged only after its log row is written.
type DeliveryWorker struct {
	cache          domain.SubscriptionCache
	logRepo        domain.DeliveryLogRepository
	queue          domain.DeliveryQueue
	logger         logger.Logger
	httpClient     *http.Client
	dequeueTimeout time.Duration
	now            func() time.Time
}

// NewDeliveryWorker creates a new delivery worker. The HTTP client
// bounds every outbound POST; when nil a client with a 5 second
// timeout is used.
func NewDeliveryWorker(
	cache domain.SubscriptionCache,
	logRepo domain.DeliveryLogRepository,
	queue domain.DeliveryQueue,
	logger logger.Logger,
	httpClient *http.Client,
) *DeliveryWorker {
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout: 5 * time.Second,
		}
	}

	return &DeliveryWorker{
		cache:          cache,
		logRepo:        logRepo,
		queue:          queue,
		logger:         logger,
		httpClient:     httpClient,
		dequeueTimeout: 5 * time.Second,
		now:            time.Now,
	}
}

// RunPool runs n concurrent worker loops until the context is
// cancelled. Orphaned jobs from a previous crashed consumer are
// returned to the ready queue first.
func (w *DeliveryWorker) RunPool(ctx context.Context, n int) error {
	requeued, err := w.queue.RequeueOrphans(ctx)
	if err != nil {
		return fmt.Errorf("failed to requeue orphaned jobs: %w", err)
	}
	if requeued > 0 {
		w.logger.WithField("requeued", requeued).Warn("Returned orphaned jobs to the ready queue")
	}

	g, ctx := errgroup.WithContext(ctx)
	for i := 0; i < n; i++ {
		g.Go(func() error {
			w.Run(ctx)
			return nil
		})
	}
	return g.Wait()
}

// Run drains the queue until the context is cancelled. In-flight jobs
// run to completion of their log write before the loop exits.
func (w *DeliveryWorker) Run(ctx context.Context) {
	w.logger.Info("Delivery worker started")

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("Delivery worker stopping")
			return
		default:
		}

		qj, err := w.queue.Dequeue(ctx, w.dequeueTimeout)
		if err != nil {
			if ctx.Err() != nil {
				w.logger.Info("Delivery worker stopping")
				return
			}
			w.logger.WithField("error", err.Error()).Error("Failed to dequeue delivery job")
			time.Sleep(time.Second)
			continue
		}
		if qj == nil {
			continue
		}

		// Shutdown must not abort the attempt between the HTTP call
		// and its log write, so the job runs on a detached context.
		jobCtx := context.WithoutCancel(ctx)

		if err := w.process(jobCtx, &qj.Job); err != nil {
			// Leave the job unacknowledged; the queue will redeliver it.
			w.logger.WithFields(map[string]interface{}{
				"webhook_id": qj.Job.WebhookID,
				"attempt":    qj.Job.Attempt,
				"error":      err.Error(),
			}).Error("Failed to process delivery job")
			continue
		}

		if err := w.queue.Ack(jobCtx, qj); err != nil {
			w.logger.WithFields(map[string]interface{}{
				"webhook_id": qj.Job.WebhookID,
				"error":      err.Error(),
			}).Error("Failed to ack delivery job")
		}
	}
}

// process performs one delivery attempt end to end.
func (w *DeliveryWorker) process(ctx context.Context, job *domain.DeliveryJob) error {
	sub, err := w.cache.GetOrLoad(ctx, job.SubscriptionID)
	if domain.IsNotFound(err) {
		// The subscription was deleted while the job was in flight;
		// drop it without a log row.
		w.logger.WithFields(map[string]interface{}{
			"webhook_id":      job.WebhookID,
			"subscription_id": job.SubscriptionID,
		}).Debug("Subscription gone, dropping delivery job")
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to resolve subscription: %w", err)
	}

	statusCode, errMsg := w.post(ctx, sub.TargetURL, job)

	if statusCode != nil && *statusCode >= 200 && *statusCode < 300 {
		return w.handleSuccess(ctx, job, sub.TargetURL, *statusCode)
	}
	return w.handleFailure(ctx, job, sub.TargetURL, statusCode, errMsg)
}

// post sends the payload to the target and classifies the result: a
// status code when a response was received, and an error message for
// any failure. Transport errors leave the status code nil.
func (w *DeliveryWorker) post(ctx context.Context, targetURL string, job *domain.DeliveryJob) (*int, string) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, targetURL, bytes.NewReader(job.Payload))
	if err != nil {
		return nil, err.Error()
	}

	req.Header.Set("Content-Type", "application/json")
	if job.EventType != "" {
		req.Header.Set("X-Event-Type", job.EventType)
	}
	if job.Signature != "" {
		req.Header.Set("X-Signature", job.Signature)
	}

	resp, err := w.httpClient.Do(req)
	if err != nil {
		return nil, err.Error()
	}
	defer resp.Body.Close()

	// The response body is ignored; drain a little so the connection
	// can be reused.
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 1024))

	code := resp.StatusCode
	if code >= 200 && code < 300 {
		return &code, ""
	}
	return &code, fmt.Sprintf("HTTP %d", code)
}

// handleSuccess writes the terminal Success row. No retry follows.
func (w *DeliveryWorker) handleSuccess(ctx context.Context, job *domain.DeliveryJob, targetURL string, statusCode int) error {
	if err := w.logAttempt(ctx, job, targetURL, domain.OutcomeSuccess, &statusCode, nil); err != nil {
		return err
	}

	w.logger.WithFields(map[string]interface{}{
		"webhook_id":  job.WebhookID,
		"attempt":     job.Attempt,
		"status_code": statusCode,
	}).Debug("Webhook delivered successfully")
	return nil
}

// handleFailure records the failed attempt and schedules the next one,
// or writes the terminal Failure row once attempts are exhausted. The
// log row is always written before the retry is enqueued.
func (w *DeliveryWorker) handleFailure(ctx context.Context, job *domain.DeliveryJob, targetURL string, statusCode *int, errMsg string) error {
	if job.Attempt >= MaxAttempts {
		if err := w.logAttempt(ctx, job, targetURL, domain.OutcomeFailure, statusCode, &errMsg); err != nil {
			return err
		}

		w.logger.WithFields(map[string]interface{}{
			"webhook_id": job.WebhookID,
			"attempts":   job.Attempt,
			"error":      errMsg,
		}).Warn("Webhook delivery permanently failed after max retries")
		return nil
	}

	if err := w.logAttempt(ctx, job, targetURL, domain.OutcomeFailedAttempt, statusCode, &errMsg); err != nil {
		return err
	}

	delay := backoffSchedule[job.Attempt-1]
	next := *job
	next.Attempt = job.Attempt + 1
	if err := w.queue.EnqueueIn(ctx, delay, &next); err != nil {
		return fmt.Errorf("failed to schedule retry: %w", err)
	}

	w.logger.WithFields(map[string]interface{}{
		"webhook_id":   job.WebhookID,
		"attempt":      job.Attempt,
		"next_attempt": next.Attempt,
		"delay":        delay.String(),
		"error":        errMsg,
	}).Debug("Webhook delivery failed, scheduled retry")
	return nil
}

// logAttempt appends exactly one log row for the attempt.
func (w *DeliveryWorker) logAttempt(ctx context.Context, job *domain.DeliveryJob, targetURL, outcome string, statusCode *int, errMsg *string) error {
	log := &domain.DeliveryLog{
		ID:             uuid.New().String(),
		WebhookID:      job.WebhookID,
		SubscriptionID: job.SubscriptionID,
		TargetURL:      targetURL,
		Timestamp:      w.now().UTC(),
		AttemptNumber:  job.Attempt,
		Outcome:        outcome,
		StatusCode:     statusCode,
		Error:          errMsg,
	}

	if err := w.logRepo.Create(ctx, log); err != nil {
		return fmt.Errorf("failed to log delivery attempt: %w", err)
	}
	return nil
}
