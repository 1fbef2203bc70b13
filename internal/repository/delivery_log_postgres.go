package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/remsins/webhook/internal/domain"
)

// deliveryLogRepository implements domain.DeliveryLogRepository for PostgreSQL
type deliveryLogRepository struct {
	db *sql.DB
}

// NewDeliveryLogRepository creates a new PostgreSQL delivery log repository
func NewDeliveryLogRepository(db *sql.DB) domain.DeliveryLogRepository {
	return &deliveryLogRepository{
		db: db,
	}
}

// Create appends a delivery log row
func (r *deliveryLogRepository) Create(ctx context.Context, log *domain.DeliveryLog) error {
	query := `
		INSERT INTO delivery_logs (
			id, webhook_id, subscription_id, target_url,
			timestamp, attempt_number, outcome, status_code, error
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9
		)
	`

	_, err := r.db.ExecContext(ctx, query,
		log.ID,
		log.WebhookID,
		log.SubscriptionID,
		log.TargetURL,
		log.Timestamp,
		log.AttemptNumber,
		log.Outcome,
		log.StatusCode,
		log.Error,
	)
	if err != nil {
		return fmt.Errorf("failed to create delivery log: %w", err)
	}

	return nil
}

// CountByWebhookID counts log rows for one webhook
func (r *deliveryLogRepository) CountByWebhookID(ctx context.Context, webhookID string) (int, error) {
	query := `SELECT COUNT(*) FROM delivery_logs WHERE webhook_id = $1`

	var total int
	if err := r.db.QueryRowContext(ctx, query, webhookID).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to count delivery logs: %w", err)
	}

	return total, nil
}

// ListByWebhookID retrieves log rows for one webhook, newest first
func (r *deliveryLogRepository) ListByWebhookID(ctx context.Context, webhookID string, limit int) ([]*domain.DeliveryLog, error) {
	query := `
		SELECT id, webhook_id, subscription_id, target_url,
			timestamp, attempt_number, outcome, status_code, error
		FROM delivery_logs
		WHERE webhook_id = $1
		ORDER BY timestamp DESC
		LIMIT $2
	`

	return r.queryLogs(ctx, query, webhookID, limit)
}

// ListBySubscriptionID retrieves log rows for one subscription, newest first
func (r *deliveryLogRepository) ListBySubscriptionID(ctx context.Context, subscriptionID string, limit int) ([]*domain.DeliveryLog, error) {
	query := `
		SELECT id, webhook_id, subscription_id, target_url,
			timestamp, attempt_number, outcome, status_code, error
		FROM delivery_logs
		WHERE subscription_id = $1
		ORDER BY timestamp DESC
		LIMIT $2
	`

	return r.queryLogs(ctx, query, subscriptionID, limit)
}

// DeleteOlderThan bulk-deletes log rows with timestamp < cutoff
func (r *deliveryLogRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	query := `DELETE FROM delivery_logs WHERE timestamp < $1`

	result, err := r.db.ExecContext(ctx, query, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to delete old delivery logs: %w", err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return deleted, nil
}

func (r *deliveryLogRepository) queryLogs(ctx context.Context, query string, args ...interface{}) ([]*domain.DeliveryLog, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query delivery logs: %w", err)
	}
	defer rows.Close()

	logs := make([]*domain.DeliveryLog, 0)
	for rows.Next() {
		log, err := scanDeliveryLog(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan delivery log: %w", err)
		}
		logs = append(logs, log)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating delivery logs: %w", err)
	}

	return logs, nil
}

// scanDeliveryLog scans a row from sql.Rows into a DeliveryLog
func scanDeliveryLog(rows *sql.Rows) (*domain.DeliveryLog, error) {
	var log domain.DeliveryLog
	var statusCode sql.NullInt64
	var errMsg sql.NullString

	err := rows.Scan(
		&log.ID,
		&log.WebhookID,
		&log.SubscriptionID,
		&log.TargetURL,
		&log.Timestamp,
		&log.AttemptNumber,
		&log.Outcome,
		&statusCode,
		&errMsg,
	)
	if err != nil {
		return nil, err
	}

	if statusCode.Valid {
		code := int(statusCode.Int64)
		log.StatusCode = &code
	}
	if errMsg.Valid {
		log.Error = &errMsg.String
	}

	return &log, nil
}
