package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"github.com/remsins/webhook/internal/domain"
)

// subscriptionRepository implements domain.SubscriptionRepository for PostgreSQL
type subscriptionRepository struct {
	db *sql.DB
}

// NewSubscriptionRepository creates a new PostgreSQL subscription repository
func NewSubscriptionRepository(db *sql.DB) domain.SubscriptionRepository {
	return &subscriptionRepository{
		db: db,
	}
}

// Create creates a new subscription
func (r *subscriptionRepository) Create(ctx context.Context, sub *domain.Subscription) error {
	query := `
		INSERT INTO subscriptions (
			id, target_url, secret, events, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, now(), now()
		)
	`

	_, err := r.db.ExecContext(ctx, query,
		sub.ID,
		sub.TargetURL,
		sub.Secret,
		pq.Array(sub.Events),
	)
	if err != nil {
		return fmt.Errorf("failed to create subscription: %w", err)
	}

	return nil
}

// GetByID retrieves a subscription by ID
func (r *subscriptionRepository) GetByID(ctx context.Context, id string) (*domain.Subscription, error) {
	query := `
		SELECT id, target_url, secret, events
		FROM subscriptions
		WHERE id = $1
	`

	row := r.db.QueryRowContext(ctx, query, id)
	sub, err := scanSubscription(row)
	if err == sql.ErrNoRows {
		return nil, &domain.ErrNotFound{Entity: "subscription", ID: id}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan subscription: %w", err)
	}

	return sub, nil
}

// List retrieves subscriptions with offset+limit pagination in a stable order
func (r *subscriptionRepository) List(ctx context.Context, offset, limit int) ([]*domain.Subscription, error) {
	query := `
		SELECT id, target_url, secret, events
		FROM subscriptions
		ORDER BY created_at ASC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list subscriptions: %w", err)
	}
	defer rows.Close()

	subscriptions := make([]*domain.Subscription, 0)
	for rows.Next() {
		sub, err := scanSubscription(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan subscription: %w", err)
		}
		subscriptions = append(subscriptions, sub)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating subscriptions: %w", err)
	}

	return subscriptions, nil
}

// Update updates an existing subscription
func (r *subscriptionRepository) Update(ctx context.Context, sub *domain.Subscription) error {
	query := `
		UPDATE subscriptions
		SET target_url = $2, secret = $3, events = $4, updated_at = now()
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, query,
		sub.ID,
		sub.TargetURL,
		sub.Secret,
		pq.Array(sub.Events),
	)
	if err != nil {
		return fmt.Errorf("failed to update subscription: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return &domain.ErrNotFound{Entity: "subscription", ID: sub.ID}
	}

	return nil
}

// Delete deletes a subscription
func (r *subscriptionRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM subscriptions WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete subscription: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return &domain.ErrNotFound{Entity: "subscription", ID: id}
	}

	return nil
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanSubscription scans a single row into a Subscription
func scanSubscription(row rowScanner) (*domain.Subscription, error) {
	var sub domain.Subscription
	var secret sql.NullString

	err := row.Scan(
		&sub.ID,
		&sub.TargetURL,
		&secret,
		pq.Array(&sub.Events),
	)
	if err != nil {
		return nil, err
	}

	if secret.Valid {
		sub.Secret = &secret.String
	}

	return &sub, nil
}
