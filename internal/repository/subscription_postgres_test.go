package repository

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/remsins/webhook/internal/domain"
)

func setupSubscriptionRepoTest(t *testing.T) (domain.SubscriptionRepository, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	repo := NewSubscriptionRepository(db)
	cleanup := func() { db.Close() }

	return repo, mock, cleanup
}

func strPtr(s string) *string {
	return &s
}

func TestSubscriptionRepository_Create(t *testing.T) {
	repo, mock, cleanup := setupSubscriptionRepoTest(t)
	defer cleanup()

	sub := &domain.Subscription{
		ID:        "6c2c5c16-91a7-4d3a-a25e-12c1a2f3f7de",
		TargetURL: "https://example.com/hook",
		Secret:    strPtr("s3cret"),
		Events:    []string{"order.created"},
	}

	mock.ExpectExec("INSERT INTO subscriptions").
		WithArgs(sub.ID, sub.TargetURL, sub.Secret, pq.Array(sub.Events)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Create(context.Background(), sub)
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSubscriptionRepository_CreateError(t *testing.T) {
	repo, mock, cleanup := setupSubscriptionRepoTest(t)
	defer cleanup()

	mock.ExpectExec("INSERT INTO subscriptions").
		WillReturnError(errors.New("connection refused"))

	err := repo.Create(context.Background(), &domain.Subscription{ID: "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create subscription")
}

func TestSubscriptionRepository_GetByID(t *testing.T) {
	repo, mock, cleanup := setupSubscriptionRepoTest(t)
	defer cleanup()

	id := "6c2c5c16-91a7-4d3a-a25e-12c1a2f3f7de"
	rows := sqlmock.NewRows([]string{"id", "target_url", "secret", "events"}).
		AddRow(id, "https://example.com/hook", "s3cret", pq.Array([]string{"order.created", "order.updated"}))

	mock.ExpectQuery("SELECT id, target_url, secret, events").
		WithArgs(id).
		WillReturnRows(rows)

	sub, err := repo.GetByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, id, sub.ID)
	assert.Equal(t, "https://example.com/hook", sub.TargetURL)
	require.NotNil(t, sub.Secret)
	assert.Equal(t, "s3cret", *sub.Secret)
	assert.Equal(t, []string{"order.created", "order.updated"}, sub.Events)
}

func TestSubscriptionRepository_GetByIDNullSecret(t *testing.T) {
	repo, mock, cleanup := setupSubscriptionRepoTest(t)
	defer cleanup()

	id := "6c2c5c16-91a7-4d3a-a25e-12c1a2f3f7de"
	rows := sqlmock.NewRows([]string{"id", "target_url", "secret", "events"}).
		AddRow(id, "https://example.com/hook", nil, pq.Array([]string{}))

	mock.ExpectQuery("SELECT id, target_url, secret, events").
		WithArgs(id).
		WillReturnRows(rows)

	sub, err := repo.GetByID(context.Background(), id)
	require.NoError(t, err)
	assert.Nil(t, sub.Secret)
}

func TestSubscriptionRepository_GetByIDNotFound(t *testing.T) {
	repo, mock, cleanup := setupSubscriptionRepoTest(t)
	defer cleanup()

	id := "00000000-0000-0000-0000-000000000000"
	mock.ExpectQuery("SELECT id, target_url, secret, events").
		WithArgs(id).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), id)
	require.Error(t, err)
	assert.True(t, domain.IsNotFound(err))
}

func TestSubscriptionRepository_List(t *testing.T) {
	repo, mock, cleanup := setupSubscriptionRepoTest(t)
	defer cleanup()

	rows := sqlmock.NewRows([]string{"id", "target_url", "secret", "events"}).
		AddRow("id-1", "https://a.example.com", nil, pq.Array([]string{})).
		AddRow("id-2", "https://b.example.com", "s", pq.Array([]string{"x"}))

	mock.ExpectQuery("SELECT id, target_url, secret, events").
		WithArgs(100, 0).
		WillReturnRows(rows)

	subs, err := repo.List(context.Background(), 0, 100)
	require.NoError(t, err)
	require.Len(t, subs, 2)
	assert.Equal(t, "id-1", subs[0].ID)
	assert.Equal(t, "id-2", subs[1].ID)
}

func TestSubscriptionRepository_ListEmpty(t *testing.T) {
	repo, mock, cleanup := setupSubscriptionRepoTest(t)
	defer cleanup()

	mock.ExpectQuery("SELECT id, target_url, secret, events").
		WithArgs(100, 0).
		WillReturnRows(sqlmock.NewRows([]string{"id", "target_url", "secret", "events"}))

	subs, err := repo.List(context.Background(), 0, 100)
	require.NoError(t, err)
	assert.NotNil(t, subs)
	assert.Len(t, subs, 0)
}

func TestSubscriptionRepository_Update(t *testing.T) {
	repo, mock, cleanup := setupSubscriptionRepoTest(t)
	defer cleanup()

	sub := &domain.Subscription{
		ID:        "id-1",
		TargetURL: "https://new.example.com",
		Events:    []string{"order.created"},
	}

	mock.ExpectExec("UPDATE subscriptions").
		WithArgs(sub.ID, sub.TargetURL, sub.Secret, pq.Array(sub.Events)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Update(context.Background(), sub)
	require.NoError(t, err)
}

func TestSubscriptionRepository_UpdateNotFound(t *testing.T) {
	repo, mock, cleanup := setupSubscriptionRepoTest(t)
	defer cleanup()

	sub := &domain.Subscription{ID: "missing", TargetURL: "https://x.example.com"}

	mock.ExpectExec("UPDATE subscriptions").
		WithArgs(sub.ID, sub.TargetURL, sub.Secret, pq.Array(sub.Events)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Update(context.Background(), sub)
	require.Error(t, err)
	assert.True(t, domain.IsNotFound(err))
}

func TestSubscriptionRepository_Delete(t *testing.T) {
	repo, mock, cleanup := setupSubscriptionRepoTest(t)
	defer cleanup()

	mock.ExpectExec("DELETE FROM subscriptions").
		WithArgs("id-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Delete(context.Background(), "id-1")
	require.NoError(t, err)
}

func TestSubscriptionRepository_DeleteNotFound(t *testing.T) {
	repo, mock, cleanup := setupSubscriptionRepoTest(t)
	defer cleanup()

	mock.ExpectExec("DELETE FROM subscriptions").
		WithArgs("missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), "missing")
	require.Error(t, err)
	assert.True(t, domain.IsNotFound(err))
}
