package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/remsins/webhook/internal/domain"
	"github.com/remsins/webhook/pkg/logger"
)

// SubscriptionService manages subscription CRUD and keeps the cache
// coherent with the store: writes go to the repository first, then the
// cache is refreshed (create/update) or invalidated (delete).
type SubscriptionService struct {
	repo   domain.SubscriptionRepository
	cache  domain.SubscriptionCache
	logger logger.Logger
}

// NewSubscriptionService creates a new subscription service
func NewSubscriptionService(repo domain.SubscriptionRepository, cache domain.SubscriptionCache, logger logger.Logger) *SubscriptionService {
	return &SubscriptionService{
		repo:   repo,
		cache:  cache,
		logger: logger,
	}
}

// Create validates and persists a new subscription, then writes it
// through to the cache.
func (s *SubscriptionService) Create(ctx context.Context, targetURL string, secret *string, events []string) (*domain.Subscription, error) {
	if err := domain.ValidateTargetURL(targetURL); err != nil {
		return nil, err
	}

	sub := &domain.Subscription{
		ID:        uuid.New().String(),
		TargetURL: targetURL,
		Secret:    secret,
		Events:    events,
	}

	if err := s.repo.Create(ctx, sub); err != nil {
		return nil, fmt.Errorf("failed to create subscription: %w", err)
	}

	s.cache.Put(ctx, sub)

	return sub, nil
}

// GetByID returns one subscription, served from the cache when possible.
func (s *SubscriptionService) GetByID(ctx context.Context, id string) (*domain.Subscription, error) {
	return s.cache.GetOrLoad(ctx, id)
}

// List returns a page of subscriptions straight from the store. The
// cache is deliberately bypassed: it may not hold every row.
func (s *SubscriptionService) List(ctx context.Context, skip, limit int) ([]*domain.Subscription, error) {
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 || limit > 100 {
		limit = 100
	}
	return s.repo.List(ctx, skip, limit)
}

// Update applies a partial update, persists it, and refreshes the cache.
func (s *SubscriptionService) Update(ctx context.Context, id string, update *domain.SubscriptionUpdate) (*domain.Subscription, error) {
	sub, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if update.TargetURL != nil {
		if err := domain.ValidateTargetURL(*update.TargetURL); err != nil {
			return nil, err
		}
		sub.TargetURL = *update.TargetURL
	}
	if update.Secret != nil {
		sub.Secret = update.Secret
	}
	if update.Events != nil {
		sub.Events = *update.Events
	}

	if err := s.repo.Update(ctx, sub); err != nil {
		return nil, fmt.Errorf("failed to update subscription: %w", err)
	}

	s.cache.Put(ctx, sub)

	return sub, nil
}

// Delete removes a subscription from the store, then invalidates its
// cache entry.
func (s *SubscriptionService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.cache.Invalidate(ctx, id)

	return nil
}
