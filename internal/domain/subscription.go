package domain

//go:generate mockgen -destination mocks/mock_subscription_repository.go -package mocks github.com/remsins/webhook/internal/domain SubscriptionRepository
//go:generate mockgen -destination mocks/mock_subscription_cache.go -package mocks github.com/remsins/webhook/internal/domain SubscriptionCache

import (
	"context"
	"fmt"
	"net/url"

	"github.com/asaskevich/govalidator"
)

// Subscription represents a registered target endpoint that receives
// webhooks. Secret and events are optional; an empty events set means
// the subscription accepts all event types.
type Subscription struct {
	ID        string   `json:"id"`
	TargetURL string   `json:"target_url"`
	Secret    *string  `json:"secret"`
	Events    []string `json:"events"`
}

// ValidateTargetURL checks that raw is an absolute http(s) URL.
func ValidateTargetURL(raw string) error {
	if raw == "" {
		return NewValidationError("target_url is required")
	}
	if !govalidator.IsRequestURL(raw) {
		return NewValidationError(fmt.Sprintf("invalid target_url: %s", raw))
	}
	u, err := url.Parse(raw)
	if err != nil {
		return NewValidationError(fmt.Sprintf("invalid target_url: %s", raw))
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return NewValidationError("target_url must use http or https")
	}
	return nil
}

// SubscriptionUpdate carries a partial update. Nil fields are left
// untouched; Events distinguishes "not provided" (nil pointer) from
// "clear the set" (pointer to empty slice).
type SubscriptionUpdate struct {
	TargetURL *string   `json:"target_url"`
	Secret    *string   `json:"secret"`
	Events    *[]string `json:"events"`
}

// SubscriptionRepository defines the interface for subscription data access
type SubscriptionRepository interface {
	Create(ctx context.Context, sub *Subscription) error
	GetByID(ctx context.Context, id string) (*Subscription, error)
	List(ctx context.Context, offset, limit int) ([]*Subscription, error)
	Update(ctx context.Context, sub *Subscription) error
	Delete(ctx context.Context, id string) error
}

// SubscriptionCache is a derived, best-effort projection of subscription
// rows keyed by id. Put and Invalidate never propagate failures;
// correctness always falls back on the repository.
type SubscriptionCache interface {
	Put(ctx context.Context, sub *Subscription)
	Get(ctx context.Context, id string) (*Subscription, bool)
	Invalidate(ctx context.Context, id string)
	// GetOrLoad returns the cached projection, loading from the
	// repository and writing through on a miss or corrupt entry. It
	// returns ErrNotFound only when the repository has no such row.
	GetOrLoad(ctx context.Context, id string) (*Subscription, error)
}
