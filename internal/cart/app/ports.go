package app

import (
	"context"

	"github.com/dwikikusuma/phonestore/internal/cart/domain"
)

// SessionStore owns the carts of live sessions. Update and View run fn while
// holding the session's lock, creating an empty cart for unknown ids.
type SessionStore interface {
	Update(ctx context.Context, sessionID string, fn func(c *domain.Cart)) error
	View(ctx context.Context, sessionID string, fn func(c *domain.Cart)) error
	Drop(ctx context.Context, sessionID string) error
}
