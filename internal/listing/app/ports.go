package app

import (
	"context"

	"github.com/dwikikusuma/phonestore/internal/listing/domain"
)

type ListingRepo interface {
	Create(ctx context.Context, l domain.Listing) (domain.Listing, error)
	Get(ctx context.Context, id string) (domain.Listing, error)
	// UpdateReview persists a review only if the stored row is still pending.
	UpdateReview(ctx context.Context, l domain.Listing) (domain.Listing, error)
	Delete(ctx context.Context, id string) error
	ListByStatus(ctx context.Context, status domain.Status, limit int) ([]domain.Listing, error)
}

type Notifier interface {
	ListingSubmitted(ctx context.Context, l domain.Listing) error
}
