package app

import (
	"context"

	"github.com/dwikikusuma/phonestore/internal/catalog/domain"
)

type ListFilter struct {
	Category    string
	Subcategory string
	Limit       int
}

type ProductRepo interface {
	Create(ctx context.Context, p domain.Product) (domain.Product, error)
	Get(ctx context.Context, id string) (domain.Product, error)
	Update(ctx context.Context, p domain.Product) (domain.Product, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, f ListFilter) ([]domain.Product, error)
	// Search matches term case-insensitively against name, category and
	// subcategory, newest first.
	Search(ctx context.Context, term string, limit int) ([]domain.SearchResult, error)
}

type ImageStore interface {
	Put(ctx context.Context, object, contentType string, data []byte) (string, error)
	Delete(ctx context.Context, url string) error
}

// SearchCache failures are logged and never fail a search. Get returns the
// catalog version it looked under; Set must be given that version.
type SearchCache interface {
	Get(ctx context.Context, term string) (results []domain.SearchResult, version int64, hit bool, err error)
	Set(ctx context.Context, version int64, term string, results []domain.SearchResult) error
	Invalidate(ctx context.Context) error
}
