package grpc

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	catalogv1 "github.com/dwikikusuma/phonestore/api/catalog/v1"
	"github.com/dwikikusuma/phonestore/internal/catalog/app"
	"github.com/dwikikusuma/phonestore/internal/catalog/domain"
)

type stubRepo struct {
	app.ProductRepo
	results []domain.SearchResult
	product domain.Product
	err     error
}

func (r stubRepo) Search(ctx context.Context, term string, limit int) ([]domain.SearchResult, error) {
	return r.results, r.err
}

func (r stubRepo) Get(ctx context.Context, id string) (domain.Product, error) {
	if r.product.ID != id {
		return domain.Product{}, app.ErrNotFound
	}
	return r.product, nil
}

func TestSearchAttachesRoutes(t *testing.T) {
	srv := NewServer(app.NewService(stubRepo{results: []domain.SearchResult{
		{ID: "1", Name: "Galaxy A16", Subcategory: "Samsung Galaxy A16"},
		{ID: "2", Name: "3310", Subcategory: "Nokia 3310"},
	}}))

	resp, err := srv.Search(context.Background(), &catalogv1.SearchRequest{Query: "a1"})
	require.NoError(t, err)
	require.Len(t, resp.Results, 2)
	assert.Equal(t, "/brand/samsung", resp.Results[0].Route)
	assert.Equal(t, domain.FallbackRoute, resp.Results[1].Route)
}

func TestSearchBackendErrorIsEmpty(t *testing.T) {
	srv := NewServer(app.NewService(stubRepo{err: errors.New("boom")}))

	resp, err := srv.Search(context.Background(), &catalogv1.SearchRequest{Query: "samsung"})
	require.NoError(t, err)
	assert.Empty(t, resp.Results)
}

func TestGetProduct(t *testing.T) {
	created := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	srv := NewServer(app.NewService(stubRepo{product: domain.Product{
		ID:          "p1",
		Name:        "Hot 50",
		Subcategory: "Infinix Hot 50",
		Variants:    []domain.Variant{{RAM: "8GB", Storage: "256GB", Price: 41000}},
		CreatedAt:   created,
	}}))

	resp, err := srv.GetProduct(context.Background(), &catalogv1.GetProductRequest{ID: "p1"})
	require.NoError(t, err)
	assert.Equal(t, "/brand/infinix", resp.Product.Route)
	assert.Equal(t, "Hot 50 (8GB RAM - 256GB)", resp.Product.Variants[0].CartTitle)
	assert.Equal(t, created.Unix(), resp.Product.CreatedAtUnix)

	_, err = srv.GetProduct(context.Background(), &catalogv1.GetProductRequest{ID: "nope"})
	assert.Equal(t, codes.NotFound, status.Code(err))

	_, err = srv.GetProduct(context.Background(), &catalogv1.GetProductRequest{})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}

func TestResolveRoute(t *testing.T) {
	srv := NewServer(app.NewService(stubRepo{}))
	resp, err := srv.ResolveRoute(context.Background(), &catalogv1.ResolveRouteRequest{Subcategory: "Redmi Note 13"})
	require.NoError(t, err)
	assert.Equal(t, "/brand/xiaomi", resp.Route)
}
