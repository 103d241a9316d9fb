package grpc

import (
	"context"
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	catalogv1 "github.com/dwikikusuma/phonestore/api/catalog/v1"
	"github.com/dwikikusuma/phonestore/internal/catalog/app"
	"github.com/dwikikusuma/phonestore/internal/catalog/domain"
)

type Server struct {
	svc *app.Service
}

func NewServer(svc *app.Service) *Server {
	return &Server{svc: svc}
}

// Search never fails on backend errors; an unreachable catalog reads as
// "no results".
func (s *Server) Search(ctx context.Context, req *catalogv1.SearchRequest) (*catalogv1.SearchResponse, error) {
	results := s.svc.Search(ctx, req.Query)

	out := make([]catalogv1.SearchResult, 0, len(results))
	for _, r := range results {
		out = append(out, catalogv1.SearchResult{
			ID:          r.ID,
			Name:        r.Name,
			Price:       catalogv1.Money{Currency: r.Price.Currency, Amount: r.Price.Amount},
			Category:    r.Category,
			Subcategory: r.Subcategory,
			Route:       s.svc.ResolveRoute(r.Subcategory),
		})
	}
	return &catalogv1.SearchResponse{Results: out}, nil
}

func (s *Server) ResolveRoute(ctx context.Context, req *catalogv1.ResolveRouteRequest) (*catalogv1.ResolveRouteResponse, error) {
	return &catalogv1.ResolveRouteResponse{Route: s.svc.ResolveRoute(req.Subcategory)}, nil
}

func (s *Server) GetProduct(ctx context.Context, req *catalogv1.GetProductRequest) (*catalogv1.GetProductResponse, error) {
	p, err := s.svc.GetProduct(ctx, req.ID)
	if err != nil {
		return nil, MapErr(err)
	}
	return &catalogv1.GetProductResponse{Product: ToProto(p, s.svc.ResolveRoute(p.Subcategory))}, nil
}

func (s *Server) ListProducts(ctx context.Context, req *catalogv1.ListProductsRequest) (*catalogv1.ListProductsResponse, error) {
	products, err := s.svc.ListProducts(ctx, req.Category, req.Subcategory, int(req.Limit))
	if err != nil {
		return nil, MapErr(err)
	}

	out := make([]catalogv1.Product, 0, len(products))
	for _, p := range products {
		out = append(out, ToProto(p, s.svc.ResolveRoute(p.Subcategory)))
	}
	return &catalogv1.ListProductsResponse{Products: out}, nil
}

func ToProto(p domain.Product, route string) catalogv1.Product {
	variants := make([]catalogv1.Variant, 0, len(p.Variants))
	for _, v := range p.Variants {
		variants = append(variants, catalogv1.Variant{
			RAM:       v.RAM,
			Storage:   v.Storage,
			Price:     v.Price,
			CartTitle: domain.VariantTitle(p.Name, v),
		})
	}

	return catalogv1.Product{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price: catalogv1.Money{
			Currency: p.Price.Currency,
			Amount:   p.Price.Amount,
		},
		Category:      p.Category,
		Subcategory:   p.Subcategory,
		Route:         route,
		Image:         p.Image,
		Images:        p.Images,
		Variants:      variants,
		CreatedAtUnix: p.CreatedAt.Unix(),
		UpdatedAtUnix: p.UpdatedAt.Unix(),
	}
}

func MapErr(err error) error {
	if errors.Is(err, app.ErrInvalidInput) {
		return status.Error(codes.InvalidArgument, err.Error())
	}
	if errors.Is(err, app.ErrNotFound) {
		return status.Error(codes.NotFound, err.Error())
	}
	if errors.Is(err, app.ErrNoImageStore) {
		return status.Error(codes.FailedPrecondition, err.Error())
	}
	return status.Error(codes.Internal, "internal error")
}
