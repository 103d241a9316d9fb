package grpc

import (
	"context"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	adminv1 "github.com/dwikikusuma/phonestore/api/admin/v1"
	listingv1 "github.com/dwikikusuma/phonestore/api/listing/v1"
	"github.com/dwikikusuma/phonestore/internal/admin/auth"
	catalogapp "github.com/dwikikusuma/phonestore/internal/catalog/app"
	"github.com/dwikikusuma/phonestore/internal/catalog/domain"
	cataloggrpc "github.com/dwikikusuma/phonestore/internal/catalog/grpc"
	listingapp "github.com/dwikikusuma/phonestore/internal/listing/app"
	listinggrpc "github.com/dwikikusuma/phonestore/internal/listing/grpc"
)

// Server composes catalog writes and listing review behind the admin
// interceptor, which puts the verified e-mail on the context.
type Server struct {
	catalog  *catalogapp.Service
	listings *listingapp.Service
}

func NewServer(catalog *catalogapp.Service, listings *listingapp.Service) *Server {
	return &Server{catalog: catalog, listings: listings}
}

func (s *Server) CreateProduct(ctx context.Context, req *adminv1.CreateProductRequest) (*adminv1.ProductResponse, error) {
	p, err := s.catalog.CreateProduct(ctx, productInput(req.Product))
	if err != nil {
		return nil, cataloggrpc.MapErr(err)
	}
	return s.product(p), nil
}

func (s *Server) UpdateProduct(ctx context.Context, req *adminv1.UpdateProductRequest) (*adminv1.ProductResponse, error) {
	p, err := s.catalog.UpdateProduct(ctx, req.ID, productInput(req.Product))
	if err != nil {
		return nil, cataloggrpc.MapErr(err)
	}
	return s.product(p), nil
}

func (s *Server) DeleteProduct(ctx context.Context, req *adminv1.DeleteProductRequest) (*adminv1.DeleteResponse, error) {
	if err := s.catalog.DeleteProduct(ctx, req.ID); err != nil {
		return nil, cataloggrpc.MapErr(err)
	}
	return &adminv1.DeleteResponse{}, nil
}

func (s *Server) AttachProductImage(ctx context.Context, req *adminv1.AttachProductImageRequest) (*adminv1.ProductResponse, error) {
	p, err := s.catalog.AttachProductImage(ctx, req.ProductID, req.Filename, req.ContentType, req.Data)
	if err != nil {
		return nil, cataloggrpc.MapErr(err)
	}
	return s.product(p), nil
}

func (s *Server) ListListings(ctx context.Context, req *adminv1.ListListingsRequest) (*adminv1.ListListingsResponse, error) {
	st := req.Status
	if st == "" {
		st = "PENDING"
	}
	listings, err := s.listings.ListByStatus(ctx, st, int(req.Limit))
	if err != nil {
		return nil, listinggrpc.MapErr(err)
	}

	out := make([]listingv1.Listing, 0, len(listings))
	for _, l := range listings {
		out = append(out, listinggrpc.ToProto(l, true))
	}
	return &adminv1.ListListingsResponse{Listings: out}, nil
}

func (s *Server) ApproveListing(ctx context.Context, req *adminv1.ReviewListingRequest) (*adminv1.ListingResponse, error) {
	reviewer, err := reviewerFrom(ctx)
	if err != nil {
		return nil, err
	}
	l, err := s.listings.Approve(ctx, req.ID, reviewer, req.Note)
	if err != nil {
		return nil, listinggrpc.MapErr(err)
	}
	return &adminv1.ListingResponse{Listing: listinggrpc.ToProto(l, true)}, nil
}

func (s *Server) RejectListing(ctx context.Context, req *adminv1.ReviewListingRequest) (*adminv1.ListingResponse, error) {
	reviewer, err := reviewerFrom(ctx)
	if err != nil {
		return nil, err
	}
	l, err := s.listings.Reject(ctx, req.ID, reviewer, req.Note)
	if err != nil {
		return nil, listinggrpc.MapErr(err)
	}
	return &adminv1.ListingResponse{Listing: listinggrpc.ToProto(l, true)}, nil
}

func (s *Server) DeleteListing(ctx context.Context, req *adminv1.DeleteListingRequest) (*adminv1.DeleteResponse, error) {
	if err := s.listings.Delete(ctx, req.ID); err != nil {
		return nil, listinggrpc.MapErr(err)
	}
	return &adminv1.DeleteResponse{}, nil
}

func (s *Server) product(p domain.Product) *adminv1.ProductResponse {
	return &adminv1.ProductResponse{Product: cataloggrpc.ToProto(p, s.catalog.ResolveRoute(p.Subcategory))}
}

func reviewerFrom(ctx context.Context) (string, error) {
	email, ok := auth.EmailFromContext(ctx)
	if !ok {
		return "", status.Error(codes.Unauthenticated, "admin identity missing")
	}
	return email, nil
}

func productInput(in adminv1.ProductInput) catalogapp.ProductInput {
	variants := make([]domain.Variant, 0, len(in.Variants))
	for _, v := range in.Variants {
		variants = append(variants, domain.Variant{RAM: v.RAM, Storage: v.Storage, Price: v.Price})
	}
	return catalogapp.ProductInput{
		Name:        in.Name,
		Description: in.Description,
		Currency:    in.Price.Currency,
		Amount:      in.Price.Amount,
		Category:    in.Category,
		Subcategory: in.Subcategory,
		Image:       in.Image,
		Variants:    variants,
	}
}

var _ adminv1.AdminServiceServer = (*Server)(nil)
