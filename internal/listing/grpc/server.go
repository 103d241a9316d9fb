package grpc

import (
	"context"
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	listingv1 "github.com/dwikikusuma/phonestore/api/listing/v1"
	"github.com/dwikikusuma/phonestore/internal/listing/app"
	"github.com/dwikikusuma/phonestore/internal/listing/domain"
)

type Server struct {
	svc *app.Service
}

func NewServer(svc *app.Service) *Server {
	return &Server{svc: svc}
}

func (s *Server) Submit(ctx context.Context, req *listingv1.SubmitRequest) (*listingv1.SubmitResponse, error) {
	l, err := s.svc.Submit(ctx, app.SubmitInput{
		SellerName:  req.SellerName,
		SellerPhone: req.SellerPhone,
		Model:       req.Model,
		Condition:   req.Condition,
		AskingPrice: req.AskingPrice,
		Description: req.Description,
		Images:      req.Images,
	})
	if err != nil {
		return nil, MapErr(err)
	}
	return &listingv1.SubmitResponse{Listing: ToProto(l, true)}, nil
}

// ListApproved is public, so seller phone numbers are withheld.
func (s *Server) ListApproved(ctx context.Context, req *listingv1.ListApprovedRequest) (*listingv1.ListApprovedResponse, error) {
	listings, err := s.svc.ListApproved(ctx, int(req.Limit))
	if err != nil {
		return nil, MapErr(err)
	}

	out := make([]listingv1.Listing, 0, len(listings))
	for _, l := range listings {
		out = append(out, ToProto(l, false))
	}
	return &listingv1.ListApprovedResponse{Listings: out}, nil
}

func ToProto(l domain.Listing, withContact bool) listingv1.Listing {
	out := listingv1.Listing{
		ID:            l.ID,
		SellerName:    l.SellerName,
		Model:         l.Model,
		Condition:     l.Condition,
		AskingPrice:   l.AskingPrice,
		Description:   l.Description,
		Images:        l.Images,
		Status:        string(l.Status),
		ReviewNote:    l.ReviewNote,
		ReviewedBy:    l.ReviewedBy,
		CreatedAtUnix: l.CreatedAt.Unix(),
	}
	if out.Images == nil {
		out.Images = []string{}
	}
	if withContact {
		out.SellerPhone = l.SellerPhone
	}
	if !l.ReviewedAt.IsZero() {
		out.ReviewedAtUnix = l.ReviewedAt.Unix()
	}
	return out
}

func MapErr(err error) error {
	switch {
	case errors.Is(err, app.ErrInvalidInput):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, app.ErrNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, domain.ErrInvalidTransition):
		return status.Error(codes.FailedPrecondition, err.Error())
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, err.Error())
	}
	return status.Error(codes.Internal, "internal error")
}
