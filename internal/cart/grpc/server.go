package grpc

import (
	"context"
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	cartv1 "github.com/dwikikusuma/phonestore/api/cart/v1"
	"github.com/dwikikusuma/phonestore/internal/cart/app"
	"github.com/dwikikusuma/phonestore/internal/cart/domain"
)

type Server struct {
	svc *app.Service
}

func NewServer(svc *app.Service) *Server {
	return &Server{svc: svc}
}

func (s *Server) AddItem(ctx context.Context, req *cartv1.AddItemRequest) (*cartv1.Cart, error) {
	if req.UnitPrice < 0 {
		return nil, status.Error(codes.InvalidArgument, "unit_price must not be negative")
	}

	_, err := s.svc.AddToCart(ctx, req.SessionID, domain.Item{
		Title:     req.Title,
		UnitPrice: req.UnitPrice,
		Image:     req.Image,
		Category:  req.Category,
	})
	if err != nil {
		return nil, mapErr(err)
	}
	return s.current(ctx, req.SessionID)
}

func (s *Server) UpdateQuantity(ctx context.Context, req *cartv1.UpdateQuantityRequest) (*cartv1.Cart, error) {
	if err := s.svc.UpdateQuantity(ctx, req.SessionID, req.LineID, req.Quantity); err != nil {
		return nil, mapErr(err)
	}
	return s.current(ctx, req.SessionID)
}

func (s *Server) RemoveItem(ctx context.Context, req *cartv1.RemoveItemRequest) (*cartv1.Cart, error) {
	if err := s.svc.RemoveItem(ctx, req.SessionID, req.LineID); err != nil {
		return nil, mapErr(err)
	}
	return s.current(ctx, req.SessionID)
}

func (s *Server) ClearCart(ctx context.Context, req *cartv1.SessionRequest) (*cartv1.Cart, error) {
	if err := s.svc.ClearCart(ctx, req.SessionID); err != nil {
		return nil, mapErr(err)
	}
	return s.current(ctx, req.SessionID)
}

func (s *Server) GetCart(ctx context.Context, req *cartv1.SessionRequest) (*cartv1.Cart, error) {
	return s.current(ctx, req.SessionID)
}

func (s *Server) current(ctx context.Context, sessionID string) (*cartv1.Cart, error) {
	snap, err := s.svc.GetCart(ctx, sessionID)
	if err != nil {
		return nil, mapErr(err)
	}
	return toProto(sessionID, snap, s.svc.TaxRate().String()), nil
}

func toProto(sessionID string, snap app.Snapshot, taxRate string) *cartv1.Cart {
	lines := make([]cartv1.CartLine, 0, len(snap.Lines))
	for _, l := range snap.Lines {
		lines = append(lines, cartv1.CartLine{
			ID:        l.ID,
			Title:     l.Title,
			UnitPrice: l.UnitPrice,
			Image:     l.Image,
			Category:  l.Category,
			Quantity:  l.Quantity,
			LineTotal: l.LineTotal(),
		})
	}

	return &cartv1.Cart{
		SessionID: sessionID,
		Lines:     lines,
		Totals: cartv1.Totals{
			ItemCount: snap.Totals.ItemCount,
			Subtotal:  snap.Totals.Subtotal,
			Tax:       snap.Totals.Tax,
			Total:     snap.Totals.Total,
			TaxRate:   taxRate,
		},
	}
}

func mapErr(err error) error {
	if errors.Is(err, app.ErrInvalidSession) {
		return status.Error(codes.InvalidArgument, err.Error())
	}
	if errors.Is(err, context.Canceled) {
		return status.Error(codes.Canceled, err.Error())
	}
	return status.Error(codes.Internal, "internal error")
}
