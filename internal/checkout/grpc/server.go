package grpc

import (
	"context"
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	checkoutv1 "github.com/dwikikusuma/phonestore/api/checkout/v1"
	cartapp "github.com/dwikikusuma/phonestore/internal/cart/app"
	"github.com/dwikikusuma/phonestore/internal/checkout/app"
	"github.com/dwikikusuma/phonestore/internal/checkout/domain"
	orderapp "github.com/dwikikusuma/phonestore/internal/order/app"
)

type Server struct {
	svc *app.Service
}

func NewServer(svc *app.Service) *Server {
	return &Server{svc: svc}
}

func (s *Server) Quote(ctx context.Context, req *checkoutv1.QuoteRequest) (*checkoutv1.QuoteResponse, error) {
	if req.SessionID == "" {
		return nil, status.Error(codes.InvalidArgument, "session_id is required")
	}

	q, err := s.svc.Quote(ctx, req.SessionID)
	if err != nil {
		return nil, mapErr(err)
	}
	resp := toProto(q)
	return &resp, nil
}

func (s *Server) Summarize(ctx context.Context, req *checkoutv1.SummarizeRequest) (*checkoutv1.SummarizeResponse, error) {
	if req.SessionID == "" {
		return nil, status.Error(codes.InvalidArgument, "session_id is required")
	}

	sum, err := s.svc.Summarize(ctx, req.SessionID, domain.Customer{
		Name:    req.CustomerName,
		Phone:   req.CustomerPhone,
		Address: req.Address,
		Note:    req.Note,
	}, req.Channel)
	if err != nil {
		return nil, mapErr(err)
	}

	return &checkoutv1.SummarizeResponse{
		Quote:       toProto(sum.Quote),
		OrderID:     sum.OrderID,
		Text:        sum.Text,
		WhatsAppURL: sum.WhatsAppURL,
		TelegramURL: sum.TelegramURL,
	}, nil
}

func toProto(q domain.Quote) checkoutv1.QuoteResponse {
	lines := make([]checkoutv1.QuoteLine, 0, len(q.Lines))
	for _, ln := range q.Lines {
		lines = append(lines, checkoutv1.QuoteLine{
			Title:     ln.Title,
			Quantity:  int32(ln.Quantity),
			UnitPrice: money(ln.UnitPrice),
			LineTotal: money(ln.LineTotal),
		})
	}

	return checkoutv1.QuoteResponse{
		Lines:     lines,
		ItemCount: q.ItemCount,
		Subtotal:  money(q.Subtotal),
		Tax:       money(q.Tax),
		Total:     money(q.Total),
		TaxRate:   q.TaxRate,
	}
}

func money(m domain.Money) checkoutv1.Money {
	return checkoutv1.Money{Currency: m.Currency, Amount: m.Amount}
}

func mapErr(err error) error {
	switch {
	case errors.Is(err, app.ErrEmptyCart):
		return status.Error(codes.FailedPrecondition, "cart is empty")
	case errors.Is(err, app.ErrInvalidInput),
		errors.Is(err, orderapp.ErrInvalidInput),
		errors.Is(err, cartapp.ErrInvalidSession):
		return status.Error(codes.InvalidArgument, err.Error())
	}
	return status.Errorf(codes.Internal, "checkout failed")
}
