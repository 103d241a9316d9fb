package grpc

import (
	"context"
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	orderv1 "github.com/dwikikusuma/phonestore/api/order/v1"
	"github.com/dwikikusuma/phonestore/internal/order/app"
	"github.com/dwikikusuma/phonestore/internal/order/domain"
)

type Server struct {
	svc *app.Service
}

func NewServer(svc *app.Service) *Server {
	return &Server{svc: svc}
}

func (s *Server) GetOrder(ctx context.Context, req *orderv1.GetOrderRequest) (*orderv1.GetOrderResponse, error) {
	o, err := s.svc.GetOrder(ctx, req.ID)
	if err != nil {
		return nil, mapErr(err)
	}
	return &orderv1.GetOrderResponse{Order: ToProto(o)}, nil
}

func (s *Server) ListOrders(ctx context.Context, req *orderv1.ListOrdersRequest) (*orderv1.ListOrdersResponse, error) {
	orders, err := s.svc.ListRecent(ctx, int(req.Limit))
	if err != nil {
		return nil, mapErr(err)
	}

	out := make([]orderv1.Order, 0, len(orders))
	for _, o := range orders {
		out = append(out, ToProto(o))
	}
	return &orderv1.ListOrdersResponse{Orders: out}, nil
}

func ToProto(o domain.Order) orderv1.Order {
	items := make([]orderv1.OrderItem, 0, len(o.OrderItems))
	for _, it := range o.OrderItems {
		items = append(items, orderv1.OrderItem{
			ID:              it.ID,
			Title:           it.Title,
			UnitAmount:      it.UnitAmount,
			Quantity:        it.Quantity,
			LineTotalAmount: it.LineTotalAmount,
		})
	}
	return orderv1.Order{
		ID:             o.ID,
		SessionID:      o.SessionID,
		CustomerName:   o.CustomerName,
		CustomerPhone:  o.CustomerPhone,
		Channel:        o.Channel,
		Status:         o.Status,
		Currency:       o.Currency,
		SubtotalAmount: o.SubTotalAmount,
		TaxAmount:      o.TaxAmount,
		TotalAmount:    o.TotalAmount,
		Items:          items,
		CreatedAtUnix:  o.CreatedAt.Unix(),
	}
}

func mapErr(err error) error {
	if errors.Is(err, app.ErrInvalidInput) {
		return status.Error(codes.InvalidArgument, err.Error())
	}
	if errors.Is(err, app.ErrNotFound) {
		return status.Error(codes.NotFound, err.Error())
	}
	return status.Error(codes.Internal, "internal error")
}
