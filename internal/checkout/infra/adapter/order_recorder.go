package adapter

import (
	"context"

	checkoutapp "github.com/dwikikusuma/phonestore/internal/checkout/app"
	orderapp "github.com/dwikikusuma/phonestore/internal/order/app"
	orderdomain "github.com/dwikikusuma/phonestore/internal/order/domain"
)

type OrderServiceRecorder struct {
	svc *orderapp.Service
}

func NewOrderServiceRecorder(svc *orderapp.Service) *OrderServiceRecorder {
	return &OrderServiceRecorder{svc: svc}
}

func (r *OrderServiceRecorder) RecordInquiry(ctx context.Context, in checkoutapp.Inquiry) (string, error) {
	items := make([]orderdomain.OrderItemRequest, 0, len(in.Quote.Lines))
	for _, l := range in.Quote.Lines {
		items = append(items, orderdomain.OrderItemRequest{
			Title:      l.Title,
			UnitAmount: l.UnitPrice.Amount,
			Quantity:   int32(l.Quantity),
		})
	}

	o, err := r.svc.CreateOrder(ctx, orderdomain.CreateOrderRequest{
		SessionID:     in.SessionID,
		CustomerName:  in.Customer.Name,
		CustomerPhone: in.Customer.Phone,
		Channel:       in.Channel,
		Currency:      in.Quote.Total.Currency,
		TaxAmount:     in.Quote.Tax.Amount,
		Items:         items,
	})
	if err != nil {
		return "", err
	}
	return o.ID, nil
}
