package app

import (
	"context"

	"github.com/dwikikusuma/phonestore/internal/order/domain"
)

type OrderRepo interface {
	CreateOrderTx(ctx context.Context, order domain.Order) (domain.Order, error)
	GetOrder(ctx context.Context, id string) (domain.Order, error)
	ListRecent(ctx context.Context, limit int) ([]domain.Order, error)
}
