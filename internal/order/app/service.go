package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dwikikusuma/phonestore/internal/order/domain"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("order not found")
)

type Service struct {
	repo OrderRepo
}

func NewService(repo OrderRepo) *Service {
	return &Service{repo: repo}
}

func (s *Service) CreateOrder(ctx context.Context, req domain.CreateOrderRequest) (domain.Order, error) {
	if len(req.Items) == 0 {
		return domain.Order{}, fmt.Errorf("%w: order has no items", ErrInvalidInput)
	}
	if req.TaxAmount < 0 {
		return domain.Order{}, fmt.Errorf("%w: tax amount cannot be negative, got %d", ErrInvalidInput, req.TaxAmount)
	}
	if !domain.ValidChannel(req.Channel) {
		return domain.Order{}, fmt.Errorf("%w: unknown channel %q", ErrInvalidInput, req.Channel)
	}

	orderItems := make([]domain.OrderItem, 0, len(req.Items))
	var subTotalAmount int64

	for i, item := range req.Items {
		if item.Quantity <= 0 {
			return domain.Order{}, fmt.Errorf("%w: item %d: quantity must be positive, got %d", ErrInvalidInput, i, item.Quantity)
		}
		if item.UnitAmount < 0 {
			return domain.Order{}, fmt.Errorf("%w: item %d: unit amount cannot be negative, got %d", ErrInvalidInput, i, item.UnitAmount)
		}

		lineTotal := item.UnitAmount * int64(item.Quantity)
		orderItems = append(orderItems, domain.OrderItem{
			Title:           item.Title,
			UnitAmount:      item.UnitAmount,
			Quantity:        item.Quantity,
			LineTotalAmount: lineTotal,
		})
		subTotalAmount += lineTotal
	}

	order := domain.Order{
		SessionID:      req.SessionID,
		CustomerName:   strings.TrimSpace(req.CustomerName),
		CustomerPhone:  strings.TrimSpace(req.CustomerPhone),
		Channel:        req.Channel,
		Status:         domain.StatusHandedOff,
		Currency:       req.Currency,
		SubTotalAmount: subTotalAmount,
		TaxAmount:      req.TaxAmount,
		TotalAmount:    subTotalAmount + req.TaxAmount,
		OrderItems:     orderItems,
	}

	return s.repo.CreateOrderTx(ctx, order)
}

func (s *Service) GetOrder(ctx context.Context, id string) (domain.Order, error) {
	if strings.TrimSpace(id) == "" {
		return domain.Order{}, ErrInvalidInput
	}
	return s.repo.GetOrder(ctx, id)
}

func (s *Service) ListRecent(ctx context.Context, limit int) ([]domain.Order, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	return s.repo.ListRecent(ctx, limit)
}
