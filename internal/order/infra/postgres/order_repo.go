package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dwikikusuma/phonestore/internal/order/app"
	"github.com/dwikikusuma/phonestore/internal/order/domain"
	"github.com/dwikikusuma/phonestore/pkg/postgres"
)

type OrderRepo struct {
	db *sql.DB
}

func NewOrderRepo(db *sql.DB) *OrderRepo {
	return &OrderRepo{db: db}
}

func (r *OrderRepo) CreateOrderTx(ctx context.Context, order domain.Order) (domain.Order, error) {
	var createdOrder domain.Order

	err := postgres.ExecTx(ctx, r.db, func(tx *sql.Tx) error {
		var (
			id        uuid.UUID
			createdAt time.Time
		)
		err := tx.QueryRowContext(ctx, `
			INSERT INTO order_inquiries
				(session_id, customer_name, customer_phone, channel, status, currency,
				 subtotal_amount, tax_amount, total_amount)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			RETURNING id, created_at`,
			order.SessionID, order.CustomerName, order.CustomerPhone, order.Channel, order.Status,
			order.Currency, order.SubTotalAmount, order.TaxAmount, order.TotalAmount,
		).Scan(&id, &createdAt)
		if err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}

		orderItems := make([]domain.OrderItem, 0, len(order.OrderItems))
		for i, item := range order.OrderItems {
			expected := item.UnitAmount * int64(item.Quantity)
			if item.LineTotalAmount != expected {
				return fmt.Errorf("item %d: line total mismatch", i)
			}

			var itemID uuid.UUID
			err := tx.QueryRowContext(ctx, `
				INSERT INTO order_inquiry_items (order_id, title, unit_amount, quantity, line_total_amount)
				VALUES ($1, $2, $3, $4, $5)
				RETURNING id`,
				id, item.Title, item.UnitAmount, item.Quantity, item.LineTotalAmount,
			).Scan(&itemID)
			if err != nil {
				return fmt.Errorf("failed to insert item %d: %w", i, err)
			}

			item.ID = itemID.String()
			item.OrderID = id.String()
			orderItems = append(orderItems, item)
		}

		createdOrder = order
		createdOrder.ID = id.String()
		createdOrder.CreatedAt = createdAt
		createdOrder.OrderItems = orderItems
		return nil
	})
	if err != nil {
		return domain.Order{}, err
	}
	return createdOrder, nil
}

func (r *OrderRepo) GetOrder(ctx context.Context, id string) (domain.Order, error) {
	orderID, err := uuid.Parse(id)
	if err != nil {
		return domain.Order{}, app.ErrNotFound
	}

	o, err := scanOrder(r.db.QueryRowContext(ctx, `SELECT `+orderColumns+` FROM order_inquiries WHERE id = $1`, orderID))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Order{}, app.ErrNotFound
	}
	if err != nil {
		return domain.Order{}, err
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, title, unit_amount, quantity, line_total_amount
		FROM order_inquiry_items WHERE order_id = $1 ORDER BY created_at`, orderID)
	if err != nil {
		return domain.Order{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			itemID uuid.UUID
			item   domain.OrderItem
		)
		if err := rows.Scan(&itemID, &item.Title, &item.UnitAmount, &item.Quantity, &item.LineTotalAmount); err != nil {
			return domain.Order{}, err
		}
		item.ID = itemID.String()
		item.OrderID = o.ID
		o.OrderItems = append(o.OrderItems, item)
	}
	return o, rows.Err()
}

// ListRecent returns order headers only; items are loaded by GetOrder.
func (r *OrderRepo) ListRecent(ctx context.Context, limit int) ([]domain.Order, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+orderColumns+` FROM order_inquiries ORDER BY created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

const orderColumns = `id, session_id, customer_name, customer_phone, channel, status, currency,
	subtotal_amount, tax_amount, total_amount, created_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanOrder(s scanner) (domain.Order, error) {
	var (
		id uuid.UUID
		o  domain.Order
	)
	err := s.Scan(&id, &o.SessionID, &o.CustomerName, &o.CustomerPhone, &o.Channel, &o.Status,
		&o.Currency, &o.SubTotalAmount, &o.TaxAmount, &o.TotalAmount, &o.CreatedAt)
	if err != nil {
		return domain.Order{}, err
	}
	o.ID = id.String()
	return o, nil
}
