package firestore

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/dwikikusuma/phonestore/internal/order/domain"
)

func TestDocMapping(t *testing.T) {
	o := domain.Order{
		ID:             "abc",
		SessionID:      "s1",
		CustomerName:   "Ayesha",
		CustomerPhone:  "03001234567",
		Channel:        domain.ChannelTelegram,
		Status:         domain.StatusHandedOff,
		Currency:       "PKR",
		SubTotalAmount: 2500,
		TaxAmount:      200,
		TotalAmount:    2700,
		OrderItems: []domain.OrderItem{
			{ID: "abc-1", OrderID: "abc", Title: "Galaxy A16", UnitAmount: 1000, Quantity: 2, LineTotalAmount: 2000},
			{ID: "abc-2", OrderID: "abc", Title: "Charger", UnitAmount: 500, Quantity: 1, LineTotalAmount: 500},
		},
		CreatedAt: time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC),
	}

	assert.Equal(t, o, fromDoc("abc", toDoc(o)))
}
