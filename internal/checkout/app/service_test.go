package app

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dwikikusuma/phonestore/internal/checkout/domain"
)

type fakeCart CartSnapshot

func (f fakeCart) GetCart(ctx context.Context, sessionID string) (CartSnapshot, error) {
	return CartSnapshot(f), nil
}

type fakeOrders struct {
	got Inquiry
	err error
}

func (f *fakeOrders) RecordInquiry(ctx context.Context, in Inquiry) (string, error) {
	f.got = in
	return "o-7", f.err
}

var store = Store{Name: "Phone Bazaar", Currency: "PKR", WhatsAppPhone: "+92 300 1234567", TelegramHandle: "@phonebazaar"}

func twoLineCart() fakeCart {
	return fakeCart{
		Lines: []CartLine{
			{Title: "Galaxy A16", UnitPrice: 1000, Quantity: 2},
			{Title: "Charger", UnitPrice: 500, Quantity: 1},
		},
		ItemCount: 3, Subtotal: 2500, Tax: 200, Total: 2700, TaxRate: "8%",
	}
}

func TestQuote(t *testing.T) {
	svc := NewService(twoLineCart(), nil, store, nil)

	q, err := svc.Quote(context.Background(), "s1")
	require.NoError(t, err)
	require.Len(t, q.Lines, 2)
	assert.Equal(t, domain.Money{Currency: "PKR", Amount: 2000}, q.Lines[0].LineTotal)
	assert.EqualValues(t, 2500, q.Subtotal.Amount)
	assert.EqualValues(t, 200, q.Tax.Amount)
	assert.EqualValues(t, 2700, q.Total.Amount)
}

func TestQuoteEmptyCart(t *testing.T) {
	svc := NewService(fakeCart{}, nil, store, nil)
	_, err := svc.Quote(context.Background(), "s1")
	require.ErrorIs(t, err, ErrEmptyCart)
}

func TestSummarize(t *testing.T) {
	orders := &fakeOrders{}
	svc := NewService(twoLineCart(), orders, store, nil)

	sum, err := svc.Summarize(context.Background(), "s1", domain.Customer{Name: " Ayesha ", Phone: "0300-1234567"}, "")
	require.NoError(t, err)

	assert.Equal(t, "o-7", sum.OrderID)
	assert.Contains(t, sum.Text, "Total: PKR 2,700")
	assert.Contains(t, sum.Text, "Customer: Ayesha\n")
	assert.Contains(t, sum.Text, "Ref: o-7")
	assert.True(t, strings.HasPrefix(sum.WhatsAppURL, "https://wa.me/923001234567?text="))
	assert.True(t, strings.HasPrefix(sum.TelegramURL, "https://t.me/phonebazaar?text="))

	assert.Equal(t, "WHATSAPP", orders.got.Channel)
	assert.Equal(t, "s1", orders.got.SessionID)
	assert.EqualValues(t, 2700, orders.got.Quote.Total.Amount)
}

func TestSummarizeValidation(t *testing.T) {
	svc := NewService(twoLineCart(), &fakeOrders{}, store, nil)
	ctx := context.Background()

	_, err := svc.Summarize(ctx, "s1", domain.Customer{Name: "", Phone: "03001234567"}, "telegram")
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Summarize(ctx, "s1", domain.Customer{Name: "Ali", Phone: "123"}, "telegram")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestSummarizeRecordFailure(t *testing.T) {
	svc := NewService(twoLineCart(), &fakeOrders{err: errors.New("db down")}, store, nil)
	_, err := svc.Summarize(context.Background(), "s1", domain.Customer{Name: "Ali", Phone: "03001234567"}, "")
	require.Error(t, err)
}
