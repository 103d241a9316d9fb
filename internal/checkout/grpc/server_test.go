package grpc

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	checkoutv1 "github.com/dwikikusuma/phonestore/api/checkout/v1"
	"github.com/dwikikusuma/phonestore/internal/checkout/app"
)

type fakeCart app.CartSnapshot

func (f fakeCart) GetCart(ctx context.Context, sessionID string) (app.CartSnapshot, error) {
	return app.CartSnapshot(f), nil
}

type fakeOrders struct{}

func (fakeOrders) RecordInquiry(ctx context.Context, in app.Inquiry) (string, error) {
	return "o-1", nil
}

func newServer(cart fakeCart) *Server {
	return NewServer(app.NewService(cart, fakeOrders{}, app.Store{Currency: "PKR", WhatsAppPhone: "923001234567"}, nil))
}

func TestQuoteRequiresSession(t *testing.T) {
	_, err := newServer(fakeCart{}).Quote(context.Background(), &checkoutv1.QuoteRequest{})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}

func TestQuoteEmptyCartIsFailedPrecondition(t *testing.T) {
	_, err := newServer(fakeCart{}).Quote(context.Background(), &checkoutv1.QuoteRequest{SessionID: "s1"})
	assert.Equal(t, codes.FailedPrecondition, status.Code(err))
}

func TestSummarize(t *testing.T) {
	srv := newServer(fakeCart{
		Lines:     []app.CartLine{{Title: "Galaxy A16", UnitPrice: 1000, Quantity: 2}},
		ItemCount: 2, Subtotal: 2000, Tax: 160, Total: 2160, TaxRate: "8%",
	})

	_, err := srv.Summarize(context.Background(), &checkoutv1.SummarizeRequest{SessionID: "s1", Channel: "whatsapp"})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))

	resp, err := srv.Summarize(context.Background(), &checkoutv1.SummarizeRequest{
		SessionID:     "s1",
		CustomerName:  "Ayesha",
		CustomerPhone: "03001234567",
		Channel:       "whatsapp",
	})
	require.NoError(t, err)
	assert.Equal(t, "o-1", resp.OrderID)
	assert.Equal(t, int64(2160), resp.Quote.Total.Amount)
	assert.Equal(t, "PKR", resp.Quote.Total.Currency)
	require.Len(t, resp.Quote.Lines, 1)
	assert.Equal(t, int32(2), resp.Quote.Lines[0].Quantity)
	assert.Contains(t, resp.WhatsAppURL, "923001234567")
}
