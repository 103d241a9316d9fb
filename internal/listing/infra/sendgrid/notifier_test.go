package sendgrid

import (
	"context"
	"errors"
	"testing"

	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dwikikusuma/phonestore/internal/listing/domain"
)

func TestListingSubmitted(t *testing.T) {
	var got *mail.SGMailV3
	send := func(ctx context.Context, msg *mail.SGMailV3) (*rest.Response, error) {
		got = msg
		return &rest.Response{StatusCode: 202}, nil
	}

	n, err := newNotifier(send, "shop@example.com", []string{"a@example.com", " ", "b@example.com"}, "https://admin.example.com/", nil)
	require.NoError(t, err)

	err = n.ListingSubmitted(context.Background(), domain.Listing{
		ID: "l1", Model: "Pixel 7", Condition: "Like new", AskingPrice: 90000,
		SellerName: "Sana", SellerPhone: "0300 1234567",
	})
	require.NoError(t, err)

	require.NotNil(t, got)
	assert.Equal(t, "New listing to review: Pixel 7", got.Subject)
	assert.Equal(t, "shop@example.com", got.From.Address)
	require.Len(t, got.Personalizations, 1)
	require.Len(t, got.Personalizations[0].To, 2)
	assert.Equal(t, "b@example.com", got.Personalizations[0].To[1].Address)
	assert.Contains(t, got.Content[0].Value, "Review: https://admin.example.com/listings/l1")
	assert.Contains(t, got.Content[0].Value, "Seller: Sana (0300 1234567)")
}

func TestListingSubmittedFailures(t *testing.T) {
	l := domain.Listing{ID: "l1", Model: "Pixel 7"}

	n, err := newNotifier(func(ctx context.Context, msg *mail.SGMailV3) (*rest.Response, error) {
		return &rest.Response{StatusCode: 401, Body: "bad key"}, nil
	}, "shop@example.com", []string{"a@example.com"}, "", nil)
	require.NoError(t, err)
	assert.ErrorContains(t, n.ListingSubmitted(context.Background(), l), "status=401")

	n, err = newNotifier(func(ctx context.Context, msg *mail.SGMailV3) (*rest.Response, error) {
		return nil, errors.New("dial tcp: timeout")
	}, "shop@example.com", []string{"a@example.com"}, "", nil)
	require.NoError(t, err)
	assert.ErrorContains(t, n.ListingSubmitted(context.Background(), l), "sendgrid send error")
}

func TestNewNotifierValidation(t *testing.T) {
	_, err := NewNotifier("", "shop@example.com", []string{"a@example.com"}, "", nil)
	assert.Error(t, err)

	_, err = newNotifier(nil, "", []string{"a@example.com"}, "", nil)
	assert.Error(t, err)

	_, err = newNotifier(nil, "shop@example.com", []string{" "}, "", nil)
	assert.Error(t, err)
}
