package domain

import (
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatAmount(t *testing.T) {
	cases := []struct {
		in   Money
		want string
	}{
		{Money{"PKR", 0}, "PKR 0"},
		{Money{"PKR", 999}, "PKR 999"},
		{Money{"PKR", 1000}, "PKR 1,000"},
		{Money{"PKR", 45000}, "PKR 45,000"},
		{Money{"PKR", 1234567}, "PKR 1,234,567"},
		{Money{"", 2700}, "2,700"},
		{Money{"PKR", -1500}, "PKR -1,500"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, FormatAmount(tc.in))
	}
}

func sampleQuote() Quote {
	pkr := func(n int64) Money { return Money{Currency: "PKR", Amount: n} }
	return Quote{
		Lines: []QuoteLine{
			{Title: "Galaxy A16 (8GB RAM - 128GB)", Quantity: 2, UnitPrice: pkr(1000), LineTotal: pkr(2000)},
			{Title: "Charger", Quantity: 1, UnitPrice: pkr(500), LineTotal: pkr(500)},
		},
		ItemCount: 3,
		Subtotal:  pkr(2500),
		Tax:       pkr(200),
		Total:     pkr(2700),
		TaxRate:   "8%",
	}
}

func TestSummaryText(t *testing.T) {
	text := SummaryText("Phone Bazaar", sampleQuote(), Customer{Name: "Ayesha", Phone: "0300 1234567", Note: "evening delivery"}, "o-42")

	want := `New order - Phone Bazaar

1. Galaxy A16 (8GB RAM - 128GB) x2 - PKR 2,000
2. Charger x1 - PKR 500

Items: 3
Subtotal: PKR 2,500
Tax (8%): PKR 200
Total: PKR 2,700

Customer: Ayesha
Phone: 0300 1234567
Note: evening delivery
Ref: o-42
`
	assert.Equal(t, want, text)
	assert.NotContains(t, text, "Address:")
}

func TestWhatsAppURL(t *testing.T) {
	link := WhatsAppURL("+92 (300) 123-4567", "Hi there & bye")
	assert.Equal(t, "https://wa.me/923001234567?text=Hi%20there%20%26%20bye", link)

	u, err := url.Parse(link)
	require.NoError(t, err)
	assert.Equal(t, "Hi there & bye", u.Query().Get("text"))

	assert.Empty(t, WhatsAppURL("n/a", "x"))
}

func TestTelegramURL(t *testing.T) {
	link := TelegramURL("@phonebazaar", "Total: PKR 2,700\nThanks")
	assert.True(t, strings.HasPrefix(link, "https://t.me/phonebazaar?text="))

	u, err := url.Parse(link)
	require.NoError(t, err)
	assert.Equal(t, "Total: PKR 2,700\nThanks", u.Query().Get("text"))

	assert.Empty(t, TelegramURL(" ", "x"))
}
