package adapter

import (
	"context"

	"github.com/shopspring/decimal"

	cartapp "github.com/dwikikusuma/phonestore/internal/cart/app"
	checkoutapp "github.com/dwikikusuma/phonestore/internal/checkout/app"
)

type CartServiceReader struct {
	svc *cartapp.Service
}

func NewCartServiceReader(svc *cartapp.Service) *CartServiceReader {
	return &CartServiceReader{svc: svc}
}

func (r *CartServiceReader) GetCart(ctx context.Context, sessionID string) (checkoutapp.CartSnapshot, error) {
	snap, err := r.svc.GetCart(ctx, sessionID)
	if err != nil {
		return checkoutapp.CartSnapshot{}, err
	}

	lines := make([]checkoutapp.CartLine, 0, len(snap.Lines))
	for _, it := range snap.Lines {
		lines = append(lines, checkoutapp.CartLine{
			Title:     it.Title,
			UnitPrice: it.UnitPrice,
			Quantity:  int64(it.Quantity),
		})
	}
	return checkoutapp.CartSnapshot{
		Lines:     lines,
		ItemCount: snap.Totals.ItemCount,
		Subtotal:  snap.Totals.Subtotal,
		Tax:       snap.Totals.Tax,
		Total:     snap.Totals.Total,
		TaxRate:   Percent(r.svc.TaxRate()),
	}, nil
}

// Percent renders a fractional rate such as 0.08 as "8%".
func Percent(rate decimal.Decimal) string {
	return rate.Mul(decimal.NewFromInt(100)).String() + "%"
}
