package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/dwikikusuma/phonestore/internal/checkout/domain"
)

var (
	ErrEmptyCart    = errors.New("cart is empty")
	ErrInvalidInput = errors.New("invalid input")
)

type CartReader interface {
	GetCart(ctx context.Context, sessionID string) (CartSnapshot, error)
}

// CartSnapshot carries the cart lines and the totals the cart derived for
// them. Checkout never re-prices a line.
type CartSnapshot struct {
	Lines     []CartLine
	ItemCount int64
	Subtotal  int64
	Tax       int64
	Total     int64
	TaxRate   string
}

type CartLine struct {
	Title     string
	UnitPrice int64
	Quantity  int64
}

type Inquiry struct {
	SessionID string
	Customer  domain.Customer
	Channel   string
	Quote     domain.Quote
}

type OrderRecorder interface {
	RecordInquiry(ctx context.Context, in Inquiry) (string, error)
}

type Store struct {
	Name           string
	Currency       string
	WhatsAppPhone  string
	TelegramHandle string
}

type Service struct {
	Cart   CartReader
	Orders OrderRecorder

	store Store
	log   *slog.Logger
}

func NewService(cart CartReader, orders OrderRecorder, store Store, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{
		Cart:   cart,
		Orders: orders,
		store:  store,
		log:    log,
	}
}

func (s *Service) Quote(ctx context.Context, sessionID string) (domain.Quote, error) {
	snap, err := s.Cart.GetCart(ctx, sessionID)
	if err != nil {
		return domain.Quote{}, err
	}
	if len(snap.Lines) == 0 {
		return domain.Quote{}, ErrEmptyCart
	}

	money := func(n int64) domain.Money {
		return domain.Money{Currency: s.store.Currency, Amount: n}
	}

	lines := make([]domain.QuoteLine, 0, len(snap.Lines))
	for _, l := range snap.Lines {
		lines = append(lines, domain.QuoteLine{
			Title:     l.Title,
			Quantity:  l.Quantity,
			UnitPrice: money(l.UnitPrice),
			LineTotal: money(l.UnitPrice * l.Quantity),
		})
	}

	return domain.Quote{
		Lines:     lines,
		ItemCount: snap.ItemCount,
		Subtotal:  money(snap.Subtotal),
		Tax:       money(snap.Tax),
		Total:     money(snap.Total),
		TaxRate:   snap.TaxRate,
	}, nil
}

// Summarize quotes the cart, records the inquiry and builds the hand-off
// message. The cart itself is left untouched.
func (s *Service) Summarize(ctx context.Context, sessionID string, c domain.Customer, channel string) (domain.Summary, error) {
	c.Name = strings.TrimSpace(c.Name)
	c.Phone = strings.TrimSpace(c.Phone)
	c.Address = strings.TrimSpace(c.Address)
	c.Note = strings.TrimSpace(c.Note)

	if c.Name == "" {
		return domain.Summary{}, fmt.Errorf("%w: customer name is required", ErrInvalidInput)
	}
	if len(domain.Digits(c.Phone)) < 7 {
		return domain.Summary{}, fmt.Errorf("%w: customer phone is required", ErrInvalidInput)
	}

	channel = strings.ToUpper(strings.TrimSpace(channel))
	if channel == "" {
		channel = "WHATSAPP"
	}

	q, err := s.Quote(ctx, sessionID)
	if err != nil {
		return domain.Summary{}, err
	}

	var orderID string
	if s.Orders != nil {
		orderID, err = s.Orders.RecordInquiry(ctx, Inquiry{SessionID: sessionID, Customer: c, Channel: channel, Quote: q})
		if err != nil {
			return domain.Summary{}, fmt.Errorf("record inquiry: %w", err)
		}
		s.log.InfoContext(ctx, "order inquiry recorded",
			slog.String("order_id", orderID), slog.String("channel", channel), slog.Int64("total", q.Total.Amount))
	}

	text := domain.SummaryText(s.store.Name, q, c, orderID)
	return domain.Summary{
		Quote:       q,
		OrderID:     orderID,
		Text:        text,
		WhatsAppURL: domain.WhatsAppURL(s.store.WhatsAppPhone, text),
		TelegramURL: domain.TelegramURL(s.store.TelegramHandle, text),
	}, nil
}
