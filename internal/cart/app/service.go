package app

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/dwikikusuma/phonestore/internal/cart/domain"
)

var ErrInvalidSession = errors.New("invalid session id")

type Snapshot struct {
	Lines  []domain.Line
	Totals domain.Totals
}

type Service struct {
	store   SessionStore
	taxRate decimal.Decimal
	log     *slog.Logger

	meters    metric.MeterProvider
	mutations metric.Int64Counter
}

type Option func(*Service)

func WithTaxRate(rate decimal.Decimal) Option {
	return func(s *Service) { s.taxRate = rate }
}

func WithLogger(log *slog.Logger) Option {
	return func(s *Service) { s.log = log }
}

func WithMeterProvider(mp metric.MeterProvider) Option {
	return func(s *Service) { s.meters = mp }
}

func NewService(store SessionStore, opts ...Option) *Service {
	s := &Service{
		store:   store,
		taxRate: domain.DefaultTaxRate,
		log:     slog.Default(),
		meters:  otel.GetMeterProvider(),
	}
	for _, opt := range opts {
		opt(s)
	}

	counter, err := s.meters.Meter("phonestore/cart").Int64Counter("cart.mutations",
		metric.WithDescription("cart mutations by operation"))
	if err != nil {
		s.log.Warn("cart metrics disabled", slog.Any("err", err))
	}
	s.mutations = counter
	return s
}

func (s *Service) TaxRate() decimal.Decimal {
	return s.taxRate
}

func (s *Service) AddToCart(ctx context.Context, sessionID string, item domain.Item) (domain.Line, error) {
	if err := checkSession(sessionID); err != nil {
		return domain.Line{}, err
	}

	var line domain.Line
	err := s.store.Update(ctx, sessionID, func(c *domain.Cart) {
		line = c.Add(item)
	})
	if err != nil {
		return domain.Line{}, err
	}
	s.record(ctx, "add")
	return line, nil
}

// UpdateQuantity ignores quantities <= 0 and unknown line ids.
func (s *Service) UpdateQuantity(ctx context.Context, sessionID, lineID string, quantity int32) error {
	if err := checkSession(sessionID); err != nil {
		return err
	}

	var changed bool
	err := s.store.Update(ctx, sessionID, func(c *domain.Cart) {
		changed = c.UpdateQuantity(lineID, quantity)
	})
	if err != nil {
		return err
	}
	if !changed {
		s.log.DebugContext(ctx, "quantity update ignored",
			slog.String("line_id", lineID), slog.Int("quantity", int(quantity)))
		return nil
	}
	s.record(ctx, "update_quantity")
	return nil
}

func (s *Service) RemoveItem(ctx context.Context, sessionID, lineID string) error {
	if err := checkSession(sessionID); err != nil {
		return err
	}

	err := s.store.Update(ctx, sessionID, func(c *domain.Cart) {
		c.Remove(lineID)
	})
	if err != nil {
		return err
	}
	s.record(ctx, "remove")
	return nil
}

func (s *Service) ClearCart(ctx context.Context, sessionID string) error {
	if err := checkSession(sessionID); err != nil {
		return err
	}

	err := s.store.Update(ctx, sessionID, func(c *domain.Cart) {
		c.Clear()
	})
	if err != nil {
		return err
	}
	s.record(ctx, "clear")
	return nil
}

// GetCart returns the lines and freshly derived totals.
func (s *Service) GetCart(ctx context.Context, sessionID string) (Snapshot, error) {
	if err := checkSession(sessionID); err != nil {
		return Snapshot{}, err
	}

	var snap Snapshot
	err := s.store.View(ctx, sessionID, func(c *domain.Cart) {
		snap.Lines = c.Lines()
	})
	if err != nil {
		return Snapshot{}, err
	}
	snap.Totals = domain.Summarize(snap.Lines, s.taxRate)
	return snap, nil
}

// EndSession discards the session's cart.
func (s *Service) EndSession(ctx context.Context, sessionID string) error {
	if err := checkSession(sessionID); err != nil {
		return err
	}
	return s.store.Drop(ctx, sessionID)
}

func (s *Service) record(ctx context.Context, op string) {
	if s.mutations == nil {
		return
	}
	s.mutations.Add(ctx, 1, metric.WithAttributes(attribute.String("op", op)))
}

func checkSession(id string) error {
	if strings.TrimSpace(id) == "" {
		return ErrInvalidSession
	}
	return nil
}
