package app_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	"golang.org/x/sync/errgroup"

	"github.com/dwikikusuma/phonestore/internal/cart/app"
	"github.com/dwikikusuma/phonestore/internal/cart/domain"
	"github.com/dwikikusuma/phonestore/internal/cart/infra/memory"
)

func newTestService(t *testing.T) *app.Service {
	t.Helper()
	return app.NewService(memory.NewSessionStore(time.Hour))
}

func TestCart_BlankSessionRejected(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.AddToCart(ctx, "  ", domain.Item{Title: "x"})
	require.ErrorIs(t, err, app.ErrInvalidSession)
	require.ErrorIs(t, svc.UpdateQuantity(ctx, "", "id", 1), app.ErrInvalidSession)
	require.ErrorIs(t, svc.RemoveItem(ctx, "", "id"), app.ErrInvalidSession)
	require.ErrorIs(t, svc.ClearCart(ctx, ""), app.ErrInvalidSession)
	_, err = svc.GetCart(ctx, "")
	require.ErrorIs(t, err, app.ErrInvalidSession)
}

func TestCart_UnknownSessionStartsEmpty(t *testing.T) {
	svc := newTestService(t)

	snap, err := svc.GetCart(context.Background(), uuid.NewString())
	require.NoError(t, err)
	assert.Empty(t, snap.Lines)
	assert.Equal(t, domain.Totals{}, snap.Totals)
}

func TestCart_WidgetScenario(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)
	sid := uuid.NewString()

	var line domain.Line
	for i := 0; i < 3; i++ {
		var err error
		line, err = svc.AddToCart(ctx, sid, domain.Item{Title: "Widget", UnitPrice: 100})
		require.NoError(t, err)
	}

	snap, err := svc.GetCart(ctx, sid)
	require.NoError(t, err)
	require.Len(t, snap.Lines, 1)
	assert.EqualValues(t, 3, snap.Lines[0].Quantity)
	assert.EqualValues(t, 300, snap.Totals.Subtotal)
	assert.EqualValues(t, 24, snap.Totals.Tax)
	assert.EqualValues(t, 324, snap.Totals.Total)

	// quantity <= 0 is a no-op, not a removal
	require.NoError(t, svc.UpdateQuantity(ctx, sid, line.ID, 0))
	snap, err = svc.GetCart(ctx, sid)
	require.NoError(t, err)
	assert.EqualValues(t, 3, snap.Lines[0].Quantity)

	require.NoError(t, svc.RemoveItem(ctx, sid, line.ID))
	require.NoError(t, svc.RemoveItem(ctx, sid, line.ID))
	snap, err = svc.GetCart(ctx, sid)
	require.NoError(t, err)
	assert.Empty(t, snap.Lines)
}

func TestCart_ClearAndEndSession(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)
	sid := uuid.NewString()

	_, err := svc.AddToCart(ctx, sid, domain.Item{Title: "A", UnitPrice: 10})
	require.NoError(t, err)
	require.NoError(t, svc.ClearCart(ctx, sid))

	snap, err := svc.GetCart(ctx, sid)
	require.NoError(t, err)
	assert.Empty(t, snap.Lines)

	_, err = svc.AddToCart(ctx, sid, domain.Item{Title: "B", UnitPrice: 10})
	require.NoError(t, err)
	require.NoError(t, svc.EndSession(ctx, sid))
	snap, err = svc.GetCart(ctx, sid)
	require.NoError(t, err)
	assert.Empty(t, snap.Lines)
}

func TestCart_ConcurrentAddItemIncrement(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)
	sid := uuid.NewString()

	const N = 100
	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < N; i++ {
		g.Go(func() error {
			_, err := svc.AddToCart(gctx, sid, domain.Item{Title: "Redmi 13", UnitPrice: 40000})
			return err
		})
	}
	require.NoError(t, g.Wait())

	snap, err := svc.GetCart(ctx, sid)
	require.NoError(t, err)
	require.Len(t, snap.Lines, 1, "concurrent adds must merge into one line")
	assert.EqualValues(t, N, snap.Lines[0].Quantity)
}

func TestCart_MutationsAreCounted(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	svc := app.NewService(memory.NewSessionStore(time.Hour),
		app.WithMeterProvider(sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))))
	ctx := context.Background()

	line, err := svc.AddToCart(ctx, "s1", domain.Item{Title: "Galaxy A16", UnitPrice: 1000})
	require.NoError(t, err)
	_, err = svc.AddToCart(ctx, "s1", domain.Item{Title: "Galaxy A16", UnitPrice: 1000})
	require.NoError(t, err)
	require.NoError(t, svc.UpdateQuantity(ctx, "s1", line.ID, 5))
	require.NoError(t, svc.ClearCart(ctx, "s1"))

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(ctx, &rm))
	require.Len(t, rm.ScopeMetrics, 1)
	m := rm.ScopeMetrics[0].Metrics[0]
	require.Equal(t, "cart.mutations", m.Name)

	got := map[string]int64{}
	for _, dp := range m.Data.(metricdata.Sum[int64]).DataPoints {
		op, _ := dp.Attributes.Value(attribute.Key("op"))
		got[op.AsString()] = dp.Value
	}
	assert.Equal(t, map[string]int64{"add": 2, "update_quantity": 1, "clear": 1}, got)
}
