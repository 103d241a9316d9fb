package main

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"os"
	"time"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	adminv1 "github.com/dwikikusuma/phonestore/api/admin/v1"
	cartv1 "github.com/dwikikusuma/phonestore/api/cart/v1"
	catalogv1 "github.com/dwikikusuma/phonestore/api/catalog/v1"
	checkoutv1 "github.com/dwikikusuma/phonestore/api/checkout/v1"
	listingv1 "github.com/dwikikusuma/phonestore/api/listing/v1"
	orderv1 "github.com/dwikikusuma/phonestore/api/order/v1"

	admingrpc "github.com/dwikikusuma/phonestore/internal/admin/grpc"
	"github.com/dwikikusuma/phonestore/internal/admin/auth"

	cartapp "github.com/dwikikusuma/phonestore/internal/cart/app"
	cartgrpc "github.com/dwikikusuma/phonestore/internal/cart/grpc"
	cartmem "github.com/dwikikusuma/phonestore/internal/cart/infra/memory"

	catalogapp "github.com/dwikikusuma/phonestore/internal/catalog/app"
	cataloggrpc "github.com/dwikikusuma/phonestore/internal/catalog/grpc"

	checkoutapp "github.com/dwikikusuma/phonestore/internal/checkout/app"
	checkoutgrpc "github.com/dwikikusuma/phonestore/internal/checkout/grpc"
	checkoutadapter "github.com/dwikikusuma/phonestore/internal/checkout/infra/adapter"

	listingapp "github.com/dwikikusuma/phonestore/internal/listing/app"
	listinggrpc "github.com/dwikikusuma/phonestore/internal/listing/grpc"

	orderapp "github.com/dwikikusuma/phonestore/internal/order/app"
	ordergrpc "github.com/dwikikusuma/phonestore/internal/order/grpc"

	"github.com/dwikikusuma/phonestore/pkg/config"
	"github.com/dwikikusuma/phonestore/pkg/grpcjson"
	"github.com/dwikikusuma/phonestore/pkg/logger"
	"github.com/dwikikusuma/phonestore/pkg/shutdown"
	"github.com/dwikikusuma/phonestore/pkg/telemetry"
)

func main() {
	cfg := config.Load()
	log := logger.New(logger.Options{Service: "storefront", Env: cfg.AppEnv, Level: cfg.LogLevel, AddSource: true})

	ctx, cancel := shutdown.WithSignals(context.Background())
	defer cancel()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("storefront stopped", slog.Any("err", err))
		os.Exit(1)
	}
	log.Info("bye")
}

func run(ctx context.Context, cfg config.Config, log *slog.Logger) error {
	var closers shutdown.Closers
	defer closers.Close(log)

	shutdownTracing, err := telemetry.Init(ctx, telemetry.Options{
		Service:      "storefront",
		Env:          cfg.AppEnv,
		OTLPEndpoint: cfg.Tracing.OTLPEndpoint,
		Stdout:       cfg.Tracing.Stdout,
	})
	if err != nil {
		log.Warn("tracing disabled", slog.Any("err", err))
	}
	closers.Add("tracing", func() error {
		c, done := context.WithTimeout(context.Background(), 5*time.Second)
		defer done()
		return shutdownTracing(c)
	})

	deps, err := openBackends(ctx, cfg, log, &closers)
	if err != nil {
		return err
	}

	// Catalog
	router, err := loadRouter(cfg.Catalog.RoutesFile)
	if err != nil {
		return err
	}
	catalogOpts := []catalogapp.Option{catalogapp.WithRouter(router), catalogapp.WithLogger(log)}
	if deps.images != nil {
		catalogOpts = append(catalogOpts, catalogapp.WithImageStore(deps.images))
	}
	if deps.cache != nil {
		catalogOpts = append(catalogOpts, catalogapp.WithSearchCache(deps.cache))
	}
	catalogSvc := catalogapp.NewService(deps.products, catalogOpts...)

	// Cart
	taxRate, err := decimal.NewFromString(cfg.Checkout.TaxRatePercent)
	if err != nil {
		return fmt.Errorf("STORE_TAX_RATE_PERCENT: %w", err)
	}
	sessions := cartmem.NewSessionStore(cfg.Cart.SessionTTL)
	cartSvc := cartapp.NewService(sessions,
		cartapp.WithTaxRate(taxRate.Div(decimal.NewFromInt(100))),
		cartapp.WithLogger(log),
	)

	// Orders and checkout
	orderSvc := orderapp.NewService(deps.orders)
	checkoutSvc := checkoutapp.NewService(
		checkoutadapter.NewCartServiceReader(cartSvc),
		checkoutadapter.NewOrderServiceRecorder(orderSvc),
		checkoutapp.Store{
			Name:           cfg.Checkout.StoreName,
			Currency:       cfg.Checkout.Currency,
			WhatsAppPhone:  cfg.Checkout.StorePhone,
			TelegramHandle: cfg.Checkout.TelegramHandle,
		},
		log,
	)

	// Listings
	listingSvc := listingapp.NewService(deps.listings, deps.notifier, log)

	allow := auth.NewAllowlist(cfg.Admin.Emails)
	if allow.Len() == 0 {
		log.Warn("ADMIN_EMAILS is empty, admin methods will reject every call")
	}

	serverOpts := append(grpcjson.ServerOptions(),
		grpc.StatsHandler(otelgrpc.NewServerHandler()),
		grpc.ChainUnaryInterceptor(
			auth.UnaryServerInterceptor(allow, adminv1.ServiceName, orderv1.ServiceName),
		),
	)
	grpcServer := grpc.NewServer(serverOpts...)
	cartv1.RegisterCartServiceServer(grpcServer, cartgrpc.NewServer(cartSvc))
	catalogv1.RegisterCatalogServiceServer(grpcServer, cataloggrpc.NewServer(catalogSvc))
	checkoutv1.RegisterCheckoutServiceServer(grpcServer, checkoutgrpc.NewServer(checkoutSvc))
	listingv1.RegisterListingServiceServer(grpcServer, listinggrpc.NewServer(listingSvc))
	orderv1.RegisterOrderServiceServer(grpcServer, ordergrpc.NewServer(orderSvc))
	adminv1.RegisterAdminServiceServer(grpcServer, admingrpc.NewServer(catalogSvc, listingSvc))

	healthSrv := health.NewServer()
	healthpb.RegisterHealthServer(grpcServer, healthSrv)
	healthSrv.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)

	addr := fmt.Sprintf(":%d", cfg.GRPCPort)
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("grpc starting", slog.String("addr", addr), slog.String("catalog_backend", cfg.Catalog.Backend))
		return grpcServer.Serve(lis)
	})

	g.Go(func() error {
		return sessions.Run(gctx, cfg.Cart.SweepInterval, log)
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutdown requested")
		healthSrv.Shutdown()

		stopped := make(chan struct{})
		go func() {
			grpcServer.GracefulStop()
			close(stopped)
		}()

		select {
		case <-time.After(10 * time.Second):
			log.Warn("graceful stop timeout, forcing stop")
			grpcServer.Stop()
		case <-stopped:
		}
		return nil
	})

	return g.Wait()
}
