package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"sync"
	"time"

	firebase "firebase.google.com/go/v4"
	"google.golang.org/api/option"
	"google.golang.org/grpc"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	adminv1 "github.com/dwikikusuma/phonestore/api/admin/v1"
	cartv1 "github.com/dwikikusuma/phonestore/api/cart/v1"
	catalogv1 "github.com/dwikikusuma/phonestore/api/catalog/v1"
	checkoutv1 "github.com/dwikikusuma/phonestore/api/checkout/v1"
	listingv1 "github.com/dwikikusuma/phonestore/api/listing/v1"
	orderv1 "github.com/dwikikusuma/phonestore/api/order/v1"
	"github.com/dwikikusuma/phonestore/internal/admin/auth"
	"github.com/dwikikusuma/phonestore/pkg/config"
	"github.com/dwikikusuma/phonestore/pkg/grpcjson"
	"github.com/dwikikusuma/phonestore/pkg/logger"
	"github.com/dwikikusuma/phonestore/pkg/shutdown"
	"github.com/dwikikusuma/phonestore/pkg/telemetry"
)

func main() {
	cfg := config.Load()
	log := logger.New(logger.Options{
		Service:   "gateway",
		Env:       cfg.AppEnv,
		Level:     cfg.LogLevel,
		AddSource: true,
	})

	root := context.Background()
	ctx, cancel := shutdown.WithSignals(root)
	defer cancel()

	shutdownTracing, err := telemetry.Init(ctx, telemetry.Options{
		Service:      "gateway",
		Env:          cfg.AppEnv,
		OTLPEndpoint: cfg.Tracing.OTLPEndpoint,
		Stdout:       cfg.Tracing.Stdout,
	})
	if err != nil {
		log.Warn("tracing disabled", slog.Any("err", err))
	}

	conn, err := grpcjson.Dial(cfg.StorefrontAddr)
	if err != nil {
		log.Error("dial storefront failed", slog.Any("err", err), slog.String("addr", cfg.StorefrontAddr))
		os.Exit(1)
	}
	defer conn.Close()

	g := &gateway{
		cart:     cartv1.NewCartServiceClient(conn),
		catalog:  catalogv1.NewCatalogServiceClient(conn),
		checkout: checkoutv1.NewCheckoutServiceClient(conn),
		listings: listingv1.NewListingServiceClient(conn),
		admin:    adminv1.NewAdminServiceClient(conn),
		orders:   orderv1.NewOrderServiceClient(conn),
		cookie: cookieConfig{
			Name:   cfg.Cart.CookieName,
			Secure: cfg.Cart.CookieSecure,
			MaxAge: cfg.Cart.SessionTTL,
		},
		log: log,
	}

	adminAuth := auth.NewMiddleware(firebaseVerifier(ctx, cfg, log), auth.NewAllowlist(cfg.Admin.Emails), log, writeError)

	addr := fmt.Sprintf(":%d", cfg.HTTPPort)
	server := &http.Server{
		Addr:              addr,
		Handler:           telemetry.Middleware("gateway", g.routes(adminAuth, readiness(conn))),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		log.Info("http server starting", slog.String("addr", addr), slog.String("storefront", cfg.StorefrontAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("http server error", slog.Any("err", err))
			cancel()
		}
	}()

	<-ctx.Done()
	log.Info("shutdown requested")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("http shutdown error", slog.Any("err", err))
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		log.Warn("tracing shutdown error", slog.Any("err", err))
	}

	wg.Wait()
	log.Info("bye")
}

// firebaseVerifier returns nil when Firebase cannot be initialised; admin
// routes then answer 503.
func firebaseVerifier(ctx context.Context, cfg config.Config, log *slog.Logger) auth.TokenVerifier {
	var opts []option.ClientOption
	if cfg.GCP.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.GCP.CredentialsFile))
	}

	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: cfg.GCP.ProjectID}, opts...)
	if err != nil {
		log.Warn("firebase app init failed, admin api disabled", slog.Any("err", err))
		return nil
	}
	client, err := app.Auth(ctx)
	if err != nil {
		log.Warn("firebase auth init failed, admin api disabled", slog.Any("err", err))
		return nil
	}
	return client
}

// readiness reports ready once the storefront's health service says SERVING.
func readiness(conn grpc.ClientConnInterface) http.HandlerFunc {
	health := healthpb.NewHealthClient(conn)
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		// The health service speaks protobuf, not the JSON codec.
		resp, err := health.Check(ctx, &healthpb.HealthCheckRequest{}, grpc.CallContentSubtype("proto"))
		if err != nil || resp.GetStatus() != healthpb.HealthCheckResponse_SERVING {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	}
}
