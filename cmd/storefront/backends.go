package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"cloud.google.com/go/firestore"
	"cloud.google.com/go/storage"
	"google.golang.org/api/option"

	catalogapp "github.com/dwikikusuma/phonestore/internal/catalog/app"
	"github.com/dwikikusuma/phonestore/internal/catalog/domain"
	catalogfs "github.com/dwikikusuma/phonestore/internal/catalog/infra/firestore"
	catalogpg "github.com/dwikikusuma/phonestore/internal/catalog/infra/postgres"
	catalogredis "github.com/dwikikusuma/phonestore/internal/catalog/infra/redis"
	listingapp "github.com/dwikikusuma/phonestore/internal/listing/app"
	listingfs "github.com/dwikikusuma/phonestore/internal/listing/infra/firestore"
	listingpg "github.com/dwikikusuma/phonestore/internal/listing/infra/postgres"
	listingmail "github.com/dwikikusuma/phonestore/internal/listing/infra/sendgrid"
	"github.com/dwikikusuma/phonestore/internal/media/gcs"
	orderapp "github.com/dwikikusuma/phonestore/internal/order/app"
	orderfs "github.com/dwikikusuma/phonestore/internal/order/infra/firestore"
	orderpg "github.com/dwikikusuma/phonestore/internal/order/infra/postgres"
	"github.com/dwikikusuma/phonestore/pkg/config"
	"github.com/dwikikusuma/phonestore/pkg/postgres"
	"github.com/dwikikusuma/phonestore/pkg/secrets"
	"github.com/dwikikusuma/phonestore/pkg/shutdown"
)

type backends struct {
	products catalogapp.ProductRepo
	orders   orderapp.OrderRepo
	listings listingapp.ListingRepo

	// optional
	images   catalogapp.ImageStore
	cache    catalogapp.SearchCache
	notifier listingapp.Notifier
}

func openBackends(ctx context.Context, cfg config.Config, log *slog.Logger, closers *shutdown.Closers) (backends, error) {
	var b backends

	var gcpOpts []option.ClientOption
	if cfg.GCP.CredentialsFile != "" {
		gcpOpts = append(gcpOpts, option.WithCredentialsFile(cfg.GCP.CredentialsFile))
	}

	var resolver *secrets.Resolver
	if cfg.Postgres.PassSecret != "" || cfg.Mail.SendGridKeySecret != "" {
		r, err := secrets.NewResolver(ctx, cfg.GCP.ProjectID, cfg.GCP.CredentialsFile)
		if err != nil {
			return b, err
		}
		closers.Add("secretmanager", r.Close)
		resolver = r
	}

	switch cfg.Catalog.Backend {
	case "postgres":
		pass, err := resolver.Resolve(ctx, cfg.Postgres.Pass, cfg.Postgres.PassSecret)
		if err != nil {
			return b, err
		}
		db, err := postgres.Open(postgres.Config{
			Host:    cfg.Postgres.Host,
			Port:    cfg.Postgres.Port,
			User:    cfg.Postgres.User,
			Pass:    pass,
			DB:      cfg.Postgres.DB,
			SSLMode: cfg.Postgres.SSLMode,
		})
		if err != nil {
			return b, fmt.Errorf("db open: %w", err)
		}
		closers.Add("postgres", db.Close)

		b.products = catalogpg.NewProductRepo(db)
		b.orders = orderpg.NewOrderRepo(db)
		b.listings = listingpg.NewListingRepo(db)

	case "firestore":
		client, err := firestore.NewClient(ctx, cfg.GCP.ProjectID, gcpOpts...)
		if err != nil {
			return b, fmt.Errorf("firestore client: %w", err)
		}
		closers.Add("firestore", client.Close)

		b.products = catalogfs.NewProductRepo(client)
		b.orders = orderfs.NewOrderRepo(client)
		b.listings = listingfs.NewListingRepo(client)

	default:
		return b, fmt.Errorf("unknown CATALOG_BACKEND %q", cfg.Catalog.Backend)
	}

	if cfg.GCP.ImageBucket != "" {
		client, err := storage.NewClient(ctx, gcpOpts...)
		if err != nil {
			return b, fmt.Errorf("storage client: %w", err)
		}
		closers.Add("storage", client.Close)
		b.images = gcs.NewImageStore(client, cfg.GCP.ImageBucket, cfg.GCP.PublicBaseURL)
	} else {
		log.Warn("GCS_IMAGE_BUCKET not set, product image upload disabled")
	}

	if cfg.Catalog.RedisURL != "" {
		rdb, err := catalogredis.Connect(ctx, cfg.Catalog.RedisURL)
		if err != nil {
			// Search works without the cache.
			log.Warn("search cache disabled", slog.Any("err", err))
		} else {
			closers.Add("redis", rdb.Close)
			b.cache = catalogredis.NewSearchCache(rdb, catalogredis.WithTTL(cfg.Catalog.SearchCacheTTL))
		}
	}

	key, err := resolver.Resolve(ctx, cfg.Mail.SendGridKey, cfg.Mail.SendGridKeySecret)
	if err != nil {
		return b, err
	}
	if key != "" && cfg.Mail.From != "" {
		n, err := listingmail.NewNotifier(key, cfg.Mail.From, cfg.Admin.Emails, cfg.Mail.AdminURL, log)
		if err != nil {
			log.Warn("listing notifications disabled", slog.Any("err", err))
		} else {
			b.notifier = n
		}
	}

	return b, nil
}

func loadRouter(path string) (*domain.Router, error) {
	if path == "" {
		return domain.DefaultRouter(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("routes file: %w", err)
	}
	defer f.Close()
	return domain.LoadRouter(f)
}
