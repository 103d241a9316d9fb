package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/dwikikusuma/phonestore/internal/catalog/domain"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
	ErrNoImageStore = errors.New("image storage not configured")
)

const (
	MinSearchRunes   = 2
	MaxSearchResults = 10

	maxImageBytes = 8 << 20
)

type ProductInput struct {
	Name        string
	Description string
	Currency    string
	Amount      int64
	Category    string
	Subcategory string
	Image       string
	Variants    []domain.Variant
}

type Service struct {
	repo   ProductRepo
	images ImageStore
	cache  SearchCache
	router *domain.Router
	log    *slog.Logger

	tracer   trace.Tracer
	meters   metric.MeterProvider
	searches metric.Int64Counter
}

type Option func(*Service)

func WithImageStore(images ImageStore) Option {
	return func(s *Service) { s.images = images }
}

func WithSearchCache(cache SearchCache) Option {
	return func(s *Service) { s.cache = cache }
}

func WithRouter(router *domain.Router) Option {
	return func(s *Service) { s.router = router }
}

func WithLogger(log *slog.Logger) Option {
	return func(s *Service) { s.log = log }
}

func WithMeterProvider(mp metric.MeterProvider) Option {
	return func(s *Service) { s.meters = mp }
}

func NewService(repo ProductRepo, opts ...Option) *Service {
	s := &Service{
		repo:   repo,
		router: domain.DefaultRouter(),
		log:    slog.Default(),
		tracer: otel.Tracer("phonestore/catalog"),
		meters: otel.GetMeterProvider(),
	}
	for _, opt := range opts {
		opt(s)
	}

	counter, err := s.meters.Meter("phonestore/catalog").Int64Counter("catalog.search.requests",
		metric.WithDescription("search requests by outcome"))
	if err != nil {
		s.log.Warn("catalog metrics disabled", slog.Any("err", err))
	}
	s.searches = counter
	return s
}

// Search returns at most MaxSearchResults summaries for term. Terms shorter
// than MinSearchRunes never reach the repository. Backend failures are logged
// and reported as an empty result.
func (s *Service) Search(ctx context.Context, term string) []domain.SearchResult {
	term = strings.TrimSpace(term)
	if utf8.RuneCountInString(term) < MinSearchRunes {
		s.count(ctx, "skipped")
		return nil
	}

	ctx, span := s.tracer.Start(ctx, "catalog.Search",
		trace.WithAttributes(attribute.Int("search.term_length", len(term))))
	defer span.End()

	key := strings.ToLower(term)
	var (
		version   int64
		cacheable bool
	)
	if s.cache != nil {
		cached, v, ok, err := s.cache.Get(ctx, key)
		if err != nil {
			s.log.WarnContext(ctx, "search cache read failed", slog.Any("err", err))
		}
		version, cacheable = v, err == nil
		if ok {
			s.count(ctx, "cache_hit")
			return cached
		}
	}

	results, err := s.repo.Search(ctx, term, MaxSearchResults)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "search failed")
		s.log.ErrorContext(ctx, "catalog search failed", slog.String("term", term), slog.Any("err", err))
		s.count(ctx, "error")
		return nil
	}
	if len(results) > MaxSearchResults {
		results = results[:MaxSearchResults]
	}

	if cacheable {
		if err := s.cache.Set(ctx, version, key, results); err != nil {
			s.log.WarnContext(ctx, "search cache write failed", slog.Any("err", err))
		}
	}
	s.count(ctx, "ok")
	return results
}

func (s *Service) ResolveRoute(subcategory string) string {
	return s.router.Resolve(subcategory)
}

func (s *Service) CreateProduct(ctx context.Context, in ProductInput) (domain.Product, error) {
	p, err := buildProduct(in)
	if err != nil {
		return domain.Product{}, err
	}

	product, err := s.repo.Create(ctx, p)
	if err != nil {
		return domain.Product{}, err
	}
	s.invalidate(ctx)
	return product, nil
}

func (s *Service) UpdateProduct(ctx context.Context, id string, in ProductInput) (domain.Product, error) {
	if strings.TrimSpace(id) == "" {
		return domain.Product{}, ErrInvalidInput
	}
	next, err := buildProduct(in)
	if err != nil {
		return domain.Product{}, err
	}

	cur, err := s.repo.Get(ctx, id)
	if err != nil {
		return domain.Product{}, err
	}
	next.ID = cur.ID
	next.Images = cur.Images
	next.CreatedAt = cur.CreatedAt
	if next.Image == "" {
		next.Image = cur.Image
	}

	product, err := s.repo.Update(ctx, next)
	if err != nil {
		return domain.Product{}, err
	}
	s.invalidate(ctx)
	return product, nil
}

// DeleteProduct removes the row first, then its stored images. Image cleanup
// is best-effort.
func (s *Service) DeleteProduct(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return ErrInvalidInput
	}
	p, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)

	if s.images == nil || len(p.Images) == 0 {
		return nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for _, url := range p.Images {
		g.Go(func() error {
			if err := s.images.Delete(gctx, url); err != nil {
				s.log.WarnContext(gctx, "product image cleanup failed",
					slog.String("product_id", id), slog.String("url", url), slog.Any("err", err))
			}
			return nil
		})
	}
	return g.Wait()
}

// AttachProductImage uploads data and appends its URL to the product. The
// first image attached also becomes the cover image.
func (s *Service) AttachProductImage(ctx context.Context, productID, filename, contentType string, data []byte) (domain.Product, error) {
	if s.images == nil {
		return domain.Product{}, ErrNoImageStore
	}
	if strings.TrimSpace(productID) == "" || len(data) == 0 || len(data) > maxImageBytes {
		return domain.Product{}, ErrInvalidInput
	}
	if !strings.HasPrefix(contentType, "image/") {
		return domain.Product{}, fmt.Errorf("%w: content type %q", ErrInvalidInput, contentType)
	}

	p, err := s.repo.Get(ctx, productID)
	if err != nil {
		return domain.Product{}, err
	}

	object := fmt.Sprintf("products/%s/%s%s", p.ID, uuid.NewString(), strings.ToLower(path.Ext(filename)))
	url, err := s.images.Put(ctx, object, contentType, data)
	if err != nil {
		return domain.Product{}, fmt.Errorf("upload image: %w", err)
	}

	p.Images = append(p.Images, url)
	if p.Image == "" {
		p.Image = url
	}
	updated, err := s.repo.Update(ctx, p)
	if err != nil {
		if derr := s.images.Delete(ctx, url); derr != nil {
			s.log.WarnContext(ctx, "orphaned product image", slog.String("url", url), slog.Any("err", derr))
		}
		return domain.Product{}, err
	}
	return updated, nil
}

func (s *Service) GetProduct(ctx context.Context, id string) (domain.Product, error) {
	if strings.TrimSpace(id) == "" {
		return domain.Product{}, ErrInvalidInput
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) ListProducts(ctx context.Context, category, subcategory string, limit int) ([]domain.Product, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	return s.repo.List(ctx, ListFilter{
		Category:    strings.TrimSpace(category),
		Subcategory: strings.TrimSpace(subcategory),
		Limit:       limit,
	})
}

func (s *Service) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		s.log.WarnContext(ctx, "search cache invalidation failed", slog.Any("err", err))
	}
}

func (s *Service) count(ctx context.Context, outcome string) {
	if s.searches == nil {
		return
	}
	s.searches.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))
}

func buildProduct(in ProductInput) (domain.Product, error) {
	name := strings.TrimSpace(in.Name)
	currency := strings.TrimSpace(in.Currency)
	category := strings.TrimSpace(in.Category)

	if name == "" || currency == "" || in.Amount <= 0 || category == "" {
		return domain.Product{}, ErrInvalidInput
	}
	for _, v := range in.Variants {
		if strings.TrimSpace(v.RAM) == "" || strings.TrimSpace(v.Storage) == "" || v.Price <= 0 {
			return domain.Product{}, fmt.Errorf("%w: variant", ErrInvalidInput)
		}
	}

	now := time.Now().UTC()
	return domain.Product{
		Name:        name,
		Description: in.Description,
		Price: domain.Money{
			Currency: currency,
			Amount:   in.Amount,
		},
		Category:    category,
		Subcategory: strings.TrimSpace(in.Subcategory),
		Image:       in.Image,
		Variants:    in.Variants,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}
