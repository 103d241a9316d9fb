// Package firestore stores the catalog in a Firestore "products" collection.
//
// Firestore has no substring operator, so Search pages through the
// collection newest first and filters in process until it has enough
// matches. Category equality runs on a lowercased copy of the field so it is
// case-insensitive like the Postgres backend.
package firestore

import (
	"context"
	"errors"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/dwikikusuma/phonestore/internal/catalog/app"
	"github.com/dwikikusuma/phonestore/internal/catalog/domain"
)

const (
	collection = "products"
	pageSize   = 200
)

type ProductRepo struct {
	client *firestore.Client
}

func NewProductRepo(client *firestore.Client) *ProductRepo {
	return &ProductRepo{client: client}
}

type productDoc struct {
	Name        string       `firestore:"name"`
	Description string       `firestore:"description"`
	PriceAmount int64        `firestore:"priceAmount"`
	Currency    string       `firestore:"currency"`
	Category    string       `firestore:"category"`
	CategoryLC  string       `firestore:"categoryLc"`
	Subcategory string       `firestore:"subcategory"`
	Image       string       `firestore:"image"`
	Images      []string     `firestore:"images"`
	Variants    []variantDoc `firestore:"variants"`
	CreatedAt   time.Time    `firestore:"createdAt"`
	UpdatedAt   time.Time    `firestore:"updatedAt"`
}

type variantDoc struct {
	RAM     string `firestore:"ram"`
	Storage string `firestore:"storage"`
	Price   int64  `firestore:"price"`
}

func (r *ProductRepo) col() *firestore.CollectionRef {
	return r.client.Collection(collection)
}

func (r *ProductRepo) Create(ctx context.Context, p domain.Product) (domain.Product, error) {
	ref := r.col().NewDoc()
	now := time.Now().UTC()
	p.ID = ref.ID
	p.CreatedAt, p.UpdatedAt = now, now

	if _, err := ref.Create(ctx, toDoc(p)); err != nil {
		return domain.Product{}, err
	}
	return p, nil
}

func (r *ProductRepo) Get(ctx context.Context, id string) (domain.Product, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return domain.Product{}, app.ErrNotFound
	}

	snap, err := r.col().Doc(id).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return domain.Product{}, app.ErrNotFound
	}
	if err != nil {
		return domain.Product{}, err
	}
	return fromSnapshot(snap)
}

func (r *ProductRepo) Update(ctx context.Context, p domain.Product) (domain.Product, error) {
	ref := r.col().Doc(p.ID)
	p.UpdatedAt = time.Now().UTC()

	// NotFound when the product was deleted in the meantime.
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		if _, err := tx.Get(ref); err != nil {
			return err
		}
		return tx.Set(ref, toDoc(p))
	})
	if status.Code(err) == codes.NotFound {
		return domain.Product{}, app.ErrNotFound
	}
	if err != nil {
		return domain.Product{}, err
	}
	return p, nil
}

func (r *ProductRepo) Delete(ctx context.Context, id string) error {
	_, err := r.col().Doc(id).Delete(ctx, firestore.Exists)
	if status.Code(err) == codes.NotFound {
		return app.ErrNotFound
	}
	return err
}

func (r *ProductRepo) List(ctx context.Context, f app.ListFilter) ([]domain.Product, error) {
	base := r.col().Query
	if f.Category != "" {
		base = base.Where("categoryLc", "==", strings.ToLower(f.Category))
	}
	if f.Subcategory == "" {
		return r.collect(ctx, newestFirst(base).Limit(f.Limit))
	}

	needle := strings.ToLower(f.Subcategory)
	return scanMatching(ctx, r.pager(base), func(p domain.Product) bool {
		return strings.Contains(strings.ToLower(p.Subcategory), needle)
	}, f.Limit)
}

func (r *ProductRepo) Search(ctx context.Context, term string, limit int) ([]domain.SearchResult, error) {
	needle := strings.ToLower(strings.TrimSpace(term))
	products, err := scanMatching(ctx, r.pager(r.col().Query), func(p domain.Product) bool {
		return matches(p, needle)
	}, limit)
	if err != nil {
		return nil, err
	}

	out := make([]domain.SearchResult, 0, len(products))
	for _, p := range products {
		out = append(out, p.Summary())
	}
	return out, nil
}

// pager fetches n products of base, newest first, starting after the given
// product. The document id breaks createdAt ties so no product is skipped.
type pager func(ctx context.Context, after *domain.Product, n int) ([]domain.Product, error)

func (r *ProductRepo) pager(base firestore.Query) pager {
	return func(ctx context.Context, after *domain.Product, n int) ([]domain.Product, error) {
		q := newestFirst(base)
		if after != nil {
			q = q.StartAfter(after.CreatedAt, after.ID)
		}
		return r.collect(ctx, q.Limit(n))
	}
}

func newestFirst(q firestore.Query) firestore.Query {
	return q.OrderBy("createdAt", firestore.Desc).OrderBy(firestore.DocumentID, firestore.Desc)
}

// scanMatching pages until limit products satisfy match or the pages run out.
func scanMatching(ctx context.Context, next pager, match func(domain.Product) bool, limit int) ([]domain.Product, error) {
	var out []domain.Product
	var after *domain.Product
	for {
		page, err := next(ctx, after, pageSize)
		if err != nil {
			return nil, err
		}
		for _, p := range page {
			if !match(p) {
				continue
			}
			out = append(out, p)
			if len(out) == limit {
				return out, nil
			}
		}
		if len(page) < pageSize {
			return out, nil
		}
		after = &page[len(page)-1]
	}
}

func (r *ProductRepo) collect(ctx context.Context, q firestore.Query) ([]domain.Product, error) {
	it := q.Documents(ctx)
	defer it.Stop()

	var out []domain.Product
	for {
		snap, err := it.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, err
		}
		p, err := fromSnapshot(snap)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

func matches(p domain.Product, needle string) bool {
	return strings.Contains(strings.ToLower(p.Name), needle) ||
		strings.Contains(strings.ToLower(p.Category), needle) ||
		strings.Contains(strings.ToLower(p.Subcategory), needle)
}

func toDoc(p domain.Product) productDoc {
	vs := make([]variantDoc, 0, len(p.Variants))
	for _, v := range p.Variants {
		vs = append(vs, variantDoc{RAM: v.RAM, Storage: v.Storage, Price: v.Price})
	}
	return productDoc{
		Name:        p.Name,
		Description: p.Description,
		PriceAmount: p.Price.Amount,
		Currency:    p.Price.Currency,
		Category:    p.Category,
		CategoryLC:  strings.ToLower(p.Category),
		Subcategory: p.Subcategory,
		Image:       p.Image,
		Images:      p.Images,
		Variants:    vs,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func fromSnapshot(snap *firestore.DocumentSnapshot) (domain.Product, error) {
	var d productDoc
	if err := snap.DataTo(&d); err != nil {
		return domain.Product{}, err
	}
	return fromDoc(snap.Ref.ID, d), nil
}

func fromDoc(id string, d productDoc) domain.Product {
	var vs []domain.Variant
	for _, v := range d.Variants {
		vs = append(vs, domain.Variant{RAM: v.RAM, Storage: v.Storage, Price: v.Price})
	}
	return domain.Product{
		ID:          id,
		Name:        d.Name,
		Description: d.Description,
		Price:       domain.Money{Currency: d.Currency, Amount: d.PriceAmount},
		Category:    d.Category,
		Subcategory: d.Subcategory,
		Image:       d.Image,
		Images:      d.Images,
		Variants:    vs,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}
