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

	"github.com/dwikikusuma/phonestore/internal/listing/app"
	"github.com/dwikikusuma/phonestore/internal/listing/domain"
)

const collection = "listings"

type ListingRepo struct {
	client *firestore.Client
}

func NewListingRepo(client *firestore.Client) *ListingRepo {
	return &ListingRepo{client: client}
}

type listingDoc struct {
	SellerName  string    `firestore:"sellerName"`
	SellerPhone string    `firestore:"sellerPhone"`
	Model       string    `firestore:"model"`
	Condition   string    `firestore:"condition"`
	AskingPrice int64     `firestore:"askingPrice"`
	Description string    `firestore:"description"`
	Images      []string  `firestore:"images"`
	Status      string    `firestore:"status"`
	ReviewNote  string    `firestore:"reviewNote,omitempty"`
	ReviewedBy  string    `firestore:"reviewedBy,omitempty"`
	CreatedAt   time.Time `firestore:"createdAt"`
	ReviewedAt  time.Time `firestore:"reviewedAt,omitempty"`
}

func (r *ListingRepo) col() *firestore.CollectionRef {
	return r.client.Collection(collection)
}

func (r *ListingRepo) Create(ctx context.Context, l domain.Listing) (domain.Listing, error) {
	ref := r.col().NewDoc()
	l.ID = ref.ID
	if _, err := ref.Create(ctx, toDoc(l)); err != nil {
		return domain.Listing{}, err
	}
	return l, nil
}

func (r *ListingRepo) Get(ctx context.Context, id string) (domain.Listing, error) {
	if strings.TrimSpace(id) == "" {
		return domain.Listing{}, app.ErrNotFound
	}
	snap, err := r.col().Doc(id).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return domain.Listing{}, app.ErrNotFound
	}
	if err != nil {
		return domain.Listing{}, err
	}
	return fromSnapshot(snap)
}

func (r *ListingRepo) UpdateReview(ctx context.Context, l domain.Listing) (domain.Listing, error) {
	ref := r.col().Doc(l.ID)
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		snap, err := tx.Get(ref)
		if err != nil {
			return err
		}
		cur, err := fromSnapshot(snap)
		if err != nil {
			return err
		}
		if cur.Status != domain.StatusPending {
			return domain.ErrInvalidTransition
		}
		return tx.Update(ref, []firestore.Update{
			{Path: "status", Value: string(l.Status)},
			{Path: "reviewNote", Value: l.ReviewNote},
			{Path: "reviewedBy", Value: l.ReviewedBy},
			{Path: "reviewedAt", Value: l.ReviewedAt},
		})
	})
	if status.Code(err) == codes.NotFound {
		return domain.Listing{}, app.ErrNotFound
	}
	if err != nil {
		return domain.Listing{}, err
	}
	return l, nil
}

func (r *ListingRepo) Delete(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return app.ErrNotFound
	}
	_, err := r.col().Doc(id).Delete(ctx, firestore.Exists)
	if status.Code(err) == codes.NotFound {
		return app.ErrNotFound
	}
	return err
}

func (r *ListingRepo) ListByStatus(ctx context.Context, st domain.Status, limit int) ([]domain.Listing, error) {
	it := r.col().
		Where("status", "==", string(st)).
		OrderBy("createdAt", firestore.Desc).
		Limit(limit).
		Documents(ctx)
	defer it.Stop()

	var out []domain.Listing
	for {
		snap, err := it.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, err
		}
		l, err := fromSnapshot(snap)
		if err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, nil
}

func toDoc(l domain.Listing) listingDoc {
	images := l.Images
	if images == nil {
		images = []string{}
	}
	return listingDoc{
		SellerName:  l.SellerName,
		SellerPhone: l.SellerPhone,
		Model:       l.Model,
		Condition:   l.Condition,
		AskingPrice: l.AskingPrice,
		Description: l.Description,
		Images:      images,
		Status:      string(l.Status),
		ReviewNote:  l.ReviewNote,
		ReviewedBy:  l.ReviewedBy,
		CreatedAt:   l.CreatedAt,
		ReviewedAt:  l.ReviewedAt,
	}
}

func fromSnapshot(snap *firestore.DocumentSnapshot) (domain.Listing, error) {
	var d listingDoc
	if err := snap.DataTo(&d); err != nil {
		return domain.Listing{}, err
	}
	return fromDoc(snap.Ref.ID, d), nil
}

func fromDoc(id string, d listingDoc) domain.Listing {
	return domain.Listing{
		ID:          id,
		SellerName:  d.SellerName,
		SellerPhone: d.SellerPhone,
		Model:       d.Model,
		Condition:   d.Condition,
		AskingPrice: d.AskingPrice,
		Description: d.Description,
		Images:      d.Images,
		Status:      domain.Status(d.Status),
		ReviewNote:  d.ReviewNote,
		ReviewedBy:  d.ReviewedBy,
		CreatedAt:   d.CreatedAt,
		ReviewedAt:  d.ReviewedAt,
	}
}

var _ app.ListingRepo = (*ListingRepo)(nil)
