package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/dwikikusuma/phonestore/internal/listing/app"
	"github.com/dwikikusuma/phonestore/internal/listing/domain"
)

type ListingRepo struct {
	db *sql.DB
}

func NewListingRepo(db *sql.DB) *ListingRepo {
	return &ListingRepo{db: db}
}

const listingColumns = `id, seller_name, seller_phone, model, condition, asking_price, description,
	images, status, review_note, reviewed_by, created_at, reviewed_at`

func (r *ListingRepo) Create(ctx context.Context, l domain.Listing) (domain.Listing, error) {
	row := r.db.QueryRowContext(ctx, `
		INSERT INTO listings
			(seller_name, seller_phone, model, condition, asking_price, description, images, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING `+listingColumns,
		l.SellerName, l.SellerPhone, l.Model, l.Condition, l.AskingPrice, l.Description,
		pq.Array(nonNil(l.Images)), l.Status, l.CreatedAt,
	)
	created, err := scanListing(row)
	if err != nil {
		return domain.Listing{}, fmt.Errorf("failed to create listing: %w", err)
	}
	return created, nil
}

func (r *ListingRepo) Get(ctx context.Context, id string) (domain.Listing, error) {
	listingID, err := uuid.Parse(id)
	if err != nil {
		return domain.Listing{}, app.ErrNotFound
	}

	l, err := scanListing(r.db.QueryRowContext(ctx, `SELECT `+listingColumns+` FROM listings WHERE id = $1`, listingID))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Listing{}, app.ErrNotFound
	}
	return l, err
}

func (r *ListingRepo) UpdateReview(ctx context.Context, l domain.Listing) (domain.Listing, error) {
	listingID, err := uuid.Parse(l.ID)
	if err != nil {
		return domain.Listing{}, app.ErrNotFound
	}

	updated, err := scanListing(r.db.QueryRowContext(ctx, `
		UPDATE listings
		SET status = $2, review_note = $3, reviewed_by = $4, reviewed_at = $5
		WHERE id = $1 AND status = 'PENDING'
		RETURNING `+listingColumns,
		listingID, l.Status, l.ReviewNote, l.ReviewedBy, l.ReviewedAt,
	))
	if errors.Is(err, sql.ErrNoRows) {
		// Either gone or reviewed concurrently.
		if _, getErr := r.Get(ctx, l.ID); errors.Is(getErr, app.ErrNotFound) {
			return domain.Listing{}, app.ErrNotFound
		}
		return domain.Listing{}, domain.ErrInvalidTransition
	}
	return updated, err
}

func (r *ListingRepo) Delete(ctx context.Context, id string) error {
	listingID, err := uuid.Parse(id)
	if err != nil {
		return app.ErrNotFound
	}

	res, err := r.db.ExecContext(ctx, `DELETE FROM listings WHERE id = $1`, listingID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return app.ErrNotFound
	}
	return nil
}

func (r *ListingRepo) ListByStatus(ctx context.Context, status domain.Status, limit int) ([]domain.Listing, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+listingColumns+` FROM listings
		WHERE status = $1
		ORDER BY created_at DESC
		LIMIT $2`, status, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Listing
	for rows.Next() {
		l, err := scanListing(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanListing(s scanner) (domain.Listing, error) {
	var (
		id         uuid.UUID
		l          domain.Listing
		images     pq.StringArray
		status     string
		reviewedAt sql.NullTime
		note       sql.NullString
		reviewer   sql.NullString
	)
	err := s.Scan(&id, &l.SellerName, &l.SellerPhone, &l.Model, &l.Condition, &l.AskingPrice,
		&l.Description, &images, &status, &note, &reviewer, &l.CreatedAt, &reviewedAt)
	if err != nil {
		return domain.Listing{}, err
	}
	l.ID = id.String()
	l.Images = []string(images)
	l.Status = domain.Status(status)
	l.ReviewNote = note.String
	l.ReviewedBy = reviewer.String
	if reviewedAt.Valid {
		l.ReviewedAt = reviewedAt.Time.UTC()
	}
	l.CreatedAt = l.CreatedAt.UTC()
	return l, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

var _ app.ListingRepo = (*ListingRepo)(nil)
