package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/dwikikusuma/phonestore/internal/catalog/app"
	"github.com/dwikikusuma/phonestore/internal/catalog/domain"
)

const productColumns = `id, name, description, price_amount, currency, category, subcategory,
	image, images, variants, created_at, updated_at`

type ProductRepo struct {
	db *sql.DB
}

func NewProductRepo(db *sql.DB) *ProductRepo {
	return &ProductRepo{db: db}
}

type variantRow struct {
	RAM     string `json:"ram"`
	Storage string `json:"storage"`
	Price   int64  `json:"price"`
}

type scanner interface {
	Scan(dest ...any) error
}

func (r *ProductRepo) Create(ctx context.Context, p domain.Product) (domain.Product, error) {
	variants, err := encodeVariants(p.Variants)
	if err != nil {
		return domain.Product{}, err
	}

	row := r.db.QueryRowContext(ctx, `
		INSERT INTO products (name, description, price_amount, currency, category, subcategory, image, images, variants)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING `+productColumns,
		p.Name, p.Description, p.Price.Amount, p.Price.Currency, p.Category, p.Subcategory,
		p.Image, pq.Array(p.Images), variants,
	)
	return scanProduct(row)
}

func (r *ProductRepo) Get(ctx context.Context, id string) (domain.Product, error) {
	prodID, err := uuid.Parse(id)
	if err != nil {
		return domain.Product{}, app.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, prodID)
	p, err := scanProduct(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Product{}, app.ErrNotFound
	}
	return p, err
}

func (r *ProductRepo) Update(ctx context.Context, p domain.Product) (domain.Product, error) {
	prodID, err := uuid.Parse(p.ID)
	if err != nil {
		return domain.Product{}, app.ErrNotFound
	}
	variants, err := encodeVariants(p.Variants)
	if err != nil {
		return domain.Product{}, err
	}

	row := r.db.QueryRowContext(ctx, `
		UPDATE products
		SET name = $2, description = $3, price_amount = $4, currency = $5, category = $6,
			subcategory = $7, image = $8, images = $9, variants = $10, updated_at = now()
		WHERE id = $1
		RETURNING `+productColumns,
		prodID, p.Name, p.Description, p.Price.Amount, p.Price.Currency, p.Category,
		p.Subcategory, p.Image, pq.Array(p.Images), variants,
	)
	updated, err := scanProduct(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Product{}, app.ErrNotFound
	}
	return updated, err
}

func (r *ProductRepo) Delete(ctx context.Context, id string) error {
	prodID, err := uuid.Parse(id)
	if err != nil {
		return app.ErrNotFound
	}

	res, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, prodID)
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

func (r *ProductRepo) List(ctx context.Context, f app.ListFilter) ([]domain.Product, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+productColumns+`
		FROM products
		WHERE ($1 = '' OR category ILIKE $1)
		  AND ($2 = '' OR subcategory ILIKE '%' || $2 || '%')
		ORDER BY created_at DESC
		LIMIT $3`,
		escapeLike(f.Category), escapeLike(f.Subcategory), f.Limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.Product, 0, f.Limit)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *ProductRepo) Search(ctx context.Context, term string, limit int) ([]domain.SearchResult, error) {
	pattern := "%" + escapeLike(term) + "%"
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, price_amount, currency, category, subcategory
		FROM products
		WHERE name ILIKE $1 OR category ILIKE $1 OR subcategory ILIKE $1
		ORDER BY created_at DESC
		LIMIT $2`,
		pattern, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.SearchResult
	for rows.Next() {
		var (
			id  uuid.UUID
			res domain.SearchResult
		)
		if err := rows.Scan(&id, &res.Name, &res.Price.Amount, &res.Price.Currency, &res.Category, &res.Subcategory); err != nil {
			return nil, err
		}
		res.ID = id.String()
		out = append(out, res)
	}
	return out, rows.Err()
}

func scanProduct(s scanner) (domain.Product, error) {
	var (
		id        uuid.UUID
		p         domain.Product
		images    pq.StringArray
		variants  []byte
		createdAt time.Time
		updatedAt time.Time
	)
	err := s.Scan(&id, &p.Name, &p.Description, &p.Price.Amount, &p.Price.Currency, &p.Category,
		&p.Subcategory, &p.Image, &images, &variants, &createdAt, &updatedAt)
	if err != nil {
		return domain.Product{}, err
	}

	p.ID = id.String()
	p.Images = []string(images)
	p.CreatedAt = createdAt
	p.UpdatedAt = updatedAt
	if p.Variants, err = decodeVariants(variants); err != nil {
		return domain.Product{}, err
	}
	return p, nil
}

func encodeVariants(vs []domain.Variant) ([]byte, error) {
	rows := make([]variantRow, 0, len(vs))
	for _, v := range vs {
		rows = append(rows, variantRow{RAM: v.RAM, Storage: v.Storage, Price: v.Price})
	}
	b, err := json.Marshal(rows)
	if err != nil {
		return nil, fmt.Errorf("encode variants: %w", err)
	}
	return b, nil
}

func decodeVariants(b []byte) ([]domain.Variant, error) {
	if len(b) == 0 {
		return nil, nil
	}
	var rows []variantRow
	if err := json.Unmarshal(b, &rows); err != nil {
		return nil, fmt.Errorf("decode variants: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	out := make([]domain.Variant, 0, len(rows))
	for _, r := range rows {
		out = append(out, domain.Variant{RAM: r.RAM, Storage: r.Storage, Price: r.Price})
	}
	return out, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
