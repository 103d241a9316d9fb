package domain

import (
	"fmt"
	"time"
)

type Money struct {
	Currency string
	Amount   int64
}

type Variant struct {
	RAM     string
	Storage string
	Price   int64
}

type Product struct {
	ID          string
	Name        string
	Price       Money
	Description string
	Category    string
	Subcategory string
	Image       string
	Images      []string
	Variants    []Variant
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// VariantTitle is the cart title of a product variant. Two variants of the
// same product land on separate cart lines because their titles differ.
func VariantTitle(name string, v Variant) string {
	return fmt.Sprintf("%s (%s RAM - %s)", name, v.RAM, v.Storage)
}

// SearchResult is the projection returned by the live search box.
type SearchResult struct {
	ID          string
	Name        string
	Price       Money
	Category    string
	Subcategory string
}

func (p Product) Summary() SearchResult {
	return SearchResult{
		ID:          p.ID,
		Name:        p.Name,
		Price:       p.Price,
		Category:    p.Category,
		Subcategory: p.Subcategory,
	}
}
