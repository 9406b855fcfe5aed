package domain

import (
	"context"

	"github.com/shopspring/decimal"
)

// Product is the shop catalogue entry. The cart keeps a value copy taken at
// add-time, never a live reference.
type Product struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Image       string          `json:"image"`
	Brand       string          `json:"brand,omitempty"`
	Weight      string          `json:"weight,omitempty"`
	Color       string          `json:"color,omitempty"`
	Size        string          `json:"size,omitempty"`
	Category    string          `json:"category,omitempty"`
	Stock       int             `json:"stock,omitempty"`
}

// VariantKey identifies the cart line a product belongs to.
func (p Product) VariantKey() VariantKey {
	return VariantKey{ProductID: p.ID, Color: p.Color, Size: p.Size}
}

// VariantKey is the (id, color, size) tuple that makes two cart additions
// land on the same line.
type VariantKey struct {
	ProductID string
	Color     string
	Size      string
}

type ProductFilter struct {
	Page     int
	Limit    int
	Category string
	Search   string
}

type ProductRepository interface {
	List(ctx context.Context, filter ProductFilter) ([]Product, Pagination, error)
	GetByID(ctx context.Context, id string) (*Product, error)
}
