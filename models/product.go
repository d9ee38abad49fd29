package models

import (
	"time"
)

// SizeNotApplicable is the sentinel the storefront sends when a product has
// no size variants. It is not a size label and never participates in the
// per-size stock check.
const SizeNotApplicable = "not-applicable"

// Product represents a sellable item in the catalog.
//
// StockQuantity is the global available count. SizeStock, when present, is a
// second, independently tracked cap per size label; the two are not required
// to reconcile (admin edits may set either freely).
type Product struct {
	ID            string         `json:"id" firestore:"-"`
	Name          string         `json:"name" firestore:"name"`
	Description   string         `json:"description" firestore:"description"`
	Price         float64        `json:"price" firestore:"price"`
	Category      string         `json:"category" firestore:"category"`
	ImageURL      string         `json:"image_url" firestore:"imageUrl"`
	StockQuantity int            `json:"stock_quantity" firestore:"stockQuantity"`
	SizeStock     map[string]int `json:"size_stock,omitempty" firestore:"sizeStock,omitempty"`
	CreatedAt     time.Time      `json:"created_at" firestore:"createdAt"`
	UpdatedAt     time.Time      `json:"updated_at" firestore:"updatedAt"`
}

// HasSizes reports whether the product declares per-size stock.
func (p *Product) HasSizes() bool {
	return len(p.SizeStock) > 0
}

// ProductInput is used for creating/updating products in the admin console.
type ProductInput struct {
	Name          string         `json:"name" binding:"required"`
	Description   string         `json:"description"`
	Price         float64        `json:"price" binding:"required"`
	Category      string         `json:"category"`
	ImageURL      string         `json:"image_url"`
	StockQuantity int            `json:"stock_quantity"`
	SizeStock     map[string]int `json:"size_stock"`
}
