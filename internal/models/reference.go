package models

import "time"

// ReferenceItem is a generic named lookup row (brands, categories,
// sub-categories, segments).
type ReferenceItem struct {
	ID        int       `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	CreatedAt time.Time `db:"created_at" json:"-"`
	UpdatedAt time.Time `db:"updated_at" json:"-"`
}

// SKU is a stock-keeping unit code referenced by products.
type SKU struct {
	ID        int       `db:"id" json:"id"`
	SkuCode   string    `db:"sku_code" json:"skuCode"`
	CreatedAt time.Time `db:"created_at" json:"-"`
	UpdatedAt time.Time `db:"updated_at" json:"-"`
}
