package models

import (
	"time"

	"github.com/pricebook/pricing_api/internal/pricing"
)

// PricingProfile is a named price adjustment applied to a set of products.
// AdjustmentValue is a flat amount for fixed profiles and a percentage in
// (0,100] for dynamic ones.
type PricingProfile struct {
	ID              int                    `db:"id" json:"id"`
	Name            string                 `db:"name" json:"name"`
	AdjustmentType  pricing.AdjustmentType `db:"adjustment_type" json:"adjustmentType"`
	AdjustmentValue float64                `db:"adjustment_value" json:"adjustmentValue"`
	IncrementType   pricing.IncrementType  `db:"increment_type" json:"incrementType"`
	CreatedAt       time.Time              `db:"created_at" json:"createdAt"`
	UpdatedAt       time.Time              `db:"updated_at" json:"updatedAt"`
}

// ProfileProduct is one line item of a pricing profile: the product's base
// price at calculation time and the price the profile derived from it. Both
// are snapshots, not live links.
type ProfileProduct struct {
	ID           int       `db:"id" json:"id"`
	ProfileID    int       `db:"profile_id" json:"profileId"`
	ProductID    int       `db:"product_id" json:"productId"`
	BasedOnPrice float64   `db:"based_on_price" json:"basedOnPrice"`
	NewPrice     float64   `db:"new_price" json:"newPrice"`
	CreatedAt    time.Time `db:"created_at" json:"-"`
}

// ProfileProductDetail is a line item joined with product display fields.
type ProfileProductDetail struct {
	ID           int     `db:"id" json:"id"`
	ProductID    int     `db:"product_id" json:"productId"`
	BasedOnPrice float64 `db:"based_on_price" json:"basedOnPrice"`
	NewPrice     float64 `db:"new_price" json:"newPrice"`
	ProductTitle string  `db:"product_title" json:"productTitle"`
	SkuCode      string  `db:"sku_code" json:"productSku"`
	CategoryName string  `db:"category_name" json:"categoryName"`
}

// PricingTableRow is the presentation-ready view of one line item.
// Adjustment is the signed delta newPrice - wholesalePrice, negative for
// decreases.
type PricingTableRow struct {
	ID             int     `json:"id"`
	Title          string  `json:"title"`
	Sku            string  `json:"sku"`
	Category       string  `json:"category"`
	WholesalePrice float64 `json:"wholesalePrice"`
	Adjustment     float64 `json:"adjustment"`
	NewPrice       float64 `json:"newPrice"`
}
