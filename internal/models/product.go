package models

import "time"

// Product is a catalog entry. Reference data (brand, category, sub-category,
// segment, SKU) is stored by id and joined for display.
type Product struct {
	ID                   int       `db:"id" json:"id"`
	Title                string    `db:"title" json:"title"`
	SkuID                int       `db:"sku_id" json:"skuId"`
	BrandID              int       `db:"brand_id" json:"brandId"`
	CategoryID           int       `db:"category_id" json:"categoryId"`
	SubCategoryID        int       `db:"sub_category_id" json:"subCategoryId"`
	SegmentID            *int      `db:"segment_id" json:"segmentId,omitempty"`
	GlobalWholesalePrice float64   `db:"global_wholesale_price" json:"globalWholesalePrice"`
	Quantity             int       `db:"quantity" json:"quantity"`
	CreatedAt            time.Time `db:"created_at" json:"-"`
	UpdatedAt            time.Time `db:"updated_at" json:"updatedAt"`
}

// ProductDetail is a product joined with its reference-data names. This is
// the shape the pricing profile manager resolves products into and the shape
// the listing endpoints return.
type ProductDetail struct {
	ID                   int     `db:"id" json:"id"`
	Title                string  `db:"title" json:"title"`
	SkuCode              string  `db:"sku_code" json:"skuCode"`
	BrandName            string  `db:"brand_name" json:"brand"`
	CategoryName         string  `db:"category_name" json:"category"`
	SubCategoryName      string  `db:"sub_category_name" json:"subCategory"`
	SegmentName          string  `db:"segment_name" json:"segment"`
	GlobalWholesalePrice float64 `db:"global_wholesale_price" json:"globalWholesalePrice"`
	Quantity             int     `db:"quantity" json:"quantity"`
}
