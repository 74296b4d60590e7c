package repository

import (
	"github.com/jmoiron/sqlx"

	"github.com/pricebook/pricing_api/internal/models"
)

// ReferenceRepository handles the product reference data tables
// (brands, categories, sub-categories, segments, SKUs).
type ReferenceRepository struct {
	db *sqlx.DB
}

// NewReferenceRepository creates a new ReferenceRepository.
func NewReferenceRepository(db *sqlx.DB) *ReferenceRepository {
	return &ReferenceRepository{db: db}
}

func (r *ReferenceRepository) listNamed(table string) ([]models.ReferenceItem, error) {
	q := `SELECT id, name, created_at, updated_at FROM ` + table + ` ORDER BY name`
	var items []models.ReferenceItem
	if err := r.db.Select(&items, q); err != nil {
		return nil, err
	}
	return items, nil
}

// ListBrands returns all brands ordered by name.
func (r *ReferenceRepository) ListBrands() ([]models.ReferenceItem, error) {
	return r.listNamed("brands")
}

// ListCategories returns all categories ordered by name.
func (r *ReferenceRepository) ListCategories() ([]models.ReferenceItem, error) {
	return r.listNamed("categories")
}

// ListSubCategories returns all sub-categories ordered by name.
func (r *ReferenceRepository) ListSubCategories() ([]models.ReferenceItem, error) {
	return r.listNamed("sub_categories")
}

// ListSegments returns all segments ordered by name.
func (r *ReferenceRepository) ListSegments() ([]models.ReferenceItem, error) {
	return r.listNamed("segments")
}

// ListSKUs returns all SKUs ordered by code.
func (r *ReferenceRepository) ListSKUs() ([]models.SKU, error) {
	const q = `SELECT id, sku_code, created_at, updated_at FROM skus ORDER BY sku_code`
	var skus []models.SKU
	if err := r.db.Select(&skus, q); err != nil {
		return nil, err
	}
	return skus, nil
}
