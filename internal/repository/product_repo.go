package repository

import (
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/pricebook/pricing_api/internal/models"
)

// ProductRepository handles data access for products.
type ProductRepository struct {
	db *sqlx.DB
}

// NewProductRepository creates a new ProductRepository.
func NewProductRepository(db *sqlx.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// Base SELECT joining products with their reference-data names. Segment is
// optional on products, the other lookups are NOT NULL; all are COALESCEd so
// rows scan into plain strings.
const productDetailSelect = `
	SELECT
		p.id,
		p.title,
		COALESCE(sk.sku_code, '') AS sku_code,
		COALESCE(b.name, '') AS brand_name,
		COALESCE(c.name, '') AS category_name,
		COALESCE(sc.name, '') AS sub_category_name,
		COALESCE(sg.name, '') AS segment_name,
		p.global_wholesale_price,
		p.quantity
	FROM products p
	LEFT JOIN skus sk ON p.sku_id = sk.id
	LEFT JOIN brands b ON p.brand_id = b.id
	LEFT JOIN categories c ON p.category_id = c.id
	LEFT JOIN sub_categories sc ON p.sub_category_id = sc.id
	LEFT JOIN segments sg ON p.segment_id = sg.id`

// ProductFilter holds filters for product listing. Empty fields are ignored.
// Search matches title or SKU code case-insensitively; the dropdown filters
// match reference names exactly.
type ProductFilter struct {
	Category    string
	SubCategory string
	Segment     string
	Brand       string
	SKU         string
	Search      string
}

// GetAll returns products joined with reference names, applying the filter.
func (r *ProductRepository) GetAll(filter *ProductFilter) ([]models.ProductDetail, error) {
	// Build dynamic WHERE clause
	where := ` WHERE 1=1`
	args := []interface{}{}
	argIdx := 1

	if filter != nil {
		if filter.Category != "" {
			where += fmt.Sprintf(" AND c.name = $%d", argIdx)
			args = append(args, filter.Category)
			argIdx++
		}
		if filter.SubCategory != "" {
			where += fmt.Sprintf(" AND sc.name = $%d", argIdx)
			args = append(args, filter.SubCategory)
			argIdx++
		}
		if filter.Segment != "" {
			where += fmt.Sprintf(" AND sg.name = $%d", argIdx)
			args = append(args, filter.Segment)
			argIdx++
		}
		if filter.Brand != "" {
			where += fmt.Sprintf(" AND b.name = $%d", argIdx)
			args = append(args, filter.Brand)
			argIdx++
		}
		if filter.SKU != "" {
			where += fmt.Sprintf(" AND sk.sku_code ILIKE $%d", argIdx)
			args = append(args, "%"+filter.SKU+"%")
			argIdx++
		}
		if filter.Search != "" {
			where += fmt.Sprintf(" AND (p.title ILIKE $%d OR sk.sku_code ILIKE $%d)", argIdx, argIdx)
			args = append(args, "%"+filter.Search+"%")
			argIdx++
		}
	}

	query := productDetailSelect + where + ` ORDER BY p.title`

	var products []models.ProductDetail
	if err := r.db.Select(&products, query, args...); err != nil {
		return nil, err
	}
	return products, nil
}

// GetByIDs returns the subset of the requested products that exist, joined
// with their display names. Missing ids are simply absent from the result.
func (r *ProductRepository) GetByIDs(ids []int) ([]models.ProductDetail, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query, args, err := sqlx.In(productDetailSelect+` WHERE p.id IN (?) ORDER BY p.id`, ids)
	if err != nil {
		return nil, err
	}
	query = r.db.Rebind(query)

	var products []models.ProductDetail
	if err := r.db.Select(&products, query, args...); err != nil {
		return nil, err
	}
	return products, nil
}

// GetByID returns a single product row by id.
func (r *ProductRepository) GetByID(id int) (*models.Product, error) {
	const q = `SELECT * FROM products WHERE id = $1 LIMIT 1`
	var p models.Product
	if err := r.db.Get(&p, q, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, sql.ErrNoRows
		}
		return nil, err
	}
	return &p, nil
}
