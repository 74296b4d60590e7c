package repository

import (
	"database/sql"

	"github.com/jmoiron/sqlx"

	"github.com/pricebook/pricing_api/internal/models"
)

// PricingProfileRepository handles data access for pricing profiles and
// their per-product price rows.
type PricingProfileRepository struct {
	db *sqlx.DB
}

// NewPricingProfileRepository creates a new PricingProfileRepository.
func NewPricingProfileRepository(db *sqlx.DB) *PricingProfileRepository {
	return &PricingProfileRepository{db: db}
}

// Create inserts a profile and fills in its id and timestamps.
func (r *PricingProfileRepository) Create(profile *models.PricingProfile) error {
	const q = `
		INSERT INTO pricing_profiles (name, adjustment_type, adjustment_value, increment_type)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at`

	return r.db.QueryRowx(q,
		profile.Name,
		profile.AdjustmentType,
		profile.AdjustmentValue,
		profile.IncrementType,
	).Scan(&profile.ID, &profile.CreatedAt, &profile.UpdatedAt)
}

// GetAll returns every profile, most recently created first.
func (r *PricingProfileRepository) GetAll() ([]models.PricingProfile, error) {
	const q = `SELECT * FROM pricing_profiles ORDER BY created_at DESC`
	var profiles []models.PricingProfile
	if err := r.db.Select(&profiles, q); err != nil {
		return nil, err
	}
	return profiles, nil
}

// GetByID returns a single profile by id.
func (r *PricingProfileRepository) GetByID(id int) (*models.PricingProfile, error) {
	const q = `SELECT * FROM pricing_profiles WHERE id = $1 LIMIT 1`
	var p models.PricingProfile
	if err := r.db.Get(&p, q, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, sql.ErrNoRows
		}
		return nil, err
	}
	return &p, nil
}

// GetByName returns a profile by its unique name, or nil when absent.
func (r *PricingProfileRepository) GetByName(name string) (*models.PricingProfile, error) {
	const q = `SELECT * FROM pricing_profiles WHERE name = $1 LIMIT 1`
	var p models.PricingProfile
	if err := r.db.Get(&p, q, name); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

// Update persists the profile's mutable fields and refreshes updated_at.
func (r *PricingProfileRepository) Update(profile *models.PricingProfile) error {
	const q = `
		UPDATE pricing_profiles
		SET name = $1, adjustment_type = $2, adjustment_value = $3, increment_type = $4, updated_at = NOW()
		WHERE id = $5
		RETURNING updated_at`

	return r.db.QueryRowx(q,
		profile.Name,
		profile.AdjustmentType,
		profile.AdjustmentValue,
		profile.IncrementType,
		profile.ID,
	).Scan(&profile.UpdatedAt)
}

// Delete removes a profile by id. Its product rows must be removed first.
func (r *PricingProfileRepository) Delete(id int) error {
	const q = `DELETE FROM pricing_profiles WHERE id = $1`
	_, err := r.db.Exec(q, id)
	return err
}

// InsertProducts bulk-inserts line items for a profile.
func (r *PricingProfileRepository) InsertProducts(items []models.ProfileProduct) error {
	if len(items) == 0 {
		return nil
	}
	const q = `
		INSERT INTO pricing_profile_products (profile_id, product_id, based_on_price, new_price)
		VALUES (:profile_id, :product_id, :based_on_price, :new_price)`
	_, err := r.db.NamedExec(q, items)
	return err
}

// ReplaceProducts swaps a profile's line items for a freshly calculated set
// within one transaction, so a recompute is never partially visible.
func (r *PricingProfileRepository) ReplaceProducts(profileID int, items []models.ProfileProduct) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM pricing_profile_products WHERE profile_id = $1`, profileID); err != nil {
		return err
	}
	if len(items) > 0 {
		const q = `
			INSERT INTO pricing_profile_products (profile_id, product_id, based_on_price, new_price)
			VALUES (:profile_id, :product_id, :based_on_price, :new_price)`
		if _, err := tx.NamedExec(q, items); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// DeleteProducts removes all line items belonging to a profile.
func (r *PricingProfileRepository) DeleteProducts(profileID int) error {
	const q = `DELETE FROM pricing_profile_products WHERE profile_id = $1`
	_, err := r.db.Exec(q, profileID)
	return err
}

// GetProducts returns a profile's line items joined with product display
// fields. Products deleted after calculation still yield a row with empty
// display fields since the prices are snapshots.
func (r *PricingProfileRepository) GetProducts(profileID int) ([]models.ProfileProductDetail, error) {
	const q = `
		SELECT
			pp.id,
			pp.product_id,
			pp.based_on_price,
			pp.new_price,
			COALESCE(p.title, '') AS product_title,
			COALESCE(sk.sku_code, '') AS sku_code,
			COALESCE(c.name, '') AS category_name
		FROM pricing_profile_products pp
		LEFT JOIN products p ON pp.product_id = p.id
		LEFT JOIN skus sk ON p.sku_id = sk.id
		LEFT JOIN categories c ON p.category_id = c.id
		WHERE pp.profile_id = $1
		ORDER BY pp.id`

	var items []models.ProfileProductDetail
	if err := r.db.Select(&items, q, profileID); err != nil {
		return nil, err
	}
	return items, nil
}
