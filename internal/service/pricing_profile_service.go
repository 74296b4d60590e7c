package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/pricebook/pricing_api/internal/models"
	"github.com/pricebook/pricing_api/internal/pricing"
	"github.com/pricebook/pricing_api/internal/utils"
)

// ProductResolver resolves product ids to catalog rows with display fields.
// Ids that do not exist are simply absent from the result.
type ProductResolver interface {
	GetByIDs(ids []int) ([]models.ProductDetail, error)
}

// ProfileStore persists pricing profiles and their line items. The surrounding
// system binds it to a storage engine; the service never interprets storage
// errors beyond row absence.
type ProfileStore interface {
	Create(profile *models.PricingProfile) error
	GetAll() ([]models.PricingProfile, error)
	GetByID(id int) (*models.PricingProfile, error)
	GetByName(name string) (*models.PricingProfile, error)
	Update(profile *models.PricingProfile) error
	Delete(id int) error
	InsertProducts(items []models.ProfileProduct) error
	ReplaceProducts(profileID int, items []models.ProfileProduct) error
	DeleteProducts(profileID int) error
	GetProducts(profileID int) ([]models.ProfileProductDetail, error)
}

// TableCache caches computed pricing tables per profile. Optional.
type TableCache interface {
	Get(ctx context.Context, profileID int) ([]models.PricingTableRow, bool)
	Set(ctx context.Context, profileID int, rows []models.PricingTableRow)
	Invalidate(ctx context.Context, profileID int)
}

// PricingProfileService orchestrates pricing profiles: it resolves product
// base prices, runs the calculator per product, and keeps the profile row and
// its line items in sync. Calculation here is always strict — the batch
// fallback of pricing.CalculateBatch is never used for persisted prices.
type PricingProfileService struct {
	profiles ProfileStore
	products ProductResolver
	cache    TableCache
}

// NewPricingProfileService constructs a PricingProfileService. cache may be nil.
func NewPricingProfileService(profiles ProfileStore, products ProductResolver, cache TableCache) *PricingProfileService {
	return &PricingProfileService{profiles: profiles, products: products, cache: cache}
}

// CreateProfileRequest represents the request to create a pricing profile.
type CreateProfileRequest struct {
	Name            string                 `json:"name" binding:"required"`
	AdjustmentType  pricing.AdjustmentType `json:"adjustmentType" binding:"required,oneof=fixed dynamic"`
	AdjustmentValue float64                `json:"adjustmentValue" binding:"required,gt=0"`
	IncrementType   pricing.IncrementType  `json:"incrementType" binding:"required,oneof=increase decrease"`
	ProductIDs      []int                  `json:"productIds" binding:"required"`
}

// UpdateProfileRequest represents a partial profile update. Empty / nil
// fields keep their current values. A nil ProductIDs keeps the current
// product set; a non-nil one replaces it.
type UpdateProfileRequest struct {
	Name            string                 `json:"name"`
	AdjustmentType  pricing.AdjustmentType `json:"adjustmentType" binding:"omitempty,oneof=fixed dynamic"`
	AdjustmentValue *float64               `json:"adjustmentValue" binding:"omitempty,gt=0"`
	IncrementType   pricing.IncrementType  `json:"incrementType" binding:"omitempty,oneof=increase decrease"`
	ProductIDs      []int                  `json:"productIds"`
}

// ProfileResponse is a profile together with its line items and the
// denormalized pricing table.
type ProfileResponse struct {
	models.PricingProfile
	Products     []models.ProfileProductDetail `json:"products"`
	PricingTable []models.PricingTableRow      `json:"pricingTable"`
}

// CreateProfile creates a profile and one calculated line item per resolved
// product. Any unusable base price or calculator failure aborts the whole
// operation; nothing is persisted partially.
func (s *PricingProfileService) CreateProfile(ctx context.Context, req *CreateProfileRequest) (*ProfileResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, errors.New("profile name is required")
	}
	if err := validateAdjustment(req.AdjustmentType, req.IncrementType); err != nil {
		return nil, err
	}
	if len(req.ProductIDs) == 0 {
		return nil, utils.ErrNoProductsFound
	}

	existing, err := s.profiles.GetByName(name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, utils.ErrProfileNameExists
	}

	products, err := s.products.GetByIDs(req.ProductIDs)
	if err != nil {
		return nil, err
	}
	if len(products) == 0 {
		return nil, utils.ErrNoProductsFound
	}

	profile := &models.PricingProfile{
		Name:            name,
		AdjustmentType:  req.AdjustmentType,
		AdjustmentValue: req.AdjustmentValue,
		IncrementType:   req.IncrementType,
	}

	// Calculate everything before the first write.
	items, err := s.calculateItems(profile, products)
	if err != nil {
		return nil, err
	}

	if err := s.profiles.Create(profile); err != nil {
		return nil, err
	}
	for i := range items {
		items[i].ProfileID = profile.ID
	}
	if err := s.profiles.InsertProducts(items); err != nil {
		return nil, err
	}

	log.Info().
		Int("profile_id", profile.ID).
		Str("name", profile.Name).
		Int("products", len(items)).
		Msg("pricing profile created")

	return s.buildResponse(ctx, profile)
}

// GetAllProfiles returns every profile, most recent first, each with its
// pricing table re-derived from stored line items (never recalculated).
func (s *PricingProfileService) GetAllProfiles(ctx context.Context) ([]ProfileResponse, error) {
	profiles, err := s.profiles.GetAll()
	if err != nil {
		return nil, err
	}

	responses := make([]ProfileResponse, 0, len(profiles))
	for i := range profiles {
		resp, err := s.buildResponse(ctx, &profiles[i])
		if err != nil {
			return nil, err
		}
		responses = append(responses, *resp)
	}
	return responses, nil
}

// GetProfileByID returns one profile with its pricing table.
func (s *PricingProfileService) GetProfileByID(ctx context.Context, id int) (*ProfileResponse, error) {
	profile, err := s.getProfile(id)
	if err != nil {
		return nil, err
	}
	return s.buildResponse(ctx, profile)
}

// UpdateProfile applies a partial update. A name-only change touches
// metadata; any change to the adjustment parameters or the product set
// triggers a full recomputation that replaces every line item. updatedAt is
// refreshed either way.
func (s *PricingProfileService) UpdateProfile(ctx context.Context, id int, req *UpdateProfileRequest) (*ProfileResponse, error) {
	profile, err := s.getProfile(id)
	if err != nil {
		return nil, err
	}

	needsRecalc := req.AdjustmentType != "" ||
		req.AdjustmentValue != nil ||
		req.IncrementType != "" ||
		req.ProductIDs != nil

	// Merge: absent fields keep their stored values.
	if name := strings.TrimSpace(req.Name); name != "" && name != profile.Name {
		existing, err := s.profiles.GetByName(name)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.ID != id {
			return nil, utils.ErrProfileNameExists
		}
		profile.Name = name
	}
	if req.AdjustmentType != "" {
		profile.AdjustmentType = req.AdjustmentType
	}
	if req.AdjustmentValue != nil {
		profile.AdjustmentValue = *req.AdjustmentValue
	}
	if req.IncrementType != "" {
		profile.IncrementType = req.IncrementType
	}
	if err := validateAdjustment(profile.AdjustmentType, profile.IncrementType); err != nil {
		return nil, err
	}

	// Resolve and recalculate before writing anything, so a failed
	// recomputation leaves both the profile and its line items untouched.
	var items []models.ProfileProduct
	if needsRecalc {
		productIDs := req.ProductIDs
		if productIDs == nil {
			current, err := s.profiles.GetProducts(id)
			if err != nil {
				return nil, err
			}
			for _, item := range current {
				productIDs = append(productIDs, item.ProductID)
			}
		}
		if len(productIDs) == 0 {
			return nil, utils.ErrNoProductsFound
		}

		products, err := s.products.GetByIDs(productIDs)
		if err != nil {
			return nil, err
		}
		if len(products) == 0 {
			return nil, utils.ErrNoProductsFound
		}

		items, err = s.calculateItems(profile, products)
		if err != nil {
			return nil, err
		}
		for i := range items {
			items[i].ProfileID = id
		}
	}

	if err := s.profiles.Update(profile); err != nil {
		return nil, err
	}
	if needsRecalc {
		if err := s.profiles.ReplaceProducts(id, items); err != nil {
			return nil, err
		}
		log.Info().
			Int("profile_id", id).
			Int("products", len(items)).
			Msg("pricing profile recalculated")
	}

	if s.cache != nil {
		s.cache.Invalidate(ctx, id)
	}
	return s.buildResponse(ctx, profile)
}

// DeleteProfile removes a profile and all of its line items.
func (s *PricingProfileService) DeleteProfile(ctx context.Context, id int) error {
	if _, err := s.getProfile(id); err != nil {
		return err
	}

	// Line items first, for referential consistency.
	if err := s.profiles.DeleteProducts(id); err != nil {
		return err
	}
	if err := s.profiles.Delete(id); err != nil {
		return err
	}

	if s.cache != nil {
		s.cache.Invalidate(ctx, id)
	}
	log.Info().Int("profile_id", id).Msg("pricing profile deleted")
	return nil
}

func (s *PricingProfileService) getProfile(id int) (*models.PricingProfile, error) {
	profile, err := s.profiles.GetByID(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, utils.ErrProfileNotFound
		}
		return nil, err
	}
	return profile, nil
}

// calculateItems runs the strict calculator once per resolved product. The
// first unusable base price or calculation failure aborts the set, naming
// the offending product.
func (s *PricingProfileService) calculateItems(profile *models.PricingProfile, products []models.ProductDetail) ([]models.ProfileProduct, error) {
	items := make([]models.ProfileProduct, 0, len(products))
	for _, p := range products {
		if p.GlobalWholesalePrice <= 0 {
			return nil, fmt.Errorf("%w: product %q has invalid base price %.2f",
				utils.ErrInvalidProductBasePrice, p.Title, p.GlobalWholesalePrice)
		}

		newPrice, err := pricing.Calculate(pricing.Request{
			BasePrice:       p.GlobalWholesalePrice,
			AdjustmentType:  profile.AdjustmentType,
			AdjustmentValue: profile.AdjustmentValue,
			IncrementType:   profile.IncrementType,
		})
		if err != nil {
			return nil, fmt.Errorf("%w: product %q: %w",
				utils.ErrPriceCalculationFailed, p.Title, err)
		}

		items = append(items, models.ProfileProduct{
			ProductID:    p.ID,
			BasedOnPrice: p.GlobalWholesalePrice,
			NewPrice:     newPrice,
		})
	}
	return items, nil
}

// buildResponse loads a profile's line items and derives the pricing table,
// going through the cache when one is configured.
func (s *PricingProfileService) buildResponse(ctx context.Context, profile *models.PricingProfile) (*ProfileResponse, error) {
	items, err := s.profiles.GetProducts(profile.ID)
	if err != nil {
		return nil, err
	}

	var table []models.PricingTableRow
	cached := false
	if s.cache != nil {
		table, cached = s.cache.Get(ctx, profile.ID)
	}
	if !cached {
		table = pricingTable(items)
		if s.cache != nil {
			s.cache.Set(ctx, profile.ID, table)
		}
	}

	return &ProfileResponse{
		PricingProfile: *profile,
		Products:       items,
		PricingTable:   table,
	}, nil
}

// pricingTable derives the presentation view from stored line items. The
// adjustment column is the signed delta, negative for decreases.
func pricingTable(items []models.ProfileProductDetail) []models.PricingTableRow {
	rows := make([]models.PricingTableRow, 0, len(items))
	for _, item := range items {
		rows = append(rows, models.PricingTableRow{
			ID:             item.ProductID,
			Title:          item.ProductTitle,
			Sku:            item.SkuCode,
			Category:       item.CategoryName,
			WholesalePrice: item.BasedOnPrice,
			Adjustment:     item.NewPrice - item.BasedOnPrice,
			NewPrice:       item.NewPrice,
		})
	}
	return rows
}

func validateAdjustment(adjustmentType pricing.AdjustmentType, incrementType pricing.IncrementType) error {
	if adjustmentType != pricing.AdjustmentFixed && adjustmentType != pricing.AdjustmentDynamic {
		return utils.ErrInvalidAdjustmentType
	}
	if incrementType != pricing.IncrementIncrease && incrementType != pricing.IncrementDecrease {
		return utils.ErrInvalidIncrementType
	}
	return nil
}
