package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/pricebook/pricing_api/internal/service"
	"github.com/pricebook/pricing_api/internal/utils"
)

// PricingProfileHandler handles pricing profile HTTP endpoints.
type PricingProfileHandler struct {
	profileService *service.PricingProfileService
}

// NewPricingProfileHandler constructs a PricingProfileHandler.
func NewPricingProfileHandler(profileService *service.PricingProfileService) *PricingProfileHandler {
	return &PricingProfileHandler{profileService: profileService}
}

// CreateProfile handles POST /v1/pricing-profiles
func (h *PricingProfileHandler) CreateProfile(c *gin.Context) {
	var req service.CreateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid request body: name, adjustmentType, adjustmentValue, incrementType and productIds are required")
		return
	}

	profile, err := h.profileService.CreateProfile(c.Request.Context(), &req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	utils.Success(c, 201, "Pricing profile created successfully", profile)
}

// ListProfiles handles GET /v1/pricing-profiles
func (h *PricingProfileHandler) ListProfiles(c *gin.Context) {
	profiles, err := h.profileService.GetAllProfiles(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}

	utils.Success(c, 200, "Pricing profiles retrieved successfully", profiles)
}

// GetProfile handles GET /v1/pricing-profiles/:id
func (h *PricingProfileHandler) GetProfile(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, 400, "INVALID_ID", "Invalid profile ID")
		return
	}

	profile, err := h.profileService.GetProfileByID(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}

	utils.Success(c, 200, "Pricing profile retrieved successfully", profile)
}

// UpdateProfile handles PUT /v1/pricing-profiles/:id
func (h *PricingProfileHandler) UpdateProfile(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, 400, "INVALID_ID", "Invalid profile ID")
		return
	}

	var req service.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid request body")
		return
	}

	profile, err := h.profileService.UpdateProfile(c.Request.Context(), id, &req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	utils.Success(c, 200, "Pricing profile updated successfully", profile)
}

// DeleteProfile handles DELETE /v1/pricing-profiles/:id
func (h *PricingProfileHandler) DeleteProfile(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, 400, "INVALID_ID", "Invalid profile ID")
		return
	}

	if err := h.profileService.DeleteProfile(c.Request.Context(), id); err != nil {
		h.respondError(c, err)
		return
	}

	utils.Success(c, 200, "Pricing profile deleted successfully", gin.H{"deleted": true})
}

// respondError maps service errors to the response envelope. Validation and
// not-found conditions carry their detail through; anything else is reported
// generically and logged.
func (h *PricingProfileHandler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, utils.ErrProfileNotFound):
		utils.Error(c, 404, "PROFILE_NOT_FOUND", "Pricing profile not found")
	case errors.Is(err, utils.ErrNoProductsFound):
		utils.Error(c, 400, "NO_PRODUCTS_FOUND", "No products found for the provided product IDs")
	case errors.Is(err, utils.ErrProfileNameExists):
		utils.Error(c, 400, "PROFILE_NAME_EXISTS", "A pricing profile with this name already exists")
	case errors.Is(err, utils.ErrInvalidProductBasePrice):
		utils.Error(c, 400, "INVALID_PRODUCT_BASE_PRICE", err.Error())
	case errors.Is(err, utils.ErrPriceCalculationFailed):
		utils.Error(c, 400, "PRICE_CALCULATION_FAILED", err.Error())
	case errors.Is(err, utils.ErrInvalidAdjustmentType):
		utils.Error(c, 400, "INVALID_ADJUSTMENT_TYPE", "adjustmentType must be 'fixed' or 'dynamic'")
	case errors.Is(err, utils.ErrInvalidIncrementType):
		utils.Error(c, 400, "INVALID_INCREMENT_TYPE", "incrementType must be 'increase' or 'decrease'")
	case err.Error() == "profile name is required":
		utils.Error(c, 400, "INVALID_REQUEST", err.Error())
	default:
		log.Error().Err(err).Msg("pricing profile operation failed")
		utils.Error(c, 500, "INTERNAL_ERROR", "Pricing profile operation failed")
	}
}
