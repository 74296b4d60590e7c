package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/pricebook/pricing_api/internal/repository"
	"github.com/pricebook/pricing_api/internal/service"
	"github.com/pricebook/pricing_api/internal/utils"
)

// ProductHandler handles product catalog HTTP endpoints.
type ProductHandler struct {
	productService *service.ProductService
}

// NewProductHandler constructs a ProductHandler.
func NewProductHandler(productService *service.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// GetProducts handles GET /v1/products with optional filters and search.
func (h *ProductHandler) GetProducts(c *gin.Context) {
	filter := &repository.ProductFilter{
		Category:    c.Query("category"),
		SubCategory: c.Query("subCategory"),
		Segment:     c.Query("segment"),
		Brand:       c.Query("brand"),
		SKU:         c.Query("sku"),
		Search:      c.Query("search"),
	}

	products, err := h.productService.GetProducts(filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to list products")
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to get products")
		return
	}

	utils.Success(c, 200, "Products retrieved successfully", gin.H{
		"products": products,
	})
}

// GetBrands handles GET /v1/products/brands
func (h *ProductHandler) GetBrands(c *gin.Context) {
	brands, err := h.productService.GetBrands()
	if err != nil {
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to get brands")
		return
	}
	utils.Success(c, 200, "Brands retrieved successfully", brands)
}

// GetCategories handles GET /v1/products/categories
func (h *ProductHandler) GetCategories(c *gin.Context) {
	categories, err := h.productService.GetCategories()
	if err != nil {
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to get categories")
		return
	}
	utils.Success(c, 200, "Categories retrieved successfully", categories)
}

// GetSubCategories handles GET /v1/products/sub-categories
func (h *ProductHandler) GetSubCategories(c *gin.Context) {
	subCategories, err := h.productService.GetSubCategories()
	if err != nil {
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to get sub-categories")
		return
	}
	utils.Success(c, 200, "Sub-categories retrieved successfully", subCategories)
}

// GetSegments handles GET /v1/products/segments
func (h *ProductHandler) GetSegments(c *gin.Context) {
	segments, err := h.productService.GetSegments()
	if err != nil {
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to get segments")
		return
	}
	utils.Success(c, 200, "Segments retrieved successfully", segments)
}

// GetSKUs handles GET /v1/products/skus
func (h *ProductHandler) GetSKUs(c *gin.Context) {
	skus, err := h.productService.GetSKUs()
	if err != nil {
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to get SKUs")
		return
	}
	utils.Success(c, 200, "SKUs retrieved successfully", skus)
}
