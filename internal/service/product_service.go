package service

import (
	"github.com/pricebook/pricing_api/internal/models"
	"github.com/pricebook/pricing_api/internal/repository"
)

// ProductService provides catalog read operations: filtered listing, search,
// and the reference data used by the storefront filter dropdowns.
type ProductService struct {
	productRepo   *repository.ProductRepository
	referenceRepo *repository.ReferenceRepository
}

// NewProductService constructs a ProductService.
func NewProductService(productRepo *repository.ProductRepository, referenceRepo *repository.ReferenceRepository) *ProductService {
	return &ProductService{productRepo: productRepo, referenceRepo: referenceRepo}
}

// GetProducts returns products joined with reference names. All filters are
// optional; search matches title or SKU code.
func (s *ProductService) GetProducts(filter *repository.ProductFilter) ([]models.ProductDetail, error) {
	return s.productRepo.GetAll(filter)
}

// GetBrands returns all brands.
func (s *ProductService) GetBrands() ([]models.ReferenceItem, error) {
	return s.referenceRepo.ListBrands()
}

// GetCategories returns all categories.
func (s *ProductService) GetCategories() ([]models.ReferenceItem, error) {
	return s.referenceRepo.ListCategories()
}

// GetSubCategories returns all sub-categories.
func (s *ProductService) GetSubCategories() ([]models.ReferenceItem, error) {
	return s.referenceRepo.ListSubCategories()
}

// GetSegments returns all segments.
func (s *ProductService) GetSegments() ([]models.ReferenceItem, error) {
	return s.referenceRepo.ListSegments()
}

// GetSKUs returns all SKU codes.
func (s *ProductService) GetSKUs() ([]models.SKU, error) {
	return s.referenceRepo.ListSKUs()
}
