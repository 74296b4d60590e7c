package handler

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pricebook/pricing_api/internal/models"
	"github.com/pricebook/pricing_api/internal/service"
	"github.com/pricebook/pricing_api/internal/utils"
)

type stubCatalog struct {
	products map[int]models.ProductDetail
}

func (s *stubCatalog) GetByIDs(ids []int) ([]models.ProductDetail, error) {
	var out []models.ProductDetail
	for _, id := range ids {
		if p, ok := s.products[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

type stubStore struct {
	nextID   int
	profiles map[int]*models.PricingProfile
	items    map[int][]models.ProfileProduct
	catalog  *stubCatalog
}

func newStubStore(catalog *stubCatalog) *stubStore {
	return &stubStore{
		nextID:   1,
		profiles: make(map[int]*models.PricingProfile),
		items:    make(map[int][]models.ProfileProduct),
		catalog:  catalog,
	}
}

func (s *stubStore) Create(profile *models.PricingProfile) error {
	profile.ID = s.nextID
	s.nextID++
	profile.CreatedAt = time.Now()
	profile.UpdatedAt = profile.CreatedAt
	cp := *profile
	s.profiles[profile.ID] = &cp
	return nil
}

func (s *stubStore) GetAll() ([]models.PricingProfile, error) {
	var out []models.PricingProfile
	for _, p := range s.profiles {
		out = append(out, *p)
	}
	return out, nil
}

func (s *stubStore) GetByID(id int) (*models.PricingProfile, error) {
	p, ok := s.profiles[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	cp := *p
	return &cp, nil
}

func (s *stubStore) GetByName(name string) (*models.PricingProfile, error) {
	for _, p := range s.profiles {
		if p.Name == name {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (s *stubStore) Update(profile *models.PricingProfile) error {
	profile.UpdatedAt = time.Now()
	cp := *profile
	s.profiles[profile.ID] = &cp
	return nil
}

func (s *stubStore) Delete(id int) error {
	delete(s.profiles, id)
	return nil
}

func (s *stubStore) InsertProducts(items []models.ProfileProduct) error {
	for _, it := range items {
		s.items[it.ProfileID] = append(s.items[it.ProfileID], it)
	}
	return nil
}

func (s *stubStore) ReplaceProducts(profileID int, items []models.ProfileProduct) error {
	s.items[profileID] = append([]models.ProfileProduct(nil), items...)
	return nil
}

func (s *stubStore) DeleteProducts(profileID int) error {
	delete(s.items, profileID)
	return nil
}

func (s *stubStore) GetProducts(profileID int) ([]models.ProfileProductDetail, error) {
	var out []models.ProfileProductDetail
	for _, it := range s.items[profileID] {
		d := models.ProfileProductDetail{
			ID:           it.ID,
			ProductID:    it.ProductID,
			BasedOnPrice: it.BasedOnPrice,
			NewPrice:     it.NewPrice,
		}
		if p, ok := s.catalog.products[it.ProductID]; ok {
			d.ProductTitle = p.Title
			d.SkuCode = p.SkuCode
			d.CategoryName = p.CategoryName
		}
		out = append(out, d)
	}
	return out, nil
}

func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	catalog := &stubCatalog{products: map[int]models.ProductDetail{
		1: {ID: 1, Title: "High Garden Pinot Noir 2021", SkuCode: "HGVPIN216", CategoryName: "Alcoholic Beverage", GlobalWholesalePrice: 279.06},
		2: {ID: 2, Title: "Koyama Methode Brut Nature NV", SkuCode: "KOYBRUNV6", CategoryName: "Alcoholic Beverage", GlobalWholesalePrice: 120.00},
	}}
	svc := service.NewPricingProfileService(newStubStore(catalog), catalog, nil)
	h := NewPricingProfileHandler(svc)

	router := gin.New()
	router.POST("/v1/pricing-profiles", h.CreateProfile)
	router.GET("/v1/pricing-profiles", h.ListProfiles)
	router.GET("/v1/pricing-profiles/:id", h.GetProfile)
	router.PUT("/v1/pricing-profiles/:id", h.UpdateProfile)
	router.DELETE("/v1/pricing-profiles/:id", h.DeleteProfile)
	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body any) (*httptest.ResponseRecorder, utils.Response) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	var resp utils.Response
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	return rr, resp
}

func TestCreateProfileEndpoint(t *testing.T) {
	router := setupRouter(t)

	rr, resp := doJSON(t, router, http.MethodPost, "/v1/pricing-profiles", gin.H{
		"name":            "Summer Sale",
		"adjustmentType":  "fixed",
		"adjustmentValue": 20,
		"incrementType":   "increase",
		"productIds":      []int{1, 2},
	})

	assert.Equal(t, http.StatusCreated, rr.Code)
	assert.True(t, resp.Success)

	data, err := json.Marshal(resp.Data)
	require.NoError(t, err)
	var created service.ProfileResponse
	require.NoError(t, json.Unmarshal(data, &created))

	assert.Equal(t, "Summer Sale", created.Name)
	require.Len(t, created.PricingTable, 2)
	assert.InDelta(t, 299.06, created.PricingTable[0].NewPrice, 1e-9)
	assert.InDelta(t, 140.00, created.PricingTable[1].NewPrice, 1e-9)
}

func TestCreateProfileValidation(t *testing.T) {
	router := setupRouter(t)

	t.Run("missing fields", func(t *testing.T) {
		rr, resp := doJSON(t, router, http.MethodPost, "/v1/pricing-profiles", gin.H{
			"name": "Broken",
		})
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.False(t, resp.Success)
		require.NotNil(t, resp.Error)
		assert.Equal(t, "INVALID_REQUEST", resp.Error.Code)
	})

	t.Run("unknown adjustment type rejected by binding", func(t *testing.T) {
		rr, _ := doJSON(t, router, http.MethodPost, "/v1/pricing-profiles", gin.H{
			"name":            "Broken",
			"adjustmentType":  "multiplier",
			"adjustmentValue": 20,
			"incrementType":   "increase",
			"productIds":      []int{1},
		})
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("no resolvable products", func(t *testing.T) {
		rr, resp := doJSON(t, router, http.MethodPost, "/v1/pricing-profiles", gin.H{
			"name":            "Ghost",
			"adjustmentType":  "fixed",
			"adjustmentValue": 20,
			"incrementType":   "increase",
			"productIds":      []int{99},
		})
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		require.NotNil(t, resp.Error)
		assert.Equal(t, "NO_PRODUCTS_FOUND", resp.Error.Code)
	})

	t.Run("decrease below zero", func(t *testing.T) {
		rr, resp := doJSON(t, router, http.MethodPost, "/v1/pricing-profiles", gin.H{
			"name":            "Too Deep",
			"adjustmentType":  "fixed",
			"adjustmentValue": 150,
			"incrementType":   "decrease",
			"productIds":      []int{2},
		})
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		require.NotNil(t, resp.Error)
		assert.Equal(t, "PRICE_CALCULATION_FAILED", resp.Error.Code)
	})
}

func TestCreateProfileDuplicateName(t *testing.T) {
	router := setupRouter(t)

	body := gin.H{
		"name":            "Summer Sale",
		"adjustmentType":  "fixed",
		"adjustmentValue": 20,
		"incrementType":   "increase",
		"productIds":      []int{1},
	}
	rr, _ := doJSON(t, router, http.MethodPost, "/v1/pricing-profiles", body)
	require.Equal(t, http.StatusCreated, rr.Code)

	rr, resp := doJSON(t, router, http.MethodPost, "/v1/pricing-profiles", body)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "PROFILE_NAME_EXISTS", resp.Error.Code)
}

func TestGetProfileEndpoint(t *testing.T) {
	router := setupRouter(t)

	t.Run("invalid id", func(t *testing.T) {
		rr, resp := doJSON(t, router, http.MethodGet, "/v1/pricing-profiles/abc", nil)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		require.NotNil(t, resp.Error)
		assert.Equal(t, "INVALID_ID", resp.Error.Code)
	})

	t.Run("not found", func(t *testing.T) {
		rr, resp := doJSON(t, router, http.MethodGet, "/v1/pricing-profiles/42", nil)
		assert.Equal(t, http.StatusNotFound, rr.Code)
		require.NotNil(t, resp.Error)
		assert.Equal(t, "PROFILE_NOT_FOUND", resp.Error.Code)
	})
}

func TestUpdateProfileEndpoint(t *testing.T) {
	router := setupRouter(t)

	rr, resp := doJSON(t, router, http.MethodPost, "/v1/pricing-profiles", gin.H{
		"name":            "Summer Sale",
		"adjustmentType":  "fixed",
		"adjustmentValue": 20,
		"incrementType":   "increase",
		"productIds":      []int{1, 2},
	})
	require.Equal(t, http.StatusCreated, rr.Code)

	data, err := json.Marshal(resp.Data)
	require.NoError(t, err)
	var created service.ProfileResponse
	require.NoError(t, json.Unmarshal(data, &created))

	rr, resp = doJSON(t, router, http.MethodPut, "/v1/pricing-profiles/1", gin.H{
		"adjustmentValue": 10,
		"adjustmentType":  "dynamic",
		"incrementType":   "decrease",
	})
	assert.Equal(t, http.StatusOK, rr.Code)

	data, err = json.Marshal(resp.Data)
	require.NoError(t, err)
	var updated service.ProfileResponse
	require.NoError(t, json.Unmarshal(data, &updated))

	require.Len(t, updated.PricingTable, 2)
	assert.InDelta(t, 251.15, updated.PricingTable[0].NewPrice, 1e-9)
	assert.InDelta(t, 108.00, updated.PricingTable[1].NewPrice, 1e-9)
}

func TestDeleteProfileEndpoint(t *testing.T) {
	router := setupRouter(t)

	rr, _ := doJSON(t, router, http.MethodPost, "/v1/pricing-profiles", gin.H{
		"name":            "Short Lived",
		"adjustmentType":  "fixed",
		"adjustmentValue": 5,
		"incrementType":   "increase",
		"productIds":      []int{1},
	})
	require.Equal(t, http.StatusCreated, rr.Code)

	rr, _ = doJSON(t, router, http.MethodDelete, "/v1/pricing-profiles/1", nil)
	assert.Equal(t, http.StatusOK, rr.Code)

	rr, resp := doJSON(t, router, http.MethodGet, "/v1/pricing-profiles/1", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "PROFILE_NOT_FOUND", resp.Error.Code)
}
