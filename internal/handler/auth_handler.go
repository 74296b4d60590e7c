package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/pricebook/pricing_api/internal/middleware"
	"github.com/pricebook/pricing_api/internal/service"
	"github.com/pricebook/pricing_api/internal/utils"
)

// AuthHandler handles admin authentication endpoints.
type AuthHandler struct {
	authService *service.AdminAuthService
	rateLimiter *middleware.InvalidAuthRateLimiter
}

// NewAuthHandler constructs an AuthHandler.
func NewAuthHandler(authService *service.AdminAuthService, rateLimiter *middleware.InvalidAuthRateLimiter) *AuthHandler {
	return &AuthHandler{authService: authService, rateLimiter: rateLimiter}
}

// Login handles POST /v1/admin/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid request body")
		return
	}

	if !h.rateLimiter.Allow(c.ClientIP()) {
		utils.Error(c, 429, "TOO_MANY_ATTEMPTS", "Too many failed login attempts, try again later")
		return
	}

	token, err := h.authService.Login(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, utils.ErrAccountInactive) {
			utils.Error(c, 401, "ACCOUNT_INACTIVE", "Account is inactive")
			return
		}
		utils.Error(c, 401, "INVALID_CREDENTIALS", "Invalid email or password")
		return
	}

	h.rateLimiter.Reset(c.ClientIP())
	utils.Success(c, 200, "Login successful", gin.H{
		"token": token,
	})
}
