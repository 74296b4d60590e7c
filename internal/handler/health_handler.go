package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"

	"github.com/pricebook/pricing_api/internal/utils"
)

// HealthHandler reports service and database health.
type HealthHandler struct {
	db *sqlx.DB
}

// NewHealthHandler constructs a HealthHandler.
func NewHealthHandler(db *sqlx.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

// GetHealth handles GET /v1/health
func (h *HealthHandler) GetHealth(c *gin.Context) {
	dbStatus := "up"
	if err := h.db.Ping(); err != nil {
		dbStatus = "down"
	}

	status := 200
	if dbStatus != "up" {
		status = 503
	}

	utils.Success(c, status, "Health check", gin.H{
		"status":   "ok",
		"database": dbStatus,
	})
}
