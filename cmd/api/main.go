package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/pricebook/pricing_api/internal/cache"
	"github.com/pricebook/pricing_api/internal/config"
	"github.com/pricebook/pricing_api/internal/database"
	"github.com/pricebook/pricing_api/internal/handler"
	"github.com/pricebook/pricing_api/internal/middleware"
	"github.com/pricebook/pricing_api/internal/repository"
	"github.com/pricebook/pricing_api/internal/service"
)

// main is the application entrypoint for the pricing API.
func main() {
	// 1. Load config
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// 2. Setup logger
	setupLogger(cfg.Env)
	log.Info().Str("env", cfg.Env).Msg("starting pricing api")

	// 3. Connect database
	db, err := database.Connect(&cfg.DB)
	if err != nil {
		log.Error().Err(err).Msg("database connection failed")
		fmt.Fprintf(os.Stderr, "database connection failed: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	// 3a. Run migrations
	if err := runMigrations(db.DB); err != nil {
		log.Error().Err(err).Msg("migration failed")
		fmt.Fprintf(os.Stderr, "migration failed: %v\n", err)
		os.Exit(1)
	}
	log.Info().Msg("migrations completed successfully")

	// 3b. Connect to Redis
	redisClient, err := cache.NewRedisClient(&cfg.Redis)
	if err != nil {
		log.Error().Err(err).Msg("redis connection failed")
		fmt.Fprintf(os.Stderr, "redis connection failed: %v\n", err)
		os.Exit(1)
	}
	defer redisClient.Close()
	log.Info().Msg("redis connected successfully")

	// 3c. Initialize pricing table cache
	tableCache := cache.NewPricingTableCache(redisClient, cfg.Cache.PricingTableTTL)

	// 4. Initialize repositories
	productRepo := repository.NewProductRepository(db)
	referenceRepo := repository.NewReferenceRepository(db)
	profileRepo := repository.NewPricingProfileRepository(db)
	adminRepo := repository.NewAdminUserRepository(db)

	// 5. Initialize services
	productSvc := service.NewProductService(productRepo, referenceRepo)
	profileSvc := service.NewPricingProfileService(profileRepo, productRepo, tableCache)
	adminAuthSvc := service.NewAdminAuthService(adminRepo)

	// 6. Initialize handlers
	authLimiter := middleware.NewInvalidAuthRateLimiter()
	handlers := &Handlers{
		Health:  handler.NewHealthHandler(db),
		Product: handler.NewProductHandler(productSvc),
		Profile: handler.NewPricingProfileHandler(profileSvc),
		Auth:    handler.NewAuthHandler(adminAuthSvc, authLimiter),
	}

	// 7. Initialize middleware
	jwtMw := middleware.NewJWTMiddleware()

	// 8. Setup router
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.LoggingMiddleware())
	setupRoutes(router, handlers, jwtMw)

	// 9. Start HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// 10. Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	// 11. Shutdown HTTP server with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}
	log.Info().Msg("Server exited")
}

// Handlers groups all HTTP handlers used by the server.
type Handlers struct {
	Health  *handler.HealthHandler
	Product *handler.ProductHandler
	Profile *handler.PricingProfileHandler
	Auth    *handler.AuthHandler
}

// setupRoutes registers all routes.
func setupRoutes(router *gin.Engine, handlers *Handlers, jwtMiddleware *middleware.JWTMiddleware) {
	router.GET("/v1/health", handlers.Health.GetHealth)

	// Catalog routes (read-only)
	catalog := router.Group("/v1")
	{
		catalog.GET("/products", handlers.Product.GetProducts)
		catalog.GET("/brands", handlers.Product.GetBrands)
		catalog.GET("/categories", handlers.Product.GetCategories)
		catalog.GET("/sub-categories", handlers.Product.GetSubCategories)
		catalog.GET("/segments", handlers.Product.GetSegments)
		catalog.GET("/skus", handlers.Product.GetSKUs)
	}

	// Pricing profile reads are public, mutations require an admin token
	router.GET("/v1/pricing-profiles", handlers.Profile.ListProfiles)
	router.GET("/v1/pricing-profiles/:id", handlers.Profile.GetProfile)

	profiles := router.Group("/v1/pricing-profiles")
	profiles.Use(jwtMiddleware.Handle())
	{
		profiles.POST("", handlers.Profile.CreateProfile)
		profiles.PUT("/:id", handlers.Profile.UpdateProfile)
		profiles.DELETE("/:id", handlers.Profile.DeleteProfile)
	}

	// Admin routes
	admin := router.Group("/v1/admin")
	admin.POST("/auth/login", handlers.Auth.Login)
}

// runMigrations runs database migrations using golang-migrate.
func runMigrations(db *sql.DB) error {
	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("could not create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(
		"file://migrations",
		"postgres", driver)
	if err != nil {
		return fmt.Errorf("could not create migration instance: %w", err)
	}

	// Run migrations
	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("could not run migrations: %w", err)
	}

	return nil
}

func setupLogger(env string) {
	if env == "production" {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
}
