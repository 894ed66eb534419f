package main

import (
	"context"
	"fmt"
	"log"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"

	"dinehub/internal/caching"
	"dinehub/internal/config"
	"dinehub/internal/handlers"
	"dinehub/internal/jobs"
	"dinehub/internal/middleware"
	"dinehub/internal/models"
	"dinehub/internal/repositories"
	"dinehub/internal/services"
	"dinehub/pkg/database"
)

const version = "1.0.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	pool, err := database.NewPool(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	// Object storage for assets
	minioSvc, err := services.NewMinioService(
		cfg.Minio.Endpoint, cfg.Minio.AccessKey, cfg.Minio.SecretKey, cfg.Minio.UseSSL)
	if err != nil {
		log.Fatalf("Failed to initialize MinIO service: %v", err)
	}
	if err := minioSvc.EnsureBucketExists(context.Background(), cfg.Minio.Bucket); err != nil {
		log.Printf("WARNING: asset bucket check failed: %v", err)
	}

	// Theme token cache
	cacheSvc := caching.NewRedisCacheService(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)

	// Repositories
	tenantRepo := repositories.NewTenantRepo(pool)
	locationRepo := repositories.NewLocationRepo(pool)
	tableRepo := repositories.NewTableRepo(pool)
	assetRepo := repositories.NewAssetRepo(pool)
	themeRepo := repositories.NewThemeRepo(pool)

	// Services
	tenantSvc := services.NewTenantService(tenantRepo)
	locationSvc := services.NewLocationService(locationRepo, tenantRepo)
	tableSvc := services.NewTableService(tableRepo, locationRepo)
	assetSvc := services.NewAssetService(assetRepo, minioSvc, cfg.Minio.Bucket)
	themeSvc := services.NewThemeService(themeRepo, cacheSvc)

	// Access guard: the role resolver is pluggable; a signed token resolver
	// replaces the header read when a secret is configured.
	var resolver middleware.RoleResolver = middleware.NewHeaderRoleResolver(cfg.RBAC.DevDefaultRole)
	if cfg.RBAC.JWTSecret != "" {
		resolver = middleware.NewJWTRoleResolver(cfg.RBAC.JWTSecret)
	}
	guard := middleware.NewRBACMiddleware(resolver)

	// Handlers
	tenantHandlers := handlers.NewTenantHandlers(tenantSvc)
	locationHandlers := handlers.NewLocationHandlers(locationSvc)
	tableHandlers := handlers.NewTableHandlers(tableSvc)
	assetHandlers := handlers.NewAssetHandlers(assetSvc)
	themeHandlers := handlers.NewThemeHandlers(themeSvc)
	healthHandlers := handlers.NewHealthHandlers(pool, cacheSvc, minioSvc)

	// Background asset orphan sweeper
	sweeper := jobs.NewAssetSweeper(assetRepo, minioSvc, cfg.Minio.Bucket)
	scheduler, err := jobs.StartScheduler(sweeper)
	if err != nil {
		log.Fatalf("Failed to start job scheduler: %v", err)
	}
	defer func() {
		if err := scheduler.Shutdown(); err != nil {
			log.Printf("Scheduler shutdown failed: %v", err)
		}
	}()

	e := echo.New()

	// Global middleware
	e.Use(echoMiddleware.Logger())
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.CORS())
	e.Use(echoMiddleware.RemoveTrailingSlash())

	// Health endpoints (no role required)
	e.GET("/health", healthHandlers.HealthCheck)
	e.GET("/health/ready", healthHandlers.ReadinessCheck)

	v1 := e.Group("/v1")
	versionMiddleware := middleware.NewVersionMiddleware()
	v1.Use(versionMiddleware.VersionHeader("v1"))

	// Public storefront endpoints
	v1.GET("/tenants/resolve/by-domain", tenantHandlers.ResolveByDomain)
	v1.GET("/tenants/:tenantId", tenantHandlers.GetPublicTenant)

	// Admin endpoints, role-gated per route
	admin := v1.Group("/admin")

	manage := guard.Require(models.RoleOwner, models.RoleManager)
	read := guard.Require(models.RoleOwner, models.RoleManager, models.RoleWaiter, models.RoleKitchen)
	ownerOnly := guard.Require(models.RoleOwner)

	// Tenants
	admin.POST("/tenants", tenantHandlers.CreateTenant, ownerOnly)
	admin.GET("/tenants", tenantHandlers.ListTenants, ownerOnly)
	admin.GET("/tenants/:tenantId", tenantHandlers.GetTenant, ownerOnly)
	admin.PATCH("/tenants/:tenantId", tenantHandlers.UpdateTenant, ownerOnly)
	admin.DELETE("/tenants/:tenantId", tenantHandlers.DeleteTenant, ownerOnly)

	// Locations
	admin.GET("/tenants/:tenantId/locations", locationHandlers.ListLocations, manage)
	admin.POST("/tenants/:tenantId/locations", locationHandlers.CreateLocation, manage)
	admin.GET("/tenants/:tenantId/locations/:locationId", locationHandlers.GetLocation, manage)
	admin.PATCH("/tenants/:tenantId/locations/:locationId", locationHandlers.UpdateLocation, manage)
	admin.DELETE("/tenants/:tenantId/locations/:locationId", locationHandlers.DeleteLocation, manage)

	// Tables
	tables := "/tenants/:tenantId/locations/:locationId/tables"
	admin.GET(tables, tableHandlers.ListTables, read)
	admin.POST(tables, tableHandlers.CreateTable, manage)
	admin.GET(tables+"/:tableId", tableHandlers.GetTable, read)
	admin.PATCH(tables+"/:tableId", tableHandlers.UpdateTable, manage)
	admin.DELETE(tables+"/:tableId", tableHandlers.DeleteTable, manage)
	admin.POST(tables+"/:tableId/rotate-qr-salt", tableHandlers.RotateQRSalt, manage)

	// Assets
	admin.GET("/tenants/:tenantId/assets", assetHandlers.ListAssets, read)
	admin.POST("/tenants/:tenantId/assets", assetHandlers.CreateAsset, manage)
	admin.GET("/tenants/:tenantId/assets/:assetId", assetHandlers.GetAsset, read)
	admin.DELETE("/tenants/:tenantId/assets/:assetId", assetHandlers.DeleteAsset, manage)

	// Theme
	admin.GET("/tenants/:tenantId/theme", themeHandlers.GetTheme, manage)
	admin.PUT("/tenants/:tenantId/theme", themeHandlers.ReplaceTheme, manage)
	admin.PATCH("/tenants/:tenantId/theme", themeHandlers.PatchTheme, manage)

	log.Printf("dinehub server v%s starting on port %d (env=%s)", version, cfg.Port, cfg.Environment)
	e.Logger.Fatal(e.Start(fmt.Sprintf(":%d", cfg.Port)))
}
