package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/noor-edu/portal-api/api/swagger"
	"github.com/noor-edu/portal-api/internal/handler"
	"github.com/noor-edu/portal-api/internal/middleware"
	"github.com/noor-edu/portal-api/internal/models"
	"github.com/noor-edu/portal-api/internal/repository"
	"github.com/noor-edu/portal-api/internal/service"
	"github.com/noor-edu/portal-api/internal/store"
	"github.com/noor-edu/portal-api/pkg/cache"
	"github.com/noor-edu/portal-api/pkg/config"
	"github.com/noor-edu/portal-api/pkg/database"
	"github.com/noor-edu/portal-api/pkg/logger"
	corsmiddleware "github.com/noor-edu/portal-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noor-edu/portal-api/pkg/middleware/requestid"
)

// @title Portal Enrollment API
// @version 1.0.0
// @description Enrollment and user-lifecycle API for the school portal
// @BasePath /api/v1
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect audit database", "error", err)
	}
	defer db.Close() //nolint:errcheck
	auditRepo := repository.NewAuditRepository(db)

	metricsSvc := service.NewMetricsService()

	storeClient := store.NewHTTPClient(cfg.Store, logr).
		WithObserver(metricsSvc.ObserveStoreRequest)

	var cacheRepo service.CacheRepository
	if cfg.Catalog.CacheEnabled {
		redisClient, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Warn("redis unavailable, catalog cache disabled", zap.Error(err))
		} else {
			defer redisClient.Close() //nolint:errcheck
			cacheRepo = repository.NewCacheRepository(redisClient, logr)
		}
	}
	cacheSvc := service.NewCacheService(cacheRepo, metricsSvc, cfg.Catalog.CacheTTL, logr, cacheRepo != nil)

	authSvc := service.NewAuthService(storeClient, auditRepo, nil, logr, service.AuthConfig{
		Secret:     cfg.JWT.Secret,
		Expiration: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	catalogSvc := service.NewCatalogService(storeClient, logr)
	enrollmentSvc := service.NewEnrollmentService(storeClient, auditRepo, nil, logr)
	deletionSvc := service.NewDeletionService(storeClient, auditRepo, logr)
	userSvc := service.NewUserService(storeClient, logr)
	exportSvc := service.NewExportService(deletionSvc, storeClient, logr)

	authHandler := handler.NewAuthHandler(authSvc)
	catalogHandler := handler.NewCatalogHandler(catalogSvc, cacheSvc)
	enrollmentHandler := handler.NewEnrollmentHandler(enrollmentSvc)
	userHandler := handler.NewUserHandler(userSvc, deletionSvc)
	exportHandler := handler.NewExportHandler(exportSvc)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/ready", func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", gin.WrapH(metricsSvc.Handler()))

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	api.POST("/auth/login", authHandler.Login)

	authed := api.Group("")
	authed.Use(middleware.JWT(authSvc))

	catalog := authed.Group("/catalog")
	catalog.Use(middleware.RequireRoles(models.RoleAdmin, models.RoleTeacher))
	catalog.GET("/grades", catalogHandler.ListGrades)
	catalog.GET("/sections", catalogHandler.ListSections)
	catalog.GET("/subjects", catalogHandler.ListSubjects)
	if cfg.Exports.Enabled {
		catalog.GET("/sections/:id/roster", exportHandler.SectionRoster)
	}

	admin := authed.Group("")
	admin.Use(middleware.RequireRoles(models.RoleAdmin))
	admin.POST("/students", enrollmentHandler.CreateStudent)
	admin.POST("/teachers", enrollmentHandler.CreateTeacher)
	admin.GET("/users", userHandler.List)
	admin.GET("/users/:id", userHandler.Get)
	admin.GET("/users/:id/dependencies", userHandler.Dependencies)
	admin.POST("/users/:id/deactivate", userHandler.Deactivate)
	admin.POST("/users/:id/reactivate", userHandler.Reactivate)
	admin.POST("/users/:id/purge", userHandler.Purge)
	admin.DELETE("/users/:id", userHandler.Delete)
	admin.POST("/teachers/:id/reassign-classes", userHandler.ReassignClasses)
	if cfg.Exports.Enabled {
		admin.GET("/users/:id/impact-report", exportHandler.ImpactReport)
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
