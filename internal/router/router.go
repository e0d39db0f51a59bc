// internal/router/router.go
package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/recambia/recambia-backend/internal/config"
	"github.com/recambia/recambia-backend/internal/handlers"
	"github.com/recambia/recambia-backend/internal/middleware"
	"github.com/recambia/recambia-backend/internal/services"
	"github.com/recambia/recambia-backend/internal/utils"
)

func Initialize(db *gorm.DB, cache *redis.Client, cfg *config.Config) *gin.Engine {
	// Initialize services
	searchService := services.NewSearchService(db, cache, cfg.Search,
		time.Duration(cfg.Redis.PopularTTL)*time.Second)
	partService := services.NewPartService(db)
	vehicleService := services.NewVehicleService(db)
	oemService := services.NewOemService(db)
	scraperService := services.NewScraperService(cfg.Scraper)

	// Initialize handlers
	searchHandler := handlers.NewSearchHandler(searchService)
	partHandler := handlers.NewPartHandler(partService)
	vehicleHandler := handlers.NewVehicleHandler(vehicleService)
	oemHandler := handlers.NewOemHandler(oemService, scraperService)

	// Set JWT secret
	utils.SetJWTSecret(cfg.JWT.SecretKey)

	// Initialize Gin router
	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS())
	r.Use(middleware.I18nMiddleware())
	r.Use(middleware.GeneralRateLimit())

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"version": "1.0.0",
		})
	})

	// API v1 routes
	v1 := r.Group("/v1")
	{
		// Search routes
		search := v1.Group("/search")
		{
			search.GET("/suggestions", middleware.SuggestRateLimit(), middleware.OptionalAuth(), searchHandler.GetSuggestions)
			search.POST("/click", middleware.OptionalAuth(), searchHandler.LogClick)
		}

		// Parts catalog routes
		parts := v1.Group("/parts")
		{
			parts.GET("", partHandler.GetParts)
			parts.GET("/:id", partHandler.GetPart)
			parts.POST("", middleware.OptionalAuth(), partHandler.CreatePart)
			parts.PUT("/:id", middleware.OptionalAuth(), partHandler.UpdatePart)
		}

		// Vehicle lookup routes
		vehicles := v1.Group("/vehicles")
		{
			vehicles.GET("/:plate", vehicleHandler.GetVehicle)
			vehicles.POST("/:plate", middleware.IngestRateLimit(), vehicleHandler.UpsertVehicle)
		}

		// OEM part routes
		oem := v1.Group("/oem")
		{
			oem.GET("/:code", oemHandler.GetOemPart)
			oem.DELETE("/:code", oemHandler.DeleteOemPart)
			oem.POST("/ingest", middleware.IngestRateLimit(), oemHandler.IngestOemParts)
			oem.POST("/scrape", middleware.IngestRateLimit(), oemHandler.ScrapeAndIngest)
		}
	}

	return r
}
