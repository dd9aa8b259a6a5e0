package api

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/lawdesk/advocate-diary/internal/cache"
	"github.com/lawdesk/advocate-diary/internal/config"
	"github.com/lawdesk/advocate-diary/internal/repository"
	"github.com/lawdesk/advocate-diary/internal/service"
	"github.com/lawdesk/advocate-diary/pkg/logger"
)

// SetupRoutes configures all application routes
func SetupRoutes(router *gin.Engine, db *gorm.DB, c cache.Cache, catalog *config.Catalog, log *logger.Logger) {
	caseRepo := repository.NewCaseRepository(db, log)
	userRepo := repository.NewUserRepository(db, log)
	cases := service.NewCaseService(caseRepo, c, log)

	h := NewHandlers(db, cases, userRepo, c, catalog, log)

	api := router.Group("/api")
	{
		// Health check
		api.GET("/health", h.HealthCheck)

		// Case endpoints
		api.POST("/cases", h.AddCase)
		api.GET("/cases/search", h.SearchCases)
		api.GET("/cases/today", h.TodaysCases)
		api.GET("/cases/by-date", h.CasesByDate)
		api.GET("/cases/pending", h.PendingCases)
		api.POST("/cases/dates", h.BulkUpdateDates)
		api.GET("/cases/:id", h.GetCase)
		api.PUT("/cases/:id", h.UpdateCase)
		api.PUT("/cases/:id/date", h.ChangeDate)

		// Auth endpoints
		api.POST("/auth/register", h.Register)
		api.POST("/auth/login", h.Login)

		// Catalog endpoints
		api.GET("/catalog", h.GetCatalog)
		api.POST("/catalog/reload", h.ReloadCatalog)

		// Cache stats
		api.GET("/cache/stats", h.CacheStats)
	}
}
