package router

import (
	"github.com/gin-gonic/gin"

	"entrydesk/internal/config"
	"entrydesk/internal/domain"
	"entrydesk/internal/handler"
	"entrydesk/internal/middleware"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	cfg *config.Config,
	reportH *handler.ReportHandler,
	scheduleH *handler.ScheduleHandler,
	healthH *handler.HealthHandler,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(&cfg.CORS))

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	v1 := r.Group("/api/v1")

	// Protected routes - require a valid service token
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(&cfg.JWT))

	// Ad hoc report generation
	reports := protected.Group("/reports")
	reports.POST("/landed-cost", reportH.Generate)
	reports.POST("/landed-cost/download", reportH.Download)

	// Archived workbook retrieval and retention cleanup
	reports.GET("/archive/*key", reportH.Archive)
	reports.DELETE("/archive/*key", middleware.RequireRole(domain.RoleAdmin), reportH.DeleteArchive)

	// Report schedule management
	schedules := protected.Group("/schedules")
	schedules.POST("", middleware.RequireRole(domain.RoleAdmin), scheduleH.Create)
	schedules.GET("", scheduleH.List)
	schedules.GET("/:id", scheduleH.GetByID)
	schedules.PUT("/:id", middleware.RequireRole(domain.RoleAdmin), scheduleH.Update)
	schedules.DELETE("/:id", middleware.RequireRole(domain.RoleAdmin), scheduleH.Delete)
	schedules.GET("/:id/runs", scheduleH.ListRuns)

	return r
}
