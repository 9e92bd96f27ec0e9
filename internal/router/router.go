package router

import (
	"context"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/troopdesk/troopdesk-backend/internal/config"
	"github.com/troopdesk/troopdesk-backend/internal/handler"
	"github.com/troopdesk/troopdesk-backend/internal/middleware"
	"github.com/troopdesk/troopdesk-backend/internal/response"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Health     *handler.HealthHandler
	Roster     *handler.RosterHandler
	Attendance *handler.AttendanceHandler
	Report     *handler.ReportHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
// ctx bounds the lifetime of background middleware state.
func SetupRouter(ctx context.Context, handlers *Handlers, cfg *config.Config) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.Default()

	// ─── CORS ──────────────────────────────────────────────────────────
	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "PUT", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", response.HeaderRequestID}
	corsConfig.ExposeHeaders = []string{response.HeaderRequestID, "Content-Disposition"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Apply request ID middleware globally so every response includes metadata.
	router.Use(response.RequestIDMiddleware())

	router.Use(middleware.Brotli())

	router.GET("/health", handlers.Health.Health)

	api := router.Group("/api/v1")
	{
		api.GET("/members", handlers.Roster.ListMembers)
		api.GET("/activities", handlers.Roster.ListActivities)
	}

	// ─── Attendance ────────────────────────────────────────────────────
	saveLimiter := middleware.NewRateLimiter(ctx, cfg.SaveRateLimit, time.Minute)
	sheet := api.Group("/activities/:id/attendance")
	sheet.Use(middleware.NoStore())
	{
		sheet.GET("", handlers.Attendance.GetSheet)
		sheet.PUT("", saveLimiter.Middleware(), handlers.Attendance.SaveSheet)
	}

	// ─── Reports ───────────────────────────────────────────────────────
	reports := api.Group("/reports")
	reports.Use(middleware.NoCache())
	{
		reports.GET("/summary", handlers.Report.GetSummary)
		reports.GET("/export", handlers.Report.Export)
	}

	return router
}
