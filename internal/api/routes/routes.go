package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/prefeitura-rio/app-tech-radar/internal/api/handlers"
	"github.com/prefeitura-rio/app-tech-radar/internal/config"
	"github.com/prefeitura-rio/app-tech-radar/internal/github"
	middlewares "github.com/prefeitura-rio/app-tech-radar/internal/middleware"
	"github.com/prefeitura-rio/app-tech-radar/internal/services"
	"github.com/prefeitura-rio/app-tech-radar/internal/store"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Dependencies agrupa as instâncias compartilhadas entre rotas e jobs.
type Dependencies struct {
	RadarService *services.RadarService
	GitHubClient *github.Client
	Scheduler    *services.Scheduler
	Store        store.Store
}

func SetupRouter(cfg *config.Config, deps Dependencies) *gin.Engine {
	if cfg.AppEnv == "production" || cfg.AppEnv == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()

	r.Use(corsMiddleware())
	r.Use(middlewares.RequestTiming())

	radarHandler := handlers.NewRadarHandler(deps.RadarService, deps.GitHubClient)
	adminHandler := handlers.NewAdminHandler(deps.GitHubClient, deps.Scheduler)
	healthHandler := handlers.NewHealthHandler(deps.Store)

	api := r.Group("/api/v1")
	{
		api.GET("/radar-data", radarHandler.GetRadarData)
		api.POST("/radar-data/refresh", radarHandler.RefreshRadarData)
		api.GET("/trending/plot", radarHandler.GetPlotData)
		api.GET("/rate-limit", radarHandler.GetRateLimit)

		admin := api.Group("/admin")
		{
			admin.GET("/cache/stats", adminHandler.CacheStats)
			admin.DELETE("/cache", adminHandler.InvalidateCache)
			admin.GET("/jobs", adminHandler.JobStatus)
			admin.POST("/jobs/fetch", adminHandler.TriggerFetch)
			admin.POST("/jobs/cleanup", adminHandler.TriggerCleanup)
		}
	}

	r.GET("/liveness", healthHandler.Liveness)
	r.GET("/readiness", healthHandler.Readiness)

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
