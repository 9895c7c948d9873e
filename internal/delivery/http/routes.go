package http

import (
	"github.com/gin-gonic/gin"
	"github.com/rxscan/backend/config"
)

// SetupRouter creates and configures the Gin router
func SetupRouter(cfg *config.Config, handler *Handler) *gin.Engine {
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	router.Use(RecoveryMiddleware())
	router.Use(LoggerMiddleware())
	router.Use(RequestIDMiddleware())
	router.Use(CORSMiddleware(cfg.Server.AllowedOrigins))

	router.GET("/health", handler.HealthCheck)

	v1 := router.Group("/api/v1")
	{
		scan := v1.Group("/scan")
		{
			scan.POST("/resolve", handler.ResolveScan)
			scan.POST("/normalize", handler.NormalizeScan)
			scan.GET("/verify/:ndc", handler.VerifyNDC)
			scan.GET("/price/:ndc", handler.PriceNDC)
			scan.POST("/overrides", handler.PutOverride)
			scan.GET("/overrides/:text", handler.GetOverride)
		}
	}

	return router
}
