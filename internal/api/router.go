package api

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/docubot/docubot/internal/api/ask"
	"github.com/docubot/docubot/internal/api/middleware"
	"github.com/docubot/docubot/internal/service"
)

// RouterConfig holds configuration for the router
type RouterConfig struct {
	SigningSecret string
}

// SetupRouter sets up the Gin router
func SetupRouter(askService *service.AskService, logger *zap.Logger, cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(logger))

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Question API (Slack slash commands carry a signed payload)
	askHandler := ask.NewHandler(askService)
	askGroup := r.Group("/")
	askGroup.Use(middleware.VerifySlackSignature(cfg.SigningSecret))
	askHandler.RegisterRoutes(askGroup)

	return r
}
