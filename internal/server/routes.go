package server

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/dkruglov/newsimage/internal/config"
	"github.com/dkruglov/newsimage/internal/handler"
	"github.com/dkruglov/newsimage/internal/middleware"
	"github.com/dkruglov/newsimage/internal/storage"
)

// Deps carries the wired pipeline pieces into the route table.
// Dependencies are passed explicitly — no DI container.
type Deps struct {
	Picker   handler.Illustrator
	Verifier handler.ImageVerifier
	Calls    storage.CallRepository // nil when auditing is disabled
}

// RegisterRoutes sets up all HTTP routes on the Gin engine.
func RegisterRoutes(r *gin.Engine, cfg *config.Config, deps Deps, logger *zap.Logger) {
	healthHandler := handler.NewHealthHandler()
	illustrateHandler := handler.NewIllustrateHandler(deps.Picker, deps.Verifier, logger)
	adminHandler := handler.NewAdminHandler(deps.Calls, logger)

	// Public, no auth
	r.GET("/healthz", healthHandler.Healthz)

	api := r.Group("/api/v1")
	api.Use(middleware.CORS(cfg.CORS.AllowedOrigins))

	authed := api.Group("")
	authed.Use(middleware.APIKeyAuth(cfg.Auth.APIKeys))
	authed.Use(middleware.RateLimit(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst))
	{
		authed.POST("/illustrate", illustrateHandler.Illustrate)
	}

	admin := api.Group("/admin")
	admin.Use(middleware.AdminKeyAuth(cfg.Auth.AdminKeys))
	{
		admin.GET("/stats", adminHandler.Stats)
	}
}
