// Package admin wires the admin HTTP API over the facade service.
package admin

import (
	"github.com/gin-gonic/gin"
	"github.com/yokinanya/omega-miya/internal/config"
	"github.com/yokinanya/omega-miya/internal/http/api/admin/handlers"
	"github.com/yokinanya/omega-miya/internal/omega"
	"gorm.io/gorm"
)

// RegisterRoutes mounts the admin API under /admin/api. Everything except
// login and the health check sits behind bearer authentication.
func RegisterRoutes(r *gin.Engine, db *gorm.DB, svc *omega.Service, adminCfg config.AdminConfig, jwtCfg config.JWTConfig) {
	authHandler := handlers.NewAuthHandler(adminCfg, jwtCfg)
	healthHandler := handlers.NewHealthHandler(db)
	entitiesHandler := handlers.NewEntitiesHandler(svc)
	authSettingsHandler := handlers.NewAuthSettingsHandler(svc)
	signInsHandler := handlers.NewSignInsHandler(svc)
	cooldownsHandler := handlers.NewCooldownsHandler(svc)
	friendshipHandler := handlers.NewFriendshipHandler(svc)

	r.GET("/healthz", healthHandler.Healthz)

	api := r.Group("/admin/api")
	api.POST("/login", authHandler.Login)

	protected := api.Group("")
	protected.Use(adminAuthMiddleware(jwtCfg.Secret))

	protected.GET("/bots", entitiesHandler.ListBots)
	protected.GET("/entities", entitiesHandler.List)
	protected.GET("/entities/with-node", entitiesHandler.ListWithNode)
	protected.GET("/entities/:id", entitiesHandler.Get)
	protected.DELETE("/entities/:id", entitiesHandler.Delete)

	protected.GET("/entities/:id/auth-settings", authSettingsHandler.List)
	protected.PUT("/entities/:id/auth-settings", authSettingsHandler.Put)
	protected.DELETE("/entities/:id/auth-settings", authSettingsHandler.Delete)

	protected.GET("/entities/:id/sign-ins", signInsHandler.Stats)
	protected.POST("/entities/:id/sign-ins", signInsHandler.Fix)
	protected.DELETE("/entities/:id/sign-ins/:date", signInsHandler.Delete)

	protected.GET("/entities/:id/cooldowns/:event", cooldownsHandler.Check)
	protected.POST("/cooldowns/purge", cooldownsHandler.Purge)

	protected.GET("/entities/:id/friendship", friendshipHandler.Get)
	protected.POST("/entities/:id/friendship/change", friendshipHandler.Change)
}
