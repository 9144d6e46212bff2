package router

import (
	"log/slog"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/scandent/orline/internal/server/http/handlers"
	"github.com/scandent/orline/internal/server/http/middleware"
)

// Setup configures gin router with handlers and middleware.
func Setup(facade handlers.ClinicFacade, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.DecompressRequest())
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	corsCfg := cors.DefaultConfig()
	corsCfg.AllowAllOrigins = true
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "Authorization")
	engine.Use(cors.New(corsCfg))

	authHandler := handlers.NewAuthHandler(facade)
	orderHandler := handlers.NewOrderHandler(facade)
	linkHandler := handlers.NewLinkHandler(facade)
	adminHandler := handlers.NewAdminHandler(facade)

	api := engine.Group("/api")

	auth := api.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/logout", authHandler.Logout)

	private := api.Group("")
	private.Use(middleware.AuthRequired(facade))
	private.GET("/auth/me", authHandler.Me)

	private.GET("/orders", orderHandler.List)
	private.POST("/orders", orderHandler.Prepare)
	private.POST("/orders/confirm", orderHandler.Confirm)
	private.GET("/orders/:id", orderHandler.Get)
	private.PATCH("/orders/:id", orderHandler.Update)

	private.POST("/orders/:id/links", linkHandler.Add)
	private.POST("/orders/:id/files", linkHandler.Upload)
	private.DELETE("/links/:id", linkHandler.Delete)

	admin := private.Group("/admin")
	admin.POST("/invites", adminHandler.IssueInvite)
	admin.GET("/doctors", adminHandler.Doctors)

	return engine
}
