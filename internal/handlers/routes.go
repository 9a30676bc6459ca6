package handlers

import (
	"cover-builder-backend/internal/config"
	"cover-builder-backend/internal/middleware"
	"cover-builder-backend/internal/storage"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts the API on router. staticDir is served read-only
// under /static when non-empty.
func RegisterRoutes(router *gin.Engine, cfg *config.Config, projects *ProjectsHandler, cover *CoverHandler, staticDir string) {
	// Health check (no auth)
	router.GET("/health", HealthHandler(cfg.Environment))

	if staticDir != "" {
		router.Static(storage.StaticPrefix, staticDir)
	}

	api := router.Group("/")
	api.Use(middleware.AuthMiddleware(cfg))

	// Project routes
	api.POST("/projects", projects.CreateProject)
	api.GET("/projects", projects.ListProjects)
	api.GET("/projects/:id", projects.GetProject)
	api.DELETE("/projects/:id", projects.DeleteProject)
	api.GET("/projects/:id/brief-runs", projects.ListBriefRuns)
	api.GET("/projects/:id/images", projects.ListImages)

	// Generation
	api.POST("/cover/brief", cover.GenerateBrief)
	api.POST("/cover/image", cover.GenerateImage)
}
