package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/careerpilot/careerpilot/config"
	"github.com/careerpilot/careerpilot/internal/api/handlers"
	"github.com/careerpilot/careerpilot/internal/api/middleware"
)

type Deps struct {
	Jobs       *handlers.JobHandler
	Settings   *handlers.SettingsHandler
	Automation *handlers.AutomationHandler
	Notify     *handlers.NotifyHandler
}

func RegisterRoutes(r *gin.Engine, cfg *config.Config, d Deps) {
	// Health-ish
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	api := r.Group("/api")

	// Routes the automation pipeline may call with the shared secret.
	ingest := api.Group("/")
	ingest.Use(middleware.ServiceOrSession(cfg))
	ingest.GET("/jobs", d.Jobs.List)
	ingest.POST("/jobs", d.Jobs.Ingest)
	ingest.GET("/preferences", d.Settings.Get)
	ingest.PUT("/preferences", d.Settings.Update)
	ingest.GET("/automation/profile", d.Automation.Profile)

	// Browser-session-only routes.
	user := api.Group("/")
	user.Use(middleware.SessionOnly(cfg))
	user.PATCH("/jobs", d.Jobs.UpdateByQuery)
	user.DELETE("/jobs", d.Jobs.DeleteByQuery)
	user.GET("/jobs/:id", d.Jobs.Get)
	user.PATCH("/jobs/:id", d.Jobs.Update)
	user.DELETE("/jobs/:id", d.Jobs.Delete)
	user.POST("/jobs/bulk-delete", d.Jobs.BulkDelete)
	user.GET("/stats", d.Jobs.Stats)
	user.GET("/notify", d.Notify.Settings)

	// Pipeline-only routes.
	service := api.Group("/")
	service.Use(middleware.ServiceOnly(cfg))
	service.POST("/notify", d.Notify.Evaluate)
}
