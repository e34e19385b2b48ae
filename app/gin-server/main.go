package main

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/careerpilot/careerpilot/config"
	"github.com/careerpilot/careerpilot/internal/api/handlers"
	"github.com/careerpilot/careerpilot/internal/api/middleware"
	"github.com/careerpilot/careerpilot/internal/api/routes"
	"github.com/careerpilot/careerpilot/internal/cache"
	"github.com/careerpilot/careerpilot/internal/logger"
	pgrepo "github.com/careerpilot/careerpilot/internal/repositories/postgres"
	"github.com/careerpilot/careerpilot/internal/services"
)

func main() {
	_ = godotenv.Load()

	log := logger.New()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	var (
		jobSvc      services.JobService
		settingsSvc services.SettingsService
		notifySvc   services.NotifyService
	)

	if cfg.DemoMode {
		log.Warn("running in demo mode, serving canned fixtures")
	} else {
		db, err := config.InitPostgres(cfg)
		if err != nil {
			log.Fatalf("PostgreSQL init error: %v", err)
		}
		log.Info("PostgreSQL connected")

		var jobCache cache.Cache
		if cfg.RedisAddr != "" {
			rdb, err := config.InitRedis(cfg)
			if err != nil {
				log.Fatalf("Redis init error: %v", err)
			}
			jobCache = cache.NewRedisCache(rdb)
			log.Info("Redis connected")
		} else {
			log.Warn("REDIS_ADDR not set, job list caching disabled")
		}

		jobRepo := pgrepo.NewJobRepo(db)
		profileRepo := pgrepo.NewProfileRepo(db)
		prefsRepo := pgrepo.NewPreferencesRepo(db)

		jobSvc = services.NewJobService(jobRepo, prefsRepo, jobCache, cfg, log)
		settingsSvc = services.NewSettingsService(profileRepo, prefsRepo)
		notifySvc = services.NewNotifyService(profileRepo, prefsRepo, log)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(log))

	corsCfg := cors.DefaultConfig()
	corsCfg.AllowAllOrigins = true
	corsCfg.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", "X-API-Key", "X-Request-Id"}
	r.Use(cors.New(corsCfg))

	routes.RegisterRoutes(r, cfg, routes.Deps{
		Jobs:       handlers.NewJobHandler(jobSvc, cfg),
		Settings:   handlers.NewSettingsHandler(settingsSvc, cfg),
		Automation: handlers.NewAutomationHandler(settingsSvc, cfg),
		Notify:     handlers.NewNotifyHandler(notifySvc, cfg),
	})

	log.Infof("server starting on port %s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("server failed to start: %v", err)
	}
}
