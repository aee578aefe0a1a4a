package main

import (
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/yukikurage/task-management-services/internal/config"
	"github.com/yukikurage/task-management-services/internal/logger"
	"github.com/yukikurage/task-management-services/internal/router"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load(config.ServiceGateway)
	log := logger.New(cfg.ServiceName, cfg.Env, cfg.LogLevel)
	gin.SetMode(cfg.GinMode)

	limiter, closeLimiter := router.NewLimiter(cfg, log)
	defer closeLimiter()

	r, err := router.NewGateway(router.Options{Config: cfg, Logger: log, Limiter: limiter})
	if err != nil {
		log.Fatalf("failed to build router: %v", err)
	}

	log.WithFields(logrus.Fields{
		"identity_url": cfg.IdentityServiceURL,
		"tasks_url":    cfg.TaskServiceURL,
	}).Info("gateway routes configured")
	if err := router.Serve(cfg, log, r); err != nil {
		log.Errorf("server stopped: %v", err)
	}
}
