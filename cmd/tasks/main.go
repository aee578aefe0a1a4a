package main

import (
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/yukikurage/task-management-services/internal/clients"
	"github.com/yukikurage/task-management-services/internal/config"
	"github.com/yukikurage/task-management-services/internal/database"
	"github.com/yukikurage/task-management-services/internal/logger"
	"github.com/yukikurage/task-management-services/internal/models"
	"github.com/yukikurage/task-management-services/internal/repository"
	"github.com/yukikurage/task-management-services/internal/router"
	"github.com/yukikurage/task-management-services/internal/services"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load(config.ServiceTasks)
	log := logger.New(cfg.ServiceName, cfg.Env, cfg.LogLevel)
	gin.SetMode(cfg.GinMode)

	db, err := database.Connect(cfg, log)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer database.Close(db)

	if err := database.Migrate(db, log, &models.Task{}); err != nil {
		log.Fatalf("failed to run migrations: %v", err)
	}

	// Task ownership is checked against the identity service
	identity := clients.NewIdentityClient(cfg.IdentityServiceURL, cfg.UpstreamTimeout)
	taskService := services.NewTaskService(repository.NewTaskRepository(db), identity)

	r, err := router.NewTasks(router.Options{Config: cfg, Logger: log}, taskService)
	if err != nil {
		log.Fatalf("failed to build router: %v", err)
	}

	log.WithField("identity_url", cfg.IdentityServiceURL).Info("identity upstream configured")
	if err := router.Serve(cfg, log, r); err != nil {
		log.Errorf("server stopped: %v", err)
	}
}
