package main

import (
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/yukikurage/task-management-services/internal/config"
	"github.com/yukikurage/task-management-services/internal/database"
	"github.com/yukikurage/task-management-services/internal/logger"
	"github.com/yukikurage/task-management-services/internal/models"
	"github.com/yukikurage/task-management-services/internal/repository"
	"github.com/yukikurage/task-management-services/internal/router"
	"github.com/yukikurage/task-management-services/internal/services"
)

func main() {
	// .env is optional
	_ = godotenv.Load()

	cfg := config.Load(config.ServiceIdentity)
	log := logger.New(cfg.ServiceName, cfg.Env, cfg.LogLevel)
	gin.SetMode(cfg.GinMode)

	// Connect to database
	db, err := database.Connect(cfg, log)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer database.Close(db)

	if err := database.Migrate(db, log, &models.User{}); err != nil {
		log.Fatalf("failed to run migrations: %v", err)
	}

	identityService := services.NewIdentityService(repository.NewUserRepository(db), cfg.BcryptCost)

	r, err := router.NewIdentity(router.Options{Config: cfg, Logger: log}, identityService)
	if err != nil {
		log.Fatalf("failed to build router: %v", err)
	}

	if err := router.Serve(cfg, log, r); err != nil {
		log.Errorf("server stopped: %v", err)
	}
}
