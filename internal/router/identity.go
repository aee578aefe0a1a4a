package router

import (
	"github.com/gin-gonic/gin"

	"github.com/yukikurage/task-management-services/internal/handlers"
	"github.com/yukikurage/task-management-services/internal/services"
)

// NewIdentity builds the identity service engine.
func NewIdentity(opts Options, identityService *services.IdentityService) (*gin.Engine, error) {
	// Clients are throttled at the gateway. Every lookup from the task service
	// arrives from one address, so a per-address budget here would be shared.
	opts.Limiter = nil
	r, err := NewEngine(opts)
	if err != nil {
		return nil, err
	}

	userHandler := handlers.NewUserHandler(identityService)

	users := r.Group("/users")
	{
		users.POST("/register", userHandler.Register)
		users.POST("/login", userHandler.Login)
		users.GET("/logout", userHandler.Logout)
		users.GET("/:userId", userHandler.GetUser)
	}

	return r, nil
}
