package router

import (
	"github.com/gin-gonic/gin"

	"github.com/yukikurage/task-management-services/internal/gateway"
)

// NewGateway builds the public entry point. /api/users/* goes to the identity
// service and /api/tasks/* to the task service.
func NewGateway(opts Options) (*gin.Engine, error) {
	r, err := NewEngine(opts)
	if err != nil {
		return nil, err
	}

	users, err := gateway.NewRoute("/api/users", "/users", opts.Config.IdentityServiceURL)
	if err != nil {
		return nil, err
	}
	tasks, err := gateway.NewRoute("/api/tasks", "/tasks", opts.Config.TaskServiceURL)
	if err != nil {
		return nil, err
	}

	gateway.Register(r, users, opts.Logger)
	gateway.Register(r, tasks, opts.Logger)

	return r, nil
}
