package router

import (
	"github.com/gin-gonic/gin"

	"github.com/yukikurage/task-management-services/internal/handlers"
	"github.com/yukikurage/task-management-services/internal/services"
)

// NewTasks builds the task service engine.
func NewTasks(opts Options, taskService *services.TaskService) (*gin.Engine, error) {
	// Clients are throttled at the gateway. Every lookup from the task service
	// arrives from one address, so a per-address budget here would be shared.
	opts.Limiter = nil
	r, err := NewEngine(opts)
	if err != nil {
		return nil, err
	}

	taskHandler := handlers.NewTaskHandler(taskService)

	tasks := r.Group("/tasks")
	{
		tasks.POST("", taskHandler.CreateTask)
		tasks.GET("/:userId", taskHandler.ListTasks)
		tasks.PATCH("/:taskId", taskHandler.UpdateTask)
		tasks.DELETE("/:taskId", taskHandler.DeleteTask)
	}

	return r, nil
}
