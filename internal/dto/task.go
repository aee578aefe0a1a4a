package dto

import (
	"time"

	"github.com/yukikurage/task-management-services/internal/models"
	"github.com/yukikurage/task-management-services/internal/validation"
)

// CreateTaskRequest is the body of POST /tasks.
type CreateTaskRequest struct {
	Title       string `json:"title" binding:"required,min=1,max=255"`
	Description string `json:"description" binding:"required,min=1,max=2000"`
	UserID      uint64 `json:"userId" binding:"required,gt=0"`
}

// UserTasksParams carries the :userId path parameter of GET /tasks/:userId.
type UserTasksParams struct {
	UserID uint64 `uri:"userId" binding:"required,gt=0"`
}

// TaskParams carries the :taskId path parameter.
type TaskParams struct {
	TaskID uint64 `uri:"taskId" binding:"required,gt=0"`
}

// UpdateTaskRequest is the body of PATCH /tasks/:taskId. Nil fields are left
// unchanged.
type UpdateTaskRequest struct {
	Title       *string `json:"title" binding:"omitempty,min=1,max=255"`
	Description *string `json:"description" binding:"omitempty,min=1,max=2000"`
	Completed   *bool   `json:"completed"`
	UserID      uint64  `json:"userId" binding:"required,gt=0"`
}

// Validate requires at least one of the mutable fields.
func (r UpdateTaskRequest) Validate() []validation.Violation {
	if r.Title == nil && r.Description == nil && r.Completed == nil {
		return []validation.Violation{{
			Field:   "body",
			Message: "at least one of title, description or completed must be provided",
		}}
	}
	return nil
}

// DeleteTaskRequest is the body of DELETE /tasks/:taskId.
type DeleteTaskRequest struct {
	UserID uint64 `json:"userId" binding:"required,gt=0"`
}

// TaskDTO represents a task in API responses
type TaskDTO struct {
	ID          uint64    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Completed   bool      `json:"completed"`
	UserID      uint64    `json:"userId"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ToTaskDTO converts a Task model to TaskDTO
func ToTaskDTO(task models.Task) TaskDTO {
	return TaskDTO{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		Completed:   task.Completed,
		UserID:      task.UserID,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}
}

// ToTaskDTOs converts a slice of tasks. The result is never nil so an empty
// list is encoded as [].
func ToTaskDTOs(tasks []models.Task) []TaskDTO {
	items := make([]TaskDTO, len(tasks))
	for i, task := range tasks {
		items[i] = ToTaskDTO(task)
	}
	return items
}
