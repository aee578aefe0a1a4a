package repository

import (
	"context"

	"github.com/yukikurage/task-management-services/internal/models"
)

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// Create inserts a new task and fills its ID and timestamps
	Create(ctx context.Context, task *models.Task) error

	// FindByID returns gorm.ErrRecordNotFound when the task does not exist
	FindByID(ctx context.Context, id uint64) (*models.Task, error)

	// ListByUser returns the user's tasks, newest first
	ListByUser(ctx context.Context, userID uint64) ([]models.Task, error)

	// Update saves every column of the task
	Update(ctx context.Context, task *models.Task) error

	// Delete permanently removes a task
	Delete(ctx context.Context, id uint64) error
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create returns gorm.ErrDuplicatedKey when the email is taken
	Create(ctx context.Context, user *models.User) error

	// FindByID finds a user by ID
	FindByID(ctx context.Context, id uint64) (*models.User, error)

	// FindByEmail finds a user by exact email
	FindByEmail(ctx context.Context, email string) (*models.User, error)
}
