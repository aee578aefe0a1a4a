package services

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	apierrors "github.com/yukikurage/task-management-services/internal/errors"
	"github.com/yukikurage/task-management-services/internal/models"
	"github.com/yukikurage/task-management-services/internal/repository"
)

const (
	MsgTaskNotFound        = "Task not found"
	MsgNotAllowedToUpdate  = "Unauthorized to update this task"
	MsgNotAllowedToDelete  = "Unauthorized to delete this task"
	msgIdentityUnavailable = "identity service unavailable"
)

// TaskService handles task business logic
type TaskService struct {
	taskRepo repository.TaskRepository
	users    UserResolver
}

// NewTaskService creates a new TaskService
func NewTaskService(taskRepo repository.TaskRepository, users UserResolver) *TaskService {
	return &TaskService{
		taskRepo: taskRepo,
		users:    users,
	}
}

// CreateTaskInput represents input for creating a task
type CreateTaskInput struct {
	Title       string
	Description string
	UserID      uint64
}

// UpdateTaskInput represents input for updating a task. Nil fields are left
// unchanged.
type UpdateTaskInput struct {
	TaskID      uint64
	RequesterID uint64
	Title       *string
	Description *string
	Completed   *bool
}

// CreateTask creates an incomplete task for an existing user.
func (s *TaskService) CreateTask(ctx context.Context, input CreateTaskInput) (*models.Task, error) {
	if err := s.ensureUserExists(ctx, input.UserID); err != nil {
		return nil, err
	}

	task := &models.Task{
		Title:       input.Title,
		Description: input.Description,
		Completed:   false,
		UserID:      input.UserID,
	}
	if err := s.taskRepo.Create(ctx, task); err != nil {
		return nil, apierrors.Internal(fmt.Errorf("failed to create task: %w", err))
	}

	return task, nil
}

// ListTasks returns the tasks of an existing user, newest first.
func (s *TaskService) ListTasks(ctx context.Context, userID uint64) ([]models.Task, error) {
	if err := s.ensureUserExists(ctx, userID); err != nil {
		return nil, err
	}

	tasks, err := s.taskRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, apierrors.Internal(fmt.Errorf("failed to list tasks: %w", err))
	}

	return tasks, nil
}

// GetTask retrieves a task by ID.
func (s *TaskService) GetTask(ctx context.Context, taskID uint64) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierrors.NotFound(MsgTaskNotFound)
		}
		return nil, apierrors.Internal(fmt.Errorf("failed to find task: %w", err))
	}
	return task, nil
}

// UpdateTask applies the supplied fields to a task owned by the requester.
func (s *TaskService) UpdateTask(ctx context.Context, input UpdateTaskInput) (*models.Task, error) {
	task, err := s.GetTask(ctx, input.TaskID)
	if err != nil {
		return nil, err
	}
	if task.UserID != input.RequesterID {
		return nil, apierrors.Forbidden(MsgNotAllowedToUpdate)
	}

	if input.Title != nil {
		task.Title = *input.Title
	}
	if input.Description != nil {
		task.Description = *input.Description
	}
	if input.Completed != nil {
		task.Completed = *input.Completed
	}

	if err := s.taskRepo.Update(ctx, task); err != nil {
		// Deleted concurrently
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierrors.NotFound(MsgTaskNotFound)
		}
		return nil, apierrors.Internal(fmt.Errorf("failed to update task: %w", err))
	}

	return task, nil
}

// DeleteTask permanently removes a task owned by the requester.
func (s *TaskService) DeleteTask(ctx context.Context, taskID, requesterID uint64) error {
	task, err := s.GetTask(ctx, taskID)
	if err != nil {
		return err
	}
	if task.UserID != requesterID {
		return apierrors.Forbidden(MsgNotAllowedToDelete)
	}

	if err := s.taskRepo.Delete(ctx, taskID); err != nil {
		// Deleted concurrently
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apierrors.NotFound(MsgTaskNotFound)
		}
		return apierrors.Internal(fmt.Errorf("failed to delete task: %w", err))
	}

	return nil
}

func (s *TaskService) ensureUserExists(ctx context.Context, userID uint64) error {
	resolution, err := s.users.ResolveUser(ctx, userID)
	switch resolution {
	case UserFound:
		return nil
	case UserAbsent:
		return apierrors.NotFound(MsgUserNotFound)
	default:
		if err == nil {
			err = errors.New("no answer")
		}
		return apierrors.Internal(fmt.Errorf("%s: %w", msgIdentityUnavailable, err))
	}
}
