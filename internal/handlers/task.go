package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yukikurage/task-management-services/internal/dto"
	"github.com/yukikurage/task-management-services/internal/response"
	"github.com/yukikurage/task-management-services/internal/services"
	"github.com/yukikurage/task-management-services/internal/validation"
)

const (
	MsgTaskCreated  = "Task created successfully"
	MsgTasksFetched = "Tasks fetched successfully"
	MsgTaskUpdated  = "Task updated successfully"
	MsgTaskDeleted  = "Task deleted successfully"
)

type TaskHandler struct {
	taskService *services.TaskService
}

func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
	}
}

// CreateTask creates a task for an existing user
func (h *TaskHandler) CreateTask(c *gin.Context) {
	var req dto.CreateTaskRequest
	if err := validation.BindJSON(c, &req); err != nil {
		_ = c.Error(err)
		return
	}

	task, err := h.taskService.CreateTask(c.Request.Context(), services.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		UserID:      req.UserID,
	})
	if err != nil {
		_ = c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, MsgTaskCreated, dto.ToTaskDTO(*task))
}

// ListTasks returns the user's tasks, newest first
func (h *TaskHandler) ListTasks(c *gin.Context) {
	var params dto.UserTasksParams
	if err := validation.BindURI(c, &params); err != nil {
		_ = c.Error(err)
		return
	}

	tasks, err := h.taskService.ListTasks(c.Request.Context(), params.UserID)
	if err != nil {
		_ = c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, MsgTasksFetched, dto.ToTaskDTOs(tasks))
}

// UpdateTask applies a partial update on behalf of the task's owner
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	var params dto.TaskParams
	if err := validation.BindURI(c, &params); err != nil {
		_ = c.Error(err)
		return
	}
	var req dto.UpdateTaskRequest
	if err := validation.BindJSON(c, &req); err != nil {
		_ = c.Error(err)
		return
	}

	task, err := h.taskService.UpdateTask(c.Request.Context(), services.UpdateTaskInput{
		TaskID:      params.TaskID,
		RequesterID: req.UserID,
		Title:       req.Title,
		Description: req.Description,
		Completed:   req.Completed,
	})
	if err != nil {
		_ = c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, MsgTaskUpdated, dto.ToTaskDTO(*task))
}

// DeleteTask permanently deletes a task on behalf of its owner
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	var params dto.TaskParams
	if err := validation.BindURI(c, &params); err != nil {
		_ = c.Error(err)
		return
	}
	var req dto.DeleteTaskRequest
	if err := validation.BindJSON(c, &req); err != nil {
		_ = c.Error(err)
		return
	}

	if err := h.taskService.DeleteTask(c.Request.Context(), params.TaskID, req.UserID); err != nil {
		_ = c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, MsgTaskDeleted, nil)
}
