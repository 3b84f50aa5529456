package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mikestefanello/backlite"

	"github.com/mrlokans/fitadmin/internal/tasks"
)

// TaskQueue is the part of the task client the controller needs.
type TaskQueue interface {
	Enqueue(task backlite.Task) (string, error)
	Status(ctx context.Context, taskID string) (backlite.TaskStatus, error)
}

var _ TaskQueue = (*tasks.Client)(nil)

// TasksController handles task queue management endpoints.
type TasksController struct {
	queue TaskQueue
}

func NewTasksController(queue TaskQueue) *TasksController {
	return &TasksController{queue: queue}
}

// ListTaskTypes handles GET /api/tasks/types
func (tc *TasksController) ListTaskTypes(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"task_types": tasks.TaskTypes(),
	})
}

// GetTaskStatus handles GET /api/tasks/:id
func (tc *TasksController) GetTaskStatus(c *gin.Context) {
	taskID := c.Param("id")

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	status, err := tc.queue.Status(ctx, taskID)
	if err != nil {
		respondInternalError(c, err, "Failed to read task status")
		return
	}
	if status == backlite.TaskStatusNotFound {
		respondNotFound(c, "task")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":     taskID,
		"status": taskStatusToString(status),
	})
}

// RunTask handles POST /api/tasks/:type/run with optional {format, retention_days}.
func (tc *TasksController) RunTask(c *gin.Context) {
	taskType := c.Param("type")

	var params tasks.TaskParams
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&params); err != nil {
			respondBadRequest(c, "Invalid request body", err.Error())
			return
		}
	}

	task, err := tasks.NewTask(taskType, params)
	if err != nil {
		if errors.Is(err, tasks.ErrUnknownTaskType) {
			respondNotFound(c, "task type "+taskType)
			return
		}
		respondBadRequest(c, "Invalid task parameters", err.Error())
		return
	}

	id, err := tc.queue.Enqueue(task)
	if err != nil {
		respondInternalError(c, err, "Failed to enqueue task")
		return
	}

	c.JSON(http.StatusAccepted, gin.H{
		"success": true,
		"task_id": id,
		"type":    taskType,
		"message": "task enqueued",
	})
}

func taskStatusToString(status backlite.TaskStatus) string {
	switch status {
	case backlite.TaskStatusPending:
		return "pending"
	case backlite.TaskStatusRunning:
		return "running"
	case backlite.TaskStatusSuccess:
		return "success"
	case backlite.TaskStatusFailure:
		return "failure"
	case backlite.TaskStatusNotFound:
		return "not_found"
	default:
		return "unknown"
	}
}
