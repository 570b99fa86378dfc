package apicontrollers

import (
	"fmt"
	"net/http"

	"github.com/drujensen/todo/internal/domain/errs"
	"github.com/drujensen/todo/internal/domain/services"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type TaskController struct {
	logger      *zap.Logger
	taskService services.TaskService
}

func NewTaskController(logger *zap.Logger, taskService services.TaskService) *TaskController {
	return &TaskController{
		logger:      logger,
		taskService: taskService,
	}
}

// RegisterRoutes registers all task-related routes with Echo
func (c *TaskController) RegisterRoutes(e *echo.Group) {
	e.GET("/tasks", c.ListTasks)
	e.POST("/tasks", c.CreateTask)
	e.GET("/tasks/:id", c.GetTask)
	e.PUT("/tasks/:id", c.UpdateTask)
	e.PATCH("/tasks/:id/complete", c.CompleteTask)
	e.DELETE("/tasks/:id", c.DeleteTask)
}

// ListTasks godoc
// @Summary List all tasks
// @Description Retrieves every stored task.
// @Tags tasks
// @Produce json
// @Success 200 {array} TaskResponse "Successfully retrieved list of tasks"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Failure 503 {object} ErrorResponse "Storage unavailable"
// @Router /tasks [get]
func (c *TaskController) ListTasks(ctx echo.Context) error {
	tasks, err := c.taskService.ListTasks(ctx.Request().Context())
	if err != nil {
		return c.handleError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, NewTaskListResponse(tasks))
}

// GetTask godoc
// @Summary Get a task by ID
// @Description Retrieves a single task by its ID. IDs are 24 lower case hex characters; any other value, including upper case hex, is reported as not found.
// @Tags tasks
// @Produce json
// @Param id path string true "Task ID"
// @Success 200 {object} TaskResponse "Successfully retrieved task"
// @Failure 404 {object} ErrorResponse "Task not found"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Failure 503 {object} ErrorResponse "Storage unavailable"
// @Router /tasks/{id} [get]
func (c *TaskController) GetTask(ctx echo.Context) error {
	task, err := c.taskService.GetTask(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return c.handleError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, NewTaskResponse(task))
}

// CreateTask godoc
// @Summary Create a new task
// @Description Creates a task. New tasks always start out not completed.
// @Tags tasks
// @Accept json
// @Produce json
// @Param request body TaskRequest true "Task to create"
// @Success 201 {object} TaskResponse "Successfully created task"
// @Failure 400 {object} ErrorResponse "Invalid request body or missing title"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Failure 503 {object} ErrorResponse "Storage unavailable"
// @Router /tasks [post]
func (c *TaskController) CreateTask(ctx echo.Context) error {
	req, err := decodeTaskRequest(ctx.Request().Body)
	if err != nil {
		return c.badRequest(ctx, "Invalid request body")
	}
	if req.Title == nil {
		return c.badRequest(ctx, "Title is required")
	}

	task, err := c.taskService.CreateTask(ctx.Request().Context(), *req.Title, req.description())
	if err != nil {
		return c.handleError(ctx, err)
	}
	return ctx.JSON(http.StatusCreated, NewTaskResponse(task))
}

// UpdateTask godoc
// @Summary Update a task
// @Description Replaces the title and description of a task. The completed flag is left unchanged.
// @Tags tasks
// @Accept json
// @Produce json
// @Param id path string true "Task ID"
// @Param request body TaskRequest true "New task contents"
// @Success 200 {object} TaskResponse "Successfully updated task"
// @Failure 400 {object} ErrorResponse "Invalid request body or missing title"
// @Failure 404 {object} ErrorResponse "Task not found"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Failure 503 {object} ErrorResponse "Storage unavailable"
// @Router /tasks/{id} [put]
func (c *TaskController) UpdateTask(ctx echo.Context) error {
	req, err := decodeTaskRequest(ctx.Request().Body)
	if err != nil {
		return c.badRequest(ctx, "Invalid request body")
	}
	if req.Title == nil {
		return c.badRequest(ctx, "Title is required")
	}

	task, err := c.taskService.UpdateTask(ctx.Request().Context(), ctx.Param("id"), *req.Title, req.description())
	if err != nil {
		return c.handleError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, NewTaskResponse(task))
}

// CompleteTask godoc
// @Summary Mark a task as completed
// @Description Sets completed to true. Completing an already completed task succeeds.
// @Tags tasks
// @Produce json
// @Param id path string true "Task ID"
// @Success 200 {object} TaskResponse "Successfully completed task"
// @Failure 404 {object} ErrorResponse "Task not found"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Failure 503 {object} ErrorResponse "Storage unavailable"
// @Router /tasks/{id}/complete [patch]
func (c *TaskController) CompleteTask(ctx echo.Context) error {
	task, err := c.taskService.CompleteTask(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return c.handleError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, NewTaskResponse(task))
}

// DeleteTask godoc
// @Summary Delete a task
// @Description Permanently removes a task.
// @Tags tasks
// @Produce json
// @Param id path string true "Task ID"
// @Success 200 {object} MessageResponse "Task deleted"
// @Failure 404 {object} ErrorResponse "Task not found"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Failure 503 {object} ErrorResponse "Storage unavailable"
// @Router /tasks/{id} [delete]
func (c *TaskController) DeleteTask(ctx echo.Context) error {
	id := ctx.Param("id")
	if err := c.taskService.DeleteTask(ctx.Request().Context(), id); err != nil {
		return c.handleError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, MessageResponse{
		Message: fmt.Sprintf("Task %s deleted successfully", id),
	})
}

func (c *TaskController) badRequest(ctx echo.Context, detail string) error {
	return ctx.JSON(http.StatusBadRequest, ErrorResponse{Detail: detail})
}

// handleError maps service errors onto status codes. Storage failure details
// are logged but never sent to the client.
func (c *TaskController) handleError(ctx echo.Context, err error) error {
	switch e := err.(type) {
	case *errs.ValidationError:
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{Detail: e.Error()})
	case *errs.NotFoundError:
		return ctx.JSON(http.StatusNotFound, ErrorResponse{Detail: "Task not found"})
	case *errs.UnavailableError:
		c.logger.Error("Storage unavailable", zap.String("path", ctx.Path()), zap.Error(err))
		return ctx.JSON(http.StatusServiceUnavailable, ErrorResponse{Detail: "Storage unavailable"})
	default:
		c.logger.Error("Error occurred", zap.String("path", ctx.Path()), zap.Error(err))
		return ctx.JSON(http.StatusInternalServerError, ErrorResponse{Detail: "Internal server error"})
	}
}
