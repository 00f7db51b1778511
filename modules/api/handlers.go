package api

import (
	"bytes"
	"errors"
	"strconv"
	"strings"

	domain "github.com/example/task-tracker/domain/task"
	"github.com/example/task-tracker/modules/activity"
	"github.com/example/task-tracker/modules/task"
	"github.com/go-monolith/mono/pkg/types"
	"github.com/gofiber/fiber/v2"
)

// Handlers contains HTTP handlers for the API.
type Handlers struct {
	tasks    task.TaskPort
	activity activity.ActivityPort
	logger   types.Logger
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(tasks task.TaskPort, feed activity.ActivityPort, logger types.Logger) *Handlers {
	return &Handlers{
		tasks:    tasks,
		activity: feed,
		logger:   logger,
	}
}

// ListTasks handles GET /tasks.
func (h *Handlers) ListTasks(c *fiber.Ctx) error {
	view, err := domain.ParseView(c.Query("status"), c.Query("sort"))
	if err != nil {
		return h.badRequest(c, err)
	}

	tasks, err := h.tasks.ListTasks(c.UserContext(), view)
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			return h.badRequest(c, err)
		}
		return h.internalError(c, msgFetchTasks, err)
	}

	return c.JSON(tasks)
}

// CreateTask handles POST /tasks.
func (h *Handlers) CreateTask(c *fiber.Ctx) error {
	var input domain.CreateInput
	if err := decodeBody(c, &input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: msgInvalidBody})
	}

	if strings.TrimSpace(input.Title) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: msgTitleRequired})
	}

	created, err := h.tasks.CreateTask(c.UserContext(), input)
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			return h.badRequest(c, err)
		}
		return h.internalError(c, msgCreateTask, err)
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}

// GetTask handles GET /tasks/:id.
func (h *Handlers) GetTask(c *fiber.Ctx) error {
	t, found, err := h.tasks.GetTask(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.internalError(c, msgFetchTask, err)
	}
	if !found {
		return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{Error: msgTaskNotFound})
	}
	return c.JSON(t)
}

// UpdateTask handles PUT /tasks/:id.
func (h *Handlers) UpdateTask(c *fiber.Ctx) error {
	var patch domain.Patch
	if err := decodeBody(c, &patch); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: msgInvalidBody})
	}

	updated, found, err := h.tasks.UpdateTask(c.UserContext(), c.Params("id"), patch)
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			if !found {
				return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{Error: msgTaskNotFound})
			}
			return h.badRequest(c, err)
		}
		return h.internalError(c, msgUpdateTask, err)
	}
	if !found {
		return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{Error: msgTaskNotFound})
	}
	return c.JSON(updated)
}

// DeleteTask handles DELETE /tasks/:id.
func (h *Handlers) DeleteTask(c *fiber.Ctx) error {
	deleted, err := h.tasks.DeleteTask(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.internalError(c, msgDeleteTask, err)
	}
	if !deleted {
		return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{Error: msgTaskNotFound})
	}
	return c.JSON(MessageResponse{Message: msgTaskDeleted})
}

// TaskStats handles GET /tasks/stats.
func (h *Handlers) TaskStats(c *fiber.Ctx) error {
	stats, err := h.tasks.TaskStats(c.UserContext())
	if err != nil {
		return h.internalError(c, msgFetchStats, err)
	}
	return c.JSON(stats)
}

// ListActivity handles GET /activity.
func (h *Handlers) ListActivity(c *fiber.Ctx) error {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: msgInvalidLimit})
		}
		limit = n
	}

	entries, err := h.activity.ListActivity(c.UserContext(), limit)
	if err != nil {
		return h.internalError(c, msgFetchActivity, err)
	}
	return c.JSON(ActivityResponse{
		Entries: entries,
		Total:   len(entries),
	})
}

// HealthCheck handles GET /health.
func (h *Handlers) HealthCheck(c *fiber.Ctx) error {
	health, err := h.tasks.StoreHealth(c.UserContext())
	if err != nil {
		h.logger.Error("Health check failed", "error", err)
		return c.Status(fiber.StatusServiceUnavailable).JSON(HealthResponse{Status: "unhealthy"})
	}

	resp := HealthResponse{
		Status: "healthy",
		Details: map[string]any{
			"store": health.Store,
		},
	}
	if !health.Healthy {
		resp.Status = "unhealthy"
		resp.Details["message"] = health.Message
		return c.Status(fiber.StatusServiceUnavailable).JSON(resp)
	}
	return c.JSON(resp)
}

// badRequest renders a validation error as a 400 with a client-facing message.
func (h *Handlers) badRequest(c *fiber.Ctx, err error) error {
	msg := msgInvalidInput
	switch {
	case errors.Is(err, domain.ErrTitleRequired):
		msg = msgTitleRequired
	case errors.Is(err, domain.ErrInvalidStatus):
		msg = msgInvalidStatus
	case errors.Is(err, domain.ErrInvalidPriority):
		msg = msgInvalidPriority
	case errors.Is(err, domain.ErrInvalidSort):
		msg = msgInvalidSort
	}
	return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: msg})
}

// internalError logs err and renders a generic 500.
func (h *Handlers) internalError(c *fiber.Ctx, msg string, err error) error {
	h.logger.Error(msg,
		"method", c.Method(),
		"path", c.Path(),
		"error", err)
	return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: msg})
}

// decodeBody decodes a JSON request body into out. An empty body decodes as
// an empty object.
func decodeBody(c *fiber.Ctx, out any) error {
	body := bytes.TrimSpace(c.Body())
	if len(body) == 0 {
		return nil
	}
	return c.App().Config().JSONDecoder(body, out)
}
