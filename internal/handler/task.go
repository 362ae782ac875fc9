package handler

import (
	"context"
	"database/sql"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/task-vault/internal/middleware"
	"github.com/iliyamo/task-vault/internal/repository"
)

// TaskHandler serves the per-user task CRUD endpoints. All routes sit
// behind the authorization gate; the owning user comes from the token
// claims, never from the request body.
type TaskHandler struct {
	Tasks *repository.TaskRepo
}

func NewTaskHandler(t *repository.TaskRepo) *TaskHandler { return &TaskHandler{Tasks: t} }

type createTaskReq struct {
	Text string `json:"text"`
}

type updateTaskReq struct {
	Done *bool `json:"done"`
}

// taskID parses the :id path parameter. Malformed ids are a client
// error, not a lookup miss.
func taskID(c echo.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return id, true
}

// List returns every task of the authenticated user, newest first.
func (h *TaskHandler) List(c echo.Context) error {
	cl, ok := middleware.ClaimsFrom(c)
	if !ok {
		return fail(c, http.StatusUnauthorized, "invalid or expired token")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	tasks, err := h.Tasks.ListByUser(ctx, cl.UserID)
	if err != nil {
		return internalError(c)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": tasks})
}

// Get returns a single owned task.
func (h *TaskHandler) Get(c echo.Context) error {
	cl, ok := middleware.ClaimsFrom(c)
	if !ok {
		return fail(c, http.StatusUnauthorized, "invalid or expired token")
	}
	id, ok := taskID(c)
	if !ok {
		return fail(c, http.StatusBadRequest, "invalid task id")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	t, err := h.Tasks.FindByID(ctx, cl.UserID, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return fail(c, http.StatusNotFound, "task not found")
		}
		return internalError(c)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": t})
}

// Create adds a task for the authenticated user.
func (h *TaskHandler) Create(c echo.Context) error {
	cl, ok := middleware.ClaimsFrom(c)
	if !ok {
		return fail(c, http.StatusUnauthorized, "invalid or expired token")
	}
	var req createTaskReq
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid body")
	}
	req.Text = strings.TrimSpace(req.Text)
	if req.Text == "" {
		return fail(c, http.StatusBadRequest, "text is required")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	t, err := h.Tasks.Create(ctx, cl.UserID, req.Text)
	if err != nil {
		return internalError(c)
	}
	return c.JSON(http.StatusCreated, echo.Map{"success": true, "data": t})
}

// Update toggles the done flag of an owned task.
func (h *TaskHandler) Update(c echo.Context) error {
	cl, ok := middleware.ClaimsFrom(c)
	if !ok {
		return fail(c, http.StatusUnauthorized, "invalid or expired token")
	}
	id, ok := taskID(c)
	if !ok {
		return fail(c, http.StatusBadRequest, "invalid task id")
	}
	var req updateTaskReq
	if err := c.Bind(&req); err != nil || req.Done == nil {
		return fail(c, http.StatusBadRequest, "done must be a boolean")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	t, err := h.Tasks.SetDone(ctx, cl.UserID, id, *req.Done)
	if err != nil {
		if err == sql.ErrNoRows {
			return fail(c, http.StatusNotFound, "task not found")
		}
		return internalError(c)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": t})
}

// Delete removes an owned task and echoes its id.
func (h *TaskHandler) Delete(c echo.Context) error {
	cl, ok := middleware.ClaimsFrom(c)
	if !ok {
		return fail(c, http.StatusUnauthorized, "invalid or expired token")
	}
	id, ok := taskID(c)
	if !ok {
		return fail(c, http.StatusBadRequest, "invalid task id")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Tasks.Delete(ctx, cl.UserID, id); err != nil {
		if err == sql.ErrNoRows {
			return fail(c, http.StatusNotFound, "task not found")
		}
		return internalError(c)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"id": id}})
}
