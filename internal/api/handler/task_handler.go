package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/teamtrack/teamtrack-api/internal/core/domain"
	"github.com/teamtrack/teamtrack-api/internal/core/ports"
)

// TaskHandler handles HTTP requests for task operations. Listing and
// status updates are open to all authenticated users (scoped by role in
// the service); create/update/delete routes are mounted behind the admin
// RBAC middleware.
type TaskHandler struct {
	service ports.TaskService
}

func NewTaskHandler(service ports.TaskService) *TaskHandler {
	return &TaskHandler{service: service}
}

// List handles GET /api/tasks.
//
// @Summary      List tasks visible to the caller
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Param        status       query  string  false  "Filter by status"
// @Param        priority     query  string  false  "Filter by priority"
// @Param        assigned_to  query  string  false  "Admin only: employee id or 'unassigned'"
// @Param        search       query  string  false  "Free-text search on title/description"
// @Success      200  {object}  envelope{data=[]taskResponse}
// @Failure      401  {object}  envelope
// @Router       /tasks [get]
func (h *TaskHandler) List(c echo.Context) error {
	caller, err := ctxCaller(c)
	if err != nil {
		return err
	}

	details, err := h.service.List(c.Request().Context(), ports.ListTasksInput{
		Caller:     caller,
		Status:     c.QueryParam("status"),
		Priority:   c.QueryParam("priority"),
		AssignedTo: c.QueryParam("assigned_to"),
		Search:     c.QueryParam("search"),
	})
	if err != nil {
		return err
	}

	resp := toTaskResponses(details)
	return respondList(c, http.StatusOK, resp, len(resp))
}

// Get handles GET /api/tasks/:id.
//
// @Summary      Get a task by id
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Task id"
// @Success      200  {object}  envelope{data=taskResponse}
// @Failure      404  {object}  envelope
// @Router       /tasks/{id} [get]
func (h *TaskHandler) Get(c echo.Context) error {
	detail, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, toTaskResponse(detail))
}

// Create handles POST /api/tasks (admin only).
//
// @Summary      Create a task
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createTaskRequest  true  "Task details"
// @Success      201   {object}  envelope{data=taskResponse}
// @Failure      400   {object}  envelope
// @Failure      403   {object}  envelope
// @Router       /tasks [post]
func (h *TaskHandler) Create(c echo.Context) error {
	var req createTaskRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "validation failed", validationFields(err)...)
	}

	in, err := toCreateTaskInput(req)
	if err != nil {
		return respondError(c, http.StatusBadRequest, "deadline must be a valid date")
	}

	detail, err := h.service.Create(c.Request().Context(), in)
	if err != nil {
		return err
	}
	return respondMsg(c, http.StatusCreated, toTaskResponse(detail), "Task created successfully")
}

// Update handles PUT /api/tasks/:id (admin only).
//
// @Summary      Update a task
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "Task id"
// @Param        body  body      updateTaskRequest  true  "Fields to update"
// @Success      200   {object}  envelope{data=taskResponse}
// @Failure      400   {object}  envelope
// @Failure      404   {object}  envelope
// @Router       /tasks/{id} [put]
func (h *TaskHandler) Update(c echo.Context) error {
	var req updateTaskRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "validation failed", validationFields(err)...)
	}

	in, err := toUpdateTaskInput(req)
	if err != nil {
		return respondError(c, http.StatusBadRequest, "deadline must be a valid date")
	}

	detail, err := h.service.Update(c.Request().Context(), c.Param("id"), in)
	if err != nil {
		return err
	}
	return respondMsg(c, http.StatusOK, toTaskResponse(detail), "Task updated successfully")
}

// UpdateStatus handles PATCH /api/tasks/:id/status. Regular users may only
// update tasks assigned to their own employee record.
//
// @Summary      Update a task's status
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                   true  "Task id"
// @Param        body  body      updateTaskStatusRequest  true  "New status"
// @Success      200   {object}  envelope{data=taskResponse}
// @Failure      400   {object}  envelope
// @Failure      403   {object}  envelope
// @Failure      404   {object}  envelope
// @Router       /tasks/{id}/status [patch]
func (h *TaskHandler) UpdateStatus(c echo.Context) error {
	caller, err := ctxCaller(c)
	if err != nil {
		return err
	}

	var req updateTaskStatusRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "Invalid status. Must be: To Do, In Progress, or Completed")
	}

	detail, err := h.service.UpdateStatus(c.Request().Context(), caller, c.Param("id"), domain.TaskStatus(req.Status))
	if err != nil {
		return err
	}
	return respondMsg(c, http.StatusOK, toTaskResponse(detail), "Task status updated successfully")
}

// Delete handles DELETE /api/tasks/:id (admin only).
//
// @Summary      Delete a task
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Task id"
// @Success      200  {object}  envelope
// @Failure      404  {object}  envelope
// @Router       /tasks/{id} [delete]
func (h *TaskHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return respondMsg(c, http.StatusOK, nil, "Task deleted successfully")
}
