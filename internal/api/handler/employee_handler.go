package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/teamtrack/teamtrack-api/internal/core/domain"
	"github.com/teamtrack/teamtrack-api/internal/core/ports"
)

// EmployeeHandler handles HTTP requests for the employee directory.
// Reads are open to all authenticated users; mutations are mounted behind
// the admin RBAC middleware.
type EmployeeHandler struct {
	service ports.EmployeeService
}

func NewEmployeeHandler(service ports.EmployeeService) *EmployeeHandler {
	return &EmployeeHandler{service: service}
}

// List handles GET /api/employees.
//
// @Summary      List employees with their assigned tasks
// @Tags         employees
// @Produce      json
// @Security     BearerAuth
// @Param        department  query  string  false  "Filter by department"
// @Param        role        query  string  false  "Filter by role"
// @Param        search      query  string  false  "Free-text search on name/email"
// @Success      200  {object}  envelope{data=[]employeeResponse}
// @Failure      401  {object}  envelope
// @Router       /employees [get]
func (h *EmployeeHandler) List(c echo.Context) error {
	employees, err := h.service.List(c.Request().Context(), ports.ListEmployeesFilter{
		Department: c.QueryParam("department"),
		Role:       c.QueryParam("role"),
		Search:     c.QueryParam("search"),
	})
	if err != nil {
		return err
	}

	resp := make([]employeeResponse, 0, len(employees))
	for _, w := range employees {
		resp = append(resp, toEmployeeWithTasksResponse(w))
	}
	return respondList(c, http.StatusOK, resp, len(resp))
}

// Get handles GET /api/employees/:id.
//
// @Summary      Get an employee by id
// @Tags         employees
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Employee id"
// @Success      200  {object}  envelope{data=employeeResponse}
// @Failure      404  {object}  envelope
// @Router       /employees/{id} [get]
func (h *EmployeeHandler) Get(c echo.Context) error {
	withTasks, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, toEmployeeWithTasksResponse(withTasks))
}

// Create handles POST /api/employees (admin only).
//
// @Summary      Create an employee
// @Tags         employees
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createEmployeeRequest  true  "Employee details"
// @Success      201   {object}  envelope{data=employeeResponse}
// @Failure      400   {object}  envelope
// @Failure      409   {object}  envelope
// @Router       /employees [post]
func (h *EmployeeHandler) Create(c echo.Context) error {
	var req createEmployeeRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "validation failed", validationFields(err)...)
	}

	emp, err := h.service.Create(c.Request().Context(), ports.CreateEmployeeInput{
		Name:       req.Name,
		Email:      req.Email,
		Role:       domain.EmployeeRole(req.Role),
		Department: domain.Department(req.Department),
		Phone:      req.Phone,
		AvatarURL:  req.AvatarURL,
	})
	if err != nil {
		return err
	}
	return respondMsg(c, http.StatusCreated, toEmployeeResponse(emp), "Employee created successfully")
}

// Update handles PUT /api/employees/:id (admin only).
//
// @Summary      Update an employee
// @Tags         employees
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                 true  "Employee id"
// @Param        body  body      updateEmployeeRequest  true  "Fields to update"
// @Success      200   {object}  envelope{data=employeeResponse}
// @Failure      400   {object}  envelope
// @Failure      404   {object}  envelope
// @Failure      409   {object}  envelope
// @Router       /employees/{id} [put]
func (h *EmployeeHandler) Update(c echo.Context) error {
	var req updateEmployeeRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "validation failed", validationFields(err)...)
	}

	in := ports.UpdateEmployeeInput{
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		AvatarURL: req.AvatarURL,
	}
	if req.Role != nil {
		role := domain.EmployeeRole(*req.Role)
		in.Role = &role
	}
	if req.Department != nil {
		dept := domain.Department(*req.Department)
		in.Department = &dept
	}

	emp, err := h.service.Update(c.Request().Context(), c.Param("id"), in)
	if err != nil {
		return err
	}
	return respondMsg(c, http.StatusOK, toEmployeeResponse(emp), "Employee updated successfully")
}

// Delete handles DELETE /api/employees/:id (admin only). The employee's
// tasks are unassigned as part of the deletion.
//
// @Summary      Delete an employee
// @Tags         employees
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Employee id"
// @Success      200  {object}  envelope
// @Failure      404  {object}  envelope
// @Router       /employees/{id} [delete]
func (h *EmployeeHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return respondMsg(c, http.StatusOK, nil, "Employee deleted successfully")
}
