package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/teamtrack/teamtrack-api/internal/core/ports"
)

// DashboardHandler serves the global aggregation views. The dashboard is
// deliberately not role-scoped: every authenticated caller sees the same
// numbers.
type DashboardHandler struct {
	service ports.DashboardService
}

func NewDashboardHandler(service ports.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: service}
}

type dashboardStatsResponse struct {
	Overview        ports.Overview        `json:"overview"`
	TasksByStatus   []ports.StatusCount   `json:"tasksByStatus"`
	TasksByPriority []ports.PriorityCount `json:"tasksByPriority"`
	RecentTasks     []taskResponse        `json:"recentTasks"`
}

// Stats handles GET /api/dashboard/stats.
//
// @Summary      Global dashboard statistics
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  envelope{data=dashboardStatsResponse}
// @Failure      401  {object}  envelope
// @Router       /dashboard/stats [get]
func (h *DashboardHandler) Stats(c echo.Context) error {
	stats, err := h.service.Stats(c.Request().Context())
	if err != nil {
		return err
	}

	return respond(c, http.StatusOK, dashboardStatsResponse{
		Overview:        stats.Overview,
		TasksByStatus:   stats.TasksByStatus,
		TasksByPriority: stats.TasksByPriority,
		RecentTasks:     toTaskResponses(stats.RecentTasks),
	})
}

// EmployeeWorkload handles GET /api/dashboard/employee-workload.
//
// @Summary      Per-employee task counts
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  envelope{data=[]ports.EmployeeWorkload}
// @Failure      401  {object}  envelope
// @Router       /dashboard/employee-workload [get]
func (h *DashboardHandler) EmployeeWorkload(c echo.Context) error {
	workload, err := h.service.EmployeeWorkload(c.Request().Context())
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, workload)
}
