// Package metrics defines and registers the custom Prometheus metrics for
// the TeamTrack API. It is the single source of truth for metric names,
// labels, and help strings. Metrics register with the default registry at
// import time via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "teamtrack"

// TasksCreatedTotal counts newly created tasks.
// Label:
//   - priority: "Low", "Medium", or "High"
var TasksCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tasks_created_total",
		Help:      "Total number of tasks created, by priority.",
	},
	[]string{"priority"},
)

// TaskStatusUpdatesTotal counts status changes applied through the API.
// Label:
//   - status: the new status value (e.g. "Completed")
var TaskStatusUpdatesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "task_status_updates_total",
		Help:      "Total number of task status updates, by new status.",
	},
	[]string{"status"},
)

// EmployeeLinksRepairedTotal counts lazy user-to-employee link repairs
// performed on the task read path.
var EmployeeLinksRepairedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "employee_links_repaired_total",
		Help:      "Total number of user accounts lazily linked to an employee record.",
	},
)

// LoginsTotal counts login attempts.
// Label:
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)
