// Package metrics defines and registers all custom Prometheus metrics for the
// maintenance API. It is the single source of truth for metric names, labels,
// and help strings; metrics register with the default registry at import time.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "maintenance"

// LoginsTotal counts login attempts.
// Label:
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, labelled by result.",
	},
	[]string{"result"},
)

// ReportsCreatedTotal counts newly submitted reports.
// Label:
//   - category: the report category (e.g. "Plumbing")
var ReportsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "reports_created_total",
		Help:      "Total number of reports created, by category.",
	},
	[]string{"category"},
)

// TaskStatusTotal counts successful task status transitions.
// Label:
//   - status: the applied status ("pending", "in-progress", "completed")
var TaskStatusTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "task_status_total",
		Help:      "Total number of task status updates applied, by new status.",
	},
	[]string{"status"},
)

// UploadsTotal counts image upload outcomes.
// Label:
//   - result: "stored", "rejected", or "failed"
var UploadsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "uploads_total",
		Help:      "Total number of image uploads, labelled by outcome.",
	},
	[]string{"result"},
)
