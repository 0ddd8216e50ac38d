package handler

import (
	"github.com/fixflow/maintenance-system/internal/core/domain"
	"github.com/fixflow/maintenance-system/internal/core/ports"
)

// All success payloads share the {success:true, ...} envelope; failures are
// rendered centrally by the HTTP error handler.

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	Success bool         `json:"success"`
	Token   string       `json:"token"`
	User    *domain.User `json:"user"`
}

type reportsResponse struct {
	Success bool             `json:"success"`
	Reports []*domain.Report `json:"reports"`
}

type reportResponse struct {
	Success bool           `json:"success"`
	Report  *domain.Report `json:"report"`
	Message string         `json:"message,omitempty"`
}

type messageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// updateReportRequest is a patch: absent fields stay untouched, which is why
// every patchable field is a pointer.
type updateReportRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
	Priority    *string `json:"priority"`
	AssignedTo  *string `json:"assigned_to"`
	Note        string  `json:"note"`
}

type statusRequest struct {
	Status string `json:"status" validate:"required"`
}

type taskResponse struct {
	Success bool           `json:"success"`
	Message string         `json:"message"`
	Task    *domain.Report `json:"task"`
}

// workerView is the /api/workers item. Team grouping never made it into the
// user model, so team is always "Unassigned"; the field stays for wire
// compatibility with the dashboard.
type workerView struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Username string `json:"username"`
	Team     string `json:"team"`
}

type workersResponse struct {
	Success bool         `json:"success"`
	Workers []workerView `json:"workers"`
}

type statsResponse struct {
	Success bool         `json:"success"`
	Stats   *ports.Stats `json:"stats"`
}

type activityResponse struct {
	Success bool                 `json:"success"`
	Events  []*domain.AuditEvent `json:"events"`
}
