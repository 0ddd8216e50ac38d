package domain

import (
	"errors"
	"time"
)

// ReportStatus represents the lifecycle state of a maintenance report.
type ReportStatus string

const (
	StatusPending    ReportStatus = "pending"
	StatusInProgress ReportStatus = "in-progress"
	StatusResolved   ReportStatus = "resolved"
	StatusCompleted  ReportStatus = "completed"
)

// settableStatuses is the set of statuses the task-status endpoint accepts.
// "resolved" is a legal stored status (seed data, free-form report updates)
// but is intentionally not settable through that endpoint.
var settableStatuses = map[ReportStatus]struct{}{
	StatusPending:    {},
	StatusInProgress: {},
	StatusCompleted:  {},
}

// Settable reports whether s may be applied via the task-status operation.
func (s ReportStatus) Settable() bool {
	_, ok := settableStatuses[s]
	return ok
}

// ReportPriority is the urgency assigned to a report.
type ReportPriority string

const (
	PriorityLow    ReportPriority = "low"
	PriorityMedium ReportPriority = "medium"
	PriorityHigh   ReportPriority = "high"
)

var ErrReportNotFound = errors.New("report not found")
var ErrForbidden = errors.New("access forbidden")
var ErrValidation = errors.New("validation failed")
var ErrInvalidStatus = errors.New("invalid status")
var ErrMissingSpecialty = errors.New("worker specialty not defined")
var ErrUnknownAssignee = errors.New("assignee is not a known worker")

// autoAssignments maps report categories to the team that picks them up on
// creation. Categories absent from the table stay unassigned.
var autoAssignments = map[string]string{
	"Structural": "Civil Team",
	"Electrical": "Electrical Team",
}

// AutoAssignee returns the team auto-assigned to a category, or "" when the
// category has no standing assignment.
func AutoAssignee(category string) string {
	return autoAssignments[category]
}

// IsTeamAssignee reports whether name is one of the standing team assignees.
func IsTeamAssignee(name string) bool {
	for _, team := range autoAssignments {
		if team == name {
			return true
		}
	}
	return false
}

// Note is an append-only comment attached to a report.
type Note struct {
	ID         string    `json:"id" bson:"id"`
	Text       string    `json:"text" bson:"text"`
	Author     string    `json:"author" bson:"author"`
	Timestamp  time.Time `json:"timestamp" bson:"timestamp"`
	IsInternal bool      `json:"isInternal" bson:"is_internal"`
}

// Report is the core aggregate: a submitted maintenance issue.
//
// AssignedTo holds a worker's display name or a team name; an empty string
// means unassigned. It is free text on the wire and is validated against the
// worker list only on admin reassignment.
type Report struct {
	ID          string         `json:"id" bson:"_id"`
	Title       string         `json:"title" bson:"title"`
	Description string         `json:"description" bson:"description"`
	Location    string         `json:"location" bson:"location"`
	Category    string         `json:"category" bson:"category"`
	ImagePath   string         `json:"image_path,omitempty" bson:"image_path,omitempty"`
	Status      ReportStatus   `json:"status" bson:"status"`
	CreatedAt   time.Time      `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at" bson:"updated_at"`
	ReportedBy  string         `json:"reported_by" bson:"reported_by"`
	AssignedTo  string         `json:"assigned_to,omitempty" bson:"assigned_to,omitempty"`
	AssignedAt  *time.Time     `json:"assigned_at,omitempty" bson:"assigned_at,omitempty"`
	Priority    ReportPriority `json:"priority" bson:"priority"`
	Notes       []Note         `json:"notes" bson:"notes"`
	CompletedBy string         `json:"completed_by,omitempty" bson:"completed_by,omitempty"`
	CompletedAt *time.Time     `json:"completed_at,omitempty" bson:"completed_at,omitempty"`
}

// VisibleTo reports whether a worker sees r in their filtered list: the
// category must match the worker's specialty and the report must be either
// unassigned or assigned to that worker.
func (r *Report) VisibleTo(w *User) bool {
	if r.Category != w.Specialty {
		return false
	}
	return r.AssignedTo == "" || r.AssignedTo == w.Name
}
