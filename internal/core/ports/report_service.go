package ports

import (
	"context"

	"github.com/fixflow/maintenance-system/internal/core/domain"
)

// Actor identifies the authenticated caller to the service layer.
type Actor struct {
	Role      string
	Name      string
	Specialty string
}

// ActorFrom builds an Actor from a resolved user.
func ActorFrom(u *domain.User) Actor {
	return Actor{Role: u.Role, Name: u.Name, Specialty: u.Specialty}
}

// CreateReportInput carries the fields accepted when submitting a report.
// Empty Description/Location/Category/Priority take the documented defaults.
type CreateReportInput struct {
	Title       string
	Description string
	Location    string
	Category    string
	Priority    string
	ImagePath   string
}

// UpdateReportInput is a patch: nil pointers leave the stored field untouched.
// A non-empty Note appends a new internal note authored by the caller.
type UpdateReportInput struct {
	Title       *string
	Description *string
	Status      *string
	Priority    *string
	AssignedTo  *string
	Note        string
}

// Stats is the aggregate view served to administrators.
type Stats struct {
	TotalReports      int            `json:"total_reports"`
	PendingReports    int            `json:"pending_reports"`
	InProgressReports int            `json:"in_progress_reports"`
	ResolvedReports   int            `json:"resolved_reports"`
	HighPriority      int            `json:"high_priority"`
	ByCategory        map[string]int `json:"by_category"`
}

// ReportService defines the use-case operations over reports. Authorization
// is enforced here: every method takes the acting user and applies the
// role/specialty/assignment policy before touching the repository.
type ReportService interface {
	ListReports(ctx context.Context, actor Actor) ([]*domain.Report, error)
	// ListPublic returns all reports with no auth filtering (public board).
	ListPublic(ctx context.Context) ([]*domain.Report, error)
	GetReport(ctx context.Context, actor Actor, id string) (*domain.Report, error)
	CreateReport(ctx context.Context, actor Actor, input CreateReportInput) (*domain.Report, error)
	UpdateReport(ctx context.Context, actor Actor, id string, input UpdateReportInput) (*domain.Report, error)
	DeleteReport(ctx context.Context, id string) error
	// SetStatus applies a task status transition with the worker
	// claim/completion side effects.
	SetStatus(ctx context.Context, actor Actor, id string, status string) (*domain.Report, error)
	// Activity returns the audit trail for a report.
	Activity(ctx context.Context, id string) ([]*domain.AuditEvent, error)
}

// StatsService aggregates repository state for the admin dashboard.
type StatsService interface {
	ComputeStats(ctx context.Context) (*Stats, error)
}
