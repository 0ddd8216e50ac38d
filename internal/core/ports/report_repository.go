package ports

import (
	"context"

	"github.com/fixflow/maintenance-system/internal/core/domain"
)

// ReportRepository defines persistence operations for maintenance reports.
//
// Update applies mutate to the stored report identified by id and persists the
// result. Implementations must serialize Update calls for the same id so a
// concurrent read-modify-write cannot lose fields; mutate returning an error
// aborts the update without persisting.
type ReportRepository interface {
	Create(ctx context.Context, r *domain.Report) error
	GetByID(ctx context.Context, id string) (*domain.Report, error)
	List(ctx context.Context) ([]*domain.Report, error)
	Update(ctx context.Context, id string, mutate func(r *domain.Report) error) (*domain.Report, error)
	// Delete removes the report and reports whether anything was removed.
	Delete(ctx context.Context, id string) (bool, error)
}

// AuditRepository persists the append-only report audit trail.
type AuditRepository interface {
	Insert(ctx context.Context, ev *domain.AuditEvent) error
	ListByReport(ctx context.Context, reportID string) ([]*domain.AuditEvent, error)
}
