package memory

import (
	"context"
	"sync"

	"github.com/fixflow/maintenance-system/internal/core/domain"
)

// AuditRepository is an append-only in-memory audit trail, grouped by report.
type AuditRepository struct {
	mu     sync.RWMutex
	events map[string][]*domain.AuditEvent
}

func NewAuditRepository() *AuditRepository {
	return &AuditRepository{events: make(map[string][]*domain.AuditEvent)}
}

func (r *AuditRepository) Insert(_ context.Context, ev *domain.AuditEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	clone := *ev
	r.events[ev.ReportID] = append(r.events[ev.ReportID], &clone)
	return nil
}

func (r *AuditRepository) ListByReport(_ context.Context, reportID string) ([]*domain.AuditEvent, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stored := r.events[reportID]
	out := make([]*domain.AuditEvent, 0, len(stored))
	for _, ev := range stored {
		clone := *ev
		out = append(out, &clone)
	}
	return out, nil
}
