// Package memory provides the default in-process storage backend. All state
// is lost on restart; mutations are serialized behind a mutex so concurrent
// handlers cannot lose updates.
package memory

import (
	"context"
	"sync"

	"github.com/fixflow/maintenance-system/internal/core/domain"
)

// ReportRepository is a mutex-guarded in-memory report store.
type ReportRepository struct {
	mu      sync.RWMutex
	reports map[string]*domain.Report
	order   []string // insertion order for stable listings
}

// NewReportRepository returns a store pre-populated with seed, in order.
func NewReportRepository(seed []*domain.Report) *ReportRepository {
	r := &ReportRepository{reports: make(map[string]*domain.Report, len(seed))}
	for _, rep := range seed {
		clone := cloneReport(rep)
		r.reports[clone.ID] = clone
		r.order = append(r.order, clone.ID)
	}
	return r
}

func (r *ReportRepository) Create(_ context.Context, rep *domain.Report) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	clone := cloneReport(rep)
	r.reports[clone.ID] = clone
	r.order = append(r.order, clone.ID)
	return nil
}

func (r *ReportRepository) GetByID(_ context.Context, id string) (*domain.Report, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rep, ok := r.reports[id]
	if !ok {
		return nil, domain.ErrReportNotFound
	}
	return cloneReport(rep), nil
}

func (r *ReportRepository) List(_ context.Context) ([]*domain.Report, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*domain.Report, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, cloneReport(r.reports[id]))
	}
	return out, nil
}

// Update runs mutate on a copy under the write lock and commits the copy only
// when mutate succeeds, so a failed authorization check leaves the stored
// report untouched.
func (r *ReportRepository) Update(_ context.Context, id string, mutate func(rep *domain.Report) error) (*domain.Report, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.reports[id]
	if !ok {
		return nil, domain.ErrReportNotFound
	}

	working := cloneReport(stored)
	if err := mutate(working); err != nil {
		return nil, err
	}

	r.reports[id] = working
	return cloneReport(working), nil
}

func (r *ReportRepository) Delete(_ context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.reports[id]; !ok {
		return false, nil
	}
	delete(r.reports, id)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return true, nil
}

// cloneReport deep-copies a report so callers never share note slices or
// timestamp pointers with stored state.
func cloneReport(rep *domain.Report) *domain.Report {
	clone := *rep
	if rep.Notes != nil {
		clone.Notes = make([]domain.Note, len(rep.Notes))
		copy(clone.Notes, rep.Notes)
	}
	if rep.AssignedAt != nil {
		t := *rep.AssignedAt
		clone.AssignedAt = &t
	}
	if rep.CompletedAt != nil {
		t := *rep.CompletedAt
		clone.CompletedAt = &t
	}
	return &clone
}
