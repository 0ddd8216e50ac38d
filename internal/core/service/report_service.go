package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/fixflow/maintenance-system/internal/core/domain"
	"github.com/fixflow/maintenance-system/internal/core/ports"
)

// AuditRecorder receives audit events for report mutations. Recording is
// fire-and-forget; failures never abort the mutation that triggered them.
type AuditRecorder interface {
	Record(ev domain.AuditEvent)
}

// StatsInvalidator drops any cached stats snapshot after a mutation.
type StatsInvalidator interface {
	Invalidate(ctx context.Context)
}

// ReportService implements the report use cases and the central authorization
// policy: role, specialty, and assignment checks happen here, before any
// repository call.
type ReportService struct {
	repo   ports.ReportRepository
	users  ports.UserRepository
	audits ports.AuditRepository
	trail  AuditRecorder    // optional
	cache  StatsInvalidator // optional
	logger zerolog.Logger
}

func NewReportService(
	repo ports.ReportRepository,
	users ports.UserRepository,
	audits ports.AuditRepository,
	trail AuditRecorder,
	cache StatsInvalidator,
	logger zerolog.Logger,
) *ReportService {
	return &ReportService{
		repo:   repo,
		users:  users,
		audits: audits,
		trail:  trail,
		cache:  cache,
		logger: logger,
	}
}

// ListReports returns the reports visible to the actor: everything for admins,
// the specialty/assignment-filtered subset for workers.
func (s *ReportService) ListReports(ctx context.Context, actor ports.Actor) ([]*domain.Report, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	if actor.Role == domain.RoleAdmin {
		return all, nil
	}

	if actor.Specialty == "" {
		return nil, domain.ErrMissingSpecialty
	}

	w := &domain.User{Name: actor.Name, Specialty: actor.Specialty}
	visible := make([]*domain.Report, 0, len(all))
	for _, r := range all {
		if r.VisibleTo(w) {
			visible = append(visible, r)
		}
	}
	return visible, nil
}

// ListPublic returns every report with no filtering. The public ticket board
// intentionally bypasses role checks.
func (s *ReportService) ListPublic(ctx context.Context) ([]*domain.Report, error) {
	return s.repo.List(ctx)
}

func (s *ReportService) GetReport(ctx context.Context, actor ports.Actor, id string) (*domain.Report, error) {
	r, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if actor.Role != domain.RoleAdmin && r.AssignedTo != actor.Name {
		return nil, domain.ErrForbidden
	}
	return r, nil
}

func (s *ReportService) CreateReport(ctx context.Context, actor ports.Actor, input ports.CreateReportInput) (*domain.Report, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", domain.ErrValidation)
	}

	category := input.Category
	if category == "" {
		category = "Other"
	}
	location := strings.TrimSpace(input.Location)
	if location == "" {
		location = "Unknown"
	}
	priority := domain.ReportPriority(input.Priority)
	if priority == "" {
		priority = domain.PriorityMedium
	}

	now := time.Now().UTC()
	r := &domain.Report{
		ID:          uuid.NewString(),
		Title:       title,
		Description: strings.TrimSpace(input.Description),
		Location:    location,
		Category:    category,
		ImagePath:   input.ImagePath,
		Status:      domain.StatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
		ReportedBy:  actor.Name,
		AssignedTo:  domain.AutoAssignee(category),
		Priority:    priority,
		Notes:       []domain.Note{},
	}

	if err := s.repo.Create(ctx, r); err != nil {
		s.logger.Error().Err(err).Msg("failed to create report")
		return nil, err
	}

	s.record(ctx, domain.AuditEvent{
		ReportID: r.ID,
		Action:   domain.AuditCreated,
		Actor:    actor.Name,
		Detail:   r.Title,
	})
	s.logger.Info().Str("report_id", r.ID).Str("category", r.Category).Msg("report created")

	return r, nil
}

// UpdateReport patches the fields present in input and appends a note when one
// is supplied. Non-admins may only touch reports already assigned to them.
func (s *ReportService) UpdateReport(ctx context.Context, actor ports.Actor, id string, input ports.UpdateReportInput) (*domain.Report, error) {
	if input.AssignedTo != nil && *input.AssignedTo != "" {
		if err := s.checkAssignee(ctx, *input.AssignedTo); err != nil {
			return nil, err
		}
	}

	updated, err := s.repo.Update(ctx, id, func(r *domain.Report) error {
		if actor.Role != domain.RoleAdmin && r.AssignedTo != actor.Name {
			return domain.ErrForbidden
		}

		if input.Title != nil {
			r.Title = *input.Title
		}
		if input.Description != nil {
			r.Description = *input.Description
		}
		if input.Status != nil {
			r.Status = domain.ReportStatus(*input.Status)
		}
		if input.Priority != nil {
			r.Priority = domain.ReportPriority(*input.Priority)
		}
		if input.AssignedTo != nil {
			r.AssignedTo = *input.AssignedTo
		}

		if note := strings.TrimSpace(input.Note); note != "" {
			r.Notes = append(r.Notes, domain.Note{
				ID:         uuid.NewString(),
				Text:       input.Note,
				Author:     actor.Name,
				Timestamp:  time.Now().UTC(),
				IsInternal: true,
			})
		}

		r.UpdatedAt = time.Now().UTC()
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.record(ctx, domain.AuditEvent{
		ReportID: id,
		Action:   domain.AuditUpdated,
		Actor:    actor.Name,
	})

	return updated, nil
}

func (s *ReportService) DeleteReport(ctx context.Context, id string) error {
	removed, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !removed {
		return domain.ErrReportNotFound
	}

	s.record(ctx, domain.AuditEvent{ReportID: id, Action: domain.AuditDeleted})
	s.logger.Info().Str("report_id", id).Msg("report deleted")
	return nil
}

// SetStatus moves a task to one of the settable statuses. Workers may only act
// on reports that are unassigned or assigned to them; taking an unassigned
// report in progress claims it, and completing a report stamps who and when.
// Completion timestamps are re-stamped on every call; only the final status
// value is idempotent.
func (s *ReportService) SetStatus(ctx context.Context, actor ports.Actor, id string, status string) (*domain.Report, error) {
	next := domain.ReportStatus(status)
	if !next.Settable() {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidStatus, status)
	}

	updated, err := s.repo.Update(ctx, id, func(r *domain.Report) error {
		if actor.Role == domain.RoleWorker && r.AssignedTo != "" && r.AssignedTo != actor.Name {
			return domain.ErrForbidden
		}

		now := time.Now().UTC()
		prev := r.Status
		r.Status = next
		r.UpdatedAt = now

		switch {
		case next == domain.StatusCompleted:
			r.CompletedBy = actor.Name
			r.CompletedAt = &now
		case next == domain.StatusInProgress && r.AssignedTo == "":
			r.AssignedTo = actor.Name
			r.AssignedAt = &now
		}

		s.logger.Debug().
			Str("report_id", r.ID).
			Str("from", string(prev)).
			Str("to", string(next)).
			Msg("task status changed")
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.record(ctx, domain.AuditEvent{
		ReportID: id,
		Action:   domain.AuditStatusChanged,
		Actor:    actor.Name,
		Detail:   status,
	})

	return updated, nil
}

func (s *ReportService) Activity(ctx context.Context, id string) ([]*domain.AuditEvent, error) {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return nil, err
	}
	return s.audits.ListByReport(ctx, id)
}

// checkAssignee validates an admin reassignment target against the worker list
// and the auto-assignment team names. Free-text on the wire, but typos are
// caught at write time.
func (s *ReportService) checkAssignee(ctx context.Context, name string) error {
	if domain.IsTeamAssignee(name) {
		return nil
	}

	workers, err := s.users.ListWorkers(ctx)
	if err != nil {
		return err
	}
	for _, w := range workers {
		if w.Name == name {
			return nil
		}
	}
	return fmt.Errorf("%w: %q", domain.ErrUnknownAssignee, name)
}

func (s *ReportService) record(ctx context.Context, ev domain.AuditEvent) {
	ev.Timestamp = time.Now().UTC()
	if s.trail != nil {
		s.trail.Record(ev)
	}
	if s.cache != nil {
		s.cache.Invalidate(ctx)
	}
}
