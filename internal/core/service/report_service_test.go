package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/fixflow/maintenance-system/internal/core/domain"
	"github.com/fixflow/maintenance-system/internal/core/ports"
)

type stubReportRepo struct {
	reports map[string]*domain.Report
	order   []string
}

func newStubReportRepo() *stubReportRepo {
	return &stubReportRepo{reports: make(map[string]*domain.Report)}
}

func (r *stubReportRepo) Create(_ context.Context, rep *domain.Report) error {
	clone := *rep
	r.reports[rep.ID] = &clone
	r.order = append(r.order, rep.ID)
	return nil
}

func (r *stubReportRepo) GetByID(_ context.Context, id string) (*domain.Report, error) {
	rep, ok := r.reports[id]
	if !ok {
		return nil, domain.ErrReportNotFound
	}
	clone := *rep
	return &clone, nil
}

func (r *stubReportRepo) List(_ context.Context) ([]*domain.Report, error) {
	out := make([]*domain.Report, 0, len(r.order))
	for _, id := range r.order {
		clone := *r.reports[id]
		out = append(out, &clone)
	}
	return out, nil
}

func (r *stubReportRepo) Update(_ context.Context, id string, mutate func(rep *domain.Report) error) (*domain.Report, error) {
	stored, ok := r.reports[id]
	if !ok {
		return nil, domain.ErrReportNotFound
	}
	working := *stored
	if err := mutate(&working); err != nil {
		return nil, err
	}
	r.reports[id] = &working
	clone := working
	return &clone, nil
}

func (r *stubReportRepo) Delete(_ context.Context, id string) (bool, error) {
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

type stubAuditRepo struct {
	events []*domain.AuditEvent
}

func (r *stubAuditRepo) Insert(_ context.Context, ev *domain.AuditEvent) error {
	clone := *ev
	r.events = append(r.events, &clone)
	return nil
}

func (r *stubAuditRepo) ListByReport(_ context.Context, reportID string) ([]*domain.AuditEvent, error) {
	var out []*domain.AuditEvent
	for _, ev := range r.events {
		if ev.ReportID == reportID {
			out = append(out, ev)
		}
	}
	return out, nil
}

// syncRecorder writes audit events straight through, so tests need no
// dispatcher goroutines.
type syncRecorder struct {
	audits *stubAuditRepo
}

func (s *syncRecorder) Record(ev domain.AuditEvent) {
	_ = s.audits.Insert(context.Background(), &ev)
}

var (
	adminActor   = ports.Actor{Role: domain.RoleAdmin, Name: "Admin User"}
	plumberActor = ports.Actor{Role: domain.RoleWorker, Name: "John Plumber", Specialty: "Plumbing"}
	sparkyActor  = ports.Actor{Role: domain.RoleWorker, Name: "Jane Electrician", Specialty: "Electrical"}
)

func newTestReportService(t *testing.T) (*ReportService, *stubReportRepo, *stubAuditRepo) {
	t.Helper()
	repo := newStubReportRepo()
	audits := &stubAuditRepo{}
	svc := NewReportService(repo, newStubUserRepo(t), audits, &syncRecorder{audits: audits}, nil, zerolog.Nop())
	return svc, repo, audits
}

func mustCreate(t *testing.T, svc *ReportService, actor ports.Actor, input ports.CreateReportInput) *domain.Report {
	t.Helper()
	rep, err := svc.CreateReport(context.Background(), actor, input)
	if err != nil {
		t.Fatalf("create report: %v", err)
	}
	return rep
}

func TestReportService_Create_Defaults(t *testing.T) {
	svc, _, _ := newTestReportService(t)

	rep := mustCreate(t, svc, adminActor, ports.CreateReportInput{Title: "  Broken Window  "})

	if rep.Title != "Broken Window" {
		t.Errorf("title = %q, want trimmed", rep.Title)
	}
	if rep.Description != "" || rep.Location != "Unknown" || rep.Category != "Other" {
		t.Errorf("defaults wrong: %+v", rep)
	}
	if rep.Priority != domain.PriorityMedium {
		t.Errorf("priority = %q, want medium", rep.Priority)
	}
	if rep.Status != domain.StatusPending {
		t.Errorf("status = %q, want pending", rep.Status)
	}
	if rep.AssignedTo != "" {
		t.Errorf("assigned_to = %q, want unassigned", rep.AssignedTo)
	}
	if rep.ReportedBy != "Admin User" {
		t.Errorf("reported_by = %q", rep.ReportedBy)
	}
	if rep.ID == "" || len(rep.Notes) != 0 {
		t.Errorf("unexpected id/notes: %+v", rep)
	}
	if !rep.CreatedAt.Equal(rep.UpdatedAt) {
		t.Errorf("created_at != updated_at on creation")
	}
}

func TestReportService_Create_BlankTitle(t *testing.T) {
	svc, _, _ := newTestReportService(t)

	if _, err := svc.CreateReport(context.Background(), adminActor, ports.CreateReportInput{Title: "   "}); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestReportService_Create_AutoAssignment(t *testing.T) {
	svc, _, _ := newTestReportService(t)

	cases := []struct {
		category string
		want     string
	}{
		{"Structural", "Civil Team"},
		{"Electrical", "Electrical Team"},
		{"Plumbing", ""},
		{"Other", ""},
	}
	for _, tc := range cases {
		rep := mustCreate(t, svc, adminActor, ports.CreateReportInput{Title: "t", Category: tc.category})
		if rep.AssignedTo != tc.want {
			t.Errorf("category %q assigned to %q, want %q", tc.category, rep.AssignedTo, tc.want)
		}
	}
}

func TestReportService_List_AdminSeesAll(t *testing.T) {
	svc, _, _ := newTestReportService(t)
	mustCreate(t, svc, adminActor, ports.CreateReportInput{Title: "a", Category: "Plumbing"})
	mustCreate(t, svc, adminActor, ports.CreateReportInput{Title: "b", Category: "Electrical"})
	mustCreate(t, svc, adminActor, ports.CreateReportInput{Title: "c", Category: "HVAC"})

	reports, err := svc.ListReports(context.Background(), adminActor)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(reports) != 3 {
		t.Fatalf("admin sees %d reports, want 3", len(reports))
	}
}

func TestReportService_List_WorkerFilter(t *testing.T) {
	svc, _, _ := newTestReportService(t)

	visible1 := mustCreate(t, svc, adminActor, ports.CreateReportInput{Title: "unassigned plumbing", Category: "Plumbing"})
	mine := mustCreate(t, svc, adminActor, ports.CreateReportInput{Title: "mine", Category: "Plumbing"})
	if _, err := svc.UpdateReport(context.Background(), adminActor, mine.ID, ports.UpdateReportInput{AssignedTo: strPtr("John Plumber")}); err != nil {
		t.Fatalf("assign: %v", err)
	}
	theirs := mustCreate(t, svc, adminActor, ports.CreateReportInput{Title: "theirs", Category: "Plumbing"})
	if _, err := svc.UpdateReport(context.Background(), adminActor, theirs.ID, ports.UpdateReportInput{AssignedTo: strPtr("Hank Handyman")}); err != nil {
		t.Fatalf("assign: %v", err)
	}
	mustCreate(t, svc, adminActor, ports.CreateReportInput{Title: "wrong trade", Category: "Electrical"})

	reports, err := svc.ListReports(context.Background(), plumberActor)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}

	got := map[string]bool{}
	for _, r := range reports {
		got[r.ID] = true
	}
	if len(got) != 2 || !got[visible1.ID] || !got[mine.ID] {
		t.Fatalf("worker list wrong, got %d reports: %v", len(got), got)
	}
}

func TestReportService_List_WorkerWithoutSpecialty(t *testing.T) {
	svc, _, _ := newTestReportService(t)

	bare := ports.Actor{Role: domain.RoleWorker, Name: "No Trade"}
	if _, err := svc.ListReports(context.Background(), bare); !errors.Is(err, domain.ErrMissingSpecialty) {
		t.Fatalf("expected ErrMissingSpecialty, got %v", err)
	}
}

func TestReportService_ListPublic_Unfiltered(t *testing.T) {
	svc, _, _ := newTestReportService(t)
	mustCreate(t, svc, adminActor, ports.CreateReportInput{Title: "a", Category: "Plumbing"})
	mustCreate(t, svc, adminActor, ports.CreateReportInput{Title: "b", Category: "Electrical"})

	reports, err := svc.ListPublic(context.Background())
	if err != nil {
		t.Fatalf("public list failed: %v", err)
	}
	if len(reports) != 2 {
		t.Fatalf("public board shows %d, want 2", len(reports))
	}
}

func TestReportService_Get_Permissions(t *testing.T) {
	svc, _, _ := newTestReportService(t)

	rep := mustCreate(t, svc, adminActor, ports.CreateReportInput{Title: "t", Category: "Plumbing"})

	if _, err := svc.GetReport(context.Background(), adminActor, rep.ID); err != nil {
		t.Fatalf("admin get failed: %v", err)
	}
	// Unassigned report: workers cannot fetch it directly.
	if _, err := svc.GetReport(context.Background(), plumberActor, rep.ID); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}

	if _, err := svc.UpdateReport(context.Background(), adminActor, rep.ID, ports.UpdateReportInput{AssignedTo: strPtr("John Plumber")}); err != nil {
		t.Fatalf("assign: %v", err)
	}
	if _, err := svc.GetReport(context.Background(), plumberActor, rep.ID); err != nil {
		t.Fatalf("assigned worker get failed: %v", err)
	}
	if _, err := svc.GetReport(context.Background(), sparkyActor, rep.ID); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for other worker, got %v", err)
	}

	if _, err := svc.GetReport(context.Background(), adminActor, "missing"); !errors.Is(err, domain.ErrReportNotFound) {
		t.Fatalf("expected ErrReportNotFound, got %v", err)
	}
}

func TestReportService_Update_PatchAndNote(t *testing.T) {
	svc, _, _ := newTestReportService(t)

	rep := mustCreate(t, svc, adminActor, ports.CreateReportInput{Title: "old", Category: "Plumbing", Description: "desc"})
	before := rep.UpdatedAt

	time.Sleep(5 * time.Millisecond)
	updated, err := svc.UpdateReport(context.Background(), adminActor, rep.ID, ports.UpdateReportInput{
		Title:    strPtr("new title"),
		Priority: strPtr("high"),
		Note:     "please hurry",
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}

	if updated.Title != "new title" || updated.Priority != domain.PriorityHigh {
		t.Errorf("patch not applied: %+v", updated)
	}
	if updated.Description != "desc" {
		t.Errorf("untouched field changed: %q", updated.Description)
	}
	if len(updated.Notes) != 1 {
		t.Fatalf("expected 1 note, got %d", len(updated.Notes))
	}
	note := updated.Notes[0]
	if note.Text != "please hurry" || note.Author != "Admin User" || !note.IsInternal || note.ID == "" {
		t.Errorf("note wrong: %+v", note)
	}
	if !updated.UpdatedAt.After(before) {
		t.Errorf("updated_at not refreshed")
	}
}

func TestReportService_Update_EmptyNoteSkipped(t *testing.T) {
	svc, _, _ := newTestReportService(t)

	rep := mustCreate(t, svc, adminActor, ports.CreateReportInput{Title: "t"})
	updated, err := svc.UpdateReport(context.Background(), adminActor, rep.ID, ports.UpdateReportInput{Note: "   "})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if len(updated.Notes) != 0 {
		t.Fatalf("blank note appended")
	}
}

func TestReportService_Update_WorkerPermissions(t *testing.T) {
	svc, _, _ := newTestReportService(t)

	rep := mustCreate(t, svc, adminActor, ports.CreateReportInput{Title: "t", Category: "Plumbing"})

	// Not assigned to the worker yet.
	if _, err := svc.UpdateReport(context.Background(), plumberActor, rep.ID, ports.UpdateReportInput{Note: "hi"}); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}

	if _, err := svc.UpdateReport(context.Background(), adminActor, rep.ID, ports.UpdateReportInput{AssignedTo: strPtr("John Plumber")}); err != nil {
		t.Fatalf("assign: %v", err)
	}
	if _, err := svc.UpdateReport(context.Background(), plumberActor, rep.ID, ports.UpdateReportInput{Note: "on it"}); err != nil {
		t.Fatalf("assigned worker update failed: %v", err)
	}
}

func TestReportService_Update_UnknownAssignee(t *testing.T) {
	svc, _, _ := newTestReportService(t)

	rep := mustCreate(t, svc, adminActor, ports.CreateReportInput{Title: "t"})
	_, err := svc.UpdateReport(context.Background(), adminActor, rep.ID, ports.UpdateReportInput{AssignedTo: strPtr("Jhon Plunber")})
	if !errors.Is(err, domain.ErrUnknownAssignee) {
		t.Fatalf("expected ErrUnknownAssignee, got %v", err)
	}

	// Teams and the empty string (unassign) stay valid targets.
	if _, err := svc.UpdateReport(context.Background(), adminActor, rep.ID, ports.UpdateReportInput{AssignedTo: strPtr("Civil Team")}); err != nil {
		t.Fatalf("team assign failed: %v", err)
	}
	if _, err := svc.UpdateReport(context.Background(), adminActor, rep.ID, ports.UpdateReportInput{AssignedTo: strPtr("")}); err != nil {
		t.Fatalf("unassign failed: %v", err)
	}
}

func TestReportService_Delete(t *testing.T) {
	svc, _, _ := newTestReportService(t)

	if err := svc.DeleteReport(context.Background(), "missing"); !errors.Is(err, domain.ErrReportNotFound) {
		t.Fatalf("expected ErrReportNotFound, got %v", err)
	}

	rep := mustCreate(t, svc, adminActor, ports.CreateReportInput{Title: "t"})
	if err := svc.DeleteReport(context.Background(), rep.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := svc.GetReport(context.Background(), adminActor, rep.ID); !errors.Is(err, domain.ErrReportNotFound) {
		t.Fatalf("expected ErrReportNotFound after delete, got %v", err)
	}
}

func TestReportService_SetStatus_InvalidStatus(t *testing.T) {
	svc, _, _ := newTestReportService(t)
	rep := mustCreate(t, svc, adminActor, ports.CreateReportInput{Title: "t"})

	for _, status := range []string{"resolved", "bogus", ""} {
		if _, err := svc.SetStatus(context.Background(), adminActor, rep.ID, status); !errors.Is(err, domain.ErrInvalidStatus) {
			t.Errorf("status %q: expected ErrInvalidStatus, got %v", status, err)
		}
	}
}

func TestReportService_SetStatus_WorkerClaimsUnassigned(t *testing.T) {
	svc, _, _ := newTestReportService(t)
	rep := mustCreate(t, svc, adminActor, ports.CreateReportInput{Title: "t", Category: "Plumbing"})

	task, err := svc.SetStatus(context.Background(), plumberActor, rep.ID, "in-progress")
	if err != nil {
		t.Fatalf("set status failed: %v", err)
	}
	if task.Status != domain.StatusInProgress {
		t.Errorf("status = %q", task.Status)
	}
	if task.AssignedTo != "John Plumber" {
		t.Errorf("assigned_to = %q, want claiming worker", task.AssignedTo)
	}
	if task.AssignedAt == nil {
		t.Error("assigned_at not stamped")
	}
}

func TestReportService_SetStatus_WorkerForeignTask(t *testing.T) {
	svc, _, _ := newTestReportService(t)
	rep := mustCreate(t, svc, adminActor, ports.CreateReportInput{Title: "t", Category: "Plumbing"})
	if _, err := svc.UpdateReport(context.Background(), adminActor, rep.ID, ports.UpdateReportInput{AssignedTo: strPtr("Hank Handyman")}); err != nil {
		t.Fatalf("assign: %v", err)
	}

	if _, err := svc.SetStatus(context.Background(), plumberActor, rep.ID, "in-progress"); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}

	// Admins bypass the assignment check.
	if _, err := svc.SetStatus(context.Background(), adminActor, rep.ID, "in-progress"); err != nil {
		t.Fatalf("admin set status failed: %v", err)
	}
}

func TestReportService_SetStatus_CompletedRestamps(t *testing.T) {
	svc, _, _ := newTestReportService(t)
	rep := mustCreate(t, svc, adminActor, ports.CreateReportInput{Title: "t", Category: "Plumbing"})

	first, err := svc.SetStatus(context.Background(), plumberActor, rep.ID, "completed")
	if err != nil {
		t.Fatalf("first completion failed: %v", err)
	}
	if first.CompletedBy != "John Plumber" || first.CompletedAt == nil {
		t.Fatalf("completion not stamped: %+v", first)
	}
	// Completing does not claim the task.
	if first.AssignedTo != "" {
		t.Errorf("completion claimed the task: %q", first.AssignedTo)
	}

	time.Sleep(5 * time.Millisecond)
	second, err := svc.SetStatus(context.Background(), plumberActor, rep.ID, "completed")
	if err != nil {
		t.Fatalf("second completion failed: %v", err)
	}
	if second.Status != domain.StatusCompleted {
		t.Errorf("status = %q", second.Status)
	}
	// Timestamps are re-stamped on every call; only the status is idempotent.
	if !second.CompletedAt.After(*first.CompletedAt) {
		t.Errorf("completed_at not re-stamped: %v vs %v", second.CompletedAt, first.CompletedAt)
	}
}

func TestReportService_SetStatus_NotFound(t *testing.T) {
	svc, _, _ := newTestReportService(t)
	if _, err := svc.SetStatus(context.Background(), adminActor, "missing", "pending"); !errors.Is(err, domain.ErrReportNotFound) {
		t.Fatalf("expected ErrReportNotFound, got %v", err)
	}
}

func TestReportService_Activity(t *testing.T) {
	svc, _, _ := newTestReportService(t)

	rep := mustCreate(t, svc, adminActor, ports.CreateReportInput{Title: "t", Category: "Plumbing"})
	if _, err := svc.SetStatus(context.Background(), plumberActor, rep.ID, "in-progress"); err != nil {
		t.Fatalf("set status: %v", err)
	}

	events, err := svc.Activity(context.Background(), rep.ID)
	if err != nil {
		t.Fatalf("activity failed: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	if events[0].Action != domain.AuditCreated || events[1].Action != domain.AuditStatusChanged {
		t.Fatalf("unexpected trail: %+v", events)
	}

	if _, err := svc.Activity(context.Background(), "missing"); !errors.Is(err, domain.ErrReportNotFound) {
		t.Fatalf("expected ErrReportNotFound, got %v", err)
	}
}

func strPtr(s string) *string { return &s }
