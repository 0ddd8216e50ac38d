package memory

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/fixflow/maintenance-system/internal/core/domain"
)

func sampleReport(id string) *domain.Report {
	return &domain.Report{
		ID:       id,
		Title:    "Broken Window",
		Category: "Other",
		Status:   domain.StatusPending,
		Priority: domain.PriorityMedium,
		Notes:    []domain.Note{},
	}
}

func TestReportRepository_CRUD(t *testing.T) {
	ctx := context.Background()
	repo := NewReportRepository(nil)

	if _, err := repo.GetByID(ctx, "missing"); !errors.Is(err, domain.ErrReportNotFound) {
		t.Fatalf("expected ErrReportNotFound, got %v", err)
	}

	if err := repo.Create(ctx, sampleReport("r1")); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := repo.Create(ctx, sampleReport("r2")); err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := repo.GetByID(ctx, "r1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Title != "Broken Window" {
		t.Fatalf("got %+v", got)
	}

	all, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 2 || all[0].ID != "r1" || all[1].ID != "r2" {
		t.Fatalf("listing out of order: %+v", all)
	}

	removed, err := repo.Delete(ctx, "r1")
	if err != nil || !removed {
		t.Fatalf("delete: removed=%v err=%v", removed, err)
	}
	removed, err = repo.Delete(ctx, "r1")
	if err != nil || removed {
		t.Fatalf("second delete: removed=%v err=%v", removed, err)
	}

	all, _ = repo.List(ctx)
	if len(all) != 1 || all[0].ID != "r2" {
		t.Fatalf("after delete: %+v", all)
	}
}

func TestReportRepository_UpdateCommitsOnlyOnSuccess(t *testing.T) {
	ctx := context.Background()
	repo := NewReportRepository([]*domain.Report{sampleReport("r1")})

	boom := errors.New("rejected")
	if _, err := repo.Update(ctx, "r1", func(r *domain.Report) error {
		r.Title = "should not stick"
		return boom
	}); !errors.Is(err, boom) {
		t.Fatalf("expected mutate error, got %v", err)
	}

	got, _ := repo.GetByID(ctx, "r1")
	if got.Title != "Broken Window" {
		t.Fatalf("failed mutate leaked: %q", got.Title)
	}

	updated, err := repo.Update(ctx, "r1", func(r *domain.Report) error {
		r.Title = "Patched"
		return nil
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Title != "Patched" {
		t.Fatalf("returned %+v", updated)
	}
	got, _ = repo.GetByID(ctx, "r1")
	if got.Title != "Patched" {
		t.Fatalf("stored %+v", got)
	}
}

func TestReportRepository_ReturnsClones(t *testing.T) {
	ctx := context.Background()
	repo := NewReportRepository([]*domain.Report{sampleReport("r1")})

	got, _ := repo.GetByID(ctx, "r1")
	got.Title = "mutated by caller"
	got.Notes = append(got.Notes, domain.Note{Text: "sneaky"})

	fresh, _ := repo.GetByID(ctx, "r1")
	if fresh.Title != "Broken Window" || len(fresh.Notes) != 0 {
		t.Fatalf("stored state shared with caller: %+v", fresh)
	}
}

func TestReportRepository_ConcurrentUpdates(t *testing.T) {
	ctx := context.Background()
	repo := NewReportRepository([]*domain.Report{sampleReport("r1")})

	const n = 50
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := repo.Update(ctx, "r1", func(r *domain.Report) error {
				r.Notes = append(r.Notes, domain.Note{Text: fmt.Sprintf("note %d", i)})
				return nil
			})
			if err != nil {
				t.Errorf("update %d: %v", i, err)
			}
		}(i)
	}
	wg.Wait()

	got, _ := repo.GetByID(ctx, "r1")
	if len(got.Notes) != n {
		t.Fatalf("lost updates: %d notes, want %d", len(got.Notes), n)
	}
}
