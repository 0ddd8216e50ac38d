package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/fixflow/maintenance-system/internal/core/domain"
	"github.com/fixflow/maintenance-system/internal/core/ports"
)

// StatsCache is an optional read-through cache in front of the aggregation.
type StatsCache interface {
	Get(ctx context.Context) (*ports.Stats, bool)
	Set(ctx context.Context, stats *ports.Stats)
}

// StatsService derives dashboard counts from current repository state.
type StatsService struct {
	repo   ports.ReportRepository
	cache  StatsCache // optional
	logger zerolog.Logger
}

func NewStatsService(repo ports.ReportRepository, cache StatsCache, logger zerolog.Logger) *StatsService {
	return &StatsService{repo: repo, cache: cache, logger: logger}
}

func (s *StatsService) ComputeStats(ctx context.Context) (*ports.Stats, error) {
	if s.cache != nil {
		if cached, ok := s.cache.Get(ctx); ok {
			return cached, nil
		}
	}

	reports, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	stats := Aggregate(reports)

	if s.cache != nil {
		s.cache.Set(ctx, stats)
	}
	return stats, nil
}

// Aggregate is a pure function of the report set; it backs ComputeStats and is
// exported for direct use in tests.
func Aggregate(reports []*domain.Report) *ports.Stats {
	stats := &ports.Stats{
		TotalReports: len(reports),
		ByCategory:   map[string]int{},
	}

	for _, r := range reports {
		switch r.Status {
		case domain.StatusPending:
			stats.PendingReports++
		case domain.StatusInProgress:
			stats.InProgressReports++
		case domain.StatusResolved:
			stats.ResolvedReports++
		}
		if r.Priority == domain.PriorityHigh {
			stats.HighPriority++
		}

		category := r.Category
		if category == "" {
			category = "Other"
		}
		stats.ByCategory[category]++
	}

	return stats
}
