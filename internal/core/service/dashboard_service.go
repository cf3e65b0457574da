package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/teamtrack/teamtrack-api/internal/core/ports"
)

const (
	recentTasksLimit = 10
	statsCacheTTL    = 30 * time.Second

	statsCacheKey    = "dashboard:stats"
	workloadCacheKey = "dashboard:workload"
)

// DashboardService serves the global aggregation views. Results are not
// scoped by role: every authenticated caller sees the same numbers, even
// though task listing is scoped. Payloads are cached in Redis for a short
// TTL; cache failures fall through to the repository.
type DashboardService struct {
	repo  ports.DashboardRepository
	cache ports.StatsCache
	log   zerolog.Logger
}

func NewDashboardService(repo ports.DashboardRepository, cache ports.StatsCache, log zerolog.Logger) *DashboardService {
	return &DashboardService{repo: repo, cache: cache, log: log}
}

func (s *DashboardService) Stats(ctx context.Context) (*ports.DashboardStats, error) {
	var cached ports.DashboardStats
	if hit := s.cacheGet(ctx, statsCacheKey, &cached); hit {
		return &cached, nil
	}

	overview, err := s.repo.Overview(ctx)
	if err != nil {
		return nil, err
	}
	byStatus, err := s.repo.TasksByStatus(ctx)
	if err != nil {
		return nil, err
	}
	byPriority, err := s.repo.TasksByPriority(ctx)
	if err != nil {
		return nil, err
	}
	recent, err := s.repo.RecentTasks(ctx, recentTasksLimit)
	if err != nil {
		return nil, err
	}

	stats := &ports.DashboardStats{
		Overview:        *overview,
		TasksByStatus:   byStatus,
		TasksByPriority: byPriority,
		RecentTasks:     recent,
	}
	s.cacheSet(ctx, statsCacheKey, stats)
	return stats, nil
}

func (s *DashboardService) EmployeeWorkload(ctx context.Context) ([]ports.EmployeeWorkload, error) {
	var cached []ports.EmployeeWorkload
	if hit := s.cacheGet(ctx, workloadCacheKey, &cached); hit {
		return cached, nil
	}

	workload, err := s.repo.Workload(ctx)
	if err != nil {
		return nil, err
	}
	s.cacheSet(ctx, workloadCacheKey, workload)
	return workload, nil
}

func (s *DashboardService) cacheGet(ctx context.Context, key string, dest any) bool {
	if s.cache == nil {
		return false
	}
	hit, err := s.cache.Get(ctx, key, dest)
	if err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("stats cache read failed")
		return false
	}
	return hit
}

func (s *DashboardService) cacheSet(ctx context.Context, key string, value any) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, key, value, statsCacheTTL); err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("stats cache write failed")
	}
}
