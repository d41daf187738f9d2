package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/taskflow/taskflow-api/internal/core/analytics"
	"github.com/taskflow/taskflow-api/internal/core/ports"
)

type analyticsService struct {
	users    ports.UserRepository
	projects ports.ProjectRepository
	tasks    ports.TaskRepository
	clock    Clock
	log      zerolog.Logger
}

// NewAnalyticsService returns an AnalyticsService implementation.
func NewAnalyticsService(
	users ports.UserRepository,
	projects ports.ProjectRepository,
	tasks ports.TaskRepository,
	clock Clock,
	log zerolog.Logger,
) ports.AnalyticsService {
	return &analyticsService{users: users, projects: projects, tasks: tasks, clock: clock, log: log}
}

func (s *analyticsService) Overview(ctx context.Context) (*analytics.Summary, error) {
	ds, err := loadDataset(ctx, s.users, s.projects, s.tasks)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to load analytics dataset")
		return nil, fmt.Errorf("analytics overview: %w", err)
	}
	summary := analytics.SystemAnalytics(ds, s.clock.now())
	return &summary, nil
}
