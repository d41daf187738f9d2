package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/taskflow/taskflow-api/internal/core/analytics"
	"github.com/taskflow/taskflow-api/internal/core/domain"
	"github.com/taskflow/taskflow-api/internal/core/policy"
	"github.com/taskflow/taskflow-api/internal/core/ports"
)

type projectService struct {
	users    ports.UserRepository
	projects ports.ProjectRepository
	tasks    ports.TaskRepository
	clock    Clock
	log      zerolog.Logger
}

// NewProjectService returns a ProjectService implementation.
func NewProjectService(
	users ports.UserRepository,
	projects ports.ProjectRepository,
	tasks ports.TaskRepository,
	clock Clock,
	log zerolog.Logger,
) ports.ProjectService {
	return &projectService{users: users, projects: projects, tasks: tasks, clock: clock, log: log}
}

func (s *projectService) Create(ctx context.Context, input ports.CreateProjectInput) (*domain.Project, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", domain.ErrInvalidInput)
	}

	now := s.clock.now()
	p := &domain.Project{
		ID:          uuid.NewString(),
		Name:        name,
		Description: input.Description,
		OwnerID:     input.OwnerID,
		MemberIDs:   []string{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.projects.Create(ctx, p); err != nil {
		s.log.Error().Err(err).Msg("failed to create project")
		return nil, fmt.Errorf("create project: %w", err)
	}

	s.log.Info().Str("project_id", p.ID).Str("owner_id", p.OwnerID).Msg("project created")
	return p, nil
}

func (s *projectService) Update(ctx context.Context, id string, input ports.UpdateProjectInput) (*domain.Project, error) {
	p, err := s.projects.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: name must not be empty", domain.ErrInvalidInput)
		}
		p.Name = name
	}
	if input.Description != nil {
		p.Description = *input.Description
	}
	p.UpdatedAt = s.clock.now()

	if err := s.projects.Update(ctx, p); err != nil {
		return nil, fmt.Errorf("update project: %w", err)
	}
	return p, nil
}

// Delete removes the project and every task that belongs to it.
func (s *projectService) Delete(ctx context.Context, id string) error {
	if _, err := s.projects.FindByID(ctx, id); err != nil {
		return err
	}
	removed, err := s.tasks.DeleteByProject(ctx, id)
	if err != nil {
		return fmt.Errorf("delete project tasks: %w", err)
	}
	if err := s.projects.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	s.log.Info().Str("project_id", id).Int64("tasks_removed", removed).Msg("project deleted")
	return nil
}

func (s *projectService) AssignUser(ctx context.Context, projectID, userID string) (*domain.Project, error) {
	var p *domain.Project
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		found, err := s.projects.FindByID(gctx, projectID)
		p = found
		return err
	})
	g.Go(func() error {
		_, err := s.users.FindByID(gctx, userID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if err := policy.CheckAssignment(*p, userID); err != nil {
		return nil, err
	}
	now := s.clock.now()
	if err := s.projects.AddMember(ctx, projectID, userID, now); err != nil {
		return nil, fmt.Errorf("assign user: %w", err)
	}

	p.MemberIDs = append(p.MemberIDs, userID)
	p.UpdatedAt = now
	s.log.Info().Str("project_id", projectID).Str("user_id", userID).Msg("user assigned to project")
	return p, nil
}

func (s *projectService) Stats(ctx context.Context) ([]analytics.ProjectStat, error) {
	ds, err := loadDataset(ctx, s.users, s.projects, s.tasks)
	if err != nil {
		return nil, fmt.Errorf("project stats: %w", err)
	}
	return analytics.ProjectStats(ds, s.clock.now()), nil
}

func (s *projectService) Detailed(ctx context.Context, id string) (*analytics.DetailedProject, error) {
	var (
		p     *domain.Project
		users []domain.User
		tasks []domain.Task
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		found, err := s.projects.FindByID(gctx, id)
		p = found
		return err
	})
	g.Go(func() error {
		list, err := s.users.List(gctx)
		users = list
		return err
	})
	g.Go(func() error {
		list, err := s.tasks.List(gctx, ports.TaskFilter{ProjectID: id})
		tasks = list
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return analytics.DetailedProjectView(analytics.Dataset{
		Users:    users,
		Projects: []domain.Project{*p},
		Tasks:    tasks,
	}, id)
}

func (s *projectService) TasksForUser(ctx context.Context, projectID, userID string) ([]domain.Task, error) {
	if _, err := s.projects.FindByID(ctx, projectID); err != nil {
		return nil, err
	}
	tasks, err := s.tasks.List(ctx, ports.TaskFilter{ProjectID: projectID, CreatedByID: userID})
	if err != nil {
		return nil, fmt.Errorf("project tasks: %w", err)
	}
	return tasks, nil
}
