package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/taskflow/taskflow-api/internal/core/analytics"
	"github.com/taskflow/taskflow-api/internal/core/domain"
	"github.com/taskflow/taskflow-api/internal/core/ports"
)

type userService struct {
	users    ports.UserRepository
	projects ports.ProjectRepository
	tasks    ports.TaskRepository
	clock    Clock
	log      zerolog.Logger
}

// NewUserService returns a UserService implementation.
func NewUserService(
	users ports.UserRepository,
	projects ports.ProjectRepository,
	tasks ports.TaskRepository,
	clock Clock,
	log zerolog.Logger,
) ports.UserService {
	return &userService{users: users, projects: projects, tasks: tasks, clock: clock, log: log}
}

func (s *userService) List(ctx context.Context, input ports.ListUsersInput) (*analytics.UserPage, error) {
	ds, err := loadDataset(ctx, s.users, s.projects, s.tasks)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	page, err := analytics.ListUsers(ds, analytics.UserQuery{
		Page:   input.Page,
		Limit:  input.Limit,
		Search: input.Search,
	}, s.clock.now())
	if err != nil {
		return nil, err
	}
	return &page, nil
}

func (s *userService) Minified(ctx context.Context, search string) ([]domain.UserRef, error) {
	users, err := s.users.Search(ctx, strings.TrimSpace(search))
	if err != nil {
		return nil, fmt.Errorf("minified users: %w", err)
	}
	refs := make([]domain.UserRef, 0, len(users))
	for _, u := range users {
		refs = append(refs, u.Public())
	}
	return refs, nil
}

func (s *userService) Update(ctx context.Context, id string, input ports.UpdateUserInput) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: name must not be empty", domain.ErrInvalidInput)
		}
		user.Name = name
	}
	if input.Role != nil {
		if !domain.ValidRole(*input.Role) {
			return nil, fmt.Errorf("%w: unknown role %q", domain.ErrInvalidInput, *input.Role)
		}
		user.Role = *input.Role
	}
	if input.Status != nil {
		if *input.Status != domain.UserActive && *input.Status != domain.UserInactive {
			return nil, fmt.Errorf("%w: unknown status %q", domain.ErrInvalidInput, *input.Status)
		}
		user.Status = *input.Status
	}
	user.UpdatedAt = s.clock.now()

	if err := s.users.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	s.log.Info().Str("user_id", id).Str("role", user.Role).Str("status", string(user.Status)).Msg("user updated")
	return user, nil
}

// Delete removes the user from every project's members before deleting the
// account. Tasks the user created are kept.
func (s *userService) Delete(ctx context.Context, id string) error {
	if _, err := s.users.FindByID(ctx, id); err != nil {
		return err
	}
	if err := s.projects.RemoveMember(ctx, id); err != nil {
		return fmt.Errorf("delete user: remove memberships: %w", err)
	}
	if err := s.users.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	s.log.Info().Str("user_id", id).Msg("user deleted")
	return nil
}

func (s *userService) Dashboard(ctx context.Context, userID string) (*analytics.Dashboard, error) {
	var (
		user     *domain.User
		projects []domain.Project
		tasks    []domain.Task
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		u, err := s.users.FindByID(gctx, userID)
		user = u
		return err
	})
	g.Go(func() error {
		list, err := s.projects.ListByMember(gctx, userID)
		projects = list
		return err
	})
	g.Go(func() error {
		list, err := s.tasks.List(gctx, ports.TaskFilter{CreatedByID: userID})
		tasks = list
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	d, err := analytics.UserDashboard(analytics.Dataset{
		Users:    []domain.User{*user},
		Projects: projects,
		Tasks:    tasks,
	}, userID, s.clock.now())
	if err != nil {
		return nil, err
	}
	return &d, nil
}
