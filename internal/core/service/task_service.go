package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/taskflow/taskflow-api/internal/core/domain"
	"github.com/taskflow/taskflow-api/internal/core/policy"
	"github.com/taskflow/taskflow-api/internal/core/ports"
)

type taskService struct {
	projects ports.ProjectRepository
	tasks    ports.TaskRepository
	clock    Clock
	log      zerolog.Logger
}

// NewTaskService returns a TaskService implementation.
func NewTaskService(projects ports.ProjectRepository, tasks ports.TaskRepository, clock Clock, log zerolog.Logger) ports.TaskService {
	return &taskService{projects: projects, tasks: tasks, clock: clock, log: log}
}

func (s *taskService) Create(ctx context.Context, actor policy.Actor, input ports.CreateTaskInput) (*domain.Task, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", domain.ErrInvalidInput)
	}
	if input.Status == "" {
		input.Status = domain.TaskPending
	}
	if input.Priority == "" {
		input.Priority = domain.PriorityMedium
	}
	if err := validateTaskEnums(input.Status, input.Priority); err != nil {
		return nil, err
	}

	if _, err := s.projects.FindByID(ctx, input.ProjectID); err != nil {
		return nil, err
	}

	now := s.clock.now()
	t := &domain.Task{
		ID:          uuid.NewString(),
		Title:       title,
		Description: input.Description,
		Status:      input.Status,
		Priority:    input.Priority,
		DueDate:     utcPtr(input.DueDate),
		ProjectID:   input.ProjectID,
		CreatedByID: actor.ID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.tasks.Create(ctx, t); err != nil {
		s.log.Error().Err(err).Msg("failed to create task")
		return nil, fmt.Errorf("create task: %w", err)
	}

	s.log.Info().Str("task_id", t.ID).Str("project_id", t.ProjectID).Str("created_by", actor.ID).Msg("task created")
	return t, nil
}

func (s *taskService) Update(ctx context.Context, actor policy.Actor, id string, input ports.UpdateTaskInput) (*domain.Task, error) {
	t, err := s.tasks.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := policy.CheckTaskMutation(actor, *t); err != nil {
		s.log.Warn().Str("task_id", id).Str("actor_id", actor.ID).Msg("task update denied")
		return nil, err
	}

	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return nil, fmt.Errorf("%w: title must not be empty", domain.ErrInvalidInput)
		}
		t.Title = title
	}
	if input.Description != nil {
		t.Description = *input.Description
	}
	if input.Status != nil {
		t.Status = *input.Status
	}
	if input.Priority != nil {
		t.Priority = *input.Priority
	}
	if input.DueDate != nil {
		t.DueDate = utcPtr(input.DueDate)
	}
	if err := validateTaskEnums(t.Status, t.Priority); err != nil {
		return nil, err
	}
	t.UpdatedAt = s.clock.now()

	if err := s.tasks.Update(ctx, t); err != nil {
		return nil, fmt.Errorf("update task: %w", err)
	}
	return t, nil
}

func (s *taskService) Delete(ctx context.Context, actor policy.Actor, id string) error {
	t, err := s.tasks.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := policy.CheckTaskMutation(actor, *t); err != nil {
		s.log.Warn().Str("task_id", id).Str("actor_id", actor.ID).Msg("task delete denied")
		return err
	}
	if err := s.tasks.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	s.log.Info().Str("task_id", id).Str("actor_id", actor.ID).Msg("task deleted")
	return nil
}

// MyTasks lists the tasks userID created, each with its project name.
// Tasks whose project no longer exists carry an empty name.
func (s *taskService) MyTasks(ctx context.Context, userID string) ([]ports.TaskSummary, error) {
	tasks, err := s.tasks.List(ctx, ports.TaskFilter{CreatedByID: userID})
	if err != nil {
		return nil, fmt.Errorf("my tasks: %w", err)
	}

	names := make(map[string]string)
	out := make([]ports.TaskSummary, 0, len(tasks))
	for _, t := range tasks {
		name, ok := names[t.ProjectID]
		if !ok {
			p, err := s.projects.FindByID(ctx, t.ProjectID)
			switch {
			case err == nil:
				name = p.Name
			case errors.Is(err, domain.ErrProjectNotFound):
			default:
				return nil, fmt.Errorf("my tasks: %w", err)
			}
			names[t.ProjectID] = name
		}
		out = append(out, ports.TaskSummary{
			ID:          t.ID,
			Title:       t.Title,
			Description: t.Description,
			Status:      t.Status,
			Priority:    t.Priority,
			DueDate:     t.DueDate,
			ProjectID:   t.ProjectID,
			ProjectName: name,
		})
	}
	return out, nil
}

func validateTaskEnums(status domain.TaskStatus, priority domain.TaskPriority) error {
	if !status.Valid() {
		return fmt.Errorf("%w: unknown status %q", domain.ErrInvalidInput, status)
	}
	if !priority.Valid() {
		return fmt.Errorf("%w: unknown priority %q", domain.ErrInvalidInput, priority)
	}
	return nil
}
