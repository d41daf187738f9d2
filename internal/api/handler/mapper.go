package handler

import (
	"github.com/taskflow/taskflow-api/internal/core/domain"
	"github.com/taskflow/taskflow-api/internal/core/ports"
)

func toUpdateUserInput(req updateUserRequest) ports.UpdateUserInput {
	in := ports.UpdateUserInput{Name: req.Name, Role: req.Role}
	if req.Status != nil {
		s := domain.UserStatus(*req.Status)
		in.Status = &s
	}
	return in
}

func toCreateTaskInput(req createTaskRequest) ports.CreateTaskInput {
	return ports.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      domain.TaskStatus(req.Status),
		Priority:    domain.TaskPriority(req.Priority),
		DueDate:     req.DueDate,
		ProjectID:   req.ProjectID,
	}
}

func toUpdateTaskInput(req updateTaskRequest) ports.UpdateTaskInput {
	in := ports.UpdateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
	}
	if req.Status != nil {
		s := domain.TaskStatus(*req.Status)
		in.Status = &s
	}
	if req.Priority != nil {
		p := domain.TaskPriority(*req.Priority)
		in.Priority = &p
	}
	return in
}

func toTaskSummaryResponses(tasks []ports.TaskSummary) []taskSummaryResponse {
	out := make([]taskSummaryResponse, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, taskSummaryResponse{
			ID:          t.ID,
			Title:       t.Title,
			Description: t.Description,
			Status:      string(t.Status),
			Priority:    string(t.Priority),
			DueDate:     t.DueDate,
			ProjectID:   t.ProjectID,
			ProjectName: t.ProjectName,
		})
	}
	return out
}

// nonNil keeps empty lists serialised as [] rather than null.
func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
