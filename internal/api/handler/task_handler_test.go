package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/taskflow/taskflow-api/internal/core/domain"
	"github.com/taskflow/taskflow-api/internal/core/policy"
	"github.com/taskflow/taskflow-api/internal/core/ports"
)

type stubTaskService struct {
	createFn  func(ctx context.Context, actor policy.Actor, in ports.CreateTaskInput) (*domain.Task, error)
	updateFn  func(ctx context.Context, actor policy.Actor, id string, in ports.UpdateTaskInput) (*domain.Task, error)
	deleteFn  func(ctx context.Context, actor policy.Actor, id string) error
	myTasksFn func(ctx context.Context, userID string) ([]ports.TaskSummary, error)
}

func (s *stubTaskService) Create(ctx context.Context, actor policy.Actor, in ports.CreateTaskInput) (*domain.Task, error) {
	return s.createFn(ctx, actor, in)
}

func (s *stubTaskService) Update(ctx context.Context, actor policy.Actor, id string, in ports.UpdateTaskInput) (*domain.Task, error) {
	return s.updateFn(ctx, actor, id, in)
}

func (s *stubTaskService) Delete(ctx context.Context, actor policy.Actor, id string) error {
	return s.deleteFn(ctx, actor, id)
}

func (s *stubTaskService) MyTasks(ctx context.Context, userID string) ([]ports.TaskSummary, error) {
	return s.myTasksFn(ctx, userID)
}

const projectUUID = "8f14e45f-ceea-467f-a0e6-1b8a3f6d2c11"

func TestTaskHandler_Create(t *testing.T) {
	stub := &stubTaskService{
		createFn: func(ctx context.Context, actor policy.Actor, in ports.CreateTaskInput) (*domain.Task, error) {
			if actor.ID != "u1" || actor.Role != domain.RoleUser {
				t.Fatalf("unexpected actor: %+v", actor)
			}
			if in.ProjectID != projectUUID || in.Status != domain.TaskInProgress || in.Priority != "" {
				t.Fatalf("unexpected input: %+v", in)
			}
			if in.DueDate == nil || !in.DueDate.Equal(time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)) {
				t.Fatalf("unexpected due date: %v", in.DueDate)
			}
			return &domain.Task{ID: "t1", Title: in.Title, Status: in.Status, Priority: domain.PriorityMedium, ProjectID: in.ProjectID, CreatedByID: actor.ID}, nil
		},
	}
	body := `{"title":"Write docs","status":"in_progress","dueDate":"2026-04-01T00:00:00Z","projectId":"` + projectUUID + `"}`
	c, rec := newJSONContext(http.MethodPost, "/v1/tasks", body)
	authenticate(c, "u1", domain.RoleUser)

	if err := NewTaskHandler(stub).Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["createdById"] != "u1" || resp["projectId"] != projectUUID || resp["status"] != "in_progress" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestTaskHandler_Create_Validation(t *testing.T) {
	stub := &stubTaskService{
		createFn: func(ctx context.Context, actor policy.Actor, in ports.CreateTaskInput) (*domain.Task, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	bodies := map[string]string{
		"overdue status":   `{"title":"x","status":"overdue","projectId":"` + projectUUID + `"}`,
		"missing title":    `{"projectId":"` + projectUUID + `"}`,
		"bad project id":   `{"title":"x","projectId":"p1"}`,
		"unknown priority": `{"title":"x","priority":"urgent","projectId":"` + projectUUID + `"}`,
	}
	for name, body := range bodies {
		t.Run(name, func(t *testing.T) {
			c, _ := newJSONContext(http.MethodPost, "/v1/tasks", body)
			authenticate(c, "u1", domain.RoleUser)
			if got := httpStatus(t, NewTaskHandler(stub).Create(c)); got != http.StatusUnprocessableEntity {
				t.Fatalf("expected 422, got %d", got)
			}
		})
	}
}

func TestTaskHandler_Create_Unauthenticated(t *testing.T) {
	c, _ := newJSONContext(http.MethodPost, "/v1/tasks", `{}`)
	if got := httpStatus(t, NewTaskHandler(&stubTaskService{}).Create(c)); got != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", got)
	}
}

func TestTaskHandler_Update_PassesActorAndPatch(t *testing.T) {
	stub := &stubTaskService{
		updateFn: func(ctx context.Context, actor policy.Actor, id string, in ports.UpdateTaskInput) (*domain.Task, error) {
			if id != "t1" || actor.ID != "u2" {
				t.Fatalf("unexpected call: %s %+v", id, actor)
			}
			if in.Status == nil || *in.Status != domain.TaskCompleted || in.Title != nil {
				t.Fatalf("unexpected patch: %+v", in)
			}
			return nil, domain.ErrForbidden
		},
	}
	c, _ := newJSONContext(http.MethodPatch, "/v1/tasks/t1", `{"status":"completed"}`)
	c.SetParamNames("id")
	c.SetParamValues("t1")
	authenticate(c, "u2", domain.RoleUser)

	if err := NewTaskHandler(stub).Update(c); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestTaskHandler_Delete(t *testing.T) {
	stub := &stubTaskService{
		deleteFn: func(ctx context.Context, actor policy.Actor, id string) error {
			if id != "t1" || !actor.IsAdmin() {
				t.Fatalf("unexpected call: %s %+v", id, actor)
			}
			return nil
		},
	}
	c, rec := newJSONContext(http.MethodDelete, "/v1/tasks/t1", "")
	c.SetParamNames("id")
	c.SetParamValues("t1")
	authenticate(c, "admin-1", domain.RoleAdmin)

	if err := NewTaskHandler(stub).Delete(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
}

func TestTaskHandler_MyTasks(t *testing.T) {
	stub := &stubTaskService{
		myTasksFn: func(ctx context.Context, userID string) ([]ports.TaskSummary, error) {
			if userID != "u1" {
				t.Fatalf("unexpected user: %s", userID)
			}
			return []ports.TaskSummary{{ID: "t1", Status: domain.TaskPending, ProjectID: "p1", ProjectName: "Website"}}, nil
		},
	}
	c, rec := newJSONContext(http.MethodGet, "/v1/tasks/my-tasks", "")
	authenticate(c, "u1", domain.RoleUser)

	if err := NewTaskHandler(stub).MyTasks(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	var resp []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(resp) != 1 || resp[0]["projectName"] != "Website" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
	if _, ok := resp[0]["dueDate"]; ok {
		t.Fatalf("undated task should omit dueDate")
	}
}
