package ports

import (
	"context"

	"github.com/taskflow/taskflow-api/internal/core/analytics"
	"github.com/taskflow/taskflow-api/internal/core/domain"
)

// ListUsersInput carries the query parameters of the user listing.
type ListUsersInput struct {
	Page   int
	Limit  int
	Search string
}

// UpdateUserInput is a partial update; nil fields are left untouched.
type UpdateUserInput struct {
	Name   *string
	Role   *string
	Status *domain.UserStatus
}

// UserService defines use-case operations for users.
type UserService interface {
	List(ctx context.Context, input ListUsersInput) (*analytics.UserPage, error)
	Minified(ctx context.Context, search string) ([]domain.UserRef, error)
	Update(ctx context.Context, id string, input UpdateUserInput) (*domain.User, error)
	Delete(ctx context.Context, id string) error
	Dashboard(ctx context.Context, userID string) (*analytics.Dashboard, error)
}
