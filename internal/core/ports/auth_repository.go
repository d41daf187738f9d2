package ports

import (
	"context"

	"github.com/taskflow/taskflow-api/internal/core/domain"
)

// AuthRepository is the slice of user persistence needed to sign users up and in.
type AuthRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) error
}
