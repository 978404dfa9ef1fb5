package ports

import (
	"context"
	"time"

	"github.com/taskgrid/task-tracker-api/internal/core/domain"
)

// UserRepository defines persistence operations for users.
//
// Lookup methods return domain.ErrUserNotFound when no user matches.
// FindByIDs is the exception: it returns only the users that exist and never
// errors for missing ids.
type UserRepository interface {
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByIDs(ctx context.Context, ids []string) ([]*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	UpdateLastLogin(ctx context.Context, id string, at time.Time) error
	Delete(ctx context.Context, id string) error
}
