package ports

import (
	"context"

	"github.com/ratehub/store-ratings/internal/core/domain"
)

// UserFilter narrows List results. Search is a case-insensitive substring
// match over name, email and address; Role filters by exact role when set.
type UserFilter struct {
	Search string
	Role   domain.Role
}

// UserRepository defines persistence for user accounts.
type UserRepository interface {
	// Create inserts a user. Returns domain.ErrEmailTaken when the email is
	// already registered (relies on the unique constraint, not a pre-check,
	// so concurrent signups cannot both succeed).
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// FindByIDs resolves a set of users in one query; missing IDs are
	// silently absent from the result.
	FindByIDs(ctx context.Context, ids []string) ([]domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	// List returns one page of users plus the total count matching the
	// filter (unpaginated), for client-side page-count computation.
	List(ctx context.Context, filter UserFilter, page, limit int) ([]domain.User, int64, error)
	UpdatePassword(ctx context.Context, id, passwordHash string) error
	Count(ctx context.Context) (int64, error)
}
