package ports

import (
	"context"

	"github.com/ratehub/store-ratings/internal/core/domain"
)

// SignupInput carries the already-validated signup fields. Field-level
// validation (name length, email format, password policy) happens at the
// transport edge; the service only enforces domain rules.
type SignupInput struct {
	Name     string
	Email    string
	Address  string
	Password string
}

// AuthResult is returned by Signup and Login: a signed bearer token plus the
// authenticated user.
type AuthResult struct {
	AccessToken string
	User        *domain.User
}

type AuthService interface {
	Signup(ctx context.Context, input SignupInput) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error
}
