package ports

import (
	"context"

	"github.com/ratehub/store-ratings/internal/core/domain"
)

// Metrics is the admin dashboard counter set.
type Metrics struct {
	TotalUsers   int64 `json:"totalUsers"`
	TotalStores  int64 `json:"totalStores"`
	TotalRatings int64 `json:"totalRatings"`
}

// CreateUserInput carries the validated fields for admin user creation. The
// service generates a temporary password and returns it once.
type CreateUserInput struct {
	Name    string
	Email   string
	Address string
	Role    domain.Role
}

type CreatedUser struct {
	User         *domain.User
	TempPassword string
}

type UserQuery struct {
	Search string
	Role   domain.Role
	Page   int
	Limit  int
}

type UserListResult struct {
	Users      []domain.User `json:"users"`
	Pagination Pagination    `json:"pagination"`
}

// StoreRatingSummary is the aggregate attached to an OWNER's user detail.
type StoreRatingSummary struct {
	Avg   float64 `json:"avg"`
	Count int     `json:"count"`
}

// AdminUserDetail is the user record minus password, with the owned store's
// aggregate when the user is an OWNER with a store, nil otherwise.
type AdminUserDetail struct {
	User        domain.User
	StoreRating *StoreRatingSummary
}

// OwnerRef is the public identity of a store's owner.
type OwnerRef struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// AdminStore is the store shape in admin listings: aggregates plus owner.
type AdminStore struct {
	Store        domain.Store
	AvgRating    float64
	RatingsCount int
	Owner        *OwnerRef
}

// AdminStoreDetail additionally exposes the full audit trail of individual
// ratings with each author's identity.
type AdminStoreDetail struct {
	AdminStore
	Raters []domain.StoreRater
}

type AdminStoreListResult struct {
	Stores     []AdminStore
	Pagination Pagination
}

type CreateStoreInput struct {
	Name    string
	Email   string
	Address string
	OwnerID string
}

// UpdateStoreInput mirrors StoreUpdate at the service boundary; nil fields
// are left unchanged.
type UpdateStoreInput struct {
	Name    *string
	Email   *string
	Address *string
	OwnerID *string
}

type AdminService interface {
	Metrics(ctx context.Context) (*Metrics, error)
	CreateUser(ctx context.Context, input CreateUserInput) (*CreatedUser, error)
	ListUsers(ctx context.Context, query UserQuery) (*UserListResult, error)
	GetUser(ctx context.Context, id string) (*AdminUserDetail, error)
	CreateStore(ctx context.Context, input CreateStoreInput) (*domain.Store, error)
	ListStores(ctx context.Context, query StoreQuery) (*AdminStoreListResult, error)
	GetStore(ctx context.Context, id string) (*AdminStoreDetail, error)
	UpdateStore(ctx context.Context, id string, input UpdateStoreInput) (*domain.Store, error)
	DeleteStore(ctx context.Context, id string) error
}
