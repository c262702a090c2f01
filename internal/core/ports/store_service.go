package ports

import (
	"context"

	"github.com/ratehub/store-ratings/internal/core/domain"
)

// StoreQuery parameterizes paginated store listings.
type StoreQuery struct {
	Search string
	Page   int
	Limit  int
}

// Pagination echoes the effective page window plus the total number of rows
// matching the filter before pagination.
type Pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
}

// PublicStore is the store shape visible to any authenticated caller. It
// carries aggregates and the caller's own rating, never other users'
// individual ratings.
type PublicStore struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Email         string  `json:"email,omitempty"`
	Address       string  `json:"address"`
	OverallRating float64 `json:"overallRating"`
	RatingsCount  int     `json:"ratingsCount"`
	UserRating    *int    `json:"userRating"`
}

type StoreListResult struct {
	Stores     []PublicStore `json:"stores"`
	Pagination Pagination    `json:"pagination"`
}

// StoreService assembles the public store views and accepts ratings.
type StoreService interface {
	List(ctx context.Context, callerID string, query StoreQuery) (*StoreListResult, error)
	Get(ctx context.Context, callerID, storeID string) (*PublicStore, error)
	Rate(ctx context.Context, userID, storeID string, value int) (*domain.Rating, error)
}
