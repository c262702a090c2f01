package ports

import (
	"context"

	"github.com/ratehub/store-ratings/internal/core/domain"
)

// DashboardStore is the owner's store summary with read-time aggregates.
type DashboardStore struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Email        string  `json:"email,omitempty"`
	Address      string  `json:"address"`
	AvgRating    float64 `json:"avgRating"`
	RatingsCount int     `json:"ratingsCount"`
}

// Dashboard is the owner view: the caller's store plus everyone who rated it.
type Dashboard struct {
	Store  DashboardStore      `json:"store"`
	Raters []domain.StoreRater `json:"raters"`
}

type OwnerService interface {
	// Dashboard resolves the caller's store. Fails with
	// domain.ErrNoStoreForOwner when the caller owns none.
	Dashboard(ctx context.Context, ownerID string) (*Dashboard, error)
}
