package ports

import (
	"context"

	"github.com/ratehub/store-ratings/internal/core/domain"
)

// RatingRepository defines persistence for ratings.
type RatingRepository interface {
	// Upsert creates the rating for (userID, storeID) or overwrites its
	// value in place. The composite primary key serializes concurrent
	// upserts, so the pair can never end up with duplicate rows.
	Upsert(ctx context.Context, userID, storeID string, value int) (*domain.Rating, error)
	// Own returns the caller's rating for a store, or (nil, nil) when absent.
	Own(ctx context.Context, userID, storeID string) (*domain.Rating, error)
	// OwnForStores resolves the caller's ratings for a set of stores in one
	// batched query, keyed by store ID. Used by list views to avoid a
	// per-row lookup.
	OwnForStores(ctx context.Context, userID string, storeIDs []string) (map[string]int, error)
	// RatersForStore returns every rating for a store joined with its
	// author's name and email, ordered by creation time then rater name.
	RatersForStore(ctx context.Context, storeID string) ([]domain.StoreRater, error)
	Count(ctx context.Context) (int64, error)
}
