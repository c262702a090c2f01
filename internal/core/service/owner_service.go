package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/ratehub/store-ratings/internal/core/domain"
	"github.com/ratehub/store-ratings/internal/core/ports"
)

// OwnerService assembles the owner dashboard.
type OwnerService struct {
	stores  ports.StoreRepository
	ratings ports.RatingRepository
	logger  zerolog.Logger
}

func NewOwnerService(stores ports.StoreRepository, ratings ports.RatingRepository, logger zerolog.Logger) *OwnerService {
	return &OwnerService{stores: stores, ratings: ratings, logger: logger}
}

// Dashboard resolves the caller's store (the oldest one when the schema holds
// several) and returns its aggregates plus the list of raters ordered by
// rating creation time.
func (s *OwnerService) Dashboard(ctx context.Context, ownerID string) (*ports.Dashboard, error) {
	store, err := s.stores.FindFirstByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	raters, err := s.ratings.RatersForStore(ctx, store.ID)
	if err != nil {
		return nil, err
	}

	return &ports.Dashboard{
		Store: ports.DashboardStore{
			ID:           store.ID,
			Name:         store.Name,
			Email:        store.Email,
			Address:      store.Address,
			AvgRating:    domain.RatingAverage(store.Ratings),
			RatingsCount: domain.RatingCount(store.Ratings),
		},
		Raters: raters,
	}, nil
}
