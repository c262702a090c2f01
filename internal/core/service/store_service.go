package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/ratehub/store-ratings/internal/core/domain"
	"github.com/ratehub/store-ratings/internal/core/ports"
)

const (
	defaultPage  = 1
	defaultLimit = 10
)

// StoreService assembles the public store views shared by every authenticated
// role and records ratings.
type StoreService struct {
	stores  ports.StoreRepository
	ratings ports.RatingRepository
	logger  zerolog.Logger
}

func NewStoreService(stores ports.StoreRepository, ratings ports.RatingRepository, logger zerolog.Logger) *StoreService {
	return &StoreService{stores: stores, ratings: ratings, logger: logger}
}

// List returns one page of stores with aggregates and the caller's own rating
// per store. Own ratings are resolved with a single batched query.
func (s *StoreService) List(ctx context.Context, callerID string, query ports.StoreQuery) (*ports.StoreListResult, error) {
	page, limit := normalizePage(query.Page, query.Limit)

	stores, total, err := s.stores.List(ctx, ports.StoreFilter{Search: query.Search}, page, limit)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(stores))
	for _, st := range stores {
		ids = append(ids, st.ID)
	}
	own, err := s.ratings.OwnForStores(ctx, callerID, ids)
	if err != nil {
		return nil, err
	}

	out := make([]ports.PublicStore, 0, len(stores))
	for _, st := range stores {
		view := publicView(st)
		if v, ok := own[st.ID]; ok {
			view.UserRating = &v
		}
		out = append(out, view)
	}

	return &ports.StoreListResult{
		Stores:     out,
		Pagination: ports.Pagination{Page: page, Limit: limit, Total: total},
	}, nil
}

// Get returns the public detail view of one store.
func (s *StoreService) Get(ctx context.Context, callerID, storeID string) (*ports.PublicStore, error) {
	store, err := s.stores.FindByID(ctx, storeID)
	if err != nil {
		return nil, err
	}

	view := publicView(*store)
	own, err := s.ratings.Own(ctx, callerID, storeID)
	if err != nil {
		return nil, err
	}
	if own != nil {
		view.UserRating = &own.Value
	}
	return &view, nil
}

// Rate records or overwrites the caller's rating for a store.
func (s *StoreService) Rate(ctx context.Context, userID, storeID string, value int) (*domain.Rating, error) {
	if !domain.ValidRatingValue(value) {
		return nil, domain.ErrInvalidRatingValue
	}

	if _, err := s.stores.FindByID(ctx, storeID); err != nil {
		return nil, err
	}

	rating, err := s.ratings.Upsert(ctx, userID, storeID, value)
	if err != nil {
		s.logger.Error().Err(err).Str("store_id", storeID).Msg("failed to upsert rating")
		return nil, err
	}

	s.logger.Info().Str("store_id", storeID).Str("user_id", userID).Int("value", value).Msg("rating recorded")
	return rating, nil
}

func publicView(st domain.Store) ports.PublicStore {
	return ports.PublicStore{
		ID:            st.ID,
		Name:          st.Name,
		Email:         st.Email,
		Address:       st.Address,
		OverallRating: domain.RatingAverage(st.Ratings),
		RatingsCount:  domain.RatingCount(st.Ratings),
	}
}

// normalizePage applies the default page window: page=1, limit=10.
func normalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = defaultPage
	}
	if limit < 1 {
		limit = defaultLimit
	}
	return page, limit
}
