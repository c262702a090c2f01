package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/ratehub/store-ratings/internal/core/domain"
	"github.com/ratehub/store-ratings/internal/core/ports"
)

// AdminService implements the ADMIN-scoped operations: platform metrics,
// user management and store CRUD.
type AdminService struct {
	users      ports.UserRepository
	stores     ports.StoreRepository
	ratings    ports.RatingRepository
	bcryptCost int
	logger     zerolog.Logger
}

func NewAdminService(users ports.UserRepository, stores ports.StoreRepository, ratings ports.RatingRepository, bcryptCost int, logger zerolog.Logger) *AdminService {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &AdminService{
		users:      users,
		stores:     stores,
		ratings:    ratings,
		bcryptCost: bcryptCost,
		logger:     logger,
	}
}

// Metrics returns the platform-wide entity counts.
func (s *AdminService) Metrics(ctx context.Context) (*ports.Metrics, error) {
	totalUsers, err := s.users.Count(ctx)
	if err != nil {
		return nil, err
	}
	totalStores, err := s.stores.Count(ctx)
	if err != nil {
		return nil, err
	}
	totalRatings, err := s.ratings.Count(ctx)
	if err != nil {
		return nil, err
	}
	return &ports.Metrics{
		TotalUsers:   totalUsers,
		TotalStores:  totalStores,
		TotalRatings: totalRatings,
	}, nil
}

// CreateUser registers an account with a generated temporary password, which
// is returned exactly once in the response.
func (s *AdminService) CreateUser(ctx context.Context, input ports.CreateUserInput) (*ports.CreatedUser, error) {
	if _, err := domain.ParseRole(string(input.Role)); err != nil {
		return nil, err
	}

	tempPassword, err := generateTempPassword()
	if err != nil {
		return nil, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(tempPassword), s.bcryptCost)
	if err != nil {
		return nil, err
	}

	user, err := s.users.Create(ctx, &domain.User{
		Name:         input.Name,
		Email:        input.Email,
		Address:      input.Address,
		PasswordHash: string(hash),
		Role:         input.Role,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", user.ID).Str("role", string(user.Role)).Msg("user created by admin")
	return &ports.CreatedUser{User: user, TempPassword: tempPassword}, nil
}

func (s *AdminService) ListUsers(ctx context.Context, query ports.UserQuery) (*ports.UserListResult, error) {
	page, limit := normalizePage(query.Page, query.Limit)

	users, total, err := s.users.List(ctx, ports.UserFilter{Search: query.Search, Role: query.Role}, page, limit)
	if err != nil {
		return nil, err
	}

	return &ports.UserListResult{
		Users:      users,
		Pagination: ports.Pagination{Page: page, Limit: limit, Total: total},
	}, nil
}

// GetUser returns the user record; for an OWNER with a store it attaches
// that store's rating aggregate.
func (s *AdminService) GetUser(ctx context.Context, id string) (*ports.AdminUserDetail, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	detail := &ports.AdminUserDetail{User: *user}
	if user.Role == domain.RoleOwner {
		store, err := s.stores.FindFirstByOwner(ctx, user.ID)
		switch {
		case err == nil:
			detail.StoreRating = &ports.StoreRatingSummary{
				Avg:   domain.RatingAverage(store.Ratings),
				Count: domain.RatingCount(store.Ratings),
			}
		case errors.Is(err, domain.ErrNoStoreForOwner):
			// owner without a store: storeRating stays nil
		default:
			return nil, err
		}
	}
	return detail, nil
}

// CreateStore creates a store, validating the owner reference when provided.
func (s *AdminService) CreateStore(ctx context.Context, input ports.CreateStoreInput) (*domain.Store, error) {
	if err := s.validateOwnerRef(ctx, input.OwnerID); err != nil {
		return nil, err
	}

	store, err := s.stores.Create(ctx, &domain.Store{
		Name:    input.Name,
		Email:   input.Email,
		Address: input.Address,
		OwnerID: input.OwnerID,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("store_id", store.ID).Msg("store created")
	return store, nil
}

func (s *AdminService) ListStores(ctx context.Context, query ports.StoreQuery) (*ports.AdminStoreListResult, error) {
	page, limit := normalizePage(query.Page, query.Limit)

	stores, total, err := s.stores.List(ctx, ports.StoreFilter{Search: query.Search}, page, limit)
	if err != nil {
		return nil, err
	}

	owners, err := s.ownersByID(ctx, stores)
	if err != nil {
		return nil, err
	}

	out := make([]ports.AdminStore, 0, len(stores))
	for _, st := range stores {
		out = append(out, adminView(st, owners))
	}

	return &ports.AdminStoreListResult{
		Stores:     out,
		Pagination: ports.Pagination{Page: page, Limit: limit, Total: total},
	}, nil
}

// GetStore returns the admin detail view: aggregates, owner, and the full
// audit trail of individual ratings with their authors.
func (s *AdminService) GetStore(ctx context.Context, id string) (*ports.AdminStoreDetail, error) {
	store, err := s.stores.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	owners, err := s.ownersByID(ctx, []domain.Store{*store})
	if err != nil {
		return nil, err
	}

	raters, err := s.ratings.RatersForStore(ctx, store.ID)
	if err != nil {
		return nil, err
	}

	return &ports.AdminStoreDetail{
		AdminStore: adminView(*store, owners),
		Raters:     raters,
	}, nil
}

func (s *AdminService) UpdateStore(ctx context.Context, id string, input ports.UpdateStoreInput) (*domain.Store, error) {
	if input.OwnerID != nil && *input.OwnerID != "" {
		if err := s.validateOwnerRef(ctx, *input.OwnerID); err != nil {
			return nil, err
		}
	}

	store, err := s.stores.Update(ctx, id, ports.StoreUpdate{
		Name:    input.Name,
		Email:   input.Email,
		Address: input.Address,
		OwnerID: input.OwnerID,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("store_id", store.ID).Msg("store updated")
	return store, nil
}

func (s *AdminService) DeleteStore(ctx context.Context, id string) error {
	if err := s.stores.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("store_id", id).Msg("store deleted")
	return nil
}

// validateOwnerRef enforces that a non-empty owner reference points at an
// existing user with role OWNER.
func (s *AdminService) validateOwnerRef(ctx context.Context, ownerID string) error {
	if ownerID == "" {
		return nil
	}
	owner, err := s.users.FindByID(ctx, ownerID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.ErrInvalidOwnerRef
		}
		return err
	}
	if owner.Role != domain.RoleOwner {
		return domain.ErrInvalidOwnerRef
	}
	return nil
}

// ownersByID resolves the owners referenced by a page of stores in one query.
func (s *AdminService) ownersByID(ctx context.Context, stores []domain.Store) (map[string]ports.OwnerRef, error) {
	ids := make([]string, 0, len(stores))
	seen := make(map[string]struct{}, len(stores))
	for _, st := range stores {
		if st.OwnerID == "" {
			continue
		}
		if _, ok := seen[st.OwnerID]; ok {
			continue
		}
		seen[st.OwnerID] = struct{}{}
		ids = append(ids, st.OwnerID)
	}
	if len(ids) == 0 {
		return map[string]ports.OwnerRef{}, nil
	}

	users, err := s.users.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	out := make(map[string]ports.OwnerRef, len(users))
	for _, u := range users {
		out[u.ID] = ports.OwnerRef{Name: u.Name, Email: u.Email}
	}
	return out, nil
}

func adminView(st domain.Store, owners map[string]ports.OwnerRef) ports.AdminStore {
	view := ports.AdminStore{
		Store:        st,
		AvgRating:    domain.RatingAverage(st.Ratings),
		RatingsCount: domain.RatingCount(st.Ratings),
	}
	if ref, ok := owners[st.OwnerID]; ok {
		view.Owner = &ref
	}
	return view
}

const tempPasswordCharset = "abcdefghjkmnpqrstuvwxyz23456789"

// generateTempPassword produces a password that satisfies the signup policy
// (8-16 chars, at least one uppercase and one special character).
func generateTempPassword() (string, error) {
	b := make([]byte, 8)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate temp password: %w", err)
	}
	for i := range b {
		b[i] = tempPasswordCharset[int(b[i])%len(tempPasswordCharset)]
	}
	return "T!" + string(b), nil
}
