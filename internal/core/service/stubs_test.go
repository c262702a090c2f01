package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/ratehub/store-ratings/internal/core/domain"
	"github.com/ratehub/store-ratings/internal/core/ports"
)

// stubRepo is an in-memory implementation of all three repository ports,
// shared by the service tests.
type stubRepo struct {
	users    map[string]*domain.User
	stores   map[string]*domain.Store
	ratings  map[string]domain.Rating // key: userID + "|" + storeID
	userSeq  int
	storeSeq int
	clock    time.Time
}

func newStubRepo() *stubRepo {
	return &stubRepo{
		users:   make(map[string]*domain.User),
		stores:  make(map[string]*domain.Store),
		ratings: make(map[string]domain.Rating),
		clock:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (r *stubRepo) tick() time.Time {
	r.clock = r.clock.Add(time.Second)
	return r.clock
}

func ratingKey(userID, storeID string) string { return userID + "|" + storeID }

// --- ports.UserRepository ---

func (r *stubRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == user.Email {
			return nil, domain.ErrEmailTaken
		}
	}
	r.userSeq++
	u := *user
	u.ID = fmt.Sprintf("u%d", r.userSeq)
	now := r.tick()
	u.CreatedAt, u.UpdatedAt = now, now
	r.users[u.ID] = &u
	clone := u
	return &clone, nil
}

func (r *stubRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *stubRepo) FindByIDs(_ context.Context, ids []string) ([]domain.User, error) {
	out := make([]domain.User, 0, len(ids))
	for _, id := range ids {
		if u, ok := r.users[id]; ok {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (r *stubRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubRepo) List(_ context.Context, filter ports.UserFilter, page, limit int) ([]domain.User, int64, error) {
	matched := make([]domain.User, 0)
	for _, u := range r.users {
		if filter.Role != "" && u.Role != filter.Role {
			continue
		}
		if filter.Search != "" {
			q := strings.ToLower(filter.Search)
			if !strings.Contains(strings.ToLower(u.Name), q) &&
				!strings.Contains(strings.ToLower(u.Email), q) &&
				!strings.Contains(strings.ToLower(u.Address), q) {
				continue
			}
		}
		matched = append(matched, *u)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })
	return pageOfUsers(matched, page, limit), int64(len(matched)), nil
}

func pageOfUsers(users []domain.User, page, limit int) []domain.User {
	skip := (page - 1) * limit
	if skip >= len(users) {
		return nil
	}
	end := skip + limit
	if end > len(users) {
		end = len(users)
	}
	return users[skip:end]
}

func (r *stubRepo) UpdatePassword(_ context.Context, id, passwordHash string) error {
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.PasswordHash = passwordHash
	u.UpdatedAt = r.tick()
	return nil
}

func (r *stubRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.users)), nil
}

// --- ports.StoreRepository ---

func (r *stubRepo) CreateStore(_ context.Context, store *domain.Store) (*domain.Store, error) {
	r.storeSeq++
	st := *store
	st.ID = fmt.Sprintf("s%d", r.storeSeq)
	now := r.tick()
	st.CreatedAt, st.UpdatedAt = now, now
	r.stores[st.ID] = &st
	clone := st
	return &clone, nil
}

func (r *stubRepo) storeWithRatings(st domain.Store) domain.Store {
	st.Ratings = r.storeRatings(st.ID)
	return st
}

func (r *stubRepo) storeRatings(storeID string) []domain.Rating {
	out := make([]domain.Rating, 0)
	for _, rt := range r.ratings {
		if rt.StoreID == storeID {
			out = append(out, rt)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out
}

func (r *stubRepo) FindStoreByID(_ context.Context, id string) (*domain.Store, error) {
	st, ok := r.stores[id]
	if !ok {
		return nil, domain.ErrStoreNotFound
	}
	clone := r.storeWithRatings(*st)
	return &clone, nil
}

func (r *stubRepo) FindFirstByOwner(_ context.Context, ownerID string) (*domain.Store, error) {
	owned := make([]domain.Store, 0)
	for _, st := range r.stores {
		if st.OwnerID == ownerID {
			owned = append(owned, *st)
		}
	}
	if len(owned) == 0 {
		return nil, domain.ErrNoStoreForOwner
	}
	sort.Slice(owned, func(i, j int) bool { return owned[i].CreatedAt.Before(owned[j].CreatedAt) })
	clone := r.storeWithRatings(owned[0])
	return &clone, nil
}

func (r *stubRepo) FindByOwner(_ context.Context, ownerID string) ([]domain.Store, error) {
	out := make([]domain.Store, 0)
	for _, st := range r.stores {
		if st.OwnerID == ownerID {
			out = append(out, r.storeWithRatings(*st))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *stubRepo) ListStores(_ context.Context, filter ports.StoreFilter, page, limit int) ([]domain.Store, int64, error) {
	matched := make([]domain.Store, 0)
	for _, st := range r.stores {
		if filter.Search != "" {
			q := strings.ToLower(filter.Search)
			if !strings.Contains(strings.ToLower(st.Name), q) &&
				!strings.Contains(strings.ToLower(st.Address), q) {
				continue
			}
		}
		matched = append(matched, r.storeWithRatings(*st))
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].Name < matched[j].Name })
	total := int64(len(matched))

	skip := (page - 1) * limit
	if skip >= len(matched) {
		return nil, total, nil
	}
	end := skip + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[skip:end], total, nil
}

func (r *stubRepo) UpdateStore(_ context.Context, id string, update ports.StoreUpdate) (*domain.Store, error) {
	st, ok := r.stores[id]
	if !ok {
		return nil, domain.ErrStoreNotFound
	}
	if update.Name != nil {
		st.Name = *update.Name
	}
	if update.Email != nil {
		st.Email = *update.Email
	}
	if update.Address != nil {
		st.Address = *update.Address
	}
	if update.OwnerID != nil {
		st.OwnerID = *update.OwnerID
	}
	st.UpdatedAt = r.tick()
	clone := r.storeWithRatings(*st)
	return &clone, nil
}

func (r *stubRepo) DeleteStore(_ context.Context, id string) error {
	if _, ok := r.stores[id]; !ok {
		return domain.ErrStoreNotFound
	}
	delete(r.stores, id)
	return nil
}

func (r *stubRepo) CountStores(_ context.Context) (int64, error) {
	return int64(len(r.stores)), nil
}

// --- ports.RatingRepository ---

func (r *stubRepo) Upsert(_ context.Context, userID, storeID string, value int) (*domain.Rating, error) {
	key := ratingKey(userID, storeID)
	now := r.tick()
	if existing, ok := r.ratings[key]; ok {
		existing.Value = value
		existing.UpdatedAt = now
		r.ratings[key] = existing
		clone := existing
		return &clone, nil
	}
	rt := domain.Rating{UserID: userID, StoreID: storeID, Value: value, CreatedAt: now, UpdatedAt: now}
	r.ratings[key] = rt
	clone := rt
	return &clone, nil
}

func (r *stubRepo) Own(_ context.Context, userID, storeID string) (*domain.Rating, error) {
	if rt, ok := r.ratings[ratingKey(userID, storeID)]; ok {
		clone := rt
		return &clone, nil
	}
	return nil, nil
}

func (r *stubRepo) OwnForStores(_ context.Context, userID string, storeIDs []string) (map[string]int, error) {
	out := make(map[string]int)
	for _, id := range storeIDs {
		if rt, ok := r.ratings[ratingKey(userID, id)]; ok {
			out[id] = rt.Value
		}
	}
	return out, nil
}

func (r *stubRepo) RatersForStore(_ context.Context, storeID string) ([]domain.StoreRater, error) {
	out := make([]domain.StoreRater, 0)
	for _, rt := range r.ratings {
		if rt.StoreID != storeID {
			continue
		}
		entry := domain.StoreRater{Value: rt.Value, CreatedAt: rt.CreatedAt}
		if u, ok := r.users[rt.UserID]; ok {
			entry.Name, entry.Email = u.Name, u.Email
		}
		out = append(out, entry)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

func (r *stubRepo) CountRatings(_ context.Context) (int64, error) {
	return int64(len(r.ratings)), nil
}

// Adapters so one stubRepo satisfies the three distinct ports despite the
// overlapping method names.

type stubStores struct{ *stubRepo }

func (s stubStores) Create(ctx context.Context, store *domain.Store) (*domain.Store, error) {
	return s.CreateStore(ctx, store)
}
func (s stubStores) FindByID(ctx context.Context, id string) (*domain.Store, error) {
	return s.FindStoreByID(ctx, id)
}
func (s stubStores) List(ctx context.Context, filter ports.StoreFilter, page, limit int) ([]domain.Store, int64, error) {
	return s.ListStores(ctx, filter, page, limit)
}
func (s stubStores) Update(ctx context.Context, id string, update ports.StoreUpdate) (*domain.Store, error) {
	return s.UpdateStore(ctx, id, update)
}
func (s stubStores) Delete(ctx context.Context, id string) error {
	return s.DeleteStore(ctx, id)
}
func (s stubStores) Count(ctx context.Context) (int64, error) {
	return s.CountStores(ctx)
}

type stubRatings struct{ *stubRepo }

func (s stubRatings) Count(ctx context.Context) (int64, error) {
	return s.CountRatings(ctx)
}

// seedUser inserts a user directly, bypassing service-level hashing.
func (r *stubRepo) seedUser(name, email string, role domain.Role) *domain.User {
	u, _ := r.Create(context.Background(), &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: "x",
		Role:         role,
	})
	return u
}

// seedStore inserts a store directly.
func (r *stubRepo) seedStore(name, address, ownerID string) *domain.Store {
	st, _ := r.CreateStore(context.Background(), &domain.Store{
		Name:    name,
		Address: address,
		OwnerID: ownerID,
	})
	return st
}
