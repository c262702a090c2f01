package ports

import (
	"context"

	"github.com/ratehub/store-ratings/internal/core/domain"
)

// StoreFilter narrows List results. Search is a case-insensitive substring
// match over name and address.
type StoreFilter struct {
	Search string
}

// StoreUpdate carries the mutable store fields for a partial update. Nil
// pointers leave the corresponding column untouched.
type StoreUpdate struct {
	Name    *string
	Email   *string
	Address *string
	OwnerID *string
}

// StoreRepository defines persistence for stores. List and FindByID load the
// store's rating rows so aggregates can be recomputed at read time.
type StoreRepository interface {
	Create(ctx context.Context, store *domain.Store) (*domain.Store, error)
	FindByID(ctx context.Context, id string) (*domain.Store, error)
	// FindFirstByOwner resolves the owner dashboard's store: the owner's
	// oldest store by creation time. Returns domain.ErrNoStoreForOwner when
	// the owner has none.
	FindFirstByOwner(ctx context.Context, ownerID string) (*domain.Store, error)
	FindByOwner(ctx context.Context, ownerID string) ([]domain.Store, error)
	List(ctx context.Context, filter StoreFilter, page, limit int) ([]domain.Store, int64, error)
	Update(ctx context.Context, id string, update StoreUpdate) (*domain.Store, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
}
