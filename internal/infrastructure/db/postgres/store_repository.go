package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ratehub/store-ratings/internal/core/domain"
	"github.com/ratehub/store-ratings/internal/core/ports"
)

type StoreRepository struct {
	db *gorm.DB
}

func NewStoreRepository(db *gorm.DB) *StoreRepository {
	return &StoreRepository{db: db}
}

func (r *StoreRepository) Create(ctx context.Context, store *domain.Store) (*domain.Store, error) {
	model := storeToModel(store)
	if model.ID == "" {
		model.ID = uuid.NewString()
	}

	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		return nil, err
	}

	created := storeFromModel(model)
	return &created, nil
}

func (r *StoreRepository) FindByID(ctx context.Context, id string) (*domain.Store, error) {
	var model storeModel
	err := r.db.WithContext(ctx).
		Preload("Ratings").
		First(&model, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrStoreNotFound
		}
		return nil, err
	}
	store := storeFromModel(model)
	return &store, nil
}

// FindFirstByOwner returns the owner's oldest store. The schema permits
// several stores per owner; the dashboard shows the first one deterministically.
func (r *StoreRepository) FindFirstByOwner(ctx context.Context, ownerID string) (*domain.Store, error) {
	var model storeModel
	err := r.db.WithContext(ctx).
		Preload("Ratings").
		Where("owner_id = ?", ownerID).
		Order("created_at ASC").
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNoStoreForOwner
		}
		return nil, err
	}
	store := storeFromModel(model)
	return &store, nil
}

func (r *StoreRepository) FindByOwner(ctx context.Context, ownerID string) ([]domain.Store, error) {
	var models []storeModel
	err := r.db.WithContext(ctx).
		Preload("Ratings").
		Where("owner_id = ?", ownerID).
		Order("created_at ASC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	stores := make([]domain.Store, 0, len(models))
	for _, m := range models {
		stores = append(stores, storeFromModel(m))
	}
	return stores, nil
}

func (r *StoreRepository) List(ctx context.Context, filter ports.StoreFilter, page, limit int) ([]domain.Store, int64, error) {
	query := r.db.WithContext(ctx).Model(&storeModel{})
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("name ILIKE @q OR address ILIKE @q", map[string]any{"q": pattern})
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var models []storeModel
	err := query.
		Preload("Ratings").
		Order("name ASC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&models).Error
	if err != nil {
		return nil, 0, err
	}

	stores := make([]domain.Store, 0, len(models))
	for _, m := range models {
		stores = append(stores, storeFromModel(m))
	}
	return stores, total, nil
}

func (r *StoreRepository) Update(ctx context.Context, id string, update ports.StoreUpdate) (*domain.Store, error) {
	changes := make(map[string]any)
	if update.Name != nil {
		changes["name"] = *update.Name
	}
	if update.Email != nil {
		changes["email"] = nilWhenEmpty(*update.Email)
	}
	if update.Address != nil {
		changes["address"] = *update.Address
	}
	if update.OwnerID != nil {
		changes["owner_id"] = nilWhenEmpty(*update.OwnerID)
	}

	if len(changes) > 0 {
		res := r.db.WithContext(ctx).
			Model(&storeModel{}).
			Where("id = ?", id).
			Updates(changes)
		if res.Error != nil {
			return nil, res.Error
		}
		if res.RowsAffected == 0 {
			return nil, domain.ErrStoreNotFound
		}
	}

	return r.FindByID(ctx, id)
}

func (r *StoreRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&storeModel{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrStoreNotFound
	}
	return nil
}

func (r *StoreRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&storeModel{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// nilWhenEmpty maps an empty string to SQL NULL for nullable columns.
func nilWhenEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}
