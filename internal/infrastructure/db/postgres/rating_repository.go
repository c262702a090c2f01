package postgres

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/ratehub/store-ratings/internal/core/domain"
)

type RatingRepository struct {
	db *gorm.DB
}

func NewRatingRepository(db *gorm.DB) *RatingRepository {
	return &RatingRepository{db: db}
}

// Upsert creates the rating or overwrites its value in place. The ON CONFLICT
// clause on the composite primary key makes the operation atomic, so
// concurrent upserts for the same (user, store) pair cannot produce duplicate
// rows.
func (r *RatingRepository) Upsert(ctx context.Context, userID, storeID string, value int) (*domain.Rating, error) {
	if !domain.ValidRatingValue(value) {
		return nil, domain.ErrInvalidRatingValue
	}

	now := time.Now().UTC()
	model := ratingModel{
		UserID:    userID,
		StoreID:   storeID,
		Value:     value,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "store_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&model).Error
	if err != nil {
		return nil, err
	}

	// Reload so CreatedAt reflects the original row on the update path.
	var stored ratingModel
	if err := r.db.WithContext(ctx).
		First(&stored, "user_id = ? AND store_id = ?", userID, storeID).Error; err != nil {
		return nil, err
	}
	rating := ratingFromModel(stored)
	return &rating, nil
}

func (r *RatingRepository) Own(ctx context.Context, userID, storeID string) (*domain.Rating, error) {
	var model ratingModel
	err := r.db.WithContext(ctx).
		First(&model, "user_id = ? AND store_id = ?", userID, storeID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	rating := ratingFromModel(model)
	return &rating, nil
}

// OwnForStores resolves the caller's ratings for a page of stores in one
// query, keyed by store ID.
func (r *RatingRepository) OwnForStores(ctx context.Context, userID string, storeIDs []string) (map[string]int, error) {
	out := make(map[string]int, len(storeIDs))
	if len(storeIDs) == 0 {
		return out, nil
	}

	var models []ratingModel
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND store_id IN ?", userID, storeIDs).
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	for _, m := range models {
		out[m.StoreID] = m.Value
	}
	return out, nil
}

func (r *RatingRepository) RatersForStore(ctx context.Context, storeID string) ([]domain.StoreRater, error) {
	var rows []domain.StoreRater
	err := r.db.WithContext(ctx).
		Table("ratings").
		Select("users.name, users.email, ratings.value, ratings.created_at").
		Joins("JOIN users ON users.id = ratings.user_id").
		Where("ratings.store_id = ?", storeID).
		Order("ratings.created_at ASC, users.name ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *RatingRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&ratingModel{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
