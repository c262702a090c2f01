package postgres

import (
	"time"

	"github.com/ratehub/store-ratings/internal/core/domain"
)

type userModel struct {
	ID           string  `gorm:"primaryKey;type:uuid"`
	Name         string  `gorm:"size:60;not null"`
	Email        string  `gorm:"uniqueIndex;not null"`
	Address      *string `gorm:"size:400"`
	PasswordHash string  `gorm:"not null"`
	Role         string  `gorm:"size:8;not null;index"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (userModel) TableName() string { return "users" }

type storeModel struct {
	ID        string  `gorm:"primaryKey;type:uuid"`
	Name      string  `gorm:"size:120;not null"`
	Email     *string `gorm:"size:254"`
	Address   string  `gorm:"size:400;not null"`
	OwnerID   *string `gorm:"type:uuid;index"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Ratings []ratingModel `gorm:"foreignKey:StoreID;constraint:OnDelete:CASCADE"`
}

func (storeModel) TableName() string { return "stores" }

// ratingModel's composite primary key enforces at most one rating per
// (user, store) pair; the upsert relies on it for conflict detection.
type ratingModel struct {
	UserID    string `gorm:"primaryKey;type:uuid"`
	StoreID   string `gorm:"primaryKey;type:uuid"`
	Value     int    `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (ratingModel) TableName() string { return "ratings" }

func userToModel(u *domain.User) userModel {
	m := userModel{
		ID:           u.ID,
		Name:         u.Name,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		Role:         string(u.Role),
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
	if u.Address != "" {
		addr := u.Address
		m.Address = &addr
	}
	return m
}

func userFromModel(m userModel) domain.User {
	u := domain.User{
		ID:           m.ID,
		Name:         m.Name,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		Role:         domain.Role(m.Role),
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
	if m.Address != nil {
		u.Address = *m.Address
	}
	return u
}

func storeToModel(s *domain.Store) storeModel {
	m := storeModel{
		ID:        s.ID,
		Name:      s.Name,
		Address:   s.Address,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
	if s.Email != "" {
		email := s.Email
		m.Email = &email
	}
	if s.OwnerID != "" {
		owner := s.OwnerID
		m.OwnerID = &owner
	}
	return m
}

func storeFromModel(m storeModel) domain.Store {
	s := domain.Store{
		ID:        m.ID,
		Name:      m.Name,
		Address:   m.Address,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
	if m.Email != nil {
		s.Email = *m.Email
	}
	if m.OwnerID != nil {
		s.OwnerID = *m.OwnerID
	}
	s.Ratings = make([]domain.Rating, 0, len(m.Ratings))
	for _, r := range m.Ratings {
		s.Ratings = append(s.Ratings, ratingFromModel(r))
	}
	return s
}

func ratingFromModel(m ratingModel) domain.Rating {
	return domain.Rating{
		UserID:    m.UserID,
		StoreID:   m.StoreID,
		Value:     m.Value,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}
