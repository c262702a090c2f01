package domain

import "time"

// Store is a rated entity. OwnerID references a user with role OWNER; the
// schema allows zero or one owner per store and does not cap stores per owner.
type Store struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email,omitempty"`
	Address   string    `json:"address"`
	OwnerID   string    `json:"owner_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Ratings carries the store's rating rows when the repository was asked
	// to load them. Aggregates are always recomputed from this slice at read
	// time; no cached aggregate is maintained.
	Ratings []Rating `json:"-"`
}
