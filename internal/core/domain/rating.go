package domain

import "time"

const (
	MinRatingValue = 1
	MaxRatingValue = 5
)

// Rating links one user to one store with a value in [1,5]. At most one
// rating exists per (UserID, StoreID) pair; re-rating overwrites the value
// in place rather than appending a new row.
type Rating struct {
	UserID    string    `json:"user_id"`
	StoreID   string    `json:"store_id"`
	Value     int       `json:"value"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ValidRatingValue reports whether v is inside the allowed rating range.
func ValidRatingValue(v int) bool {
	return v >= MinRatingValue && v <= MaxRatingValue
}

// StoreRater pairs a rating with the public identity of its author. Used by
// the admin store detail and the owner dashboard, never by public views.
type StoreRater struct {
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Value     int       `json:"value"`
	CreatedAt time.Time `json:"created_at"`
}

// RatingAverage returns the arithmetic mean of the rating values, or 0 for an
// empty collection. The zero (never NaN) keeps display code simple downstream.
func RatingAverage(ratings []Rating) float64 {
	if len(ratings) == 0 {
		return 0
	}
	sum := 0
	for _, r := range ratings {
		sum += r.Value
	}
	return float64(sum) / float64(len(ratings))
}

// RatingCount returns the cardinality of the collection.
func RatingCount(ratings []Rating) int {
	return len(ratings)
}

// OwnRating returns the value of the single rating authored by userID, if any.
// The at-most-one-per-pair invariant guarantees at most one match.
func OwnRating(ratings []Rating, userID string) (int, bool) {
	for _, r := range ratings {
		if r.UserID == userID {
			return r.Value, true
		}
	}
	return 0, false
}
