package domain

import "time"

const (
	MinScore = 1
	MaxScore = 5
)

// Store is a rated entity as shown to a viewer. UserRating belongs to the
// viewer the record was fetched for; the same store fetched for another
// identity may carry a different value.
type Store struct {
	ID            string   `json:"id"`
	Name          string   `json:"storeName"`
	Email         string   `json:"email,omitempty"`
	Address       string   `json:"address"`
	OwnerID       string   `json:"ownerId,omitempty"`
	OverallRating *float64 `json:"overallRating"`
	UserRating    *int     `json:"userRating"`
}

// Rating is a single score a user gave a store. There is at most one per
// (StoreID, UserID) pair.
type Rating struct {
	StoreID   string    `json:"storeId"`
	UserID    string    `json:"userId"`
	Score     int       `json:"rating"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ValidScore reports whether s is an acceptable submitted score.
func ValidScore(s int) bool {
	return s >= MinScore && s <= MaxScore
}

// DashboardStats holds the administrator dashboard totals.
type DashboardStats struct {
	TotalUsers   int64 `json:"totalUsers"`
	TotalStores  int64 `json:"totalStores"`
	TotalRatings int64 `json:"totalRatings"`
}
