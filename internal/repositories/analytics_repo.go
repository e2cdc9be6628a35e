package repositories

import (
	"time"

	"github.com/shopspring/decimal"

	"automarket/internal/models"
)

// DayCount is one calendar-day bucket in a trend series. Days with no rows
// are omitted; callers treat missing days as zero.
type DayCount struct {
	Date  string `json:"date"`
	Count int64  `json:"count"`
}

// GroupCount is one row of a group-by ranking.
type GroupCount struct {
	Label string `json:"label"`
	Count int64  `json:"count"`
}

// ViewedCar is one row of the most-viewed ranking for a store.
type ViewedCar struct {
	CarID   uint             `json:"car_id"`
	Brand   string           `json:"brand"`
	Model   string           `json:"model"`
	Version string           `json:"version"`
	Price   decimal.Decimal  `json:"price"`
	Status  models.CarStatus `json:"status"`
	Views   int64            `json:"views"`
}

// StoreStats is the analytics overview of one store. Listing and message
// counts are store-scoped; rating figures cover the owner's reputation
// across all their listings.
type StoreStats struct {
	TotalVehicles  int64   `json:"total_vehicles"`
	ActiveVehicles int64   `json:"active_vehicles"`
	SoldVehicles   int64   `json:"sold_vehicles"`
	TotalMessages  int64   `json:"total_messages"`
	AverageRating  float64 `json:"average_rating"`
	TotalReviews   int64   `json:"total_reviews"`
}

// DashboardStats is the admin dashboard overview.
type DashboardStats struct {
	TotalUsers        int64 `json:"total_users"`
	TotalCars         int64 `json:"total_cars"`
	ActiveCars        int64 `json:"active_cars"`
	TotalStores       int64 `json:"total_stores"`
	TotalTransactions int64 `json:"total_transactions"`
}

// AnalyticsRepository defines the read-only aggregation queries. No method
// writes any state.
type AnalyticsRepository interface {
	// CarsCreatedPerDay buckets listing creation by calendar date since the
	// given instant; storeID 0 means all stores.
	CarsCreatedPerDay(since time.Time, storeID uint) ([]DayCount, error)
	UsersCreatedPerDay(since time.Time) ([]DayCount, error)
	// MessagesPerDay buckets messages addressed to the store's listings;
	// storeID 0 means all messages.
	MessagesPerDay(since time.Time, storeID uint) ([]DayCount, error)
	// TopCarGroups ranks listings grouped by the given column (brand, fuel or
	// transmission), count descending, truncated to limit.
	TopCarGroups(groupField string, limit int) ([]GroupCount, error)
	StoreStats(storeID, ownerID uint) (*StoreStats, error)
	MostViewed(storeID uint, limit int) ([]ViewedCar, error)
	DashboardStats() (*DashboardStats, error)
}
