package repositories

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"automarket/internal/apperrors"
	"automarket/internal/models"
)

// Columns of the cars table that TopCarGroups may group by.
var carGroupColumns = map[string]bool{
	"brand":        true,
	"fuel":         true,
	"transmission": true,
}

// GORMAnalyticsRepository is a GORM implementation of AnalyticsRepository.
// Date bucketing uses DATE() truncation, which both the postgres and sqlite
// dialects accept.
type GORMAnalyticsRepository struct {
	db *gorm.DB
}

// NewGORMAnalyticsRepository creates a new instance of GORMAnalyticsRepository.
func NewGORMAnalyticsRepository(db *gorm.DB) *GORMAnalyticsRepository {
	return &GORMAnalyticsRepository{db: db}
}

// CarsCreatedPerDay buckets listing creation by calendar date.
func (r *GORMAnalyticsRepository) CarsCreatedPerDay(since time.Time, storeID uint) ([]DayCount, error) {
	out := []DayCount{}
	query := `SELECT CAST(DATE(created_at) AS TEXT) AS date, COUNT(*) AS count
	          FROM cars WHERE created_at >= ?`
	args := []interface{}{since}
	if storeID != 0 {
		query += ` AND store_id = ?`
		args = append(args, storeID)
	}
	query += ` GROUP BY date ORDER BY date ASC`
	if err := r.db.Raw(query, args...).Scan(&out).Error; err != nil {
		return nil, apperrors.Internal(err, "failed to bucket cars per day")
	}
	return out, nil
}

// UsersCreatedPerDay buckets user signups by calendar date.
func (r *GORMAnalyticsRepository) UsersCreatedPerDay(since time.Time) ([]DayCount, error) {
	out := []DayCount{}
	err := r.db.Raw(
		`SELECT CAST(DATE(created_at) AS TEXT) AS date, COUNT(*) AS count
		 FROM users WHERE created_at >= ?
		 GROUP BY date ORDER BY date ASC`, since).Scan(&out).Error
	if err != nil {
		return nil, apperrors.Internal(err, "failed to bucket users per day")
	}
	return out, nil
}

// MessagesPerDay buckets messages by calendar date, optionally scoped to the
// listings of one store.
func (r *GORMAnalyticsRepository) MessagesPerDay(since time.Time, storeID uint) ([]DayCount, error) {
	out := []DayCount{}
	if storeID == 0 {
		err := r.db.Raw(
			`SELECT CAST(DATE(created_at) AS TEXT) AS date, COUNT(*) AS count
			 FROM messages WHERE created_at >= ?
			 GROUP BY date ORDER BY date ASC`, since).Scan(&out).Error
		if err != nil {
			return nil, apperrors.Internal(err, "failed to bucket messages per day")
		}
		return out, nil
	}
	err := r.db.Raw(
		`SELECT CAST(DATE(messages.created_at) AS TEXT) AS date, COUNT(*) AS count
		 FROM messages
		 JOIN cars ON cars.id = messages.car_id
		 WHERE messages.created_at >= ? AND cars.store_id = ?
		 GROUP BY date ORDER BY date ASC`, since, storeID).Scan(&out).Error
	if err != nil {
		return nil, apperrors.Internal(err, "failed to bucket store messages per day")
	}
	return out, nil
}

// TopCarGroups ranks listings by a whitelisted cars column.
func (r *GORMAnalyticsRepository) TopCarGroups(groupField string, limit int) ([]GroupCount, error) {
	if !carGroupColumns[groupField] {
		return nil, apperrors.Validation("cannot group cars by %q", groupField)
	}
	out := []GroupCount{}
	query := fmt.Sprintf(
		`SELECT %s AS label, COUNT(*) AS count
		 FROM cars GROUP BY %s
		 ORDER BY count DESC, label ASC LIMIT ?`, groupField, groupField)
	if err := r.db.Raw(query, limit).Scan(&out).Error; err != nil {
		return nil, apperrors.Internal(err, "failed to rank cars by %s", groupField)
	}
	return out, nil
}

// StoreStats aggregates the analytics overview of one store.
func (r *GORMAnalyticsRepository) StoreStats(storeID, ownerID uint) (*StoreStats, error) {
	var stats StoreStats

	counts := []struct {
		Status models.CarStatus
		Count  int64
	}{}
	err := r.db.Model(&models.Car{}).
		Select("status, COUNT(*) AS count").
		Where("store_id = ?", storeID).
		Group("status").
		Scan(&counts).Error
	if err != nil {
		return nil, apperrors.Internal(err, "failed to count store %d vehicles", storeID)
	}
	for _, c := range counts {
		stats.TotalVehicles += c.Count
		switch c.Status {
		case models.CarStatusActive:
			stats.ActiveVehicles = c.Count
		case models.CarStatusSold:
			stats.SoldVehicles = c.Count
		}
	}

	err = r.db.Model(&models.Message{}).
		Joins("JOIN cars ON cars.id = messages.car_id").
		Where("cars.store_id = ?", storeID).
		Count(&stats.TotalMessages).Error
	if err != nil {
		return nil, apperrors.Internal(err, "failed to count store %d messages", storeID)
	}

	row := r.db.Model(&models.Review{}).
		Select("COALESCE(AVG(rating), 0) AS average, COUNT(*) AS count").
		Where("seller_id = ?", ownerID).
		Row()
	if err := row.Scan(&stats.AverageRating, &stats.TotalReviews); err != nil {
		return nil, apperrors.Internal(err, "failed to aggregate owner %d rating", ownerID)
	}

	return &stats, nil
}

// MostViewed ranks the listings of a store by recorded view count.
func (r *GORMAnalyticsRepository) MostViewed(storeID uint, limit int) ([]ViewedCar, error) {
	out := []ViewedCar{}
	err := r.db.Raw(
		`SELECT cars.id AS car_id, cars.brand, cars.model, cars.version,
		        cars.price, cars.status, COUNT(car_views.id) AS views
		 FROM cars
		 LEFT JOIN car_views ON car_views.car_id = cars.id
		 WHERE cars.store_id = ?
		 GROUP BY cars.id, cars.brand, cars.model, cars.version, cars.price, cars.status
		 ORDER BY views DESC, cars.id ASC
		 LIMIT ?`, storeID, limit).Scan(&out).Error
	if err != nil {
		return nil, apperrors.Internal(err, "failed to rank store %d views", storeID)
	}
	return out, nil
}

// DashboardStats aggregates the admin dashboard totals.
func (r *GORMAnalyticsRepository) DashboardStats() (*DashboardStats, error) {
	var stats DashboardStats
	steps := []struct {
		name  string
		query *gorm.DB
		dest  *int64
	}{
		{"users", r.db.Model(&models.User{}), &stats.TotalUsers},
		{"cars", r.db.Model(&models.Car{}), &stats.TotalCars},
		{"active cars", r.db.Model(&models.Car{}).Where("status = ?", models.CarStatusActive), &stats.ActiveCars},
		{"stores", r.db.Model(&models.Store{}), &stats.TotalStores},
		{"transactions", r.db.Model(&models.Transaction{}), &stats.TotalTransactions},
	}
	for _, step := range steps {
		if err := step.query.Count(step.dest).Error; err != nil {
			return nil, apperrors.Internal(err, "failed to count %s", step.name)
		}
	}
	return &stats, nil
}
