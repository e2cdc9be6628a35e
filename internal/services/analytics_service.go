package services

import (
	"time"

	"automarket/internal/apperrors"
	"automarket/internal/models"
	"automarket/internal/repositories"
)

// Entities whose creation trend can be bucketed per day.
const (
	EntityCars     = "cars"
	EntityUsers    = "users"
	EntityMessages = "messages"
)

// AnalyticsService exposes the read-only aggregations: day-bucketed trends,
// top-N rankings and the store dashboard. It writes no state.
type AnalyticsService struct {
	analyticsRepo repositories.AnalyticsRepository
	storeRepo     repositories.StoreRepository
}

// NewAnalyticsService creates a new AnalyticsService.
func NewAnalyticsService(analyticsRepo repositories.AnalyticsRepository, storeRepo repositories.StoreRepository) *AnalyticsService {
	return &AnalyticsService{
		analyticsRepo: analyticsRepo,
		storeRepo:     storeRepo,
	}
}

// CountPerDay buckets the entity's rows by calendar date over the trailing
// window. Days without rows are omitted; callers treat missing days as zero.
// storeID scopes cars and messages to one store; it is ignored for users.
func (s *AnalyticsService) CountPerDay(entity string, windowDays int, storeID uint) ([]repositories.DayCount, error) {
	if windowDays <= 0 {
		return nil, apperrors.Validation("window must cover at least one day")
	}
	since := time.Now().AddDate(0, 0, -windowDays)
	switch entity {
	case EntityCars:
		return s.analyticsRepo.CarsCreatedPerDay(since, storeID)
	case EntityUsers:
		return s.analyticsRepo.UsersCreatedPerDay(since)
	case EntityMessages:
		return s.analyticsRepo.MessagesPerDay(since, storeID)
	}
	return nil, apperrors.Validation("unknown analytics entity %q", entity)
}

// TopByGroup ranks all listings grouped by the given field, count
// descending, truncated to limit. No time window.
func (s *AnalyticsService) TopByGroup(groupField string, limit int) ([]repositories.GroupCount, error) {
	if limit <= 0 {
		return nil, apperrors.Validation("limit must be positive")
	}
	return s.analyticsRepo.TopCarGroups(groupField, limit)
}

// requireStoreAccess loads the store and checks the actor may read its
// analytics (owner or admin).
func (s *AnalyticsService) requireStoreAccess(actor *models.User, storeID uint) (*models.Store, error) {
	store, err := s.storeRepo.GetByID(storeID)
	if err != nil {
		return nil, err
	}
	if store.OwnerID != actor.ID && actor.Role != models.RoleAdmin {
		return nil, apperrors.Forbidden("no permission to read analytics of store %d", storeID)
	}
	return store, nil
}

// StoreAnalytics returns the store dashboard overview. Listing and message
// counts are store-scoped; the rating figures deliberately cover the owner's
// reputation across all their listings.
func (s *AnalyticsService) StoreAnalytics(actor *models.User, storeID uint) (*repositories.StoreStats, error) {
	store, err := s.requireStoreAccess(actor, storeID)
	if err != nil {
		return nil, err
	}
	return s.analyticsRepo.StoreStats(storeID, store.OwnerID)
}

// MostViewed ranks the store's listings by recorded view count.
func (s *AnalyticsService) MostViewed(actor *models.User, storeID uint, limit int) ([]repositories.ViewedCar, error) {
	if limit <= 0 {
		return nil, apperrors.Validation("limit must be positive")
	}
	if _, err := s.requireStoreAccess(actor, storeID); err != nil {
		return nil, err
	}
	return s.analyticsRepo.MostViewed(storeID, limit)
}

// Dashboard returns the admin overview totals.
func (s *AnalyticsService) Dashboard(admin *models.User) (*repositories.DashboardStats, error) {
	if err := requireAdmin(admin); err != nil {
		return nil, err
	}
	return s.analyticsRepo.DashboardStats()
}
