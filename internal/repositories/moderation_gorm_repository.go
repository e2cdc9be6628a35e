package repositories

import (
	"gorm.io/gorm"

	"automarket/internal/apperrors"
	"automarket/internal/models"
)

// GORMModerationRepository is a GORM implementation of ModerationRepository.
// Entries are appended and read, never updated or deleted.
type GORMModerationRepository struct {
	db *gorm.DB
}

// NewGORMModerationRepository creates a new instance of GORMModerationRepository.
func NewGORMModerationRepository(db *gorm.DB) *GORMModerationRepository {
	return &GORMModerationRepository{db: db}
}

// Append inserts one audit record.
func (r *GORMModerationRepository) Append(entry *models.ModerationLog) error {
	if err := r.db.Create(entry).Error; err != nil {
		return apperrors.Internal(err, "failed to append moderation log")
	}
	return nil
}

// List returns a page of audit records, newest first, plus the total count.
func (r *GORMModerationRepository) List(limit, offset int) ([]models.ModerationLog, int64, error) {
	var total int64
	if err := r.db.Model(&models.ModerationLog{}).Count(&total).Error; err != nil {
		return nil, 0, apperrors.Internal(err, "failed to count moderation logs")
	}
	logs := []models.ModerationLog{}
	if limit > 0 {
		if err := r.db.Order("created_at DESC, id ASC").Limit(limit).Offset(offset).Find(&logs).Error; err != nil {
			return nil, 0, apperrors.Internal(err, "failed to list moderation logs")
		}
	}
	return logs, total, nil
}
