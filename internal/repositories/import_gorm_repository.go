package repositories

import (
	"errors"

	"gorm.io/gorm"

	"automarket/internal/apperrors"
	"automarket/internal/models"
)

// GORMImportRepository is a GORM implementation of ImportRepository.
type GORMImportRepository struct {
	db *gorm.DB
}

// NewGORMImportRepository creates a new instance of GORMImportRepository.
func NewGORMImportRepository(db *gorm.DB) *GORMImportRepository {
	return &GORMImportRepository{db: db}
}

// CreateJob inserts a new bulk import job.
func (r *GORMImportRepository) CreateJob(job *models.BulkImportJob) error {
	if err := r.db.Create(job).Error; err != nil {
		return apperrors.Internal(err, "failed to create import job")
	}
	return nil
}

// GetJob retrieves a bulk import job by its ID.
func (r *GORMImportRepository) GetJob(id uint) (*models.BulkImportJob, error) {
	var job models.BulkImportJob
	if err := r.db.First(&job, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("import job %d not found", id)
		}
		return nil, apperrors.Internal(err, "failed to get import job %d", id)
	}
	return &job, nil
}

// UpdateJob saves all fields of an existing job.
func (r *GORMImportRepository) UpdateJob(job *models.BulkImportJob) error {
	res := r.db.Save(job)
	if res.Error != nil {
		return apperrors.Internal(res.Error, "failed to update import job %d", job.ID)
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound("import job %d not found for update", job.ID)
	}
	return nil
}
