package repositories

import (
	"automarket/internal/models"
)

// ImportRepository defines the interface for bulk-import job tracking.
type ImportRepository interface {
	CreateJob(job *models.BulkImportJob) error
	GetJob(id uint) (*models.BulkImportJob, error)
	UpdateJob(job *models.BulkImportJob) error
}
