package services

import (
	"time"

	"automarket/internal/apperrors"
	"automarket/internal/models"
	"automarket/internal/repositories"
)

// MaxImportBatch caps one bulk-import call.
const MaxImportBatch = 50

// ImportItemResult reports the outcome of one item in a bulk import.
type ImportItemResult struct {
	Index   int    `json:"index"`
	Success bool   `json:"success"`
	CarID   uint   `json:"car_id,omitempty"`
	Error   string `json:"error,omitempty"`
}

// ImportResult is the per-item report of one bulk import call.
type ImportResult struct {
	JobID     uint               `json:"job_id"`
	StoreID   uint               `json:"store_id"`
	Total     int                `json:"total"`
	Succeeded int                `json:"succeeded"`
	Failed    int                `json:"failed"`
	Items     []ImportItemResult `json:"items"`
}

// ImportService handles API-key authorized bulk listing imports on behalf of
// a store's owner. Items are validated independently; partial success is
// expected and reported per item.
type ImportService struct {
	storeRepo  repositories.StoreRepository
	userRepo   repositories.UserRepository
	importRepo repositories.ImportRepository
	cars       *CarService
	notifier   Notifier
}

// NewImportService creates a new ImportService.
func NewImportService(
	storeRepo repositories.StoreRepository,
	userRepo repositories.UserRepository,
	importRepo repositories.ImportRepository,
	cars *CarService,
	notifier Notifier,
) *ImportService {
	return &ImportService{
		storeRepo:  storeRepo,
		userRepo:   userRepo,
		importRepo: importRepo,
		cars:       cars,
		notifier:   notifier,
	}
}

// BulkImport validates the API key, then creates up to MaxImportBatch
// listings as the store's owner. Each item is validated independently; a
// failed item never aborts the batch.
func (s *ImportService) BulkImport(apiKey string, items []CarInput) (*ImportResult, error) {
	if apiKey == "" {
		return nil, apperrors.Unauthorized("API key is required; send the X-API-Key header")
	}
	store, err := s.storeRepo.GetByAPIKey(apiKey)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, apperrors.Validation("import batch is empty")
	}
	if len(items) > MaxImportBatch {
		return nil, apperrors.Validation("import batch exceeds the limit of %d listings", MaxImportBatch)
	}

	owner, err := s.userRepo.GetByID(store.OwnerID)
	if err != nil {
		return nil, err
	}

	job := &models.BulkImportJob{
		StoreID:      store.ID,
		Status:       models.BulkImportProcessing,
		TotalRecords: len(items),
	}
	if err := s.importRepo.CreateJob(job); err != nil {
		return nil, err
	}

	result := &ImportResult{
		JobID:   job.ID,
		StoreID: store.ID,
		Total:   len(items),
		Items:   make([]ImportItemResult, 0, len(items)),
	}
	for i, item := range items {
		item.StoreID = &store.ID
		car, err := s.cars.Create(owner, item)
		if err != nil {
			result.Failed++
			result.Items = append(result.Items, ImportItemResult{Index: i, Error: err.Error()})
			job.ErrorLog = append(job.ErrorLog, models.ImportError{Index: i, Error: err.Error()})
			continue
		}
		result.Succeeded++
		result.Items = append(result.Items, ImportItemResult{Index: i, Success: true, CarID: car.ID})
	}

	now := time.Now()
	job.Status = models.BulkImportCompleted
	job.ProcessedRecords = result.Succeeded
	job.FailedRecords = result.Failed
	job.CompletedAt = &now
	if err := s.importRepo.UpdateJob(job); err != nil {
		return nil, err
	}

	notify(s.notifier, "import.completed", map[string]interface{}{
		"job_id":    job.ID,
		"store_id":  store.ID,
		"total":     result.Total,
		"succeeded": result.Succeeded,
		"failed":    result.Failed,
	})
	return result, nil
}

// Job returns one bulk import job for its store owner or an admin.
func (s *ImportService) Job(actor *models.User, jobID uint) (*models.BulkImportJob, error) {
	job, err := s.importRepo.GetJob(jobID)
	if err != nil {
		return nil, err
	}
	store, err := s.storeRepo.GetByID(job.StoreID)
	if err != nil {
		return nil, err
	}
	if store.OwnerID != actor.ID && actor.Role != models.RoleAdmin {
		return nil, apperrors.Forbidden("no permission to read import job %d", jobID)
	}
	return job, nil
}
