package repositories

import (
	"automarket/internal/models"
)

// ModerationRepository defines the interface for the append-only audit log.
type ModerationRepository interface {
	Append(entry *models.ModerationLog) error
	List(limit, offset int) ([]models.ModerationLog, int64, error)
}
