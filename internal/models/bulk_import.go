package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// BulkImportStatus is the lifecycle state of a bulk import job.
type BulkImportStatus string

const (
	BulkImportPending    BulkImportStatus = "PENDING"
	BulkImportProcessing BulkImportStatus = "PROCESSING"
	BulkImportCompleted  BulkImportStatus = "COMPLETED"
	BulkImportFailed     BulkImportStatus = "FAILED"
)

// ImportError records the failure of one item in a bulk import.
type ImportError struct {
	Index int    `json:"index"`
	Error string `json:"error"`
}

// ImportErrorList stores per-item failures as a JSON column.
type ImportErrorList []ImportError

// Value implements driver.Valuer.
func (l ImportErrorList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]ImportError(l))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal import error list: %w", err)
	}
	return string(b), nil
}

// Scan implements sql.Scanner.
func (l *ImportErrorList) Scan(value interface{}) error {
	if value == nil {
		*l = nil
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported import error column type %T", value)
	}
	if len(data) == 0 {
		*l = nil
		return nil
	}
	return json.Unmarshal(data, (*[]ImportError)(l))
}

// BulkImportJob tracks one API-key authorized bulk listing import for a
// store. Items are validated independently; partial success is recorded
// per item in ErrorLog.
type BulkImportJob struct {
	ID               uint             `json:"id" gorm:"primaryKey"`
	StoreID          uint             `json:"store_id" gorm:"index;not null"`
	Status           BulkImportStatus `json:"status" gorm:"type:varchar(16);index;default:PENDING"`
	TotalRecords     int              `json:"total_records"`
	ProcessedRecords int              `json:"processed_records" gorm:"default:0"`
	FailedRecords    int              `json:"failed_records" gorm:"default:0"`
	ErrorLog         ImportErrorList  `json:"error_log" gorm:"type:text"`
	CreatedAt        time.Time        `json:"created_at"`
	CompletedAt      *time.Time       `json:"completed_at,omitempty"`
}
