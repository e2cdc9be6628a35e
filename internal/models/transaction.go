package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionStatus is the lifecycle state of a sale proposal.
type TransactionStatus string

const (
	TransactionPending   TransactionStatus = "PENDING"
	TransactionAccepted  TransactionStatus = "ACCEPTED"
	TransactionRejected  TransactionStatus = "REJECTED"
	TransactionCompleted TransactionStatus = "COMPLETED"
	TransactionCancelled TransactionStatus = "CANCELLED"
)

// Valid reports whether s is one of the known transaction states.
func (s TransactionStatus) Valid() bool {
	switch s {
	case TransactionPending, TransactionAccepted, TransactionRejected,
		TransactionCompleted, TransactionCancelled:
		return true
	}
	return false
}

// Transaction is a sale proposal between a buyer and the seller of a listing.
type Transaction struct {
	ID            uint              `json:"id" gorm:"primaryKey"`
	CarID         uint              `json:"car_id" gorm:"index;not null"`
	BuyerID       uint              `json:"buyer_id" gorm:"index;not null"`
	SellerID      uint              `json:"seller_id" gorm:"index;not null"`
	ProposedPrice *decimal.Decimal  `json:"proposed_price,omitempty" gorm:"type:decimal(12,2)"`
	Status        TransactionStatus `json:"status" gorm:"type:varchar(16);index;default:PENDING"`
	Notes         string            `json:"notes" validate:"omitempty,max=2000"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
}
