package models

import (
	"time"

	"gorm.io/gorm"
)

// LedgerEntry is an append-only record of a balance-affecting event.
// Amount is positive for credits and negative for debits/holds. The
// (type, reference) pair is unique: replaying an event is a no-op.
type LedgerEntry struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	UserID    uint           `gorm:"not null;index" json:"user_id"`
	Type      string         `gorm:"size:32;not null;uniqueIndex:idx_ledger_type_ref" json:"type"`
	Reference string         `gorm:"size:64;not null;uniqueIndex:idx_ledger_type_ref" json:"reference"`
	Amount    float64        `gorm:"type:decimal(15,2);not null" json:"amount"`
	CreatedAt time.Time      `json:"created_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (LedgerEntry) TableName() string { return "ledger_entries" }
