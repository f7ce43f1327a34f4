package models

import (
	"time"

	"gorm.io/gorm"
)

// Withdrawal holds profit out of the ledger from the moment it is created.
// Rejecting or failing a withdrawal returns the hold; completing does not.
type Withdrawal struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	UserID         uint           `gorm:"not null;index" json:"user_id"`
	Amount         float64        `gorm:"type:decimal(15,2);not null" json:"amount"`
	WalletAddress  string         `gorm:"size:128;not null" json:"wallet_address"`
	Cryptocurrency string         `gorm:"size:10;not null" json:"cryptocurrency"`
	Status         string         `gorm:"size:20;not null;index" json:"status"` // pending, processing, completed, rejected, failed
	Reference      string         `gorm:"size:64;uniqueIndex;not null" json:"reference"`
	CompletedAt    *time.Time     `json:"completed_at"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (Withdrawal) TableName() string { return "withdrawals" }
