package models

import (
	"time"

	"gorm.io/gorm"
)

// Deposit is a user's claim of an on-chain transfer to an admin wallet.
// At least one of TxHash / ProofImageURL is required at submission.
type Deposit struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	UserID        uint           `gorm:"not null;index" json:"user_id"`
	Amount        float64        `gorm:"type:decimal(15,2);not null" json:"amount"`
	Currency      string         `gorm:"size:10;not null" json:"currency"`
	TxHash        string         `gorm:"size:128" json:"tx_hash"`
	ProofImageURL string         `gorm:"size:512" json:"proof_image_url"`
	Status        string         `gorm:"size:20;not null;index" json:"status"` // pending, verified, rejected
	AdminNote     string         `gorm:"size:255" json:"admin_note"`
	VerifiedAt    *time.Time     `json:"verified_at"`
	Reference     string         `gorm:"size:64;uniqueIndex;not null" json:"reference"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (Deposit) TableName() string { return "deposits" }
