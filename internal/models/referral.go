package models

import (
	"time"

	"gorm.io/gorm"
)

// Referral is the directed referrer -> referee edge, created once at
// referee registration. Earnings is a cumulative record of credits paid
// out for this edge; the ledger is the authoritative history.
type Referral struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	ReferrerID uint           `gorm:"not null;index" json:"referrer_id"`
	RefereeID  uint           `gorm:"uniqueIndex;not null" json:"referee_id"`
	Earnings   float64        `gorm:"type:decimal(15,2);not null;default:0" json:"earnings"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`

	Referrer *User `gorm:"foreignKey:ReferrerID" json:"referrer,omitempty"`
	Referee  *User `gorm:"foreignKey:RefereeID" json:"referee,omitempty"`
}

func (Referral) TableName() string { return "referrals" }
