package models

import (
	"time"

	"gorm.io/gorm"
)

// AdminWallet is a deposit destination address shown to users.
type AdminWallet struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Currency  string         `gorm:"size:10;not null;index" json:"currency"`
	Network   string         `gorm:"size:32;not null" json:"network"`
	Address   string         `gorm:"size:128;not null" json:"address"`
	IsActive  bool           `gorm:"default:true;index" json:"is_active"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (AdminWallet) TableName() string { return "admin_wallets" }
