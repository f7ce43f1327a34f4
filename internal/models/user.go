package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	Username     string `gorm:"uniqueIndex;size:64;not null" json:"username"`
	Email        string `gorm:"uniqueIndex;size:255;not null" json:"email"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`

	// TotalBalance is deposited principal, spendable on investments.
	// TotalProfit is realized earnings, the only balance withdrawable as payout.
	// ReferralBalance is the cumulative referral earnings record.
	TotalBalance    float64 `gorm:"type:decimal(15,2);not null;default:0" json:"total_balance"`
	TotalProfit     float64 `gorm:"type:decimal(15,2);not null;default:0" json:"total_profit"`
	ReferralBalance float64 `gorm:"type:decimal(15,2);not null;default:0" json:"referral_balance"`

	ReferralCode  string     `gorm:"uniqueIndex;size:20;not null" json:"referral_code"`
	CurrentPlanID *uint      `json:"current_plan_id"`
	PlanStartDate *time.Time `json:"plan_start_date"`
	IsActive      bool       `gorm:"default:true" json:"is_active"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (User) TableName() string { return "users" }
