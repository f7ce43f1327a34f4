package models

import (
	"time"

	"gorm.io/gorm"
)

type Investment struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	UserID         uint           `gorm:"not null;index" json:"user_id"`
	PlanID         uint           `gorm:"not null;index" json:"plan_id"`
	Amount         float64        `gorm:"type:decimal(15,2);not null" json:"amount"`
	ExpectedProfit float64        `gorm:"type:decimal(15,2);not null" json:"expected_profit"`
	StartDate      time.Time      `gorm:"not null" json:"start_date"`
	EndDate        time.Time      `gorm:"not null;index" json:"end_date"`
	Status         string         `gorm:"size:20;not null;index" json:"status"` // active, completed, cancelled
	Reference      string         `gorm:"size:64;uniqueIndex;not null" json:"reference"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`

	Plan *InvestmentPlan `gorm:"foreignKey:PlanID" json:"plan,omitempty"`
}

func (Investment) TableName() string { return "investments" }
