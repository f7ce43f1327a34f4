package models

import (
	"time"

	"gorm.io/gorm"
)

// InvestmentPlan defines an offering users can invest principal into.
// MaxAmount nil means no upper limit.
type InvestmentPlan struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	Name          string         `gorm:"size:64;uniqueIndex;not null" json:"name"`
	MinAmount     float64        `gorm:"type:decimal(15,2);not null" json:"min_amount"`
	MaxAmount     *float64       `gorm:"type:decimal(15,2)" json:"max_amount"`
	ProfitRate    float64        `gorm:"type:decimal(5,2);not null" json:"profit_rate"`
	DurationHours int            `gorm:"not null" json:"duration_hours"`
	IsActive      bool           `gorm:"default:true;index" json:"is_active"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

func (InvestmentPlan) TableName() string { return "investment_plans" }

// InRange reports whether amount falls within the plan's limits.
func (p *InvestmentPlan) InRange(amount float64) bool {
	if amount < p.MinAmount {
		return false
	}
	if p.MaxAmount != nil && amount > *p.MaxAmount {
		return false
	}
	return true
}
