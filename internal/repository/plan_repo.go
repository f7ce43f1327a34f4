package repository

import (
	"coinvest/internal/models"

	"gorm.io/gorm"
)

type PlanRepository struct {
	db *gorm.DB
}

func NewPlanRepository(db *gorm.DB) *PlanRepository {
	return &PlanRepository{db: db}
}

func (r *PlanRepository) GetByID(id uint) (*models.InvestmentPlan, error) {
	var p models.InvestmentPlan
	if err := r.db.First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PlanRepository) ListActive() ([]models.InvestmentPlan, error) {
	var plans []models.InvestmentPlan
	err := r.db.Where("is_active = ?", true).Order("min_amount ASC").Find(&plans).Error
	return plans, err
}

func (r *PlanRepository) List() ([]models.InvestmentPlan, error) {
	var plans []models.InvestmentPlan
	err := r.db.Order("min_amount ASC").Find(&plans).Error
	return plans, err
}

func (r *PlanRepository) Create(p *models.InvestmentPlan) error {
	return r.db.Create(p).Error
}

func (r *PlanRepository) Update(p *models.InvestmentPlan) error {
	return r.db.Save(p).Error
}

func (r *PlanRepository) Delete(id uint) error {
	return r.db.Delete(&models.InvestmentPlan{}, id).Error
}
