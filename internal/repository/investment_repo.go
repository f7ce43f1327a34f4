package repository

import (
	"coinvest/internal/domain"
	"coinvest/internal/models"

	"gorm.io/gorm"
)

type InvestmentRepository struct {
	db *gorm.DB
}

func NewInvestmentRepository(db *gorm.DB) *InvestmentRepository {
	return &InvestmentRepository{db: db}
}

func (r *InvestmentRepository) GetByID(id uint) (*models.Investment, error) {
	var inv models.Investment
	if err := r.db.Preload("Plan").First(&inv, id).Error; err != nil {
		return nil, err
	}
	return &inv, nil
}

func (r *InvestmentRepository) ListByUser(userID uint, limit, offset int) ([]models.Investment, error) {
	var list []models.Investment
	err := r.db.Where("user_id = ?", userID).
		Preload("Plan").
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&list).Error
	return list, err
}

func (r *InvestmentRepository) ListActiveByUser(userID uint) ([]models.Investment, error) {
	var list []models.Investment
	err := r.db.Where("user_id = ? AND status = ?", userID, domain.InvestmentActive).
		Preload("Plan").
		Order("end_date ASC").
		Find(&list).Error
	return list, err
}

func (r *InvestmentRepository) List(status string, page, limit int) ([]models.Investment, int64, error) {
	q := r.db.Model(&models.Investment{})
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var list []models.Investment
	err := q.Preload("Plan").Order("created_at DESC").
		Limit(limit).Offset((page - 1) * limit).
		Find(&list).Error
	return list, total, err
}
