package repository

import (
	"coinvest/internal/models"

	"gorm.io/gorm"
)

// WalletRepository manages the admin-owned deposit destination addresses.
type WalletRepository struct {
	db *gorm.DB
}

func NewWalletRepository(db *gorm.DB) *WalletRepository {
	return &WalletRepository{db: db}
}

func (r *WalletRepository) GetByID(id uint) (*models.AdminWallet, error) {
	var w models.AdminWallet
	if err := r.db.First(&w, id).Error; err != nil {
		return nil, err
	}
	return &w, nil
}

func (r *WalletRepository) ListActive() ([]models.AdminWallet, error) {
	var list []models.AdminWallet
	err := r.db.Where("is_active = ?", true).Order("currency ASC").Find(&list).Error
	return list, err
}

func (r *WalletRepository) List() ([]models.AdminWallet, error) {
	var list []models.AdminWallet
	err := r.db.Order("currency ASC").Find(&list).Error
	return list, err
}

func (r *WalletRepository) Create(w *models.AdminWallet) error {
	return r.db.Create(w).Error
}

func (r *WalletRepository) Update(w *models.AdminWallet) error {
	return r.db.Save(w).Error
}

func (r *WalletRepository) Delete(id uint) error {
	return r.db.Delete(&models.AdminWallet{}, id).Error
}
