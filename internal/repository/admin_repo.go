package repository

import (
	"coinvest/internal/domain"
	"coinvest/internal/models"

	"gorm.io/gorm"
)

type AdminRepository struct {
	db *gorm.DB
}

func NewAdminRepository(db *gorm.DB) *AdminRepository {
	return &AdminRepository{db: db}
}

func (r *AdminRepository) GetByEmail(email string) (*models.Admin, error) {
	var a models.Admin
	if err := r.db.Where("email = ?", email).First(&a).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AdminRepository) GetByID(id uint) (*models.Admin, error) {
	var a models.Admin
	if err := r.db.First(&a, id).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

// DashboardStats aggregates the figures shown on the admin overview.
type DashboardStats struct {
	TotalUsers         int64   `json:"total_users"`
	PendingDeposits    int64   `json:"pending_deposits"`
	PendingWithdrawals int64   `json:"pending_withdrawals"`
	ActiveInvestments  int64   `json:"active_investments"`
	TotalDeposited     float64 `json:"total_deposited"`
	TotalWithdrawn     float64 `json:"total_withdrawn"`
	TotalInvested      float64 `json:"total_invested"`
}

func (r *AdminRepository) GetDashboardStats() (*DashboardStats, error) {
	var s DashboardStats
	if err := r.db.Model(&models.User{}).Count(&s.TotalUsers).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&models.Deposit{}).Where("status = ?", domain.DepositPending).Count(&s.PendingDeposits).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&models.Withdrawal{}).Where("status = ?", domain.WithdrawalPending).Count(&s.PendingWithdrawals).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&models.Investment{}).Where("status = ?", domain.InvestmentActive).Count(&s.ActiveInvestments).Error; err != nil {
		return nil, err
	}
	row := r.db.Model(&models.Deposit{}).Where("status = ?", domain.DepositVerified).
		Select("COALESCE(SUM(amount), 0)").Row()
	if err := row.Scan(&s.TotalDeposited); err != nil {
		return nil, err
	}
	row = r.db.Model(&models.Withdrawal{}).Where("status = ?", domain.WithdrawalCompleted).
		Select("COALESCE(SUM(amount), 0)").Row()
	if err := row.Scan(&s.TotalWithdrawn); err != nil {
		return nil, err
	}
	row = r.db.Model(&models.Investment{}).
		Select("COALESCE(SUM(amount), 0)").Row()
	if err := row.Scan(&s.TotalInvested); err != nil {
		return nil, err
	}
	return &s, nil
}
