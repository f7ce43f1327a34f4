package repository

import (
	"errors"
	"time"

	"coinvest/internal/domain"
	"coinvest/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrNotFound = errors.New("record not found")

// Store is the transactional surface the ledger services mutate balances
// through. Atomically runs fn inside one database transaction; the *ForUpdate
// getters take row-level locks so concurrent balance checks serialize.
type Store interface {
	Atomically(fn func(tx Store) error) error

	UserByID(id uint) (*models.User, error)
	UserForUpdate(id uint) (*models.User, error)
	SaveUser(u *models.User) error

	DepositForUpdate(id uint) (*models.Deposit, error)
	SaveDeposit(d *models.Deposit) error
	CreateDeposit(d *models.Deposit) error

	CreateWithdrawal(w *models.Withdrawal) error
	WithdrawalForUpdate(id uint) (*models.Withdrawal, error)
	SaveWithdrawal(w *models.Withdrawal) error
	DeleteWithdrawal(w *models.Withdrawal) error

	PlanByID(id uint) (*models.InvestmentPlan, error)
	CreateInvestment(inv *models.Investment) error
	InvestmentForUpdate(id uint) (*models.Investment, error)
	SaveInvestment(inv *models.Investment) error
	DueInvestmentIDs(now time.Time, limit int) ([]uint, error)

	ReferralByReferee(refereeID uint) (*models.Referral, error)
	SaveReferral(ref *models.Referral) error

	AppendEntry(e *models.LedgerEntry) error
	HasEntry(entryType, reference string) (bool, error)
}

// GormStore implements Store over a *gorm.DB.
type GormStore struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Atomically(fn func(tx Store) error) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		return fn(&GormStore{db: tx})
	})
}

func (s *GormStore) UserByID(id uint) (*models.User, error) {
	var u models.User
	if err := s.db.First(&u, id).Error; err != nil {
		return nil, wrapNotFound(err)
	}
	return &u, nil
}

func (s *GormStore) UserForUpdate(id uint) (*models.User, error) {
	var u models.User
	if err := s.db.Clauses(clause.Locking{Strength: "UPDATE"}).First(&u, id).Error; err != nil {
		return nil, wrapNotFound(err)
	}
	return &u, nil
}

func (s *GormStore) SaveUser(u *models.User) error {
	return s.db.Save(u).Error
}

func (s *GormStore) DepositForUpdate(id uint) (*models.Deposit, error) {
	var d models.Deposit
	if err := s.db.Clauses(clause.Locking{Strength: "UPDATE"}).First(&d, id).Error; err != nil {
		return nil, wrapNotFound(err)
	}
	return &d, nil
}

func (s *GormStore) SaveDeposit(d *models.Deposit) error {
	return s.db.Save(d).Error
}

func (s *GormStore) CreateDeposit(d *models.Deposit) error {
	return s.db.Create(d).Error
}

func (s *GormStore) CreateWithdrawal(w *models.Withdrawal) error {
	return s.db.Create(w).Error
}

func (s *GormStore) WithdrawalForUpdate(id uint) (*models.Withdrawal, error) {
	var w models.Withdrawal
	if err := s.db.Clauses(clause.Locking{Strength: "UPDATE"}).First(&w, id).Error; err != nil {
		return nil, wrapNotFound(err)
	}
	return &w, nil
}

func (s *GormStore) SaveWithdrawal(w *models.Withdrawal) error {
	return s.db.Save(w).Error
}

func (s *GormStore) DeleteWithdrawal(w *models.Withdrawal) error {
	return s.db.Delete(w).Error
}

func (s *GormStore) PlanByID(id uint) (*models.InvestmentPlan, error) {
	var p models.InvestmentPlan
	if err := s.db.First(&p, id).Error; err != nil {
		return nil, wrapNotFound(err)
	}
	return &p, nil
}

func (s *GormStore) CreateInvestment(inv *models.Investment) error {
	return s.db.Create(inv).Error
}

func (s *GormStore) InvestmentForUpdate(id uint) (*models.Investment, error) {
	var inv models.Investment
	if err := s.db.Clauses(clause.Locking{Strength: "UPDATE"}).First(&inv, id).Error; err != nil {
		return nil, wrapNotFound(err)
	}
	return &inv, nil
}

func (s *GormStore) SaveInvestment(inv *models.Investment) error {
	return s.db.Save(inv).Error
}

func (s *GormStore) DueInvestmentIDs(now time.Time, limit int) ([]uint, error) {
	var ids []uint
	err := s.db.Model(&models.Investment{}).
		Where("status = ? AND end_date <= ?", domain.InvestmentActive, now).
		Order("end_date ASC").
		Limit(limit).
		Pluck("id", &ids).Error
	return ids, err
}

func (s *GormStore) ReferralByReferee(refereeID uint) (*models.Referral, error) {
	var ref models.Referral
	if err := s.db.Where("referee_id = ?", refereeID).First(&ref).Error; err != nil {
		return nil, wrapNotFound(err)
	}
	return &ref, nil
}

func (s *GormStore) SaveReferral(ref *models.Referral) error {
	return s.db.Save(ref).Error
}

func (s *GormStore) AppendEntry(e *models.LedgerEntry) error {
	return s.db.Create(e).Error
}

func (s *GormStore) HasEntry(entryType, reference string) (bool, error) {
	var count int64
	err := s.db.Model(&models.LedgerEntry{}).
		Where("type = ? AND reference = ?", entryType, reference).
		Count(&count).Error
	return count > 0, err
}

func wrapNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
