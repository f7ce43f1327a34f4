package service

import (
	"errors"
	"fmt"
	"math"
	"time"

	"coinvest/internal/domain"
	"coinvest/internal/models"
	"coinvest/internal/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// LedgerService owns every balance mutation triggered by deposits,
// withdrawals and referrals. Each operation runs in one transaction with
// the affected rows locked, and appends a ledger entry whose unique
// (type, reference) pair makes the effect exactly-once.
type LedgerService struct {
	store        repository.Store
	notifier     *Notifier
	referralRate float64
}

func NewLedgerService(store repository.Store, notifier *Notifier, referralRatePercent float64) *LedgerService {
	return &LedgerService{
		store:        store,
		notifier:     notifier,
		referralRate: referralRatePercent,
	}
}

// VerifyDeposit moves a pending deposit to verified or rejected. Verifying
// credits the owner's principal and pays the referral commission in the
// same transaction. A deposit that already left pending is returned
// unchanged — the balance effect is applied only on the pending->verified
// transition.
func (s *LedgerService) VerifyDeposit(depositID uint, status, adminNote string) (*models.Deposit, error) {
	if status != domain.DepositVerified && status != domain.DepositRejected {
		return nil, ErrInvalidStatus
	}
	var deposit *models.Deposit
	applied := false
	err := s.store.Atomically(func(tx repository.Store) error {
		d, err := tx.DepositForUpdate(depositID)
		if err != nil {
			return err
		}
		deposit = d
		if d.Status != domain.DepositPending {
			return nil
		}
		applied = true
		d.Status = status
		d.AdminNote = adminNote
		if status == domain.DepositRejected {
			return tx.SaveDeposit(d)
		}
		now := time.Now()
		d.VerifiedAt = &now
		if err := tx.SaveDeposit(d); err != nil {
			return err
		}
		u, err := tx.UserForUpdate(d.UserID)
		if err != nil {
			return err
		}
		u.TotalBalance = round2(u.TotalBalance + d.Amount)
		if err := tx.SaveUser(u); err != nil {
			return err
		}
		if err := tx.AppendEntry(&models.LedgerEntry{
			UserID:    d.UserID,
			Type:      domain.EntryDepositCredit,
			Reference: d.Reference,
			Amount:    d.Amount,
		}); err != nil {
			return err
		}
		return s.creditReferrer(tx, d)
	})
	if err != nil {
		return nil, err
	}
	if applied {
		if status == domain.DepositVerified {
			s.notifier.DepositVerified(deposit.UserID, deposit.Amount, deposit.Currency)
		} else {
			s.notifier.DepositRejected(deposit.UserID, deposit.Amount, adminNote)
		}
	}
	return deposit, nil
}

// creditReferrer pays the commission for a referee's verified deposit.
// Keyed by the deposit reference: one credit per qualifying deposit, ever.
func (s *LedgerService) creditReferrer(tx repository.Store, d *models.Deposit) error {
	if s.referralRate <= 0 {
		return nil
	}
	ref, err := tx.ReferralByReferee(d.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil
		}
		return err
	}
	exists, err := tx.HasEntry(domain.EntryReferralCredit, d.Reference)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	bonus := round2(d.Amount * s.referralRate / 100)
	if bonus <= 0 {
		return nil
	}
	referrer, err := tx.UserForUpdate(ref.ReferrerID)
	if err != nil {
		return err
	}
	referrer.TotalProfit = round2(referrer.TotalProfit + bonus)
	referrer.ReferralBalance = round2(referrer.ReferralBalance + bonus)
	if err := tx.SaveUser(referrer); err != nil {
		return err
	}
	ref.Earnings = round2(ref.Earnings + bonus)
	if err := tx.SaveReferral(ref); err != nil {
		return err
	}
	if err := tx.AppendEntry(&models.LedgerEntry{
		UserID:    ref.ReferrerID,
		Type:      domain.EntryReferralCredit,
		Reference: d.Reference,
		Amount:    bonus,
	}); err != nil {
		return err
	}
	logrus.WithFields(logrus.Fields{
		"referrer": ref.ReferrerID,
		"referee":  d.UserID,
		"bonus":    bonus,
	}).Info("referral commission credited")
	return nil
}

// RequestWithdrawal escrows profit out of the ledger immediately: the
// decrement happens before admin approval so two concurrent requests
// cannot double-spend the same profit.
func (s *LedgerService) RequestWithdrawal(userID uint, amount float64, walletAddress, cryptocurrency string) (*models.Withdrawal, error) {
	if amount <= 0 {
		return nil, ErrInvalidStatus
	}
	var w *models.Withdrawal
	err := s.store.Atomically(func(tx repository.Store) error {
		u, err := tx.UserForUpdate(userID)
		if err != nil {
			return err
		}
		if u.TotalProfit < amount {
			return ErrInsufficientProfit
		}
		u.TotalProfit = round2(u.TotalProfit - amount)
		if err := tx.SaveUser(u); err != nil {
			return err
		}
		w = &models.Withdrawal{
			UserID:         userID,
			Amount:         amount,
			WalletAddress:  walletAddress,
			Cryptocurrency: cryptocurrency,
			Status:         domain.WithdrawalPending,
			Reference:      fmt.Sprintf("wd-%s", uuid.New().String()),
		}
		if err := tx.CreateWithdrawal(w); err != nil {
			return err
		}
		return tx.AppendEntry(&models.LedgerEntry{
			UserID:    userID,
			Type:      domain.EntryWithdrawalHold,
			Reference: w.Reference,
			Amount:    -amount,
		})
	})
	if err != nil {
		return nil, err
	}
	return w, nil
}

// ResolveWithdrawal applies an admin status transition. Rejected and
// failed return the hold to the user's profit exactly once; completed is
// terminal with no balance effect — the hold already removed the funds.
func (s *LedgerService) ResolveWithdrawal(withdrawalID uint, newStatus string) (*models.Withdrawal, error) {
	if !domain.ValidWithdrawalStatus(newStatus) {
		return nil, ErrInvalidStatus
	}
	var w *models.Withdrawal
	err := s.store.Atomically(func(tx repository.Store) error {
		var err error
		w, err = tx.WithdrawalForUpdate(withdrawalID)
		if err != nil {
			return err
		}
		if !domain.CanTransitionWithdrawal(w.Status, newStatus) {
			return ErrInvalidTransition
		}
		if domain.RefundsWithdrawal(newStatus) {
			if err := s.refundHold(tx, w); err != nil {
				return err
			}
		}
		w.Status = newStatus
		if newStatus == domain.WithdrawalCompleted {
			now := time.Now()
			w.CompletedAt = &now
		}
		return tx.SaveWithdrawal(w)
	})
	if err != nil {
		return nil, err
	}
	s.notifier.WithdrawalUpdated(w.UserID, w.Amount, newStatus)
	return w, nil
}

// CancelWithdrawal lets a user delete their own pending withdrawal,
// refunding the hold like a rejection.
func (s *LedgerService) CancelWithdrawal(userID, withdrawalID uint) error {
	return s.store.Atomically(func(tx repository.Store) error {
		w, err := tx.WithdrawalForUpdate(withdrawalID)
		if err != nil {
			return err
		}
		if w.UserID != userID {
			return ErrNotOwner
		}
		if w.Status != domain.WithdrawalPending {
			return ErrWithdrawalNotPending
		}
		if err := s.refundHold(tx, w); err != nil {
			return err
		}
		return tx.DeleteWithdrawal(w)
	})
}

// refundHold reverses the withdrawal hold. The refund entry keyed by the
// withdrawal reference blocks a double refund even if the transition is
// replayed.
func (s *LedgerService) refundHold(tx repository.Store, w *models.Withdrawal) error {
	exists, err := tx.HasEntry(domain.EntryWithdrawalRefund, w.Reference)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	u, err := tx.UserForUpdate(w.UserID)
	if err != nil {
		return err
	}
	u.TotalProfit = round2(u.TotalProfit + w.Amount)
	if err := tx.SaveUser(u); err != nil {
		return err
	}
	return tx.AppendEntry(&models.LedgerEntry{
		UserID:    w.UserID,
		Type:      domain.EntryWithdrawalRefund,
		Reference: w.Reference,
		Amount:    w.Amount,
	})
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
