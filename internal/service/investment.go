package service

import (
	"fmt"
	"time"

	"coinvest/internal/domain"
	"coinvest/internal/models"
	"coinvest/internal/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// InvestmentService starts investments and settles matured ones.
type InvestmentService struct {
	store    repository.Store
	notifier *Notifier
	now      func() time.Time
}

func NewInvestmentService(store repository.Store, notifier *Notifier) *InvestmentService {
	return &InvestmentService{
		store:    store,
		notifier: notifier,
		now:      time.Now,
	}
}

// ExpectedProfit is the profit an investment earns at maturity:
// amount * rate% prorated over the duration in days.
func ExpectedProfit(amount, profitRate float64, durationHours int) float64 {
	return amount * profitRate / 100 * float64(durationHours) / 24
}

// Start validates the plan and amount, debits principal and creates the
// investment — all in one transaction. A validation failure leaves no
// partial state.
func (s *InvestmentService) Start(userID, planID uint, amount float64) (*models.Investment, *models.User, error) {
	if amount <= 0 {
		return nil, nil, ErrAmountOutOfRange
	}
	var inv *models.Investment
	var user *models.User
	err := s.store.Atomically(func(tx repository.Store) error {
		plan, err := tx.PlanByID(planID)
		if err != nil {
			return err
		}
		if !plan.IsActive {
			return ErrPlanInactive
		}
		if !plan.InRange(amount) {
			return ErrAmountOutOfRange
		}
		u, err := tx.UserForUpdate(userID)
		if err != nil {
			return err
		}
		if u.TotalBalance < amount {
			return ErrInsufficientBalance
		}
		start := s.now()
		end := start.Add(time.Duration(plan.DurationHours) * time.Hour)
		inv = &models.Investment{
			UserID:         userID,
			PlanID:         planID,
			Amount:         amount,
			ExpectedProfit: ExpectedProfit(amount, plan.ProfitRate, plan.DurationHours),
			StartDate:      start,
			EndDate:        end,
			Status:         domain.InvestmentActive,
			Reference:      fmt.Sprintf("inv-%s", uuid.New().String()),
		}
		if err := tx.CreateInvestment(inv); err != nil {
			return err
		}
		u.TotalBalance = round2(u.TotalBalance - amount)
		u.CurrentPlanID = &plan.ID
		u.PlanStartDate = &start
		if err := tx.SaveUser(u); err != nil {
			return err
		}
		user = u
		return tx.AppendEntry(&models.LedgerEntry{
			UserID:    userID,
			Type:      domain.EntryInvestmentDebit,
			Reference: inv.Reference,
			Amount:    -amount,
		})
	})
	if err != nil {
		return nil, nil, err
	}
	return inv, user, nil
}

// SettleMatured completes every active investment whose end date has
// passed: principal returns to the balance and the expected profit is
// realized. Each investment settles in its own transaction, keyed by its
// reference so overlapping sweeps cannot credit twice. Returns how many
// were settled.
func (s *InvestmentService) SettleMatured(batchSize int) (int, error) {
	now := s.now()
	ids, err := s.store.DueInvestmentIDs(now, batchSize)
	if err != nil {
		return 0, err
	}
	settled := 0
	for _, id := range ids {
		if err := s.settleOne(id, now); err != nil {
			logrus.WithError(err).WithField("investment_id", id).Error("settle matured investment")
			continue
		}
		settled++
	}
	return settled, nil
}

func (s *InvestmentService) settleOne(id uint, now time.Time) error {
	var userID uint
	var profit float64
	err := s.store.Atomically(func(tx repository.Store) error {
		inv, err := tx.InvestmentForUpdate(id)
		if err != nil {
			return err
		}
		if inv.Status != domain.InvestmentActive || inv.EndDate.After(now) {
			return nil
		}
		credited, err := tx.HasEntry(domain.EntryMaturityCredit, inv.Reference)
		if err != nil {
			return err
		}
		if !credited {
			u, err := tx.UserForUpdate(inv.UserID)
			if err != nil {
				return err
			}
			u.TotalBalance = round2(u.TotalBalance + inv.Amount)
			u.TotalProfit = round2(u.TotalProfit + inv.ExpectedProfit)
			if u.CurrentPlanID != nil && *u.CurrentPlanID == inv.PlanID {
				u.CurrentPlanID = nil
				u.PlanStartDate = nil
			}
			if err := tx.SaveUser(u); err != nil {
				return err
			}
			if err := tx.AppendEntry(&models.LedgerEntry{
				UserID:    inv.UserID,
				Type:      domain.EntryMaturityCredit,
				Reference: inv.Reference,
				Amount:    round2(inv.Amount + inv.ExpectedProfit),
			}); err != nil {
				return err
			}
			userID = inv.UserID
			profit = inv.ExpectedProfit
		}
		inv.Status = domain.InvestmentCompleted
		return tx.SaveInvestment(inv)
	})
	if err != nil {
		return err
	}
	if userID != 0 {
		s.notifier.InvestmentMatured(userID, profit)
	}
	return nil
}
