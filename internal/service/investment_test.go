package service

import (
	"testing"
	"time"

	"coinvest/internal/domain"
	"coinvest/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpectedProfit(t *testing.T) {
	// 500 at 10% over 24h earns 50.
	assert.InDelta(t, 50, ExpectedProfit(500, 10, 24), 1e-6)
	// Half-day plan prorates.
	assert.InDelta(t, 25, ExpectedProfit(500, 10, 12), 1e-6)
	// Multi-day plan compounds linearly.
	assert.InDelta(t, 150, ExpectedProfit(500, 10, 72), 1e-6)
	assert.InDelta(t, 0, ExpectedProfit(0, 10, 24), 1e-6)
}

func TestStartInvestment(t *testing.T) {
	store := newFakeStore()
	userID := store.addUser(models.User{TotalBalance: 1000})
	planID := store.addPlan(models.InvestmentPlan{
		Name:          "Starter",
		MinAmount:     100,
		ProfitRate:    10,
		DurationHours: 24,
		IsActive:      true,
	})
	svc := NewInvestmentService(store, nil)
	start := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return start }

	inv, u, err := svc.Start(userID, planID, 500)
	require.NoError(t, err)
	assert.InDelta(t, 500, u.TotalBalance, 1e-6)
	assert.InDelta(t, 50, inv.ExpectedProfit, 1e-6)
	assert.Equal(t, domain.InvestmentActive, inv.Status)
	assert.True(t, inv.EndDate.Equal(start.Add(24*time.Hour)))
	require.NotNil(t, u.CurrentPlanID)
	assert.Equal(t, planID, *u.CurrentPlanID)
	assert.Equal(t, 1, store.countEntries(domain.EntryInvestmentDebit))
}

func TestStartInvestmentValidation(t *testing.T) {
	store := newFakeStore()
	userID := store.addUser(models.User{TotalBalance: 1000})
	max := 800.0
	activeID := store.addPlan(models.InvestmentPlan{
		MinAmount: 100, MaxAmount: &max, ProfitRate: 10, DurationHours: 24, IsActive: true,
	})
	inactiveID := store.addPlan(models.InvestmentPlan{
		MinAmount: 100, ProfitRate: 10, DurationHours: 24, IsActive: false,
	})
	svc := NewInvestmentService(store, nil)

	cases := []struct {
		name   string
		planID uint
		amount float64
		want   error
	}{
		{"inactive plan", inactiveID, 500, ErrPlanInactive},
		{"below minimum", activeID, 50, ErrAmountOutOfRange},
		{"above maximum", activeID, 900, ErrAmountOutOfRange},
		{"non-positive", activeID, 0, ErrAmountOutOfRange},
		{"insufficient balance", activeID, 800, ErrInsufficientBalance},
	}
	store.users[userID] = models.User{ID: userID, TotalBalance: 700}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := svc.Start(userID, tc.planID, tc.amount)
			assert.ErrorIs(t, err, tc.want)
		})
	}

	// No partial state: balance untouched, nothing created.
	u, _ := store.UserByID(userID)
	assert.InDelta(t, 700, u.TotalBalance, 1e-6)
	assert.Empty(t, store.investments)
	assert.Empty(t, store.entries)
}

func TestSettleMatured(t *testing.T) {
	store := newFakeStore()
	planID := store.addPlan(models.InvestmentPlan{ProfitRate: 10, DurationHours: 24, IsActive: true})
	userID := store.addUser(models.User{TotalBalance: 500, CurrentPlanID: &planID})
	now := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)
	store.addInvestment(models.Investment{
		UserID:         userID,
		PlanID:         planID,
		Amount:         500,
		ExpectedProfit: 50,
		EndDate:        now.Add(-time.Hour),
		Status:         domain.InvestmentActive,
		Reference:      "inv-due",
	})
	store.addInvestment(models.Investment{
		UserID:         userID,
		PlanID:         planID,
		Amount:         300,
		ExpectedProfit: 30,
		EndDate:        now.Add(time.Hour),
		Status:         domain.InvestmentActive,
		Reference:      "inv-not-due",
	})
	svc := NewInvestmentService(store, nil)
	svc.now = func() time.Time { return now }

	n, err := svc.SettleMatured(100)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	u, _ := store.UserByID(userID)
	assert.InDelta(t, 1000, u.TotalBalance, 1e-6)
	assert.InDelta(t, 50, u.TotalProfit, 1e-6)
	assert.Nil(t, u.CurrentPlanID)
	assert.Equal(t, 1, store.countEntries(domain.EntryMaturityCredit))

	// Re-running the sweep finds nothing to settle and credits nothing.
	n, err = svc.SettleMatured(100)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
	u, _ = store.UserByID(userID)
	assert.InDelta(t, 1000, u.TotalBalance, 1e-6)
	assert.Equal(t, 1, store.countEntries(domain.EntryMaturityCredit))
}

func TestSettleOneIdempotentOnReplay(t *testing.T) {
	store := newFakeStore()
	userID := store.addUser(models.User{TotalBalance: 0})
	now := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)
	invID := store.addInvestment(models.Investment{
		UserID:         userID,
		PlanID:         1,
		Amount:         200,
		ExpectedProfit: 20,
		EndDate:        now.Add(-time.Minute),
		Status:         domain.InvestmentActive,
		Reference:      "inv-replay",
	})
	svc := NewInvestmentService(store, nil)
	svc.now = func() time.Time { return now }

	require.NoError(t, svc.settleOne(invID, now))

	// Force the row back to active to simulate a replayed sweep racing the
	// status update. The maturity entry still blocks a second credit.
	inv := store.investments[invID]
	inv.Status = domain.InvestmentActive
	store.investments[invID] = inv
	require.NoError(t, svc.settleOne(invID, now))

	u, _ := store.UserByID(userID)
	assert.InDelta(t, 200, u.TotalBalance, 1e-6)
	assert.InDelta(t, 20, u.TotalProfit, 1e-6)
	assert.Equal(t, 1, store.countEntries(domain.EntryMaturityCredit))
}
