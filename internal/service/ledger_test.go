package service

import (
	"testing"

	"coinvest/internal/domain"
	"coinvest/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerifyDepositCreditsBalanceOnce(t *testing.T) {
	store := newFakeStore()
	userID := store.addUser(models.User{TotalBalance: 300})
	depID := store.addDeposit(models.Deposit{
		UserID:    userID,
		Amount:    200,
		Currency:  "USDT",
		Status:    domain.DepositPending,
		Reference: "dep-1",
	})
	svc := NewLedgerService(store, nil, 0)

	d, err := svc.VerifyDeposit(depID, domain.DepositVerified, "looks good")
	require.NoError(t, err)
	assert.Equal(t, domain.DepositVerified, d.Status)
	require.NotNil(t, d.VerifiedAt)

	u, _ := store.UserByID(userID)
	assert.InDelta(t, 500, u.TotalBalance, 1e-6)

	// Re-verifying is a no-op: no second credit.
	_, err = svc.VerifyDeposit(depID, domain.DepositVerified, "")
	require.NoError(t, err)
	u, _ = store.UserByID(userID)
	assert.InDelta(t, 500, u.TotalBalance, 1e-6)
	assert.Equal(t, 1, store.countEntries(domain.EntryDepositCredit))
}

func TestVerifyDepositRejectHasNoBalanceEffect(t *testing.T) {
	store := newFakeStore()
	userID := store.addUser(models.User{TotalBalance: 300})
	depID := store.addDeposit(models.Deposit{
		UserID:    userID,
		Amount:    200,
		Status:    domain.DepositPending,
		Reference: "dep-2",
	})
	svc := NewLedgerService(store, nil, 0)

	d, err := svc.VerifyDeposit(depID, domain.DepositRejected, "no tx found")
	require.NoError(t, err)
	assert.Equal(t, domain.DepositRejected, d.Status)
	assert.Equal(t, "no tx found", d.AdminNote)

	u, _ := store.UserByID(userID)
	assert.InDelta(t, 300, u.TotalBalance, 1e-6)

	// A rejected deposit can never be verified afterwards.
	_, err = svc.VerifyDeposit(depID, domain.DepositVerified, "")
	require.NoError(t, err)
	u, _ = store.UserByID(userID)
	assert.InDelta(t, 300, u.TotalBalance, 1e-6)
	assert.Equal(t, 0, store.countEntries(domain.EntryDepositCredit))
}

func TestVerifyDepositInvalidStatus(t *testing.T) {
	store := newFakeStore()
	svc := NewLedgerService(store, nil, 0)
	_, err := svc.VerifyDeposit(1, "approved", "")
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestVerifyDepositPaysReferralCommissionOnce(t *testing.T) {
	store := newFakeStore()
	referrerID := store.addUser(models.User{})
	refereeID := store.addUser(models.User{})
	store.addReferral(models.Referral{ReferrerID: referrerID, RefereeID: refereeID})
	depID := store.addDeposit(models.Deposit{
		UserID:    refereeID,
		Amount:    200,
		Status:    domain.DepositPending,
		Reference: "dep-3",
	})
	svc := NewLedgerService(store, nil, 7)

	_, err := svc.VerifyDeposit(depID, domain.DepositVerified, "")
	require.NoError(t, err)

	referrer, _ := store.UserByID(referrerID)
	assert.InDelta(t, 14, referrer.TotalProfit, 1e-6)
	assert.InDelta(t, 14, referrer.ReferralBalance, 1e-6)
	ref, _ := store.ReferralByReferee(refereeID)
	assert.InDelta(t, 14, ref.Earnings, 1e-6)

	_, err = svc.VerifyDeposit(depID, domain.DepositVerified, "")
	require.NoError(t, err)
	referrer, _ = store.UserByID(referrerID)
	assert.InDelta(t, 14, referrer.TotalProfit, 1e-6)
	assert.Equal(t, 1, store.countEntries(domain.EntryReferralCredit))
}

func TestRequestWithdrawalInsufficientProfit(t *testing.T) {
	store := newFakeStore()
	userID := store.addUser(models.User{TotalProfit: 50})
	svc := NewLedgerService(store, nil, 0)

	w, err := svc.RequestWithdrawal(userID, 60, "0xabc", "BTC")
	assert.ErrorIs(t, err, ErrInsufficientProfit)
	assert.Nil(t, w)
	assert.Empty(t, store.withdrawals)
	u, _ := store.UserByID(userID)
	assert.InDelta(t, 50, u.TotalProfit, 1e-6)
}

func TestWithdrawalHoldAndRefundNetZero(t *testing.T) {
	store := newFakeStore()
	userID := store.addUser(models.User{TotalProfit: 100})
	svc := NewLedgerService(store, nil, 0)

	w, err := svc.RequestWithdrawal(userID, 60, "0xabc", "BTC")
	require.NoError(t, err)
	assert.Equal(t, domain.WithdrawalPending, w.Status)
	u, _ := store.UserByID(userID)
	assert.InDelta(t, 40, u.TotalProfit, 1e-6)

	_, err = svc.ResolveWithdrawal(w.ID, domain.WithdrawalRejected)
	require.NoError(t, err)
	u, _ = store.UserByID(userID)
	assert.InDelta(t, 100, u.TotalProfit, 1e-6)

	// Rejecting twice must not double-refund: the transition is invalid
	// and the profit balance stays put.
	_, err = svc.ResolveWithdrawal(w.ID, domain.WithdrawalRejected)
	assert.ErrorIs(t, err, ErrInvalidTransition)
	u, _ = store.UserByID(userID)
	assert.InDelta(t, 100, u.TotalProfit, 1e-6)
	assert.Equal(t, 1, store.countEntries(domain.EntryWithdrawalRefund))
}

func TestWithdrawalCompleteKeepsHold(t *testing.T) {
	store := newFakeStore()
	userID := store.addUser(models.User{TotalProfit: 100})
	svc := NewLedgerService(store, nil, 0)

	w, err := svc.RequestWithdrawal(userID, 60, "0xabc", "ETH")
	require.NoError(t, err)

	got, err := svc.ResolveWithdrawal(w.ID, domain.WithdrawalProcessing)
	require.NoError(t, err)
	assert.Equal(t, domain.WithdrawalProcessing, got.Status)

	got, err = svc.ResolveWithdrawal(w.ID, domain.WithdrawalCompleted)
	require.NoError(t, err)
	assert.Equal(t, domain.WithdrawalCompleted, got.Status)
	require.NotNil(t, got.CompletedAt)

	u, _ := store.UserByID(userID)
	assert.InDelta(t, 40, u.TotalProfit, 1e-6)

	// Completed is terminal.
	_, err = svc.ResolveWithdrawal(w.ID, domain.WithdrawalFailed)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestWithdrawalFailureRefunds(t *testing.T) {
	store := newFakeStore()
	userID := store.addUser(models.User{TotalProfit: 80})
	svc := NewLedgerService(store, nil, 0)

	w, err := svc.RequestWithdrawal(userID, 80, "0xabc", "BTC")
	require.NoError(t, err)
	_, err = svc.ResolveWithdrawal(w.ID, domain.WithdrawalProcessing)
	require.NoError(t, err)
	_, err = svc.ResolveWithdrawal(w.ID, domain.WithdrawalFailed)
	require.NoError(t, err)

	u, _ := store.UserByID(userID)
	assert.InDelta(t, 80, u.TotalProfit, 1e-6)
}

func TestCancelWithdrawal(t *testing.T) {
	store := newFakeStore()
	userID := store.addUser(models.User{TotalProfit: 100})
	otherID := store.addUser(models.User{TotalProfit: 100})
	svc := NewLedgerService(store, nil, 0)

	w, err := svc.RequestWithdrawal(userID, 30, "0xabc", "BTC")
	require.NoError(t, err)

	err = svc.CancelWithdrawal(otherID, w.ID)
	assert.ErrorIs(t, err, ErrNotOwner)

	err = svc.CancelWithdrawal(userID, w.ID)
	require.NoError(t, err)
	u, _ := store.UserByID(userID)
	assert.InDelta(t, 100, u.TotalProfit, 1e-6)
	assert.Empty(t, store.withdrawals)
}

func TestCancelWithdrawalNotPending(t *testing.T) {
	store := newFakeStore()
	userID := store.addUser(models.User{TotalProfit: 100})
	svc := NewLedgerService(store, nil, 0)

	w, err := svc.RequestWithdrawal(userID, 30, "0xabc", "BTC")
	require.NoError(t, err)
	_, err = svc.ResolveWithdrawal(w.ID, domain.WithdrawalProcessing)
	require.NoError(t, err)

	err = svc.CancelWithdrawal(userID, w.ID)
	assert.ErrorIs(t, err, ErrWithdrawalNotPending)
}
