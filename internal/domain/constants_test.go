package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidWithdrawalStatus(t *testing.T) {
	for _, s := range []string{WithdrawalPending, WithdrawalProcessing, WithdrawalCompleted, WithdrawalRejected, WithdrawalFailed} {
		assert.True(t, ValidWithdrawalStatus(s), s)
	}
	assert.False(t, ValidWithdrawalStatus("approved"))
	assert.False(t, ValidWithdrawalStatus(""))
}

func TestCanTransitionWithdrawal(t *testing.T) {
	cases := []struct {
		from, to string
		ok       bool
	}{
		{WithdrawalPending, WithdrawalProcessing, true},
		{WithdrawalPending, WithdrawalCompleted, true},
		{WithdrawalPending, WithdrawalRejected, true},
		{WithdrawalPending, WithdrawalFailed, true},
		{WithdrawalProcessing, WithdrawalCompleted, true},
		{WithdrawalProcessing, WithdrawalFailed, true},
		{WithdrawalProcessing, WithdrawalRejected, false},
		{WithdrawalProcessing, WithdrawalPending, false},
		{WithdrawalCompleted, WithdrawalFailed, false},
		{WithdrawalRejected, WithdrawalPending, false},
		{WithdrawalFailed, WithdrawalProcessing, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.ok, CanTransitionWithdrawal(tc.from, tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestRefundsWithdrawal(t *testing.T) {
	assert.True(t, RefundsWithdrawal(WithdrawalRejected))
	assert.True(t, RefundsWithdrawal(WithdrawalFailed))
	assert.False(t, RefundsWithdrawal(WithdrawalCompleted))
	assert.False(t, RefundsWithdrawal(WithdrawalPending))
	assert.False(t, RefundsWithdrawal(WithdrawalProcessing))
}
