package domain

const (
	PrincipalUser  = "USER"
	PrincipalAdmin = "ADMIN"
)

const (
	DepositPending  = "pending"
	DepositVerified = "verified"
	DepositRejected = "rejected"
)

const (
	WithdrawalPending    = "pending"
	WithdrawalProcessing = "processing"
	WithdrawalCompleted  = "completed"
	WithdrawalRejected   = "rejected"
	WithdrawalFailed     = "failed"
)

const (
	InvestmentActive    = "active"
	InvestmentCompleted = "completed"
	InvestmentCancelled = "cancelled"
)

// Ledger entry types. One entry per balance-affecting event; the
// (type, reference) pair is unique and guards exactly-once application.
const (
	EntryDepositCredit    = "deposit-credit"
	EntryWithdrawalHold   = "withdrawal-hold"
	EntryWithdrawalRefund = "withdrawal-refund"
	EntryInvestmentDebit  = "investment-debit"
	EntryMaturityCredit   = "investment-maturity-credit"
	EntryReferralCredit   = "referral-credit"
)

// withdrawalTransitions is the authoritative withdrawal state machine.
// completed, rejected and failed are terminal.
var withdrawalTransitions = map[string][]string{
	WithdrawalPending:    {WithdrawalProcessing, WithdrawalCompleted, WithdrawalRejected, WithdrawalFailed},
	WithdrawalProcessing: {WithdrawalCompleted, WithdrawalFailed},
}

// ValidWithdrawalStatus reports whether s is a known withdrawal status.
func ValidWithdrawalStatus(s string) bool {
	switch s {
	case WithdrawalPending, WithdrawalProcessing, WithdrawalCompleted, WithdrawalRejected, WithdrawalFailed:
		return true
	}
	return false
}

// CanTransitionWithdrawal reports whether a withdrawal may move from -> to.
func CanTransitionWithdrawal(from, to string) bool {
	for _, s := range withdrawalTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// RefundsWithdrawal reports whether entering this status returns the hold
// to the user's profit balance.
func RefundsWithdrawal(status string) bool {
	return status == WithdrawalRejected || status == WithdrawalFailed
}
