package service

import "errors"

var (
	ErrInsufficientProfit   = errors.New("insufficient profit balance")
	ErrInsufficientBalance  = errors.New("insufficient balance")
	ErrPlanInactive         = errors.New("investment plan is not active")
	ErrAmountOutOfRange     = errors.New("amount outside plan limits")
	ErrInvalidStatus        = errors.New("invalid status")
	ErrInvalidTransition    = errors.New("invalid status transition")
	ErrNotOwner             = errors.New("record does not belong to user")
	ErrWithdrawalNotPending = errors.New("withdrawal is not pending")
)

// IsBusinessError reports whether err should map to a 400 at the API
// boundary rather than a 500.
func IsBusinessError(err error) bool {
	switch {
	case errors.Is(err, ErrInsufficientProfit),
		errors.Is(err, ErrInsufficientBalance),
		errors.Is(err, ErrPlanInactive),
		errors.Is(err, ErrAmountOutOfRange),
		errors.Is(err, ErrInvalidStatus),
		errors.Is(err, ErrInvalidTransition),
		errors.Is(err, ErrWithdrawalNotPending):
		return true
	}
	return false
}
