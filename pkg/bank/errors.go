package bank

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Sentinel errors returned by the services. Handlers map these onto HTTP
// statuses with errors.Is, so wrap rather than replace them.
var (
	ErrUserNotFound        = errors.New("user not found")
	ErrAccountNotFound     = errors.New("account not found")
	ErrBeneficiaryNotFound = errors.New("beneficiary not found")
	ErrTransactionNotFound = errors.New("transaction not found")

	ErrInvalidAmount        = errors.New("invalid amount: minimum is 1.00 with at most 2 decimal places")
	ErrInsufficientBalance  = errors.New("insufficient balance")
	ErrSameAccountTransfer  = errors.New("cannot transfer to the same account")
	ErrAccountInactive      = errors.New("account is not active")
	ErrDailyLimitExceeded   = errors.New("daily limit exceeded")
	ErrDuplicateBeneficiary = errors.New("beneficiary already exists")
	ErrInvalidAccountType   = errors.New("invalid account type")
)

// Limit kinds carried by LimitError.
const (
	LimitKindWithdrawal = "withdrawal"
	LimitKindTransfer   = "transfer"
)

// LimitError reports a movement rejected by the daily limit tracker along
// with the headroom that was still available before the call.
type LimitError struct {
	Kind      string
	Remaining decimal.Decimal
}

func (e *LimitError) Error() string {
	return fmt.Sprintf("daily %s limit exceeded, remaining limit: %s", e.Kind, e.Remaining.StringFixed(2))
}

// Unwrap lets callers match with errors.Is(err, ErrDailyLimitExceeded).
func (e *LimitError) Unwrap() error { return ErrDailyLimitExceeded }
