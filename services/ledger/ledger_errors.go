package ledger

import "fmt"

var (
	ErrAccountNotFound   = fmt.Errorf("account not found")
	ErrInvalidAmount     = fmt.Errorf("invalid amount")
	ErrInsufficientFunds = fmt.Errorf("insufficient funds")
	ErrAccountBlocked    = fmt.Errorf("account is blocked")
	ErrAccountExists     = fmt.Errorf("account already exists")
	ErrReferralCodeTaken = fmt.Errorf("referral code already taken")
	ErrStoreUnavailable  = fmt.Errorf("account store unavailable")
)

type LedgerError struct {
	ErrorObj  error
	AccountID string
	Other     []error
}

func (l *LedgerError) Error() string {
	return l.ErrorObj.Error()
}

func (l *LedgerError) Unwrap() error {
	return l.ErrorObj
}

func (l *LedgerError) ErrorOut() string {
	return fmt.Sprintf("%v: %v", l.ErrorObj.Error(), l.AccountID)
}

func NewLedgerError(err error, accountID string, e ...error) *LedgerError {
	return &LedgerError{
		ErrorObj:  err,
		AccountID: accountID,
		Other:     e,
	}
}
