package ledger

import (
	"context"
	"fmt"

	"github.com/SureStake/SureStake-Backend/services/monitoring/logging"
)

// LedgerService is the balance transaction engine. Every balance change
// on the platform goes through Credit, Debit or Refund; the repository
// guarantees each one is linearizable per account.
type LedgerService struct {
	repo   AccountRepository
	logger *logging.Logger
}

func NewLedgerService(repo AccountRepository, logger *logging.Logger) *LedgerService {
	return &LedgerService{
		repo:   repo,
		logger: logger,
	}
}

func (l *LedgerService) GetAccount(ctx context.Context, accountID int64) (*Account, error) {
	return l.repo.GetAccount(ctx, accountID)
}

func (l *LedgerService) ListAccounts(ctx context.Context) ([]Account, error) {
	return l.repo.ListAccounts(ctx)
}

// Credit increases the account balance by amount.
func (l *LedgerService) Credit(ctx context.Context, accountID int64, amount int64) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}
	if err := l.repo.CreditBalance(ctx, accountID, amount); err != nil {
		return NewLedgerError(err, fmt.Sprint(accountID))
	}
	l.logger.Info(fmt.Sprintf("credited %v kobo to account %v", amount, accountID))
	return nil
}

// Debit decreases the account balance by amount. The funds check and the
// write are a single atomic operation in the store; blocked accounts
// cannot be debited.
func (l *LedgerService) Debit(ctx context.Context, accountID int64, amount int64) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}
	if err := l.repo.DebitBalance(ctx, accountID, amount); err != nil {
		return NewLedgerError(err, fmt.Sprint(accountID))
	}
	l.logger.Info(fmt.Sprintf("debited %v kobo from account %v", amount, accountID))
	return nil
}

// Refund reverses a prior Debit. It is a Credit with its own audit trail;
// there is no balance cap and no block check, a held amount must always
// be returnable.
func (l *LedgerService) Refund(ctx context.Context, accountID int64, amount int64) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}
	if err := l.repo.CreditBalance(ctx, accountID, amount); err != nil {
		return NewLedgerError(err, fmt.Sprint(accountID))
	}
	l.logger.Info(fmt.Sprintf("refunded %v kobo to account %v", amount, accountID))
	return nil
}
