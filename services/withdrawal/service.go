package withdrawal

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SureStake/SureStake-Backend/services/ledger"
	"github.com/SureStake/SureStake-Backend/services/monitoring/logging"
	"github.com/google/uuid"
)

// WithdrawalService drives the request lifecycle: a request holds funds
// by debiting the account up front, an admin decision either leaves them
// debited (approve) or returns them (reject).
type WithdrawalService struct {
	repo   WithdrawalRepository
	ledger *ledger.LedgerService
	logger *logging.Logger
}

func NewWithdrawalService(repo WithdrawalRepository, ledgerService *ledger.LedgerService, logger *logging.Logger) *WithdrawalService {
	return &WithdrawalService{
		repo:   repo,
		ledger: ledgerService,
		logger: logger,
	}
}

// RequestWithdrawal debits the amount from the account, then records the
// pending request. When the record cannot be persisted the debit is
// compensated with a refund, so the caller observes all-or-nothing.
func (s *WithdrawalService) RequestWithdrawal(ctx context.Context, accountID int64, amount int64) (*WithdrawalRequest, error) {
	if amount <= 0 {
		return nil, ledger.ErrInvalidAmount
	}

	if err := s.ledger.Debit(ctx, accountID, amount); err != nil {
		if errors.Is(err, ledger.ErrAccountNotFound) || errors.Is(err, ledger.ErrAccountBlocked) {
			return nil, ErrAccessDenied
		}
		return nil, err
	}

	req := &WithdrawalRequest{
		ID:        uuid.New(),
		AccountID: accountID,
		Amount:    amount,
		Status:    StatusPending,
		CreatedAt: time.Now(),
	}

	if err := s.repo.CreateRequest(ctx, req); err != nil {
		if rerr := s.ledger.Refund(ctx, accountID, amount); rerr != nil {
			// A failed compensation leaves held funds unaccounted for;
			// log loudly, the error still surfaces to the caller.
			s.logger.Error(fmt.Sprintf("compensating refund failed for account %v amount %v: %v", accountID, amount, rerr))
		}
		return nil, fmt.Errorf("%w: %v", ErrRequestPersistFailed, err)
	}

	s.logger.Info(fmt.Sprintf("withdrawal request %v created for account %v", req.ID, accountID))
	return req, nil
}

// Approve finalizes a pending request. The funds were debited at request
// time, so no balance change happens here. A terminal request comes back
// as ErrInvalidRequestState, which is also the "already processed"
// signal for retries.
func (s *WithdrawalService) Approve(ctx context.Context, requestID uuid.UUID) (*WithdrawalRequest, error) {
	req, err := s.repo.Approve(ctx, requestID)
	if err != nil {
		return nil, err
	}
	s.logger.Info(fmt.Sprintf("withdrawal request %v approved", requestID))
	return req, nil
}

// Reject returns the held amount to the account and closes the request.
// Refund and transition are one atomic unit in the repository; whichever
// of Approve/Reject wins the race on a pending request, the other sees
// ErrInvalidRequestState and must not retry.
func (s *WithdrawalService) Reject(ctx context.Context, requestID uuid.UUID) (*WithdrawalRequest, error) {
	req, err := s.repo.Reject(ctx, requestID)
	if err != nil {
		return nil, err
	}
	s.logger.Info(fmt.Sprintf("withdrawal request %v rejected, %v kobo refunded to account %v", requestID, req.Amount, req.AccountID))
	return req, nil
}

func (s *WithdrawalService) GetRequest(ctx context.Context, requestID uuid.UUID) (*WithdrawalRequest, error) {
	return s.repo.GetRequest(ctx, requestID)
}

// ListWithdrawals returns an account's requests, or every request when
// accountID is nil. Unscoped listing is an admin capability; the serving
// layer enforces that before calling in.
func (s *WithdrawalService) ListWithdrawals(ctx context.Context, accountID *int64) ([]WithdrawalRequest, error) {
	if accountID != nil {
		return s.repo.ListByAccount(ctx, *accountID)
	}
	return s.repo.ListAll(ctx)
}
