package withdrawal

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/SureStake/SureStake-Backend/services/ledger"
	"github.com/google/uuid"
)

// MemoryWithdrawalRepository mirrors the SQL repository for tests and
// local development. The repository mutex spans the status transition
// and, for Reject, the refund, giving the same one-winner guarantee the
// database provides through conditional updates.
type MemoryWithdrawalRepository struct {
	mu       sync.Mutex
	requests map[uuid.UUID]*WithdrawalRequest
	accounts ledger.AccountRepository
}

func NewMemoryWithdrawalRepository(accounts ledger.AccountRepository) *MemoryWithdrawalRepository {
	return &MemoryWithdrawalRepository{
		requests: make(map[uuid.UUID]*WithdrawalRequest),
		accounts: accounts,
	}
}

func (r *MemoryWithdrawalRepository) CreateRequest(ctx context.Context, req *WithdrawalRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	if req.CreatedAt.IsZero() {
		req.CreatedAt = now
	}
	req.UpdatedAt = now
	clone := *req
	r.requests[req.ID] = &clone
	return nil
}

func (r *MemoryWithdrawalRepository) GetRequest(ctx context.Context, id uuid.UUID) (*WithdrawalRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	req, ok := r.requests[id]
	if !ok {
		return nil, ErrRequestNotFound
	}
	clone := *req
	return &clone, nil
}

func (r *MemoryWithdrawalRepository) ListByAccount(ctx context.Context, accountID int64) ([]WithdrawalRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var requests []WithdrawalRequest
	for _, req := range r.requests {
		if req.AccountID == accountID {
			requests = append(requests, *req)
		}
	}
	sortNewestFirst(requests)
	return requests, nil
}

func (r *MemoryWithdrawalRepository) ListAll(ctx context.Context) ([]WithdrawalRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	requests := make([]WithdrawalRequest, 0, len(r.requests))
	for _, req := range r.requests {
		requests = append(requests, *req)
	}
	sortNewestFirst(requests)
	return requests, nil
}

func (r *MemoryWithdrawalRepository) Approve(ctx context.Context, id uuid.UUID) (*WithdrawalRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	req, ok := r.requests[id]
	if !ok {
		return nil, ErrRequestNotFound
	}
	if req.Status != StatusPending {
		return nil, ErrInvalidRequestState
	}
	req.Status = StatusApproved
	req.UpdatedAt = time.Now()
	clone := *req
	return &clone, nil
}

func (r *MemoryWithdrawalRepository) Reject(ctx context.Context, id uuid.UUID) (*WithdrawalRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	req, ok := r.requests[id]
	if !ok {
		return nil, ErrRequestNotFound
	}
	if req.Status != StatusPending {
		return nil, ErrInvalidRequestState
	}
	// The pending check above is the refund guard: a request refunds at
	// most once because only one caller ever sees it pending.
	if err := r.accounts.CreditBalance(ctx, req.AccountID, req.Amount); err != nil {
		return nil, err
	}
	req.Status = StatusRejected
	req.UpdatedAt = time.Now()
	clone := *req
	return &clone, nil
}

func sortNewestFirst(requests []WithdrawalRequest) {
	sort.Slice(requests, func(i, j int) bool {
		return requests[i].CreatedAt.After(requests[j].CreatedAt)
	})
}
