package withdrawal

import (
	"context"

	"github.com/google/uuid"
)

// WithdrawalRepository is the withdrawal ledger contract. Approve and
// Reject are conditional transitions guarded on the pending status; when
// two callers race on the same request, the store lets exactly one
// through.
type WithdrawalRepository interface {
	CreateRequest(ctx context.Context, req *WithdrawalRequest) error
	GetRequest(ctx context.Context, id uuid.UUID) (*WithdrawalRequest, error)
	ListByAccount(ctx context.Context, accountID int64) ([]WithdrawalRequest, error)
	ListAll(ctx context.Context) ([]WithdrawalRequest, error)

	// Approve transitions pending -> approved. Returns
	// ErrInvalidRequestState when the request is already terminal.
	Approve(ctx context.Context, id uuid.UUID) (*WithdrawalRequest, error)

	// Reject transitions pending -> rejected and credits the held amount
	// back to the account as one atomic unit.
	Reject(ctx context.Context, id uuid.UUID) (*WithdrawalRequest, error)
}
