package withdrawal

import (
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// WithdrawalRequest moves through exactly one transition in its life:
// pending to approved, or pending to rejected. Amount is fixed at
// creation and already debited from the account while the request holds.
type WithdrawalRequest struct {
	ID        uuid.UUID
	AccountID int64
	Amount    int64
	Status    Status
	CreatedAt time.Time
	UpdatedAt time.Time
}
