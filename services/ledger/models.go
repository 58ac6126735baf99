package ledger

import "time"

// Account is the durable record of a user's identity and balance.
// Balance is held in integer minor units (kobo) so arithmetic never
// drifts; the API layer converts to naira for display.
type Account struct {
	ID             int64
	FirstName      string
	LastName       string
	Email          string
	PhoneNumber    string
	HashedPassword string
	Role           string
	Balance        int64
	IsBlocked      bool
	ReferralCode   string
	ReferredBy     string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

type CreateAccountParams struct {
	FirstName      string
	LastName       string
	Email          string
	PhoneNumber    string
	HashedPassword string
	Role           string
	ReferralCode   string
	ReferredBy     string
}
