package ledger

import "context"

// AccountRepository is the account store contract. Balance mutations are
// atomic conditional updates: the balance check and the write happen as
// one indivisible operation in the backing store, never as a read
// followed by an unconditional write.
type AccountRepository interface {
	CreateAccount(ctx context.Context, params CreateAccountParams) (*Account, error)
	GetAccount(ctx context.Context, id int64) (*Account, error)
	GetAccountByEmail(ctx context.Context, email string) (*Account, error)
	GetAccountByReferralCode(ctx context.Context, code string) (*Account, error)
	ListAccounts(ctx context.Context) ([]Account, error)
	SetBlocked(ctx context.Context, id int64, blocked bool) error

	// CreditBalance increases the balance by amount. The caller validates
	// amount > 0. Credits land even on blocked accounts (referral bonuses
	// and refunds must never be refusable).
	CreditBalance(ctx context.Context, id int64, amount int64) error

	// DebitBalance decreases the balance by amount only if the account is
	// active and holds at least that much, in one conditional update.
	// Returns ErrInsufficientFunds, ErrAccountBlocked or ErrAccountNotFound.
	DebitBalance(ctx context.Context, id int64, amount int64) error
}
