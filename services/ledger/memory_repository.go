package ledger

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryAccountRepository keeps accounts in a mutex-guarded map. It backs
// the unit tests and local development; the conditional-update contract
// is the same one the SQL repository gets from the database.
type MemoryAccountRepository struct {
	mu       sync.Mutex
	seq      int64
	accounts map[int64]*Account
}

func NewMemoryAccountRepository() *MemoryAccountRepository {
	return &MemoryAccountRepository{
		accounts: make(map[int64]*Account),
	}
}

func (r *MemoryAccountRepository) CreateAccount(ctx context.Context, params CreateAccountParams) (*Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.accounts {
		if existing.Email == params.Email || existing.PhoneNumber == params.PhoneNumber {
			return nil, ErrAccountExists
		}
		if existing.ReferralCode == params.ReferralCode {
			return nil, ErrReferralCodeTaken
		}
	}

	r.seq++
	now := time.Now()
	account := &Account{
		ID:             r.seq,
		FirstName:      params.FirstName,
		LastName:       params.LastName,
		Email:          params.Email,
		PhoneNumber:    params.PhoneNumber,
		HashedPassword: params.HashedPassword,
		Role:           params.Role,
		ReferralCode:   params.ReferralCode,
		ReferredBy:     params.ReferredBy,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	r.accounts[account.ID] = account

	clone := *account
	return &clone, nil
}

func (r *MemoryAccountRepository) GetAccount(ctx context.Context, id int64) (*Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	account, ok := r.accounts[id]
	if !ok {
		return nil, ErrAccountNotFound
	}
	clone := *account
	return &clone, nil
}

func (r *MemoryAccountRepository) GetAccountByEmail(ctx context.Context, email string) (*Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, account := range r.accounts {
		if account.Email == email {
			clone := *account
			return &clone, nil
		}
	}
	return nil, ErrAccountNotFound
}

func (r *MemoryAccountRepository) GetAccountByReferralCode(ctx context.Context, code string) (*Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, account := range r.accounts {
		if account.ReferralCode == code {
			clone := *account
			return &clone, nil
		}
	}
	return nil, ErrAccountNotFound
}

func (r *MemoryAccountRepository) ListAccounts(ctx context.Context) ([]Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	accounts := make([]Account, 0, len(r.accounts))
	for _, account := range r.accounts {
		accounts = append(accounts, *account)
	}
	sort.Slice(accounts, func(i, j int) bool {
		return accounts[i].ID > accounts[j].ID
	})
	return accounts, nil
}

func (r *MemoryAccountRepository) SetBlocked(ctx context.Context, id int64, blocked bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	account, ok := r.accounts[id]
	if !ok {
		return ErrAccountNotFound
	}
	account.IsBlocked = blocked
	account.UpdatedAt = time.Now()
	return nil
}

func (r *MemoryAccountRepository) CreditBalance(ctx context.Context, id int64, amount int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	account, ok := r.accounts[id]
	if !ok {
		return ErrAccountNotFound
	}
	account.Balance += amount
	account.UpdatedAt = time.Now()
	return nil
}

func (r *MemoryAccountRepository) DebitBalance(ctx context.Context, id int64, amount int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	account, ok := r.accounts[id]
	if !ok {
		return ErrAccountNotFound
	}
	if account.IsBlocked {
		return ErrAccountBlocked
	}
	if account.Balance < amount {
		return ErrInsufficientFunds
	}
	account.Balance -= amount
	account.UpdatedAt = time.Now()
	return nil
}
