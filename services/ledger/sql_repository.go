package ledger

import (
	"context"
	"database/sql"
	"fmt"

	db "github.com/SureStake/SureStake-Backend/db"
	"github.com/lib/pq"
)

type SQLAccountRepository struct {
	store *db.Store
}

func NewSQLAccountRepository(store *db.Store) *SQLAccountRepository {
	return &SQLAccountRepository{store: store}
}

const accountColumns = `id, first_name, last_name, email, phone_number, hashed_password, role, balance, is_blocked, referral_code, referred_by, created_at, updated_at`

func scanAccount(row interface{ Scan(...interface{}) error }) (*Account, error) {
	var a Account
	var referredBy sql.NullString
	err := row.Scan(
		&a.ID,
		&a.FirstName,
		&a.LastName,
		&a.Email,
		&a.PhoneNumber,
		&a.HashedPassword,
		&a.Role,
		&a.Balance,
		&a.IsBlocked,
		&a.ReferralCode,
		&referredBy,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	a.ReferredBy = referredBy.String
	return &a, nil
}

func (r *SQLAccountRepository) CreateAccount(ctx context.Context, params CreateAccountParams) (*Account, error) {
	referredBy := sql.NullString{String: params.ReferredBy, Valid: params.ReferredBy != ""}
	row := r.store.DB.QueryRowContext(ctx, `
		INSERT INTO accounts (first_name, last_name, email, phone_number, hashed_password, role, referral_code, referred_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING `+accountColumns,
		params.FirstName,
		params.LastName,
		params.Email,
		params.PhoneNumber,
		params.HashedPassword,
		params.Role,
		params.ReferralCode,
		referredBy,
	)
	account, err := scanAccount(row)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == db.DuplicateEntry {
			if pqErr.Constraint == "accounts_referral_code_key" {
				return nil, ErrReferralCodeTaken
			}
			return nil, ErrAccountExists
		}
		return nil, storeErr(err)
	}
	return account, nil
}

func (r *SQLAccountRepository) GetAccount(ctx context.Context, id int64) (*Account, error) {
	row := r.store.DB.QueryRowContext(ctx, `SELECT `+accountColumns+` FROM accounts WHERE id = $1`, id)
	return r.oneAccount(row)
}

func (r *SQLAccountRepository) GetAccountByEmail(ctx context.Context, email string) (*Account, error) {
	row := r.store.DB.QueryRowContext(ctx, `SELECT `+accountColumns+` FROM accounts WHERE email = $1`, email)
	return r.oneAccount(row)
}

func (r *SQLAccountRepository) GetAccountByReferralCode(ctx context.Context, code string) (*Account, error) {
	row := r.store.DB.QueryRowContext(ctx, `SELECT `+accountColumns+` FROM accounts WHERE referral_code = $1`, code)
	return r.oneAccount(row)
}

func (r *SQLAccountRepository) oneAccount(row *sql.Row) (*Account, error) {
	account, err := scanAccount(row)
	if err == sql.ErrNoRows {
		return nil, ErrAccountNotFound
	} else if err != nil {
		return nil, storeErr(err)
	}
	return account, nil
}

func (r *SQLAccountRepository) ListAccounts(ctx context.Context) ([]Account, error) {
	rows, err := r.store.DB.QueryContext(ctx, `SELECT `+accountColumns+` FROM accounts ORDER BY created_at DESC`)
	if err != nil {
		return nil, storeErr(err)
	}
	defer rows.Close()

	var accounts []Account
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, storeErr(err)
		}
		accounts = append(accounts, *account)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr(err)
	}
	return accounts, nil
}

func (r *SQLAccountRepository) SetBlocked(ctx context.Context, id int64, blocked bool) error {
	res, err := r.store.DB.ExecContext(ctx, `UPDATE accounts SET is_blocked = $2, updated_at = now() WHERE id = $1`, id, blocked)
	if err != nil {
		return storeErr(err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return storeErr(err)
	}
	if affected == 0 {
		return ErrAccountNotFound
	}
	return nil
}

func (r *SQLAccountRepository) CreditBalance(ctx context.Context, id int64, amount int64) error {
	res, err := r.store.DB.ExecContext(ctx, `UPDATE accounts SET balance = balance + $2, updated_at = now() WHERE id = $1`, id, amount)
	if err != nil {
		return storeErr(err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return storeErr(err)
	}
	if affected == 0 {
		return ErrAccountNotFound
	}
	return nil
}

func (r *SQLAccountRepository) DebitBalance(ctx context.Context, id int64, amount int64) error {
	// Single conditional update: the funds check, the block check and the
	// write commit or fail together. Two concurrent debits can never both
	// pass the balance predicate for funds that only cover one of them.
	res, err := r.store.DB.ExecContext(ctx, `
		UPDATE accounts
		SET balance = balance - $2, updated_at = now()
		WHERE id = $1 AND is_blocked = FALSE AND balance >= $2`,
		id, amount)
	if err != nil {
		return storeErr(err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return storeErr(err)
	}
	if affected == 1 {
		return nil
	}

	// Zero rows: re-read to report the reason. The debit itself has not
	// happened, so this read is diagnostic only.
	account, err := r.GetAccount(ctx, id)
	if err != nil {
		return err
	}
	if account.IsBlocked {
		return ErrAccountBlocked
	}
	return ErrInsufficientFunds
}

// CreditBalanceTx applies a credit inside a caller-owned transaction. The
// withdrawal repository uses it to make refund-on-reject atomic with the
// status transition.
func CreditBalanceTx(ctx context.Context, tx *sql.Tx, id int64, amount int64) error {
	res, err := tx.ExecContext(ctx, `UPDATE accounts SET balance = balance + $2, updated_at = now() WHERE id = $1`, id, amount)
	if err != nil {
		return storeErr(err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return storeErr(err)
	}
	if affected == 0 {
		return ErrAccountNotFound
	}
	return nil
}

func storeErr(err error) error {
	return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
}
