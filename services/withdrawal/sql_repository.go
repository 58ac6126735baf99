package withdrawal

import (
	"context"
	"database/sql"
	"fmt"

	db "github.com/SureStake/SureStake-Backend/db"
	"github.com/SureStake/SureStake-Backend/services/ledger"
	"github.com/google/uuid"
)

type SQLWithdrawalRepository struct {
	store *db.Store
}

func NewSQLWithdrawalRepository(store *db.Store) *SQLWithdrawalRepository {
	return &SQLWithdrawalRepository{store: store}
}

const requestColumns = `id, account_id, amount, status, created_at, updated_at`

func scanRequest(row interface{ Scan(...interface{}) error }) (*WithdrawalRequest, error) {
	var w WithdrawalRequest
	err := row.Scan(
		&w.ID,
		&w.AccountID,
		&w.Amount,
		&w.Status,
		&w.CreatedAt,
		&w.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &w, nil
}

func (r *SQLWithdrawalRepository) CreateRequest(ctx context.Context, req *WithdrawalRequest) error {
	row := r.store.DB.QueryRowContext(ctx, `
		INSERT INTO withdrawal_requests (id, account_id, amount, status)
		VALUES ($1, $2, $3, $4)
		RETURNING `+requestColumns,
		req.ID, req.AccountID, req.Amount, req.Status)
	created, err := scanRequest(row)
	if err != nil {
		return storeErr(err)
	}
	*req = *created
	return nil
}

func (r *SQLWithdrawalRepository) GetRequest(ctx context.Context, id uuid.UUID) (*WithdrawalRequest, error) {
	row := r.store.DB.QueryRowContext(ctx, `SELECT `+requestColumns+` FROM withdrawal_requests WHERE id = $1`, id)
	req, err := scanRequest(row)
	if err == sql.ErrNoRows {
		return nil, ErrRequestNotFound
	} else if err != nil {
		return nil, storeErr(err)
	}
	return req, nil
}

func (r *SQLWithdrawalRepository) ListByAccount(ctx context.Context, accountID int64) ([]WithdrawalRequest, error) {
	return r.list(ctx, `SELECT `+requestColumns+` FROM withdrawal_requests WHERE account_id = $1 ORDER BY created_at DESC`, accountID)
}

func (r *SQLWithdrawalRepository) ListAll(ctx context.Context) ([]WithdrawalRequest, error) {
	return r.list(ctx, `SELECT `+requestColumns+` FROM withdrawal_requests ORDER BY created_at DESC`)
}

func (r *SQLWithdrawalRepository) list(ctx context.Context, query string, args ...interface{}) ([]WithdrawalRequest, error) {
	rows, err := r.store.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, storeErr(err)
	}
	defer rows.Close()

	var requests []WithdrawalRequest
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, storeErr(err)
		}
		requests = append(requests, *req)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr(err)
	}
	return requests, nil
}

func (r *SQLWithdrawalRepository) Approve(ctx context.Context, id uuid.UUID) (*WithdrawalRequest, error) {
	// Conditional transition: when two admins race, only one UPDATE
	// matches the pending row.
	row := r.store.DB.QueryRowContext(ctx, `
		UPDATE withdrawal_requests
		SET status = $2, updated_at = now()
		WHERE id = $1 AND status = $3
		RETURNING `+requestColumns,
		id, StatusApproved, StatusPending)
	req, err := scanRequest(row)
	if err == sql.ErrNoRows {
		return nil, r.classifyMiss(ctx, id)
	} else if err != nil {
		return nil, storeErr(err)
	}
	return req, nil
}

func (r *SQLWithdrawalRepository) Reject(ctx context.Context, id uuid.UUID) (*WithdrawalRequest, error) {
	var rejected *WithdrawalRequest
	err := r.store.ExecTx(ctx, func(tx *sql.Tx) error {
		row := tx.QueryRowContext(ctx, `
			UPDATE withdrawal_requests
			SET status = $2, updated_at = now()
			WHERE id = $1 AND status = $3
			RETURNING `+requestColumns,
			id, StatusRejected, StatusPending)
		req, err := scanRequest(row)
		if err == sql.ErrNoRows {
			return r.classifyMiss(ctx, id)
		} else if err != nil {
			return storeErr(err)
		}

		// Refund the held amount in the same transaction: the rejected
		// status and the returned funds become visible together.
		if err := ledger.CreditBalanceTx(ctx, tx, req.AccountID, req.Amount); err != nil {
			return err
		}
		rejected = req
		return nil
	})
	if err != nil {
		return nil, err
	}
	return rejected, nil
}

func (r *SQLWithdrawalRepository) classifyMiss(ctx context.Context, id uuid.UUID) error {
	_, err := r.GetRequest(ctx, id)
	if err != nil {
		return err
	}
	return ErrInvalidRequestState
}

func storeErr(err error) error {
	return fmt.Errorf("%w: %v", ledger.ErrStoreUnavailable, err)
}
