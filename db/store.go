package db

import (
	"context"
	"database/sql"
	"fmt"
)

// Store wraps the shared connection pool. Repositories hold a Store and
// run their conditional updates either directly on DB or inside ExecTx.
type Store struct {
	DB *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		DB: db,
	}
}

func (s *Store) ExecTx(ctx context.Context, fq func(tx *sql.Tx) error) error {
	// initialize transaction
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	err = fq(tx)

	if err != nil {
		txErr := tx.Rollback()
		if txErr != nil && txErr != sql.ErrTxDone {
			return fmt.Errorf("encountered rollback error: %v", txErr)
		}
		return err
	}

	return tx.Commit()
}
