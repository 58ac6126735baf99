package ledger_test

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	db "github.com/SureStake/SureStake-Backend/db"
	"github.com/SureStake/SureStake-Backend/services/ledger"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/google/uuid"
	_ "github.com/lib/pq"
)

func setupSQLAccountRepo(t *testing.T) (*ledger.SQLAccountRepository, *sql.DB) {
	t.Helper()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		t.Skip("DATABASE_URL is not set")
	}

	conn, err := sql.Open("postgres", dsn)
	if err != nil {
		t.Fatalf("db connection: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := conn.PingContext(ctx); err != nil {
		t.Fatalf("db ping: %v", err)
	}

	m, err := migrate.New("file://../../db/migrations", dsn)
	if err != nil {
		t.Fatalf("migrator: %v", err)
	}
	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		t.Fatalf("migrate up: %v", err)
	}

	return ledger.NewSQLAccountRepository(db.NewStore(conn)), conn
}

// uniqueTag keeps rows from different test runs (and packages sharing
// the database) out of each other's way.
func uniqueTag() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
}

func seedDBAccount(t *testing.T, repo *ledger.SQLAccountRepository, conn *sql.DB, balance int64) *ledger.Account {
	t.Helper()

	tag := uniqueTag()
	account, err := repo.CreateAccount(context.Background(), ledger.CreateAccountParams{
		FirstName:    "Ada",
		LastName:     "Eze",
		Email:        fmt.Sprintf("it-%s@example.com", tag),
		PhoneNumber:  "+234" + tag,
		Role:         "user",
		ReferralCode: strings.ToUpper(tag),
	})
	if err != nil {
		t.Fatalf("seed account: %v", err)
	}
	t.Cleanup(func() {
		conn.Exec(`DELETE FROM withdrawal_requests WHERE account_id = $1`, account.ID)
		conn.Exec(`DELETE FROM accounts WHERE id = $1`, account.ID)
	})

	if balance > 0 {
		if err := repo.CreditBalance(context.Background(), account.ID, balance); err != nil {
			t.Fatalf("seed balance: %v", err)
		}
	}
	return account
}

func dbBalanceOf(t *testing.T, repo *ledger.SQLAccountRepository, id int64) int64 {
	t.Helper()

	account, err := repo.GetAccount(context.Background(), id)
	if err != nil {
		t.Fatalf("get account: %v", err)
	}
	return account.Balance
}

func TestSQLDebitInsufficientFundsLeavesBalance(t *testing.T) {
	repo, conn := setupSQLAccountRepo(t)
	account := seedDBAccount(t, repo, conn, 100)

	if err := repo.DebitBalance(context.Background(), account.ID, 150); !errors.Is(err, ledger.ErrInsufficientFunds) {
		t.Fatalf("expected ErrInsufficientFunds, got %v", err)
	}
	if got := dbBalanceOf(t, repo, account.ID); got != 100 {
		t.Fatalf("failed debit must leave balance unchanged, got %d", got)
	}
}

func TestSQLDebitBlockedAccount(t *testing.T) {
	repo, conn := setupSQLAccountRepo(t)
	account := seedDBAccount(t, repo, conn, 500)

	if err := repo.SetBlocked(context.Background(), account.ID, true); err != nil {
		t.Fatalf("block account: %v", err)
	}

	if err := repo.DebitBalance(context.Background(), account.ID, 100); !errors.Is(err, ledger.ErrAccountBlocked) {
		t.Fatalf("expected ErrAccountBlocked, got %v", err)
	}
	if got := dbBalanceOf(t, repo, account.ID); got != 500 {
		t.Fatalf("expected balance 500, got %d", got)
	}

	// Credits still land while blocked.
	if err := repo.CreditBalance(context.Background(), account.ID, 50); err != nil {
		t.Fatalf("credit to blocked account: %v", err)
	}
	if got := dbBalanceOf(t, repo, account.ID); got != 550 {
		t.Fatalf("expected balance 550, got %d", got)
	}
}

func TestSQLConcurrentDebitsSingleWinner(t *testing.T) {
	repo, conn := setupSQLAccountRepo(t)
	account := seedDBAccount(t, repo, conn, 500)

	var wg sync.WaitGroup
	results := make(chan error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results <- repo.DebitBalance(context.Background(), account.ID, 300)
		}()
	}
	wg.Wait()
	close(results)

	var successes, insufficient int
	for err := range results {
		switch {
		case err == nil:
			successes++
		case errors.Is(err, ledger.ErrInsufficientFunds):
			insufficient++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}

	if successes != 1 || insufficient != 1 {
		t.Fatalf("expected exactly one winner, got %d successes and %d insufficient", successes, insufficient)
	}
	if got := dbBalanceOf(t, repo, account.ID); got != 200 {
		t.Fatalf("expected balance 200, got %d", got)
	}
}

func TestSQLCreateAccountDuplicates(t *testing.T) {
	repo, conn := setupSQLAccountRepo(t)
	account := seedDBAccount(t, repo, conn, 0)

	dup := ledger.CreateAccountParams{
		FirstName:    "Ada",
		LastName:     "Eze",
		Email:        account.Email,
		PhoneNumber:  "+234" + uniqueTag(),
		Role:         "user",
		ReferralCode: strings.ToUpper(uniqueTag()),
	}
	if _, err := repo.CreateAccount(context.Background(), dup); !errors.Is(err, ledger.ErrAccountExists) {
		t.Fatalf("expected ErrAccountExists for duplicate email, got %v", err)
	}

	tag := uniqueTag()
	dup.Email = fmt.Sprintf("it-%s@example.com", tag)
	dup.PhoneNumber = "+234" + tag
	dup.ReferralCode = account.ReferralCode
	if _, err := repo.CreateAccount(context.Background(), dup); !errors.Is(err, ledger.ErrReferralCodeTaken) {
		t.Fatalf("expected ErrReferralCodeTaken for duplicate code, got %v", err)
	}
}
