package user_service_test

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/SureStake/SureStake-Backend/services/ledger"
	"github.com/SureStake/SureStake-Backend/services/monitoring/logging"
	user_service "github.com/SureStake/SureStake-Backend/services/user"
	"github.com/SureStake/SureStake-Backend/utils"
)

const testBonus = utils.DefaultReferralBonusKobo

func newTestUserService(t *testing.T) (*user_service.UserService, *ledger.MemoryAccountRepository) {
	t.Helper()

	logger := logging.NewLogger(nil)
	logger.SetOutput(io.Discard)

	accounts := ledger.NewMemoryAccountRepository()
	ledgerService := ledger.NewLedgerService(accounts, logger)
	return user_service.NewUserService(accounts, ledgerService, logger, testBonus), accounts
}

func registerParams(email, phone, referredBy string) user_service.RegisterParams {
	return user_service.RegisterParams{
		FirstName:    "Tunde",
		LastName:     "Adeyemi",
		Email:        email,
		PhoneNumber:  phone,
		Password:     "correct horse battery",
		ReferralCode: referredBy,
	}
}

func TestRegisterAndLogin(t *testing.T) {
	svc, _ := newTestUserService(t)

	account, err := svc.Register(context.Background(), registerParams("tunde@example.com", "+2348011111111", ""))
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if account.Balance != 0 {
		t.Fatalf("new account must start at zero balance, got %d", account.Balance)
	}
	if account.ReferralCode == "" {
		t.Fatal("new account must receive a referral code")
	}
	if account.Role != utils.RoleUser {
		t.Fatalf("expected role user, got %s", account.Role)
	}

	logged, err := svc.Login(context.Background(), "tunde@example.com", "correct horse battery")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if logged.ID != account.ID {
		t.Fatalf("login resolved wrong account: %d != %d", logged.ID, account.ID)
	}

	if _, err := svc.Login(context.Background(), "tunde@example.com", "wrong password"); !errors.Is(err, user_service.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := svc.Login(context.Background(), "nobody@example.com", "whatever"); !errors.Is(err, user_service.ErrInvalidCredentials) {
		t.Fatalf("unknown email must not be distinguishable, got %v", err)
	}
}

func TestLoginUnknownEmailIndistinguishable(t *testing.T) {
	svc, _ := newTestUserService(t)

	if _, err := svc.Register(context.Background(), registerParams("known@example.com", "+2348099999999", "")); err != nil {
		t.Fatalf("register: %v", err)
	}

	// Unknown email and wrong password must fail identically; the
	// unknown-email path still pays a hash compare so timing does not
	// betray account existence either.
	_, unknownErr := svc.Login(context.Background(), "unknown@example.com", "whatever")
	_, wrongErr := svc.Login(context.Background(), "known@example.com", "wrong password")
	if !errors.Is(unknownErr, user_service.ErrInvalidCredentials) || !errors.Is(wrongErr, user_service.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials on both paths, got %v and %v", unknownErr, wrongErr)
	}
	if unknownErr.Error() != wrongErr.Error() {
		t.Fatalf("login failures must be indistinguishable: %q vs %q", unknownErr, wrongErr)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _ := newTestUserService(t)

	if _, err := svc.Register(context.Background(), registerParams("dup@example.com", "+2348022222222", "")); err != nil {
		t.Fatalf("register: %v", err)
	}

	_, err := svc.Register(context.Background(), registerParams("dup@example.com", "+2348033333333", ""))
	if !errors.Is(err, user_service.ErrUserAlreadyExists) {
		t.Fatalf("expected ErrUserAlreadyExists, got %v", err)
	}
}

func TestReferralBonusCreditedOnce(t *testing.T) {
	svc, accounts := newTestUserService(t)

	referrer, err := svc.Register(context.Background(), registerParams("ref@example.com", "+2348044444444", ""))
	if err != nil {
		t.Fatalf("register referrer: %v", err)
	}

	if _, err := svc.Register(context.Background(), registerParams("friend@example.com", "+2348055555555", referrer.ReferralCode)); err != nil {
		t.Fatalf("register referee: %v", err)
	}

	updated, err := accounts.GetAccount(context.Background(), referrer.ID)
	if err != nil {
		t.Fatalf("get referrer: %v", err)
	}
	if updated.Balance != testBonus {
		t.Fatalf("expected referral bonus %d, got %d", testBonus, updated.Balance)
	}
}

func TestUnknownReferralCodeIgnored(t *testing.T) {
	svc, _ := newTestUserService(t)

	account, err := svc.Register(context.Background(), registerParams("solo@example.com", "+2348066666666", "NOSUCHCODE"))
	if err != nil {
		t.Fatalf("registration must succeed with an unknown referral code: %v", err)
	}
	if account.ReferredBy != "NOSUCHCODE" {
		t.Fatalf("referred_by should record the submitted code, got %q", account.ReferredBy)
	}
}

func TestBlockedAccountCannotLogin(t *testing.T) {
	svc, _ := newTestUserService(t)

	account, err := svc.Register(context.Background(), registerParams("blocked@example.com", "+2348077777777", ""))
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	if err := svc.SetBlocked(context.Background(), account.ID, true); err != nil {
		t.Fatalf("block: %v", err)
	}

	if _, err := svc.Login(context.Background(), "blocked@example.com", "correct horse battery"); !errors.Is(err, user_service.ErrUserBlocked) {
		t.Fatalf("expected ErrUserBlocked, got %v", err)
	}

	if err := svc.SetBlocked(context.Background(), account.ID, false); err != nil {
		t.Fatalf("unblock: %v", err)
	}
	if _, err := svc.Login(context.Background(), "blocked@example.com", "correct horse battery"); err != nil {
		t.Fatalf("login after unblock: %v", err)
	}
}

func TestSetBlockedUnknownUser(t *testing.T) {
	svc, _ := newTestUserService(t)

	if err := svc.SetBlocked(context.Background(), 13371337, true); !errors.Is(err, user_service.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
