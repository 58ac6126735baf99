package user_service

import (
	"context"
	"errors"
	"fmt"

	"github.com/SureStake/SureStake-Backend/services/ledger"
	"github.com/SureStake/SureStake-Backend/services/monitoring/logging"
	"github.com/SureStake/SureStake-Backend/utils"
)

const referralCodeLength = 8

type UserService struct {
	accounts      ledger.AccountRepository
	ledgerClient  *ledger.LedgerService
	logger        *logging.Logger
	referralBonus int64
}

func NewUserService(accounts ledger.AccountRepository, ledgerClient *ledger.LedgerService, logger *logging.Logger, referralBonusKobo int64) *UserService {
	return &UserService{
		accounts:      accounts,
		ledgerClient:  ledgerClient,
		logger:        logger,
		referralBonus: referralBonusKobo,
	}
}

type RegisterParams struct {
	FirstName    string
	LastName     string
	Email        string
	PhoneNumber  string
	Password     string
	ReferralCode string
}

// Register creates an account with a zero balance and a fresh referral
// code. When the registrant carries someone's referral code, the
// referrer is credited the fixed bonus once, best-effort: an unknown
// code is ignored and a failed credit never fails the registration.
func (u *UserService) Register(ctx context.Context, params RegisterParams) (*ledger.Account, error) {
	hashed, err := utils.GenerateHashValue(params.Password)
	if err != nil {
		return nil, err
	}

	arg := ledger.CreateAccountParams{
		FirstName:      params.FirstName,
		LastName:       params.LastName,
		Email:          params.Email,
		PhoneNumber:    params.PhoneNumber,
		HashedPassword: hashed,
		Role:           utils.RoleUser,
		ReferredBy:     params.ReferralCode,
	}

	var account *ledger.Account
	for attempt := 0; attempt < 3; attempt++ {
		arg.ReferralCode = utils.GenerateReferralCode(referralCodeLength)
		account, err = u.accounts.CreateAccount(ctx, arg)
		if errors.Is(err, ledger.ErrReferralCodeTaken) {
			continue
		}
		break
	}
	if err != nil {
		if errors.Is(err, ledger.ErrAccountExists) {
			return nil, NewUserError(ErrUserAlreadyExists, params.Email, err)
		}
		return nil, err
	}

	if params.ReferralCode != "" {
		u.creditReferrer(ctx, params.ReferralCode, account.ID)
	}

	return account, nil
}

func (u *UserService) creditReferrer(ctx context.Context, code string, refereeID int64) {
	referrer, err := u.accounts.GetAccountByReferralCode(ctx, code)
	if err != nil {
		// Unknown codes are not a registration error.
		u.logger.Info(fmt.Sprintf("referral code %v did not resolve: %v", code, err))
		return
	}
	if referrer.ID == refereeID {
		return
	}
	if err := u.ledgerClient.Credit(ctx, referrer.ID, u.referralBonus); err != nil {
		u.logger.Error(fmt.Sprintf("failed to credit referral bonus to account %v: %v", referrer.ID, err))
		return
	}
	u.logger.Info(fmt.Sprintf("referral bonus credited to account %v for referring account %v", referrer.ID, refereeID))
}

// dummyHash absorbs a bcrypt compare on the unknown-email path so login
// timing does not reveal whether an account exists.
var dummyHash, _ = utils.GenerateHashValue("login-timing-pad")

// Login verifies credentials and refuses blocked accounts. The caller
// issues the session token.
func (u *UserService) Login(ctx context.Context, email, password string) (*ledger.Account, error) {
	account, err := u.accounts.GetAccountByEmail(ctx, email)
	if errors.Is(err, ledger.ErrAccountNotFound) {
		_ = utils.VerifyHashValue(password, dummyHash)
		return nil, ErrInvalidCredentials
	} else if err != nil {
		return nil, err
	}

	if err := utils.VerifyHashValue(password, account.HashedPassword); err != nil {
		return nil, ErrInvalidCredentials
	}

	if account.IsBlocked {
		return nil, ErrUserBlocked
	}

	return account, nil
}

func (u *UserService) GetUser(ctx context.Context, id int64) (*ledger.Account, error) {
	account, err := u.accounts.GetAccount(ctx, id)
	if errors.Is(err, ledger.ErrAccountNotFound) {
		return nil, ErrUserNotFound
	}
	return account, err
}

func (u *UserService) ListUsers(ctx context.Context) ([]ledger.Account, error) {
	return u.accounts.ListAccounts(ctx)
}

// SetBlocked flips the block flag. Blocking is the platform's
// deactivation: accounts are never deleted.
func (u *UserService) SetBlocked(ctx context.Context, id int64, blocked bool) error {
	err := u.accounts.SetBlocked(ctx, id, blocked)
	if errors.Is(err, ledger.ErrAccountNotFound) {
		return ErrUserNotFound
	}
	if err == nil {
		u.logger.Info(fmt.Sprintf("account %v blocked=%v", id, blocked))
	}
	return err
}
