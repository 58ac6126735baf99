package models

import (
	"time"

	"github.com/SureStake/SureStake-Backend/services/ledger"
)

type RegisterUserParams struct {
	FirstName    string `json:"first_name" binding:"required"`
	LastName     string `json:"last_name" binding:"required"`
	Email        string `json:"email" binding:"required,email"`
	PhoneNumber  string `json:"phone_number" binding:"required"`
	Password     string `json:"password" binding:"required,min=8"`
	ReferralCode string `json:"referral_code"`
}

type UserLoginParams struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type UserResponse struct {
	ID           ID        `json:"id"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Email        string    `json:"email"`
	PhoneNumber  string    `json:"phone_number"`
	Balance      string    `json:"balance"`
	IsBlocked    bool      `json:"is_blocked"`
	ReferralCode string    `json:"referral_code"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

func (UserResponse) ToUserResponse(account *ledger.Account) UserResponse {
	return UserResponse{
		ID:           ID(account.ID),
		FirstName:    account.FirstName,
		LastName:     account.LastName,
		Email:        account.Email,
		PhoneNumber:  account.PhoneNumber,
		Balance:      KoboToNaira(account.Balance).String(),
		IsBlocked:    account.IsBlocked,
		ReferralCode: account.ReferralCode,
		Role:         account.Role,
		CreatedAt:    account.CreatedAt,
	}
}

func ToUserResponseCollection(accounts []ledger.Account) []UserResponse {
	responses := make([]UserResponse, len(accounts))
	for i := range accounts {
		responses[i] = UserResponse{}.ToUserResponse(&accounts[i])
	}
	return responses
}

type UserWithToken struct {
	User  UserResponse `json:"user"`
	Token string       `json:"token"`
}
