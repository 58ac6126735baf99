package models

import (
	"fmt"
	"time"

	"github.com/SureStake/SureStake-Backend/services/withdrawal"
	"github.com/shopspring/decimal"
)

var koboPerNaira = decimal.NewFromInt(100)

// NairaToKobo converts a client-facing naira amount to the integer kobo
// the ledger stores. Anything finer than one kobo is invalid.
func NairaToKobo(amount decimal.Decimal) (int64, error) {
	kobo := amount.Mul(koboPerNaira)
	if !kobo.IsInteger() {
		return 0, fmt.Errorf("amount has a fraction of a kobo")
	}
	if !kobo.IsPositive() {
		return 0, fmt.Errorf("amount must be positive")
	}
	return kobo.IntPart(), nil
}

func KoboToNaira(kobo int64) decimal.Decimal {
	return decimal.NewFromInt(kobo).Div(koboPerNaira)
}

type WithdrawalRequestParams struct {
	Amount decimal.Decimal `json:"amount" binding:"required"`
}

type AdminDecisionParams struct {
	RequestID string `json:"request_id" binding:"required,uuid" validate:"required,uuid"`
}

type BlockUserParams struct {
	UserID ID `json:"user_id" binding:"required"`
}

type WithdrawalResponse struct {
	ID        string    `json:"id"`
	AccountID ID        `json:"account_id"`
	Amount    string    `json:"amount"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func ToWithdrawalResponse(req *withdrawal.WithdrawalRequest) WithdrawalResponse {
	return WithdrawalResponse{
		ID:        req.ID.String(),
		AccountID: ID(req.AccountID),
		Amount:    KoboToNaira(req.Amount).String(),
		Status:    string(req.Status),
		CreatedAt: req.CreatedAt,
		UpdatedAt: req.UpdatedAt,
	}
}

func ToWithdrawalResponseCollection(requests []withdrawal.WithdrawalRequest) []WithdrawalResponse {
	responses := make([]WithdrawalResponse, len(requests))
	for i := range requests {
		responses[i] = ToWithdrawalResponse(&requests[i])
	}
	return responses
}
