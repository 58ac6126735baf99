package api

import (
	"errors"
	"net/http"

	models "github.com/SureStake/SureStake-Backend/api/models"
	basemodels "github.com/SureStake/SureStake-Backend/models"
	"github.com/SureStake/SureStake-Backend/services/ledger"
	"github.com/SureStake/SureStake-Backend/services/withdrawal"
	"github.com/SureStake/SureStake-Backend/utils"
	"github.com/gin-gonic/gin"
)

type Withdrawals struct {
	server *Server
}

func (w Withdrawals) router(server *Server) {
	w.server = server

	serverGroupV1 := server.router.Group("/api/v1")
	serverGroupV1.GET("/account", w.server.AuthenticatedMiddleware(), w.getAccount)
	serverGroupV1.POST("/withdraw/request", w.server.AuthenticatedMiddleware(), w.requestWithdrawal)
	serverGroupV1.GET("/withdraw/history", w.server.AuthenticatedMiddleware(), w.withdrawalHistory)
}

func (w *Withdrawals) getAccount(ctx *gin.Context) {
	activeUser, err := utils.GetActiveUser(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, basemodels.NewError(err.Error()))
		return
	}

	account, err := w.server.ledger.GetAccount(ctx, activeUser.UserID)
	if err != nil {
		if errors.Is(err, ledger.ErrAccountNotFound) {
			ctx.JSON(http.StatusNotFound, basemodels.NewError("account not found"))
			return
		}
		ctx.JSON(http.StatusServiceUnavailable, basemodels.NewError("could not fetch account"))
		return
	}

	ctx.JSON(http.StatusOK, basemodels.NewSuccess("account retrieved successfully", models.UserResponse{}.ToUserResponse(account)))
}

func (w *Withdrawals) requestWithdrawal(ctx *gin.Context) {
	activeUser, err := utils.GetActiveUser(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, basemodels.NewError(err.Error()))
		return
	}

	// Admins adjudicate withdrawals, they do not place them.
	if activeUser.Role != utils.RoleUser {
		ctx.JSON(http.StatusForbidden, basemodels.NewError("Forbidden"))
		return
	}

	var params models.WithdrawalRequestParams
	if err := ctx.ShouldBindJSON(&params); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	amountKobo, err := models.NairaToKobo(params.Amount)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, basemodels.NewError("Invalid amount"))
		return
	}

	req, err := w.server.withdrawals.RequestWithdrawal(ctx, activeUser.UserID, amountKobo)
	if err != nil {
		status, msg := withdrawalErrorStatus(err)
		ctx.JSON(status, basemodels.NewError(msg))
		return
	}

	ctx.JSON(http.StatusOK, basemodels.NewSuccess("Withdrawal request submitted", models.ToWithdrawalResponse(req)))
}

func (w *Withdrawals) withdrawalHistory(ctx *gin.Context) {
	activeUser, err := utils.GetActiveUser(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, basemodels.NewError(err.Error()))
		return
	}

	requests, err := w.server.withdrawals.ListWithdrawals(ctx, &activeUser.UserID)
	if err != nil {
		ctx.JSON(http.StatusServiceUnavailable, basemodels.NewError("Cannot fetch history"))
		return
	}

	ctx.JSON(http.StatusOK, basemodels.NewSuccess("withdrawal history retrieved", models.ToWithdrawalResponseCollection(requests)))
}

// withdrawalErrorStatus maps each ledger/withdrawal error kind to a
// stable HTTP status. Business-rule failures are 4xx and must never be
// retried blindly; store failures are 503 and may be.
func withdrawalErrorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, ledger.ErrInvalidAmount):
		return http.StatusBadRequest, "Invalid amount"
	case errors.Is(err, ledger.ErrInsufficientFunds):
		return http.StatusBadRequest, "Insufficient balance"
	case errors.Is(err, withdrawal.ErrAccessDenied):
		return http.StatusForbidden, "Access denied"
	case errors.Is(err, withdrawal.ErrInvalidRequestState):
		return http.StatusBadRequest, "Invalid request"
	case errors.Is(err, withdrawal.ErrRequestNotFound):
		return http.StatusNotFound, "Invalid request"
	case errors.Is(err, withdrawal.ErrRequestPersistFailed):
		return http.StatusInternalServerError, "Withdrawal request failed"
	case errors.Is(err, ledger.ErrStoreUnavailable):
		return http.StatusServiceUnavailable, "Service temporarily unavailable"
	default:
		return http.StatusInternalServerError, "Withdrawal request failed"
	}
}
