package api

import (
	"errors"
	"net/http"

	models "github.com/SureStake/SureStake-Backend/api/models"
	basemodels "github.com/SureStake/SureStake-Backend/models"
	user_service "github.com/SureStake/SureStake-Backend/services/user"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type Admin struct {
	server *Server
}

func (a Admin) router(server *Server) {
	a.server = server

	serverGroupV1 := server.router.Group("/api/v1/admin")
	serverGroupV1.Use(server.AuthenticatedMiddleware(), server.AdminMiddleware())
	serverGroupV1.GET("/users", a.listUsers)
	serverGroupV1.POST("/block", a.blockUser)
	serverGroupV1.POST("/unblock", a.unblockUser)
	serverGroupV1.GET("/withdrawals", a.listWithdrawals)
	serverGroupV1.POST("/withdrawals/approve", a.approveWithdrawal)
	serverGroupV1.POST("/withdrawals/reject", a.rejectWithdrawal)
}

func (a *Admin) listUsers(ctx *gin.Context) {
	accounts, err := a.server.users.ListUsers(ctx)
	if err != nil {
		ctx.JSON(http.StatusServiceUnavailable, basemodels.NewError("Cannot fetch users"))
		return
	}

	ctx.JSON(http.StatusOK, basemodels.NewSuccess("users retrieved successfully", models.ToUserResponseCollection(accounts)))
}

func (a *Admin) blockUser(ctx *gin.Context) {
	a.setBlocked(ctx, true, "User blocked")
}

func (a *Admin) unblockUser(ctx *gin.Context) {
	a.setBlocked(ctx, false, "User unblocked")
}

func (a *Admin) setBlocked(ctx *gin.Context, blocked bool, msg string) {
	var params models.BlockUserParams
	if err := ctx.ShouldBindJSON(&params); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := a.server.users.SetBlocked(ctx, int64(params.UserID), blocked); err != nil {
		if errors.Is(err, user_service.ErrUserNotFound) {
			ctx.JSON(http.StatusNotFound, basemodels.NewError("user not found"))
			return
		}
		ctx.JSON(http.StatusServiceUnavailable, basemodels.NewError("Block update failed"))
		return
	}

	a.server.markBlocked(ctx, int64(params.UserID), blocked)
	ctx.JSON(http.StatusOK, basemodels.NewSuccess(msg, nil))
}

func (a *Admin) listWithdrawals(ctx *gin.Context) {
	requests, err := a.server.withdrawals.ListWithdrawals(ctx, nil)
	if err != nil {
		ctx.JSON(http.StatusServiceUnavailable, basemodels.NewError("Cannot fetch withdrawals"))
		return
	}

	ctx.JSON(http.StatusOK, basemodels.NewSuccess("withdrawals retrieved successfully", models.ToWithdrawalResponseCollection(requests)))
}

func (a *Admin) approveWithdrawal(ctx *gin.Context) {
	requestID, ok := a.bindDecision(ctx)
	if !ok {
		return
	}

	req, err := a.server.withdrawals.Approve(ctx, requestID)
	if err != nil {
		status, msg := withdrawalErrorStatus(err)
		ctx.JSON(status, basemodels.NewError(msg))
		return
	}

	ctx.JSON(http.StatusOK, basemodels.NewSuccess("Withdrawal approved", models.ToWithdrawalResponse(req)))
}

func (a *Admin) rejectWithdrawal(ctx *gin.Context) {
	requestID, ok := a.bindDecision(ctx)
	if !ok {
		return
	}

	req, err := a.server.withdrawals.Reject(ctx, requestID)
	if err != nil {
		status, msg := withdrawalErrorStatus(err)
		ctx.JSON(status, basemodels.NewError(msg))
		return
	}

	ctx.JSON(http.StatusOK, basemodels.NewSuccess("Withdrawal rejected and amount refunded", models.ToWithdrawalResponse(req)))
}

func (a *Admin) bindDecision(ctx *gin.Context) (uuid.UUID, bool) {
	var params models.AdminDecisionParams

	if err := ctx.ShouldBindJSON(&params); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return uuid.Nil, false
	}

	/// Validate Presence of Placeholder Values
	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(params); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return uuid.Nil, false
	}

	requestID, err := uuid.Parse(params.RequestID)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, basemodels.NewError("Invalid request"))
		return uuid.Nil, false
	}

	return requestID, true
}
