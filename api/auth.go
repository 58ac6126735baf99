package api

import (
	"errors"
	"net/http"

	models "github.com/SureStake/SureStake-Backend/api/models"
	basemodels "github.com/SureStake/SureStake-Backend/models"
	user_service "github.com/SureStake/SureStake-Backend/services/user"
	"github.com/SureStake/SureStake-Backend/utils"
	"github.com/gin-gonic/gin"
)

type Auth struct {
	server *Server
}

func (a Auth) router(server *Server) {
	a.server = server

	serverGroup := server.router.Group("/auth")
	serverGroup.GET("test", a.testAuth)
	serverGroup.POST("login", a.login)
	serverGroup.POST("register", a.register)
}

func (a Auth) testAuth(ctx *gin.Context) {
	dr := basemodels.SuccessResponse{
		Status:  "success",
		Message: "Authentication API is active",
		Version: utils.REVISION,
	}

	ctx.JSON(http.StatusOK, dr)
}

func (a *Auth) register(ctx *gin.Context) {
	var user models.RegisterUserParams

	err := ctx.ShouldBindJSON(&user)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	newAccount, err := a.server.users.Register(ctx, user_service.RegisterParams{
		FirstName:    user.FirstName,
		LastName:     user.LastName,
		Email:        user.Email,
		PhoneNumber:  user.PhoneNumber,
		Password:     user.Password,
		ReferralCode: user.ReferralCode,
	})
	if err != nil {
		if errors.Is(err, user_service.ErrUserAlreadyExists) {
			ctx.JSON(http.StatusBadRequest, basemodels.NewError("user already exists"))
			return
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	token, err := TokenController.CreateToken(utils.TokenObject{
		UserID: newAccount.ID,
		Role:   newAccount.Role,
	})
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	userWT := models.UserWithToken{
		User:  models.UserResponse{}.ToUserResponse(newAccount),
		Token: token,
	}

	ctx.JSON(http.StatusCreated, basemodels.NewSuccess("account created succcessfully", userWT))
}

func (a *Auth) login(ctx *gin.Context) {
	user := new(models.UserLoginParams)

	if err := ctx.ShouldBindJSON(user); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	account, err := a.server.users.Login(ctx, user.Email, user.Password)
	if err != nil {
		if errors.Is(err, user_service.ErrInvalidCredentials) {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Incorrect Email or Password"})
			return
		}
		if errors.Is(err, user_service.ErrUserBlocked) {
			ctx.JSON(http.StatusForbidden, basemodels.NewError("account is blocked"))
			return
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	token, err := TokenController.CreateToken(utils.TokenObject{
		UserID: account.ID,
		Role:   account.Role,
	})
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	userWT := models.UserWithToken{
		User:  models.UserResponse{}.ToUserResponse(account),
		Token: token,
	}

	ctx.JSON(http.StatusOK, basemodels.NewSuccess("login successful", userWT))
}
