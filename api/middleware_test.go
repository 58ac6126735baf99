package api

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/SureStake/SureStake-Backend/services/monitoring/logging"
	"github.com/SureStake/SureStake-Backend/services/security"
	"github.com/SureStake/SureStake-Backend/utils"
	"github.com/gin-gonic/gin"
)

func newTestServer(t *testing.T) (*Server, *gin.Engine) {
	t.Helper()

	gin.SetMode(gin.TestMode)
	TokenController = utils.NewJWTToken(&utils.Config{SigningKey: "middleware-test-key"})

	logger := logging.NewLogger(nil)
	logger.SetOutput(io.Discard)

	s := &Server{
		logger: logger,
		cache:  security.NewCache(),
	}

	router := gin.New()
	router.GET("/me", s.AuthenticatedMiddleware(), func(ctx *gin.Context) {
		user, err := utils.GetActiveUser(ctx)
		if err != nil {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		ctx.JSON(http.StatusOK, gin.H{"user_id": user.UserID})
	})
	router.GET("/admin", s.AuthenticatedMiddleware(), s.AdminMiddleware(), func(ctx *gin.Context) {
		ctx.Status(http.StatusOK)
	})
	return s, router
}

func bearerFor(t *testing.T, user utils.TokenObject) string {
	t.Helper()

	token, err := TokenController.CreateToken(user)
	if err != nil {
		t.Fatalf("create token: %v", err)
	}
	return "Bearer " + token
}

func get(router *gin.Engine, path, authorization string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAuthenticatedMiddlewareRejectsMissingToken(t *testing.T) {
	_, router := newTestServer(t)

	if w := get(router, "/me", ""); w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
	if w := get(router, "/me", "Token abc"); w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for non-bearer scheme, got %d", w.Code)
	}
	if w := get(router, "/me", "Bearer garbage"); w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for invalid token, got %d", w.Code)
	}
}

func TestAuthenticatedMiddlewareAcceptsValidToken(t *testing.T) {
	_, router := newTestServer(t)

	auth := bearerFor(t, utils.TokenObject{UserID: 7, Role: utils.RoleUser})
	if w := get(router, "/me", auth); w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
}

func TestAdminMiddlewareGatesByRole(t *testing.T) {
	_, router := newTestServer(t)

	userAuth := bearerFor(t, utils.TokenObject{UserID: 7, Role: utils.RoleUser})
	if w := get(router, "/admin", userAuth); w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for user role, got %d", w.Code)
	}

	adminAuth := bearerFor(t, utils.TokenObject{UserID: 1, Role: utils.RoleAdmin})
	if w := get(router, "/admin", adminAuth); w.Code != http.StatusOK {
		t.Fatalf("expected 200 for admin role, got %d", w.Code)
	}
}

func TestBlockFlagRevokesLiveToken(t *testing.T) {
	s, router := newTestServer(t)

	auth := bearerFor(t, utils.TokenObject{UserID: 9, Role: utils.RoleUser})
	if w := get(router, "/me", auth); w.Code != http.StatusOK {
		t.Fatalf("expected 200 before block, got %d", w.Code)
	}

	s.markBlocked(context.Background(), 9, true)
	if w := get(router, "/me", auth); w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 after block, got %d", w.Code)
	}

	s.markBlocked(context.Background(), 9, false)
	if w := get(router, "/me", auth); w.Code != http.StatusOK {
		t.Fatalf("expected 200 after unblock, got %d", w.Code)
	}
}
