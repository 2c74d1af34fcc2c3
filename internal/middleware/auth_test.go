package middleware_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SscSPs/staff_ledger_app/internal/middleware"
	"github.com/SscSPs/staff_ledger_app/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/idtoken"
)

const (
	testSecret = "test-secret"
	testIssuer = "staff-ledger-app"
)

func newAuthRouter(cfg middleware.AuthConfig) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/whoami", middleware.AuthMiddleware(cfg), func(c *gin.Context) {
		userID, ok := middleware.GetUserIDFromContext(c)
		ctxUserID, _ := middleware.GetUserIDFromCtx(c.Request.Context())
		if !ok || userID != ctxUserID {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.String(http.StatusOK, userID)
	})
	return r
}

func doWhoami(r *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware_ServiceToken(t *testing.T) {
	r := newAuthRouter(middleware.AuthConfig{JWTSecret: testSecret, JWTIssuer: testIssuer})
	token, err := utils.GenerateJWT("payroll-clerk", testSecret, time.Hour, testIssuer)
	require.NoError(t, err)

	w := doWhoami(r, "Bearer "+token)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "payroll-clerk", w.Body.String())
}

func TestAuthMiddleware_Rejections(t *testing.T) {
	r := newAuthRouter(middleware.AuthConfig{JWTSecret: testSecret, JWTIssuer: testIssuer})

	expired, err := utils.GenerateJWT("u", testSecret, -time.Minute, testIssuer)
	require.NoError(t, err)
	wrongIssuer, err := utils.GenerateJWT("u", testSecret, time.Hour, "someone-else")
	require.NoError(t, err)
	wrongSecret, err := utils.GenerateJWT("u", "other-secret", time.Hour, testIssuer)
	require.NoError(t, err)
	noSubject, err := utils.GenerateJWT("", testSecret, time.Hour, testIssuer)
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
		body   string
	}{
		{"missing header", "", "Authorization header required"},
		{"basic scheme", "Basic abc", "Authorization header format must be Bearer {token}"},
		{"garbage", "Bearer not-a-jwt", "Invalid token"},
		{"expired", "Bearer " + expired, "Token has expired"},
		{"wrong issuer", "Bearer " + wrongIssuer, "Invalid token"},
		{"wrong secret", "Bearer " + wrongSecret, "Invalid token"},
		{"no subject", "Bearer " + noSubject, "Invalid token"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doWhoami(r, tt.header)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.Contains(t, w.Body.String(), tt.body)
		})
	}
}

func TestAuthMiddleware_GoogleIDTokenFallback(t *testing.T) {
	var gotAudience string
	r := newAuthRouter(middleware.AuthConfig{
		JWTSecret:      testSecret,
		GoogleClientID: "client-123.apps.googleusercontent.com",
		ValidateIDToken: func(_ context.Context, token, audience string) (*idtoken.Payload, error) {
			gotAudience = audience
			if token != "google-id-token" {
				return nil, errors.New("idtoken: invalid token")
			}
			return &idtoken.Payload{Subject: "google-subject-42", Audience: audience}, nil
		},
	})

	w := doWhoami(r, "Bearer google-id-token")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "google-subject-42", w.Body.String())
	assert.Equal(t, "client-123.apps.googleusercontent.com", gotAudience)

	w = doWhoami(r, "Bearer forged")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_GoogleDisabledWithoutClientID(t *testing.T) {
	called := false
	r := newAuthRouter(middleware.AuthConfig{
		JWTSecret: testSecret,
		ValidateIDToken: func(context.Context, string, string) (*idtoken.Payload, error) {
			called = true
			return &idtoken.Payload{Subject: "x"}, nil
		},
	})

	w := doWhoami(r, "Bearer google-id-token")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.False(t, called)
}
