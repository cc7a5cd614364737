package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/comitanigiacomo/kanso-fit/internal/core/domain"
	"github.com/comitanigiacomo/kanso-fit/internal/core/services"
)

type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, user *domain.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func protectedRouter(tokens TokenValidator) *gin.Engine {
	router := gin.New()
	router.Use(AuthMiddleware(tokens))
	router.GET("/protected", func(c *gin.Context) {
		userID, ok := GetUserID(c)
		if !ok {
			c.String(http.StatusInternalServerError, "user id not in context")
			return
		}
		c.String(http.StatusOK, "Hello "+userID)
	})
	return router
}

func TestAuthMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	const (
		secret = "test-secret-middleware"
		issuer = "test-issuer"
	)

	repo := new(MockUserRepo)
	repo.On("GetByID", mock.Anything, "user-123").Return(&domain.User{ID: "user-123"}, nil)
	repo.On("GetByID", mock.Anything, "ghost").Return(nil, domain.ErrUserNotFound)

	valid := services.NewTokenService(secret, issuer, time.Hour, repo)
	expired := services.NewTokenService(secret, issuer, -time.Second, repo)
	attacker := services.NewTokenService("wrong-secret", issuer, time.Hour, repo)
	otherIssuer := services.NewTokenService(secret, "someone-else", time.Hour, repo)

	sign := func(svc *services.TokenService, sub string) string {
		tok, err := svc.GenerateToken(sub)
		require.NoError(t, err)
		return tok
	}

	tests := []struct {
		name     string
		header   string
		wantCode int
		wantBody string
	}{
		{"Valid token", "Bearer " + sign(valid, "user-123"), http.StatusOK, "Hello user-123"},
		{"Missing header", "", http.StatusUnauthorized, "authorization header required"},
		{"Scheme only", "Bearer", http.StatusUnauthorized, "invalid authorization header format"},
		{"Scheme with blank token", "Bearer   ", http.StatusUnauthorized, "invalid authorization header format"},
		{"Wrong scheme", "Token 12345", http.StatusUnauthorized, "invalid authorization header format"},
		{"No separator", "Bearer12345", http.StatusUnauthorized, "invalid authorization header format"},
		{"Tampered signature", "Bearer " + sign(attacker, "attacker"), http.StatusUnauthorized, "invalid or expired token"},
		{"Expired token", "Bearer " + sign(expired, "user-123"), http.StatusUnauthorized, "invalid or expired token"},
		{"Foreign issuer", "Bearer " + sign(otherIssuer, "user-123"), http.StatusUnauthorized, "invalid or expired token"},
		{"Deleted user", "Bearer " + sign(valid, "ghost"), http.StatusUnauthorized, "invalid or expired token"},
	}

	router := protectedRouter(valid)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			assert.Equal(t, tt.wantCode, w.Code)
			assert.Contains(t, w.Body.String(), tt.wantBody)
		})
	}
}

func TestGetUserID_RejectsWrongType(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	_, ok := GetUserID(c)
	assert.False(t, ok)

	c.Set(ContextUserIDKey, 42)
	_, ok = GetUserID(c)
	assert.False(t, ok)

	c.Set(ContextUserIDKey, "u1")
	id, ok := GetUserID(c)
	assert.True(t, ok)
	assert.Equal(t, "u1", id)
}
