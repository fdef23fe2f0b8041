package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/smartsubstation/auth-server/internal/api/http/response"
	"github.com/smartsubstation/auth-server/internal/model"
	"github.com/smartsubstation/auth-server/internal/testutil"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type authServiceMock struct {
	mock.Mock
}

func newAuthServiceMock(t *testing.T) *authServiceMock {
	m := &authServiceMock{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *authServiceMock) Login(ctx context.Context, username, password string) (model.LoginResult, error) {
	args := m.Called(ctx, username, password)
	return args.Get(0).(model.LoginResult), args.Error(1)
}

func (m *authServiceMock) Logout(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *authServiceMock) Refresh(ctx context.Context, token string) (string, error) {
	args := m.Called(ctx, token)
	return args.String(0), args.Error(1)
}

func newAuthEngine(h *Auth) *gin.Engine {
	engine := gin.New()
	engine.POST("/api/auth/login", h.Login)
	engine.POST("/api/auth/logout", h.Logout)
	engine.POST("/api/auth/refresh", h.Refresh)
	return engine
}

func decodeResult(t *testing.T, rec *httptest.ResponseRecorder) response.Result {
	t.Helper()
	var result response.Result
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	return result
}

func TestAuthHandler_Login_Success(t *testing.T) {
	svc := newAuthServiceMock(t)
	svc.On("Login", mock.Anything, "alice", "pw").Return(model.LoginResult{
		Token:     "tok-1",
		TokenType: model.TokenTypeBearer,
		UserID:    42,
		Username:  "alice",
		RealName:  "Alice Zhang",
		RoleID:    2,
	}, nil)

	engine := newAuthEngine(NewAuth(svc, testutil.MakeNoopLogger()))

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login",
		strings.NewReader(`{"username":"alice","password":"pw"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	result := decodeResult(t, rec)
	assert.Equal(t, response.CodeSuccess, result.Code)

	data, ok := result.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "tok-1", data["token"])
	assert.Equal(t, "Bearer", data["tokenType"])
	assert.Equal(t, float64(42), data["userId"])
	assert.Equal(t, "alice", data["username"])
}

func TestAuthHandler_Login_MissingFields(t *testing.T) {
	svc := newAuthServiceMock(t)
	engine := newAuthEngine(NewAuth(svc, testutil.MakeNoopLogger()))

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login",
		strings.NewReader(`{"username":"alice"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	svc.AssertNotCalled(t, "Login", mock.Anything, mock.Anything, mock.Anything)
}

func TestAuthHandler_Login_AuthErrorKeepsCode(t *testing.T) {
	tests := []struct {
		name    string
		authErr *model.AuthError
	}{
		{name: "unknown user", authErr: model.ErrUserNotFound},
		{name: "bad credentials", authErr: model.ErrBadCredentials},
		{name: "disabled account", authErr: model.ErrAccountDisabled},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newAuthServiceMock(t)
			svc.On("Login", mock.Anything, "alice", "pw").Return(model.LoginResult{}, tt.authErr)

			engine := newAuthEngine(NewAuth(svc, testutil.MakeNoopLogger()))

			req := httptest.NewRequest(http.MethodPost, "/api/auth/login",
				strings.NewReader(`{"username":"alice","password":"pw"}`))
			req.Header.Set("Content-Type", "application/json")
			rec := httptest.NewRecorder()
			engine.ServeHTTP(rec, req)

			require.Equal(t, http.StatusUnauthorized, rec.Code)
			result := decodeResult(t, rec)
			assert.Equal(t, tt.authErr.Code, result.Code)
			assert.Equal(t, tt.authErr.Message, result.Message)
		})
	}
}

func TestAuthHandler_Login_InternalFaultIsOpaque(t *testing.T) {
	svc := newAuthServiceMock(t)
	svc.On("Login", mock.Anything, "alice", "pw").Return(model.LoginResult{}, errors.New("pq: connection refused"))

	engine := newAuthEngine(NewAuth(svc, testutil.MakeNoopLogger()))

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login",
		strings.NewReader(`{"username":"alice","password":"pw"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	result := decodeResult(t, rec)
	assert.Equal(t, response.CodeInternalError, result.Code)
	assert.NotContains(t, rec.Body.String(), "connection refused")
}

func TestAuthHandler_Logout(t *testing.T) {
	svc := newAuthServiceMock(t)
	svc.On("Logout", mock.Anything, "tok-1").Return(nil)

	engine := newAuthEngine(NewAuth(svc, testutil.MakeNoopLogger()))

	req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	req.Header.Set("Authorization", "Bearer tok-1")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, response.CodeSuccess, decodeResult(t, rec).Code)
}

func TestAuthHandler_Logout_WithoutTokenSucceeds(t *testing.T) {
	svc := newAuthServiceMock(t)
	svc.On("Logout", mock.Anything, "").Return(nil)

	engine := newAuthEngine(NewAuth(svc, testutil.MakeNoopLogger()))

	req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthHandler_Refresh_Success(t *testing.T) {
	svc := newAuthServiceMock(t)
	svc.On("Refresh", mock.Anything, "tok-1").Return("tok-2", nil)

	engine := newAuthEngine(NewAuth(svc, testutil.MakeNoopLogger()))

	req := httptest.NewRequest(http.MethodPost, "/api/auth/refresh", nil)
	req.Header.Set("Authorization", "Bearer tok-1")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	result := decodeResult(t, rec)
	assert.Equal(t, response.CodeSuccess, result.Code)

	data, ok := result.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "tok-2", data["token"])
	assert.Equal(t, "Bearer", data["tokenType"])
}

func TestAuthHandler_Refresh_ExpiredToken(t *testing.T) {
	svc := newAuthServiceMock(t)
	svc.On("Refresh", mock.Anything, "old").Return("", model.ErrTokenExpired)

	engine := newAuthEngine(NewAuth(svc, testutil.MakeNoopLogger()))

	req := httptest.NewRequest(http.MethodPost, "/api/auth/refresh", nil)
	req.Header.Set("Authorization", "Bearer old")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	result := decodeResult(t, rec)
	assert.Equal(t, model.ErrTokenExpired.Code, result.Code)
}
