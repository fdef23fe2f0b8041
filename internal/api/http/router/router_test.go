package router

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/smartsubstation/auth-server/internal/api/http/response"
	"github.com/smartsubstation/auth-server/internal/mocks"
	"github.com/smartsubstation/auth-server/internal/model"
	"github.com/smartsubstation/auth-server/internal/security"
	"github.com/smartsubstation/auth-server/internal/service"
	"github.com/smartsubstation/auth-server/internal/testutil"
	"github.com/smartsubstation/auth-server/internal/token"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type memorySessions struct {
	mu        sync.Mutex
	sessions  map[int64]string
	blacklist map[string]bool
}

func newMemorySessions() *memorySessions {
	return &memorySessions{sessions: map[int64]string{}, blacklist: map[string]bool{}}
}

func (s *memorySessions) SaveSession(_ context.Context, userID int64, token string, _ time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[userID] = token
	return nil
}

func (s *memorySessions) GetSession(_ context.Context, userID int64) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	token, ok := s.sessions[userID]
	if !ok {
		return "", model.ErrNotFound
	}
	return token, nil
}

func (s *memorySessions) DeleteSession(_ context.Context, userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, userID)
	return nil
}

func (s *memorySessions) BlacklistToken(_ context.Context, token string, _ time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.blacklist[token] = true
	return nil
}

func (s *memorySessions) IsBlacklisted(_ context.Context, token string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.blacklist[token], nil
}

// newTestEngine wires real auth and profile services over in-memory stores,
// leaving only users and avatars mocked.
func newTestEngine(t *testing.T) (*gin.Engine, *mocks.UserStore, *mocks.Storage) {
	t.Helper()

	users := mocks.NewUserStore(t)
	avatars := mocks.NewStorage(t)
	sessions := newMemorySessions()
	codec := token.NewJWT("router-test-secret")
	log := testutil.MakeNoopLogger()

	authService := service.NewAuth(users, sessions, codec, security.NewBcryptVerifier(), 30*time.Minute, time.Hour, log)
	profileService := service.NewProfile(users, avatars, log)

	r := New(authService, profileService, codec, sessions, []string{"http://localhost:3000"}, log)
	return r.Register(), users, avatars
}

func seedUser(t *testing.T, users *mocks.UserStore, password string) model.User {
	t.Helper()
	hash, err := security.HashPassword(password)
	require.NoError(t, err)
	user := model.User{
		ID:           42,
		Username:     "alice",
		PasswordHash: hash,
		RealName:     "Alice Zhang",
		RoleID:       2,
		Enabled:      true,
	}
	users.On("GetByUsername", mock.Anything, "alice").Return(user, nil)
	users.On("UpdateLastLogin", mock.Anything, int64(42), mock.AnythingOfType("time.Time")).Return(nil).Maybe()
	return user
}

func login(t *testing.T, engine *gin.Engine, username, password string) *httptest.ResponseRecorder {
	t.Helper()
	body := `{"username":"` + username + `","password":"` + password + `"}`
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	return rec
}

func loginToken(t *testing.T, engine *gin.Engine) string {
	t.Helper()
	rec := login(t, engine, "alice", "correct-pw")
	require.Equal(t, http.StatusOK, rec.Code)

	var result response.Result
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	data, ok := result.Data.(map[string]any)
	require.True(t, ok)
	token, ok := data["token"].(string)
	require.True(t, ok)
	require.NotEmpty(t, token)
	return token
}

func TestRouter_Healthz(t *testing.T) {
	engine, _, _ := newTestEngine(t)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouter_ProtectedRouteWithoutToken(t *testing.T) {
	engine, _, _ := newTestEngine(t)

	req := httptest.NewRequest(http.MethodGet, "/api/users/me", nil)
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)

	var result response.Result
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, response.CodeUnauthorized, result.Code)
}

func TestRouter_LoginThenProfile(t *testing.T) {
	engine, users, _ := newTestEngine(t)
	user := seedUser(t, users, "correct-pw")
	users.On("GetByID", mock.Anything, int64(42)).Return(user, nil)

	tok := loginToken(t, engine)

	req := httptest.NewRequest(http.MethodGet, "/api/users/me", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var result response.Result
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	require.Equal(t, response.CodeSuccess, result.Code)

	data, ok := result.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "alice", data["username"])
	assert.Equal(t, float64(42), data["userId"])
}

func TestRouter_LoginWithBadPassword(t *testing.T) {
	engine, users, _ := newTestEngine(t)
	seedUser(t, users, "correct-pw")

	rec := login(t, engine, "alice", "wrong-pw")
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	var result response.Result
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, model.ErrBadCredentials.Code, result.Code)
}

func TestRouter_LogoutRevokesToken(t *testing.T) {
	engine, users, _ := newTestEngine(t)
	seedUser(t, users, "correct-pw")

	tok := loginToken(t, engine)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	// The revoked token no longer authenticates.
	req = httptest.NewRequest(http.MethodGet, "/api/users/me", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	rec = httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRouter_RefreshRotatesToken(t *testing.T) {
	engine, users, _ := newTestEngine(t)
	user := seedUser(t, users, "correct-pw")
	users.On("GetByID", mock.Anything, int64(42)).Return(user, nil)

	oldToken := loginToken(t, engine)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/refresh", nil)
	req.Header.Set("Authorization", "Bearer "+oldToken)
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var result response.Result
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	data, ok := result.Data.(map[string]any)
	require.True(t, ok)
	newToken, ok := data["token"].(string)
	require.True(t, ok)
	require.NotEqual(t, oldToken, newToken)

	// The old token is revoked, the new one works.
	req = httptest.NewRequest(http.MethodGet, "/api/users/me", nil)
	req.Header.Set("Authorization", "Bearer "+oldToken)
	rec = httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/users/me", nil)
	req.Header.Set("Authorization", "Bearer "+newToken)
	rec = httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}
