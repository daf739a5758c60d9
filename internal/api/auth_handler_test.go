package api

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/lingokit/lingo-api/internal/config"
	"github.com/lingokit/lingo-api/internal/domain"
	"github.com/lingokit/lingo-api/internal/service/auth"
	"github.com/lingokit/lingo-api/internal/store"
)

// mockUserStore implements store.UserStore for testing
type mockUserStore struct {
	byEmail   map[string]*domain.User
	createErr error
}

var _ store.UserStore = (*mockUserStore)(nil)

func newMockUserStore() *mockUserStore {
	return &mockUserStore{byEmail: make(map[string]*domain.User)}
}

func (m *mockUserStore) Create(ctx context.Context, user *domain.User) error {
	if m.createErr != nil {
		return m.createErr
	}
	if _, exists := m.byEmail[user.Email]; exists {
		return store.ErrEmailExists
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.MinCost)
	if err != nil {
		return err
	}
	user.HashedPassword = string(hashed)
	user.Password = ""
	m.byEmail[user.Email] = user
	return nil
}

func (m *mockUserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	for _, u := range m.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, store.ErrUserNotFound
}

func (m *mockUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	u, ok := m.byEmail[email]
	if !ok {
		return nil, store.ErrUserNotFound
	}
	return u, nil
}

func (m *mockUserStore) WithTx(tx *sql.Tx) store.UserStore {
	return m
}

func newTestJWTService(t *testing.T) auth.JWTService {
	t.Helper()

	svc, err := auth.NewJWTService(config.AuthConfig{
		JWTSecret:              "test-secret-thirty-two-chars-min!!",
		TokenLifetimeMinutes:   60,
		RefreshLifetimeMinutes: 10080,
	})
	require.NoError(t, err)
	return svc
}

func newTestAuthHandler(t *testing.T) (*AuthHandler, *mockUserStore) {
	t.Helper()

	users := newMockUserStore()
	handler := NewAuthHandler(users, newTestJWTService(t), auth.NewBcryptVerifier())
	return handler, users
}

func postJSON(t *testing.T, handler http.HandlerFunc, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	data, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	handler(w, req)
	return w
}

func validRegisterRequest() RegisterRequest {
	return RegisterRequest{
		Email:         "learner@example.com",
		Password:      "a-valid-password-123",
		LearningBCP47: "es-MX",
		NativeBCP47:   "en-US",
	}
}

func TestRegisterSuccess(t *testing.T) {
	t.Parallel()

	handler, users := newTestAuthHandler(t)

	w := postJSON(t, handler.Register, "/api/auth/register", validRegisterRequest())
	assert.Equal(t, http.StatusCreated, w.Code)

	var resp AuthResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.NotEqual(t, uuid.Nil, resp.UserID)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)

	stored, ok := users.byEmail["learner@example.com"]
	require.True(t, ok)
	assert.Empty(t, stored.Password)
	assert.NotEmpty(t, stored.HashedPassword)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	t.Parallel()

	handler, _ := newTestAuthHandler(t)

	w := postJSON(t, handler.Register, "/api/auth/register", validRegisterRequest())
	require.Equal(t, http.StatusCreated, w.Code)

	w = postJSON(t, handler.Register, "/api/auth/register", validRegisterRequest())
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestRegisterValidation(t *testing.T) {
	t.Parallel()

	handler, _ := newTestAuthHandler(t)

	tests := []struct {
		name   string
		mutate func(*RegisterRequest)
	}{
		{"missing email", func(r *RegisterRequest) { r.Email = "" }},
		{"bad email", func(r *RegisterRequest) { r.Email = "not-an-email" }},
		{"short password", func(r *RegisterRequest) { r.Password = "short" }},
		{"missing learning language", func(r *RegisterRequest) { r.LearningBCP47 = "" }},
		{"missing native language", func(r *RegisterRequest) { r.NativeBCP47 = "" }},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			req := validRegisterRequest()
			tc.mutate(&req)
			w := postJSON(t, handler.Register, "/api/auth/register", req)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestRegisterMalformedBody(t *testing.T) {
	t.Parallel()

	handler, _ := newTestAuthHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", bytes.NewReader([]byte("{not json")))
	w := httptest.NewRecorder()
	handler.Register(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLoginSuccess(t *testing.T) {
	t.Parallel()

	handler, _ := newTestAuthHandler(t)

	w := postJSON(t, handler.Register, "/api/auth/register", validRegisterRequest())
	require.Equal(t, http.StatusCreated, w.Code)

	w = postJSON(t, handler.Login, "/api/auth/login", LoginRequest{
		Email:    "learner@example.com",
		Password: "a-valid-password-123",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	var resp AuthResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.NotEmpty(t, resp.AccessToken)
}

func TestLoginInvalidCredentials(t *testing.T) {
	t.Parallel()

	handler, _ := newTestAuthHandler(t)

	w := postJSON(t, handler.Register, "/api/auth/register", validRegisterRequest())
	require.Equal(t, http.StatusCreated, w.Code)

	// Wrong password and unknown user both return 401 without
	// distinguishing the cause.
	w = postJSON(t, handler.Login, "/api/auth/login", LoginRequest{
		Email:    "learner@example.com",
		Password: "wrong-password-123",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = postJSON(t, handler.Login, "/api/auth/login", LoginRequest{
		Email:    "nobody@example.com",
		Password: "a-valid-password-123",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	t.Parallel()

	handler, _ := newTestAuthHandler(t)

	w := postJSON(t, handler.Register, "/api/auth/register", validRegisterRequest())
	require.Equal(t, http.StatusCreated, w.Code)

	var authResp AuthResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&authResp))

	w = postJSON(t, handler.RefreshToken, "/api/auth/refresh", RefreshTokenRequest{
		RefreshToken: authResp.RefreshToken,
	})
	assert.Equal(t, http.StatusOK, w.Code)

	var resp RefreshTokenResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
}

func TestRefreshTokenRejectsAccessToken(t *testing.T) {
	t.Parallel()

	handler, _ := newTestAuthHandler(t)

	w := postJSON(t, handler.Register, "/api/auth/register", validRegisterRequest())
	require.Equal(t, http.StatusCreated, w.Code)

	var authResp AuthResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&authResp))

	w = postJSON(t, handler.RefreshToken, "/api/auth/refresh", RefreshTokenRequest{
		RefreshToken: authResp.AccessToken,
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
