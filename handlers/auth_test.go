package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pulsedash/pulsedash/internal/auth"
	"github.com/pulsedash/pulsedash/internal/config"
	"github.com/pulsedash/pulsedash/internal/tokens"
	"github.com/pulsedash/pulsedash/internal/users"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{Environment: "development"},
		JWT:    config.JWTConfig{Secret: "handler-test-secret", SessionTTL: 24 * time.Hour},
	}
}

func newTestRouter(t *testing.T) (*gin.Engine, *config.Config, *users.Service, *auth.Service) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := testConfig()
	repo := users.NewMemoryRepo()
	usersSvc := users.NewService(repo)
	authSvc := auth.NewService(cfg, repo)

	r := gin.New()
	api := r.Group("/api")
	NewAuthHandler(cfg, authSvc, usersSvc).Register(api)
	NewUsersHandler(cfg, usersSvc).Register(api)
	RegisterSeed(api, cfg, usersSvc)
	return r, cfg, usersSvc, authSvc
}

func postJSON(r *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	buf, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(buf))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func getWithToken(r *gin.Engine, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func message(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	msg, _ := body["message"].(string)
	return msg
}

func TestSignup(t *testing.T) {
	r, _, _, _ := newTestRouter(t)

	w := postJSON(r, "/api/auth/signup", SignupRequest{
		Name: "Dana Field", Email: "dana@corp.com", Password: "hunter22",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "User created successfully", message(t, w))

	// same email again, any casing of the rest
	w = postJSON(r, "/api/auth/signup", SignupRequest{
		Name: "Dana Again", Email: "dana@corp.com", Password: "other-pass",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "User already exists", message(t, w))
}

func TestSignup_Validation(t *testing.T) {
	r, _, _, _ := newTestRouter(t)

	// missing fields are rejected by binding before the service runs
	w := postJSON(r, "/api/auth/signup", map[string]string{"email": "x@y.com"})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Name, email and password are required", message(t, w))

	// present but too short
	w = postJSON(r, "/api/auth/signup", SignupRequest{
		Name: "Shorty", Email: "x@y.com", Password: "abc",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLogin(t *testing.T) {
	r, cfg, _, _ := newTestRouter(t)

	w := postJSON(r, "/api/auth/signup", SignupRequest{
		Name: "Dana Field", Email: "dana@corp.com", Password: "hunter22",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = postJSON(r, "/api/auth/login", LoginRequest{Email: "dana@corp.com", Password: "hunter22"})
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Token string `json:"token"`
		User  struct {
			Name  string `json:"name"`
			Email string `json:"email"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.NotEmpty(t, body.Token)
	assert.Equal(t, "Dana Field", body.User.Name)
	assert.Equal(t, "dana@corp.com", body.User.Email)

	claims, err := tokens.Parse(cfg, body.Token)
	require.NoError(t, err)
	assert.Equal(t, "dana@corp.com", claims.Email)
}

func TestLogin_RejectionsAreIndistinguishable(t *testing.T) {
	r, _, _, _ := newTestRouter(t)

	w := postJSON(r, "/api/auth/signup", SignupRequest{
		Name: "Dana Field", Email: "dana@corp.com", Password: "hunter22",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	wrongPass := postJSON(r, "/api/auth/login", LoginRequest{Email: "dana@corp.com", Password: "nope-nope"})
	noSuchUser := postJSON(r, "/api/auth/login", LoginRequest{Email: "ghost@corp.com", Password: "hunter22"})

	require.Equal(t, http.StatusBadRequest, wrongPass.Code)
	require.Equal(t, http.StatusBadRequest, noSuchUser.Code)
	assert.Equal(t, wrongPass.Body.String(), noSuchUser.Body.String())
	assert.Equal(t, "Invalid credentials", message(t, wrongPass))
}

func TestMe(t *testing.T) {
	r, _, _, _ := newTestRouter(t)

	w := postJSON(r, "/api/auth/signup", SignupRequest{
		Name: "Dana Field", Email: "dana@corp.com", Password: "hunter22",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	w = postJSON(r, "/api/auth/login", LoginRequest{Email: "dana@corp.com", Password: "hunter22"})
	require.Equal(t, http.StatusOK, w.Code)

	var login struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &login))

	w = getWithToken(r, "/api/auth/me", login.Token)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		User struct {
			Email string `json:"email"`
			Role  string `json:"role"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "dana@corp.com", body.User.Email)
	assert.Equal(t, "employee", body.User.Role)
}

func TestMe_Unauthorized(t *testing.T) {
	r, _, _, _ := newTestRouter(t)

	w := getWithToken(r, "/api/auth/me", "")
	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "No token, authorization denied", message(t, w))

	w = getWithToken(r, "/api/auth/me", "not-a-jwt")
	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Token is not valid", message(t, w))
}

func TestMe_UserRemovedAfterTokenIssued(t *testing.T) {
	r, _, usersSvc, _ := newTestRouter(t)

	w := postJSON(r, "/api/auth/signup", SignupRequest{
		Name: "Dana Field", Email: "dana@corp.com", Password: "hunter22",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	w = postJSON(r, "/api/auth/login", LoginRequest{Email: "dana@corp.com", Password: "hunter22"})
	var login struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &login))

	// wipe the store behind the token's back
	require.NoError(t, usersSvc.Seed(context.Background()))

	w = getWithToken(r, "/api/auth/me", login.Token)
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "User not found", message(t, w))
}
