package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/pulsedash/pulsedash/internal/users"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeed(t *testing.T) {
	r, _, usersSvc, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/seed", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Database seeded successfully", message(t, w))

	list, err := usersSvc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 2)

	// a second run is idempotent: still exactly the two fixtures
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/seed", nil))
	require.Equal(t, http.StatusOK, w.Code)

	list, err = usersSvc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 2)
}

func TestSeed_RefusedInProduction(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cfg := testConfig()
	cfg.Server.Environment = "production"
	repo := users.NewMemoryRepo()
	svc := users.NewService(repo)

	r := gin.New()
	RegisterSeed(r.Group("/api"), cfg, svc)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/seed", nil))

	require.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "Seed route not available in production", message(t, w))

	list, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, list)
}
