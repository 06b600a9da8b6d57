package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/arboleda/arboleda/internal/config"
	"github.com/arboleda/arboleda/pkg/records"
	"github.com/arboleda/arboleda/pkg/sheets"
	"github.com/arboleda/arboleda/pkg/visits"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func setupRouter(t *testing.T, cfg config.Application, source sheets.Source) (http.Handler, *Dependencies) {
	deps, err := NewDependencies(cfg, source, visits.NewMemoryRepository())
	require.NoError(t, err)
	t.Cleanup(deps.Close)
	return NewRouter(deps), deps
}

func stubSource(cfg config.Application) *sheets.StubSource {
	stub := sheets.NewStubSource()
	for _, r := range []string{
		cfg.Sheets.Ranges.Retreats,
		cfg.Sheets.Ranges.Activities,
		cfg.Sheets.Ranges.Circles,
		cfg.Sheets.Ranges.Birthdays,
	} {
		stub.Grids[r] = records.Grid{}
	}
	return stub
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestRoutes(t *testing.T) {
	cfg := config.Defaults()
	router, _ := setupRouter(t, cfg, stubSource(cfg))

	tests := []struct {
		method     string
		path       string
		wantStatus int
	}{
		{http.MethodGet, "/healthz", http.StatusOK},
		{http.MethodGet, "/api/sheets", http.StatusOK},
		{http.MethodGet, "/api/calendar.ics", http.StatusOK},
		{http.MethodPost, "/api/sheets", http.StatusMethodNotAllowed},
		{http.MethodPost, "/api/admin/unlock", http.StatusNotFound},
		{http.MethodGet, "/api/unknown", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			w := do(t, router, tt.method, tt.path, `{"password":"x"}`)
			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestRoutes_RequestId(t *testing.T) {
	cfg := config.Defaults()
	router, _ := setupRouter(t, cfg, stubSource(cfg))

	w := do(t, router, http.MethodGet, "/healthz", "")
	assert.Len(t, w.Header().Get(requestIdHeader), 36)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(requestIdHeader, "caller-id")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, "caller-id", w.Header().Get(requestIdHeader))
}

func TestRoutes_UnconfiguredSheets(t *testing.T) {
	router, _ := setupRouter(t, config.Defaults(), nil)

	assert.Equal(t, http.StatusServiceUnavailable, do(t, router, http.MethodGet, "/api/sheets", "").Code)
	assert.Equal(t, http.StatusServiceUnavailable, do(t, router, http.MethodGet, "/api/calendar.ics", "").Code)
}

func TestRoutes_VisitsReachAdminPanel(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("retiro2026"), bcrypt.MinCost)
	require.NoError(t, err)
	cfg := config.Defaults()
	cfg.Admin.PasswordHash = string(hash)
	stub := stubSource(cfg)
	router, deps := setupRouter(t, cfg, stub)

	for i := 0; i < 2; i++ {
		require.Equal(t, http.StatusOK, do(t, router, http.MethodGet, "/api/sheets", "").Code)
	}
	// the feed is not a visit
	require.Equal(t, http.StatusOK, do(t, router, http.MethodGet, "/api/calendar.ics", "").Code)

	w := do(t, router, http.MethodPost, "/api/admin/unlock", `{"password":"retiro2026"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"visitCount": 2}`, w.Body.String())

	count, err := deps.VisitsService.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestRoutes_AdminRefreshBypassesCache(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("retiro2026"), bcrypt.MinCost)
	require.NoError(t, err)
	cfg := config.Defaults()
	cfg.Admin.PasswordHash = string(hash)
	stub := stubSource(cfg)
	router, _ := setupRouter(t, cfg, stub)

	do(t, router, http.MethodGet, "/api/sheets", "")
	do(t, router, http.MethodGet, "/api/sheets", "")
	assert.Equal(t, 1, stub.ReadCount(cfg.Sheets.Ranges.Retreats))

	w := do(t, router, http.MethodPost, "/api/admin/refresh", `{"password":"retiro2026"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 2, stub.ReadCount(cfg.Sheets.Ranges.Retreats))
}
