package admin

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/arboleda/arboleda/internal/rest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type stubCounter struct {
	count int64
}

func (s stubCounter) Count(context.Context) (int64, error) {
	return s.count, nil
}

type stubRefresher struct {
	calls int
	err   error
}

func (s *stubRefresher) Refresh(context.Context) error {
	s.calls++
	return s.err
}

func hashFor(t *testing.T, password string) string {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func setupHandlerTest(t *testing.T, passwordHash string) (*Handler, *stubRefresher) {
	refresher := &stubRefresher{}
	service := NewService(passwordHash, stubCounter{count: 42}, refresher)
	return NewHandler(service), refresher
}

func post(handler http.HandlerFunc, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/admin", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	handler(w, req)
	return w
}

func TestHandler_Unlock(t *testing.T) {
	handler, _ := setupHandlerTest(t, hashFor(t, "retiro2026"))

	tests := []struct {
		name       string
		body       string
		wantStatus int
	}{
		{"correct password", `{"password":"retiro2026"}`, http.StatusOK},
		{"wrong password", `{"password":"nope"}`, http.StatusUnauthorized},
		{"empty password", `{"password":""}`, http.StatusUnauthorized},
		{"malformed body", `password`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := post(handler.Unlock, tt.body)
			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestHandler_Unlock_ReturnsVisitCount(t *testing.T) {
	handler, _ := setupHandlerTest(t, hashFor(t, "retiro2026"))

	w := post(handler.Unlock, `{"password":"retiro2026"}`)

	require.Equal(t, http.StatusOK, w.Code)
	var panel Panel
	require.NoError(t, json.NewDecoder(w.Body).Decode(&panel))
	assert.Equal(t, int64(42), panel.VisitCount)
}

func TestHandler_DisabledPanel(t *testing.T) {
	handler, refresher := setupHandlerTest(t, "")

	assert.Equal(t, http.StatusNotFound, post(handler.Unlock, `{"password":"x"}`).Code)
	assert.Equal(t, http.StatusNotFound, post(handler.Refresh, `{"password":"x"}`).Code)
	assert.Zero(t, refresher.calls)
}

func TestHandler_Refresh(t *testing.T) {
	handler, refresher := setupHandlerTest(t, hashFor(t, "retiro2026"))

	assert.Equal(t, http.StatusUnauthorized, post(handler.Refresh, `{"password":"nope"}`).Code)
	assert.Zero(t, refresher.calls)

	w := post(handler.Refresh, `{"password":"retiro2026"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, refresher.calls)
}

func TestHandler_RefreshFailure(t *testing.T) {
	handler, refresher := setupHandlerTest(t, hashFor(t, "retiro2026"))
	refresher.err = errors.New("spreadsheet unreachable")

	w := post(handler.Refresh, `{"password":"retiro2026"}`)

	assert.Equal(t, http.StatusBadGateway, w.Code)
	var resp rest.ErrorResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Contains(t, resp.Details, "spreadsheet unreachable")
}

func TestService_UnusableHash(t *testing.T) {
	service := NewService("not-a-bcrypt-hash", stubCounter{}, &stubRefresher{})

	_, err := service.Unlock(context.Background(), "anything")

	assert.ErrorIs(t, err, ErrWrongPassword)
}

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("retiro2026")
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("retiro2026")))

	_, err = HashPassword("")
	assert.Error(t, err)
}
