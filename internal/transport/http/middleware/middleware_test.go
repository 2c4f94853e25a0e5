package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTokens map[string]uuid.UUID

func (f fakeTokens) ParseToken(token string) (uuid.UUID, error) {
	id, ok := f[token]
	if !ok {
		return uuid.Nil, errors.New("bad token")
	}
	return id, nil
}

func echoUserID(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte(GetUserID(r.Context()).String()))
}

func TestAuth(t *testing.T) {
	userID := uuid.New()
	sessions := NewSessions("test-session-secret-32-bytes-long", false)
	handler := Auth(fakeTokens{"good": userID}, sessions)(http.HandlerFunc(echoUserID))

	t.Run("bearer token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
		req.Header.Set("Authorization", "Bearer good")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, userID.String(), rec.Body.String())
	})

	t.Run("invalid token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
		req.Header.Set("Authorization", "Bearer bad")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Body.String(), "UNAUTHENTICATED")
	})

	t.Run("no credentials", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/me", nil))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("session cookie", func(t *testing.T) {
		login := httptest.NewRecorder()
		require.NoError(t, sessions.Login(login, httptest.NewRequest(http.MethodPost, "/api/login", nil), userID))
		cookies := login.Result().Cookies()
		require.NotEmpty(t, cookies)

		req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
		for _, c := range cookies {
			req.AddCookie(c)
		}
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, userID.String(), rec.Body.String())
	})
}

func TestSessions_Logout(t *testing.T) {
	sessions := NewSessions("test-session-secret-32-bytes-long", false)

	login := httptest.NewRecorder()
	require.NoError(t, sessions.Login(login, httptest.NewRequest(http.MethodPost, "/", nil), uuid.New()))

	req := httptest.NewRequest(http.MethodPost, "/api/logout", nil)
	for _, c := range login.Result().Cookies() {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	require.NoError(t, sessions.Logout(rec, req))

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.True(t, cookies[0].MaxAge < 0, "cookie must be expired")
}

func TestCORS(t *testing.T) {
	handler := CORS("https://chirp.example")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/api/tweets", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "https://chirp.example", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/tweets", nil))
	assert.Equal(t, http.StatusTeapot, rec.Code)
}
