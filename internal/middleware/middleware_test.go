package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/moodlens/emotion-service/internal/token"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func echoUsername() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		username, ok := UsernameFromContext(r.Context())
		if !ok {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(username))
	})
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	t.Parallel()

	tokens := token.NewManager("secret", time.Hour)
	tok, err := tokens.Issue("alice")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	rec := httptest.NewRecorder()

	AuthMiddleware(tokens)(echoUsername()).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "alice", rec.Body.String())
}

func TestAuthMiddleware_Rejections(t *testing.T) {
	t.Parallel()

	tokens := token.NewManager("secret", time.Hour)
	expired := token.NewManager("secret", -time.Minute)
	expiredTok, err := expired.Issue("alice")
	require.NoError(t, err)

	cases := map[string]string{
		"no header":      "",
		"no bearer":      "Basic abc",
		"garbage token":  "Bearer not-a-jwt",
		"expired token":  "Bearer " + expiredTok,
		"empty token":    "Bearer ",
		"lowercase word": "bearer abc",
	}
	for name, header := range cases {
		req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		rec := httptest.NewRecorder()

		AuthMiddleware(tokens)(echoUsername()).ServeHTTP(rec, req)

		require.Equal(t, http.StatusUnauthorized, rec.Code, "case %s", name)
		require.Contains(t, rec.Body.String(), "error", "case %s", name)
	}
}

func TestUsernameFromContext_Empty(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	_, ok := UsernameFromContext(req.Context())
	require.False(t, ok)
}

func TestCORS_AddsHeaders(t *testing.T) {
	t.Parallel()

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})
	req := httptest.NewRequest(http.MethodPost, "/analyze", nil)
	rec := httptest.NewRecorder()

	CORS(next).ServeHTTP(rec, req)

	require.Equal(t, http.StatusTeapot, rec.Code)
	require.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	require.NotEmpty(t, rec.Header().Get("Access-Control-Allow-Methods"))
	require.NotEmpty(t, rec.Header().Get("Access-Control-Allow-Headers"))
}

func TestCORS_Preflight(t *testing.T) {
	t.Parallel()

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("preflight must not reach the handler")
	})
	req := httptest.NewRequest(http.MethodOptions, "/analyze", nil)
	rec := httptest.NewRecorder()

	CORS(next).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Empty(t, rec.Body.String())
	require.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestRequestLogger_PassesThrough(t *testing.T) {
	t.Parallel()

	log := logrus.New()
	log.SetOutput(io.Discard)

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte("done"))
	})
	req := httptest.NewRequest(http.MethodPost, "/auth/register", nil)
	rec := httptest.NewRecorder()

	RequestLogger(log)(next).ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	require.Equal(t, "done", rec.Body.String())
}
