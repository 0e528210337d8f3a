package routes

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/templui/goalflow/internal/app"
	"github.com/templui/goalflow/internal/config"
)

func newTestHandler(t *testing.T) http.Handler {
	t.Helper()
	a, err := app.New(context.Background(), &config.Config{
		AppEnv:             "development",
		DBDriver:           "sqlite",
		DBConnection:       ":memory:",
		AutoMigrate:        true,
		JWTSecret:          "test-secret",
		JWTExpiry:          time.Hour,
		AuthRateLimit:      2,
		CORSAllowedOrigins: []string{"https://board.example.com"},
	})
	if err != nil {
		t.Fatalf("new app: %v", err)
	}
	t.Cleanup(func() { _ = a.Close() })
	return SetupRoutes(a)
}

func serve(h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(method, target, strings.NewReader(body)))
	return w
}

func TestRoutes(t *testing.T) {
	h := newTestHandler(t)

	cases := []struct {
		name   string
		method string
		target string
		status int
	}{
		{"health", http.MethodGet, "/healthz", http.StatusOK},
		{"goals need auth", http.MethodGet, "/api/goals", http.StatusUnauthorized},
		{"export needs auth", http.MethodGet, "/api/goals/export", http.StatusUnauthorized},
		{"report needs auth", http.MethodGet, "/api/reports/summary", http.StatusUnauthorized},
		{"me without session", http.MethodGet, "/api/auth/me", http.StatusOK},
		{"unknown path", http.MethodGet, "/nope", http.StatusNotFound},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := serve(h, tc.method, tc.target, "")
			if w.Code != tc.status {
				t.Fatalf("expected %d, got %d: %s", tc.status, w.Code, w.Body.String())
			}
			if got := w.Header().Get("Content-Type"); got != "application/json" {
				t.Fatalf("expected JSON response, got %q", got)
			}
			if w.Header().Get("X-Request-ID") == "" {
				t.Fatalf("expected request id header")
			}
		})
	}
}

func TestAuthRoutesAreRateLimited(t *testing.T) {
	h := newTestHandler(t)
	body := `{"email":"ada@example.com","password":"wrong"}`

	for i := 0; i < 2; i++ {
		if w := serve(h, http.MethodPost, "/api/auth/login", body); w.Code != http.StatusUnauthorized {
			t.Fatalf("attempt %d: expected 401, got %d", i, w.Code)
		}
	}
	if w := serve(h, http.MethodPost, "/api/auth/login", body); w.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", w.Code)
	}
}
