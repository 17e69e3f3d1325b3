package middlewares

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"saarthi/saarthi/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sign(t *testing.T, secret string, claims jwt.Claims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return s
}

func guarded(cfg config.Config) (http.Handler, *string) {
	var seen string
	h := AuthMiddleware(cfg)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if v, ok := r.Context().Value(OperatorKey).(string); ok {
			seen = v
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	return h, &seen
}

func TestAuthMiddleware_OpenWithoutSecret(t *testing.T) {
	h, _ := guarded(config.Config{})
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusNoContent, rr.Code)
}

func TestAuthMiddleware(t *testing.T) {
	cfg := config.Config{JWTSecret: "s3cret"}
	valid := sign(t, "s3cret", jwt.RegisteredClaims{Subject: "ops", ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))})
	expired := sign(t, "s3cret", jwt.RegisteredClaims{Subject: "ops", ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour))})
	wrongKey := sign(t, "other", jwt.RegisteredClaims{Subject: "ops"})
	noSubject := sign(t, "s3cret", jwt.RegisteredClaims{})

	tests := []struct {
		name   string
		header string
		code   int
	}{
		{"valid", "Bearer " + valid, http.StatusNoContent},
		{"missing", "", http.StatusUnauthorized},
		{"not bearer", "Token " + valid, http.StatusUnauthorized},
		{"expired", "Bearer " + expired, http.StatusUnauthorized},
		{"wrong key", "Bearer " + wrongKey, http.StatusUnauthorized},
		{"no subject", "Bearer " + noSubject, http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, seen := guarded(cfg)
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rr := httptest.NewRecorder()
			h.ServeHTTP(rr, req)
			assert.Equal(t, tt.code, rr.Code)
			if tt.code == http.StatusNoContent {
				assert.Equal(t, "ops", *seen)
			}
		})
	}
}
