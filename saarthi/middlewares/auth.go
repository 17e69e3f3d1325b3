package middlewares

import (
	"context"
	"net/http"
	"strings"

	"saarthi/saarthi/config"

	"github.com/golang-jwt/jwt/v5"
)

type contextKey string

const OperatorKey contextKey = "operator"

// AuthMiddleware guards operator routes with an HS256 bearer token. With no
// JWT_SECRET configured the routes stay open.
func AuthMiddleware(cfg config.Config) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if cfg.JWTSecret == "" {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			auth := r.Header.Get("Authorization")
			parts := strings.Split(auth, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
			token, err := jwt.Parse(parts[1], func(token *jwt.Token) (interface{}, error) {
				if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, jwt.ErrSignatureInvalid
				}
				return []byte(cfg.JWTSecret), nil
			})
			if err != nil || !token.Valid {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
			subject, err := token.Claims.GetSubject()
			if err != nil || subject == "" {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
			ctx := context.WithValue(r.Context(), OperatorKey, subject)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
