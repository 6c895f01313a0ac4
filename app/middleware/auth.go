package middleware

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/mux"
)

type contextKey string

const callerIDKey contextKey = "callerID"

// RequireAuth verifies the Bearer token and stores the caller's user id in
// the request context. Requests with a missing or invalid credential are
// rejected before any handler runs.
func RequireAuth(secret []byte) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				unauthorized(w, "Authorization header is required")
				return
			}

			tokenString := strings.TrimPrefix(header, "Bearer ")
			if tokenString == header {
				unauthorized(w, "Invalid token format. Use 'Bearer <token>'")
				return
			}

			token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
				}
				return secret, nil
			})
			if err != nil || !token.Valid {
				unauthorized(w, "Invalid or expired token")
				return
			}

			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok {
				unauthorized(w, "Invalid or expired token")
				return
			}
			callerID, ok := claims["user_id"].(string)
			if !ok || callerID == "" {
				unauthorized(w, "Invalid or expired token")
				return
			}

			next.ServeHTTP(w, r.WithContext(
				context.WithValue(r.Context(), callerIDKey, callerID),
			))
		})
	}
}

// CallerID returns the authenticated user id stored by RequireAuth.
func CallerID(r *http.Request) (string, bool) {
	id, ok := r.Context().Value(callerIDKey).(string)
	return id, ok
}

// WithCallerID returns a copy of the request carrying the given caller id,
// for exercising handlers without the middleware.
func WithCallerID(r *http.Request, id string) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), callerIDKey, id))
}

func unauthorized(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"msg": msg})
}
