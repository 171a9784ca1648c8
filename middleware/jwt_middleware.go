package middleware

import (
	"context"
	"explorerhub/services"
	"explorerhub/utils/errors"
	"net/http"
	"strings"
)

type contextKey string

const (
	tokenKey     contextKey = "token"
	subjectKey   contextKey = "subject"
	requestIDKey contextKey = "requestID"
)

// BearerAuth requires an "Authorization: Bearer <token>" header and checks
// the token with inspector before the request reaches the handler.
func BearerAuth(inspector *services.TokenInspector) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodOptions {
				next.ServeHTTP(w, r)
				return
			}
			tokenString, ok := BearerToken(r)
			if !ok {
				WriteError(w, errors.ErrUnauthorized)
				return
			}
			info, err := inspector.Inspect(tokenString)
			if err != nil {
				WriteError(w, err)
				return
			}

			ctx := context.WithValue(r.Context(), tokenKey, tokenString)
			if info.Subject != "" {
				ctx = context.WithValue(ctx, subjectKey, info.Subject)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// BearerToken extracts the token from the Authorization header.
func BearerToken(r *http.Request) (string, bool) {
	authHeader := r.Header.Get("Authorization")
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return "", false
	}
	token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
	return token, token != ""
}

func TokenFromContext(ctx context.Context) string {
	token, _ := ctx.Value(tokenKey).(string)
	return token
}

func SubjectFromContext(ctx context.Context) string {
	sub, _ := ctx.Value(subjectKey).(string)
	return sub
}
