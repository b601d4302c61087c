// internal/auth/context.go
package auth

import (
	"context"
	"errors"
	"strings"
)

type contextKey string

const principalKey = contextKey("principal")

// Principal is the caller identity attached to a request. Verified is true only
// when it came from a valid session token; otherwise UserID is the raw id a
// legacy client put in the Authorization header. Rejected marks a bearer token
// that failed verification.
type Principal struct {
	UserID   string
	Verified bool
	Rejected bool
	Claims   *Claims
}

// Сохраняет Principal в контексте
func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey, p)
}

func PrincipalFromContext(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalKey).(Principal)
	return p, ok
}

// Достает userID из контекста
func GetUserIDFromContext(ctx context.Context) (string, error) {
	p, ok := PrincipalFromContext(ctx)
	if !ok || p.UserID == "" {
		return "", errors.New("user ID not found in context")
	}
	return p.UserID, nil
}

func extractTokenFromHeader(header string) string {
	parts := strings.Split(header, " ")
	if len(parts) == 2 && parts[0] == "Bearer" {
		return parts[1]
	}
	return ""
}

// looksLikeJWT отличает сессионный токен от сырого userId старых клиентов
func looksLikeJWT(token string) bool {
	return strings.Count(token, ".") == 2
}
