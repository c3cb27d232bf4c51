// Package middleware HTTP middleware: аутентификация и метрики
package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/m04kA/SMC-SalonService/internal/api/handlers"
	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/pkg/tokens"
)

type contextKey string

const (
	userIDKey contextKey = "userID"
	roleKey   contextKey = "userRole"
)

const (
	msgMissingToken = "требуется токен доступа"
	msgInvalidToken = "невалидный или просроченный токен"
	msgForbidden    = "недостаточно прав для выполнения операции"
)

// Auth проверяет Bearer токен и кладёт ID и роль пользователя в контекст запроса
func Auth(tokenManager *tokens.Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				handlers.RespondUnauthorized(w, msgMissingToken)
				return
			}

			tokenString, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || tokenString == "" {
				handlers.RespondUnauthorized(w, msgInvalidToken)
				return
			}

			claims, err := tokenManager.Parse(tokenString)
			if err != nil {
				handlers.RespondUnauthorized(w, msgInvalidToken)
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, claims.UserID)
			ctx = context.WithValue(ctx, roleKey, claims.Role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRoles пропускает запрос только для перечисленных ролей
// Используется после Auth
func RequireRoles(roles ...domain.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			roleStr, _ := GetUserRole(r.Context())
			role := domain.Role(roleStr)
			for _, allowed := range roles {
				if role == allowed {
					next.ServeHTTP(w, r)
					return
				}
			}
			handlers.RespondForbidden(w, msgForbidden)
		})
	}
}

// GetUserID возвращает ID пользователя, положенный в контекст middleware Auth
func GetUserID(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(userIDKey).(int64)
	return id, ok
}

// GetUserRole возвращает роль пользователя, положенную в контекст middleware Auth
func GetUserRole(ctx context.Context) (string, bool) {
	role, ok := ctx.Value(roleKey).(string)
	return role, ok
}
