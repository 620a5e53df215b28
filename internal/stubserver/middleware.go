package stubserver

import (
	"context"
	"net/http"
	"strings"

	"fe-v2/pkg/logger"
)

// contextKey represents keys used in request context
type contextKey string

// userContextKey is the key for the authenticated user id in context
const userContextKey contextKey = "user_id"

// auth creates the bearer-token authentication middleware
func auth(secret string, log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				writeError(w, http.StatusUnauthorized, "请先登录")
				return
			}

			if !strings.HasPrefix(authHeader, "Bearer ") {
				writeError(w, http.StatusUnauthorized, "无效的认证信息")
				return
			}

			token := strings.TrimPrefix(authHeader, "Bearer ")
			if token == "" {
				writeError(w, http.StatusUnauthorized, "无效的认证信息")
				return
			}

			userID, err := parseToken(secret, token)
			if err != nil {
				log.WithError(err).Debug("Token validation failed")
				writeError(w, http.StatusUnauthorized, "登录已过期，请重新登录")
				return
			}

			ctx := context.WithValue(r.Context(), userContextKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// userID extracts the authenticated user id from the request context
func userID(r *http.Request) int {
	id, _ := r.Context().Value(userContextKey).(int)
	return id
}
