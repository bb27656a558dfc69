package middleware

import (
	"context"
	"net/http"
	"strings"

	"onboard/internal/requestctx"
	"onboard/internal/session"
	"onboard/internal/transport/http/api"
)

// Session requires a valid session token on every wizard route and puts the
// session id on the request context.
func Session(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				api.Fail(w, http.StatusUnauthorized, "unauthorized", "session token required", GetRequestID(r.Context()))
				return
			}

			claims, err := session.ParseToken(secret, parts[1])
			if err != nil {
				api.Fail(w, http.StatusUnauthorized, "unauthorized", "invalid session token", GetRequestID(r.Context()))
				return
			}

			ctx := requestctx.WithSessionID(r.Context(), claims.SessionID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func GetSessionID(ctx context.Context) string {
	return requestctx.GetSessionID(ctx)
}
