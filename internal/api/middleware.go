package api

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/sksingtn/trackr-backend/internal/model"
)

// IdentityProvider resolves the request's authenticated principal to an
// admin profile. Session and token management live outside this system;
// the default implementation looks the bearer value up as an admin UUID.
type IdentityProvider interface {
	ResolveAdmin(ctx context.Context, r *http.Request) (*model.AdminProfile, error)
}

type contextKey string

const adminContextKey contextKey = "admin"

// RequireAdmin resolves the principal and rejects requests without an
// active admin identity.
func RequireAdmin(provider IdentityProvider, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			admin, err := provider.ResolveAdmin(r.Context(), r)
			if err != nil {
				logger.Warn("Identity resolution failed", zap.Error(err))
				writeJSON(w, http.StatusUnauthorized, envelope{Status: 0, Data: "Authentication required!"})
				return
			}
			if admin == nil || !admin.Active {
				writeJSON(w, http.StatusUnauthorized, envelope{Status: 0, Data: "Authentication required!"})
				return
			}

			ctx := context.WithValue(r.Context(), adminContextKey, admin)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func adminFrom(r *http.Request) *model.AdminProfile {
	admin, _ := r.Context().Value(adminContextKey).(*model.AdminProfile)
	return admin
}

// RequestLogger logs method, path, and latency of every request.
func RequestLogger(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			next.ServeHTTP(w, r)
			logger.Debug("Request handled",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Duration("took", time.Since(start)))
		})
	}
}
