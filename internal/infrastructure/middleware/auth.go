package middleware

import (
	"encoding/json"
	"errors"
	"net/http"

	"merchops/internal/domain"
	"merchops/internal/ports"

	"github.com/rs/zerolog"
)

// SessionCookieName is the cookie carrying the session token.
const SessionCookieName = "merchops_session"

// RequireAuth resolves the session cookie to an authenticated user and
// stores it in the request context. Requests without a valid session
// receive 401.
func RequireAuth(sessions ports.SessionStore, logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(SessionCookieName)
			if err != nil || cookie.Value == "" {
				respondError(w, http.StatusUnauthorized, "authentication required")
				return
			}

			user, err := sessions.Get(r.Context(), cookie.Value)
			if err != nil {
				if !errors.Is(err, ports.ErrSessionNotFound) {
					logger.Error().Err(err).Msg("Failed to resolve session")
				}
				respondError(w, http.StatusUnauthorized, "authentication required")
				return
			}

			ctx := domain.WithUser(r.Context(), user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole allows only the listed roles past. It must run after
// RequireAuth; a missing user is treated as unauthenticated.
func RequireRole(roles ...domain.Role) func(http.Handler) http.Handler {
	allowed := make(map[domain.Role]struct{}, len(roles))
	for _, role := range roles {
		allowed[role] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user := domain.UserFromContext(r.Context())
			if user == nil {
				respondError(w, http.StatusUnauthorized, "authentication required")
				return
			}
			if _, ok := allowed[user.Role]; !ok {
				respondError(w, http.StatusForbidden, "insufficient role")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireStoreManager allows only roles with store-management rights
// past. It must run after RequireAuth.
func RequireStoreManager() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user := domain.UserFromContext(r.Context())
			if user == nil {
				respondError(w, http.StatusUnauthorized, "authentication required")
				return
			}
			if !user.Role.CanManageStore() {
				respondError(w, http.StatusForbidden, "insufficient role")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
