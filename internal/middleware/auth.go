package middleware

import (
	"net/http"

	"github.com/templui/goalflow/internal/ctxkeys"
	"github.com/templui/goalflow/internal/service"
)

// AuthMiddleware checks for a JWT cookie and adds the user to the context if valid
func AuthMiddleware(authService *service.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(service.AuthCookieName)
			if err != nil || cookie.Value == "" {
				// No cookie, continue without auth
				next.ServeHTTP(w, r)
				return
			}

			user, err := authService.UserFromToken(r.Context(), cookie.Value)
			if err != nil {
				// Invalid token or deleted user, clear cookie and continue
				authService.ClearJWTCookie(w)
				next.ServeHTTP(w, r)
				return
			}

			// Security: Remove password hash from context
			user.PasswordHash = ""

			ctx := ctxkeys.WithUser(r.Context(), user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAuth rejects requests without an authenticated user
func RequireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if ctxkeys.User(r.Context()) == nil {
			writeError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}
		next.ServeHTTP(w, r)
	}
}
