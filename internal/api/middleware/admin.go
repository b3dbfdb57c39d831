package middleware

import (
	"net/http"

	"github.com/example/storefront/internal/auth"
)

// AdminAuth guards admin routes with HTTP basic auth checked against a
// bcrypt hash. An empty hash disables the admin routes entirely.
func AdminAuth(passwordHash string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if passwordHash == "" {
				respondError(w, "not found", http.StatusNotFound)
				return
			}

			user, password, ok := r.BasicAuth()
			if !ok || !auth.CheckAdmin(user, password, passwordHash) {
				w.Header().Set("WWW-Authenticate", `Basic realm="storefront admin", charset="UTF-8"`)
				respondError(w, "unauthorized", http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
