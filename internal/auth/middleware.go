package auth

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/render"
)

// Middleware rejects requests without a valid access token with 401 and stores the
// caller's Principal in the request context otherwise.
func Middleware(issuer *Issuer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")

			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				unauthorized(w, r, "authentication credentials were not provided")
				return
			}

			claims, err := issuer.Parse(token, TypeAccess)
			if err != nil {
				slog.Debug("rejected bearer token", "error", err)
				unauthorized(w, r, "given token not valid for any token type")

				return
			}

			next.ServeHTTP(w, r.WithContext(WithPrincipal(r.Context(), claims.Principal())))
		})
	}
}

func unauthorized(w http.ResponseWriter, r *http.Request, msg string) {
	w.Header().Set("WWW-Authenticate", `Bearer realm="api"`)
	render.Status(r, http.StatusUnauthorized)
	render.JSON(w, r, map[string]string{"error": msg})
}
