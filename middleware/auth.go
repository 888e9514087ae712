package middleware

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/blogem/form-intake/authenticator"
	"github.com/blogem/form-intake/userctx"
)

// AdminToken verifies the request's admin token, if it carries one, and adds
// the verified subject to the request context. Requests without a valid token
// continue anonymously; handlers decide which actions need an admin.
func AdminToken(verifier authenticator.Verifier, log *slog.Logger) func(http.Handler) http.Handler {
	log = log.With("component", "admin_auth")
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if verifier == nil {
				next.ServeHTTP(w, r)
				return
			}

			raw, err := authenticator.TokenFromRequest(r)
			if errors.Is(err, authenticator.ErrNoToken) {
				next.ServeHTTP(w, r)
				return
			}
			if err != nil {
				log.Warn("rejected admin token", "path", r.URL.Path, "error", err)
				next.ServeHTTP(w, r)
				return
			}

			identity, err := verifier.Verify(r.Context(), raw)
			if err != nil {
				log.Warn("rejected admin token", "path", r.URL.Path, "error", err)
				next.ServeHTTP(w, r)
				return
			}

			ctx := userctx.SetAdmin(r.Context(), identity.Subject)
			ctx = userctx.SetAdminEmail(ctx, identity.Email)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
