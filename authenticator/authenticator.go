package authenticator

import (
	"context"
	"errors"
	"net/http"
	"strings"
)

// ErrNoToken is returned when a request carries no admin token
var ErrNoToken = errors.New("no admin token")

// Claims represents user claims from the ID token
type Claims map[string]interface{}

// Identity is the verified caller behind an admin token
type Identity struct {
	Subject string
	Email   string
	Claims  Claims
}

// Verifier checks raw admin tokens
type Verifier interface {
	Verify(ctx context.Context, rawToken string) (*Identity, error)
}

// TokenFromRequest returns the bearer token of r. JSONP callers cannot set
// headers, so the token query parameter is accepted as well.
func TokenFromRequest(r *http.Request) (string, error) {
	if h := r.Header.Get("Authorization"); h != "" {
		scheme, token, ok := strings.Cut(h, " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
			return "", errors.New("malformed authorization header")
		}
		return strings.TrimSpace(token), nil
	}

	if token := r.URL.Query().Get("token"); token != "" {
		return token, nil
	}

	return "", ErrNoToken
}
