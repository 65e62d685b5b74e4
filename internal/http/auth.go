package http

import (
	"context"
	"errors"
	"net/http"
	"strings"
)

type contextKey string

const contextKeyOwner contextKey = "owner"

// ErrUnknownToken is returned by authenticators for tokens they cannot
// resolve.
var ErrUnknownToken = errors.New("unknown token")

// Authenticator resolves an already-issued bearer token to an owner ID.
// Token issuance and credential handling live in the external identity
// service; this boundary only maps tokens to owners.
type Authenticator interface {
	ResolveOwner(ctx context.Context, token string) (string, error)
}

// StaticTokenAuthenticator resolves tokens from a fixed map, as loaded
// from configuration.
type StaticTokenAuthenticator struct {
	tokens map[string]string
}

func NewStaticTokenAuthenticator(tokens map[string]string) *StaticTokenAuthenticator {
	return &StaticTokenAuthenticator{tokens: tokens}
}

func (a *StaticTokenAuthenticator) ResolveOwner(_ context.Context, token string) (string, error) {
	owner, ok := a.tokens[token]
	if !ok {
		return "", ErrUnknownToken
	}
	return owner, nil
}

// requireAuth validates the Authorization header and stores the resolved
// owner ID in the request context. Every denial is the same generic 401.
func requireAuth(auth Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				writeJSONError(w, http.StatusUnauthorized, "unauthorized", "Missing Authorization header")
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || parts[0] != "Bearer" {
				writeJSONError(w, http.StatusUnauthorized, "unauthorized", "Invalid Authorization header format")
				return
			}

			ownerID, err := auth.ResolveOwner(r.Context(), parts[1])
			if err != nil {
				writeJSONError(w, http.StatusUnauthorized, "unauthorized", "Invalid or expired token")
				return
			}

			ctx := context.WithValue(r.Context(), contextKeyOwner, ownerID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ownerFromContext returns the authenticated owner ID. It is only valid
// behind requireAuth.
func ownerFromContext(ctx context.Context) string {
	owner, _ := ctx.Value(contextKeyOwner).(string)
	return owner
}
