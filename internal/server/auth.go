package server

import (
	"net/http"
	"strings"

	"github.com/samber/oops"
)

// CallerResolver resolves the user behind a request. Real authentication is
// an external collaborator; the engine only needs a stable user id.
type CallerResolver interface {
	Resolve(r *http.Request) (string, error)
}

// BearerResolver treats the bearer token as the caller id, which is enough
// for single-node deployments fronted by an authenticating proxy.
type BearerResolver struct{}

// Resolve extracts the caller id from the Authorization header, falling back
// to X-Player-ID.
func (BearerResolver) Resolve(r *http.Request) (string, error) {
	if auth := r.Header.Get("Authorization"); auth != "" {
		if token, ok := strings.CutPrefix(auth, "Bearer "); ok && strings.TrimSpace(token) != "" {
			return strings.TrimSpace(token), nil
		}
	}
	if id := strings.TrimSpace(r.Header.Get("X-Player-ID")); id != "" {
		return id, nil
	}
	return "", oops.Code(CodeUnauthenticated).Errorf("no caller identity on request")
}
