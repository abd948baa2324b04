// Package transport provides the http.RoundTripper that authorizes every
// outbound API call. It is the single place where the bearer token is
// attached, and the single place where a server-side token invalidation
// (expiry, revocation) re-enters the session machine after boot.
package transport

import (
	"context"
	"net/http"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/promogpt/promoctl/internal/logging"
)

// Authorizer wraps a base RoundTripper. When a session token is installed
// it is attached as a bearer credential to every request that does not
// already carry one. A 401 response to a request that carried a token
// fires the unauthorized hook before the response is handed back.
type Authorizer struct {
	base http.RoundTripper
	log  logging.Logger

	mu             sync.RWMutex
	token          string
	onUnauthorized func()
}

func NewAuthorizer(base http.RoundTripper, log logging.Logger) *Authorizer {
	if base == nil {
		base = http.DefaultTransport
	}
	return &Authorizer{base: base, log: log}
}

// OnUnauthorized registers the hook invoked on a 401 to an authorized
// request. Must be called before the first request goes out.
func (a *Authorizer) OnUnauthorized(fn func()) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.onUnauthorized = fn
}

// SetToken installs the token used for subsequent requests.
func (a *Authorizer) SetToken(token string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.token = token
}

// ClearToken removes the installed token.
func (a *Authorizer) ClearToken() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.token = ""
}

// credentialExchange reports whether path is a login or register call.
// Those carry credentials in the body, never a bearer, and a 401 there
// means the submitted credentials were wrong, not that the session expired.
func credentialExchange(path string) bool {
	return strings.HasSuffix(path, "/users/login/") || strings.HasSuffix(path, "/users/register/")
}

func (a *Authorizer) RoundTrip(req *http.Request) (*http.Response, error) {
	out := req.Clone(req.Context())
	if out.Header.Get("X-Request-Id") == "" {
		out.Header.Set("X-Request-Id", uuid.NewString())
	}

	exchange := credentialExchange(out.URL.Path)
	if !exchange && out.Header.Get("Authorization") == "" {
		a.mu.RLock()
		token := a.token
		a.mu.RUnlock()
		if token != "" {
			out.Header.Set("Authorization", "Bearer "+token)
		}
	}
	authorized := !exchange && out.Header.Get("Authorization") != ""

	resp, err := a.base.RoundTrip(out)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode == http.StatusUnauthorized && authorized {
		a.mu.RLock()
		hook := a.onUnauthorized
		a.mu.RUnlock()
		if hook != nil {
			a.log.Debug(context.Background(), "server rejected token",
				"method", req.Method, "path", req.URL.Path)
			hook()
		}
	}
	return resp, nil
}
