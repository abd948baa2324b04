package api

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrUnavailable means the request never produced a usable response:
	// connection refused, timeout, DNS failure and so on.
	ErrUnavailable = errors.New("server unavailable")

	// ErrMalformedResponse means the server answered 2xx but the body did not
	// contain what the contract promises (e.g. a login response without a
	// token). It is deliberately a subclass of ErrUnavailable so callers that
	// only distinguish "worked" from "didn't" need a single errors.Is check.
	ErrMalformedResponse = fmt.Errorf("%w: malformed response", ErrUnavailable)

	// ErrInvalidCredentials is returned for a 401 on the login endpoint.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrUnauthorized is returned for a 401 on any bearer-protected call.
	// The server no longer accepts the token; the session layer reacts by
	// forcing a logout.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrNotFound is returned for a 404, e.g. an unknown business slug.
	ErrNotFound = errors.New("not found")
)

// ValidationError carries field-keyed messages from a 4xx response,
// in the shape the backend emits them: {"email": ["already taken"], ...}.
type ValidationError struct {
	Fields map[string][]string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + e.FirstMessage()
}

// FirstMessage returns the first message under the first failing field,
// which is what the UI shows. Fields are visited in sorted order so the
// result is deterministic.
func (e *ValidationError) FirstMessage() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if msgs := e.Fields[k]; len(msgs) > 0 && msgs[0] != "" {
			if k == "error" || k == "detail" || k == "non_field_errors" {
				return msgs[0]
			}
			return k + ": " + msgs[0]
		}
	}
	return "invalid request"
}

// parseValidationBody converts a JSON error body into a ValidationError.
// Both DRF field maps and flat {"error": "..."} bodies are handled; values
// may be a string or a list of strings.
func parseValidationBody(raw map[string]any) *ValidationError {
	fields := make(map[string][]string, len(raw))
	for k, v := range raw {
		switch value := v.(type) {
		case string:
			fields[k] = []string{value}
		case []any:
			var msgs []string
			for _, item := range value {
				if s, ok := item.(string); ok {
					msgs = append(msgs, s)
				}
			}
			if len(msgs) > 0 {
				fields[k] = msgs
			}
		}
	}
	if len(fields) == 0 {
		fields["error"] = []string{"invalid request"}
	}
	return &ValidationError{Fields: fields}
}

// joinPath glues a base URL and a request path without doubling slashes.
func joinPath(base, path string) string {
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(path, "/")
}
