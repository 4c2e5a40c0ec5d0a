package session

import (
	"net/http"
	"strings"
)

// HeaderTransport carries the session token as a bearer token. The server
// cannot remove a bearer token from the client, so SetToken and ClearToken
// echo through response headers only; API clients manage the token
// themselves.
type HeaderTransport struct {
	header string
}

// NewHeaderTransport creates a header transport. Defaults to
// "Authorization" with a Bearer prefix.
func NewHeaderTransport(header string) *HeaderTransport {
	if header == "" {
		header = "Authorization"
	}
	return &HeaderTransport{header: header}
}

func (t *HeaderTransport) GetToken(r *http.Request) (string, error) {
	value := r.Header.Get(t.header)
	if value == "" {
		return "", ErrSessionNotFound
	}
	if t.header == "Authorization" {
		value = strings.TrimPrefix(value, "Bearer ")
	}
	if value == "" {
		return "", ErrSessionNotFound
	}
	return value, nil
}

func (t *HeaderTransport) SetToken(w http.ResponseWriter, token string, maxAge int) error {
	w.Header().Set("X-Session-Token", token)
	return nil
}

func (t *HeaderTransport) ClearToken(w http.ResponseWriter) error {
	w.Header().Del("X-Session-Token")
	return nil
}
