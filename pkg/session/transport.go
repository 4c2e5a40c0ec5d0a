package session

import "net/http"

// Transport moves the session token between the client and the server.
type Transport interface {
	// GetToken extracts the token from the request.
	GetToken(r *http.Request) (string, error)

	// SetToken delivers the token to the client.
	SetToken(w http.ResponseWriter, token string, maxAge int) error

	// ClearToken removes the token from the client.
	ClearToken(w http.ResponseWriter) error
}
