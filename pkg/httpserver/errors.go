package httpserver

import "errors"

var (
	// ErrStart wraps any failure to bring the server up.
	ErrStart = errors.New("failed to start HTTP server")
	// ErrShutdown wraps a graceful shutdown that did not complete cleanly.
	ErrShutdown = errors.New("failed to shutdown HTTP server gracefully")
)
