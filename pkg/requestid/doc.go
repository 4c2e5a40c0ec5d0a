// Package requestid assigns a correlation ID to every HTTP request and
// propagates it through context, response headers and structured logs.
//
// Middleware reuses a valid client-supplied "X-Request-ID" header or
// generates a UUID, stores the value in the request context and echoes it
// back to the client. FromContext reads it anywhere downstream, and
// LoggerExtractor injects it into slog records as "request_id".
//
// The package never returns errors; a missing or malformed client ID is
// silently replaced with a generated one.
package requestid
