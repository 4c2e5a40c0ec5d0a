package requestid

import (
	"context"
	"log/slog"
)

// LoggerExtractor returns a context extractor that emits the request ID as a
// "request_id" attribute when one is present in the context.
func LoggerExtractor() func(ctx context.Context) (slog.Attr, bool) {
	return func(ctx context.Context) (slog.Attr, bool) {
		id := FromContext(ctx)
		if id == "" {
			return slog.Attr{}, false
		}
		return slog.String("request_id", id), true
	}
}
