package environment

import (
	"context"
	"log/slog"
)

// LoggerExtractor returns a context extractor that emits the environment
// name as an "env" attribute when one is present in the context.
func LoggerExtractor() func(ctx context.Context) (slog.Attr, bool) {
	return func(ctx context.Context) (slog.Attr, bool) {
		env := FromContext(ctx)
		if env == "" {
			return slog.Attr{}, false
		}
		return slog.String("env", env), true
	}
}
