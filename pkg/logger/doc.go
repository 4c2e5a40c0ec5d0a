// Package logger builds context-aware slog loggers through functional
// options and keeps attribute naming consistent across the codebase.
//
// New selects a text or JSON handler, applies static attributes and wraps
// the handler with LogHandlerDecorator so registered ContextExtractor
// callbacks can append request-scoped attributes (request ID, environment)
// on every log call. The WithDevelopment, WithStaging and WithProduction
// presets pick sensible level and format defaults per environment.
//
//	log := logger.New(
//		logger.WithProduction("rosterkit"),
//		logger.WithContextExtractors(requestid.LoggerExtractor()),
//	)
//	log.InfoContext(ctx, "player created",
//		logger.TenantID(tenantID),
//		logger.PlayerID(playerID),
//	)
//
// The attribute constructors in attr.go (Error, Errors, TenantID, GameID and
// friends) return empty attributes for nil values, so callers never need a
// nil check before logging.
package logger
