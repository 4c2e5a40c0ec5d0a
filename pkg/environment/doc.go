// Package environment propagates the deployment environment name
// (development, staging, production) through context.Context, HTTP
// middleware and structured logs.
//
// Attach the environment with Middleware or WithContext, read it back with
// FromContext, and branch on it with the IsDevelopment, IsStaging and
// IsProduction predicates. LoggerExtractor plugs the value into slog-based
// loggers as an "env" attribute.
//
// All helpers are allocation-free and never return errors; a missing value
// reads back as the empty string.
package environment
