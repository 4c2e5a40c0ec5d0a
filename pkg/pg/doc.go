// Package pg bootstraps the PostgreSQL layer: a pgx/v5 connection pool with
// startup retries, goose schema migrations, a health check closure, and
// error classification helpers (not-found, duplicate key, foreign key) the
// store implementations build on.
package pg
