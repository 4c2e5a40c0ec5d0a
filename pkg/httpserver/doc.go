// Package httpserver wraps net/http with graceful shutdown, environment
// driven configuration, lifecycle hooks and a combined liveness/readiness
// handler.
//
// Build a Server with New and functional options, or with NewFromConfig from
// an env-loaded Config, then call Run with the router. Run blocks until the
// context is cancelled or SIGINT/SIGTERM arrives, drains in-flight requests
// within the shutdown timeout and returns. Startup and shutdown failures are
// wrapped with the ErrStart and ErrShutdown sentinels for errors.Is checks.
//
//	srv := httpserver.NewFromConfig(cfg.HTTP, httpserver.WithLogger(log))
//	if err := srv.Run(ctx, router); err != nil {
//		log.Error("server stopped", logger.Error(err))
//	}
//
// HealthCheckHandler doubles as a probe endpoint: with no checks it reports
// liveness, with dependency checks it reports readiness.
package httpserver
