package environment

import "context"

// Environment names the deployment environment an instance runs in.
type Environment string

const (
	Development Environment = "development"
	Staging     Environment = "staging"
	Production  Environment = "production"
)

type contextKey struct{}

// WithContext stores the environment name in ctx.
func WithContext(ctx context.Context, env string) context.Context {
	return context.WithValue(ctx, contextKey{}, env)
}

// FromContext returns the environment name stored in ctx, or "" when unset.
func FromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	env, _ := ctx.Value(contextKey{}).(string)
	return env
}

// IsProduction reports whether ctx carries the production environment.
// The short form "prod" is accepted as well.
func IsProduction(ctx context.Context) bool {
	env := FromContext(ctx)
	return env == string(Production) || env == "prod"
}

// IsDevelopment reports whether ctx carries the development environment.
// The short form "dev" is accepted as well.
func IsDevelopment(ctx context.Context) bool {
	env := FromContext(ctx)
	return env == string(Development) || env == "dev"
}

// IsStaging reports whether ctx carries the staging environment.
// The short form "stage" is accepted as well.
func IsStaging(ctx context.Context) bool {
	env := FromContext(ctx)
	return env == string(Staging) || env == "stage"
}
