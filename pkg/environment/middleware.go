package environment

import "net/http"

// Middleware stamps every request context with the given environment so
// downstream handlers and log extractors can read it without extra plumbing.
func Middleware(env Environment) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(WithContext(r.Context(), string(env))))
		})
	}
}
