package session

import "time"

// Config holds session manager configuration.
type Config struct {
	CookieName      string        `env:"SESSION_COOKIE_NAME" envDefault:"session_token"`
	SecureCookies   bool          `env:"SESSION_SECURE_COOKIES" envDefault:"true"`
	AnonymousTTL    time.Duration `env:"SESSION_ANONYMOUS_TTL" envDefault:"24h"`
	AuthTTL         time.Duration `env:"SESSION_AUTH_TTL" envDefault:"720h"`
	CleanupInterval time.Duration `env:"SESSION_CLEANUP_INTERVAL" envDefault:"5m"`
}

// DefaultConfig returns the default session configuration.
func DefaultConfig() Config {
	return Config{
		CookieName:      "session_token",
		SecureCookies:   true,
		AnonymousTTL:    24 * time.Hour,
		AuthTTL:         720 * time.Hour,
		CleanupInterval: defaultCleanupInterval,
	}
}

// ttl returns the session lifetime for the given authentication state.
func (c Config) ttl(authenticated bool) time.Duration {
	if authenticated {
		return c.AuthTTL
	}
	return c.AnonymousTTL
}
