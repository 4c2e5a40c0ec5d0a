// Package slug derives URL-safe identifiers from display names.
package slug

import (
	"strings"
	"unicode"
)

// Option configures slug generation.
type Option func(*config)

type config struct {
	maxLength int
	separator string
}

// MaxLength truncates the slug to at most n runes.
func MaxLength(n int) Option {
	return func(c *config) { c.maxLength = n }
}

// Separator sets the separator (default "-").
func Separator(s string) Option {
	return func(c *config) { c.separator = s }
}

// Make converts a display name into a lowercase URL-safe slug: letters and
// digits pass through, runs of anything else collapse into one separator,
// and leading/trailing separators are trimmed.
//
//	Make("My Hockey Club!") == "my-hockey-club"
//	Make("  Test   Club  ") == "test-club"
func Make(s string, opts ...Option) string {
	cfg := &config{separator: "-"}
	for _, opt := range opts {
		opt(cfg)
	}

	var b strings.Builder
	b.Grow(len(s))

	pendingSep := false
	count := 0
	for _, r := range s {
		if cfg.maxLength > 0 && count >= cfg.maxLength {
			break
		}

		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if pendingSep && b.Len() > 0 {
				if cfg.maxLength > 0 && count+len([]rune(cfg.separator)) >= cfg.maxLength {
					break
				}
				b.WriteString(cfg.separator)
				count += len([]rune(cfg.separator))
			}
			pendingSep = false
			b.WriteRune(unicode.ToLower(r))
			count++
			continue
		}
		pendingSep = true
	}

	return b.String()
}
