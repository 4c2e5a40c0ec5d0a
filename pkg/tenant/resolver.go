package tenant

import (
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strings"
)

const (
	// MaxIdentifierLength keeps identifiers DNS-compatible and bounds
	// lookup keys.
	MaxIdentifierLength = 63
)

// identifierPattern accepts DNS-safe labels: alphanumeric start, hyphens
// allowed inside. The same pattern covers slugs and subdomains.
var identifierPattern = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9-]*$`)

// reservedLabels are host labels and path prefixes that never identify a
// tenant: shared infrastructure names and anything a browser or tool hits
// before a tenant exists.
var reservedLabels = map[string]struct{}{
	"www":       {},
	"api":       {},
	"admin":     {},
	"app":       {},
	"mail":      {},
	"localhost": {},
}

// Resolver extracts a tenant identifier from an HTTP request.
// Returns empty string when the request carries none, error when the
// extracted value is malformed.
type Resolver func(r *http.Request) (string, error)

func isValidIdentifier(id string) bool {
	if id == "" || len(id) > MaxIdentifierLength {
		return false
	}
	return identifierPattern.MatchString(id)
}

// IsValidIdentifier reports whether id is acceptable as a tenant slug or
// subdomain: DNS-safe, not reserved, and within the length bound.
func IsValidIdentifier(id string) bool {
	return isValidIdentifier(id) && !isReserved(strings.ToLower(id))
}

func isReserved(label string) bool {
	if _, ok := reservedLabels[label]; ok {
		return true
	}
	// Numeric labels are IP address octets or ports, never tenants.
	return isNumeric(label)
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// NewSubdomainResolver extracts the tenant identifier from the first host
// label, optionally stripping a configured base-domain suffix first.
// Reserved labels and bare domains resolve to nothing.
func NewSubdomainResolver(suffix string) Resolver {
	return func(req *http.Request) (string, error) {
		host := strings.ToLower(req.Host)

		// Remove port if present
		if idx := strings.LastIndex(host, ":"); idx != -1 {
			host = host[:idx]
		}

		if suffix != "" {
			// With a configured base domain, only hosts strictly under it
			// carry a subdomain. The apex and foreign hosts never resolve.
			if !strings.HasSuffix(host, suffix) || len(host) <= len(suffix) {
				return "", nil
			}
			host = host[:len(host)-len(suffix)]
		} else if !strings.Contains(host, ".") {
			// Bare host such as "localhost" never carries a subdomain.
			return "", nil
		}

		label := strings.Split(host, ".")[0]
		if label == "" || isReserved(label) {
			return "", nil
		}

		// Without a suffix we need subdomain.domain.tld to be sure the
		// first label is actually a subdomain.
		if suffix == "" && len(strings.Split(host, ".")) < 3 {
			return "", nil
		}

		if !isValidIdentifier(label) {
			return "", fmt.Errorf("%w: subdomain %q", ErrInvalidIdentifier, label)
		}
		return label, nil
	}
}

// NewPathResolver extracts the tenant identifier from the first non-empty
// URL path segment, skipping reserved prefixes such as "api" and "admin".
func NewPathResolver() Resolver {
	return func(req *http.Request) (string, error) {
		path := strings.Trim(req.URL.Path, "/")
		if path == "" {
			return "", nil
		}

		segment := strings.Split(path, "/")[0]
		if segment == "" || isReserved(strings.ToLower(segment)) {
			return "", nil
		}

		if !isValidIdentifier(segment) {
			return "", fmt.Errorf("%w: path segment %q", ErrInvalidIdentifier, segment)
		}
		return strings.ToLower(segment), nil
	}
}

// NewHeaderResolver extracts the tenant identifier from an HTTP header.
// Defaults to "X-Tenant-ID" when headerName is empty.
func NewHeaderResolver(headerName string) Resolver {
	if headerName == "" {
		headerName = "X-Tenant-ID"
	}

	return func(req *http.Request) (string, error) {
		value := strings.TrimSpace(req.Header.Get(headerName))
		if value == "" {
			return "", nil
		}
		if !isValidIdentifier(value) {
			return "", fmt.Errorf("%w: header value %q", ErrInvalidIdentifier, value)
		}
		return value, nil
	}
}

// NewCompositeResolver tries each resolver in order and returns the first
// non-empty identifier. Subdomain-then-path mirrors the usual deployment
// where both schemes are enabled.
func NewCompositeResolver(resolvers ...Resolver) Resolver {
	return func(req *http.Request) (string, error) {
		var errs []error
		for _, resolve := range resolvers {
			id, err := resolve(req)
			if err != nil {
				errs = append(errs, err)
				continue
			}
			if id != "" {
				return id, nil
			}
		}
		if len(errs) > 0 {
			return "", errors.Join(errs...)
		}
		return "", nil
	}
}
