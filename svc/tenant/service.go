// Package tenant manages the tenant lifecycle: registration with slug and
// subdomain claims, league settings, and soft deactivation. Request-time
// resolution lives in pkg/tenant; this service owns the records it resolves.
package tenant

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/rosterkit/pkg/slug"
	tenantpkg "github.com/dmitrymomot/rosterkit/pkg/tenant"
)

const maxSlugLength = 50

// Storage defines the persistence operations the tenant service requires.
type Storage interface {
	Create(ctx context.Context, t *tenantpkg.Tenant) error
	GetByID(ctx context.Context, id uuid.UUID) (*tenantpkg.Tenant, error)
	// GetByIdentifier returns the active tenant whose slug or subdomain
	// matches. Must return tenantpkg.ErrTenantNotFound when absent.
	GetByIdentifier(ctx context.Context, identifier string) (*tenantpkg.Tenant, error)
	// IdentifierExists reports whether any tenant, active or not, already
	// claims the identifier as slug or subdomain.
	IdentifierExists(ctx context.Context, identifier string) (bool, error)
	Update(ctx context.Context, t *tenantpkg.Tenant) error
}

// Service manages tenant records.
type Service struct {
	storage Storage
	logger  *slog.Logger
}

// Option configures a Service during construction.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// NewService creates a tenant lifecycle service.
func NewService(storage Storage, opts ...Option) *Service {
	s := &Service{
		storage: storage,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// RegisterParams describes a new tenant registration.
type RegisterParams struct {
	Name         string
	Slug         string                 // optional, derived from Name when empty
	Subdomain    string                 // optional
	PositionMode tenantpkg.PositionMode // defaults to ThreePosition
}

// Register creates a new active tenant. The slug is derived from the name;
// both slug and subdomain must be unclaimed across all tenants, including
// deactivated ones, so old identifiers never get recycled.
func (s *Service) Register(ctx context.Context, params RegisterParams) (*tenantpkg.Tenant, error) {
	name := strings.TrimSpace(params.Name)
	if name == "" {
		return nil, ErrInvalidName
	}

	slugValue := strings.ToLower(strings.TrimSpace(params.Slug))
	if slugValue == "" {
		slugValue = slug.Make(name, slug.MaxLength(maxSlugLength))
	}
	if slugValue == "" {
		return nil, ErrInvalidName
	}
	if !tenantpkg.IsValidIdentifier(slugValue) {
		return nil, fmt.Errorf("%w: %s", ErrIdentifierReserved, slugValue)
	}

	subdomain := strings.ToLower(strings.TrimSpace(params.Subdomain))
	if subdomain != "" && !tenantpkg.IsValidIdentifier(subdomain) {
		return nil, fmt.Errorf("%w: %s", ErrIdentifierReserved, subdomain)
	}

	mode := params.PositionMode
	if mode == "" {
		mode = tenantpkg.ThreePosition
	}
	if mode != tenantpkg.ThreePosition && mode != tenantpkg.TwoPosition {
		return nil, fmt.Errorf("%w: %s", ErrInvalidPositionMode, mode)
	}

	for _, identifier := range []string{slugValue, subdomain} {
		if identifier == "" {
			continue
		}
		taken, err := s.storage.IdentifierExists(ctx, identifier)
		if err != nil {
			return nil, fmt.Errorf("failed to check identifier: %w", err)
		}
		if taken {
			return nil, fmt.Errorf("%w: %s", ErrIdentifierTaken, identifier)
		}
	}

	now := time.Now().UTC()
	t := &tenantpkg.Tenant{
		ID:           uuid.New(),
		Name:         name,
		Slug:         slugValue,
		Subdomain:    subdomain,
		Active:       true,
		PositionMode: mode,

		TeamName1:  "Team 1",
		TeamName2:  "Team 2",
		TeamColor1: "blue",
		TeamColor2: "red",

		GoaltendersNeeded: 2,
		DefenceNeeded:     4,
		ForwardsNeeded:    6,
		SkatersNeeded:     10,

		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.storage.Create(ctx, t); err != nil {
		return nil, fmt.Errorf("failed to create tenant: %w", err)
	}

	s.logger.InfoContext(ctx, "tenant registered",
		slog.String("tenant_id", t.ID.String()),
		slog.String("slug", t.Slug),
	)

	return t, nil
}

// GetByID returns the tenant with the given ID.
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*tenantpkg.Tenant, error) {
	return s.storage.GetByID(ctx, id)
}

// Availability reports whether a prospective name and subdomain are free.
type Availability struct {
	GeneratedSlug      string `json:"generated_slug,omitempty"`
	NameAvailable      bool   `json:"name_available"`
	SubdomainValid     bool   `json:"subdomain_valid"`
	SubdomainAvailable bool   `json:"subdomain_available"`
}

// CheckAvailability previews the slug a name would yield and whether the
// slug and subdomain are unclaimed. Either argument may be empty.
func (s *Service) CheckAvailability(ctx context.Context, name, subdomain string) (Availability, error) {
	result := Availability{SubdomainValid: true, SubdomainAvailable: true}

	if name = strings.TrimSpace(name); name != "" {
		result.GeneratedSlug = slug.Make(name, slug.MaxLength(maxSlugLength))
		if tenantpkg.IsValidIdentifier(result.GeneratedSlug) {
			taken, err := s.storage.IdentifierExists(ctx, result.GeneratedSlug)
			if err != nil {
				return Availability{}, fmt.Errorf("failed to check slug: %w", err)
			}
			result.NameAvailable = !taken
		}
	}

	if subdomain = strings.ToLower(strings.TrimSpace(subdomain)); subdomain != "" {
		if !tenantpkg.IsValidIdentifier(subdomain) {
			result.SubdomainValid = false
			result.SubdomainAvailable = false
			return result, nil
		}
		taken, err := s.storage.IdentifierExists(ctx, subdomain)
		if err != nil {
			return Availability{}, fmt.Errorf("failed to check subdomain: %w", err)
		}
		result.SubdomainAvailable = !taken
	}

	return result, nil
}

// Rename changes the tenant's display name. The slug follows the name only
// while it is still the one auto-derived from the previous name; a slug the
// tenant customized (or that predates a rename) is left untouched so
// bookmarked URLs keep working.
func (s *Service) Rename(ctx context.Context, id uuid.UUID, name string) (*tenantpkg.Tenant, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrInvalidName
	}

	t, err := s.storage.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if t.Slug == slug.Make(t.Name, slug.MaxLength(maxSlugLength)) {
		newSlug := slug.Make(name, slug.MaxLength(maxSlugLength))
		if newSlug == "" {
			return nil, ErrInvalidName
		}
		if newSlug != t.Slug {
			if !tenantpkg.IsValidIdentifier(newSlug) {
				return nil, fmt.Errorf("%w: %s", ErrIdentifierReserved, newSlug)
			}
			taken, err := s.storage.IdentifierExists(ctx, newSlug)
			if err != nil {
				return nil, fmt.Errorf("failed to check slug: %w", err)
			}
			if taken {
				return nil, fmt.Errorf("%w: %s", ErrIdentifierTaken, newSlug)
			}
			t.Slug = newSlug
		}
	}

	t.Name = name
	t.UpdatedAt = time.Now().UTC()

	if err := s.storage.Update(ctx, t); err != nil {
		return nil, fmt.Errorf("failed to update tenant: %w", err)
	}
	return t, nil
}

// SettingsParams updates league configuration. Nil fields stay unchanged.
type SettingsParams struct {
	PositionMode *tenantpkg.PositionMode
	TeamName1    *string
	TeamName2    *string
	TeamColor1   *string
	TeamColor2   *string

	GoaltendersNeeded *int
	DefenceNeeded     *int
	ForwardsNeeded    *int
	SkatersNeeded     *int
}

// UpdateSettings applies partial league configuration changes.
func (s *Service) UpdateSettings(ctx context.Context, id uuid.UUID, params SettingsParams) (*tenantpkg.Tenant, error) {
	t, err := s.storage.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if params.PositionMode != nil {
		mode := *params.PositionMode
		if mode != tenantpkg.ThreePosition && mode != tenantpkg.TwoPosition {
			return nil, fmt.Errorf("%w: %s", ErrInvalidPositionMode, mode)
		}
		t.PositionMode = mode
	}
	if params.TeamName1 != nil {
		t.TeamName1 = truncate(*params.TeamName1, 50)
	}
	if params.TeamName2 != nil {
		t.TeamName2 = truncate(*params.TeamName2, 50)
	}
	if params.TeamColor1 != nil {
		t.TeamColor1 = truncate(*params.TeamColor1, 20)
	}
	if params.TeamColor2 != nil {
		t.TeamColor2 = truncate(*params.TeamColor2, 20)
	}
	if params.GoaltendersNeeded != nil {
		t.GoaltendersNeeded = *params.GoaltendersNeeded
	}
	if params.DefenceNeeded != nil {
		t.DefenceNeeded = *params.DefenceNeeded
	}
	if params.ForwardsNeeded != nil {
		t.ForwardsNeeded = *params.ForwardsNeeded
	}
	if params.SkatersNeeded != nil {
		t.SkatersNeeded = *params.SkatersNeeded
	}

	t.UpdatedAt = time.Now().UTC()

	if err := s.storage.Update(ctx, t); err != nil {
		return nil, fmt.Errorf("failed to update tenant: %w", err)
	}
	return t, nil
}

// Deactivate soft-disables a tenant. Its slug and subdomain stay claimed,
// but request resolution no longer matches it.
func (s *Service) Deactivate(ctx context.Context, id uuid.UUID) error {
	t, err := s.storage.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !t.Active {
		return nil
	}

	t.Active = false
	t.UpdatedAt = time.Now().UTC()

	if err := s.storage.Update(ctx, t); err != nil {
		return fmt.Errorf("failed to deactivate tenant: %w", err)
	}

	s.logger.InfoContext(ctx, "tenant deactivated",
		slog.String("tenant_id", t.ID.String()),
		slog.String("slug", t.Slug),
	)
	return nil
}

// GetByIdentifier implements tenantpkg.Provider so the service can back the
// resolution middleware directly.
func (s *Service) GetByIdentifier(ctx context.Context, identifier string) (*tenantpkg.Tenant, error) {
	return s.storage.GetByIdentifier(ctx, identifier)
}

func truncate(s string, n int) string {
	if len(s) > n {
		return s[:n]
	}
	return s
}

var _ tenantpkg.Provider = (*Service)(nil)
