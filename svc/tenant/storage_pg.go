package tenant

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dmitrymomot/rosterkit/pkg/pg"
	tenantpkg "github.com/dmitrymomot/rosterkit/pkg/tenant"
)

// PGStorage persists tenants in Postgres.
type PGStorage struct {
	pool *pgxpool.Pool
}

// NewPGStorage creates a Postgres-backed tenant storage.
func NewPGStorage(pool *pgxpool.Pool) *PGStorage {
	return &PGStorage{pool: pool}
}

// subdomain is nullable in the schema but an empty string in Go.
const tenantColumns = `id, name, slug, COALESCE(subdomain, ''), active, position_mode,
	team_name_1, team_name_2, team_color_1, team_color_2,
	goaltenders_needed, defence_needed, forwards_needed, skaters_needed,
	created_at, updated_at`

func scanTenant(row pgx.Row) (*tenantpkg.Tenant, error) {
	var t tenantpkg.Tenant
	err := row.Scan(
		&t.ID, &t.Name, &t.Slug, &t.Subdomain, &t.Active, &t.PositionMode,
		&t.TeamName1, &t.TeamName2, &t.TeamColor1, &t.TeamColor2,
		&t.GoaltendersNeeded, &t.DefenceNeeded, &t.ForwardsNeeded, &t.SkatersNeeded,
		&t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if pg.IsNotFoundError(err) {
			return nil, tenantpkg.ErrTenantNotFound
		}
		return nil, fmt.Errorf("failed to scan tenant: %w", err)
	}
	return &t, nil
}

func (s *PGStorage) Create(ctx context.Context, t *tenantpkg.Tenant) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO tenants (
			id, name, slug, subdomain, active, position_mode,
			team_name_1, team_name_2, team_color_1, team_color_2,
			goaltenders_needed, defence_needed, forwards_needed, skaters_needed,
			created_at, updated_at
		)
		VALUES ($1, $2, $3, NULLIF($4, ''), $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`,
		t.ID, t.Name, t.Slug, t.Subdomain, t.Active, t.PositionMode,
		t.TeamName1, t.TeamName2, t.TeamColor1, t.TeamColor2,
		t.GoaltendersNeeded, t.DefenceNeeded, t.ForwardsNeeded, t.SkatersNeeded,
		t.CreatedAt, t.UpdatedAt,
	)
	if err != nil {
		if pg.IsDuplicateKeyError(err) {
			return fmt.Errorf("%w: %s", ErrIdentifierTaken, t.Slug)
		}
		return fmt.Errorf("failed to insert tenant: %w", err)
	}
	return nil
}

func (s *PGStorage) GetByID(ctx context.Context, id uuid.UUID) (*tenantpkg.Tenant, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT `+tenantColumns+`
		FROM tenants WHERE id = $1`, id)
	return scanTenant(row)
}

func (s *PGStorage) GetByIdentifier(ctx context.Context, identifier string) (*tenantpkg.Tenant, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT `+tenantColumns+`
		FROM tenants
		WHERE active AND (slug = $1 OR subdomain = $1)`, identifier)
	return scanTenant(row)
}

func (s *PGStorage) IdentifierExists(ctx context.Context, identifier string) (bool, error) {
	var exists bool
	err := s.pool.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM tenants WHERE slug = $1 OR subdomain = $1
		)`, identifier).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check identifier: %w", err)
	}
	return exists, nil
}

func (s *PGStorage) Update(ctx context.Context, t *tenantpkg.Tenant) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE tenants SET
			name = $2, slug = $3, subdomain = NULLIF($4, ''), active = $5,
			position_mode = $6,
			team_name_1 = $7, team_name_2 = $8, team_color_1 = $9, team_color_2 = $10,
			goaltenders_needed = $11, defence_needed = $12, forwards_needed = $13, skaters_needed = $14,
			updated_at = $15
		WHERE id = $1`,
		t.ID, t.Name, t.Slug, t.Subdomain, t.Active, t.PositionMode,
		t.TeamName1, t.TeamName2, t.TeamColor1, t.TeamColor2,
		t.GoaltendersNeeded, t.DefenceNeeded, t.ForwardsNeeded, t.SkatersNeeded,
		t.UpdatedAt,
	)
	if err != nil {
		if pg.IsDuplicateKeyError(err) {
			return fmt.Errorf("%w: %s", ErrIdentifierTaken, t.Slug)
		}
		return fmt.Errorf("failed to update tenant: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return tenantpkg.ErrTenantNotFound
	}
	return nil
}

var _ Storage = (*PGStorage)(nil)
