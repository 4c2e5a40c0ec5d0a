package tenant

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// PositionMode controls which player positions a tenant's league uses.
type PositionMode string

const (
	// ThreePosition splits skaters into defence and forwards.
	ThreePosition PositionMode = "three_position"
	// TwoPosition keeps a single generic skater position.
	TwoPosition PositionMode = "two_position"
)

// Tenant represents one organization's isolated partition. It carries the
// league-level defaults new games inherit unless overridden per game.
type Tenant struct {
	ID           uuid.UUID    `json:"id"`
	Name         string       `json:"name"`
	Slug         string       `json:"slug"`
	Subdomain    string       `json:"subdomain,omitempty"`
	Active       bool         `json:"active"`
	PositionMode PositionMode `json:"position_mode"`

	// Team defaults applied to games that don't override them.
	TeamName1  string `json:"team_name_1"`
	TeamName2  string `json:"team_name_2"`
	TeamColor1 string `json:"team_color_1"`
	TeamColor2 string `json:"team_color_2"`

	// Default per-game player requirements.
	GoaltendersNeeded int `json:"goaltenders_needed"`
	DefenceNeeded     int `json:"defence_needed"`
	ForwardsNeeded    int `json:"forwards_needed"`
	SkatersNeeded     int `json:"skaters_needed"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Provider loads a tenant from a data source by its public identifier
// (slug or subdomain). Only active tenants resolve.
type Provider interface {
	// GetByIdentifier returns the active tenant whose slug or subdomain
	// equals the identifier. Returns ErrTenantNotFound when no match.
	GetByIdentifier(ctx context.Context, identifier string) (*Tenant, error)
}
