package roster

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/rosterkit/pkg/scope"
	"github.com/dmitrymomot/rosterkit/pkg/tenant"
)

// CreateGameParams describes a new scheduled game. Zero-valued requirement
// counts and team fields inherit the tenant's defaults.
type CreateGameParams struct {
	StartsAt time.Time
	Venue    string

	GoaltendersNeeded int
	DefenceNeeded     int
	ForwardsNeeded    int
	SkatersNeeded     int

	TeamName1  string
	TeamName2  string
	TeamColor1 string
	TeamColor2 string

	Recurring         bool
	RecurrencePattern RecurrencePattern
	RecurrenceEndsAt  *time.Time
}

// CreateGame schedules a game, filling requirement counts and team identity
// from the tenant's league defaults where the caller left them empty.
func (s *Service) CreateGame(ctx context.Context, params CreateGameParams) (*Game, error) {
	t, err := s.tenantFromContext(ctx)
	if err != nil {
		return nil, err
	}

	venue := strings.TrimSpace(params.Venue)
	if venue == "" {
		return nil, fmt.Errorf("%w: venue is required", ErrInvalidGame)
	}
	if params.StartsAt.IsZero() {
		return nil, fmt.Errorf("%w: start time is required", ErrInvalidGame)
	}
	if params.Recurring {
		switch params.RecurrencePattern {
		case RecurWeekly, RecurBiweekly, RecurMonthly:
		default:
			return nil, fmt.Errorf("%w: unknown recurrence pattern %q", ErrInvalidGame, params.RecurrencePattern)
		}
	}

	now := s.now().UTC()
	game := &Game{
		ID:       uuid.New(),
		StartsAt: params.StartsAt,
		Venue:    venue,
		Status:   GameScheduled,

		GoaltendersNeeded: defaultInt(params.GoaltendersNeeded, t.GoaltendersNeeded),
		DefenceNeeded:     defaultInt(params.DefenceNeeded, t.DefenceNeeded),
		ForwardsNeeded:    defaultInt(params.ForwardsNeeded, t.ForwardsNeeded),
		SkatersNeeded:     defaultInt(params.SkatersNeeded, t.SkatersNeeded),

		TeamName1:  defaultString(params.TeamName1, t.TeamName1),
		TeamName2:  defaultString(params.TeamName2, t.TeamName2),
		TeamColor1: defaultString(params.TeamColor1, t.TeamColor1),
		TeamColor2: defaultString(params.TeamColor2, t.TeamColor2),

		Recurring:         params.Recurring,
		RecurrencePattern: params.RecurrencePattern,
		RecurrenceEndsAt:  params.RecurrenceEndsAt,

		CreatedAt: now,
		UpdatedAt: now,
	}

	// Position mode decides which requirement counts apply.
	if t.PositionMode == tenant.TwoPosition {
		game.DefenceNeeded = 0
		game.ForwardsNeeded = 0
	} else {
		game.SkatersNeeded = 0
	}

	if err := s.games.Create(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}
	return game, nil
}

// GetGame returns one game within the tenant partition.
func (s *Service) GetGame(ctx context.Context, id uuid.UUID) (*Game, error) {
	game, err := s.games.Get(ctx, id)
	if err != nil {
		if errors.Is(err, scope.ErrNotFound) {
			return nil, ErrGameNotFound
		}
		return nil, err
	}
	return game, nil
}

// ListGames returns the tenant's games ordered by start time.
func (s *Service) ListGames(ctx context.Context) ([]*Game, error) {
	games, err := s.games.List(ctx)
	if err != nil {
		return nil, err
	}
	sort.Slice(games, func(i, j int) bool {
		return games[i].StartsAt.Before(games[j].StartsAt)
	})
	return games, nil
}

// UpdateGameParams applies partial changes to a game. Nil fields stay
// unchanged.
type UpdateGameParams struct {
	StartsAt *time.Time
	Venue    *string
	Status   *GameStatus

	GoaltendersNeeded *int
	DefenceNeeded     *int
	ForwardsNeeded    *int
	SkatersNeeded     *int

	TeamName1  *string
	TeamName2  *string
	TeamColor1 *string
	TeamColor2 *string
}

// UpdateGame applies partial changes to a scheduled game.
func (s *Service) UpdateGame(ctx context.Context, id uuid.UUID, params UpdateGameParams) (*Game, error) {
	game, err := s.GetGame(ctx, id)
	if err != nil {
		return nil, err
	}

	if params.StartsAt != nil {
		game.StartsAt = *params.StartsAt
	}
	if params.Venue != nil {
		venue := strings.TrimSpace(*params.Venue)
		if venue == "" {
			return nil, fmt.Errorf("%w: venue cannot be empty", ErrInvalidGame)
		}
		game.Venue = venue
	}
	if params.Status != nil {
		switch *params.Status {
		case GameScheduled, GameConfirmed, GameCancelled, GameCompleted:
			game.Status = *params.Status
		default:
			return nil, fmt.Errorf("%w: %s", ErrInvalidGameStatus, *params.Status)
		}
	}
	if params.GoaltendersNeeded != nil {
		game.GoaltendersNeeded = *params.GoaltendersNeeded
	}
	if params.DefenceNeeded != nil {
		game.DefenceNeeded = *params.DefenceNeeded
	}
	if params.ForwardsNeeded != nil {
		game.ForwardsNeeded = *params.ForwardsNeeded
	}
	if params.SkatersNeeded != nil {
		game.SkatersNeeded = *params.SkatersNeeded
	}
	if params.TeamName1 != nil {
		game.TeamName1 = *params.TeamName1
	}
	if params.TeamName2 != nil {
		game.TeamName2 = *params.TeamName2
	}
	if params.TeamColor1 != nil {
		game.TeamColor1 = *params.TeamColor1
	}
	if params.TeamColor2 != nil {
		game.TeamColor2 = *params.TeamColor2
	}

	game.UpdatedAt = s.now().UTC()

	if err := s.games.Update(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to update game: %w", err)
	}
	return game, nil
}

// DeleteGame removes a game and its assignments and invitations.
func (s *Service) DeleteGame(ctx context.Context, id uuid.UUID) error {
	tid, ok := tenant.IDFromContext(ctx)
	if !ok {
		return scope.ErrNoTenant
	}

	if err := s.games.Delete(ctx, id); err != nil {
		if errors.Is(err, scope.ErrNotFound) {
			return ErrGameNotFound
		}
		return err
	}

	if _, err := s.assignments.DeleteForGame(ctx, tid, id); err != nil {
		return fmt.Errorf("failed to delete game assignments: %w", err)
	}
	if _, err := s.invitations.DeleteMatching(ctx, func(i *Invitation) bool {
		return i.GameID == id
	}); err != nil {
		return fmt.Errorf("failed to delete game invitations: %w", err)
	}
	return nil
}

func defaultInt(v, fallback int) int {
	if v == 0 {
		return fallback
	}
	return v
}

func defaultString(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
