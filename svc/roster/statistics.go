package roster

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/dmitrymomot/rosterkit/pkg/scope"
	"github.com/dmitrymomot/rosterkit/pkg/tenant"
)

// RecordStatisticParams describes one game event.
type RecordStatisticParams struct {
	GameID   uuid.UUID
	PlayerID uuid.UUID
	Type     StatisticType

	Period       int    // 1-3; optional for penalties
	TimeInPeriod string // "12:34"
	TeamNumber   int    // 1 or 2, optional

	PenaltyType     string // penalties only
	PenaltyDuration int    // minutes, penalties only

	GoalID *uuid.UUID // assists only: the goal being assisted

	Notes string
}

// RecordStatistic validates and stores one game event.
func (s *Service) RecordStatistic(ctx context.Context, params RecordStatisticParams) (*GameStatistic, error) {
	if _, err := s.GetGame(ctx, params.GameID); err != nil {
		return nil, err
	}
	if _, err := s.GetPlayer(ctx, params.PlayerID); err != nil {
		return nil, err
	}

	switch params.Type {
	case StatGoal:
		if params.Period < 1 || params.Period > 3 {
			return nil, fmt.Errorf("%w: goal requires period 1-3", ErrInvalidStatistic)
		}
	case StatAssist:
		if params.GoalID == nil {
			return nil, fmt.Errorf("%w: assist requires a goal", ErrInvalidStatistic)
		}
		goal, err := s.stats.Get(ctx, *params.GoalID)
		if err != nil || goal.Type != StatGoal || goal.GameID != params.GameID {
			return nil, fmt.Errorf("%w: assist must reference a goal in the same game", ErrInvalidStatistic)
		}
	case StatPenalty:
		if params.PenaltyType == "" || params.PenaltyDuration <= 0 {
			return nil, fmt.Errorf("%w: penalty requires a type and duration", ErrInvalidStatistic)
		}
	default:
		return nil, fmt.Errorf("%w: unknown type %q", ErrInvalidStatistic, params.Type)
	}

	if params.TeamNumber != 0 && params.TeamNumber != 1 && params.TeamNumber != 2 {
		return nil, ErrInvalidTeamNumber
	}

	stat := &GameStatistic{
		ID:       uuid.New(),
		GameID:   params.GameID,
		PlayerID: params.PlayerID,
		Type:     params.Type,

		Period:       params.Period,
		TimeInPeriod: params.TimeInPeriod,
		TeamNumber:   params.TeamNumber,

		PenaltyType:     params.PenaltyType,
		PenaltyDuration: params.PenaltyDuration,
		GoalID:          params.GoalID,

		Notes:     params.Notes,
		CreatedAt: s.now().UTC(),
	}

	if err := s.stats.Create(ctx, stat); err != nil {
		return nil, fmt.Errorf("failed to record statistic: %w", err)
	}
	return stat, nil
}

// GameStatistics returns all recorded events for a game.
func (s *Service) GameStatistics(ctx context.Context, gameID uuid.UUID) ([]*GameStatistic, error) {
	if _, err := s.GetGame(ctx, gameID); err != nil {
		return nil, err
	}
	all, err := s.stats.List(ctx)
	if err != nil {
		return nil, err
	}
	var out []*GameStatistic
	for _, st := range all {
		if st.GameID == gameID {
			out = append(out, st)
		}
	}
	return out, nil
}

// PlayerStatistics aggregates a player's recorded events and completed-game
// assignments into season totals.
func (s *Service) PlayerStatistics(ctx context.Context, playerID uuid.UUID) (*PlayerStats, error) {
	tid, ok := tenant.IDFromContext(ctx)
	if !ok {
		return nil, scope.ErrNoTenant
	}

	if _, err := s.GetPlayer(ctx, playerID); err != nil {
		return nil, err
	}

	stats := &PlayerStats{PlayerID: playerID}

	assignments, err := s.assignments.ListForPlayer(ctx, tid, playerID)
	if err != nil {
		return nil, err
	}
	for _, a := range assignments {
		game, err := s.GetGame(ctx, a.GameID)
		if err != nil {
			continue
		}
		if game.Status == GameCompleted {
			stats.GamesPlayed++
		}
	}

	events, err := s.stats.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, ev := range events {
		if ev.PlayerID != playerID {
			continue
		}
		switch ev.Type {
		case StatGoal:
			stats.Goals++
		case StatAssist:
			stats.Assists++
		case StatPenalty:
			stats.Penalties++
			stats.PenaltyMinutes += ev.PenaltyDuration
		}
	}
	stats.Points = stats.Goals + stats.Assists

	return stats, nil
}
