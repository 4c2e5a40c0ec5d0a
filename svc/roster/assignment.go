package roster

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/dmitrymomot/rosterkit/pkg/scope"
	"github.com/dmitrymomot/rosterkit/pkg/teambalance"
	"github.com/dmitrymomot/rosterkit/pkg/tenant"
)

// TeamRoster is one side of an assignment result.
type TeamRoster struct {
	Name    string    `json:"name"`
	Color   string    `json:"color"`
	Players []*Player `json:"players"`
	Score   int       `json:"total_score"`
	Count   int       `json:"count"`
}

// AssignmentResult is the outcome of an automatic team assignment.
type AssignmentResult struct {
	GameID            uuid.UUID  `json:"game_id"`
	Team1             TeamRoster `json:"team_1"`
	Team2             TeamRoster `json:"team_2"`
	BalanceDifference int        `json:"balance_difference"`
}

// AutoAssignTeams splits the given players into two skill-balanced teams
// for the game and atomically replaces any existing assignments. Running it
// again for the same game is a full re-deal, not an append. Player IDs that
// do not resolve within the tenant are ignored; if none resolve the call
// fails with ErrNoPlayers.
func (s *Service) AutoAssignTeams(ctx context.Context, gameID uuid.UUID, playerIDs []uuid.UUID) (*AssignmentResult, error) {
	tid, ok := tenant.IDFromContext(ctx)
	if !ok {
		return nil, scope.ErrNoTenant
	}

	game, err := s.GetGame(ctx, gameID)
	if err != nil {
		return nil, err
	}

	players := make([]*Player, 0, len(playerIDs))
	byID := make(map[uuid.UUID]*Player, len(playerIDs))
	for _, id := range playerIDs {
		p, err := s.GetPlayer(ctx, id)
		if err != nil {
			continue
		}
		if _, seen := byID[p.ID]; seen {
			continue
		}
		players = append(players, p)
		byID[p.ID] = p
	}
	if len(players) == 0 {
		return nil, ErrNoPlayers
	}

	input := make([]teambalance.Player, len(players))
	for i, p := range players {
		input[i] = teambalance.Player{
			ID:         p.ID,
			Rating:     p.SkillRating,
			Goaltender: p.IsGoaltender(),
		}
	}
	split := teambalance.Balance(input)

	now := s.now().UTC()
	assignments := make([]*Assignment, 0, len(players))
	for _, p := range players {
		a := &Assignment{
			ID:         uuid.New(),
			GameID:     game.ID,
			PlayerID:   p.ID,
			TeamNumber: split.TeamOf(p.ID),
			CreatedAt:  now,
		}
		a.SetTenantID(tid)
		assignments = append(assignments, a)
	}

	if err := s.assignments.ReplaceForGame(ctx, tid, game.ID, assignments); err != nil {
		return nil, fmt.Errorf("failed to replace assignments: %w", err)
	}

	s.logger.InfoContext(ctx, "teams auto-assigned",
		slog.String("game_id", game.ID.String()),
		slog.Int("players", len(players)),
		slog.Int("balance_difference", split.Difference),
	)

	return s.buildResult(game, assignments, byID), nil
}

// GameRoster returns the game's current assignments grouped by team.
func (s *Service) GameRoster(ctx context.Context, gameID uuid.UUID) (*AssignmentResult, error) {
	tid, ok := tenant.IDFromContext(ctx)
	if !ok {
		return nil, scope.ErrNoTenant
	}

	game, err := s.GetGame(ctx, gameID)
	if err != nil {
		return nil, err
	}

	assignments, err := s.assignments.ListForGame(ctx, tid, gameID)
	if err != nil {
		return nil, err
	}

	byID := make(map[uuid.UUID]*Player, len(assignments))
	for _, a := range assignments {
		if _, ok := byID[a.PlayerID]; ok {
			continue
		}
		p, err := s.GetPlayer(ctx, a.PlayerID)
		if err != nil {
			continue
		}
		byID[p.ID] = p
	}

	return s.buildResult(game, assignments, byID), nil
}

// MovePlayer moves an assigned player to the given team (1 or 2). Moving a
// player to the team they are already on is a no-op.
func (s *Service) MovePlayer(ctx context.Context, gameID, playerID uuid.UUID, teamNumber int) error {
	tid, ok := tenant.IDFromContext(ctx)
	if !ok {
		return scope.ErrNoTenant
	}
	if teamNumber != 1 && teamNumber != 2 {
		return ErrInvalidTeamNumber
	}

	if _, err := s.GetGame(ctx, gameID); err != nil {
		return err
	}

	a, err := s.assignments.GetForPlayer(ctx, tid, gameID, playerID)
	if err != nil {
		return err
	}
	if a.TeamNumber == teamNumber {
		return nil
	}

	a.TeamNumber = teamNumber
	return s.assignments.Update(ctx, tid, a)
}

// SwapPlayers exchanges the teams of two assigned players atomically:
// either both move or neither does.
func (s *Service) SwapPlayers(ctx context.Context, gameID, firstPlayerID, secondPlayerID uuid.UUID) error {
	tid, ok := tenant.IDFromContext(ctx)
	if !ok {
		return scope.ErrNoTenant
	}

	if _, err := s.GetGame(ctx, gameID); err != nil {
		return err
	}

	first, err := s.assignments.GetForPlayer(ctx, tid, gameID, firstPlayerID)
	if err != nil {
		return err
	}
	second, err := s.assignments.GetForPlayer(ctx, tid, gameID, secondPlayerID)
	if err != nil {
		return err
	}

	return s.assignments.SwapTeams(ctx, tid, first.ID, second.ID)
}

func (s *Service) buildResult(game *Game, assignments []*Assignment, players map[uuid.UUID]*Player) *AssignmentResult {
	result := &AssignmentResult{
		GameID: game.ID,
		Team1:  TeamRoster{Name: game.TeamName1, Color: game.TeamColor1},
		Team2:  TeamRoster{Name: game.TeamName2, Color: game.TeamColor2},
	}

	for _, a := range assignments {
		p, ok := players[a.PlayerID]
		if !ok {
			continue
		}
		score := teambalance.Player{
			ID:         p.ID,
			Rating:     p.SkillRating,
			Goaltender: p.IsGoaltender(),
		}.Score()

		switch a.TeamNumber {
		case 1:
			result.Team1.Players = append(result.Team1.Players, p)
			result.Team1.Score += score
		case 2:
			result.Team2.Players = append(result.Team2.Players, p)
			result.Team2.Score += score
		}
	}

	result.Team1.Count = len(result.Team1.Players)
	result.Team2.Count = len(result.Team2.Players)
	result.BalanceDifference = result.Team1.Score - result.Team2.Score
	if result.BalanceDifference < 0 {
		result.BalanceDifference = -result.BalanceDifference
	}
	return result
}
