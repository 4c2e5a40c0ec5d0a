package roster_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/rosterkit/pkg/tenant"
	"github.com/dmitrymomot/rosterkit/svc/roster"
)

func TestRecordStatistic(t *testing.T) {
	t.Parallel()

	svc := roster.NewService(roster.MemoryStores())
	ctx := tenantCtx(newTestTenant(tenant.ThreePosition))
	game := createGame(t, svc, ctx)
	scorer := createPlayer(t, svc, ctx, "Scorer", "scorer@example.com", roster.PositionForward, 4)
	helper := createPlayer(t, svc, ctx, "Helper", "helper@example.com", roster.PositionDefence, 3)

	t.Run("goal needs a period", func(t *testing.T) {
		_, err := svc.RecordStatistic(ctx, roster.RecordStatisticParams{
			GameID:   game.ID,
			PlayerID: scorer.ID,
			Type:     roster.StatGoal,
		})
		require.ErrorIs(t, err, roster.ErrInvalidStatistic)

		_, err = svc.RecordStatistic(ctx, roster.RecordStatisticParams{
			GameID:   game.ID,
			PlayerID: scorer.ID,
			Type:     roster.StatGoal,
			Period:   4,
		})
		require.ErrorIs(t, err, roster.ErrInvalidStatistic)
	})

	t.Run("assist must reference a goal in the same game", func(t *testing.T) {
		goal, err := svc.RecordStatistic(ctx, roster.RecordStatisticParams{
			GameID:       game.ID,
			PlayerID:     scorer.ID,
			Type:         roster.StatGoal,
			Period:       2,
			TimeInPeriod: "12:34",
			TeamNumber:   1,
		})
		require.NoError(t, err)

		_, err = svc.RecordStatistic(ctx, roster.RecordStatisticParams{
			GameID:   game.ID,
			PlayerID: helper.ID,
			Type:     roster.StatAssist,
		})
		require.ErrorIs(t, err, roster.ErrInvalidStatistic)

		otherGame := createGame(t, svc, ctx)
		_, err = svc.RecordStatistic(ctx, roster.RecordStatisticParams{
			GameID:   otherGame.ID,
			PlayerID: helper.ID,
			Type:     roster.StatAssist,
			GoalID:   &goal.ID,
		})
		require.ErrorIs(t, err, roster.ErrInvalidStatistic)

		assist, err := svc.RecordStatistic(ctx, roster.RecordStatisticParams{
			GameID:   game.ID,
			PlayerID: helper.ID,
			Type:     roster.StatAssist,
			GoalID:   &goal.ID,
		})
		require.NoError(t, err)
		require.NotNil(t, assist.GoalID)
		assert.Equal(t, goal.ID, *assist.GoalID)
	})

	t.Run("penalty needs a type and duration", func(t *testing.T) {
		_, err := svc.RecordStatistic(ctx, roster.RecordStatisticParams{
			GameID:   game.ID,
			PlayerID: scorer.ID,
			Type:     roster.StatPenalty,
		})
		require.ErrorIs(t, err, roster.ErrInvalidStatistic)

		penalty, err := svc.RecordStatistic(ctx, roster.RecordStatisticParams{
			GameID:          game.ID,
			PlayerID:        scorer.ID,
			Type:            roster.StatPenalty,
			PenaltyType:     "tripping",
			PenaltyDuration: 2,
		})
		require.NoError(t, err)
		assert.Equal(t, "tripping", penalty.PenaltyType)
	})

	t.Run("rejects bad team number and unknown type", func(t *testing.T) {
		_, err := svc.RecordStatistic(ctx, roster.RecordStatisticParams{
			GameID:     game.ID,
			PlayerID:   scorer.ID,
			Type:       roster.StatGoal,
			Period:     1,
			TeamNumber: 3,
		})
		require.ErrorIs(t, err, roster.ErrInvalidTeamNumber)

		_, err = svc.RecordStatistic(ctx, roster.RecordStatisticParams{
			GameID:   game.ID,
			PlayerID: scorer.ID,
			Type:     roster.StatisticType("hat_trick"),
		})
		require.ErrorIs(t, err, roster.ErrInvalidStatistic)
	})

	t.Run("requires known game and player", func(t *testing.T) {
		_, err := svc.RecordStatistic(ctx, roster.RecordStatisticParams{
			GameID:   uuid.New(),
			PlayerID: scorer.ID,
			Type:     roster.StatGoal,
			Period:   1,
		})
		require.ErrorIs(t, err, roster.ErrGameNotFound)

		_, err = svc.RecordStatistic(ctx, roster.RecordStatisticParams{
			GameID:   game.ID,
			PlayerID: uuid.New(),
			Type:     roster.StatGoal,
			Period:   1,
		})
		require.ErrorIs(t, err, roster.ErrPlayerNotFound)
	})
}

func TestGameStatistics(t *testing.T) {
	t.Parallel()

	svc := roster.NewService(roster.MemoryStores())
	ctx := tenantCtx(newTestTenant(tenant.ThreePosition))
	game := createGame(t, svc, ctx)
	other := createGame(t, svc, ctx)
	p := createPlayer(t, svc, ctx, "Scorer", "scorer@example.com", roster.PositionForward, 4)

	for _, gameID := range []uuid.UUID{game.ID, game.ID, other.ID} {
		_, err := svc.RecordStatistic(ctx, roster.RecordStatisticParams{
			GameID:   gameID,
			PlayerID: p.ID,
			Type:     roster.StatGoal,
			Period:   1,
		})
		require.NoError(t, err)
	}

	stats, err := svc.GameStatistics(ctx, game.ID)
	require.NoError(t, err)
	assert.Len(t, stats, 2)

	_, err = svc.GameStatistics(ctx, uuid.New())
	require.ErrorIs(t, err, roster.ErrGameNotFound)
}

func TestPlayerStatistics(t *testing.T) {
	t.Parallel()

	svc := roster.NewService(roster.MemoryStores())
	ctx := tenantCtx(newTestTenant(tenant.ThreePosition))

	p := createPlayer(t, svc, ctx, "Star", "star@example.com", roster.PositionForward, 5)
	teammate := createPlayer(t, svc, ctx, "Mate", "mate@example.com", roster.PositionDefence, 3)

	played := createGame(t, svc, ctx)
	upcoming := createGame(t, svc, ctx)
	for _, g := range []*roster.Game{played, upcoming} {
		_, err := svc.AutoAssignTeams(ctx, g.ID, []uuid.UUID{p.ID, teammate.ID})
		require.NoError(t, err)
	}
	completed := roster.GameCompleted
	_, err := svc.UpdateGame(ctx, played.ID, roster.UpdateGameParams{Status: &completed})
	require.NoError(t, err)

	goal, err := svc.RecordStatistic(ctx, roster.RecordStatisticParams{
		GameID: played.ID, PlayerID: p.ID, Type: roster.StatGoal, Period: 1,
	})
	require.NoError(t, err)
	_, err = svc.RecordStatistic(ctx, roster.RecordStatisticParams{
		GameID: played.ID, PlayerID: p.ID, Type: roster.StatGoal, Period: 3,
	})
	require.NoError(t, err)
	_, err = svc.RecordStatistic(ctx, roster.RecordStatisticParams{
		GameID: played.ID, PlayerID: teammate.ID, Type: roster.StatGoal, Period: 2,
	})
	require.NoError(t, err)
	_, err = svc.RecordStatistic(ctx, roster.RecordStatisticParams{
		GameID: played.ID, PlayerID: p.ID, Type: roster.StatAssist, GoalID: &goal.ID,
	})
	require.NoError(t, err)
	_, err = svc.RecordStatistic(ctx, roster.RecordStatisticParams{
		GameID: played.ID, PlayerID: p.ID, Type: roster.StatPenalty,
		PenaltyType: "slashing", PenaltyDuration: 2,
	})
	require.NoError(t, err)

	stats, err := svc.PlayerStatistics(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.GamesPlayed) // only the completed game counts
	assert.Equal(t, 2, stats.Goals)
	assert.Equal(t, 1, stats.Assists)
	assert.Equal(t, 3, stats.Points)
	assert.Equal(t, 1, stats.Penalties)
	assert.Equal(t, 2, stats.PenaltyMinutes)

	_, err = svc.PlayerStatistics(ctx, uuid.New())
	require.ErrorIs(t, err, roster.ErrPlayerNotFound)
}
