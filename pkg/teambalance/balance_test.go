package teambalance_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/rosterkit/pkg/teambalance"
)

func goalie(rating int) teambalance.Player {
	return teambalance.Player{ID: uuid.New(), Rating: rating, Goaltender: true}
}

func skater(rating int) teambalance.Player {
	return teambalance.Player{ID: uuid.New(), Rating: rating}
}

func TestBalance(t *testing.T) {
	t.Parallel()

	t.Run("two goalies four skaters", func(t *testing.T) {
		t.Parallel()

		// Goalie 9 opens team 1 at 45 (9x5), goalie 3 opens team 2 at 15.
		// All four skaters then chase team 2's lower score: 15+8+6+4+2=35.
		players := []teambalance.Player{
			goalie(9), goalie(3),
			skater(8), skater(6), skater(4), skater(2),
		}

		split := teambalance.Balance(players)

		assert.Equal(t, 45, split.Team1.Score)
		assert.Equal(t, 35, split.Team2.Score)
		assert.Equal(t, 10, split.Difference)
		assert.Len(t, split.Team1.Players, 1)
		assert.Len(t, split.Team2.Players, 5)
	})

	t.Run("goaltenders alternate by descending skill", func(t *testing.T) {
		t.Parallel()

		goalies := []teambalance.Player{goalie(2), goalie(9), goalie(7), goalie(5)}
		split := teambalance.Balance(goalies)

		// Sorted order is 9,7,5,2; index i lands on team (i%2)+1.
		require.Len(t, split.Team1.Players, 2)
		require.Len(t, split.Team2.Players, 2)
		assert.Equal(t, 9, split.Team1.Players[0].Rating)
		assert.Equal(t, 7, split.Team2.Players[0].Rating)
		assert.Equal(t, 5, split.Team1.Players[1].Rating)
		assert.Equal(t, 2, split.Team2.Players[1].Rating)
	})

	t.Run("skater ties favor team 1", func(t *testing.T) {
		t.Parallel()

		split := teambalance.Balance([]teambalance.Player{skater(4)})

		// Both teams start at 0; 0 <= 0 sends the first skater to team 1.
		assert.Len(t, split.Team1.Players, 1)
		assert.Empty(t, split.Team2.Players)
	})

	t.Run("unrated players score with the neutral default", func(t *testing.T) {
		t.Parallel()

		unratedGoalie := teambalance.Player{ID: uuid.New(), Goaltender: true}
		unratedSkater := teambalance.Player{ID: uuid.New()}

		assert.Equal(t, teambalance.DefaultRating*teambalance.GoaltenderWeight, unratedGoalie.Score())
		assert.Equal(t, teambalance.DefaultRating*teambalance.SkaterWeight, unratedSkater.Score())
	})

	t.Run("deterministic for identical input", func(t *testing.T) {
		t.Parallel()

		players := []teambalance.Player{
			goalie(8), goalie(8), skater(5), skater(5), skater(3), skater(7),
		}

		first := teambalance.Balance(players)
		for i := 0; i < 10; i++ {
			again := teambalance.Balance(players)
			assert.Equal(t, first, again)
		}
	})

	t.Run("equal ratings keep input order", func(t *testing.T) {
		t.Parallel()

		a, b := skater(5), skater(5)
		split := teambalance.Balance([]teambalance.Player{a, b})

		// a goes first (tie -> team 1), b balances onto team 2.
		assert.Equal(t, 1, split.TeamOf(a.ID))
		assert.Equal(t, 2, split.TeamOf(b.ID))
	})

	t.Run("empty roster yields empty split", func(t *testing.T) {
		t.Parallel()

		split := teambalance.Balance(nil)
		assert.Empty(t, split.Team1.Players)
		assert.Empty(t, split.Team2.Players)
		assert.Zero(t, split.Difference)
	})

	t.Run("every player lands on exactly one team", func(t *testing.T) {
		t.Parallel()

		players := []teambalance.Player{
			goalie(9), goalie(6), goalie(1),
			skater(8), skater(7), skater(4), skater(4), skater(2),
		}
		split := teambalance.Balance(players)

		assert.Equal(t, len(players), len(split.Team1.Players)+len(split.Team2.Players))
		for _, p := range players {
			team := split.TeamOf(p.ID)
			assert.Contains(t, []int{1, 2}, team)
		}
	})
}
