package teambalance

import (
	"sort"

	"github.com/google/uuid"
)

// Weights for the balance score. Goaltender skill is weighted far above any
// single skater's because goaltending quality disproportionately decides
// game outcomes; spreading strong goaltenders matters more than spreading
// strong skaters.
const (
	GoaltenderWeight = 5
	SkaterWeight     = 1

	// DefaultRating is the neutral rating used for unrated players.
	DefaultRating = 2
)

// Player is the engine's view of a roster member. Rating 0 means unrated.
type Player struct {
	ID         uuid.UUID
	Rating     int
	Goaltender bool
}

// rating returns the effective skill rating, substituting the neutral
// default for unrated players.
func (p Player) rating() int {
	if p.Rating == 0 {
		return DefaultRating
	}
	return p.Rating
}

// Score returns the player's weighted balance score.
func (p Player) Score() int {
	if p.Goaltender {
		return p.rating() * GoaltenderWeight
	}
	return p.rating() * SkaterWeight
}

// Team is one side of a split with its aggregate balance score.
type Team struct {
	Players []Player
	Score   int
}

// Split is a computed two-team partition. Difference is the absolute gap
// between the two team scores.
type Split struct {
	Team1      Team
	Team2      Team
	Difference int
}

// TeamOf returns which team (1 or 2) the player landed on, or 0 when the
// player was not part of the split.
func (s Split) TeamOf(id uuid.UUID) int {
	for _, p := range s.Team1.Players {
		if p.ID == id {
			return 1
		}
	}
	for _, p := range s.Team2.Players {
		if p.ID == id {
			return 2
		}
	}
	return 0
}

// Balance partitions a roster into two skill-balanced teams.
//
// Goaltenders are sorted by rating descending and assigned strictly
// alternating (team 1, team 2, team 1, ...) so they spread across teams
// regardless of score. Skaters are sorted by rating descending and assigned
// greedily to the team with the lower running score, ties favoring team 1.
// The greedy pass is a deterministic O(n log n) heuristic, not a globally
// optimal partition.
func Balance(players []Player) Split {
	var goalies, skaters []Player
	for _, p := range players {
		if p.Goaltender {
			goalies = append(goalies, p)
		} else {
			skaters = append(skaters, p)
		}
	}

	// Stable sorts keep the input order for equal ratings, which keeps the
	// whole split deterministic for identical inputs.
	sort.SliceStable(goalies, func(i, j int) bool {
		return goalies[i].rating() > goalies[j].rating()
	})
	sort.SliceStable(skaters, func(i, j int) bool {
		return skaters[i].rating() > skaters[j].rating()
	})

	var split Split

	for i, g := range goalies {
		if i%2 == 0 {
			split.Team1.add(g)
		} else {
			split.Team2.add(g)
		}
	}

	for _, s := range skaters {
		if split.Team1.Score <= split.Team2.Score {
			split.Team1.add(s)
		} else {
			split.Team2.add(s)
		}
	}

	split.Difference = split.Team1.Score - split.Team2.Score
	if split.Difference < 0 {
		split.Difference = -split.Difference
	}
	return split
}

func (t *Team) add(p Player) {
	t.Players = append(t.Players, p)
	t.Score += p.Score()
}
