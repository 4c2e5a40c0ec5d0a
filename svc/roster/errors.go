package roster

import "errors"

var (
	// ErrPlayerNotFound is returned when no player matches within the
	// tenant partition.
	ErrPlayerNotFound = errors.New("player not found")

	// ErrGameNotFound is returned when no game matches within the tenant
	// partition.
	ErrGameNotFound = errors.New("game not found")

	// ErrInvitationNotFound is returned when no invitation matches within
	// the tenant partition.
	ErrInvitationNotFound = errors.New("invitation not found")

	// ErrEmailTaken is returned when another player in the same tenant
	// already uses the email.
	ErrEmailTaken = errors.New("player email already exists")

	// ErrInvalidPlayer is returned for structurally invalid player data,
	// such as a missing name or email.
	ErrInvalidPlayer = errors.New("invalid player")

	// ErrInvalidPosition is returned when the position is not valid for the
	// tenant's position mode.
	ErrInvalidPosition = errors.New("invalid position for tenant position mode")

	// ErrInvalidPlayerType is returned for player types other than regular
	// and spare.
	ErrInvalidPlayerType = errors.New("invalid player type")

	// ErrInvalidSparePriority is returned when a spare's priority is not 1
	// or 2, or when a regular carries one.
	ErrInvalidSparePriority = errors.New("spare players must have priority 1 or 2")

	// ErrInvalidSkillRating is returned for ratings outside 0..5, where 0
	// means unrated.
	ErrInvalidSkillRating = errors.New("skill rating must be between 1 and 5, or 0 for unrated")

	// ErrNoPlayers is returned when auto-assignment is requested with no
	// resolvable players.
	ErrNoPlayers = errors.New("no players to assign")

	// ErrInvalidTeamNumber is returned for team numbers other than 1 and 2.
	ErrInvalidTeamNumber = errors.New("team number must be 1 or 2")

	// ErrNotAssigned is returned when a player has no assignment for the
	// game.
	ErrNotAssigned = errors.New("player is not assigned to this game")

	// ErrInvalidStatistic is returned for malformed statistic events.
	ErrInvalidStatistic = errors.New("invalid statistic")

	// ErrInvalidGame is returned for structurally invalid game data, such
	// as a missing venue or start time.
	ErrInvalidGame = errors.New("invalid game")

	// ErrInvalidGameStatus is returned for unknown game statuses.
	ErrInvalidGameStatus = errors.New("invalid game status")
)
