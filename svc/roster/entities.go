// Package roster manages players, games, invitations, statistics, and
// balanced team assignments within a tenant's partition. Every entity is
// tenant-scoped; all access goes through context-derived repositories so a
// request can only ever touch the rows of its resolved tenant.
package roster

import (
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/rosterkit/pkg/scope"
	"github.com/dmitrymomot/rosterkit/pkg/tenant"
)

// Position is a player's on-ice position.
type Position string

const (
	PositionGoaltender Position = "goaltender"
	PositionDefence    Position = "defence"
	PositionForward    Position = "forward"
	PositionSkater     Position = "skater"
)

// PlayerType distinguishes regulars from spares.
type PlayerType string

const (
	PlayerTypeRegular PlayerType = "regular"
	PlayerTypeSpare   PlayerType = "spare"
)

// Spare priority tiers. Priority 1 spares are called first.
const (
	SparePriorityFirst  = 1
	SparePrioritySecond = 2
)

// ValidPositions returns the positions a tenant's position mode allows.
func ValidPositions(mode tenant.PositionMode) []Position {
	if mode == tenant.TwoPosition {
		return []Position{PositionGoaltender, PositionSkater}
	}
	return []Position{PositionGoaltender, PositionDefence, PositionForward}
}

// Player is a tenant-scoped roster member. Email is unique within the
// tenant; the same address may exist under other tenants.
type Player struct {
	scope.TenantRef

	ID            uuid.UUID  `json:"id" db:"id"`
	Name          string     `json:"name" db:"name"`
	Email         string     `json:"email" db:"email"`
	Position      Position   `json:"position" db:"position"`
	Type          PlayerType `json:"player_type" db:"player_type"`
	SparePriority int        `json:"spare_priority,omitempty" db:"spare_priority"` // 1 or 2 for spares, 0 for regulars
	SkillRating   int        `json:"skill_rating,omitempty" db:"skill_rating"`     // 0 means unrated

	Language           string `json:"language" db:"language"`
	EmailInvitations   bool   `json:"email_invitations" db:"email_invitations"`
	EmailReminders     bool   `json:"email_reminders" db:"email_reminders"`
	EmailNotifications bool   `json:"email_notifications" db:"email_notifications"`

	Active    bool      `json:"is_active" db:"is_active"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// IsGoaltender reports whether the player plays goal.
func (p *Player) IsGoaltender() bool { return p.Position == PositionGoaltender }

// IsSpare reports whether the player is a spare.
func (p *Player) IsSpare() bool { return p.Type == PlayerTypeSpare }

// GameStatus is the lifecycle state of a scheduled game.
type GameStatus string

const (
	GameScheduled GameStatus = "scheduled"
	GameConfirmed GameStatus = "confirmed"
	GameCancelled GameStatus = "cancelled"
	GameCompleted GameStatus = "completed"
)

// RecurrencePattern describes how a recurring game template repeats.
type RecurrencePattern string

const (
	RecurWeekly   RecurrencePattern = "weekly"
	RecurBiweekly RecurrencePattern = "biweekly"
	RecurMonthly  RecurrencePattern = "monthly"
)

// Game is a tenant-scoped scheduled game. Team names and colors default to
// the tenant's configuration when empty.
type Game struct {
	scope.TenantRef

	ID       uuid.UUID  `json:"id" db:"id"`
	StartsAt time.Time  `json:"starts_at" db:"starts_at"`
	Venue    string     `json:"venue" db:"venue"`
	Status   GameStatus `json:"status" db:"status"`

	GoaltendersNeeded int `json:"goaltenders_needed" db:"goaltenders_needed"`
	DefenceNeeded     int `json:"defence_needed,omitempty" db:"defence_needed"` // unused in two_position mode
	ForwardsNeeded    int `json:"forwards_needed,omitempty" db:"forwards_needed"`
	SkatersNeeded     int `json:"skaters_needed,omitempty" db:"skaters_needed"` // unused in three_position mode

	TeamName1  string `json:"team_1_name" db:"team_1_name"`
	TeamName2  string `json:"team_2_name" db:"team_2_name"`
	TeamColor1 string `json:"team_1_color" db:"team_1_color"`
	TeamColor2 string `json:"team_2_color" db:"team_2_color"`

	Recurring         bool              `json:"is_recurring" db:"is_recurring"`
	RecurrencePattern RecurrencePattern `json:"recurrence_pattern,omitempty" db:"recurrence_pattern"`
	RecurrenceEndsAt  *time.Time        `json:"recurrence_ends_at,omitempty" db:"recurrence_ends_at"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// Assignment places one player on one of a game's two teams.
type Assignment struct {
	scope.TenantRef

	ID         uuid.UUID `json:"id" db:"id"`
	GameID     uuid.UUID `json:"game_id" db:"game_id"`
	PlayerID   uuid.UUID `json:"player_id" db:"player_id"`
	TeamNumber int       `json:"team_number" db:"team_number"` // 1 or 2
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}

// InvitationStatus tracks the delivery lifecycle of a game invitation.
type InvitationStatus string

const (
	InvitationSent      InvitationStatus = "sent"
	InvitationOpened    InvitationStatus = "opened"
	InvitationResponded InvitationStatus = "responded"
)

// Invitation asks one player whether they can make a game.
type Invitation struct {
	scope.TenantRef

	ID       uuid.UUID        `json:"id" db:"id"`
	GameID   uuid.UUID        `json:"game_id" db:"game_id"`
	PlayerID uuid.UUID        `json:"player_id" db:"player_id"`
	Type     PlayerType       `json:"invitation_type" db:"invitation_type"` // regular or spare callup
	Status   InvitationStatus `json:"status" db:"status"`

	SentAt      time.Time  `json:"sent_at" db:"sent_at"`
	OpenedAt    *time.Time `json:"opened_at,omitempty" db:"opened_at"`
	RespondedAt *time.Time `json:"responded_at,omitempty" db:"responded_at"`

	// Response is "yes" or "no" once the player answered, empty before.
	Response string `json:"response,omitempty" db:"response"`
}

// StatisticType classifies one recorded game event.
type StatisticType string

const (
	StatGoal    StatisticType = "goal"
	StatAssist  StatisticType = "assist"
	StatPenalty StatisticType = "penalty"
)

// GameStatistic is one recorded event (goal, assist, penalty) in a game.
type GameStatistic struct {
	scope.TenantRef

	ID       uuid.UUID     `json:"id" db:"id"`
	GameID   uuid.UUID     `json:"game_id" db:"game_id"`
	PlayerID uuid.UUID     `json:"player_id" db:"player_id"`
	Type     StatisticType `json:"statistic_type" db:"statistic_type"`

	Period       int    `json:"period,omitempty" db:"period"` // 1-3, 0 for penalties without period
	TimeInPeriod string `json:"time_in_period,omitempty" db:"time_in_period"`
	TeamNumber   int    `json:"team_number,omitempty" db:"team_number"`

	PenaltyType     string `json:"penalty_type,omitempty" db:"penalty_type"`
	PenaltyDuration int    `json:"penalty_duration,omitempty" db:"penalty_duration"` // minutes

	// GoalID links an assist to its goal.
	GoalID *uuid.UUID `json:"goal_id,omitempty" db:"goal_id"`

	Notes     string    `json:"notes,omitempty" db:"notes"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// PlayerStats is a per-player aggregation computed from game statistics and
// assignments.
type PlayerStats struct {
	PlayerID       uuid.UUID `json:"player_id"`
	GamesPlayed    int       `json:"games_played"`
	Goals          int       `json:"goals"`
	Assists        int       `json:"assists"`
	Points         int       `json:"points"`
	Penalties      int       `json:"penalties"`
	PenaltyMinutes int       `json:"penalty_minutes"`
}
