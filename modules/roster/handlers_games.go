package roster

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/rosterkit/core"
	rostersvc "github.com/dmitrymomot/rosterkit/svc/roster"
)

type createGameRequest struct {
	StartsAt time.Time `json:"starts_at"`
	Venue    string    `json:"venue"`

	GoaltendersNeeded int `json:"goaltenders_needed,omitempty"`
	DefenceNeeded     int `json:"defence_needed,omitempty"`
	ForwardsNeeded    int `json:"forwards_needed,omitempty"`
	SkatersNeeded     int `json:"skaters_needed,omitempty"`

	TeamName1  string `json:"team_1_name,omitempty"`
	TeamName2  string `json:"team_2_name,omitempty"`
	TeamColor1 string `json:"team_1_color,omitempty"`
	TeamColor2 string `json:"team_2_color,omitempty"`

	Recurring         bool       `json:"is_recurring,omitempty"`
	RecurrencePattern string     `json:"recurrence_pattern,omitempty"`
	RecurrenceEndsAt  *time.Time `json:"recurrence_ends_at,omitempty"`
}

func (m *Module) createGame(w http.ResponseWriter, r *http.Request) {
	var req createGameRequest
	if err := core.DecodeJSON(r, &req); err != nil {
		m.respondError(w, r, err)
		return
	}

	game, err := m.roster.CreateGame(r.Context(), rostersvc.CreateGameParams{
		StartsAt: req.StartsAt,
		Venue:    req.Venue,

		GoaltendersNeeded: req.GoaltendersNeeded,
		DefenceNeeded:     req.DefenceNeeded,
		ForwardsNeeded:    req.ForwardsNeeded,
		SkatersNeeded:     req.SkatersNeeded,

		TeamName1:  req.TeamName1,
		TeamName2:  req.TeamName2,
		TeamColor1: req.TeamColor1,
		TeamColor2: req.TeamColor2,

		Recurring:         req.Recurring,
		RecurrencePattern: rostersvc.RecurrencePattern(req.RecurrencePattern),
		RecurrenceEndsAt:  req.RecurrenceEndsAt,
	})
	if err != nil {
		m.respondError(w, r, err)
		return
	}
	core.Render(w, r, core.JSONCreated(game))
}

func (m *Module) getGame(w http.ResponseWriter, r *http.Request) {
	id, err := urlUUID(r, "gameID")
	if err != nil {
		m.respondError(w, r, err)
		return
	}

	game, err := m.roster.GetGame(r.Context(), id)
	if err != nil {
		m.respondError(w, r, err)
		return
	}
	core.Render(w, r, core.JSON(game))
}

func (m *Module) listGames(w http.ResponseWriter, r *http.Request) {
	games, err := m.roster.ListGames(r.Context())
	if err != nil {
		m.respondError(w, r, err)
		return
	}
	core.Render(w, r, core.JSONWithMeta(games, map[string]any{"count": len(games)}))
}

type updateGameRequest struct {
	StartsAt *time.Time `json:"starts_at,omitempty"`
	Venue    *string    `json:"venue,omitempty"`
	Status   *string    `json:"status,omitempty"`

	GoaltendersNeeded *int `json:"goaltenders_needed,omitempty"`
	DefenceNeeded     *int `json:"defence_needed,omitempty"`
	ForwardsNeeded    *int `json:"forwards_needed,omitempty"`
	SkatersNeeded     *int `json:"skaters_needed,omitempty"`

	TeamName1  *string `json:"team_1_name,omitempty"`
	TeamName2  *string `json:"team_2_name,omitempty"`
	TeamColor1 *string `json:"team_1_color,omitempty"`
	TeamColor2 *string `json:"team_2_color,omitempty"`
}

func (m *Module) updateGame(w http.ResponseWriter, r *http.Request) {
	id, err := urlUUID(r, "gameID")
	if err != nil {
		m.respondError(w, r, err)
		return
	}

	var req updateGameRequest
	if err := core.DecodeJSON(r, &req); err != nil {
		m.respondError(w, r, err)
		return
	}

	params := rostersvc.UpdateGameParams{
		StartsAt: req.StartsAt,
		Venue:    req.Venue,

		GoaltendersNeeded: req.GoaltendersNeeded,
		DefenceNeeded:     req.DefenceNeeded,
		ForwardsNeeded:    req.ForwardsNeeded,
		SkatersNeeded:     req.SkatersNeeded,

		TeamName1:  req.TeamName1,
		TeamName2:  req.TeamName2,
		TeamColor1: req.TeamColor1,
		TeamColor2: req.TeamColor2,
	}
	if req.Status != nil {
		status := rostersvc.GameStatus(*req.Status)
		params.Status = &status
	}

	game, err := m.roster.UpdateGame(r.Context(), id, params)
	if err != nil {
		m.respondError(w, r, err)
		return
	}
	core.Render(w, r, core.JSON(game))
}

type assignTeamsRequest struct {
	PlayerIDs []uuid.UUID `json:"player_ids"`
}

func (m *Module) autoAssignTeams(w http.ResponseWriter, r *http.Request) {
	id, err := urlUUID(r, "gameID")
	if err != nil {
		m.respondError(w, r, err)
		return
	}

	var req assignTeamsRequest
	if err := core.DecodeJSON(r, &req); err != nil {
		m.respondError(w, r, err)
		return
	}

	result, err := m.roster.AutoAssignTeams(r.Context(), id, req.PlayerIDs)
	if err != nil {
		m.respondError(w, r, err)
		return
	}
	core.Render(w, r, core.JSON(result))
}

func (m *Module) gameRoster(w http.ResponseWriter, r *http.Request) {
	id, err := urlUUID(r, "gameID")
	if err != nil {
		m.respondError(w, r, err)
		return
	}

	result, err := m.roster.GameRoster(r.Context(), id)
	if err != nil {
		m.respondError(w, r, err)
		return
	}
	core.Render(w, r, core.JSON(result))
}

type movePlayerRequest struct {
	PlayerID   uuid.UUID `json:"player_id"`
	TeamNumber int       `json:"team_number"`
}

func (m *Module) movePlayer(w http.ResponseWriter, r *http.Request) {
	id, err := urlUUID(r, "gameID")
	if err != nil {
		m.respondError(w, r, err)
		return
	}

	var req movePlayerRequest
	if err := core.DecodeJSON(r, &req); err != nil {
		m.respondError(w, r, err)
		return
	}

	if err := m.roster.MovePlayer(r.Context(), id, req.PlayerID, req.TeamNumber); err != nil {
		m.respondError(w, r, err)
		return
	}

	result, err := m.roster.GameRoster(r.Context(), id)
	if err != nil {
		m.respondError(w, r, err)
		return
	}
	core.Render(w, r, core.JSON(result))
}

type swapPlayersRequest struct {
	FirstPlayerID  uuid.UUID `json:"first_player_id"`
	SecondPlayerID uuid.UUID `json:"second_player_id"`
}

func (m *Module) swapPlayers(w http.ResponseWriter, r *http.Request) {
	id, err := urlUUID(r, "gameID")
	if err != nil {
		m.respondError(w, r, err)
		return
	}

	var req swapPlayersRequest
	if err := core.DecodeJSON(r, &req); err != nil {
		m.respondError(w, r, err)
		return
	}

	if err := m.roster.SwapPlayers(r.Context(), id, req.FirstPlayerID, req.SecondPlayerID); err != nil {
		m.respondError(w, r, err)
		return
	}

	result, err := m.roster.GameRoster(r.Context(), id)
	if err != nil {
		m.respondError(w, r, err)
		return
	}
	core.Render(w, r, core.JSON(result))
}

func (m *Module) deleteGame(w http.ResponseWriter, r *http.Request) {
	id, err := urlUUID(r, "gameID")
	if err != nil {
		m.respondError(w, r, err)
		return
	}

	if err := m.roster.DeleteGame(r.Context(), id); err != nil {
		m.respondError(w, r, err)
		return
	}
	core.Render(w, r, core.NoContent())
}
