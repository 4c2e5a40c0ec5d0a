package roster

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/dmitrymomot/rosterkit/core"
	rostersvc "github.com/dmitrymomot/rosterkit/svc/roster"
)

type invitePlayersRequest struct {
	PlayerIDs []uuid.UUID `json:"player_ids"`
}

func (m *Module) invitePlayers(w http.ResponseWriter, r *http.Request) {
	id, err := urlUUID(r, "gameID")
	if err != nil {
		m.respondError(w, r, err)
		return
	}

	var req invitePlayersRequest
	if err := core.DecodeJSON(r, &req); err != nil {
		m.respondError(w, r, err)
		return
	}

	created, err := m.roster.InvitePlayers(r.Context(), id, req.PlayerIDs)
	if err != nil {
		m.respondError(w, r, err)
		return
	}
	core.Render(w, r, core.JSONCreated(created))
}

func (m *Module) gameInvitations(w http.ResponseWriter, r *http.Request) {
	id, err := urlUUID(r, "gameID")
	if err != nil {
		m.respondError(w, r, err)
		return
	}

	invitations, err := m.roster.GameInvitations(r.Context(), id)
	if err != nil {
		m.respondError(w, r, err)
		return
	}
	core.Render(w, r, core.JSONWithMeta(invitations, map[string]any{"count": len(invitations)}))
}

func (m *Module) markInvitationOpened(w http.ResponseWriter, r *http.Request) {
	id, err := urlUUID(r, "invitationID")
	if err != nil {
		m.respondError(w, r, err)
		return
	}

	inv, err := m.roster.MarkInvitationOpened(r.Context(), id)
	if err != nil {
		m.respondError(w, r, err)
		return
	}
	core.Render(w, r, core.JSON(inv))
}

type respondInvitationRequest struct {
	Accept bool `json:"accept"`
}

func (m *Module) respondToInvitation(w http.ResponseWriter, r *http.Request) {
	id, err := urlUUID(r, "invitationID")
	if err != nil {
		m.respondError(w, r, err)
		return
	}

	var req respondInvitationRequest
	if err := core.DecodeJSON(r, &req); err != nil {
		m.respondError(w, r, err)
		return
	}

	inv, err := m.roster.RespondToInvitation(r.Context(), id, req.Accept)
	if err != nil {
		m.respondError(w, r, err)
		return
	}
	core.Render(w, r, core.JSON(inv))
}

type recordStatisticRequest struct {
	PlayerID uuid.UUID `json:"player_id"`
	Type     string    `json:"statistic_type"`

	Period       int    `json:"period,omitempty"`
	TimeInPeriod string `json:"time_in_period,omitempty"`
	TeamNumber   int    `json:"team_number,omitempty"`

	PenaltyType     string `json:"penalty_type,omitempty"`
	PenaltyDuration int    `json:"penalty_duration,omitempty"`

	GoalID *uuid.UUID `json:"goal_id,omitempty"`
	Notes  string     `json:"notes,omitempty"`
}

func (m *Module) recordStatistic(w http.ResponseWriter, r *http.Request) {
	id, err := urlUUID(r, "gameID")
	if err != nil {
		m.respondError(w, r, err)
		return
	}

	var req recordStatisticRequest
	if err := core.DecodeJSON(r, &req); err != nil {
		m.respondError(w, r, err)
		return
	}

	stat, err := m.roster.RecordStatistic(r.Context(), rostersvc.RecordStatisticParams{
		GameID:   id,
		PlayerID: req.PlayerID,
		Type:     rostersvc.StatisticType(req.Type),

		Period:       req.Period,
		TimeInPeriod: req.TimeInPeriod,
		TeamNumber:   req.TeamNumber,

		PenaltyType:     req.PenaltyType,
		PenaltyDuration: req.PenaltyDuration,

		GoalID: req.GoalID,
		Notes:  req.Notes,
	})
	if err != nil {
		m.respondError(w, r, err)
		return
	}
	core.Render(w, r, core.JSONCreated(stat))
}

func (m *Module) gameStatistics(w http.ResponseWriter, r *http.Request) {
	id, err := urlUUID(r, "gameID")
	if err != nil {
		m.respondError(w, r, err)
		return
	}

	stats, err := m.roster.GameStatistics(r.Context(), id)
	if err != nil {
		m.respondError(w, r, err)
		return
	}
	core.Render(w, r, core.JSONWithMeta(stats, map[string]any{"count": len(stats)}))
}
