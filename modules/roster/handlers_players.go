package roster

import (
	"net/http"

	"github.com/dmitrymomot/rosterkit/core"
	rostersvc "github.com/dmitrymomot/rosterkit/svc/roster"
)

type createPlayerRequest struct {
	Name          string `json:"name"`
	Email         string `json:"email"`
	Position      string `json:"position"`
	Type          string `json:"player_type"`
	SparePriority int    `json:"spare_priority,omitempty"`
	SkillRating   int    `json:"skill_rating,omitempty"`
	Language      string `json:"language,omitempty"`
}

func (m *Module) createPlayer(w http.ResponseWriter, r *http.Request) {
	var req createPlayerRequest
	if err := core.DecodeJSON(r, &req); err != nil {
		m.respondError(w, r, err)
		return
	}

	playerType := rostersvc.PlayerType(req.Type)
	if playerType == "" {
		playerType = rostersvc.PlayerTypeRegular
	}

	player, err := m.roster.CreatePlayer(r.Context(), rostersvc.CreatePlayerParams{
		Name:          req.Name,
		Email:         req.Email,
		Position:      rostersvc.Position(req.Position),
		Type:          playerType,
		SparePriority: req.SparePriority,
		SkillRating:   req.SkillRating,
		Language:      req.Language,
	})
	if err != nil {
		m.respondError(w, r, err)
		return
	}
	core.Render(w, r, core.JSONCreated(player))
}

func (m *Module) getPlayer(w http.ResponseWriter, r *http.Request) {
	id, err := urlUUID(r, "playerID")
	if err != nil {
		m.respondError(w, r, err)
		return
	}

	player, err := m.roster.GetPlayer(r.Context(), id)
	if err != nil {
		m.respondError(w, r, err)
		return
	}
	core.Render(w, r, core.JSON(player))
}

func (m *Module) listPlayers(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := rostersvc.PlayerFilter{
		Position:   rostersvc.Position(q.Get("position")),
		Type:       rostersvc.PlayerType(q.Get("type")),
		ActiveOnly: q.Get("active") == "true",
	}

	players, err := m.roster.ListPlayers(r.Context(), filter)
	if err != nil {
		m.respondError(w, r, err)
		return
	}
	core.Render(w, r, core.JSONWithMeta(players, map[string]any{"count": len(players)}))
}

type updatePlayerRequest struct {
	Name          *string `json:"name,omitempty"`
	Email         *string `json:"email,omitempty"`
	Position      *string `json:"position,omitempty"`
	Type          *string `json:"player_type,omitempty"`
	SparePriority *int    `json:"spare_priority,omitempty"`
	SkillRating   *int    `json:"skill_rating,omitempty"`
	Language      *string `json:"language,omitempty"`

	EmailInvitations   *bool `json:"email_invitations,omitempty"`
	EmailReminders     *bool `json:"email_reminders,omitempty"`
	EmailNotifications *bool `json:"email_notifications,omitempty"`
	Active             *bool `json:"is_active,omitempty"`
}

func (m *Module) updatePlayer(w http.ResponseWriter, r *http.Request) {
	id, err := urlUUID(r, "playerID")
	if err != nil {
		m.respondError(w, r, err)
		return
	}

	var req updatePlayerRequest
	if err := core.DecodeJSON(r, &req); err != nil {
		m.respondError(w, r, err)
		return
	}

	params := rostersvc.UpdatePlayerParams{
		Name:          req.Name,
		Email:         req.Email,
		SparePriority: req.SparePriority,
		SkillRating:   req.SkillRating,
		Language:      req.Language,

		EmailInvitations:   req.EmailInvitations,
		EmailReminders:     req.EmailReminders,
		EmailNotifications: req.EmailNotifications,
		Active:             req.Active,
	}
	if req.Position != nil {
		pos := rostersvc.Position(*req.Position)
		params.Position = &pos
	}
	if req.Type != nil {
		pt := rostersvc.PlayerType(*req.Type)
		params.Type = &pt
	}

	player, err := m.roster.UpdatePlayer(r.Context(), id, params)
	if err != nil {
		m.respondError(w, r, err)
		return
	}
	core.Render(w, r, core.JSON(player))
}

func (m *Module) deletePlayer(w http.ResponseWriter, r *http.Request) {
	id, err := urlUUID(r, "playerID")
	if err != nil {
		m.respondError(w, r, err)
		return
	}

	if err := m.roster.DeletePlayer(r.Context(), id); err != nil {
		m.respondError(w, r, err)
		return
	}
	core.Render(w, r, core.NoContent())
}

type convertToSpareRequest struct {
	SparePriority int `json:"spare_priority"`
}

func (m *Module) convertToSpare(w http.ResponseWriter, r *http.Request) {
	id, err := urlUUID(r, "playerID")
	if err != nil {
		m.respondError(w, r, err)
		return
	}

	var req convertToSpareRequest
	if err := core.DecodeJSON(r, &req); err != nil {
		m.respondError(w, r, err)
		return
	}

	player, err := m.roster.ConvertToSpare(r.Context(), id, req.SparePriority)
	if err != nil {
		m.respondError(w, r, err)
		return
	}
	core.Render(w, r, core.JSON(player))
}

func (m *Module) convertToRegular(w http.ResponseWriter, r *http.Request) {
	id, err := urlUUID(r, "playerID")
	if err != nil {
		m.respondError(w, r, err)
		return
	}

	player, err := m.roster.ConvertToRegular(r.Context(), id)
	if err != nil {
		m.respondError(w, r, err)
		return
	}
	core.Render(w, r, core.JSON(player))
}

func (m *Module) playerStatistics(w http.ResponseWriter, r *http.Request) {
	id, err := urlUUID(r, "playerID")
	if err != nil {
		m.respondError(w, r, err)
		return
	}

	stats, err := m.roster.PlayerStatistics(r.Context(), id)
	if err != nil {
		m.respondError(w, r, err)
		return
	}
	core.Render(w, r, core.JSON(stats))
}
