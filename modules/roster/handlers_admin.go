package roster

import (
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/rosterkit/core"
	"github.com/dmitrymomot/rosterkit/pkg/session"
	authsvc "github.com/dmitrymomot/rosterkit/svc/auth"
)

func (m *Module) listUsers(w http.ResponseWriter, r *http.Request) {
	sess, ok := session.FromContext(r.Context())
	if !ok || !sess.IsAuthenticated() {
		m.respondError(w, r, core.ErrUnauthorized)
		return
	}

	q := r.URL.Query()
	var filter authsvc.UserFilter
	switch q.Get("role") {
	case "admin":
		admin := true
		filter.Admin = &admin
	case "user":
		admin := false
		filter.Admin = &admin
	}
	switch q.Get("active") {
	case "true":
		active := true
		filter.Active = &active
	case "false":
		active := false
		filter.Active = &active
	}
	filter.Search = q.Get("search")

	users, err := m.auth.ListUsers(r.Context(), *sess.UserID, filter)
	if err != nil {
		m.respondError(w, r, err)
		return
	}
	core.Render(w, r, core.JSONWithMeta(users, map[string]any{"count": len(users)}))
}

type inviteAdminRequest struct {
	Email string `json:"email"`
	Role  string `json:"role,omitempty"`
}

func (m *Module) inviteAdmin(w http.ResponseWriter, r *http.Request) {
	sess, ok := session.FromContext(r.Context())
	if !ok || !sess.IsAuthenticated() {
		m.respondError(w, r, core.ErrUnauthorized)
		return
	}

	var req inviteAdminRequest
	if err := core.DecodeJSON(r, &req); err != nil {
		m.respondError(w, r, err)
		return
	}

	inv, err := m.auth.InviteAdmin(r.Context(), *sess.UserID, req.Email, req.Role)
	if err != nil {
		m.respondError(w, r, err)
		return
	}

	m.logger.InfoContext(r.Context(), "admin invitation sent",
		slog.String("invitation_id", inv.ID.String()))
	core.Render(w, r, core.JSONCreated(inv))
}

type acceptInvitationRequest struct {
	Token    string `json:"token"`
	Password string `json:"password"`
}

func (m *Module) acceptInvitation(w http.ResponseWriter, r *http.Request) {
	var req acceptInvitationRequest
	if err := core.DecodeJSON(r, &req); err != nil {
		m.respondError(w, r, err)
		return
	}

	user, err := m.auth.AcceptInvitation(r.Context(), req.Token, req.Password)
	if err != nil {
		m.respondError(w, r, err)
		return
	}

	m.logger.InfoContext(r.Context(), "admin invitation accepted",
		slog.String("user_id", user.ID.String()))
	core.Render(w, r, core.JSONCreated(user))
}

type setRoleRequest struct {
	IsAdmin bool `json:"is_admin"`
}

func (m *Module) setUserRole(w http.ResponseWriter, r *http.Request) {
	sess, ok := session.FromContext(r.Context())
	if !ok || !sess.IsAuthenticated() {
		m.respondError(w, r, core.ErrUnauthorized)
		return
	}

	id, err := urlUUID(r, "userID")
	if err != nil {
		m.respondError(w, r, err)
		return
	}

	var req setRoleRequest
	if err := core.DecodeJSON(r, &req); err != nil {
		m.respondError(w, r, err)
		return
	}

	user, err := m.auth.SetRole(r.Context(), *sess.UserID, id, req.IsAdmin)
	if err != nil {
		m.respondError(w, r, err)
		return
	}
	core.Render(w, r, core.JSON(user))
}

func (m *Module) activateUser(w http.ResponseWriter, r *http.Request) {
	m.setUserActive(w, r, true)
}

func (m *Module) deactivateUser(w http.ResponseWriter, r *http.Request) {
	m.setUserActive(w, r, false)
}

func (m *Module) setUserActive(w http.ResponseWriter, r *http.Request, active bool) {
	sess, ok := session.FromContext(r.Context())
	if !ok || !sess.IsAuthenticated() {
		m.respondError(w, r, core.ErrUnauthorized)
		return
	}

	id, err := urlUUID(r, "userID")
	if err != nil {
		m.respondError(w, r, err)
		return
	}

	user, err := m.auth.SetActive(r.Context(), *sess.UserID, id, active)
	if err != nil {
		m.respondError(w, r, err)
		return
	}
	core.Render(w, r, core.JSON(user))
}

func (m *Module) deleteUser(w http.ResponseWriter, r *http.Request) {
	sess, ok := session.FromContext(r.Context())
	if !ok || !sess.IsAuthenticated() {
		m.respondError(w, r, core.ErrUnauthorized)
		return
	}

	id, err := urlUUID(r, "userID")
	if err != nil {
		m.respondError(w, r, err)
		return
	}

	if err := m.auth.RemoveUser(r.Context(), *sess.UserID, id); err != nil {
		m.respondError(w, r, err)
		return
	}
	core.Render(w, r, core.NoContent())
}
