package roster

import (
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/rosterkit/core"
	"github.com/dmitrymomot/rosterkit/pkg/session"
	"github.com/dmitrymomot/rosterkit/pkg/tenant"
)

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (m *Module) registerUser(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := core.DecodeJSON(r, &req); err != nil {
		m.respondError(w, r, err)
		return
	}

	user, err := m.auth.Register(r.Context(), req.Email, req.Password)
	if err != nil {
		m.respondError(w, r, err)
		return
	}

	m.logger.InfoContext(r.Context(), "user registered",
		slog.String("user_id", user.ID.String()))
	core.Render(w, r, core.JSONCreated(user))
}

func (m *Module) login(w http.ResponseWriter, r *http.Request) {
	tid, ok := tenant.IDFromContext(r.Context())
	if !ok {
		m.respondError(w, r, tenant.ErrNoTenantInContext)
		return
	}

	var req credentialsRequest
	if err := core.DecodeJSON(r, &req); err != nil {
		m.respondError(w, r, err)
		return
	}

	user, err := m.auth.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		m.respondError(w, r, err)
		return
	}

	if _, err := m.sessions.Authenticate(r.Context(), w, r, user.ID, tid); err != nil {
		m.respondError(w, r, err)
		return
	}
	core.Render(w, r, core.JSON(user))
}

func (m *Module) logout(w http.ResponseWriter, r *http.Request) {
	if err := m.sessions.Destroy(r.Context(), w, r); err != nil {
		m.respondError(w, r, err)
		return
	}
	core.Render(w, r, core.NoContent())
}

func (m *Module) currentUser(w http.ResponseWriter, r *http.Request) {
	sess, ok := session.FromContext(r.Context())
	if !ok || !sess.IsAuthenticated() {
		m.respondError(w, r, core.ErrUnauthorized)
		return
	}

	// The route is exempt from tenant resolution so session probing works
	// on any host; recover the tenant from the session binding instead.
	ctx := r.Context()
	if _, resolved := tenant.FromContext(ctx); !resolved && sess.TenantID != nil {
		t, err := m.tenants.GetByID(ctx, *sess.TenantID)
		if err != nil {
			m.respondError(w, r, err)
			return
		}
		ctx = tenant.WithTenant(ctx, t)
	}

	user, err := m.auth.GetUser(ctx, *sess.UserID)
	if err != nil {
		m.respondError(w, r, err)
		return
	}
	core.Render(w, r, core.JSON(user))
}

type changePasswordRequest struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

func (m *Module) changePassword(w http.ResponseWriter, r *http.Request) {
	sess, ok := session.FromContext(r.Context())
	if !ok || !sess.IsAuthenticated() {
		m.respondError(w, r, core.ErrUnauthorized)
		return
	}

	var req changePasswordRequest
	if err := core.DecodeJSON(r, &req); err != nil {
		m.respondError(w, r, err)
		return
	}

	if err := m.auth.ChangePassword(r.Context(), *sess.UserID, req.OldPassword, req.NewPassword); err != nil {
		m.respondError(w, r, err)
		return
	}
	core.Render(w, r, core.NoContent())
}
