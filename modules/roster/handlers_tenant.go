package roster

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/dmitrymomot/rosterkit/core"
	"github.com/dmitrymomot/rosterkit/pkg/tenant"
	tenantsvc "github.com/dmitrymomot/rosterkit/svc/tenant"
)

func urlUUID(r *http.Request, key string) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, key))
	if err != nil {
		return uuid.Nil, core.ErrBadRequest.WithMessage("invalid " + key)
	}
	return id, nil
}

type registerTenantRequest struct {
	Name         string `json:"name"`
	Slug         string `json:"slug,omitempty"`
	Subdomain    string `json:"subdomain,omitempty"`
	PositionMode string `json:"position_mode,omitempty"`
}

func (m *Module) registerTenant(w http.ResponseWriter, r *http.Request) {
	var req registerTenantRequest
	if err := core.DecodeJSON(r, &req); err != nil {
		m.respondError(w, r, err)
		return
	}

	t, err := m.tenants.Register(r.Context(), tenantsvc.RegisterParams{
		Name:         req.Name,
		Slug:         req.Slug,
		Subdomain:    req.Subdomain,
		PositionMode: tenant.PositionMode(req.PositionMode),
	})
	if err != nil {
		m.respondError(w, r, err)
		return
	}

	m.logger.InfoContext(r.Context(), "tenant registered",
		slog.String("tenant_id", t.ID.String()),
		slog.String("slug", t.Slug))
	core.Render(w, r, core.JSONCreated(t))
}

func (m *Module) checkAvailability(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	subdomain := r.URL.Query().Get("subdomain")

	availability, err := m.tenants.CheckAvailability(r.Context(), name, subdomain)
	if err != nil {
		m.respondError(w, r, err)
		return
	}
	core.Render(w, r, core.JSON(availability))
}

func (m *Module) currentTenant(w http.ResponseWriter, r *http.Request) {
	t, ok := tenant.FromContext(r.Context())
	if !ok {
		m.respondError(w, r, tenant.ErrNoTenantInContext)
		return
	}
	core.Render(w, r, core.JSON(t))
}

type renameTenantRequest struct {
	Name string `json:"name"`
}

func (m *Module) renameTenant(w http.ResponseWriter, r *http.Request) {
	t, ok := tenant.FromContext(r.Context())
	if !ok {
		m.respondError(w, r, tenant.ErrNoTenantInContext)
		return
	}

	var req renameTenantRequest
	if err := core.DecodeJSON(r, &req); err != nil {
		m.respondError(w, r, err)
		return
	}

	updated, err := m.tenants.Rename(r.Context(), t.ID, req.Name)
	if err != nil {
		m.respondError(w, r, err)
		return
	}
	core.Render(w, r, core.JSON(updated))
}

type tenantSettingsRequest struct {
	PositionMode *string `json:"position_mode,omitempty"`
	TeamName1    *string `json:"team_name_1,omitempty"`
	TeamName2    *string `json:"team_name_2,omitempty"`
	TeamColor1   *string `json:"team_color_1,omitempty"`
	TeamColor2   *string `json:"team_color_2,omitempty"`

	GoaltendersNeeded *int `json:"goaltenders_needed,omitempty"`
	DefenceNeeded     *int `json:"defence_needed,omitempty"`
	ForwardsNeeded    *int `json:"forwards_needed,omitempty"`
	SkatersNeeded     *int `json:"skaters_needed,omitempty"`
}

func (m *Module) updateTenantSettings(w http.ResponseWriter, r *http.Request) {
	t, ok := tenant.FromContext(r.Context())
	if !ok {
		m.respondError(w, r, tenant.ErrNoTenantInContext)
		return
	}

	var req tenantSettingsRequest
	if err := core.DecodeJSON(r, &req); err != nil {
		m.respondError(w, r, err)
		return
	}

	params := tenantsvc.SettingsParams{
		TeamName1:  req.TeamName1,
		TeamName2:  req.TeamName2,
		TeamColor1: req.TeamColor1,
		TeamColor2: req.TeamColor2,

		GoaltendersNeeded: req.GoaltendersNeeded,
		DefenceNeeded:     req.DefenceNeeded,
		ForwardsNeeded:    req.ForwardsNeeded,
		SkatersNeeded:     req.SkatersNeeded,
	}
	if req.PositionMode != nil {
		mode := tenant.PositionMode(*req.PositionMode)
		params.PositionMode = &mode
	}

	updated, err := m.tenants.UpdateSettings(r.Context(), t.ID, params)
	if err != nil {
		m.respondError(w, r, err)
		return
	}
	core.Render(w, r, core.JSON(updated))
}

func (m *Module) deactivateTenant(w http.ResponseWriter, r *http.Request) {
	t, ok := tenant.FromContext(r.Context())
	if !ok {
		m.respondError(w, r, tenant.ErrNoTenantInContext)
		return
	}

	if err := m.tenants.Deactivate(r.Context(), t.ID); err != nil {
		m.respondError(w, r, err)
		return
	}
	core.Render(w, r, core.NoContent())
}
