// Package roster exposes the tenant, auth, and roster services over a JSON
// HTTP API. The module owns routing and request decoding only; all domain
// rules live in the services it mounts.
package roster

import (
	"io"
	"log/slog"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/rosterkit/pkg/session"
	authsvc "github.com/dmitrymomot/rosterkit/svc/auth"
	rostersvc "github.com/dmitrymomot/rosterkit/svc/roster"
	tenantsvc "github.com/dmitrymomot/rosterkit/svc/tenant"
)

// Module bundles the services behind the API routes.
type Module struct {
	tenants  *tenantsvc.Service
	auth     *authsvc.Service
	roster   *rostersvc.Service
	sessions *session.Manager
	logger   *slog.Logger
}

// Option configures the module.
type Option func(*Module)

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Module) {
		m.logger = logger
	}
}

// New assembles the API module over the given services.
func New(tenants *tenantsvc.Service, auth *authsvc.Service, roster *rostersvc.Service, sessions *session.Manager, opts ...Option) *Module {
	m := &Module{
		tenants:  tenants,
		auth:     auth,
		roster:   roster,
		sessions: sessions,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Router builds the API route tree. The caller applies the session and
// tenant resolution middlewares around it; routes under the tenant group
// additionally enforce session-tenant binding.
func (m *Module) Router() chi.Router {
	r := chi.NewRouter()

	// Tenant onboarding works before any tenant is resolved.
	r.Route("/tenants", func(r chi.Router) {
		r.Post("/register", m.registerTenant)
		r.Get("/availability", m.checkAvailability)
	})

	r.Group(func(r chi.Router) {
		r.Use(m.sessions.BindTenantMiddleware)

		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", m.registerUser)
			r.Post("/login", m.login)
			r.Post("/logout", m.logout)
			r.Post("/invitations/accept", m.acceptInvitation)

			r.Group(func(r chi.Router) {
				r.Use(m.sessions.RequireAuth)
				r.Get("/me", m.currentUser)
				r.Put("/password", m.changePassword)
			})
		})

		r.Group(func(r chi.Router) {
			r.Use(m.sessions.RequireAuth)

			r.Route("/tenant", func(r chi.Router) {
				r.Get("/", m.currentTenant)
				r.Patch("/", m.renameTenant)
				r.Patch("/settings", m.updateTenantSettings)
				r.Delete("/", m.deactivateTenant)
			})

			// User administration is service-guarded: every operation
			// verifies the acting account is an active admin.
			r.Route("/users", func(r chi.Router) {
				r.Get("/", m.listUsers)
				r.Post("/invite", m.inviteAdmin)
				r.Put("/{userID}/role", m.setUserRole)
				r.Post("/{userID}/activate", m.activateUser)
				r.Post("/{userID}/deactivate", m.deactivateUser)
				r.Delete("/{userID}", m.deleteUser)
			})

			r.Route("/players", func(r chi.Router) {
				r.Get("/", m.listPlayers)
				r.Post("/", m.createPlayer)
				r.Get("/{playerID}", m.getPlayer)
				r.Patch("/{playerID}", m.updatePlayer)
				r.Delete("/{playerID}", m.deletePlayer)
				r.Post("/{playerID}/convert-to-spare", m.convertToSpare)
				r.Post("/{playerID}/convert-to-regular", m.convertToRegular)
				r.Get("/{playerID}/statistics", m.playerStatistics)
			})

			r.Route("/games", func(r chi.Router) {
				r.Get("/", m.listGames)
				r.Post("/", m.createGame)
				r.Get("/{gameID}", m.getGame)
				r.Patch("/{gameID}", m.updateGame)
				r.Delete("/{gameID}", m.deleteGame)

				r.Post("/{gameID}/assign", m.autoAssignTeams)
				r.Get("/{gameID}/roster", m.gameRoster)
				r.Post("/{gameID}/move", m.movePlayer)
				r.Post("/{gameID}/swap", m.swapPlayers)

				r.Post("/{gameID}/invitations", m.invitePlayers)
				r.Get("/{gameID}/invitations", m.gameInvitations)

				r.Post("/{gameID}/statistics", m.recordStatistic)
				r.Get("/{gameID}/statistics", m.gameStatistics)
			})

			r.Route("/invitations/{invitationID}", func(r chi.Router) {
				r.Post("/opened", m.markInvitationOpened)
				r.Post("/respond", m.respondToInvitation)
			})
		})
	})

	return r
}
