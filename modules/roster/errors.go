package roster

import (
	"errors"
	"net/http"

	"github.com/dmitrymomot/rosterkit/core"
	"github.com/dmitrymomot/rosterkit/pkg/scope"
	"github.com/dmitrymomot/rosterkit/pkg/session"
	"github.com/dmitrymomot/rosterkit/pkg/tenant"
	authsvc "github.com/dmitrymomot/rosterkit/svc/auth"
	rostersvc "github.com/dmitrymomot/rosterkit/svc/roster"
	tenantsvc "github.com/dmitrymomot/rosterkit/svc/tenant"
)

// respondError translates a domain error into the API's JSON error envelope.
// Anything without an explicit mapping renders as an opaque 500.
func (m *Module) respondError(w http.ResponseWriter, r *http.Request, err error) {
	core.Render(w, r, core.JSONError(mapError(err)))
}

func mapError(err error) error {
	switch {
	case errors.Is(err, scope.ErrNoTenant),
		errors.Is(err, tenant.ErrTenantNotFound),
		errors.Is(err, tenant.ErrNoTenantInContext):
		return core.ErrNotFound.WithMessage("tenant not resolved")
	case errors.Is(err, tenant.ErrInactiveTenant):
		return core.ErrForbidden.WithMessage("tenant is deactivated")
	case errors.Is(err, scope.ErrAccessDenied):
		return core.ErrForbidden
	case errors.Is(err, authsvc.ErrAdminRequired):
		return core.ErrForbidden.WithMessage(err.Error())

	case errors.Is(err, authsvc.ErrInvalidCredentials),
		errors.Is(err, session.ErrTenantMismatch):
		return core.ErrUnauthorized.WithMessage("invalid credentials")

	case errors.Is(err, authsvc.ErrEmailAlreadyExists),
		errors.Is(err, authsvc.ErrInvitationPending),
		errors.Is(err, rostersvc.ErrEmailTaken),
		errors.Is(err, tenantsvc.ErrIdentifierTaken):
		return core.ErrConflict.WithMessage(err.Error())

	case errors.Is(err, rostersvc.ErrPlayerNotFound),
		errors.Is(err, rostersvc.ErrGameNotFound),
		errors.Is(err, rostersvc.ErrInvitationNotFound),
		errors.Is(err, rostersvc.ErrNotAssigned),
		errors.Is(err, authsvc.ErrUserNotFound),
		errors.Is(err, authsvc.ErrInvitationNotFound):
		return core.ErrNotFound.WithMessage(err.Error())

	case errors.Is(err, tenantsvc.ErrIdentifierReserved),
		errors.Is(err, tenantsvc.ErrInvalidName),
		errors.Is(err, tenantsvc.ErrInvalidPositionMode),
		errors.Is(err, authsvc.ErrInvalidEmail),
		errors.Is(err, authsvc.ErrWeakPassword),
		errors.Is(err, authsvc.ErrInvalidRole),
		errors.Is(err, authsvc.ErrInvitationExpired),
		errors.Is(err, authsvc.ErrLastAdmin),
		errors.Is(err, authsvc.ErrOwnAccount),
		errors.Is(err, rostersvc.ErrInvalidPlayer),
		errors.Is(err, rostersvc.ErrInvalidPosition),
		errors.Is(err, rostersvc.ErrInvalidPlayerType),
		errors.Is(err, rostersvc.ErrInvalidSparePriority),
		errors.Is(err, rostersvc.ErrInvalidSkillRating),
		errors.Is(err, rostersvc.ErrInvalidGame),
		errors.Is(err, rostersvc.ErrInvalidGameStatus),
		errors.Is(err, rostersvc.ErrInvalidTeamNumber),
		errors.Is(err, rostersvc.ErrInvalidStatistic),
		errors.Is(err, rostersvc.ErrNoPlayers):
		return core.ErrUnprocessableEntity.WithMessage(err.Error())
	}
	return err
}
