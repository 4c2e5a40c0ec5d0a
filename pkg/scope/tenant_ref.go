package scope

import "github.com/google/uuid"

// TenantRef is an embeddable tenant reference. Embedding it gives an entity
// the Scoped capability with one line:
//
//	type Player struct {
//	    ID uuid.UUID
//	    scope.TenantRef
//	    ...
//	}
//
// The reference is assigned once at creation (see Stamp) and must never
// change for the lifetime of the entity.
type TenantRef struct {
	Tenant uuid.UUID `json:"tenant_id" db:"tenant_id"`
}

// TenantID returns the owning tenant's identifier.
func (r *TenantRef) TenantID() uuid.UUID { return r.Tenant }

// SetTenantID assigns the owning tenant. Intended for Stamp and for store
// implementations scanning rows; application code never calls it directly.
func (r *TenantRef) SetTenantID(id uuid.UUID) { r.Tenant = id }
