// Package scope enforces tenant isolation on every data access.
//
// Three layers cooperate:
//
//   - The Scoped capability (usually gained by embedding TenantRef) marks an
//     entity type as tenant-owned.
//   - Store is the persistence contract where the tenant ID is a mandatory
//     argument on every query, making the filter statically checkable
//     instead of something a call site could forget.
//   - Repository derives the tenant from the request context, stamps new
//     entities on create, and narrows every read and bulk write to the
//     resolved tenant's partition.
//
// The explicit Authorize check covers the residual case of an entity loaded
// through a tenant-unaware path (for example, by a raw primary key): it
// denies access on mismatch and fails closed when no tenant is resolved.
// Lookups never distinguish "owned by another tenant" from "does not exist",
// which prevents tenant enumeration through error responses.
package scope
