// Package teambalance computes deterministic, skill-balanced two-team splits
// for pickup game rosters.
//
// The engine is pure: it reads player positions and ratings, nothing else.
// Tenant filtering and persistence happen in the caller before and after the
// split. See Balance for the algorithm.
package teambalance
