// Package ownership resolves and provisions the single store owned by the
// signed-in principal.
//
// A Manager is constructed per session and caches the principal's Profile and
// Store. Consumers read the cache through State, which returns copies; only
// the Manager's own operations mutate it.
//
// # Create-or-reconcile
//
// The backing store allows at most one store per owner (UNIQUE(owner_id)) and
// a server-side trigger may create a placeholder store for a new principal at
// any moment. CreateStore converges on exactly one row without client-side
// locking:
//
//  1. A cached store owned by the principal is updated in place.
//  2. Otherwise a maybe-single lookup by owner; a hit is updated in place.
//  3. Otherwise insert with published=true.
//  4. On a UNIQUE violation of stores_owner_id_unique the trigger won the race:
//     look the row up by owner once and update it. An empty lookup is
//     terminal (ErrCreateOrUpdateFailed); there is no second attempt.
//     A stores_slug_key violation returns ErrSlugTaken. Other errors are
//     returned as is.
//  5. A successful insert is cached directly.
//
// The lookup in step 2 is advisory. Mutual exclusion comes from the backing
// store's constraint.
package ownership
