// Package store provides the SQLite-backed store of record for storefront data.
//
// The store holds four tables:
//   - profiles: one row per principal (role admin | owner)
//   - stores: one row per principal, UNIQUE(owner_id) and UNIQUE(slug)
//   - products: catalog rows whose stock is decremented on checkout
//   - orders: checked-out cart snapshots
//
// # Error Model
//
// Every failure leaves this package as a *model.BackendError:
//   - single-row lookups that match nothing return KindNotFound
//   - UNIQUE and PRIMARY KEY violations return KindUniqueViolation with the
//     constraint name (stores_owner_id_unique, stores_slug_key, ...)
//   - anything else is KindOther carrying the driver's message
//
// Callers branch on the kind; they never match on SQLite message text.
//
// # Provisioning Trigger
//
// ProvisionPrincipal plays the part of the server-side trigger that creates
// a placeholder profile and store when a principal registers. It can run
// concurrently with a client's own CreateStore; the UNIQUE(owner_id)
// constraint decides which insert wins.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Enforce referential integrity
package store
