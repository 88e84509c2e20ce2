package ownership

import (
	"context"
	"fmt"

	"github.com/roach88/storefront/internal/model"
)

// LoadStatus is the outcome of LoadCurrentPrincipalStore.
type LoadStatus string

const (
	// StatusSignedOut means there is no principal; the cache was cleared.
	StatusSignedOut LoadStatus = "SIGNED_OUT"

	// StatusLoaded means both profile and store were loaded.
	StatusLoaded LoadStatus = "LOADED"

	// StatusStoreNotFound means the profile exists but the store does not.
	StatusStoreNotFound LoadStatus = StoreNotFoundCode
)

// LoadResult carries copies of whatever was loaded.
type LoadResult struct {
	Status  LoadStatus
	Profile *model.Profile
	Store   *model.Store
}

// LoadCurrentPrincipalStore loads the principal's profile, then store.
//
// Outcomes:
//   - no principal: cache cleared, StatusSignedOut, nil error
//   - profile missing: ErrProfileNotFound
//   - store missing: StatusStoreNotFound, nil error, LoadError = STORE_NOT_FOUND
//   - any other backend failure: error carrying the backend message
//   - success: profile and store cached, LoadError cleared, StatusLoaded
func (m *Manager) LoadCurrentPrincipalStore(ctx context.Context) (LoadResult, error) {
	principal := m.principal()
	if principal == "" {
		m.mu.Lock()
		m.store, m.profile, m.loading, m.loadError = nil, nil, false, ""
		m.mu.Unlock()
		return LoadResult{Status: StatusSignedOut}, nil
	}

	m.mu.Lock()
	m.loading = true
	m.loadError = ""
	m.mu.Unlock()

	m.logger.Debug("loading principal store", "principal", principal)

	profile, err := m.backend.ProfileByID(ctx, principal)
	if err != nil {
		m.logger.Error("load profile failed", "principal", principal, "error", err)
		if model.IsNotFound(err) {
			return m.failLoad(ErrProfileNotFound)
		}
		return m.failLoad(fmt.Errorf("load profile: %w", err))
	}

	m.mu.Lock()
	m.profile = copyProfile(profile)
	m.mu.Unlock()

	st, err := m.backend.StoreByOwner(ctx, principal)
	if err != nil {
		if model.IsNotFound(err) {
			m.logger.Warn("principal has no store", "principal", principal)
			m.mu.Lock()
			m.store, m.loading, m.loadError = nil, false, StoreNotFoundCode
			m.mu.Unlock()
			return LoadResult{Status: StatusStoreNotFound, Profile: copyProfile(profile)}, nil
		}
		m.logger.Error("load store failed", "principal", principal, "error", err)
		return m.failLoad(fmt.Errorf("load store: %w", err))
	}

	m.mu.Lock()
	m.store, m.loading, m.loadError = copyStore(st), false, ""
	m.mu.Unlock()

	m.logger.Debug("principal store loaded", "principal", principal, "store", st.ID)
	return LoadResult{Status: StatusLoaded, Profile: copyProfile(profile), Store: copyStore(st)}, nil
}

// failLoad clears the cached store and records err as the load error.
func (m *Manager) failLoad(err error) (LoadResult, error) {
	m.mu.Lock()
	m.store, m.loading, m.loadError = nil, false, model.Message(err)
	m.mu.Unlock()
	return LoadResult{}, err
}
