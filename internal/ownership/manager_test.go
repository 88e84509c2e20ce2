package ownership

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/storefront/internal/model"
)

const principal = "user-1"

func newManager(f *fakeBackend, session Session, opts ...Option) *Manager {
	return New(f, session, opts...)
}

// loadedManager returns a manager whose cache holds principal's profile and a configured store.
func loadedManager(t *testing.T) (*Manager, *fakeBackend, *model.Store) {
	t.Helper()
	f := newFakeBackend()
	f.addProfile(principal, model.RoleOwner)
	st := f.addStore(model.Store{
		Name: "Doces", Slug: "doces", WhatsAppNumber: "5511912345678",
		OwnerID: principal, Published: true,
	})
	m := newManager(f, StaticSession(principal))
	res, err := m.LoadCurrentPrincipalStore(context.Background())
	require.NoError(t, err)
	require.Equal(t, StatusLoaded, res.Status)
	return m, f, st
}

func TestLoad_SignedOutClearsState(t *testing.T) {
	m, f, _ := loadedManager(t)
	require.NotNil(t, m.State().Store)

	signedOut := newManager(f, StaticSession(""))
	signedOut.store = m.State().Store
	signedOut.profile = m.State().Profile
	signedOut.loadError = "stale"

	res, err := signedOut.LoadCurrentPrincipalStore(context.Background())
	require.NoError(t, err)
	assert.Equal(t, StatusSignedOut, res.Status)

	state := signedOut.State()
	assert.Nil(t, state.Store)
	assert.Nil(t, state.Profile)
	assert.Empty(t, state.LoadError)
	assert.False(t, state.Loading)
}

func TestLoad_NilSessionIsSignedOut(t *testing.T) {
	m := New(newFakeBackend(), nil)
	res, err := m.LoadCurrentPrincipalStore(context.Background())
	require.NoError(t, err)
	assert.Equal(t, StatusSignedOut, res.Status)
}

func TestLoad_ProfileNotFoundIsFatal(t *testing.T) {
	f := newFakeBackend()
	m := newManager(f, StaticSession(principal))

	_, err := m.LoadCurrentPrincipalStore(context.Background())
	require.ErrorIs(t, err, ErrProfileNotFound)

	state := m.State()
	assert.Nil(t, state.Store)
	assert.Equal(t, ErrProfileNotFound.Error(), state.LoadError)
	assert.Equal(t, 0, f.count("StoreByOwner"), "store is not queried without a profile")
}

func TestLoad_ProfileOtherErrorCarriesMessage(t *testing.T) {
	f := newFakeBackend()
	f.profileErr = model.Other(errors.New("connection reset"))
	m := newManager(f, StaticSession(principal))

	_, err := m.LoadCurrentPrincipalStore(context.Background())
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrProfileNotFound)
	assert.Contains(t, err.Error(), "connection reset")
	assert.Equal(t, "connection reset", m.State().LoadError)
}

func TestLoad_StoreNotFoundIsStatus(t *testing.T) {
	f := newFakeBackend()
	f.addProfile(principal, model.RoleOwner)
	m := newManager(f, StaticSession(principal))

	res, err := m.LoadCurrentPrincipalStore(context.Background())
	require.NoError(t, err)
	assert.Equal(t, StatusStoreNotFound, res.Status)
	assert.Nil(t, res.Store)
	require.NotNil(t, res.Profile)

	state := m.State()
	assert.Equal(t, StoreNotFoundCode, state.LoadError)
	assert.Nil(t, state.Store)
	require.NotNil(t, state.Profile, "profile stays cached")
	assert.Equal(t, principal, state.Profile.ID)
}

func TestLoad_StoreOtherErrorIsFatal(t *testing.T) {
	f := newFakeBackend()
	f.addProfile(principal, model.RoleOwner)
	f.storeErr = model.Other(errors.New("timeout"))
	m := newManager(f, StaticSession(principal))

	_, err := m.LoadCurrentPrincipalStore(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "timeout")
	assert.Equal(t, "timeout", m.State().LoadError)
}

func TestLoad_SuccessCachesAndClearsError(t *testing.T) {
	m, _, st := loadedManager(t)

	state := m.State()
	require.NotNil(t, state.Store)
	assert.Equal(t, st.ID, state.Store.ID)
	assert.Empty(t, state.LoadError)
	assert.False(t, state.Loading)
	assert.True(t, m.IsStoreOwner())
	assert.True(t, m.IsStoreConfigured())
	assert.False(t, m.IsAdmin())
}

func TestState_ReturnsCopies(t *testing.T) {
	m, _, _ := loadedManager(t)

	snapshot := m.State()
	snapshot.Store.Name = "mutated"
	snapshot.Profile.Role = model.RoleAdmin

	assert.Equal(t, "Doces", m.State().Store.Name)
	assert.False(t, m.IsAdmin())
}

func TestUpdateStore_RequiresCachedStore(t *testing.T) {
	m := newManager(newFakeBackend(), StaticSession(principal))
	err := m.UpdateStore(context.Background(), model.StorePatch{Name: model.String("x")})
	assert.ErrorIs(t, err, ErrNoStoreLoaded)
}

func TestUpdateStore_NormalizesPhoneAndReloads(t *testing.T) {
	m, f, st := loadedManager(t)
	loadsBefore := f.count("ProfileByID")

	err := m.UpdateStore(context.Background(), model.StorePatch{
		WhatsAppNumber: model.String("21 3333-4444"),
	})
	require.NoError(t, err)

	require.Len(t, f.storeUpdates, 1)
	assert.Equal(t, st.ID, f.storeUpdates[0].ID)
	assert.Equal(t, "552133334444", *f.storeUpdates[0].Patch.WhatsAppNumber)

	assert.Equal(t, loadsBefore+1, f.count("ProfileByID"), "a successful update reloads")
	assert.Equal(t, "552133334444", m.State().Store.WhatsAppNumber)
}

func TestUpdateStore_CacheComesFromReloadNotPatch(t *testing.T) {
	m, f, _ := loadedManager(t)

	// The backend acknowledges the write without applying it. The cache must
	// follow the backend, not the patch.
	f.ignoreUpdates = true

	err := m.UpdateStore(context.Background(), model.StorePatch{Name: model.String("Novo")})
	require.NoError(t, err)
	assert.Equal(t, "Doces", m.State().Store.Name)
}

func TestUpdateStore_FailureLeavesCache(t *testing.T) {
	m, f, _ := loadedManager(t)
	f.mu.Lock()
	for id := range f.stores {
		delete(f.stores, id)
	}
	f.mu.Unlock()

	err := m.UpdateStore(context.Background(), model.StorePatch{Name: model.String("Novo")})
	require.True(t, model.IsNotFound(err))
	assert.Equal(t, "Doces", m.State().Store.Name)
}

func TestUpdateStore_BackendErrorSkipsReload(t *testing.T) {
	m, f, _ := loadedManager(t)
	f.updateErr = model.Other(errors.New("boom"))
	loadsBefore := f.count("ProfileByID")

	err := m.UpdateStore(context.Background(), model.StorePatch{Name: model.String("x")})
	require.Error(t, err)
	assert.Equal(t, loadsBefore, f.count("ProfileByID"))
}

func TestUpdateProfile(t *testing.T) {
	t.Run("requires principal", func(t *testing.T) {
		m := newManager(newFakeBackend(), StaticSession(""))
		err := m.UpdateProfile(context.Background(), model.ProfilePatch{})
		assert.ErrorIs(t, err, ErrNotAuthenticated)
	})

	t.Run("updates by principal and reloads", func(t *testing.T) {
		m, f, _ := loadedManager(t)
		admin := model.RoleAdmin

		err := m.UpdateProfile(context.Background(), model.ProfilePatch{Role: &admin})
		require.NoError(t, err)
		assert.Equal(t, []string{principal}, f.profileUpdates)
		assert.True(t, m.IsAdmin(), "reload picked up the new role")
	})
}

func TestGetStoreBySlug(t *testing.T) {
	f := newFakeBackend()
	f.addStore(model.Store{Slug: "aberta", OwnerID: "a", Published: true})
	f.addStore(model.Store{Slug: "fechada", OwnerID: "b", Published: false})
	m := newManager(f, StaticSession(""))
	ctx := context.Background()

	st, err := m.GetStoreBySlug(ctx, "aberta")
	require.NoError(t, err)
	require.NotNil(t, st)
	assert.Equal(t, "aberta", st.Slug)

	st, err = m.GetStoreBySlug(ctx, "fechada")
	require.NoError(t, err)
	assert.Nil(t, st)

	st, err = m.GetStoreBySlug(ctx, "nenhuma")
	require.NoError(t, err)
	assert.Nil(t, st)

	f.storeErr = model.Other(errors.New("down"))
	_, err = m.GetStoreBySlug(ctx, "aberta")
	assert.Error(t, err)
}

func TestIsStoreConfigured_Placeholders(t *testing.T) {
	tests := []struct {
		name     string
		store    model.Store
		expected bool
	}{
		{"both placeholders", model.Store{Name: model.PlaceholderStoreName, WhatsAppNumber: model.PlaceholderWhatsApp}, false},
		{"placeholder name", model.Store{Name: model.PlaceholderStoreName, WhatsAppNumber: "5511912345678"}, false},
		{"placeholder phone", model.Store{Name: "Doces", WhatsAppNumber: model.PlaceholderWhatsApp}, false},
		{"configured", model.Store{Name: "Doces", WhatsAppNumber: "5511912345678"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newManager(newFakeBackend(), StaticSession(principal))
			st := tt.store
			m.store = &st
			assert.Equal(t, tt.expected, m.IsStoreConfigured())
		})
	}

	m := newManager(newFakeBackend(), StaticSession(principal))
	assert.False(t, m.IsStoreConfigured(), "no store is not configured")
}

func TestIsStoreOwner(t *testing.T) {
	m := newManager(newFakeBackend(), StaticSession(principal))
	assert.False(t, m.IsStoreOwner())

	m.store = &model.Store{OwnerID: "someone-else"}
	assert.False(t, m.IsStoreOwner())

	m.store = &model.Store{OwnerID: principal}
	assert.True(t, m.IsStoreOwner())

	signedOut := newManager(newFakeBackend(), StaticSession(""))
	signedOut.store = &model.Store{OwnerID: ""}
	assert.False(t, signedOut.IsStoreOwner())
}
