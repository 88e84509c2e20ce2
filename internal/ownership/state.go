package ownership

import "github.com/roach88/storefront/internal/model"

// State is a read-only snapshot of a Manager's cache.
type State struct {
	Store     *model.Store
	Profile   *model.Profile
	Loading   bool
	LoadError string
}

// State returns a snapshot. The returned records are copies; mutating them
// does not affect the Manager.
func (m *Manager) State() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return State{
		Store:     copyStore(m.store),
		Profile:   copyProfile(m.profile),
		Loading:   m.loading,
		LoadError: m.loadError,
	}
}

// IsAdmin reports whether the cached profile has the admin role.
func (m *Manager) IsAdmin() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.profile != nil && m.profile.Role == model.RoleAdmin
}

// IsStoreOwner reports whether the cached store belongs to the signed-in principal.
func (m *Manager) IsStoreOwner() bool {
	principal := m.principal()
	m.mu.RLock()
	defer m.mu.RUnlock()
	return principal != "" && m.store != nil && m.store.OwnerID == principal
}

// IsStoreConfigured reports whether the cached store's name and phone have
// both been changed from the trigger's placeholders.
func (m *Manager) IsStoreConfigured() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.store == nil {
		return false
	}
	return m.store.Name != m.placeholder.Name &&
		m.store.WhatsAppNumber != m.placeholder.WhatsApp
}

func (m *Manager) cachedStore() *model.Store {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return copyStore(m.store)
}

func copyStore(st *model.Store) *model.Store {
	if st == nil {
		return nil
	}
	c := *st
	if st.Description != nil {
		d := *st.Description
		c.Description = &d
	}
	if st.LogoURL != nil {
		l := *st.LogoURL
		c.LogoURL = &l
	}
	return &c
}

func copyProfile(p *model.Profile) *model.Profile {
	if p == nil {
		return nil
	}
	c := *p
	if p.FullName != nil {
		n := *p.FullName
		c.FullName = &n
	}
	if p.AvatarURL != nil {
		a := *p.AvatarURL
		c.AvatarURL = &a
	}
	return &c
}
