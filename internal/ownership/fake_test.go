package ownership

import (
	"context"
	"fmt"
	"sync"

	"github.com/roach88/storefront/internal/model"
)

// updateCall records one UpdateStore invocation.
type updateCall struct {
	ID    string
	Patch model.StorePatch
}

// fakeBackend is an in-memory Backend that records calls and lets tests
// inject failures at each step of the create protocol.
type fakeBackend struct {
	mu sync.Mutex

	profiles map[string]*model.Profile
	stores   map[string]*model.Store // by id
	nextID   int

	profileErr error
	storeErr   error
	maybeErr   error
	insertErr  error
	updateErr  error
	byIDErr    error

	// onInsert runs before InsertStore applies; used to simulate the trigger
	// winning the race between the existence check and the insert.
	onInsert func()

	// recoveryEmpty makes StoreByOwner report NotFound after a failed insert.
	recoveryEmpty bool
	insertFailed  bool

	// ignoreUpdates acknowledges UpdateStore without applying the patch.
	ignoreUpdates bool

	calls          []string
	inserts        []model.Store
	storeUpdates   []updateCall
	profileUpdates []string
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		profiles: map[string]*model.Profile{},
		stores:   map[string]*model.Store{},
	}
}

func (f *fakeBackend) record(call string) {
	f.calls = append(f.calls, call)
}

func (f *fakeBackend) addProfile(id string, role model.Role) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.profiles[id] = &model.Profile{ID: id, Role: role}
}

func (f *fakeBackend) addStore(st model.Store) *model.Store {
	f.mu.Lock()
	defer f.mu.Unlock()
	if st.ID == "" {
		f.nextID++
		st.ID = fmt.Sprintf("store-%d", f.nextID)
	}
	c := st
	f.stores[st.ID] = &c
	return &c
}

func (f *fakeBackend) byOwner(ownerID string) *model.Store {
	for _, st := range f.stores {
		if st.OwnerID == ownerID {
			c := *st
			return &c
		}
	}
	return nil
}

func (f *fakeBackend) ProfileByID(_ context.Context, id string) (*model.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("ProfileByID")
	if f.profileErr != nil {
		return nil, f.profileErr
	}
	p, ok := f.profiles[id]
	if !ok {
		return nil, model.NotFound("profile")
	}
	c := *p
	return &c, nil
}

func (f *fakeBackend) StoreByOwner(_ context.Context, ownerID string) (*model.Store, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("StoreByOwner")
	if f.storeErr != nil {
		return nil, f.storeErr
	}
	if f.recoveryEmpty && f.insertFailed {
		return nil, model.NotFound("store")
	}
	if st := f.byOwner(ownerID); st != nil {
		return st, nil
	}
	return nil, model.NotFound("store")
}

func (f *fakeBackend) MaybeStoreByOwner(_ context.Context, ownerID string) (*model.Store, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("MaybeStoreByOwner")
	if f.maybeErr != nil {
		return nil, f.maybeErr
	}
	return f.byOwner(ownerID), nil
}

func (f *fakeBackend) StoreByID(_ context.Context, id string) (*model.Store, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("StoreByID")
	if f.byIDErr != nil {
		return nil, f.byIDErr
	}
	st, ok := f.stores[id]
	if !ok {
		return nil, model.NotFound("store")
	}
	c := *st
	return &c, nil
}

func (f *fakeBackend) PublishedStoreBySlug(_ context.Context, slug string) (*model.Store, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("PublishedStoreBySlug")
	if f.storeErr != nil {
		return nil, f.storeErr
	}
	for _, st := range f.stores {
		if st.Slug == slug && st.Published {
			c := *st
			return &c, nil
		}
	}
	return nil, model.NotFound("store")
}

func (f *fakeBackend) InsertStore(_ context.Context, st model.Store) (*model.Store, error) {
	if f.onInsert != nil {
		f.onInsert()
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("InsertStore")
	f.inserts = append(f.inserts, st)

	if f.insertErr != nil {
		f.insertFailed = true
		return nil, f.insertErr
	}
	if f.byOwner(st.OwnerID) != nil {
		f.insertFailed = true
		return nil, model.UniqueViolation(model.ConstraintStoreOwner, nil)
	}
	for _, other := range f.stores {
		if other.Slug == st.Slug {
			f.insertFailed = true
			return nil, model.UniqueViolation(model.ConstraintStoreSlug, nil)
		}
	}

	f.nextID++
	st.ID = fmt.Sprintf("store-%d", f.nextID)
	c := st
	f.stores[st.ID] = &c
	out := c
	return &out, nil
}

func (f *fakeBackend) UpdateStore(_ context.Context, id string, patch model.StorePatch) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("UpdateStore")
	f.storeUpdates = append(f.storeUpdates, updateCall{ID: id, Patch: patch})
	if f.updateErr != nil {
		return f.updateErr
	}
	if f.ignoreUpdates {
		return nil
	}
	st, ok := f.stores[id]
	if !ok {
		return model.NotFound("store")
	}
	if patch.Name != nil {
		st.Name = *patch.Name
	}
	if patch.Slug != nil {
		st.Slug = *patch.Slug
	}
	if patch.WhatsAppNumber != nil {
		st.WhatsAppNumber = *patch.WhatsAppNumber
	}
	if patch.Description != nil {
		st.Description = *patch.Description
	}
	if patch.LogoURL != nil {
		st.LogoURL = *patch.LogoURL
	}
	if patch.Published != nil {
		st.Published = *patch.Published
	}
	return nil
}

func (f *fakeBackend) UpdateProfile(_ context.Context, id string, patch model.ProfilePatch) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("UpdateProfile")
	f.profileUpdates = append(f.profileUpdates, id)
	p, ok := f.profiles[id]
	if !ok {
		return model.NotFound("profile")
	}
	if patch.FullName != nil {
		p.FullName = *patch.FullName
	}
	if patch.AvatarURL != nil {
		p.AvatarURL = *patch.AvatarURL
	}
	if patch.Role != nil {
		p.Role = *patch.Role
	}
	return nil
}

func (f *fakeBackend) count(call string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		if c == call {
			n++
		}
	}
	return n
}
