package ownership

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/roach88/storefront/internal/model"
	"github.com/roach88/storefront/internal/phone"
)

// StoreNotFoundCode is the LoadError recorded when the principal has a
// profile but no store yet. Callers route the principal to store setup.
const StoreNotFoundCode = "STORE_NOT_FOUND"

var (
	// ErrNotAuthenticated is returned by operations that need a principal.
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrNoStoreLoaded is returned by UpdateStore before a store is cached.
	ErrNoStoreLoaded = errors.New("no store loaded")

	// ErrProfileNotFound means the provisioning trigger has not created the
	// principal's profile. Loading cannot proceed until it does.
	ErrProfileNotFound = errors.New("profile not found: registration may not have completed")

	// ErrSlugTaken is returned when another store already uses the slug.
	ErrSlugTaken = errors.New("slug already in use, choose another")

	// ErrCreateOrUpdateFailed is the terminal outcome of an owner conflict
	// whose recovery lookup found nothing.
	ErrCreateOrUpdateFailed = errors.New("could not create or update the store, please try again")
)

// Backend is the subset of the store of record the Manager needs.
// *store.Store implements it.
type Backend interface {
	ProfileByID(ctx context.Context, id string) (*model.Profile, error)
	StoreByOwner(ctx context.Context, ownerID string) (*model.Store, error)
	MaybeStoreByOwner(ctx context.Context, ownerID string) (*model.Store, error)
	StoreByID(ctx context.Context, id string) (*model.Store, error)
	PublishedStoreBySlug(ctx context.Context, slug string) (*model.Store, error)
	InsertStore(ctx context.Context, st model.Store) (*model.Store, error)
	UpdateStore(ctx context.Context, id string, patch model.StorePatch) error
	UpdateProfile(ctx context.Context, id string, patch model.ProfilePatch) error
}

// Session reports the signed-in principal. An empty id means signed out.
type Session interface {
	PrincipalID() string
}

// StaticSession is a Session fixed to one principal id.
type StaticSession string

// PrincipalID implements Session.
func (s StaticSession) PrincipalID() string { return string(s) }

// InputValidator checks a normalized StoreInput before any write.
// *validate.Validator implements it.
type InputValidator interface {
	StoreInput(in model.StoreInput) error
}

// Placeholder holds the values the provisioning trigger writes into a new
// store. A store still carrying either is not configured.
type Placeholder struct {
	Name     string
	WhatsApp string
}

// DefaultPlaceholder matches the trigger's defaults.
var DefaultPlaceholder = Placeholder{
	Name:     model.PlaceholderStoreName,
	WhatsApp: model.PlaceholderWhatsApp,
}

// Option configures a Manager.
type Option func(*Manager)

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(m *Manager) { m.logger = l }
}

// WithValidator enables input validation in CreateStore.
func WithValidator(v InputValidator) Option {
	return func(m *Manager) { m.validator = v }
}

// WithPlaceholder overrides the trigger's placeholder values.
func WithPlaceholder(p Placeholder) Option {
	return func(m *Manager) { m.placeholder = p }
}

// Manager owns the session's cached Profile and Store.
//
// Thread-safety: cached state is guarded by an RWMutex and never held across
// a backend call. Concurrent operations on one Manager are allowed but not
// serialized; the last reload wins.
type Manager struct {
	backend     Backend
	session     Session
	logger      *slog.Logger
	validator   InputValidator
	placeholder Placeholder

	mu        sync.RWMutex
	store     *model.Store
	profile   *model.Profile
	loading   bool
	loadError string
}

// New creates a Manager for one session.
func New(backend Backend, session Session, opts ...Option) *Manager {
	m := &Manager{
		backend:     backend,
		session:     session,
		logger:      slog.Default(),
		placeholder: DefaultPlaceholder,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// principal returns the signed-in principal id or "".
func (m *Manager) principal() string {
	if m.session == nil {
		return ""
	}
	return m.session.PrincipalID()
}

// UpdateStore applies a partial update to the cached store, then reloads.
// A non-empty WhatsAppNumber is normalized first. The patch is never applied
// to the cache directly; the reload re-reads the store of record.
func (m *Manager) UpdateStore(ctx context.Context, patch model.StorePatch) error {
	cached := m.cachedStore()
	if cached == nil {
		return ErrNoStoreLoaded
	}

	if patch.WhatsAppNumber != nil && *patch.WhatsAppNumber != "" {
		normalized := phone.NormalizeWhatsApp(*patch.WhatsAppNumber)
		patch.WhatsAppNumber = &normalized
	}

	if err := m.backend.UpdateStore(ctx, cached.ID, patch); err != nil {
		return fmt.Errorf("update store: %w", err)
	}

	m.reloadAfterWrite(ctx)
	return nil
}

// UpdateProfile applies a partial update to the principal's profile, then reloads.
func (m *Manager) UpdateProfile(ctx context.Context, patch model.ProfilePatch) error {
	principal := m.principal()
	if principal == "" {
		return ErrNotAuthenticated
	}

	if err := m.backend.UpdateProfile(ctx, principal, patch); err != nil {
		return fmt.Errorf("update profile: %w", err)
	}

	m.reloadAfterWrite(ctx)
	return nil
}

// GetStoreBySlug returns a published store for the public catalog.
// No principal is required. A missing or unpublished store returns (nil, nil).
func (m *Manager) GetStoreBySlug(ctx context.Context, slug string) (*model.Store, error) {
	st, err := m.backend.PublishedStoreBySlug(ctx, slug)
	if err != nil {
		if model.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get store by slug: %w", err)
	}
	return st, nil
}

// reloadAfterWrite re-derives cached state after a successful write. A failed
// reload does not undo the write; it is logged and left in State().LoadError.
func (m *Manager) reloadAfterWrite(ctx context.Context) {
	if _, err := m.LoadCurrentPrincipalStore(ctx); err != nil {
		m.logger.Warn("reload after write failed", "error", err)
	}
}
