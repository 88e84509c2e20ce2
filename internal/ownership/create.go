package ownership

import (
	"context"
	"fmt"

	"github.com/roach88/storefront/internal/model"
	"github.com/roach88/storefront/internal/phone"
)

// CreateStore creates the principal's store, or updates it if one already
// exists, racing the provisioning trigger safely. See the package doc for
// the protocol.
func (m *Manager) CreateStore(ctx context.Context, in model.StoreInput) (*model.Store, error) {
	principal := m.principal()
	if principal == "" {
		return nil, ErrNotAuthenticated
	}

	in.WhatsAppNumber = phone.NormalizeWhatsApp(in.WhatsAppNumber)
	if m.validator != nil {
		if err := m.validator.StoreInput(in); err != nil {
			return nil, err
		}
	}
	patch := setupPatch(in)

	log := m.logger.With("principal", principal)
	log.Info("creating or updating store", "slug", in.Slug)

	if cached := m.cachedStore(); cached != nil && cached.OwnerID == principal {
		log.Debug("updating cached store", "store", cached.ID)
		return m.updateAndReload(ctx, cached.ID, patch)
	}

	existing, err := m.backend.MaybeStoreByOwner(ctx, principal)
	if err != nil {
		log.Error("check for existing store failed", "error", err)
		return nil, fmt.Errorf("check existing store: %w", err)
	}
	if existing != nil {
		log.Debug("updating existing store", "store", existing.ID)
		return m.updateAndReload(ctx, existing.ID, patch)
	}

	inserted, err := m.backend.InsertStore(ctx, model.Store{
		OwnerID:        principal,
		Name:           in.Name,
		Slug:           in.Slug,
		WhatsAppNumber: in.WhatsAppNumber,
		Description:    optional(in.Description),
		Published:      true,
	})
	if err != nil {
		constraint, unique := model.UniqueConstraint(err)
		switch {
		case unique && constraint == model.ConstraintStoreOwner:
			log.Warn("owner conflict on insert, reconciling with existing store")
			return m.recoverOwnerConflict(ctx, principal, patch)
		case unique && constraint == model.ConstraintStoreSlug:
			return nil, ErrSlugTaken
		default:
			log.Error("insert store failed", "error", err)
			return nil, err
		}
	}

	m.mu.Lock()
	m.store = copyStore(inserted)
	m.mu.Unlock()

	log.Info("store created", "store", inserted.ID)
	return copyStore(inserted), nil
}

// recoverOwnerConflict handles an insert that lost to the trigger (or a
// concurrent call). One point lookup, one update; an empty lookup is terminal.
func (m *Manager) recoverOwnerConflict(ctx context.Context, principal string, patch model.StorePatch) (*model.Store, error) {
	st, err := m.backend.StoreByOwner(ctx, principal)
	if err != nil {
		m.logger.Error("recovery lookup failed", "principal", principal, "error", err)
		if model.IsNotFound(err) {
			return nil, ErrCreateOrUpdateFailed
		}
		return nil, fmt.Errorf("%w: %v", ErrCreateOrUpdateFailed, err)
	}
	if st == nil {
		return nil, ErrCreateOrUpdateFailed
	}
	return m.updateAndReload(ctx, st.ID, patch)
}

// updateAndReload writes the setup fields to an existing row and returns the
// store as cached after the reload. If the reload leaves nothing cached, the
// updated row is read back by id.
func (m *Manager) updateAndReload(ctx context.Context, id string, patch model.StorePatch) (*model.Store, error) {
	if err := m.backend.UpdateStore(ctx, id, patch); err != nil {
		return nil, fmt.Errorf("update store: %w", err)
	}
	m.reloadAfterWrite(ctx)
	if st := m.State().Store; st != nil {
		return st, nil
	}

	st, err := m.backend.StoreByID(ctx, id)
	if err != nil {
		m.logger.Error("read back updated store failed", "store", id, "error", err)
		return nil, fmt.Errorf("%w: %v", ErrCreateOrUpdateFailed, err)
	}
	return st, nil
}

// setupPatch converts a StoreInput into the fields CreateStore writes when
// reconciling with an existing row. An empty description clears the column.
func setupPatch(in model.StoreInput) model.StorePatch {
	name, slug, wa := in.Name, in.Slug, in.WhatsAppNumber
	return model.StorePatch{
		Name:           &name,
		Slug:           &slug,
		WhatsAppNumber: &wa,
		Description:    model.Nullable(optional(in.Description)),
	}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
