package store

import (
	"context"
	"fmt"

	"github.com/roach88/storefront/internal/model"
	"github.com/roach88/storefront/internal/slug"
)

// ProvisionPrincipal is the provisioning trigger run when a principal
// registers. It creates a placeholder profile (role owner) and a placeholder,
// unpublished store, skipping whichever already exists. Returns the
// principal's store.
//
// Both inserts run in one transaction with ON CONFLICT DO NOTHING, so the
// trigger never fails because a client already created the store.
func (s *Store) ProvisionPrincipal(ctx context.Context, principalID string) (*model.Store, error) {
	if principalID == "" {
		return nil, model.Other(fmt.Errorf("provision: empty principal id"))
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("provision: begin tx: %w", classify(err))
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO profiles (id, role) VALUES (?, ?)
		ON CONFLICT(id) DO NOTHING
	`, principalID, string(model.RoleOwner))
	if err != nil {
		return nil, fmt.Errorf("provision: insert profile: %w", classify(err))
	}

	now := formatTime(s.now())
	_, err = tx.ExecContext(ctx, `
		INSERT INTO stores
		(id, created_at, updated_at, name, slug, whatsapp_number, owner_id, published)
		VALUES (?, ?, ?, ?, ?, ?, ?, 0)
		ON CONFLICT DO NOTHING
	`,
		s.ids.Generate(),
		now,
		now,
		s.placeholderName,
		placeholderSlug(principalID),
		s.placeholderWhatsApp,
		principalID,
	)
	if err != nil {
		return nil, fmt.Errorf("provision: insert store: %w", classify(err))
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("provision: commit: %w", classify(err))
	}

	return s.StoreByOwner(ctx, principalID)
}

// placeholderSlug derives a slug unique to the principal.
func placeholderSlug(principalID string) string {
	return slug.FromName("loja " + principalID)
}
