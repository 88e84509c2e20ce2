package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/roach88/storefront/internal/model"
)

// InsertStore inserts a new store row and returns it as stored.
// ID, CreatedAt and UpdatedAt are assigned by the store; values set on st
// are ignored.
//
// A principal that already owns a store yields a KindUniqueViolation error
// for stores_owner_id_unique; a taken slug yields one for stores_slug_key.
func (s *Store) InsertStore(ctx context.Context, st model.Store) (*model.Store, error) {
	id := s.ids.Generate()
	now := formatTime(s.now())

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO stores
		(id, created_at, updated_at, name, slug, description, logo_url, whatsapp_number, owner_id, published)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		id,
		now,
		now,
		st.Name,
		st.Slug,
		nullString(st.Description),
		nullString(st.LogoURL),
		st.WhatsAppNumber,
		st.OwnerID,
		boolInt(st.Published),
	)
	if err != nil {
		return nil, fmt.Errorf("insert store: %w", classify(err))
	}

	return s.StoreByID(ctx, id)
}

// UpdateStore applies a partial update to the store with the given id.
// updated_at is always refreshed. Returns KindNotFound if no row matched.
func (s *Store) UpdateStore(ctx context.Context, id string, patch model.StorePatch) error {
	sets := []string{"updated_at = ?"}
	args := []any{formatTime(s.now())}

	if patch.Name != nil {
		sets = append(sets, "name = ?")
		args = append(args, *patch.Name)
	}
	if patch.Slug != nil {
		sets = append(sets, "slug = ?")
		args = append(args, *patch.Slug)
	}
	if patch.Description != nil {
		sets = append(sets, "description = ?")
		args = append(args, nullString(*patch.Description))
	}
	if patch.LogoURL != nil {
		sets = append(sets, "logo_url = ?")
		args = append(args, nullString(*patch.LogoURL))
	}
	if patch.WhatsAppNumber != nil {
		sets = append(sets, "whatsapp_number = ?")
		args = append(args, *patch.WhatsAppNumber)
	}
	if patch.Published != nil {
		sets = append(sets, "published = ?")
		args = append(args, boolInt(*patch.Published))
	}

	args = append(args, id)
	return s.execUpdate(ctx, "update store", "store",
		`UPDATE stores SET `+strings.Join(sets, ", ")+` WHERE id = ?`, args...)
}

// UpdateProfile applies a partial update to a principal's profile.
// Returns KindNotFound if the profile does not exist.
func (s *Store) UpdateProfile(ctx context.Context, id string, patch model.ProfilePatch) error {
	if patch.Empty() {
		_, err := s.ProfileByID(ctx, id)
		return err
	}

	var (
		sets []string
		args []any
	)
	if patch.FullName != nil {
		sets = append(sets, "full_name = ?")
		args = append(args, nullString(*patch.FullName))
	}
	if patch.AvatarURL != nil {
		sets = append(sets, "avatar_url = ?")
		args = append(args, nullString(*patch.AvatarURL))
	}
	if patch.Role != nil {
		sets = append(sets, "role = ?")
		args = append(args, string(*patch.Role))
	}

	args = append(args, id)
	return s.execUpdate(ctx, "update profile", "profile",
		`UPDATE profiles SET `+strings.Join(sets, ", ")+` WHERE id = ?`, args...)
}

func (s *Store) execUpdate(ctx context.Context, op, what, query string, args ...any) error {
	result, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", op, classify(err))
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: rows affected: %w", op, classify(err))
	}
	if n == 0 {
		return model.NotFound(what)
	}
	return nil
}

// InsertOrder persists a checked-out cart snapshot and returns it with its
// assigned id and timestamp.
func (s *Store) InsertOrder(ctx context.Context, order model.Order) (*model.Order, error) {
	itemsJSON, err := marshalItems(order.Items)
	if err != nil {
		return nil, fmt.Errorf("insert order: %w", model.Other(err))
	}

	order.ID = s.ids.Generate()
	order.CreatedAt = s.now()
	if order.Items == nil {
		order.Items = []model.LineItem{}
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO orders (id, store_id, items, total_cents, created_at)
		VALUES (?, ?, ?, ?, ?)
	`,
		order.ID,
		order.StoreID,
		itemsJSON,
		order.TotalCents,
		formatTime(order.CreatedAt),
	)
	if err != nil {
		return nil, fmt.Errorf("insert order: %w", classify(err))
	}
	return &order, nil
}

// DecrementStock is the stock-decrement procedure run on checkout.
// Stock floors at zero. Returns KindNotFound for an unknown product.
func (s *Store) DecrementStock(ctx context.Context, productID int64, qty int) error {
	if qty < 0 {
		return model.Other(fmt.Errorf("decrement stock: negative quantity %d", qty))
	}
	return s.execUpdate(ctx, "decrement stock", "product", `
		UPDATE products SET stock = MAX(stock - ?, 0) WHERE id = ?
	`, qty, productID)
}

// UpsertProduct inserts or replaces a catalog product.
func (s *Store) UpsertProduct(ctx context.Context, p model.Product) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO products (id, store_id, name, price_cents, stock)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			store_id = excluded.store_id,
			name = excluded.name,
			price_cents = excluded.price_cents,
			stock = excluded.stock
	`, p.ID, p.StoreID, p.Name, p.PriceCents, p.Stock)
	if err != nil {
		return fmt.Errorf("upsert product: %w", classify(err))
	}
	return nil
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
