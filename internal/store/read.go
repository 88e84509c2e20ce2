package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/roach88/storefront/internal/model"
)

const storeColumns = `id, created_at, updated_at, name, slug, description, logo_url, whatsapp_number, owner_id, published`

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// ProfileByID returns the profile for a principal.
// Returns a KindNotFound error if no profile exists.
func (s *Store) ProfileByID(ctx context.Context, id string) (*model.Profile, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, full_name, avatar_url, role
		FROM profiles
		WHERE id = ?
	`, id)

	var (
		p                   model.Profile
		fullName, avatarURL sql.NullString
		role                string
	)
	if err := row.Scan(&p.ID, &fullName, &avatarURL, &role); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.NotFound("profile")
		}
		return nil, fmt.Errorf("read profile: %w", classify(err))
	}
	p.FullName = stringPtr(fullName)
	p.AvatarURL = stringPtr(avatarURL)
	p.Role = model.Role(role)
	return &p, nil
}

// StoreByOwner returns the store owned by a principal.
// Returns a KindNotFound error if the principal has no store.
func (s *Store) StoreByOwner(ctx context.Context, ownerID string) (*model.Store, error) {
	return s.readStore(ctx, "read store by owner", `WHERE owner_id = ?`, ownerID)
}

// MaybeStoreByOwner is StoreByOwner with maybe-single semantics: a missing
// store returns (nil, nil) instead of an error.
func (s *Store) MaybeStoreByOwner(ctx context.Context, ownerID string) (*model.Store, error) {
	st, err := s.StoreByOwner(ctx, ownerID)
	if model.IsNotFound(err) {
		return nil, nil
	}
	return st, err
}

// StoreByID returns a store by its id.
// Returns a KindNotFound error if no store has that id.
func (s *Store) StoreByID(ctx context.Context, id string) (*model.Store, error) {
	return s.readStore(ctx, "read store", `WHERE id = ?`, id)
}

// PublishedStoreBySlug returns a published store by slug.
// Unpublished stores are invisible and report KindNotFound.
func (s *Store) PublishedStoreBySlug(ctx context.Context, slug string) (*model.Store, error) {
	return s.readStore(ctx, "read store by slug", `WHERE slug = ? AND published = 1`, slug)
}

func (s *Store) readStore(ctx context.Context, op, where string, args ...any) (*model.Store, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+storeColumns+` FROM stores `+where, args...)
	st, err := scanStore(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.NotFound("store")
		}
		return nil, fmt.Errorf("%s: %w", op, classify(err))
	}
	return st, nil
}

func scanStore(row rowScanner) (*model.Store, error) {
	var (
		st                   model.Store
		createdAt, updatedAt string
		description, logoURL sql.NullString
		published            int
	)
	err := row.Scan(
		&st.ID,
		&createdAt,
		&updatedAt,
		&st.Name,
		&st.Slug,
		&description,
		&logoURL,
		&st.WhatsAppNumber,
		&st.OwnerID,
		&published,
	)
	if err != nil {
		return nil, err
	}

	if st.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if st.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}
	st.Description = stringPtr(description)
	st.LogoURL = stringPtr(logoURL)
	st.Published = published != 0
	return &st, nil
}

// Product returns a catalog product by id.
func (s *Store) Product(ctx context.Context, id int64) (*model.Product, error) {
	var p model.Product
	err := s.db.QueryRowContext(ctx, `
		SELECT id, store_id, name, price_cents, stock
		FROM products
		WHERE id = ?
	`, id).Scan(&p.ID, &p.StoreID, &p.Name, &p.PriceCents, &p.Stock)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.NotFound("product")
		}
		return nil, fmt.Errorf("read product: %w", classify(err))
	}
	return &p, nil
}

// ProductsByStore returns a store's catalog ordered by id.
// Returns an empty slice (not nil) if the store has no products.
func (s *Store) ProductsByStore(ctx context.Context, storeID string) ([]model.Product, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, store_id, name, price_cents, stock
		FROM products
		WHERE store_id = ?
		ORDER BY id ASC
	`, storeID)
	if err != nil {
		return nil, fmt.Errorf("query products: %w", classify(err))
	}
	defer rows.Close()

	products := []model.Product{}
	for rows.Next() {
		var p model.Product
		if err := rows.Scan(&p.ID, &p.StoreID, &p.Name, &p.PriceCents, &p.Stock); err != nil {
			return nil, fmt.Errorf("scan product: %w", classify(err))
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate products: %w", classify(err))
	}
	return products, nil
}

// OrdersByStore returns a store's orders, oldest first.
// Returns an empty slice (not nil) if the store has no orders.
func (s *Store) OrdersByStore(ctx context.Context, storeID string) ([]model.Order, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, store_id, items, total_cents, created_at
		FROM orders
		WHERE store_id = ?
		ORDER BY created_at ASC, id COLLATE BINARY ASC
	`, storeID)
	if err != nil {
		return nil, fmt.Errorf("query orders: %w", classify(err))
	}
	defer rows.Close()

	orders := []model.Order{}
	for rows.Next() {
		var (
			o                  model.Order
			itemsJSON, created string
		)
		if err := rows.Scan(&o.ID, &o.StoreID, &itemsJSON, &o.TotalCents, &created); err != nil {
			return nil, fmt.Errorf("scan order: %w", classify(err))
		}
		if o.Items, err = unmarshalItems(itemsJSON); err != nil {
			return nil, err
		}
		if o.CreatedAt, err = parseTime(created); err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate orders: %w", classify(err))
	}
	return orders, nil
}
