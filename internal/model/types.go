package model

import "time"

// Role is a profile's authorization role.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleOwner Role = "owner"
)

// Placeholder values written by the provisioning trigger. A store still
// carrying either of them has not been configured by its owner.
const (
	PlaceholderStoreName = "Minha Loja"
	PlaceholderWhatsApp  = "5500000000000"
)

// Store is a tenant storefront. OwnerID and Slug are each unique across stores.
type Store struct {
	ID             string    `json:"id"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
	Name           string    `json:"name"`
	Slug           string    `json:"slug"`
	Description    *string   `json:"description"`
	LogoURL        *string   `json:"logo_url"`
	WhatsAppNumber string    `json:"whatsapp_number"`
	OwnerID        string    `json:"owner_id"`
	Published      bool      `json:"published"`
}

// Profile is keyed by the principal id (same space as Store.OwnerID).
type Profile struct {
	ID        string  `json:"id"`
	FullName  *string `json:"full_name"`
	AvatarURL *string `json:"avatar_url"`
	Role      Role    `json:"role"`
}

// StorePatch is a partial store update. Nil fields are left untouched.
// Description and LogoURL use a double pointer so a patch can set NULL.
type StorePatch struct {
	Name           *string  `json:"name,omitempty"`
	Slug           *string  `json:"slug,omitempty"`
	Description    **string `json:"description,omitempty"`
	LogoURL        **string `json:"logo_url,omitempty"`
	WhatsAppNumber *string  `json:"whatsapp_number,omitempty"`
	Published      *bool    `json:"published,omitempty"`
}

// Empty reports whether the patch changes nothing.
func (p StorePatch) Empty() bool {
	return p.Name == nil && p.Slug == nil && p.Description == nil &&
		p.LogoURL == nil && p.WhatsAppNumber == nil && p.Published == nil
}

// ProfilePatch is a partial profile update. Nil fields are left untouched.
type ProfilePatch struct {
	FullName  **string `json:"full_name,omitempty"`
	AvatarURL **string `json:"avatar_url,omitempty"`
	Role      *Role    `json:"role,omitempty"`
}

// Empty reports whether the patch changes nothing.
func (p ProfilePatch) Empty() bool {
	return p.FullName == nil && p.AvatarURL == nil && p.Role == nil
}

// StoreInput carries the fields a principal supplies when setting up a store.
type StoreInput struct {
	Name           string `json:"name"`
	Slug           string `json:"slug"`
	WhatsAppNumber string `json:"whatsapp_number"`
	Description    string `json:"description,omitempty"`
}

// Product is a catalog entry whose stock is decremented on checkout.
type Product struct {
	ID         int64  `json:"id"`
	StoreID    string `json:"store_id"`
	Name       string `json:"name"`
	PriceCents int64  `json:"price_cents"`
	Stock      int    `json:"stock"`
}

// LineItem is one cart line. ProductID is unique within a cart and Qty >= 1.
type LineItem struct {
	ProductID  int64  `json:"id"`
	Name       string `json:"name"`
	PriceCents int64  `json:"price_cents"`
	Qty        int    `json:"qty"`
	StoreID    string `json:"store_id,omitempty"`
}

// Order is the persisted snapshot of a checked-out cart.
type Order struct {
	ID         string     `json:"id"`
	StoreID    string     `json:"store_id"`
	Items      []LineItem `json:"items"`
	TotalCents int64      `json:"total_cents"`
	CreatedAt  time.Time  `json:"created_at"`
}

// String returns a pointer to s. Handy for building patches.
func String(s string) *string { return &s }

// Nullable returns a pointer to a pointer, for patch fields that may be set to NULL.
func Nullable(s *string) **string { return &s }
