package cli

import (
	"fmt"
	"strings"

	"github.com/roach88/storefront/internal/model"
)

// describeStore renders a store for text output.
func describeStore(st *model.Store) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Store %s\n", st.ID)
	fmt.Fprintf(&b, "  name:      %s\n", st.Name)
	fmt.Fprintf(&b, "  slug:      %s\n", st.Slug)
	fmt.Fprintf(&b, "  whatsapp:  %s\n", st.WhatsAppNumber)
	if st.Description != nil {
		fmt.Fprintf(&b, "  about:     %s\n", *st.Description)
	}
	if st.LogoURL != nil {
		fmt.Fprintf(&b, "  logo:      %s\n", *st.LogoURL)
	}
	fmt.Fprintf(&b, "  owner:     %s\n", st.OwnerID)
	fmt.Fprintf(&b, "  published: %t", st.Published)
	return b.String()
}

func describeProfile(p *model.Profile) string {
	name := "(unset)"
	if p.FullName != nil {
		name = *p.FullName
	}
	return fmt.Sprintf("Profile %s\n  name: %s\n  role: %s", p.ID, name, p.Role)
}
