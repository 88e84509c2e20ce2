package checkout

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/roach88/storefront/internal/model"
	"github.com/roach88/storefront/internal/money"
)

// DefaultBaseURL is the messaging service's deep-link prefix.
const DefaultBaseURL = "https://wa.me"

const summaryHeader = "*Novo pedido*"

// Summary renders the order message sent to the store:
//
//	*Novo pedido*
//
//	• Brigadeiro x3 — R$ 7,50
//
//	Total: *R$ 7,50*
func Summary(f *money.Formatter, items []model.LineItem, total int64) string {
	lines := make([]string, 0, len(items)+2)
	lines = append(lines, summaryHeader+"\n")
	for _, it := range items {
		line := fmt.Sprintf("• %s x%d — %s", it.Name, it.Qty, f.Format(int64(it.Qty)*it.PriceCents))
		lines = append(lines, line)
	}
	lines = append(lines, "\nTotal: *"+f.Format(total)+"*")
	return strings.Join(lines, "\n")
}

// DeepLink builds base/contact?text=<message> with the message
// percent-encoded as a single query component.
func DeepLink(base, contact, message string) string {
	if base == "" {
		base = DefaultBaseURL
	}
	return strings.TrimRight(base, "/") + "/" + url.PathEscape(contact) + "?text=" + encodeComponent(message)
}

// encodeComponent escapes everything but unreserved characters and encodes
// spaces as %20 rather than '+'.
func encodeComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
