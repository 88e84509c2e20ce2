// Package phone canonicalizes WhatsApp contact numbers.
package phone

import "strings"

// CountryPrefix is prepended to numbers that do not already carry it.
const CountryPrefix = "55"

// NormalizeWhatsApp strips every non-digit from number and ensures the
// result starts with CountryPrefix.
//
//	NormalizeWhatsApp("11 91234-5678")  // "5511912345678"
//	NormalizeWhatsApp("5511912345678")  // "5511912345678"
//
// An input with no digits normalizes to CountryPrefix alone.
func NormalizeWhatsApp(number string) string {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, number)

	if strings.HasPrefix(digits, CountryPrefix) {
		return digits
	}
	return CountryPrefix + digits
}
