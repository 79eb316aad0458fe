// Package phone normalizes subscriber phone numbers for the messaging
// gateway, which expects bare digits with the Brazilian country code.
package phone

import "strings"

// CountryPrefix is prepended when a number arrives without it.
const CountryPrefix = "55"

// Normalize strips every non-digit character and ensures the country-code
// prefix. "(11) 99999-0000" becomes "5511999990000"; a number already
// carrying the prefix is returned unchanged.
func Normalize(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()
	if digits == "" {
		return ""
	}
	if !strings.HasPrefix(digits, CountryPrefix) {
		digits = CountryPrefix + digits
	}
	return digits
}
