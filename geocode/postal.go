package geocode

import (
	"regexp"
	"strings"
)

// PostalCodeWidth is the canonical width of a US ZIP code.
const PostalCodeWidth = 5

var (
	zipPattern     = regexp.MustCompile(`^\d{5}$`)
	zipPlusFour    = regexp.MustCompile(`^(\d{5})-\d{4}$`)
	numericPattern = regexp.MustCompile(`^\d+$`)
)

// NormalizePostalCode trims s, reduces ZIP+4 to the five digit ZIP and left
// pads short numeric codes with zeros (spreadsheets drop the leading zero of
// New England ZIPs). Anything else is returned trimmed.
func NormalizePostalCode(s string) string {
	s = strings.TrimSpace(s)

	if m := zipPlusFour.FindStringSubmatch(s); m != nil {
		return m[1]
	}
	if numericPattern.MatchString(s) && len(s) < PostalCodeWidth {
		return strings.Repeat("0", PostalCodeWidth-len(s)) + s
	}
	return s
}

// IsPostalCode reports whether s is a bare five digit ZIP code once normalized.
func IsPostalCode(s string) bool {
	return zipPattern.MatchString(NormalizePostalCode(s))
}
