package report

import "strings"

// SanitizeName converts a destination name (typically a page slug such as
// "case-studies/allianz-trade/") to a filesystem-safe form by replacing
// every character outside [A-Za-z0-9] with an underscore. Slugs contain
// path separators, so writing them unsanitized would either fail or
// escape the output directory.
func SanitizeName(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}
