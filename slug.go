package folio

import "strings"

// Slugify turns s into a lower-case, hyphen-delimited identifier like "coal-india".
//
// Every run of characters outside [a-z0-9] becomes a single hyphen, and leading or
// trailing hyphens are stripped. Slugify is idempotent.
func Slugify(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	pending := false // a hyphen is due before the next alphanumeric
	for _, r := range strings.ToLower(s) {
		if ('a' <= r && r <= 'z') || ('0' <= r && r <= '9') {
			if pending && b.Len() > 0 {
				b.WriteByte('-')
			}
			pending = false
			b.WriteRune(r)
			continue
		}
		pending = true
	}
	return b.String()
}

// LooseSlug is the alphanumeric-only form of Slugify, used to compare keys
// loosely: "Coal India", "coal-india" and "COALINDIA" are all "coalindia".
func LooseSlug(s string) string {
	return strings.ReplaceAll(Slugify(s), "-", "")
}

// SymbolBase returns the ticker part of an exchange-qualified symbol, e.g.
// "COALINDIA" for "COALINDIA.NS".
func SymbolBase(symbol string) string {
	base, _, _ := strings.Cut(symbol, ".")
	return base
}
