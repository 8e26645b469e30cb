// internal/routing/slug.go
//
// Slug and path helpers for page patterns.
//
// • MakeSlug(title) ─ lower-kebab ASCII slug: runs of anything outside
//   a-z and 0-9 collapse to one "-", ends are trimmed, the result is capped
//   at MaxSlug bytes, and an empty result becomes "item".
// • BuildPath(parts...) ─ joins path segments with single slashes and
//   exactly one leading slash.
//
// Notes
// -----
// • No Unicode transliteration; non-ASCII letters act as separators.
package routing

import "strings"

// MaxSlug caps slug length.
const MaxSlug = 100

// MakeSlug converts title → lower-kebab ASCII.
func MakeSlug(title string) string {
	words := strings.FieldsFunc(strings.ToLower(title), func(r rune) bool {
		return !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9')
	})
	slug := strings.Join(words, "-")
	if len(slug) > MaxSlug {
		slug = strings.TrimRight(slug[:MaxSlug], "-")
	}
	if slug == "" {
		return "item"
	}
	return slug
}

// BuildPath joins segments ensuring exactly one leading slash and no
// duplicate separators.  No segments yields "/".
func BuildPath(parts ...string) string {
	var b strings.Builder
	for _, p := range parts {
		if p = strings.Trim(p, "/"); p != "" {
			b.WriteByte('/')
			b.WriteString(p)
		}
	}
	if b.Len() == 0 {
		return "/"
	}
	return b.String()
}
