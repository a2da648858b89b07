package textutil

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// bidiControlLabels are the formatting runes that can reorder what follows
// them on screen. They are shown as labels instead of being passed through.
var bidiControlLabels = map[rune]string{
	0x061C: "⟪ALM⟫",
	0x202A: "⟪LRE⟫",
	0x202B: "⟪RLE⟫",
	0x202C: "⟪PDF⟫",
	0x202D: "⟪LRO⟫",
	0x202E: "⟪RLO⟫",
	0x2028: "⟪LSEP⟫",
	0x2029: "⟪PSEP⟫",
	0x2066: "⟪LRI⟫",
	0x2067: "⟪RLI⟫",
	0x2068: "⟪FSI⟫",
	0x2069: "⟪PDI⟫",
}

// SanitizeName makes a file name safe to place in the grid. The name is
// shown in composed form; control bytes and invalid UTF-8 become '?', tabs
// and line breaks become spaces, bidi controls are labeled. Zero-width
// marks are kept; the renderer accounts for them.
func SanitizeName(name string) string {
	if !utf8.ValidString(name) {
		return sanitize(name)
	}
	name = norm.NFC.String(name)
	for _, r := range name {
		if needsSanitizing(r) {
			return sanitize(name)
		}
	}
	return name
}

func needsSanitizing(r rune) bool {
	if _, ok := bidiControlLabels[r]; ok {
		return true
	}
	return r < 0x20 || (r >= 0x7f && r < 0xa0)
}

func sanitize(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for len(name) > 0 {
		r, size := utf8.DecodeRuneInString(name)
		name = name[size:]
		if r == utf8.RuneError && size == 1 {
			b.WriteByte('?')
			continue
		}
		if label, ok := bidiControlLabels[r]; ok {
			b.WriteString(label)
			continue
		}
		switch {
		case r == '\t', r == '\n', r == '\r':
			b.WriteByte(' ')
		case r < 0x20 || (r >= 0x7f && r < 0xa0):
			b.WriteByte('?')
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
