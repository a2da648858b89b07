package textutil

import (
	"sort"

	"github.com/mattn/go-runewidth"
)

type runeRange struct {
	lo, hi rune
}

// zeroWidthRanges must stay sorted and non-overlapping; RuneWidth binary
// searches it.
var zeroWidthRanges = []runeRange{
	{0x0300, 0x036F}, // combining diacritical marks
	{0x0483, 0x0489}, // cyrillic combining marks
	{0x0591, 0x05BD}, // hebrew points
	{0x0610, 0x061A}, // arabic signs
	{0x064B, 0x065F}, // arabic harakat
	{0x1AB0, 0x1AFF}, // combining diacritical marks extended
	{0x1DC0, 0x1DFF}, // combining diacritical marks supplement
	{0x200B, 0x200F}, // zero width space, joiners, direction marks
	{0x20D0, 0x20FF}, // combining marks for symbols
	{0xFE00, 0xFE0F}, // variation selectors
	{0xFE20, 0xFE2F}, // combining half marks
	{0xE0100, 0xE01EF},
}

var widthCondition = &runewidth.Condition{EastAsianWidth: false}

// RuneWidth reports how many terminal columns r occupies: 0, 1 or 2.
func RuneWidth(r rune) int {
	if isForcedZeroWidth(r) {
		return 0
	}
	w := widthCondition.RuneWidth(r)
	switch {
	case w < 0:
		return 0
	case w > 2:
		return 2
	}
	return w
}

// StringWidth sums RuneWidth over s. Unlike grapheme-aware measuring it
// charges every rune separately, which matches how the grid stores text.
func StringWidth(s string) int {
	total := 0
	for _, r := range s {
		total += RuneWidth(r)
	}
	return total
}

// RunesWidth is StringWidth for an already decoded buffer.
func RunesWidth(rs []rune) int {
	total := 0
	for _, r := range rs {
		total += RuneWidth(r)
	}
	return total
}

func isForcedZeroWidth(r rune) bool {
	i := sort.Search(len(zeroWidthRanges), func(i int) bool {
		return zeroWidthRanges[i].hi >= r
	})
	return i < len(zeroWidthRanges) && zeroWidthRanges[i].lo <= r
}
