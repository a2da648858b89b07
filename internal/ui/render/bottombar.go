package render

import (
	textutil "github.com/kk-code-lab/trans/internal/textutil"
)

// bottomBar keeps the horizontal scroll position of the status line between
// frames so the text does not jump while the user types.
type bottomBar struct {
	scrollStart int
	// pad reserves one column for the '>' glyph shown when a double-width
	// rune could not be split at the left edge.
	pad bool
}

// barLayout is one frame's placement of the bottom line text.
type barLayout struct {
	from, to  int  // visible slice of the text
	pad       bool // emit '>' before the text
	cursorCol int  // columns between the start of the area and the cursor
}

func (bb *bottomBar) reset() {
	bb.scrollStart = 0
	bb.pad = false
}

// layout fits text into width columns keeping cursor visible. When editing,
// index len(text) is a virtual one-column cell where the edit cursor rests
// after the last rune.
func (bb *bottomBar) layout(text []rune, cursor, width int, editing bool) barLayout {
	last := len(text) - 1
	if editing {
		last = len(text)
	}
	if width <= 0 || last < 0 {
		bb.reset()
		return barLayout{}
	}
	widthAt := func(i int) int {
		if i >= len(text) {
			return 1
		}
		return textutil.RuneWidth(text[i])
	}

	if cursor < 0 {
		cursor = 0
	}
	if cursor > last {
		cursor = last
	}
	if bb.scrollStart > last {
		bb.scrollStart = last
	}
	if bb.scrollStart < 0 {
		bb.scrollStart = 0
	}

	total := textutil.RunesWidth(text)
	if editing {
		total++
	}
	if total <= width {
		bb.reset()
	}

	avail := width
	if bb.pad {
		avail--
	}

	right := bb.scrollStart - 1
	for acc := 0; right+1 <= last; right++ {
		w := widthAt(right + 1)
		if acc+w > avail {
			break
		}
		acc += w
	}

	switch {
	case cursor < bb.scrollStart:
		bb.scrollStart = cursor
		if bb.pad {
			bb.pad = false
			avail++
		}
	case cursor > right:
		acc := 0
		i := cursor
		for ; i >= 0; i-- {
			w := widthAt(i)
			if acc+w > width {
				break
			}
			acc += w
		}
		bb.scrollStart = i + 1
		if i >= 0 && acc != width {
			bb.pad = true
			avail = width - 1
		} else {
			bb.pad = false
			avail = width
		}
	}

	to := bb.scrollStart
	for acc := 0; to < len(text); to++ {
		w := textutil.RuneWidth(text[to])
		if acc+w > avail {
			break
		}
		acc += w
	}

	col := 0
	if bb.pad {
		col = 1
	}
	for i := bb.scrollStart; i < cursor && i < len(text); i++ {
		col += textutil.RuneWidth(text[i])
	}

	return barLayout{
		from:      bb.scrollStart,
		to:        to,
		pad:       bb.pad,
		cursorCol: col,
	}
}
