package render

import (
	"strings"

	textutil "github.com/kk-code-lab/trans/internal/textutil"
)

// grid is the frame's character buffer, one rune per cell.
type grid struct {
	width, height int
	cells         [][]rune
}

// resize reallocates the buffer when the terminal size changed. It reports
// whether a reallocation happened.
func (g *grid) resize(width, height int) bool {
	if width == g.width && height == g.height && g.cells != nil {
		return false
	}
	g.width, g.height = width, height
	g.cells = make([][]rune, height)
	for y := range g.cells {
		g.cells[y] = make([]rune, width)
	}
	g.clear()
	return true
}

func (g *grid) clear() {
	for _, row := range g.cells {
		for x := range row {
			row[x] = ' '
		}
	}
}

// put copies text into row y starting at column x, one rune per cell,
// stopping at column limit.
func (g *grid) put(y, x, limit int, text string) {
	if y < 0 || y >= g.height {
		return
	}
	if limit > g.width {
		limit = g.width
	}
	row := g.cells[y]
	for _, r := range text {
		if x >= limit {
			return
		}
		row[x] = r
		x++
	}
}

// serializePane writes cells into b without exceeding cols columns and
// pads the remainder with spaces, so emitted width plus padding is always
// exactly cols. The padding absorbs a double-width rune that would
// straddle the pane edge as well as every zero-width rune, which fills a
// cell but no column.
func serializePane(b *strings.Builder, cells []rune, cols int) (emitted, padding int) {
	if cols <= 0 {
		return 0, 0
	}
	for _, c := range cells {
		w := textutil.RuneWidth(c)
		if emitted+w > cols {
			break
		}
		b.WriteRune(c)
		emitted += w
	}
	padding = cols - emitted
	b.WriteString(strings.Repeat(" ", padding))
	return emitted, padding
}
