package render

import (
	"fmt"
	"strings"

	statepkg "github.com/kk-code-lab/trans/internal/state"
	textutil "github.com/kk-code-lab/trans/internal/textutil"
)

const (
	escHome        = "\x1b[1H"
	escClearToEOL  = "\x1b[K"
	escHideCursor  = "\x1b[?25l"
	escShowCursor  = "\x1b[?25h"
	escResetColors = "\x1b[0m"
)

// Renderer turns the application state into one escape-coded frame.
type Renderer struct {
	theme    ColorTheme
	grid     grid
	bar      bottomBar
	lastMode statepkg.Mode
}

// NewRenderer creates a new renderer
func NewRenderer(theme ColorTheme) *Renderer {
	return &Renderer{theme: theme}
}

// ListingWidth is the column count of the left pane.
func ListingWidth(width int) int {
	return width / 10 * 6
}

// Render builds the frame for state. The caller writes it in one call.
func (r *Renderer) Render(state *statepkg.AppState) string {
	width, height := state.ScreenWidth, state.ScreenHeight
	if width <= 0 || height <= 0 {
		return ""
	}
	if !r.grid.resize(width, height) {
		r.grid.clear()
	}

	leftWidth := ListingWidth(width)
	rows := height - 1
	r.fillPanes(state, leftWidth, rows)

	normal := sgr(r.theme.NormalText, r.theme.NormalBackground)
	highlightRow := -1
	if len(state.Content) > 0 {
		highlightRow = state.HighlightRow()
	}

	var b strings.Builder
	b.Grow((width + 32) * height)
	b.WriteString(escHideCursor)
	b.WriteString(escHome)

	for y := 0; y < rows; y++ {
		fmt.Fprintf(&b, "\x1b[%d;1H", y+1)
		row := r.grid.cells[y]

		if y == highlightRow {
			b.WriteString(r.highlight(state.CursorIsDir))
		} else {
			b.WriteString(normal)
		}
		serializePane(&b, row[:leftWidth], leftWidth)

		if y == highlightRow && y < len(state.Preview) {
			b.WriteString(r.highlight(state.PreviewHighlightIsDir))
		} else {
			b.WriteString(normal)
		}
		serializePane(&b, row[leftWidth:], width-leftWidth)
	}

	r.writeBottomLine(&b, state, width, height)
	return b.String()
}

func (r *Renderer) highlight(isDir bool) string {
	fg := r.theme.HighlightText
	if isDir {
		fg = r.theme.HighlightDirText
	}
	return sgr(fg, r.theme.HighlightBackground)
}

func (r *Renderer) fillPanes(state *statepkg.AppState, leftWidth, rows int) {
	for y := 0; y < rows; y++ {
		idx := state.ViewportStart + y
		if idx >= 0 && idx < len(state.Content) {
			r.grid.put(y, 0, leftWidth, textutil.SanitizeName(state.Content[idx]))
		}
		if y < len(state.Preview) {
			r.grid.put(y, leftWidth, r.grid.width, textutil.SanitizeName(state.Preview[y]))
		}
	}
}

// writeBottomLine draws the path, or the search buffer with its prefix,
// on the last row and leaves the terminal cursor on the edit position
// while searching.
func (r *Renderer) writeBottomLine(b *strings.Builder, state *statepkg.AppState, width, height int) {
	editing := state.Mode.IsSearch()
	if !editing || state.Mode != r.lastMode {
		r.bar.reset()
	}
	r.lastMode = state.Mode

	prefix := state.Mode.Prefix()
	var text []rune
	var cursor int
	if editing {
		text = state.SearchBuffer
		cursor = state.EditCursor
	} else {
		text = []rune(textutil.SanitizeName(state.CurrentPath))
		cursor = len(text) - 1
	}

	prefixWidth := textutil.StringWidth(prefix)
	if prefixWidth > width {
		prefixWidth = width
		prefix = prefix[:width]
	}
	bar := r.bar.layout(text, cursor, width-prefixWidth, editing)

	fmt.Fprintf(b, "\x1b[%d;1H", height)
	b.WriteString(sgr(r.theme.StatusBarText, r.theme.StatusBarBackground))
	b.WriteString(prefix)
	if bar.pad {
		b.WriteByte('>')
	}
	visible := text[bar.from:bar.to]
	b.WriteString(string(visible))
	used := prefixWidth + textutil.RunesWidth(visible)
	if bar.pad {
		used++
	}
	// a full row leaves the cursor on the last column with a wrap pending,
	// where EL would erase the final glyph
	if used < width {
		b.WriteString(escClearToEOL)
	}
	b.WriteString(escResetColors)

	if editing {
		fmt.Fprintf(b, "\x1b[%d;%dH", height, prefixWidth+bar.cursorCol+1)
		b.WriteString(escShowCursor)
	}
}
