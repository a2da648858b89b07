package render

import (
	"math/rand"
	"strconv"
	"strings"
	"testing"

	statepkg "github.com/kk-code-lab/trans/internal/state"
	textutil "github.com/kk-code-lab/trans/internal/textutil"
)

// frameRows splits a frame at every "ESC[row;1H" and returns the raw text
// written after each positioning escape.
func frameRows(frame string) map[int]string {
	rows := make(map[int]string)
	current := -1
	var b strings.Builder
	flush := func() {
		if current >= 0 {
			rows[current] += b.String()
		}
		b.Reset()
	}
	for i := 0; i < len(frame); i++ {
		if frame[i] != 0x1b || i+1 >= len(frame) || frame[i+1] != '[' {
			b.WriteByte(frame[i])
			continue
		}
		j := i + 2
		for j < len(frame) && (frame[j] < 0x40 || frame[j] > 0x7e) {
			j++
		}
		if j >= len(frame) {
			break
		}
		seq := frame[i : j+1]
		params := frame[i+2 : j]
		if frame[j] == 'H' && strings.HasSuffix(params, ";1") {
			flush()
			row, err := strconv.Atoi(strings.TrimSuffix(params, ";1"))
			if err == nil {
				current = row
			}
		} else {
			b.WriteString(seq)
		}
		i = j
	}
	flush()
	return rows
}

// plain drops every CSI sequence.
func plain(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == 0x1b && i+1 < len(s) && s[i+1] == '[' {
			j := i + 2
			for j < len(s) && (s[j] < 0x40 || s[j] > 0x7e) {
				j++
			}
			i = j
			continue
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

func testState(width, height int) *statepkg.AppState {
	return &statepkg.AppState{
		CurrentPath:  "/home/user",
		ScreenWidth:  width,
		ScreenHeight: height,
	}
}

func TestListingWidth(t *testing.T) {
	tests := []struct{ width, want int }{
		{80, 48}, {100, 60}, {19, 6}, {9, 0}, {25, 12},
	}
	for _, tt := range tests {
		if got := ListingWidth(tt.width); got != tt.want {
			t.Errorf("ListingWidth(%d)=%d want %d", tt.width, got, tt.want)
		}
	}
}

func TestSerializePaneExactWidth(t *testing.T) {
	alphabet := []rune{'a', 'Z', ' ', '.', 'é', '中', '日', 'あ', 0x0301, 0x200B, 0xFE0F, 'Ж'}
	rng := rand.New(rand.NewSource(11))
	for round := 0; round < 500; round++ {
		cols := 1 + rng.Intn(30)
		cells := make([]rune, cols)
		for i := range cells {
			cells[i] = alphabet[rng.Intn(len(alphabet))]
		}
		var b strings.Builder
		emitted, padding := serializePane(&b, cells, cols)
		if emitted+padding != cols {
			t.Fatalf("round %d: emitted %d + padding %d != cols %d (%q)", round, emitted, padding, cols, string(cells))
		}
		if got := textutil.StringWidth(b.String()); got != cols {
			t.Fatalf("round %d: output width %d, want %d (%q)", round, got, cols, b.String())
		}
	}
}

func TestSerializePaneStraddlingWideRune(t *testing.T) {
	var b strings.Builder
	emitted, padding := serializePane(&b, []rune("ab中"), 3)
	if b.String() != "ab " || emitted != 2 || padding != 1 {
		t.Fatalf("got %q emitted=%d padding=%d", b.String(), emitted, padding)
	}
}

func TestSerializePaneZeroWidthComplement(t *testing.T) {
	var b strings.Builder
	cells := []rune{'e', 0x0301, 'x', 'y'}
	emitted, padding := serializePane(&b, cells, 4)
	if b.String() != "éxy " || emitted != 3 || padding != 1 {
		t.Fatalf("got %q emitted=%d padding=%d", b.String(), emitted, padding)
	}
}

func TestRenderPanes(t *testing.T) {
	state := testState(20, 5)
	state.Content = []string{"alpha", "beta", "gamma"}
	state.Cursor = 1
	state.Preview = []string{"p1", "p2"}
	state.CursorIsDir = true

	r := NewRenderer(GetColorTheme("trans"))
	frame := r.Render(state)
	if !strings.HasPrefix(frame, escHideCursor+escHome) {
		t.Fatalf("frame should start by hiding the cursor and homing: %q", frame[:12])
	}

	rows := frameRows(frame)
	want := map[int]string{
		1: "alpha       p1      ",
		2: "beta        p2      ",
		3: "gamma               ",
		4: "                    ",
	}
	for row, text := range want {
		if got := plain(rows[row]); got != text {
			t.Errorf("row %d = %q, want %q", row, got, text)
		}
	}

	theme := GetColorTheme("trans")
	normal := sgr(theme.NormalText, theme.NormalBackground)
	dirHighlight := sgr(theme.HighlightDirText, theme.HighlightBackground)
	fileHighlight := sgr(theme.HighlightText, theme.HighlightBackground)

	if !strings.HasPrefix(rows[2], dirHighlight+"beta") {
		t.Errorf("cursor row should start with the directory highlight: %q", rows[2])
	}
	if !strings.Contains(rows[2], fileHighlight+"p2") {
		t.Errorf("preview row at the cursor row should be highlighted: %q", rows[2])
	}
	if !strings.HasPrefix(rows[1], normal+"alpha") || !strings.Contains(rows[1], normal+"p1") {
		t.Errorf("other rows use normal colors: %q", rows[1])
	}
}

func TestRenderPreviewRowWithoutEntryIsNotHighlighted(t *testing.T) {
	state := testState(20, 6)
	state.Content = []string{"a", "b", "c", "d"}
	state.Cursor = 3
	state.Preview = []string{"only"}

	theme := GetColorTheme("dark")
	r := NewRenderer(theme)
	rows := frameRows(r.Render(state))
	normal := sgr(theme.NormalText, theme.NormalBackground)
	fileHighlight := sgr(theme.HighlightText, theme.HighlightBackground)

	if !strings.HasPrefix(rows[4], fileHighlight+"d") {
		t.Fatalf("listing cursor row should use the file highlight: %q", rows[4])
	}
	if strings.Count(rows[4], fileHighlight) != 1 || !strings.Contains(rows[4], normal) {
		t.Fatalf("preview half of the row should stay normal: %q", rows[4])
	}
}

func TestRenderViewportOffset(t *testing.T) {
	state := testState(10, 4)
	state.Content = []string{"r0", "r1", "r2", "r3", "r4", "r5"}
	state.Cursor = 4
	state.ViewportStart = 3

	rows := frameRows(NewRenderer(GetColorTheme("")).Render(state))
	for i, want := range []string{"r3", "r4", "r5"} {
		if got := plain(rows[i+1]); !strings.HasPrefix(got, want) {
			t.Errorf("row %d = %q, want prefix %q", i+1, got, want)
		}
	}
}

func TestRenderRowsStayRectangular(t *testing.T) {
	state := testState(23, 8)
	state.Content = []string{"日本語のファイル名", "ééé", "plain", "中a中b中c中d中e中f"}
	state.Preview = []string{"中中中中中中中中", "x​y", "tab\there"}
	state.Cursor = 0

	rows := frameRows(NewRenderer(GetColorTheme("trans")).Render(state))
	for row := 1; row <= 7; row++ {
		if got := textutil.StringWidth(plain(rows[row])); got != 23 {
			t.Errorf("row %d has width %d, want 23: %q", row, got, plain(rows[row]))
		}
	}
}

func TestRenderReallocatesGridOnResize(t *testing.T) {
	r := NewRenderer(GetColorTheme("trans"))
	state := testState(30, 10)
	r.Render(state)
	if r.grid.width != 30 || r.grid.height != 10 {
		t.Fatalf("grid %dx%d", r.grid.width, r.grid.height)
	}
	state.ScreenWidth, state.ScreenHeight = 40, 12
	r.Render(state)
	if r.grid.width != 40 || r.grid.height != 12 || len(r.grid.cells) != 12 || len(r.grid.cells[0]) != 40 {
		t.Fatalf("grid was not reallocated: %dx%d", r.grid.width, r.grid.height)
	}
}

func TestRenderSanitizesNames(t *testing.T) {
	state := testState(30, 3)
	state.Content = []string{"evil\x1b[2Jname"}
	frame := NewRenderer(GetColorTheme("trans")).Render(state)
	if strings.Contains(frame, "\x1b[2J") {
		t.Fatalf("control sequence from a file name reached the terminal")
	}
}

// ===== BOTTOM LINE =====

func TestBottomBarScrollsToCursor(t *testing.T) {
	text := []rune("abcdefghijklmnopqrst") // 20 runes
	var bb bottomBar
	got := bb.layout(text, 19, 18, true)

	if got.from != 2 || got.to != 20 {
		t.Fatalf("visible slice [%d,%d), want [2,20)", got.from, got.to)
	}
	if got.pad {
		t.Fatalf("no alignment pad expected for single-width text")
	}
	if got.cursorCol != 17 {
		t.Fatalf("cursor column %d, want 17 (last visible column)", got.cursorCol)
	}
}

func TestBottomBarKeepsScrollWhileCursorVisible(t *testing.T) {
	text := []rune("abcdefghijklmnopqrst")
	var bb bottomBar
	bb.layout(text, 19, 18, true)
	got := bb.layout(text, 10, 18, true)
	if got.from != 2 {
		t.Fatalf("scroll start should persist, got %d", got.from)
	}
	if got.cursorCol != 8 {
		t.Fatalf("cursor column %d, want 8", got.cursorCol)
	}
}

func TestBottomBarSnapsLeft(t *testing.T) {
	text := []rune("abcdefghijklmnopqrst")
	var bb bottomBar
	bb.layout(text, 20, 18, true)
	got := bb.layout(text, 1, 18, true)
	if got.from != 1 || got.cursorCol != 0 || got.pad {
		t.Fatalf("expected snap to cursor, got %+v", got)
	}
	if got.to != 19 {
		t.Fatalf("expected 18 visible runes from 1, got to=%d", got.to)
	}
}

func TestBottomBarAlignmentPad(t *testing.T) {
	text := []rune("a中中")
	var bb bottomBar
	got := bb.layout(text, 3, 4, true)
	if !got.pad {
		t.Fatalf("expected alignment pad when a wide rune straddles the left edge")
	}
	if got.from != 2 || got.to != 3 || got.cursorCol != 3 {
		t.Fatalf("unexpected layout %+v", got)
	}

	// widening the area lets everything fit again
	got = bb.layout(text, 3, 10, true)
	if got.pad || got.from != 0 || got.to != 3 || got.cursorCol != 5 {
		t.Fatalf("unexpected layout after widening %+v", got)
	}
}

func TestRenderSearchLinePlacesCursor(t *testing.T) {
	state := testState(19, 4)
	state.Mode = statepkg.ModeSearch
	state.SearchBuffer = []rune("abcdefghijklmnopqrst")
	state.EditCursor = 19

	frame := NewRenderer(GetColorTheme("trans")).Render(state)
	rows := frameRows(frame)
	line := plain(rows[4])
	if line != "/cdefghijklmnopqrst" {
		t.Fatalf("bottom line %q", line)
	}
	if !strings.HasSuffix(frame, "\x1b[4;19H"+escShowCursor) {
		t.Fatalf("cursor placement missing: %q", frame[len(frame)-20:])
	}
}

func TestRenderReverseSearchPrefixAndPad(t *testing.T) {
	state := testState(5, 2)
	state.Mode = statepkg.ModeReverseSearch
	state.SearchBuffer = []rune("a中中")
	state.EditCursor = 3

	frame := NewRenderer(GetColorTheme("trans")).Render(state)
	line := plain(frameRows(frame)[2])
	if line != "?>中" {
		t.Fatalf("bottom line %q, want %q", line, "?>中")
	}
	if !strings.HasSuffix(frame, "\x1b[2;5H"+escShowCursor) {
		t.Fatalf("unexpected cursor placement: %q", frame)
	}
}

func TestRenderNormalLineShowsPathTail(t *testing.T) {
	state := testState(10, 3)
	state.CurrentPath = "/very/long/path/name"

	frame := NewRenderer(GetColorTheme("trans")).Render(state)
	if got := plain(frameRows(frame)[3]); got != "/path/name" {
		t.Fatalf("bottom line %q, want the tail of the path", got)
	}
	if !strings.HasSuffix(frame, escResetColors) {
		t.Fatalf("cursor must stay hidden in normal mode")
	}

	state.CurrentPath = "/tmp"
	if got := plain(frameRows(NewRenderer(GetColorTheme("trans")).Render(state))[3]); got != "/tmp" {
		t.Fatalf("short paths are shown whole, got %q", got)
	}
}

func TestRenderFullBottomLineSkipsClearToEOL(t *testing.T) {
	state := testState(10, 3)
	state.CurrentPath = "/very/long/path/name"

	row := frameRows(NewRenderer(GetColorTheme("trans")).Render(state))[3]
	if plain(row) != "/path/name" {
		t.Fatalf("bottom line %q", plain(row))
	}
	if strings.Contains(row, escClearToEOL) {
		t.Fatalf("a full row must not be cleared after its last glyph: %q", row)
	}

	state.Mode = statepkg.ModeSearch
	state.SearchBuffer = []rune("abcdefghijklmnop")
	state.EditCursor = 4
	row = frameRows(NewRenderer(GetColorTheme("trans")).Render(state))[3]
	if got := plain(row); len(got) != 10 {
		t.Fatalf("expected the search line to fill the row, got %q", got)
	}
	if strings.Contains(row, escClearToEOL) {
		t.Fatalf("a full search row must not be cleared: %q", row)
	}

	state.Mode = statepkg.ModeNormal
	state.CurrentPath = "/tmp"
	row = frameRows(NewRenderer(GetColorTheme("trans")).Render(state))[3]
	if !strings.Contains(row, "/tmp"+escClearToEOL) {
		t.Fatalf("a short row clears the rest of the line: %q", row)
	}
}

func TestRenderEmptyScreen(t *testing.T) {
	if frame := NewRenderer(GetColorTheme("trans")).Render(testState(0, 0)); frame != "" {
		t.Fatalf("expected no output for a zero-size terminal, got %q", frame)
	}
}
