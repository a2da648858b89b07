package state

import (
	"path/filepath"
)

// HistoryCapacity bounds SearchHistory; the oldest entry is evicted first.
const HistoryCapacity = 256

// Mode selects how keys are interpreted and what the bottom line shows.
type Mode int

const (
	ModeNormal Mode = iota
	ModeSearch
	ModeReverseSearch
)

func (m Mode) String() string {
	switch m {
	case ModeSearch:
		return "search"
	case ModeReverseSearch:
		return "reverse-search"
	}
	return "normal"
}

// IsSearch reports whether the search buffer is being edited.
func (m Mode) IsSearch() bool {
	return m == ModeSearch || m == ModeReverseSearch
}

// Prefix is the glyph shown before the search buffer.
func (m Mode) Prefix() string {
	switch m {
	case ModeSearch:
		return "/"
	case ModeReverseSearch:
		return "?"
	}
	return ""
}

// DirectoryReader lists directories. A read error is treated as an empty
// listing by the reducer.
type DirectoryReader interface {
	ReadNames(path string) ([]string, error)
	IsDir(path string) bool
}

// Ancestor is one saved level of the directory stack.
type Ancestor struct {
	Path          string
	Cursor        int
	ViewportStart int
}

// ===== STATE DEFINITIONS =====

// AppState is the single source of truth
type AppState struct {
	// Navigation & filesystem
	CurrentPath  string
	OriginalPath string
	Content      []string   // Current directory, case-insensitively sorted
	Ancestors    []Ancestor // Root first, excludes CurrentPath

	// Selection & viewport
	Cursor        int
	ViewportStart int

	// Preview of the directory under the cursor, refreshed every frame
	Preview               []string
	CursorIsDir           bool
	PreviewHighlightIsDir bool

	// Search
	Mode           Mode
	SearchBuffer   []rune
	EditCursor     int
	SearchHistory  []string
	HistoryIndex   int // len(SearchHistory) means the buffer is live
	LastQuery      string
	LastSearchMode Mode

	// Dimensions
	ScreenWidth  int
	ScreenHeight int

	// Error state
	LastError error
}

// ===== HELPER METHODS =====

// VisibleHeight is the number of listing rows; the last screen row is the
// status line.
func (s *AppState) VisibleHeight() int {
	if s.ScreenHeight <= 1 {
		return 1
	}
	return s.ScreenHeight - 1
}

// SelectedName returns the entry under the cursor, or "" for an empty listing.
func (s *AppState) SelectedName() string {
	if s.Cursor < 0 || s.Cursor >= len(s.Content) {
		return ""
	}
	return s.Content[s.Cursor]
}

// SelectedPath is the absolute path of the entry under the cursor, or
// CurrentPath when the listing is empty.
func (s *AppState) SelectedPath() string {
	name := s.SelectedName()
	if name == "" {
		return s.CurrentPath
	}
	return filepath.Join(s.CurrentPath, name)
}

// SearchText returns the live search buffer as a string.
func (s *AppState) SearchText() string {
	return string(s.SearchBuffer)
}

// HighlightRow is the screen row of the cursor within the listing pane.
func (s *AppState) HighlightRow() int {
	return s.Cursor - s.ViewportStart
}
