package state

// Action is the base interface for all state mutations
type Action interface{}

// ===== NAVIGATION ACTIONS =====

type NavigateUpAction struct{}
type NavigateDownAction struct{}
type NavigateTopAction struct{}
type NavigateBottomAction struct{}
type EnterDirectoryAction struct{}
type GoUpAction struct{}
type ReloadAction struct{}

// CenterOnAction moves the cursor to Index and centers the viewport on it.
type CenterOnAction struct {
	Index int
}

// ===== SCROLL ACTIONS =====

type ScrollPageUpAction struct{}
type ScrollPageDownAction struct{}

// ===== VIEW ACTIONS =====

type ResizeAction struct {
	Width  int
	Height int
}

// ===== SEARCH ACTIONS =====

type SearchStartAction struct {
	Reverse bool
}
type SearchCharAction struct {
	Char rune
}

// SearchInsertAction inserts several runes at once, as delivered by a
// single read (paste, multi-byte input).
type SearchInsertAction struct {
	Runes []rune
}
type SearchBackspaceAction struct{}
type SearchMoveCursorAction struct {
	Direction string // "left", "right", "home", "end"
}
type SearchHistoryAction struct {
	Direction string // "up" or "down"
}
type SearchCommitAction struct{}
type SearchCancelAction struct{}

// FindNextAction repeats the last committed search. Previous reverses the
// scan relative to the search's own direction.
type FindNextAction struct {
	Previous bool
}

// ===== APPLICATION ACTIONS =====
// Handled by the application, never by the reducer.

type QuitAction struct{}             // q - hand back the original path
type ExitCurrentAction struct{}      // i - hand back the current directory
type ExitUnderCursorAction struct{}  // o/Enter - directory under cursor, or open the file
type OpenEditorAction struct{}       // e - edit the file under the cursor
type OpenWithOpenerAction struct{}   // O - open the file with the opener
type YankPathAction struct{}         // y - copy the path under the cursor
type SuspendAction struct{}          // Ctrl-Z
