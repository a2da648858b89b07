package state

import (
	"log"
	"path/filepath"

	fsutil "github.com/kk-code-lab/trans/internal/fs"
)

// ===== REDUCER =====

// StateReducer applies actions to state
type StateReducer struct {
	reader DirectoryReader
}

// NewStateReducer creates a reducer reading directories through reader.
// A nil reader uses the local filesystem.
func NewStateReducer(reader DirectoryReader) *StateReducer {
	if reader == nil {
		reader = fsutil.Reader{}
	}
	return &StateReducer{reader: reader}
}

// Initialize points state at startPath, which must already be canonical,
// and seeds the ancestor stack with every parent up to the root.
func (r *StateReducer) Initialize(state *AppState, startPath string) {
	state.CurrentPath = startPath
	state.OriginalPath = startPath
	state.Ancestors = ancestorsOf(startPath)
	state.Mode = ModeNormal
	state.HistoryIndex = len(state.SearchHistory)
	r.loadContent(state)
	state.Cursor = 0
	state.ViewportStart = 0
}

// Reduce applies action to state. Application-level actions are ignored.
func (r *StateReducer) Reduce(state *AppState, action Action) (*AppState, error) {
	switch a := action.(type) {

	// ===== NAVIGATION =====

	case NavigateUpAction:
		state.moveUp()
		return state, nil

	case NavigateDownAction:
		state.moveDown()
		return state, nil

	case NavigateTopAction:
		state.Cursor = 0
		state.ViewportStart = 0
		return state, nil

	case NavigateBottomAction:
		state.centerOn(len(state.Content) - 1)
		return state, nil

	case CenterOnAction:
		state.centerOn(a.Index)
		return state, nil

	case EnterDirectoryAction:
		r.descend(state)
		return state, nil

	case GoUpAction:
		r.ascend(state)
		return state, nil

	case ReloadAction:
		selected := state.SelectedName()
		r.loadContent(state)
		for i, name := range state.Content {
			if name == selected {
				state.Cursor = i
				break
			}
		}
		state.clampCursor()
		return state, nil

	// ===== SCROLL =====

	case ScrollPageUpAction:
		state.pageBy(-state.pageStep())
		return state, nil

	case ScrollPageDownAction:
		state.pageBy(state.pageStep())
		return state, nil

	// ===== VIEW =====

	case ResizeAction:
		if a.Width == state.ScreenWidth && a.Height == state.ScreenHeight {
			return state, nil
		}
		state.ScreenWidth = a.Width
		state.ScreenHeight = a.Height
		state.clampCursor()
		return state, nil

	// ===== SEARCH =====

	case SearchStartAction:
		state.startSearch(a.Reverse)
		return state, nil

	case SearchCharAction:
		if !state.Mode.IsSearch() {
			return state, nil
		}
		state.insertRunes([]rune{a.Char})
		state.incrementalMatch()
		return state, nil

	case SearchInsertAction:
		if !state.Mode.IsSearch() {
			return state, nil
		}
		state.insertRunes(a.Runes)
		state.incrementalMatch()
		return state, nil

	case SearchBackspaceAction:
		if state.Mode.IsSearch() && state.backspace() {
			state.incrementalMatch()
		}
		return state, nil

	case SearchMoveCursorAction:
		if state.Mode.IsSearch() {
			state.moveEditCursor(a.Direction)
		}
		return state, nil

	case SearchHistoryAction:
		if state.Mode.IsSearch() && state.historyStep(a.Direction) {
			state.incrementalMatch()
		}
		return state, nil

	case SearchCommitAction:
		if state.Mode.IsSearch() {
			state.commitSearch()
		}
		return state, nil

	case SearchCancelAction:
		if state.Mode.IsSearch() {
			state.leaveSearch()
		}
		return state, nil

	case FindNextAction:
		state.findNext(a.Previous)
		return state, nil
	}

	return state, nil
}

// RefreshPreview re-reads the directory under the cursor. It runs before
// every frame so the preview always tracks the live cursor.
func (r *StateReducer) RefreshPreview(state *AppState) {
	state.Preview = nil
	state.CursorIsDir = false
	state.PreviewHighlightIsDir = false

	name := state.SelectedName()
	if name == "" {
		return
	}
	dir := filepath.Join(state.CurrentPath, name)
	if !r.reader.IsDir(dir) {
		return
	}
	state.CursorIsDir = true

	names, err := r.reader.ReadNames(dir)
	if err != nil {
		log.Printf("preview %s: %v", dir, err)
		return
	}
	state.Preview = sortNames(names)

	row := state.HighlightRow()
	if row >= 0 && row < len(state.Preview) {
		state.PreviewHighlightIsDir = r.reader.IsDir(filepath.Join(dir, state.Preview[row]))
	}
}

// IsDir exposes the reader's directory check to the application.
func (r *StateReducer) IsDir(path string) bool {
	return r.reader.IsDir(path)
}
