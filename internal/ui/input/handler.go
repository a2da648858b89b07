package input

import (
	"unicode"

	"github.com/gdamore/tcell/v2"
	statepkg "github.com/kk-code-lab/trans/internal/state"
)

// InputHandler converts tcell events to Actions
type InputHandler struct {
	actionChan chan statepkg.Action
	state      *statepkg.AppState // Reference to current state for mode checking
	pendingG   bool               // first 'g' of "gg" seen
}

// NewInputHandler creates a new input handler
func NewInputHandler(actionChan chan statepkg.Action) *InputHandler {
	return &InputHandler{
		actionChan: actionChan,
	}
}

// SetState sets the state reference for mode checking
func (ih *InputHandler) SetState(state *statepkg.AppState) {
	ih.state = state
}

// ProcessEvent converts a tcell event into an Action. It returns false once
// the user asked to quit.
func (ih *InputHandler) ProcessEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return ih.processKeyEvent(ev)
	case *tcell.EventResize:
		w, h := ev.Size()
		ih.actionChan <- statepkg.ResizeAction{Width: w, Height: h}
		return true
	default:
		return true
	}
}

// ProcessKeys handles the keys decoded from one read. settle runs after
// every key so the next key sees the mode that key produced; it returns
// false when the application is done and the rest of the read is dropped.
// Printable keys arriving together on the search line are sent as a single
// insert.
func (ih *InputHandler) ProcessKeys(events []*tcell.EventKey, settle func() bool) bool {
	for i := 0; i < len(events); {
		if ih.inSearch() {
			if runes := leadingRunes(events[i:]); len(runes) > 1 {
				ih.actionChan <- statepkg.SearchInsertAction{Runes: runes}
				if !settle() {
					return false
				}
				i += len(runes)
				continue
			}
		}
		if !ih.ProcessEvent(events[i]) {
			settle()
			return false
		}
		if !settle() {
			return false
		}
		i++
	}
	return true
}

func leadingRunes(events []*tcell.EventKey) []rune {
	var runes []rune
	for _, ev := range events {
		if !isTextKey(ev) {
			break
		}
		runes = append(runes, ev.Rune())
	}
	return runes
}

func isTextKey(ev *tcell.EventKey) bool {
	return ev.Key() == tcell.KeyRune && ev.Modifiers()&tcell.ModCtrl == 0 && unicode.IsPrint(ev.Rune())
}

func (ih *InputHandler) inSearch() bool {
	return ih.state != nil && ih.state.Mode.IsSearch()
}

// processKeyEvent handles keyboard input
func (ih *InputHandler) processKeyEvent(ev *tcell.EventKey) bool {
	if ih.inSearch() {
		ih.pendingG = false
		return ih.processSearchKey(ev)
	}
	return ih.processNormalKey(ev)
}

func (ih *InputHandler) processSearchKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		ih.actionChan <- statepkg.SearchCancelAction{}
	case tcell.KeyEnter:
		ih.actionChan <- statepkg.SearchCommitAction{}
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		ih.actionChan <- statepkg.SearchBackspaceAction{}
	case tcell.KeyLeft:
		ih.actionChan <- statepkg.SearchMoveCursorAction{Direction: "left"}
	case tcell.KeyRight:
		ih.actionChan <- statepkg.SearchMoveCursorAction{Direction: "right"}
	case tcell.KeyHome, tcell.KeyCtrlA:
		ih.actionChan <- statepkg.SearchMoveCursorAction{Direction: "home"}
	case tcell.KeyEnd, tcell.KeyCtrlE:
		ih.actionChan <- statepkg.SearchMoveCursorAction{Direction: "end"}
	case tcell.KeyUp:
		ih.actionChan <- statepkg.SearchHistoryAction{Direction: "up"}
	case tcell.KeyDown:
		ih.actionChan <- statepkg.SearchHistoryAction{Direction: "down"}
	case tcell.KeyRune:
		if isTextKey(ev) {
			ih.actionChan <- statepkg.SearchCharAction{Char: ev.Rune()}
		}
	}
	return true
}

func (ih *InputHandler) processNormalKey(ev *tcell.EventKey) bool {
	wasPendingG := ih.pendingG
	ih.pendingG = false

	// Handle special keys first
	switch ev.Key() {
	case tcell.KeyCtrlC:
		ih.actionChan <- statepkg.QuitAction{}
		return false
	case tcell.KeyUp:
		ih.actionChan <- statepkg.NavigateUpAction{}
	case tcell.KeyDown:
		ih.actionChan <- statepkg.NavigateDownAction{}
	case tcell.KeyLeft, tcell.KeyBackspace, tcell.KeyBackspace2:
		ih.actionChan <- statepkg.GoUpAction{}
	case tcell.KeyRight:
		ih.actionChan <- statepkg.EnterDirectoryAction{}
	case tcell.KeyEnter:
		ih.actionChan <- statepkg.ExitUnderCursorAction{}
	case tcell.KeyHome:
		ih.actionChan <- statepkg.NavigateTopAction{}
	case tcell.KeyEnd:
		ih.actionChan <- statepkg.NavigateBottomAction{}
	case tcell.KeyPgUp, tcell.KeyCtrlB, tcell.KeyCtrlU:
		ih.actionChan <- statepkg.ScrollPageUpAction{}
	case tcell.KeyPgDn, tcell.KeyCtrlF, tcell.KeyCtrlD:
		ih.actionChan <- statepkg.ScrollPageDownAction{}
	case tcell.KeyCtrlL:
		ih.actionChan <- statepkg.ReloadAction{}
	case tcell.KeyCtrlZ:
		ih.actionChan <- statepkg.SuspendAction{}
	case tcell.KeyRune:
		return ih.processNormalRune(ev.Rune(), wasPendingG)
	}
	return true
}

func (ih *InputHandler) processNormalRune(r rune, wasPendingG bool) bool {
	switch r {
	case 'q':
		ih.actionChan <- statepkg.QuitAction{}
		return false
	case 'k':
		ih.actionChan <- statepkg.NavigateUpAction{}
	case 'j':
		ih.actionChan <- statepkg.NavigateDownAction{}
	case 'h':
		ih.actionChan <- statepkg.GoUpAction{}
	case 'l':
		ih.actionChan <- statepkg.EnterDirectoryAction{}
	case 'g':
		if wasPendingG {
			ih.actionChan <- statepkg.NavigateTopAction{}
		} else {
			ih.pendingG = true
		}
	case 'G':
		ih.actionChan <- statepkg.NavigateBottomAction{}
	case '/':
		ih.actionChan <- statepkg.SearchStartAction{}
	case '?':
		ih.actionChan <- statepkg.SearchStartAction{Reverse: true}
	case 'n':
		ih.actionChan <- statepkg.FindNextAction{}
	case 'N':
		ih.actionChan <- statepkg.FindNextAction{Previous: true}
	case 'i':
		ih.actionChan <- statepkg.ExitCurrentAction{}
	case 'o':
		ih.actionChan <- statepkg.ExitUnderCursorAction{}
	case 'e':
		ih.actionChan <- statepkg.OpenEditorAction{}
	case 'O':
		ih.actionChan <- statepkg.OpenWithOpenerAction{}
	case 'y':
		ih.actionChan <- statepkg.YankPathAction{}
	}
	return true
}
