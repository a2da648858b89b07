package app

import (
	"fmt"
	"log"

	statepkg "github.com/kk-code-lab/trans/internal/state"
)

const readBufferSize = 256

// Run enters terminal mode and drives render, read, decode and dispatch
// until an exit action. The terminal is restored before Run returns.
func (app *Application) Run() error {
	if err := app.term.Enter(); err != nil {
		return fmt.Errorf("cannot start terminal: %w", err)
	}
	defer func() {
		if exitErr := app.term.Exit(); exitErr != nil {
			log.Printf("terminal exit: %v", exitErr)
		}
	}()

	buf := make([]byte, readBufferSize)
	for !app.shouldQuit {
		app.draw()

		n, readErr := app.term.Read(buf)
		if n > 0 {
			events := app.decoder.Decode(buf[:n])
			if !app.input.ProcessKeys(events, app.processActions) {
				app.shouldQuit = true
			}
		}
		if readErr != nil && !app.shouldQuit {
			log.Printf("input closed: %v", readErr)
			app.quit()
		}
	}
	return nil
}

// draw polls the terminal size, refreshes the preview and writes one frame.
func (app *Application) draw() {
	w, h := app.term.Size()
	if _, err := app.reducer.Reduce(app.state, statepkg.ResizeAction{Width: w, Height: h}); err != nil {
		app.setError(err)
	}
	app.reducer.RefreshPreview(app.state)
	if err := app.term.Write(app.renderer.Render(app.state)); err != nil {
		log.Printf("render: %v", err)
	}
}

// processActions drains the action channel. It reports whether the loop
// should keep consuming input.
func (app *Application) processActions() bool {
	for {
		select {
		case action := <-app.actionCh:
			app.handleAction(action)
			if app.shouldQuit {
				app.drainActions()
				return false
			}
		default:
			return true
		}
	}
}

func (app *Application) drainActions() {
	for {
		select {
		case <-app.actionCh:
		default:
			return
		}
	}
}

func (app *Application) handleAction(action statepkg.Action) {
	if action == nil {
		return
	}

	switch action.(type) {
	case statepkg.QuitAction:
		app.quit()
		return
	case statepkg.ExitCurrentAction:
		app.exitCurrent()
		return
	case statepkg.ExitUnderCursorAction:
		app.exitUnderCursor()
		return
	case statepkg.SuspendAction:
		app.suspend()
		return
	}

	app.handleAppAction(action)
}

func (app *Application) handleAppAction(action statepkg.Action) {
	switch action.(type) {
	case statepkg.OpenEditorAction:
		app.openWithEditor()
		return
	case statepkg.OpenWithOpenerAction:
		app.openWithOpener()
		return
	case statepkg.YankPathAction:
		app.yank()
		return
	}

	if _, err := app.reducer.Reduce(app.state, action); err != nil {
		app.setError(err)
	}
}

func (app *Application) setError(err error) {
	app.state.LastError = err
	log.Printf("error: %v", err)
}
