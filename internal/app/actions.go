package app

import (
	"fmt"
	"log"

	"github.com/atotto/clipboard"
	fsutil "github.com/kk-code-lab/trans/internal/fs"
	statepkg "github.com/kk-code-lab/trans/internal/state"
)

var (
	clipboardWrite = clipboard.WriteAll
	sniffFile      = fsutil.Sniff
)

// quit hands back the directory trans was started in.
func (app *Application) quit() {
	app.finish(app.state.OriginalPath)
}

// exitCurrent hands back the directory being listed.
func (app *Application) exitCurrent() {
	app.finish(app.state.CurrentPath)
}

// exitUnderCursor hands back the directory under the cursor, or the
// current one when the listing is empty. A file under the cursor is opened
// instead and browsing continues.
func (app *Application) exitUnderCursor() {
	target := app.state.SelectedPath()
	if app.reducer.IsDir(target) {
		app.finish(target)
		return
	}

	kind, err := sniffFile(target)
	if err != nil {
		app.setError(err)
		return
	}
	switch kind {
	case fsutil.KindText:
		app.openWithEditor()
	case fsutil.KindBinary:
		app.openWithOpener()
	}
}

func (app *Application) finish(path string) {
	app.resultPath = path
	app.shouldQuit = true
	log.Printf("exit with %s", path)
}

func (app *Application) openWithEditor() {
	app.openSelected(app.launcher.edit)
}

func (app *Application) openWithOpener() {
	app.openSelected(app.launcher.open)
}

func (app *Application) openSelected(launch func(path string) error) {
	target := app.state.SelectedPath()
	if app.reducer.IsDir(target) {
		return
	}
	if err := launch(target); err != nil {
		app.setError(err)
		return
	}
	// the file may have been created, renamed or deleted
	app.reloadListing()
}

func (app *Application) reloadListing() {
	if _, err := app.reducer.Reduce(app.state, statepkg.ReloadAction{}); err != nil {
		app.setError(err)
	}
}

// yank copies the path under the cursor, or the current directory when
// the listing is empty.
func (app *Application) yank() {
	target := app.state.SelectedPath()
	if err := clipboardWrite(target); err != nil {
		app.setError(fmt.Errorf("cannot copy %s to clipboard: %w", target, err))
		return
	}
	app.state.LastError = nil
}
