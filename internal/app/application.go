package app

import (
	"fmt"
	"log"

	statepkg "github.com/kk-code-lab/trans/internal/state"
	inputui "github.com/kk-code-lab/trans/internal/ui/input"
	renderui "github.com/kk-code-lab/trans/internal/ui/render"
)

// Terminal is the control surface the driver loop needs. *terminal.Terminal
// satisfies it.
type Terminal interface {
	Enter() error
	Exit() error
	Size() (width, height int)
	Read(p []byte) (int, error)
	Write(frame string) error
}

// Options configures a new Application.
type Options struct {
	StartPath string
	Theme     renderui.ColorTheme
	Editor    []string
	Opener    []string
	// Reader overrides the filesystem; nil reads the local disk.
	Reader statepkg.DirectoryReader
}

// Application represents the running app.
type Application struct {
	term       Terminal
	state      *statepkg.AppState
	reducer    *statepkg.StateReducer
	renderer   *renderui.Renderer
	decoder    *inputui.Decoder
	input      *inputui.InputHandler
	actionCh   chan statepkg.Action
	launcher   *launcher
	shouldQuit bool
	resultPath string
}

// NewApplication resolves the start directory and loads its listing. A
// start path that cannot be resolved is an error.
func NewApplication(term Terminal, opts Options) (*Application, error) {
	startPath, err := statepkg.CanonicalPath(opts.StartPath)
	if err != nil {
		return nil, fmt.Errorf("cannot resolve start directory: %w", err)
	}

	reducer := statepkg.NewStateReducer(opts.Reader)
	if !reducer.IsDir(startPath) {
		return nil, fmt.Errorf("cannot resolve start directory: %s is not a directory", startPath)
	}

	state := &statepkg.AppState{}
	reducer.Initialize(state, startPath)
	log.Printf("start at %s", startPath)

	actionCh := make(chan statepkg.Action, 16)
	input := inputui.NewInputHandler(actionCh)
	input.SetState(state)

	return &Application{
		term:       term,
		state:      state,
		reducer:    reducer,
		renderer:   renderui.NewRenderer(opts.Theme),
		decoder:    &inputui.Decoder{},
		input:      input,
		actionCh:   actionCh,
		launcher:   newLauncher(term, opts.Editor, opts.Opener),
		resultPath: startPath,
	}, nil
}

// State exposes the navigation state, mainly for tests.
func (app *Application) State() *statepkg.AppState {
	return app.state
}

// ResultPath is the path to hand back to the shell once Run returns.
func (app *Application) ResultPath() string {
	return app.resultPath
}
