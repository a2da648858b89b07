package app

import (
	"errors"
	"fmt"
	"log"
	"os"
	"os/exec"
	"runtime"

	"github.com/kk-code-lab/trans/internal/config"
)

// ErrNoCommand is returned when neither the configured command nor the
// fallback could be started.
var ErrNoCommand = errors.New("no command could be started")

// commandRunner runs argv to completion. started is false when the process
// could not be launched at all.
type commandRunner func(argv []string) (started bool, err error)

// launcher runs external programs with the terminal handed back to them.
type launcher struct {
	term           Terminal
	editor         []string
	opener         []string
	fallbackEditor []string
	fallbackOpener []string
	run            commandRunner
}

func newLauncher(term Terminal, editor, opener []string) *launcher {
	l := &launcher{
		term:           term,
		editor:         editor,
		opener:         opener,
		fallbackEditor: []string{config.DefaultEditor},
		fallbackOpener: []string{config.DefaultOpener(runtime.GOOS)},
		run:            runInteractive,
	}
	if len(l.editor) == 0 {
		l.editor = l.fallbackEditor
	}
	if len(l.opener) == 0 {
		l.opener = l.fallbackOpener
	}
	return l
}

func (l *launcher) edit(path string) error {
	return l.launch(l.editor, l.fallbackEditor, path)
}

func (l *launcher) open(path string) error {
	return l.launch(l.opener, l.fallbackOpener, path)
}

// launch leaves terminal mode, runs command with path as its last argument
// and re-enters terminal mode afterwards. A command that fails to start is
// retried with fallback.
func (l *launcher) launch(command, fallback []string, path string) (err error) {
	if err := l.term.Exit(); err != nil {
		log.Printf("launcher: terminal exit: %v", err)
	}
	defer func() {
		if enterErr := l.term.Enter(); enterErr != nil && err == nil {
			err = fmt.Errorf("cannot restore terminal: %w", enterErr)
		}
	}()

	started, runErr := l.run(withArg(command, path))
	if started {
		return exitError(command, runErr)
	}
	log.Printf("launcher: %v failed to start: %v", command, runErr)

	started, fallbackErr := l.run(withArg(fallback, path))
	if started {
		return exitError(fallback, fallbackErr)
	}
	return fmt.Errorf("%w: %v: %v", ErrNoCommand, fallback, fallbackErr)
}

func exitError(command []string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", command[0], err)
}

func withArg(command []string, arg string) []string {
	argv := make([]string, len(command)+1)
	copy(argv, command)
	argv[len(command)] = arg
	return argv
}

func runInteractive(argv []string) (bool, error) {
	stdin, stdout, stderr, closeTTY := commandStdio()
	defer closeTTY()

	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Stdin = stdin
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	if err := cmd.Start(); err != nil {
		return false, err
	}
	return true, cmd.Wait()
}

// commandStdio attaches children to the controlling terminal when there is
// one, so editors work even when stdout is redirected.
func commandStdio() (stdin, stdout, stderr *os.File, closeFn func()) {
	if runtime.GOOS != "windows" {
		if tty, err := os.OpenFile("/dev/tty", os.O_RDWR, 0); err == nil {
			return tty, tty, tty, func() { _ = tty.Close() }
		}
	}
	return os.Stdin, os.Stdout, os.Stderr, func() {}
}
