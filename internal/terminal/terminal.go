// Package terminal owns the process-wide terminal modes: raw input, the
// alternate screen buffer and cursor visibility.
package terminal

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/gdamore/tcell/v2"
)

const (
	escEnterAltScreen = "\x1b[?1049h"
	escExitAltScreen  = "\x1b[?1049l"
	escHideCursor     = "\x1b[?25l"
	escShowCursor     = "\x1b[?25h"
)

// Terminal wraps a tcell.Tty. Enter and Exit are idempotent so they can be
// called around external programs and again on shutdown.
type Terminal struct {
	tty     tcell.Tty
	entered bool
}

// Open binds to the controlling terminal, falling back to stdin/stdout when
// /dev/tty cannot be opened.
func Open() (*Terminal, error) {
	tty, err := openDevTty()
	if err != nil {
		log.Printf("terminal: /dev/tty unavailable, using stdio: %v", err)
		tty, err = newStdioTty(os.Stdin, os.Stdout)
		if err != nil {
			return nil, err
		}
	}
	return New(tty), nil
}

// New wraps an existing tty.
func New(tty tcell.Tty) *Terminal {
	return &Terminal{tty: tty}
}

// Entered reports whether the terminal is in raw/alternate mode.
func (t *Terminal) Entered() bool {
	return t.entered
}

// Enter switches to raw mode, the alternate screen and a hidden cursor.
func (t *Terminal) Enter() error {
	if t.entered {
		return nil
	}
	if err := t.tty.Start(); err != nil {
		return fmt.Errorf("cannot enter raw mode: %w", err)
	}
	if _, err := io.WriteString(t.tty, escEnterAltScreen+escHideCursor); err != nil {
		_ = t.tty.Stop()
		return fmt.Errorf("cannot switch to alternate screen: %w", err)
	}
	t.entered = true
	return nil
}

// Exit restores the cursor, the main screen and cooked mode.
func (t *Terminal) Exit() error {
	if !t.entered {
		return nil
	}
	t.entered = false

	_, writeErr := io.WriteString(t.tty, escShowCursor+escExitAltScreen)
	_ = t.tty.Drain()
	if err := t.tty.Stop(); err != nil {
		return fmt.Errorf("cannot restore terminal mode: %w", err)
	}
	if writeErr != nil {
		return fmt.Errorf("cannot leave alternate screen: %w", writeErr)
	}
	return nil
}

// Size returns the current width and height, or zeros when the size
// cannot be determined.
func (t *Terminal) Size() (width, height int) {
	ws, err := t.tty.WindowSize()
	if err != nil {
		return 0, 0
	}
	return ws.Width, ws.Height
}

// Read performs one blocking read.
func (t *Terminal) Read(p []byte) (int, error) {
	return t.tty.Read(p)
}

// Write emits a whole frame in one call.
func (t *Terminal) Write(frame string) error {
	if frame == "" {
		return nil
	}
	if _, err := io.WriteString(t.tty, frame); err != nil {
		return fmt.Errorf("cannot write frame: %w", err)
	}
	return nil
}

// Close leaves terminal mode and releases the tty.
func (t *Terminal) Close() error {
	err := t.Exit()
	_ = t.tty.Close()
	return err
}
