//go:build windows

package terminal

import (
	"errors"

	"github.com/gdamore/tcell/v2"
)

func openDevTty() (tcell.Tty, error) {
	return nil, errors.New("no /dev/tty on windows")
}
