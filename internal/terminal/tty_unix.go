//go:build !windows

package terminal

import "github.com/gdamore/tcell/v2"

func openDevTty() (tcell.Tty, error) {
	return tcell.NewDevTty()
}
