//go:build !windows

package app

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"
)

// resumeWait bounds the wait for SIGCONT when the stop did not happen,
// e.g. in an orphaned process group.
const resumeWait = 250 * time.Millisecond

func (app *Application) suspend() {
	// Return terminal control to the shell before stopping the process.
	if err := app.term.Exit(); err != nil {
		log.Printf("suspend: terminal exit: %v", err)
	}

	contCh := make(chan os.Signal, 1)
	signal.Notify(contCh, syscall.SIGCONT)
	defer signal.Stop(contCh)

	// Stop only this process; signalling the whole group would also stop
	// the wrapping shell function.
	_ = syscall.Kill(syscall.Getpid(), syscall.SIGTSTP)

	select {
	case <-contCh:
	case <-time.After(resumeWait):
	}

	if err := app.term.Enter(); err != nil {
		app.setError(err)
	}
}
