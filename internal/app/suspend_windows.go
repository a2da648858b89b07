//go:build windows

package app

// suspend is a no-op: there is no job control to return to.
func (app *Application) suspend() {}
