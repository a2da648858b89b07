package terminal

import (
	"fmt"
	"os"

	"github.com/gdamore/tcell/v2"
	"golang.org/x/term"
)

// stdioTty is a tcell.Tty over the process's standard streams.
type stdioTty struct {
	in    *os.File
	out   *os.File
	saved *term.State
}

func newStdioTty(in, out *os.File) (tcell.Tty, error) {
	if !term.IsTerminal(int(in.Fd())) {
		return nil, fmt.Errorf("standard input is not a terminal")
	}
	return &stdioTty{in: in, out: out}, nil
}

func (s *stdioTty) Start() error {
	saved, err := term.MakeRaw(int(s.in.Fd()))
	if err != nil {
		return err
	}
	s.saved = saved
	return nil
}

func (s *stdioTty) Stop() error {
	if s.saved == nil {
		return nil
	}
	err := term.Restore(int(s.in.Fd()), s.saved)
	s.saved = nil
	return err
}

func (s *stdioTty) Drain() error { return nil }

func (s *stdioTty) NotifyResize(func()) {}

func (s *stdioTty) WindowSize() (tcell.WindowSize, error) {
	w, h, err := term.GetSize(int(s.out.Fd()))
	if err != nil {
		w, h, err = term.GetSize(int(s.in.Fd()))
		if err != nil {
			return tcell.WindowSize{}, err
		}
	}
	return tcell.WindowSize{Width: w, Height: h}, nil
}

func (s *stdioTty) Read(p []byte) (int, error) {
	return s.in.Read(p)
}

func (s *stdioTty) Write(p []byte) (int, error) {
	return s.out.Write(p)
}

func (s *stdioTty) Close() error { return nil }
