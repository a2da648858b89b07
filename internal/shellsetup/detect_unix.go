//go:build !windows

package shellsetup

import (
	"os"
	"os/exec"
	"strconv"
	"strings"
)

// DetectParentShellName returns the command name of the parent process,
// read from /proc when available and from ps otherwise.
func DetectParentShellName() string {
	ppid := os.Getppid()
	if ppid <= 1 {
		return ""
	}
	pid := strconv.Itoa(ppid)

	if data, err := os.ReadFile("/proc/" + pid + "/comm"); err == nil {
		return strings.TrimSpace(string(data))
	}

	out, err := exec.Command("ps", "-o", "comm=", "-p", pid).Output()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(out))
}
