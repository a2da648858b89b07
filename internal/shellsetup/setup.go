// Package shellsetup prints the shell function that lets trans change the
// caller's working directory.
package shellsetup

import (
	"fmt"
	"io"
	"os"
	"path"
	"strings"
)

// FunctionName is the shell function users call instead of the binary.
const FunctionName = "ts"

type ParentShellFunc func() string

type Config struct {
	DetectParent ParentShellFunc
	Getenv       func(string) string
	// Executable is the trans binary to call; os.Executable when empty.
	Executable string
}

// PrintSetup writes the integration snippet for shellOverride, or for the
// detected shell when shellOverride is empty.
func PrintSetup(w io.Writer, shellOverride string, cfg Config) error {
	parent := cfg.DetectParent
	if parent == nil {
		parent = DetectParentShellName
	}
	getenv := cfg.Getenv
	if getenv == nil {
		getenv = os.Getenv
	}

	shell := normalizeShellName(shellOverride)
	if shell == "" {
		shell = detectShell(getenv, parent)
	}

	binary := cfg.Executable
	if binary == "" {
		var err error
		if binary, err = os.Executable(); err != nil {
			binary = "trans"
		}
	}

	_, err := io.WriteString(w, Snippet(shell, binary))
	return err
}

// Snippet returns the function definition for shell. Unknown shells get
// the POSIX version.
func Snippet(shell, binary string) string {
	switch shell {
	case "fish":
		return fmt.Sprintf(`function %[1]s
    set -l ts_out (mktemp -t trans.XXXXXX); or return 1
    command %[2]s --output $ts_out $argv
    set -l ts_status $status
    if test -f $ts_out -a ! -L $ts_out
        set -l ts_dest (cat $ts_out 2>/dev/null)
        if test -n "$ts_dest" -a -d "$ts_dest"
            builtin cd $ts_dest
        end
    end
    rm -f $ts_out
    return $ts_status
end
`, FunctionName, fishQuote(binary))
	default:
		return fmt.Sprintf(`%[1]s() {
    ts_out=$(mktemp "${TMPDIR:-/tmp}/trans.XXXXXX") || return 1
    command %[2]s --output "$ts_out" "$@"
    ts_status=$?
    if [ -f "$ts_out" ] && [ ! -L "$ts_out" ]; then
        ts_dest=$(cat "$ts_out" 2>/dev/null)
        if [ -n "$ts_dest" ] && [ -d "$ts_dest" ]; then
            cd "$ts_dest" || ts_status=$?
        fi
    fi
    rm -f "$ts_out"
    unset ts_out ts_dest
    return $ts_status
}
`, FunctionName, posixQuote(binary))
	}
}

func posixQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

func fishQuote(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return "'" + strings.ReplaceAll(s, "'", `\'`) + "'"
}

func detectShell(getenv func(string) string, parent ParentShellFunc) string {
	if shell := normalizeShellName(getenv("SHELL")); shell != "" {
		return shell
	}

	if parent != nil {
		if shell := normalizeShellName(parent()); shell != "" {
			return shell
		}
	}

	return "sh"
}

func normalizeShellName(value string) string {
	value = extractExecutable(value)
	if value == "" {
		return ""
	}

	value = strings.Trim(value, `"'`)
	base := strings.ToLower(path.Base(value))
	// login shells show up as "-bash" in ps output
	base = strings.TrimPrefix(base, "-")
	return strings.TrimSpace(base)
}

func extractExecutable(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}

	if strings.HasPrefix(value, "\"") {
		value = value[1:]
		if idx := strings.IndexRune(value, '"'); idx >= 0 {
			return value[:idx]
		}
		return value
	}

	if strings.HasPrefix(value, "'") {
		value = value[1:]
		if idx := strings.IndexRune(value, '\''); idx >= 0 {
			return value[:idx]
		}
		return value
	}

	if idx := strings.IndexAny(value, " \t"); idx >= 0 {
		return value[:idx]
	}

	return value
}
