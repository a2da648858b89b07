//go:build windows

package shellsetup

// DetectParentShellName is not implemented on windows; the POSIX snippet is
// printed unless a shell is named explicitly.
func DetectParentShellName() string {
	return ""
}
