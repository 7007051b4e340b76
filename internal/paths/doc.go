// Package paths resolves fmgen's per-user directories and checks that paths
// named on the command line or in configuration are safe to use.
//
// # XDG Base Directory Compliance
//
// The package wraps github.com/adrg/xdg for cross-platform XDG Base Directory
// Specification compliance. The configuration file is searched for in the
// working directory and then in [ConfigDir]:
//
//	paths.ConfigDir() // ~/.config/fmgen on Linux
//
// # Path Safety
//
// [ValidatePath] rejects paths containing backslashes, control characters or
// "..", relative paths that are symlinks, and Windows device names such as
// "con" or "lpt1":
//
//	if err := paths.ValidatePath(input); err != nil {
//	    return err // wraps paths.ErrInvalidPath
//	}
package paths
