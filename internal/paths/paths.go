package paths

import (
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/adrg/xdg"
	"github.com/cockroachdb/errors"
)

// AppName names the per-user configuration directory.
const AppName = "fmgen"

// Sentinel errors for path resolution.
var (
	// ErrInvalidPath indicates the provided path is malformed or unsafe.
	ErrInvalidPath = errors.New("invalid path")
)

// DefaultDirPerm is the default permission for newly created directories.
const DefaultDirPerm = 0o755

// reservedNames are device names that cannot be used as file names on
// Windows. Matching is case-insensitive.
var reservedNames = map[string]bool{
	"con":  true,
	"prn":  true,
	"aux":  true,
	"nul":  true,
	"com1": true,
	"lpt1": true,
}

// EnsureDir creates the directory and any necessary parents with specified permissions.
// If perm is 0, DefaultDirPerm is used.
// This function is idempotent; it returns nil if the directory already exists.
func EnsureDir(path string, perm os.FileMode) error {
	if perm == 0 {
		perm = DefaultDirPerm
	}
	return os.MkdirAll(path, perm)
}

// ConfigHome returns the XDG config home directory.
// On Linux: ~/.config
// On macOS: ~/Library/Application Support
// On Windows: %LOCALAPPDATA%
func ConfigHome() string {
	return xdg.ConfigHome
}

// ConfigDir returns the directory searched for fmgen.yaml after the
// working directory: <ConfigHome>/fmgen.
func ConfigDir() string {
	return filepath.Join(ConfigHome(), AppName)
}

// ValidatePath reports whether path is safe to read or write. It rejects
// backslashes, NUL and other control characters, any ".." and, for
// relative paths, existing symlinks and reserved device names. Absolute
// paths are accepted once the character checks pass.
//
// Every error wraps ErrInvalidPath.
func ValidatePath(path string) error {
	if path == "" {
		return errors.Wrap(ErrInvalidPath, "empty path")
	}
	if strings.ContainsRune(path, '\\') {
		return errors.Wrapf(ErrInvalidPath, "%q: backslashes are not allowed", path)
	}
	if strings.IndexFunc(path, unicode.IsControl) >= 0 {
		return errors.Wrapf(ErrInvalidPath, "%q: contains control characters", path)
	}
	if strings.Contains(path, "..") {
		return errors.Wrapf(ErrInvalidPath, "%q: path traversal is not allowed", path)
	}
	if filepath.IsAbs(path) {
		return nil
	}

	if info, err := os.Lstat(path); err == nil && info.Mode()&os.ModeSymlink != 0 {
		return errors.Wrapf(ErrInvalidPath, "%q: symlinks are not allowed", path)
	}

	if reservedNames[strings.ToLower(filepath.Base(path))] {
		return errors.Wrapf(ErrInvalidPath, "%q: reserved file name", path)
	}
	return nil
}
