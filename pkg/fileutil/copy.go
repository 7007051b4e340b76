package fileutil

import (
	"io"
	"os"
	"path/filepath"

	"github.com/thoreinstein/fmgen/internal/errors"
)

// ErrSymlink is returned by CopyDir when the source tree contains a symlink.
var ErrSymlink = errors.New("symlinks are not copied")

// CopyDir recursively copies the directory src to dst, creating dst if
// needed. Existing files in dst are overwritten; other files are left alone.
// Symlinks anywhere in src make CopyDir fail with ErrSymlink.
func CopyDir(src, dst string) error {
	info, err := os.Lstat(src)
	if err != nil {
		return errors.Wrapf(err, "reading %s", src)
	}
	if !info.IsDir() {
		return errors.Newf("%s is not a directory", src)
	}
	if err := os.MkdirAll(dst, info.Mode().Perm()|0o700); err != nil {
		return errors.Wrapf(err, "creating directory %s", dst)
	}

	entries, err := os.ReadDir(src)
	if err != nil {
		return errors.Wrapf(err, "reading directory %s", src)
	}

	for _, entry := range entries {
		srcPath := filepath.Join(src, entry.Name())
		dstPath := filepath.Join(dst, entry.Name())

		switch {
		case entry.Type()&os.ModeSymlink != 0:
			return errors.Wrap(ErrSymlink, srcPath)
		case entry.IsDir():
			if err := CopyDir(srcPath, dstPath); err != nil {
				return err
			}
		default:
			if err := CopyFile(srcPath, dstPath); err != nil {
				return err
			}
		}
	}
	return nil
}

// CopyFile copies a single file, keeping its permission bits.
func CopyFile(src, dst string) error {
	srcFile, err := os.Open(src)
	if err != nil {
		return errors.Wrapf(err, "opening source file %s", src)
	}
	defer srcFile.Close()

	srcInfo, err := srcFile.Stat()
	if err != nil {
		return errors.Wrapf(err, "stating source file %s", src)
	}

	dstFile, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, srcInfo.Mode().Perm())
	if err != nil {
		return errors.Wrapf(err, "creating destination file %s", dst)
	}

	if _, err := io.Copy(dstFile, srcFile); err != nil {
		dstFile.Close()
		return errors.Wrapf(err, "copying %s to %s", src, dst)
	}
	return errors.Wrapf(dstFile.Close(), "closing %s", dst)
}
