package fileutil

import (
	"io"
	"os"

	"github.com/thoreinstein/fmgen/internal/errors"
)

// MaxFileSize is the largest document ReadFileWithLimit accepts (10 MiB).
const MaxFileSize = 10 << 20

// ErrFileTooLarge indicates that a file exceeded MaxFileSize.
var ErrFileTooLarge = errors.Newf("file exceeds maximum size of %d bytes", MaxFileSize)

// ReadFileWithLimit reads a file up to MaxFileSize.
// It returns an error if the file is larger than the limit.
func ReadFileWithLimit(path string) ([]byte, error) {
	return ReadFileWithLimitN(path, MaxFileSize)
}

// ReadFileWithLimitN is ReadFileWithLimit with an explicit limit in bytes.
func ReadFileWithLimitN(path string, limit int64) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "opening file")
	}
	defer f.Close()

	// Fail fast on regular files whose size is already known.
	if info, err := f.Stat(); err == nil {
		if info.IsDir() {
			return nil, errors.Newf("%s is a directory", path)
		}
		if info.Size() > limit {
			return nil, tooLarge(path, limit)
		}
	}

	data, err := io.ReadAll(io.LimitReader(f, limit+1))
	if err != nil {
		return nil, errors.Wrap(err, "reading file")
	}
	if int64(len(data)) > limit {
		return nil, tooLarge(path, limit)
	}
	return data, nil
}

func tooLarge(path string, limit int64) error {
	if limit == MaxFileSize {
		return errors.Wrap(ErrFileTooLarge, path)
	}
	return errors.Mark(errors.Newf("%s: file exceeds maximum size of %d bytes", path, limit), ErrFileTooLarge)
}
