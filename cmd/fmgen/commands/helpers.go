package commands

import (
	"io"
	"io/fs"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/fmgen/internal/errors"
	"github.com/thoreinstein/fmgen/internal/logging"
	"github.com/thoreinstein/fmgen/internal/paths"
	"github.com/thoreinstein/fmgen/pkg/fileutil"
	"github.com/thoreinstein/fmgen/pkg/frontmatter"
)

// stdinName is the input argument that reads from standard input.
const stdinName = "-"

// readInput loads a document from path, or from stdin for "-", refusing
// unsafe paths and oversized files.
func readInput(cmd *cobra.Command, path string) (string, error) {
	if path == stdinName {
		data, err := io.ReadAll(io.LimitReader(cmd.InOrStdin(), fileutil.MaxFileSize+1))
		if err != nil {
			return "", errors.NewSystemError(errors.Wrap(err, "reading stdin"), "")
		}
		if len(data) > fileutil.MaxFileSize {
			return "", errors.NewUserError(fileutil.ErrFileTooLarge, "Inputs are limited to 10 MiB")
		}
		return string(data), nil
	}

	if err := checkPath(path); err != nil {
		return "", err
	}

	data, err := fileutil.ReadFileWithLimit(path)
	switch {
	case err == nil:
		return string(data), nil
	case errors.Is(err, fs.ErrNotExist):
		return "", errors.NewUserError(errors.Wrapf(errors.ErrNotFound, "%s", path), "Check the file path")
	case errors.Is(err, fileutil.ErrFileTooLarge):
		return "", errors.NewUserError(err, "Inputs are limited to 10 MiB")
	default:
		return "", errors.NewSystemError(err, "")
	}
}

// checkPath rejects unsafe paths given on the command line.
func checkPath(path string) error {
	if err := paths.ValidatePath(path); err != nil {
		return errors.NewUserError(err, "Use a plain relative or absolute path without '..'")
	}
	return nil
}

// extractOptions builds frontmatter options from config and the command's
// logger.
func extractOptions(cmd *cobra.Command, checkInput bool) frontmatter.Options {
	return frontmatter.Options{
		MaxDepth:   appConfig.Validate.MaxDepth,
		MaxKeys:    appConfig.Validate.MaxKeys,
		CheckInput: checkInput || appConfig.Extract.CheckInput,
		Logger:     logging.FromContext(cmd.Context()),
	}
}

// extract reads and parses one input, mapping failures to user errors with
// a hint.
func extract(cmd *cobra.Command, path string, checkInput bool) (frontmatter.Frontmatter, string, error) {
	content, err := readInput(cmd, path)
	if err != nil {
		return nil, "", err
	}

	fm, body, err := frontmatter.ExtractWithOptions(content, extractOptions(cmd, checkInput))
	if err != nil {
		return nil, "", errors.NewUserError(errors.Wrapf(err, "%s", path), extractHint(err))
	}

	logging.FromContext(cmd.Context()).Debug("extracted frontmatter", "input", path, "keys", fm.Len())
	return fm, body, nil
}

func extractHint(err error) string {
	switch {
	case errors.Is(err, frontmatter.ErrNoFrontmatter):
		return "Start the document with ---, +++ or {"
	case errors.Is(err, frontmatter.ErrExtraction):
		return "Remove the flagged text or run without --check-input"
	case errors.Is(err, frontmatter.ErrDepthLimitExceeded), errors.Is(err, frontmatter.ErrTooManyKeys):
		return "Raise validate.max_depth or validate.max_keys in fmgen.yaml"
	}
	var fmErr *frontmatter.Error
	if errors.As(err, &fmErr) && fmErr.Line > 0 {
		return "Check the frontmatter syntax near line " + strconv.Itoa(fmErr.Line)
	}
	return ""
}

// outputFormat resolves --format against the configured default.
func outputFormat(flag string) (frontmatter.Format, error) {
	name := flag
	if name == "" {
		name = appConfig.Extract.DefaultFormat
	}
	if name == "" {
		return frontmatter.FormatYAML, nil
	}
	f, err := frontmatter.ParseFormat(name)
	if err != nil {
		return frontmatter.FormatUnsupported, errors.NewUserError(
			errors.Mark(err, errors.ErrInvalidArgument),
			"Use one of: yaml, toml, json (or li, tkv, bof)",
		)
	}
	return f, nil
}

// applySets applies key=value overrides to fm.
func applySets(fm frontmatter.Frontmatter, sets []string) error {
	for _, s := range sets {
		key, value, ok := strings.Cut(s, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return errors.NewUserError(
				errors.Wrapf(errors.ErrInvalidArgument, "--set %q", s),
				"Use --set key=value",
			)
		}
		fm.Set(key, frontmatter.ParseScalar(value))
	}
	return nil
}

// writeOutput writes data atomically to path, or to the command's stdout
// when path is empty.
func writeOutput(cmd *cobra.Command, path, data string) error {
	if path == "" {
		_, err := io.WriteString(cmd.OutOrStdout(), data)
		return errors.Wrap(err, "writing output")
	}
	if err := checkPath(path); err != nil {
		return err
	}
	if err := fileutil.WriteFileCreatingDirs(path, []byte(data), 0o644); err != nil {
		return errors.NewSystemError(err, "")
	}
	return nil
}
