package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
	"github.com/spf13/cobra"

	"github.com/thoreinstein/fmgen/internal/errors"
	"github.com/thoreinstein/fmgen/pkg/frontmatter"
)

var diffFormat string

func init() {
	diffCmd.Flags().StringVarP(&diffFormat, "format", "f", "",
		"format both sides are rendered in before comparing (default from extract.default_format)")

	rootCmd.AddCommand(diffCmd)
}

var diffCmd = &cobra.Command{
	Use:   "diff <a> <b>",
	Short: "Compare the frontmatter of two documents",
	Long: `Compare the frontmatter of two documents regardless of the format each is
written in. Both sides are rendered canonically, keys sorted, in one
format and compared line by line.

The exit code is 0 when the frontmatter is equal and 1 when it differs.`,
	Example: `  # A TOML post and its YAML translation carry the same data
  fmgen diff post.toml.md post.yaml.md`,
	Args: cobra.ExactArgs(2),
	RunE: runDiff,
}

func runDiff(cmd *cobra.Command, args []string) error {
	format, err := outputFormat(diffFormat)
	if err != nil {
		return err
	}

	sides := make([]string, 2)
	docs := make([]frontmatter.Frontmatter, 2)
	for i, path := range args {
		fm, _, err := extract(cmd, path, false)
		if err != nil {
			return err
		}
		out, err := frontmatter.Emit(fm, format)
		if err != nil {
			return errors.NewUserError(errors.Wrapf(err, "rendering %s as %s", path, format), "Try --format yaml")
		}
		if !strings.HasSuffix(out, "\n") {
			out += "\n"
		}
		docs[i], sides[i] = fm, out
	}

	if docs[0].Equal(docs[1]) {
		if !quiet {
			fmt.Fprintln(cmd.OutOrStdout(), "Frontmatter is identical")
		}
		return nil
	}

	writeLineDiff(cmd.OutOrStdout(), args[0], args[1], sides[0], sides[1])
	return errors.NewUserError(errors.ErrDocumentsDiffer, "")
}

// writeLineDiff prints a unified-style line diff of a and b.
func writeLineDiff(w io.Writer, nameA, nameB, a, b string) {
	dmp := diffpatch.New()
	charsA, charsB, lines := dmp.DiffLinesToChars(a, b)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(charsA, charsB, false), lines)

	bold := color.New(color.Bold)
	del := color.New(color.FgRed)
	ins := color.New(color.FgGreen)

	bold.Fprintf(w, "--- %s\n", nameA)
	bold.Fprintf(w, "+++ %s\n", nameB)
	for _, d := range diffs {
		for _, line := range strings.SplitAfter(d.Text, "\n") {
			if line == "" {
				continue
			}
			line = strings.TrimSuffix(line, "\n")
			switch d.Type {
			case diffpatch.DiffDelete:
				del.Fprintf(w, "-%s\n", line)
			case diffpatch.DiffInsert:
				ins.Fprintf(w, "+%s\n", line)
			default:
				fmt.Fprintf(w, " %s\n", line)
			}
		}
	}
}
