package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/fmgen/internal/errors"
	"github.com/thoreinstein/fmgen/pkg/frontmatter"
)

var (
	extractFormat     string
	extractOutput     string
	extractBody       bool
	extractCheckInput bool
	extractSets       []string
)

func init() {
	extractCmd.Flags().StringVarP(&extractFormat, "format", "f", "",
		"output format: yaml, toml, json (default from extract.default_format)")
	extractCmd.Flags().StringVarP(&extractOutput, "output", "o", "",
		"write to this file instead of stdout")
	extractCmd.Flags().BoolVar(&extractBody, "body", false,
		"write the whole document: converted frontmatter followed by the body")
	extractCmd.Flags().BoolVar(&extractCheckInput, "check-input", false,
		"reject documents containing path traversal outside code fences")
	extractCmd.Flags().StringArrayVar(&extractSets, "set", nil,
		"override a top-level key, e.g. --set draft=false (repeatable)")

	rootCmd.AddCommand(extractCmd)
}

var extractCmd = &cobra.Command{
	Use:   "extract <input>",
	Short: "Print a document's frontmatter, optionally converted",
	Long: `Extract the frontmatter block from a Markdown document and print it in
the requested format. Use "-" to read from stdin.

With --body the whole document is rewritten: the converted block, a blank
line, then the original body. This converts a post between YAML, TOML and
JSON frontmatter.`,
	Example: `  # Show frontmatter as JSON
  fmgen extract post.md -f json

  # Convert a post to TOML frontmatter in place
  fmgen extract post.md -f toml --body -o post.md

  # Override keys on the way through
  fmgen extract post.md --set draft=false --set weight=10`,
	Args: cobra.ExactArgs(1),
	RunE: runExtract,
}

func runExtract(cmd *cobra.Command, args []string) error {
	format, err := outputFormat(extractFormat)
	if err != nil {
		return err
	}

	fm, body, err := extract(cmd, args[0], extractCheckInput)
	if err != nil {
		return err
	}
	if err := applySets(fm, extractSets); err != nil {
		return err
	}

	var out string
	if extractBody {
		out, err = frontmatter.Compose(fm, format, body)
	} else {
		out, err = frontmatter.Emit(fm, format)
		if !strings.HasSuffix(out, "\n") {
			out += "\n"
		}
	}
	if err != nil {
		return errors.NewUserError(
			errors.Wrapf(err, "converting to %s", format),
			"Some values, such as nulls inside TOML arrays, have no equivalent in the target format",
		)
	}

	if err := writeOutput(cmd, extractOutput, out); err != nil {
		return err
	}
	if extractOutput != "" && !quiet {
		fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %s frontmatter to %s\n", format, extractOutput)
	}
	return nil
}
