package commands

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/ktr0731/go-fuzzyfinder"
	"github.com/spf13/cobra"

	"github.com/thoreinstein/fmgen/internal/errors"
	"github.com/thoreinstein/fmgen/pkg/frontmatter"
)

const maxListValueWidth = 60

var keysInteractive bool

func init() {
	keysCmd.Flags().BoolVarP(&keysInteractive, "interactive", "i", false,
		"pick a key with a fuzzy finder and print its value")

	rootCmd.AddCommand(keysCmd)
}

var keysCmd = &cobra.Command{
	Use:   "keys <input>",
	Short: "List the frontmatter keys of a document",
	Long: `List the top-level frontmatter keys of a document in sorted order with
their kind and value. With -i a fuzzy finder opens instead; the selected
key and its full value are printed.`,
	Example: `  fmgen keys post.md
  fmgen keys post.md -i`,
	Args: cobra.ExactArgs(1),
	RunE: runKeys,
}

func runKeys(cmd *cobra.Command, args []string) error {
	fm, _, err := extract(cmd, args[0], false)
	if err != nil {
		return err
	}

	if keysInteractive {
		return pickKey(cmd.OutOrStdout(), fm)
	}
	return listKeys(cmd.OutOrStdout(), fm)
}

// listKeys writes a KEY/KIND/VALUE table.
func listKeys(w io.Writer, fm frontmatter.Frontmatter) error {
	if fm.IsEmpty() {
		fmt.Fprintln(w, "(no keys)")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "KEY\tKIND\tVALUE")
	for _, key := range fm.Keys() {
		v := fm[key]
		fmt.Fprintf(tw, "%s\t%s\t%s\n", key, v.Kind(), truncate(v.String(), maxListValueWidth))
	}
	return errors.Wrap(tw.Flush(), "writing key table")
}

func pickKey(w io.Writer, fm frontmatter.Frontmatter) error {
	keys := fm.Keys()
	if len(keys) == 0 {
		fmt.Fprintln(w, "(no keys)")
		return nil
	}

	idx, err := fuzzyfinder.Find(
		keys,
		func(i int) string { return keys[i] },
		fuzzyfinder.WithPreviewWindow(func(i, _, _ int) string {
			if i == -1 {
				return ""
			}
			v := fm[keys[i]]
			return fmt.Sprintf("Key:  %s\nKind: %s\n\n%s", keys[i], v.Kind(), v)
		}),
	)
	if err != nil {
		if errors.Is(err, fuzzyfinder.ErrAbort) {
			return nil
		}
		return errors.Wrap(err, "interactive key picker failed")
	}

	fmt.Fprintf(w, "%s = %s\n", keys[idx], fm[keys[idx]])
	return nil
}

// truncate shortens s to maxLen runes, adding "..." if truncated.
func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}
