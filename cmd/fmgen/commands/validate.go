package commands

import (
	"github.com/spf13/cobra"

	"github.com/thoreinstein/fmgen/internal/errors"
	"github.com/thoreinstein/fmgen/internal/validator"
	"github.com/thoreinstein/fmgen/pkg/frontmatter"
)

var (
	validateRequired   []string
	validateSchema     string
	validateRules      []string
	validateJSON       bool
	validateCheckInput bool
)

func init() {
	validateCmd.Flags().StringSliceVar(&validateRequired, "required", nil,
		"keys every document must define (default from validate.required_fields)")
	validateCmd.Flags().StringVar(&validateSchema, "schema", "",
		"JSON Schema (draft 2020-12) file the frontmatter must satisfy")
	validateCmd.Flags().StringArrayVar(&validateRules, "rule", nil,
		"expression that must be true, e.g. 'len(tags) > 0' (repeatable)")
	validateCmd.Flags().BoolVar(&validateJSON, "json", false,
		"output the report as JSON")
	validateCmd.Flags().BoolVar(&validateCheckInput, "check-input", false,
		"reject documents containing path traversal outside code fences")

	rootCmd.AddCommand(validateCmd)
}

var validateCmd = &cobra.Command{
	Use:   "validate <input>...",
	Short: "Check frontmatter against required keys, a schema and rules",
	Long: `Validate the frontmatter of one or more documents.

Each document must parse and define every required key. When a schema is
given the frontmatter must satisfy it. Each --rule is an expression over the
frontmatter keys that must evaluate to true; unknown keys are nil.

Flags replace the matching validate.* settings from fmgen.yaml.`,
	Example: `  fmgen validate post.md --required title,date
  fmgen validate content/*.md --schema post.schema.json
  fmgen validate post.md --rule 'draft == false || date != nil' --json`,
	Args: cobra.MinimumNArgs(1),
	RunE: runValidate,
}

func runValidate(cmd *cobra.Command, args []string) error {
	checker, err := newChecker(cmd)
	if err != nil {
		return err
	}

	result := &validator.Result{}
	for _, path := range args {
		var fileResult *validator.Result
		fm, _, err := extract(cmd, path, validateCheckInput)
		if err != nil {
			fileResult = &validator.Result{}
			fileResult.AddError("", extractFailure(err), nil)
		} else {
			fileResult = checker.Check(fm)
		}
		result.Merge(fileResult, "file", path)
	}

	format := validator.FormatText
	if validateJSON {
		format = validator.FormatJSON
	}
	if !quiet || validateJSON || result.HasErrors() {
		if err := validator.NewReporter(cmd.OutOrStdout(), format).Report(result); err != nil {
			return errors.NewSystemError(err, "")
		}
	}

	if result.HasErrors() {
		return errors.NewUserError(
			errors.Wrapf(errors.ErrValidationFailed, "%d error(s)", len(result.Errors())),
			"",
		)
	}
	return nil
}

// newChecker combines flags with the validate section of the config.
func newChecker(cmd *cobra.Command) (*validator.Checker, error) {
	required := appConfig.Validate.RequiredFields
	if cmd.Flags().Changed("required") {
		required = validateRequired
	}
	rules := appConfig.Validate.Rules
	if cmd.Flags().Changed("rule") {
		rules = validateRules
	}
	schema := appConfig.Validate.Schema
	if validateSchema != "" {
		schema = validateSchema
	}

	opts := []validator.Option{
		validator.WithRequired(required...),
		validator.WithRules(rules...),
	}
	if schema != "" {
		if err := checkPath(schema); err != nil {
			return nil, err
		}
		opts = append(opts, validator.WithSchemaFile(schema))
	}

	checker, err := validator.New(opts...)
	if err != nil {
		return nil, errors.NewUserError(err, "Fix the schema or rule expression")
	}
	return checker, nil
}

// extractFailure renders an extraction error as a single report line.
func extractFailure(err error) string {
	var fmErr *frontmatter.Error
	if errors.As(err, &fmErr) {
		return fmErr.Error()
	}
	return err.Error()
}
