// Package validator checks extracted frontmatter against document rules and
// reports the findings.
//
// A [Checker] combines three kinds of checks:
//
//   - required keys ([WithRequired]);
//   - a JSON Schema, Draft 2020-12 ([WithSchema], [WithSchemaFile]);
//   - boolean expr-lang rules over the frontmatter keys ([WithRules]).
//
// Findings are [Issue] values collected in a [Result] and rendered by a
// [Reporter] as colored text or JSON.
//
//	c, err := validator.New(
//		validator.WithRequired("title", "date"),
//		validator.WithRules(`len(tags) > 0`),
//	)
//	if err != nil {
//		return err
//	}
//	result := c.Check(fm)
//	if result.HasErrors() {
//		validator.NewReporter(os.Stderr, validator.FormatText).Report(result)
//	}
package validator
