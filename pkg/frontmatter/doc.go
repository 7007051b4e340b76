// Package frontmatter extracts, parses, converts and validates the metadata
// block at the start of a Markdown document.
//
// Three block shapes are recognized, probed in this order:
//
//	---            +++            {
//	title: Hello   title = "X"      "title": "Y"
//	---            +++            }
//	Body           Body           Body
//
// YAML and TOML blocks are delimited by lines holding only "---" or "+++".
// A JSON block is the shortest brace-balanced object at the start of the
// document, with braces inside strings ignored and nesting limited to
// [MaxBraceDepth].
//
// Every format parses into the same model: a [Frontmatter] mapping keys to
// [Value]s, where a Value is null, a string, a float64 number, a bool, an
// array, a nested object or a tagged value (YAML application tags only).
//
// # Basic Usage
//
//	fm, body, err := frontmatter.Extract(doc)
//	if err != nil {
//		return err
//	}
//	title, _ := fm["title"].AsString()
//
//	out, err := frontmatter.Emit(fm, frontmatter.FormatTOML)
//
// # Validation
//
// Parsed frontmatter is checked against [Options.MaxDepth] (default 32) and
// [Options.MaxKeys] (default 1000) unless [Options.SkipValidation] is set.
// [ValidateInput] optionally rejects documents containing path traversal
// segments outside fenced code blocks.
//
// # Error Handling
//
// Failures are [*Error] values whose kind can be checked with [errors.Is]:
//
//	if errors.Is(err, frontmatter.ErrNoFrontmatter) {
//		// plain document
//	}
//
// The underlying library error, when there is one, is also reachable through
// errors.Is and errors.As, and [Error.Line] carries the line number when
// the library reports it.
package frontmatter
