package validator

import (
	"bytes"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/thoreinstein/fmgen/pkg/frontmatter"
)

// ErrInvalidRule indicates a rule expression failed to compile.
var ErrInvalidRule = errors.New("invalid rule")

// ErrInvalidSchema indicates a JSON Schema failed to load or compile.
var ErrInvalidSchema = errors.New("invalid schema")

// Checker validates frontmatter against required keys, an optional JSON
// Schema and boolean rule expressions. A Checker is safe for concurrent use
// once built.
type Checker struct {
	required []string
	schema   *jsonschema.Schema
	rules    []rule
}

type rule struct {
	source  string
	program *vm.Program
}

// Option configures a Checker.
type Option func(*Checker) error

// WithRequired requires every named key to be present.
func WithRequired(keys ...string) Option {
	return func(c *Checker) error {
		for _, k := range keys {
			if k = strings.TrimSpace(k); k != "" {
				c.required = append(c.required, k)
			}
		}
		return nil
	}
}

// WithSchema compiles a Draft 2020-12 JSON Schema read from r.
func WithSchema(r io.Reader) Option {
	return func(c *Checker) error {
		compiler := jsonschema.NewCompiler()
		compiler.Draft = jsonschema.Draft2020
		if err := compiler.AddResource("schema.json", r); err != nil {
			return errors.Mark(errors.Wrap(err, "loading schema"), ErrInvalidSchema)
		}
		schema, err := compiler.Compile("schema.json")
		if err != nil {
			return errors.Mark(errors.Wrap(err, "compiling schema"), ErrInvalidSchema)
		}
		c.schema = schema
		return nil
	}
}

// WithSchemaFile is WithSchema for a file on disk.
func WithSchemaFile(path string) Option {
	return func(c *Checker) error {
		data, err := os.ReadFile(path)
		if err != nil {
			return errors.Wrapf(err, "reading schema %s", path)
		}
		return WithSchema(bytes.NewReader(data))(c)
	}
}

// WithRules compiles expressions that must evaluate to true, with the
// frontmatter keys as variables, e.g. `draft == false || date != nil`.
// Unknown keys evaluate to nil.
func WithRules(sources ...string) Option {
	return func(c *Checker) error {
		for _, src := range sources {
			if strings.TrimSpace(src) == "" {
				continue
			}
			program, err := expr.Compile(src,
				expr.Env(map[string]any{}),
				expr.AllowUndefinedVariables(),
			)
			if err != nil {
				return errors.Mark(errors.Wrapf(err, "compiling rule %q", src), ErrInvalidRule)
			}
			c.rules = append(c.rules, rule{source: src, program: program})
		}
		return nil
	}
}

// New builds a Checker from opts.
func New(opts ...Option) (*Checker, error) {
	c := &Checker{}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Check validates fm and returns every finding. It never returns nil.
func (c *Checker) Check(fm frontmatter.Frontmatter) *Result {
	result := &Result{}

	for _, key := range c.required {
		v, ok := fm.Get(key)
		switch {
		case !ok:
			result.AddError(key, "is required", nil)
		case v.IsNull():
			result.AddWarning(key, "is present but null", nil)
		}
	}

	if c.schema == nil && len(c.rules) == 0 {
		return result
	}
	doc := fm.Interface()

	if c.schema != nil {
		if err := c.schema.Validate(doc); err != nil {
			c.addSchemaIssues(result, err)
		}
	}

	for _, r := range c.rules {
		out, err := expr.Run(r.program, doc)
		if err != nil {
			result.add(SeverityError, "", "rule could not be evaluated: "+err.Error(), nil).Context = map[string]string{"rule": r.source}
			continue
		}
		pass, isBool := out.(bool)
		switch {
		case !isBool:
			result.add(SeverityError, "", "rule did not evaluate to a boolean", out).Context = map[string]string{"rule": r.source}
		case !pass:
			result.add(SeverityError, "", "rule failed", nil).Context = map[string]string{"rule": r.source}
		}
	}

	return result
}

func (c *Checker) addSchemaIssues(result *Result, err error) {
	var verr *jsonschema.ValidationError
	if !errors.As(err, &verr) {
		result.AddError("", "schema validation failed: "+err.Error(), nil)
		return
	}

	var walk func(*jsonschema.ValidationError)
	walk = func(node *jsonschema.ValidationError) {
		if len(node.Causes) == 0 {
			issue := result.add(SeverityError, pointerToField(node.InstanceLocation), strings.TrimSpace(node.Message), nil)
			issue.Context = map[string]string{"schema": node.KeywordLocation}
			return
		}
		for _, cause := range node.Causes {
			walk(cause)
		}
	}
	walk(verr)
}

// pointerToField turns a JSON pointer such as "/authors/0/name" into the
// dotted form used elsewhere, "authors[0].name".
func pointerToField(ptr string) string {
	if ptr == "" || ptr == "/" {
		return ""
	}
	var sb strings.Builder
	for _, tok := range strings.Split(strings.TrimPrefix(ptr, "/"), "/") {
		tok = strings.NewReplacer("~1", "/", "~0", "~").Replace(tok)
		if _, err := strconv.Atoi(tok); err == nil && sb.Len() > 0 {
			sb.WriteString("[" + tok + "]")
			continue
		}
		if sb.Len() > 0 {
			sb.WriteByte('.')
		}
		sb.WriteString(tok)
	}
	return sb.String()
}
