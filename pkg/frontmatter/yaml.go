package frontmatter

import (
	"log/slog"
	"regexp"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// yamlNodeBudget caps how many nodes alias expansion may produce.
const yamlNodeBudget = 1 << 20

var yamlLineRe = regexp.MustCompile(`line (\d+)`)

type yamlDecoder struct {
	logger *slog.Logger
	// expanding holds alias targets currently being expanded.
	expanding map[*yaml.Node]bool
	budget    int
}

func parseYAML(raw string, logger *slog.Logger) (Frontmatter, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal([]byte(raw), &doc); err != nil {
		return nil, parseError(FormatYAML, yamlErrorLine(err), err)
	}

	root := &doc
	if root.Kind == yaml.DocumentNode {
		if len(root.Content) == 0 {
			return New(), nil
		}
		root = root.Content[0]
	}
	if root.Kind == 0 {
		return New(), nil
	}

	d := &yamlDecoder{
		logger:    logger,
		expanding: make(map[*yaml.Node]bool),
		budget:    yamlNodeBudget,
	}

	v, err := d.value(root)
	if err != nil {
		return nil, err
	}
	switch v.Kind() {
	case KindObject:
		fm, _ := v.AsObject()
		return fm, nil
	case KindNull:
		return New(), nil
	default:
		e := newError(ErrInvalidFormat, FormatYAML, "top level must be a mapping, got "+v.Kind().String())
		e.Line = root.Line
		return nil, e
	}
}

func (d *yamlDecoder) value(n *yaml.Node) (Value, error) {
	d.budget--
	if d.budget < 0 {
		e := newError(ErrParse, FormatYAML, "alias expansion exceeds node budget")
		e.Line = n.Line
		return Value{}, e
	}

	if n.Kind == yaml.AliasNode {
		return d.alias(n)
	}

	if n.Style&yaml.TaggedStyle != 0 && !strings.HasPrefix(n.Tag, "!!") {
		plain := *n
		plain.Tag = ""
		plain.Style &^= yaml.TaggedStyle
		inner, err := d.value(&plain)
		if err != nil {
			return Value{}, err
		}
		return Tagged(n.Tag, inner), nil
	}

	switch n.Kind {
	case yaml.MappingNode:
		fm, err := d.mapping(n)
		if err != nil {
			return Value{}, err
		}
		return Object(fm), nil
	case yaml.SequenceNode:
		items := make([]Value, 0, len(n.Content))
		for _, c := range n.Content {
			item, err := d.value(c)
			if err != nil {
				return Value{}, err
			}
			items = append(items, item)
		}
		return Array(items...), nil
	case yaml.ScalarNode:
		return d.scalar(n)
	default:
		e := newError(ErrInvalidFormat, FormatYAML, "unexpected node kind")
		e.Line = n.Line
		return Value{}, e
	}
}

func (d *yamlDecoder) alias(n *yaml.Node) (Value, error) {
	target := n.Alias
	if target == nil {
		e := newError(ErrInvalidFormat, FormatYAML, "unknown anchor "+strconv.Quote(n.Value))
		e.Line = n.Line
		return Value{}, e
	}
	if d.expanding[target] {
		e := newError(ErrInvalidFormat, FormatYAML, "anchor "+strconv.Quote(target.Anchor)+" refers to itself")
		e.Line = n.Line
		return Value{}, e
	}
	d.expanding[target] = true
	defer delete(d.expanding, target)
	return d.value(target)
}

func (d *yamlDecoder) scalar(n *yaml.Node) (Value, error) {
	switch n.ShortTag() {
	case "!!null":
		return Null(), nil
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return Value{}, parseError(FormatYAML, n.Line, err)
		}
		return Bool(b), nil
	case "!!int", "!!float":
		var f float64
		if err := n.Decode(&f); err != nil {
			return Value{}, parseError(FormatYAML, n.Line, err)
		}
		return Number(f), nil
	default:
		// !!str, !!timestamp and !!binary keep their source text.
		return String(ownString(n.Value)), nil
	}
}

func (d *yamlDecoder) mapping(n *yaml.Node) (Frontmatter, error) {
	fm := make(Frontmatter, len(n.Content)/2)
	var merged Frontmatter

	for i := 0; i+1 < len(n.Content); i += 2 {
		k, v := n.Content[i], n.Content[i+1]

		if k.Kind == yaml.ScalarNode && k.ShortTag() == "!!merge" {
			src, err := d.mergeSource(v)
			if err != nil {
				return nil, err
			}
			if merged == nil {
				merged = New()
			}
			for key, val := range src {
				if !merged.Has(key) {
					merged[key] = val
				}
			}
			continue
		}

		key, ok := yamlKey(k)
		if !ok {
			d.logger.Warn("skipping non-string frontmatter key",
				"key", k.Value, "tag", k.ShortTag(), "line", k.Line)
			continue
		}
		val, err := d.value(v)
		if err != nil {
			return nil, err
		}
		fm[key] = val
	}

	// Explicit keys win over merged ones regardless of position.
	for key, val := range merged {
		if !fm.Has(key) {
			fm[key] = val
		}
	}
	return fm, nil
}

// mergeSource resolves the value of a "<<" key. Earlier mappings in a merge
// sequence take precedence over later ones.
func (d *yamlDecoder) mergeSource(n *yaml.Node) (Frontmatter, error) {
	v, err := d.value(n)
	if err != nil {
		return nil, err
	}
	if fm, ok := v.AsObject(); ok {
		return fm, nil
	}
	items, ok := v.AsArray()
	if !ok {
		e := newError(ErrInvalidFormat, FormatYAML, "merge value must be a mapping or a sequence of mappings")
		e.Line = n.Line
		return nil, e
	}
	out := New()
	for _, item := range items {
		fm, ok := item.AsObject()
		if !ok {
			e := newError(ErrInvalidFormat, FormatYAML, "merge sequence must contain only mappings")
			e.Line = n.Line
			return nil, e
		}
		for key, val := range fm {
			if !out.Has(key) {
				out[key] = val
			}
		}
	}
	return out, nil
}

func yamlKey(k *yaml.Node) (string, bool) {
	if k.Kind == yaml.AliasNode && k.Alias != nil {
		k = k.Alias
	}
	if k.Kind != yaml.ScalarNode || k.ShortTag() != "!!str" {
		return "", false
	}
	return ownString(k.Value), true
}

func yamlErrorLine(err error) int {
	m := yamlLineRe.FindStringSubmatch(err.Error())
	if m == nil {
		return 0
	}
	line, _ := strconv.Atoi(m[1])
	return line
}
