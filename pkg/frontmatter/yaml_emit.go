package frontmatter

import (
	"bytes"
	"math"
	"strconv"
	"strings"

	goyaml "go.yaml.in/yaml/v3"
)

// emitYAML writes block sequences flush with their parent key ("tags:\n- a").
func emitYAML(fm Frontmatter) (string, error) {
	var buf bytes.Buffer
	enc := goyaml.NewEncoder(&buf)
	enc.SetIndent(2)
	enc.CompactSeqIndent()
	if err := enc.Encode(yamlMapping(fm)); err != nil {
		return "", &Error{Kind: ErrConversion, Format: FormatYAML, Msg: "encoding YAML", Err: err}
	}
	if err := enc.Close(); err != nil {
		return "", &Error{Kind: ErrConversion, Format: FormatYAML, Msg: "encoding YAML", Err: err}
	}
	return buf.String(), nil
}

func yamlMapping(fm Frontmatter) *goyaml.Node {
	n := &goyaml.Node{Kind: goyaml.MappingNode, Tag: "!!map"}
	for _, k := range fm.Keys() {
		n.Content = append(n.Content,
			&goyaml.Node{Kind: goyaml.ScalarNode, Tag: "!!str", Value: k},
			yamlNode(fm[k]),
		)
	}
	return n
}

// yamlNode builds the node for v. Strings carry an explicit !!str tag so the
// encoder quotes text that would otherwise read back as another type; other
// scalars are left untagged and resolve implicitly.
func yamlNode(v Value) *goyaml.Node {
	switch v.kind {
	case KindString:
		return &goyaml.Node{Kind: goyaml.ScalarNode, Tag: "!!str", Value: v.str}
	case KindNumber:
		return &goyaml.Node{Kind: goyaml.ScalarNode, Value: yamlNumber(v.num)}
	case KindBool:
		return &goyaml.Node{Kind: goyaml.ScalarNode, Value: strconv.FormatBool(v.b)}
	case KindArray:
		n := &goyaml.Node{Kind: goyaml.SequenceNode, Tag: "!!seq"}
		for _, item := range v.arr {
			n.Content = append(n.Content, yamlNode(item))
		}
		return n
	case KindObject:
		return yamlMapping(v.obj)
	case KindTagged:
		n := yamlNode(*v.elem)
		n.Tag = v.str
		if !strings.HasPrefix(n.Tag, "!") {
			n.Tag = "!" + n.Tag
		}
		n.Style |= goyaml.TaggedStyle
		if v.elem.kind == KindString {
			// Without the implicit !!str, only quoting keeps "42" a string.
			n.Style |= goyaml.DoubleQuotedStyle
		}
		return n
	default:
		return &goyaml.Node{Kind: goyaml.ScalarNode, Value: "null"}
	}
}

func yamlNumber(n float64) string {
	switch {
	case math.IsNaN(n):
		return ".nan"
	case math.IsInf(n, 1):
		return ".inf"
	case math.IsInf(n, -1):
		return "-.inf"
	default:
		return formatNumber(n)
	}
}
