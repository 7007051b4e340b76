package frontmatter

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

// PathTraversalPattern matches ".." used as a path segment, as in "../x",
// "a/../b" or a bare "..", but not an ellipsis inside prose.
var PathTraversalPattern = regexp.MustCompile(`(?:^|[\s"'(\[=/\\])\.\.(?:[/\\"')\]\s]|$)`)

// DefaultRejectPatterns are the patterns ValidateInput applies when called
// without any.
var DefaultRejectPatterns = []*regexp.Regexp{PathTraversalPattern}

const codeFence = "```"

// ValidateInput rejects content in which any pattern matches a line outside
// fenced code regions. A line whose first non-blank characters are three
// backticks opens a region and the next such line closes it.
func ValidateInput(content string, patterns ...*regexp.Regexp) error {
	if len(patterns) == 0 {
		patterns = DefaultRejectPatterns
	}

	inFence := false
	lineNo := 0
	for rest := content; rest != ""; {
		var line string
		line, rest, _ = strings.Cut(rest, "\n")
		lineNo++

		if strings.HasPrefix(strings.TrimLeftFunc(line, unicode.IsSpace), codeFence) {
			inFence = !inFence
			continue
		}
		if inFence {
			continue
		}

		line = strings.TrimSuffix(line, "\r")
		for _, p := range patterns {
			if loc := p.FindStringIndex(line); loc != nil {
				m := strings.TrimSpace(line[loc[0]:loc[1]])
				e := newError(ErrExtraction, FormatUnsupported,
					"rejected pattern "+strconv.Quote(m)+" outside fenced code")
				e.Line = lineNo
				return e
			}
		}
	}
	return nil
}
