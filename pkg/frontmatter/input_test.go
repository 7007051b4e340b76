package frontmatter

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateInput(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		wantLine int
	}{
		{
			name:    "traversal inside fence",
			content: "---\ntitle: x\n---\n\n```sh\ncat ../secret\n```\n",
		},
		{
			name:    "indented fence",
			content: "text\n  ```\n  ../up\n  ```\nmore\n",
		},
		{
			name:    "ellipsis in prose",
			content: "Wait for it.. and then...\n",
		},
		{
			name:     "traversal outside fence",
			content:  "---\ntitle: x\n---\n\nsee ../secret\n",
			wantLine: 5,
		},
		{
			name:     "traversal after fence closes",
			content:  "```\nok ../a\n```\nlink: [x](../b)\n",
			wantLine: 4,
		},
		{
			name:     "traversal in frontmatter value",
			content:  "---\npath: \"../etc/passwd\"\n---\n",
			wantLine: 2,
		},
		{
			name:     "bare dot dot",
			content:  "..\n",
			wantLine: 1,
		},
		{
			name:     "windows separators",
			content:  "dir: a\\..\\b\r\n",
			wantLine: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateInput(tt.content)
			if tt.wantLine == 0 {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, ErrExtraction)
			var fmErr *Error
			require.ErrorAs(t, err, &fmErr)
			assert.Equal(t, tt.wantLine, fmErr.Line)
		})
	}
}

func TestValidateInput_CustomPatterns(t *testing.T) {
	secret := regexp.MustCompile(`(?i)api[_-]?key`)

	require.NoError(t, ValidateInput("../ is fine here", secret))

	err := ValidateInput("title: x\napiKey: 123\n", secret)
	require.ErrorIs(t, err, ErrExtraction)
	assert.Contains(t, err.Error(), `"apiKey"`)
}

func TestExtract_CheckInput(t *testing.T) {
	fenced := "---\ntitle: x\n---\n\n```\n../x\n```\n"
	fm, body, err := ExtractWithOptions(fenced, Options{CheckInput: true})
	require.NoError(t, err)
	assert.True(t, fm["title"].Equal(String("x")))
	assert.Contains(t, body, "../x")

	open := "---\ntitle: x\n---\n\n../x\n"
	_, _, err = ExtractWithOptions(open, Options{CheckInput: true})
	require.ErrorIs(t, err, ErrExtraction)

	// Input checks are opt-in.
	_, _, err = Extract(open)
	require.NoError(t, err)
}
