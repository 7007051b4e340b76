package commands

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/fmgen/internal/errors"
	"github.com/thoreinstein/fmgen/internal/validator"
)

const fullPost = "---\ntitle: Hello\ndate: 2024-01-02\nauthor: Ada\ntags: [go]\ndraft: false\n---\nBody\n"

func TestValidateCommand_Passes(t *testing.T) {
	setupWorkdir(t)
	writeFile(t, "post.md", fullPost)

	stdout, _, err := runCommand(t, "validate", "post.md")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Validation passed")
}

func TestValidateCommand_NoRequiredKeys(t *testing.T) {
	setupWorkdir(t)
	writeFile(t, "post.md", "---\ntitle: Hello\ndate: 2024-01-02\n---\nBody\n")

	stdout, _, err := runCommand(t, "validate", "post.md")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Validation passed")
}

func TestValidateCommand_RequiredFromConfig(t *testing.T) {
	setupWorkdir(t)
	writeFile(t, "fmgen.yaml", "validate:\n  required_fields: [title, date, author]\n")
	writeFile(t, "post.md", "---\ntitle: Hello\n---\n")

	stdout, _, err := runCommand(t, "validate", "post.md")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrValidationFailed))
	assert.Equal(t, errors.ExitUser, errors.ExitCode(err))
	assert.Contains(t, stdout, "2 error(s)")
	assert.Contains(t, stdout, "date: is required (file=post.md)")

	// The flag replaces the configured list.
	_, _, err = runCommand(t, "validate", "post.md", "--required", "title")
	require.NoError(t, err)
}

func TestValidateCommand_SchemaAndRules(t *testing.T) {
	setupWorkdir(t)
	writeFile(t, "post.md", fullPost)
	writeFile(t, "post.schema.json", `{"properties": {"tags": {"type": "array", "minItems": 2}}}`)

	stdout, _, err := runCommand(t, "validate", "post.md",
		"--schema", "post.schema.json",
		"--rule", "draft == false",
		"--rule", `title == "Goodbye"`,
		"--json")
	require.Error(t, err)

	var result validator.Result
	require.NoError(t, json.Unmarshal([]byte(stdout), &result))
	require.Len(t, result.Issues, 2)

	assert.Equal(t, "tags", result.Issues[0].Field)
	assert.Equal(t, `title == "Goodbye"`, result.Issues[1].Context["rule"])
	for _, issue := range result.Issues {
		assert.Equal(t, "post.md", issue.Context["file"])
	}
}

func TestValidateCommand_MultipleFiles(t *testing.T) {
	setupWorkdir(t)
	writeFile(t, "a.md", fullPost)
	writeFile(t, "b.md", "no frontmatter\n")

	stdout, _, err := runCommand(t, "validate", "a.md", "b.md", "--json")
	require.Error(t, err)

	var result validator.Result
	require.NoError(t, json.Unmarshal([]byte(stdout), &result))
	require.Len(t, result.Issues, 1)
	assert.Equal(t, "b.md", result.Issues[0].Context["file"])
	assert.Contains(t, result.Issues[0].Message, "no frontmatter")
}

func TestValidateCommand_BadRule(t *testing.T) {
	setupWorkdir(t)
	writeFile(t, "post.md", fullPost)

	_, _, err := runCommand(t, "validate", "post.md", "--rule", "title ==")
	require.Error(t, err)
	assert.Equal(t, errors.ExitUser, errors.ExitCode(err))
	assert.True(t, errors.Is(err, validator.ErrInvalidRule))
}

func TestValidateCommand_Quiet(t *testing.T) {
	setupWorkdir(t)
	writeFile(t, "post.md", fullPost)

	stdout, _, err := runCommand(t, "-q", "validate", "post.md")
	require.NoError(t, err)
	assert.Empty(t, stdout)
}
