package commands

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/fmgen/internal/errors"
)

const siteConfigYAML = `site:
  site_name: notes
  site_title: Notes
build:
  workers: 2
`

func TestBuildCommand(t *testing.T) {
	setupWorkdir(t)
	writeFile(t, "fmgen.yaml", siteConfigYAML)
	writeFile(t, "templates/default.html", "<h1>{{.title}}</h1><p>{{.site.SiteTitle}}</p>{{.content}}")
	writeFile(t, "content/index.md", "---\ntitle: Home\n---\nHi\n")

	stdout, _, err := runCommand(t, "build")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Built 1 page(s) into public")

	data, err := os.ReadFile("public/index.html")
	require.NoError(t, err)
	assert.Contains(t, string(data), "<h1>Home</h1><p>Notes</p><p>Hi</p>")
}

func TestBuildCommand_FlagsOverrideConfig(t *testing.T) {
	setupWorkdir(t)
	writeFile(t, "fmgen.yaml", siteConfigYAML)
	writeFile(t, "layouts/default.html", "{{.content}}")
	writeFile(t, "docs/a.md", "A\n")

	_, _, err := runCommand(t, "build", "--content-dir", "docs", "--template-dir", "layouts", "--output-dir", "dist")
	require.NoError(t, err)
	assert.FileExists(t, "dist/a.html")
}

func TestBuildCommand_Errors(t *testing.T) {
	t.Run("missing site name", func(t *testing.T) {
		setupWorkdir(t)
		_, _, err := runCommand(t, "build")
		require.Error(t, err)
		assert.Equal(t, errors.ExitUser, errors.ExitCode(err))
		assert.Contains(t, err.Error(), "site_name")
	})

	t.Run("missing template", func(t *testing.T) {
		setupWorkdir(t)
		writeFile(t, "fmgen.yaml", siteConfigYAML)
		writeFile(t, "templates/default.html", "{{.content}}")
		writeFile(t, "content/a.md", "---\ntemplate: post\n---\n")

		_, _, err := runCommand(t, "build")
		require.Error(t, err)
		assert.Equal(t, errors.ExitUser, errors.ExitCode(err))
		assert.Contains(t, errors.Suggestion(err), "templates")
	})

	t.Run("missing content dir", func(t *testing.T) {
		setupWorkdir(t)
		writeFile(t, "fmgen.yaml", siteConfigYAML)
		writeFile(t, "templates/default.html", "{{.content}}")

		_, _, err := runCommand(t, "build")
		require.Error(t, err)
		assert.Equal(t, errors.ExitSystem, errors.ExitCode(err))
	})
}
