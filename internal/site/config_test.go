package site

import (
	"errors"
	"testing"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig(t *testing.T) {
	cfg := NewConfig("notes")

	assert.NotEqual(t, uuid.Nil, cfg.ID)
	assert.Equal(t, DefaultSiteTitle, cfg.SiteTitle)
	assert.Equal(t, "en-GB", cfg.Language)
	assert.Equal(t, "public", cfg.OutputDir)
	require.NoError(t, cfg.Validate())
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*Config)
		wantField string
	}{
		{"missing name", func(c *Config) { c.SiteName = "" }, "site_name"},
		{"nil id", func(c *Config) { c.ID = uuid.Nil }, "id"},
		{"lowercase region", func(c *Config) { c.Language = "en-gb" }, "language"},
		{"bare language", func(c *Config) { c.Language = "en" }, "language"},
		{"relative base url", func(c *Config) { c.BaseURL = "/blog" }, "base_url"},
		{"ftp base url", func(c *Config) { c.BaseURL = "ftp://example.com" }, "base_url"},
		{"traversal", func(c *Config) { c.ContentDir = "../content" }, "content_dir"},
		{"reserved name", func(c *Config) { c.OutputDir = "NUL" }, "output_dir"},
		{"empty template dir", func(c *Config) { c.TemplateDir = "" }, "template_dir"},
		{"bad serve dir", func(c *Config) { c.ServeDir = `a\b` }, "serve_dir"},
		{"zero workers", func(c *Config) { c.Workers = 0 }, "workers"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewConfig("notes")
			tt.mutate(&cfg)

			err := cfg.Validate()
			require.Error(t, err)

			var errs validation.Errors
			require.True(t, errors.As(err, &errs), "got %T", err)
			assert.Contains(t, errs, tt.wantField)
			assert.Len(t, errs, 1)
		})
	}
}

func TestConfig_ValidateAcceptsHTTPS(t *testing.T) {
	cfg := NewConfig("notes")
	cfg.BaseURL = "https://example.com/blog/"
	cfg.ServeDir = "serve"
	assert.NoError(t, cfg.Validate())
}
