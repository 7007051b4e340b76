// Package config provides configuration management for fmgen using Viper.
package config

import (
	"io/fs"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/viper"

	"github.com/thoreinstein/fmgen/internal/paths"
)

// FileName is the config file base name, without extension.
const FileName = "fmgen"

// EnvPrefix prefixes environment variable overrides, e.g. FMGEN_BUILD_WORKERS.
const EnvPrefix = "FMGEN"

// Config represents the top-level configuration structure.
type Config struct {
	Version  int            `mapstructure:"version" yaml:"version"`
	Extract  ExtractConfig  `mapstructure:"extract" yaml:"extract"`
	Validate ValidateConfig `mapstructure:"validate" yaml:"validate"`
	Build    BuildConfig    `mapstructure:"build" yaml:"build"`
	Site     SiteConfig     `mapstructure:"site" yaml:"site"`
}

// ExtractConfig holds defaults for the extract command.
type ExtractConfig struct {
	DefaultFormat string `mapstructure:"default_format" yaml:"default_format"`
	CheckInput    bool   `mapstructure:"check_input" yaml:"check_input"`
}

// ValidateConfig holds defaults for the validate command.
type ValidateConfig struct {
	RequiredFields []string `mapstructure:"required_fields" yaml:"required_fields"`
	MaxDepth       int      `mapstructure:"max_depth" yaml:"max_depth"`
	MaxKeys        int      `mapstructure:"max_keys" yaml:"max_keys"`
	Schema         string   `mapstructure:"schema" yaml:"schema"`
	Rules          []string `mapstructure:"rules" yaml:"rules"`
}

// BuildConfig locates site builder inputs and outputs.
type BuildConfig struct {
	ContentDir  string `mapstructure:"content_dir" yaml:"content_dir"`
	OutputDir   string `mapstructure:"output_dir" yaml:"output_dir"`
	TemplateDir string `mapstructure:"template_dir" yaml:"template_dir"`
	Workers     int    `mapstructure:"workers" yaml:"workers"`
}

// SiteConfig describes the generated site.
type SiteConfig struct {
	SiteName    string `mapstructure:"site_name" yaml:"site_name"`
	SiteTitle   string `mapstructure:"site_title" yaml:"site_title"`
	Description string `mapstructure:"description" yaml:"description"`
	Language    string `mapstructure:"language" yaml:"language"`
	BaseURL     string `mapstructure:"base_url" yaml:"base_url"`
}

var defaults = map[string]any{
	"version":                  1,
	"extract.default_format":   "yaml",
	"extract.check_input":      false,
	"validate.required_fields": []string{},
	"validate.max_depth":       32,
	"validate.max_keys":        1000,
	"validate.schema":          "",
	"validate.rules":           []string{},
	"build.content_dir":        "content",
	"build.output_dir":         "public",
	"build.template_dir":       "templates",
	"build.workers":            4,
	"site.site_name":           "",
	"site.site_title":          "My Shokunin Site",
	"site.description":         "",
	"site.language":            "en-GB",
	"site.base_url":            "http://localhost:8000",
}

// Init resets Viper and installs the search paths, environment binding and
// defaults. Call it before Load.
func Init() {
	viper.Reset()
	viper.SetConfigName(FileName)

	// Search paths (in order of precedence)
	viper.AddConfigPath(".")
	viper.AddConfigPath(paths.ConfigDir())

	// FMGEN_BUILD_OUTPUT_DIR overrides build.output_dir.
	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	for key, value := range defaults {
		viper.SetDefault(key, value)
	}
}

// Load reads the configuration file.
// If path is provided, it reads from that specific file and a missing file
// is an error. If path is empty, the default locations are searched and
// defaults are used when nothing is found.
func Load(path string) (*Config, error) {
	if path != "" {
		viper.SetConfigFile(path)
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		switch {
		case path != "" && (errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist)):
			return nil, errors.Wrapf(err, "config file not found at %s", path)
		case errors.As(err, &notFound):
			// Implicit load without a file: defaults apply.
		default:
			return nil, errors.Wrap(err, "reading config file")
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "unmarshaling config")
	}

	return &cfg, nil
}

// Used returns the config file Viper loaded, or "" when defaults are in use.
func Used() string {
	return viper.ConfigFileUsed()
}
