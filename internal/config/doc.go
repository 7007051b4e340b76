// Package config provides configuration management for the fmgen CLI.
//
// Configuration is read with Viper from a file named fmgen.yaml (or
// fmgen.toml, fmgen.json) in the current directory, then in
// $XDG_CONFIG_HOME/fmgen. Every key can be overridden from the environment
// with the FMGEN_ prefix, dots replaced by underscores:
//
//	FMGEN_BUILD_OUTPUT_DIR=dist fmgen build
//
// # Configuration File
//
//	version: 1
//	extract:
//	  default_format: yaml
//	validate:
//	  required_fields: [title, date, author]
//	build:
//	  content_dir: content
//	  output_dir: public
//	  template_dir: templates
//	site:
//	  site_name: notes
//	  base_url: https://example.com
//
// # Loading Configuration
//
// Call [Init] once at startup, then [Load]:
//
//	config.Init()
//	cfg, err := config.Load(flagPath)
//	if err != nil {
//	    return err
//	}
//	if errs := config.Validate(cfg); len(errs) > 0 {
//	    ...
//	}
//
// An empty path searches the default locations and falls back to defaults
// when no file exists. An explicit path that does not exist is an error.
package config
