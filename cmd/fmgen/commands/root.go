// Package commands implements the CLI commands for fmgen.
package commands

import (
	"context"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/fmgen/cmd"
	"github.com/thoreinstein/fmgen/internal/config"
	"github.com/thoreinstein/fmgen/internal/errors"
	"github.com/thoreinstein/fmgen/internal/logging"
)

// verbosity holds the count of -v flags.
var verbosity int

// quiet holds the value of the -q/--quiet flag.
var quiet bool

// logFormat holds the value of the --log-format flag.
var logFormat string

// logFile holds the path to the log file.
var logFile string

// configPath holds the value of the --config flag.
var configPath string

// appConfig is the loaded configuration; defaults when no file exists.
var appConfig *config.Config

// configLoadErr holds any error that occurred during config loading.
var configLoadErr error

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v",
		"increase verbosity level (e.g., -v, -vv, -vvv)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false,
		"suppress non-error output")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text",
		"log format: text, json")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "",
		"write logs to file in JSON format")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"config file (default: ./fmgen.yaml, then $XDG_CONFIG_HOME/fmgen/fmgen.yaml)")

	rootCmd.Version = cmd.Version
	rootCmd.SetVersionTemplate("fmgen version {{.Version}}\n")

	// Silence errors and usage so main controls error output.
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true
}

func initConfig() {
	config.Init()
	appConfig, configLoadErr = config.Load(configPath)
}

var rootCmd = &cobra.Command{
	Use:   "fmgen",
	Short: "Extract, convert and validate Markdown frontmatter",
	Long: `fmgen reads the metadata block at the top of Markdown documents.

Three block styles are recognised:
  ---  YAML  ---
  +++  TOML  +++
  {    JSON    }

Blocks can be converted between styles, checked against required keys,
JSON Schemas and rule expressions, compared, and used to build a small
static site.`,
	Example: `  # Print a post's frontmatter as TOML
  fmgen extract post.md --format toml

  # Require a title and date on every post
  fmgen validate content/*.md --required title,date

  # Build the site described in fmgen.yaml
  fmgen build`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := setupLogging(cmd); err != nil {
			return err
		}
		return checkConfig(cmd)
	},
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
	},
}

// setupLogging configures the default logger based on verbosity flags.
func setupLogging(cmd *cobra.Command) error {
	if quiet && verbosity > 0 {
		return errors.NewUserError(errors.New("cannot use --quiet and --verbose together"), "")
	}

	var level slog.Level
	if quiet {
		level = slog.LevelError
	} else {
		v := verbosity

		// Flags take precedence over FMGEN_DEBUG.
		if v == 0 {
			switch os.Getenv("FMGEN_DEBUG") {
			case "1", "true":
				v = 2
			case "2":
				v = 3
			}
		}
		level = logging.LevelFromVerbosity(v)
	}

	lc := logging.Config{
		Level:  level,
		Format: logging.Format(logFormat),
		Output: cmd.ErrOrStderr(),
	}

	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return errors.NewUserError(errors.Wrap(err, "opening log file"), "Check the --log-file path")
		}
		lc.File = f
		lc.FileLevel = level
	}

	logger := logging.New(lc)
	slog.SetDefault(logger)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(logging.NewContext(ctx, logger))

	return nil
}

// checkConfig surfaces load and validation errors, except for commands
// that never read the config.
func checkConfig(cmd *cobra.Command) error {
	if cmd.Name() == "help" || cmd.Name() == "version" {
		return nil
	}

	if configLoadErr != nil {
		return errors.NewConfigError(configLoadErr)
	}
	if errs := config.Validate(appConfig); len(errs) > 0 {
		return errors.NewConfigError(errors.Mark(errors.Join(errs...), errors.ErrInvalidConfig))
	}

	if used := config.Used(); used != "" {
		logging.FromContext(cmd.Context()).Debug("loaded config", "path", used)
	}
	return nil
}

// Execute runs the root command. Errors that do not already carry an exit
// code, such as unknown flags, are reported as user errors.
func Execute() error {
	err := rootCmd.Execute()
	if err == nil {
		return nil
	}
	var exitErr *errors.ExitError
	if errors.As(err, &exitErr) {
		return err
	}
	return errors.NewUserError(err, "Run 'fmgen --help' for usage")
}
