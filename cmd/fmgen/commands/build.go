package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/fmgen/internal/errors"
	"github.com/thoreinstein/fmgen/internal/logging"
	"github.com/thoreinstein/fmgen/internal/site"
)

var (
	buildContentDir  string
	buildOutputDir   string
	buildTemplateDir string
)

func init() {
	buildCmd.Flags().StringVar(&buildContentDir, "content-dir", "",
		"directory of Markdown pages (default from build.content_dir)")
	buildCmd.Flags().StringVar(&buildOutputDir, "output-dir", "",
		"directory for generated HTML (default from build.output_dir)")
	buildCmd.Flags().StringVar(&buildTemplateDir, "template-dir", "",
		"directory of html/template files (default from build.template_dir)")

	rootCmd.AddCommand(buildCmd)
}

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Render Markdown pages into a static HTML site",
	Long: `Render every Markdown page in the content directory into HTML.

Each page's frontmatter selects a template through its "template" key
(default "default", i.e. templates/default.html). Templates see the
frontmatter keys, the rendered body as .content and the site settings as
.site. The content/assets directory is copied to the output unchanged.

Site settings come from the site section of fmgen.yaml.`,
	Example: `  fmgen build
  fmgen build --content-dir docs --output-dir dist`,
	Args: cobra.NoArgs,
	RunE: runBuild,
}

func runBuild(cmd *cobra.Command, _ []string) error {
	cfg := siteConfig()

	logger := logging.FromContext(cmd.Context())
	builder, err := site.NewBuilder(cfg, logger)
	if err != nil {
		return errors.NewConfigError(err)
	}

	summary, err := builder.Build(cmd.Context())
	if err != nil {
		if errors.Is(err, site.ErrTemplateNotFound) {
			return errors.NewUserError(err, "Add the template to "+cfg.TemplateDir+" or change the page's template key")
		}
		return errors.NewSystemError(err, "")
	}

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "Built %d page(s) into %s\n", len(summary.Pages), cfg.OutputDir)
	}
	return nil
}

// siteConfig merges the site and build config sections with flags.
func siteConfig() site.Config {
	cfg := site.NewConfig(appConfig.Site.SiteName)
	if appConfig.Site.SiteTitle != "" {
		cfg.SiteTitle = appConfig.Site.SiteTitle
	}
	cfg.Description = appConfig.Site.Description
	if appConfig.Site.Language != "" {
		cfg.Language = appConfig.Site.Language
	}
	if appConfig.Site.BaseURL != "" {
		cfg.BaseURL = appConfig.Site.BaseURL
	}

	b := appConfig.Build
	cfg.ContentDir = firstNonEmpty(buildContentDir, b.ContentDir, cfg.ContentDir)
	cfg.OutputDir = firstNonEmpty(buildOutputDir, b.OutputDir, cfg.OutputDir)
	cfg.TemplateDir = firstNonEmpty(buildTemplateDir, b.TemplateDir, cfg.TemplateDir)
	if b.Workers > 0 {
		cfg.Workers = b.Workers
	}
	return cfg
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
