package site

import (
	"bytes"
	"context"
	"html/template"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/sourcegraph/conc/pool"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/thoreinstein/fmgen/internal/logging"
	"github.com/thoreinstein/fmgen/internal/paths"
	"github.com/thoreinstein/fmgen/pkg/fileutil"
	"github.com/thoreinstein/fmgen/pkg/frontmatter"
)

// ErrTemplateNotFound indicates a page names a template that was not loaded.
var ErrTemplateNotFound = errors.New("template not found")

const assetsDir = "assets"

// Builder renders a content directory of Markdown pages into HTML.
type Builder struct {
	cfg       Config
	logger    *slog.Logger
	markdown  goldmark.Markdown
	templates map[string]*template.Template
}

// Summary describes a finished build.
type Summary struct {
	Pages  []string
	Assets bool
}

// NewBuilder validates cfg and returns a Builder. A nil logger discards.
func NewBuilder(cfg Config, logger *slog.Logger) (*Builder, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid site config")
	}
	if logger == nil {
		logger = logging.NewDiscard()
	}
	return &Builder{
		cfg:    cfg,
		logger: logger.With("build", cfg.ID.String()),
		markdown: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithParserOptions(parser.WithAutoHeadingID()),
			goldmark.WithRendererOptions(html.WithUnsafe()),
		),
	}, nil
}

// Build loads templates, renders every page and copies assets. Pages render
// concurrently; the first failure cancels the remaining pages.
func (b *Builder) Build(ctx context.Context) (*Summary, error) {
	if err := b.loadTemplates(); err != nil {
		return nil, err
	}

	sources, err := b.contentFiles()
	if err != nil {
		return nil, err
	}
	if err := paths.EnsureDir(b.cfg.OutputDir, 0); err != nil {
		return nil, errors.Wrap(err, "creating output directory")
	}

	outputs := make([]string, len(sources))
	p := pool.New().
		WithMaxGoroutines(b.cfg.Workers).
		WithContext(ctx).
		WithCancelOnError().
		WithFirstError()
	for i, src := range sources {
		p.Go(func(ctx context.Context) error {
			if err := ctx.Err(); err != nil {
				return err
			}
			out, err := b.renderPage(src)
			if err != nil {
				return err
			}
			outputs[i] = out
			return nil
		})
	}
	if err := p.Wait(); err != nil {
		return nil, err
	}

	copied, err := b.copyAssets()
	if err != nil {
		return nil, err
	}

	b.logger.Info("site built", "pages", len(outputs), "output", b.cfg.OutputDir)
	return &Summary{Pages: outputs, Assets: copied}, nil
}

// loadTemplates parses every *.html file in the template directory, keyed
// by file stem.
func (b *Builder) loadTemplates() error {
	entries, err := os.ReadDir(b.cfg.TemplateDir)
	if err != nil {
		return errors.Wrap(err, "reading template directory")
	}

	b.templates = make(map[string]*template.Template)
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".html" {
			continue
		}
		path := filepath.Join(b.cfg.TemplateDir, entry.Name())
		data, err := fileutil.ReadFileWithLimit(path)
		if err != nil {
			return errors.Wrapf(err, "reading template %s", path)
		}
		name := strings.TrimSuffix(entry.Name(), ".html")
		tmpl, err := template.New(name).Parse(string(data))
		if err != nil {
			return errors.Wrapf(err, "parsing template %s", path)
		}
		b.templates[name] = tmpl
		b.logger.Debug("loaded template", "name", name)
	}
	return nil
}

// contentFiles lists Markdown files under the content directory, skipping
// the assets tree.
func (b *Builder) contentFiles() ([]string, error) {
	var files []string
	root := b.cfg.ContentDir
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path == filepath.Join(root, assetsDir) {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(path) == ".md" {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "reading content directory")
	}
	return files, nil
}

func (b *Builder) renderPage(src string) (string, error) {
	data, err := fileutil.ReadFileWithLimit(src)
	if err != nil {
		return "", errors.Wrapf(err, "reading %s", src)
	}

	fm, body, err := frontmatter.ExtractWithOptions(string(data), frontmatter.Options{Logger: b.logger})
	switch {
	case errors.Is(err, frontmatter.ErrNoFrontmatter):
		fm, body = frontmatter.New(), string(data)
	case err != nil:
		return "", errors.Wrapf(err, "extracting frontmatter from %s", src)
	}

	var rendered bytes.Buffer
	if err := b.markdown.Convert([]byte(body), &rendered); err != nil {
		return "", errors.Wrapf(err, "rendering markdown in %s", src)
	}

	name := DefaultTemplate
	if v, ok := fm.Get("template"); ok {
		if s, ok := v.AsString(); ok && s != "" {
			name = s
		}
	}
	tmpl, ok := b.templates[name]
	if !ok {
		return "", errors.Wrapf(ErrTemplateNotFound, "%s: %q", src, name)
	}

	page := fm.Interface()
	// Rendered Markdown is trusted page content.
	page["content"] = template.HTML(rendered.String())
	page["site"] = b.cfg

	var out bytes.Buffer
	if err := tmpl.Execute(&out, page); err != nil {
		return "", errors.Wrapf(err, "executing template %q for %s", name, src)
	}

	rel, err := filepath.Rel(b.cfg.ContentDir, src)
	if err != nil {
		return "", errors.Wrap(err, "resolving output path")
	}
	dest := filepath.Join(b.cfg.OutputDir, strings.TrimSuffix(rel, ".md")+".html")
	if err := fileutil.WriteFileCreatingDirs(dest, out.Bytes(), 0o644); err != nil {
		return "", errors.Wrapf(err, "writing %s", dest)
	}

	b.logger.Debug("rendered page", "source", src, "output", dest, "template", name)
	return dest, nil
}

// copyAssets replaces <output>/assets with a copy of <content>/assets.
func (b *Builder) copyAssets() (bool, error) {
	src := filepath.Join(b.cfg.ContentDir, assetsDir)
	info, err := os.Stat(src)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, errors.Wrap(err, "checking assets directory")
	}
	if !info.IsDir() {
		return false, nil
	}

	dst := filepath.Join(b.cfg.OutputDir, assetsDir)
	if err := os.RemoveAll(dst); err != nil {
		return false, errors.Wrap(err, "clearing output assets")
	}
	if err := fileutil.CopyDir(src, dst); err != nil {
		return false, errors.Wrap(err, "copying assets")
	}
	return true, nil
}
