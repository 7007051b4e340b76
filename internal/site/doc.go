// Package site builds a static HTML site from Markdown pages with
// frontmatter.
//
// A build reads every *.md file under Config.ContentDir, extracts its
// frontmatter, renders the body with goldmark (GitHub Flavored Markdown,
// automatic heading IDs) and executes an html/template from
// Config.TemplateDir. The template is chosen by the page's "template" key
// and defaults to "default", i.e. templates/default.html. Templates see the
// frontmatter keys plus:
//
//	{{.content}}  rendered page body
//	{{.site}}     the site Config
//
// Output goes to Config.OutputDir, mirroring the content tree with an .html
// extension. A content/assets directory replaces output/assets verbatim.
package site
