// Package theme resolves and renders HTML templates from a theme root
// directory, falling back to built-in defaults when no directory is
// configured. Required templates are checked at construction so a
// misconfigured theme fails fast at startup.
package theme

import (
	"bytes"
	"fmt"
	"html/template"
	"path/filepath"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	htmlrenderer "github.com/yuin/goldmark/renderer/html"

	"vilolog/common"
)

type Renderer struct {
	dir string
	tpl *template.Template
}

var publicRequired = []string{"home.html", "page.html", "404.html"}

var adminRequired = []string{
	"layout.html", "message.html", "setup.html", "login.html",
	"pages.html", "editor.html", "users.html", "user_editor.html",
}

// NewPublic builds the renderer for the public-facing theme. An empty dir
// selects the built-in default templates.
func NewPublic(dir string) (*Renderer, error) {
	return newRenderer(dir, publicDefaults, publicRequired)
}

// NewAdmin builds the renderer for the admin theme.
func NewAdmin(dir string) (*Renderer, error) {
	return newRenderer(dir, adminDefaults, adminRequired)
}

type namedTemplate struct {
	name string
	src  string
}

func newRenderer(dir string, defaults []namedTemplate, required []string) (*Renderer, error) {
	var tpl *template.Template
	if dir == "" {
		tpl = template.New("")
		for _, nt := range defaults {
			if _, err := tpl.New(nt.name).Parse(nt.src); err != nil {
				return nil, fmt.Errorf("parse built-in template %q: %w", nt.name, err)
			}
		}
	} else {
		var err error
		tpl, err = template.ParseGlob(filepath.Join(dir, "*.html"))
		if err != nil {
			return nil, fmt.Errorf("theme %q: %v: %w", dir, err, common.ErrTemplateNotFound)
		}
	}
	for _, name := range required {
		if tpl.Lookup(name) == nil {
			return nil, fmt.Errorf("theme %q missing required template %q: %w",
				dir, name, common.ErrTemplateNotFound)
		}
	}
	return &Renderer{dir: dir, tpl: tpl}, nil
}

// Has reports whether the theme provides the named template.
func (r *Renderer) Has(name string) bool {
	return r.tpl.Lookup(name) != nil
}

// Render executes the named template and returns the result as a string.
func (r *Renderer) Render(name string, data any) (string, error) {
	t := r.tpl.Lookup(name)
	if t == nil {
		return "", fmt.Errorf("template %q: %w", name, common.ErrTemplateNotFound)
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// RenderInLayout renders the named template, then wraps the result in
// layout.html. Used by the admin theme, whose pages share one shell.
func (r *Renderer) RenderInLayout(name, title string, data any) (string, error) {
	body, err := r.Render(name, data)
	if err != nil {
		return "", err
	}
	return r.Render("layout.html", map[string]any{
		"title": title,
		"body":  template.HTML(body),
	})
}

// markdown renderer configured with Goldmark and useful extensions
var md = goldmark.New(
	goldmark.WithExtensions(
		extension.GFM,     // tables, strikethrough, task lists, autolinks (GFM set)
		extension.Linkify, // linkify raw URLs
	),
	goldmark.WithRendererOptions(
		htmlrenderer.WithUnsafe(), // allow raw HTML passthrough in Markdown
	),
)

// Markdown converts a page body to HTML. On conversion failure the source is
// returned escaped, so the page still renders.
func Markdown(src string) template.HTML {
	var buf bytes.Buffer
	if err := md.Convert([]byte(src), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(src))
	}
	return template.HTML(buf.String())
}
