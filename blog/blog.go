// Package blog serves the public, read-only surface: the home listing,
// individual pages by slug, the plain-text sitemap and the themed 404 with
// configured redirects. Drafts never leave this package.
package blog

import (
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"vilolog/common"
	"vilolog/docstore"
	"vilolog/models"
	"vilolog/theme"
)

const contentTypeHTML = "text/html; charset=utf-8"

type BlogModule struct {
	store *docstore.Store
	theme *theme.Renderer
	cfg   *common.Config
}

func NewBlogModule(store *docstore.Store, publicTheme *theme.Renderer, cfg *common.Config) *BlogModule {
	return &BlogModule{store: store, theme: publicTheme, cfg: cfg}
}

func (b *BlogModule) RegisterRoutes(router *gin.Engine) {
	router.GET("/", b.home)
	router.GET("/sitemap.txt", b.sitemap)
	router.GET("/:slug", b.pageBySlug)
	if b.cfg.PublicThemeDir != "" {
		router.Static("/static", b.cfg.PublicThemeDir+"/static")
	}
	router.NoRoute(b.notFound)
}

func (b *BlogModule) fail(c *gin.Context, err error) {
	log.Printf("blog: %v", err)
	c.String(http.StatusInternalServerError, "Something went wrong.")
}

func (b *BlogModule) home(c *gin.Context) {
	pages, err := models.ListPages(b.store, b.cfg.BlogID, false)
	if err != nil {
		b.fail(c, err)
		return
	}
	html, err := b.theme.Render("home.html", map[string]any{
		"blogTitle":       b.cfg.BlogTitle,
		"blogDescription": b.cfg.BlogDescription,
		"footerLine":      b.cfg.FooterLine,
		"title":           b.cfg.BlogTitle,
		"pageList":        pages,
	})
	if err != nil {
		b.fail(c, err)
		return
	}
	c.Data(http.StatusOK, contentTypeHTML, []byte(html))
}

func (b *BlogModule) pageBySlug(c *gin.Context) {
	page, err := models.GetPageBySlug(b.store, c.Param("slug"), b.cfg.BlogID)
	if err != nil {
		b.fail(c, err)
		return
	}
	// Drafts are indistinguishable from absent pages out here.
	if page == nil || page.Meta.IsDraft {
		b.notFound(c)
		return
	}
	next, prev, err := models.NextAndPrevPages(b.store, page, b.cfg.BlogID, false)
	if err != nil {
		b.fail(c, err)
		return
	}
	name := page.Meta.Template
	if !b.theme.Has(name) {
		log.Printf("blog: theme has no template %q, falling back to page.html", name)
		name = "page.html"
	}
	html, err := b.theme.Render(name, map[string]any{
		"blogTitle":       b.cfg.BlogTitle,
		"blogDescription": b.cfg.BlogDescription,
		"footerLine":      b.cfg.FooterLine,
		"title":           page.Meta.Title + " // " + b.cfg.BlogTitle,
		"content":         theme.Markdown(page.Body),
		"page":            page,
		"nextPage":        next,
		"prevPage":        prev,
		"isPreview":       false,
	})
	if err != nil {
		b.fail(c, err)
		return
	}
	c.Data(http.StatusOK, contentTypeHTML, []byte(html))
}

func (b *BlogModule) sitemap(c *gin.Context) {
	pages, err := models.ListPages(b.store, b.cfg.BlogID, false)
	if err != nil {
		b.fail(c, err)
		return
	}
	scheme := "http"
	if c.Request.TLS != nil || b.cfg.EnforceHTTPS {
		scheme = "https"
	}
	base := scheme + "://" + c.Request.Host
	urls := make([]string, 0, len(pages)+1)
	urls = append(urls, base+"/")
	for _, p := range pages {
		urls = append(urls, base+"/"+p.Meta.Slug)
	}
	c.String(http.StatusOK, strings.Join(urls, "\n")+"\n")
}

func (b *BlogModule) notFound(c *gin.Context) {
	if target, ok := b.cfg.Redirects[c.Request.URL.Path]; ok {
		c.Redirect(http.StatusFound, target)
		return
	}
	pages, err := models.ListPages(b.store, b.cfg.BlogID, false)
	if err != nil {
		b.fail(c, err)
		return
	}
	html, err := b.theme.Render("404.html", map[string]any{
		"blogTitle":       b.cfg.BlogTitle,
		"blogDescription": b.cfg.BlogDescription,
		"footerLine":      b.cfg.FooterLine,
		"title":           b.cfg.BlogTitle,
		"pageList":        pages,
	})
	if err != nil {
		b.fail(c, err)
		return
	}
	c.Data(http.StatusNotFound, contentTypeHTML, []byte(html))
}
