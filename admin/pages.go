package admin

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"vilolog/auth"
	"vilolog/common"
	"vilolog/models"
	"vilolog/theme"
)

// parseMetaForm decodes the editor's meta JSON textarea.
func parseMetaForm(c *gin.Context) (models.PageMeta, error) {
	var meta models.PageMeta
	if err := json.Unmarshal([]byte(c.PostForm("meta")), &meta); err != nil {
		return meta, &common.SchemaError{Entity: "page meta", Detail: "meta is not valid JSON: " + err.Error()}
	}
	if err := models.ValidateMeta(&meta); err != nil {
		return meta, err
	}
	return meta, nil
}

func metaJSON(meta models.PageMeta) string {
	out, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return "{}"
	}
	return string(out)
}

func (a *AdminModule) listPages(c *gin.Context) {
	if _, ok := a.currentUser(c); !ok {
		return
	}
	pages, err := models.ListPages(a.store, a.cfg.BlogID, true)
	if err != nil {
		a.fail(c, err)
		return
	}
	a.render(c, "pages.html", "ViloLog ~ All Pages", map[string]any{
		"pageList": pages,
	})
}

func (a *AdminModule) newPageForm(c *gin.Context) {
	if _, ok := a.currentUser(c); !ok {
		return
	}
	// Pre-fill the meta textarea with a skeleton so required props are visible.
	skeleton := models.PageMeta{Template: "page.html", IsDraft: true}
	a.render(c, "editor.html", "ViloLog: Page Composer", map[string]any{
		"metaJSON": metaJSON(skeleton),
		"pageID":   "",
	})
}

func (a *AdminModule) createPage(c *gin.Context) {
	user, ok := a.currentUser(c)
	if !ok {
		return
	}
	meta, err := parseMetaForm(c)
	if err != nil {
		a.fail(c, err)
		return
	}
	if err := models.EnsureSlugFree(a.store, meta.Slug, a.cfg.BlogID); err != nil {
		a.fail(c, err)
		return
	}
	page, err := models.BuildPage(meta, c.PostForm("body"), user, a.cfg.BlogID)
	if err != nil {
		a.fail(c, err)
		return
	}
	if err := models.InsertPage(a.store, page, a.cfg.BlogID); err != nil {
		a.fail(c, err)
		return
	}
	a.message(c, http.StatusOK, "Done! Page saved. See: /_pages")
}

func (a *AdminModule) editPageForm(c *gin.Context) {
	user, ok := a.currentUser(c)
	if !ok {
		return
	}
	page, err := models.GetPageByID(a.store, c.Param("pageId"), a.cfg.BlogID)
	if err != nil {
		a.fail(c, err)
		return
	}
	if page == nil {
		a.fail(c, common.ErrNotFound)
		return
	}
	if err := auth.CanEditPage(user, page); err != nil {
		a.fail(c, err)
		return
	}
	a.render(c, "editor.html", "ViloLog: Page Composer", map[string]any{
		"metaJSON": metaJSON(page.Meta),
		"page":     page,
		"pageID":   page.ID,
	})
}

func (a *AdminModule) updatePage(c *gin.Context) {
	user, ok := a.currentUser(c)
	if !ok {
		return
	}
	page, err := models.GetPageByID(a.store, c.Param("pageId"), a.cfg.BlogID)
	if err != nil {
		a.fail(c, err)
		return
	}
	if page == nil {
		a.fail(c, common.ErrNotFound)
		return
	}
	if err := auth.CanEditPage(user, page); err != nil {
		a.fail(c, err)
		return
	}
	meta, err := parseMetaForm(c)
	if err != nil {
		a.fail(c, err)
		return
	}
	// A slug rename must not collide with another page.
	if meta.Slug != page.Meta.Slug {
		if err := models.EnsureSlugFree(a.store, meta.Slug, a.cfg.BlogID); err != nil {
			a.fail(c, err)
			return
		}
	}
	page.Meta = meta
	page.Body = c.PostForm("body")
	if err := models.ReplacePage(a.store, page, a.cfg.BlogID); err != nil {
		a.fail(c, err)
		return
	}
	a.message(c, http.StatusOK, "Done! Page updated. See: /_pages")
}

// previewSaved renders a stored page through the public theme, draft or not.
func (a *AdminModule) previewSaved(c *gin.Context) {
	if _, ok := a.currentUser(c); !ok {
		return
	}
	page, err := models.GetPageByID(a.store, c.Param("pageId"), a.cfg.BlogID)
	if err != nil {
		a.fail(c, err)
		return
	}
	if page == nil {
		a.fail(c, common.ErrNotFound)
		return
	}
	a.renderPreview(c, page)
}

// previewUnsaved renders the editor's current, unsaved content. Nothing is
// persisted; an existing page id only anchors the sibling navigation.
func (a *AdminModule) previewUnsaved(c *gin.Context) {
	user, ok := a.currentUser(c)
	if !ok {
		return
	}
	meta, err := parseMetaForm(c)
	if err != nil {
		a.fail(c, err)
		return
	}
	body := c.PostForm("body")

	var page *models.Page
	if id := c.Param("pageId"); id != "" {
		page, err = models.GetPageByID(a.store, id, a.cfg.BlogID)
		if err != nil {
			a.fail(c, err)
			return
		}
	}
	if page != nil {
		page.Meta = meta
		page.Body = body
	} else {
		page, err = models.BuildPage(meta, body, user, a.cfg.BlogID)
		if err != nil {
			a.fail(c, err)
			return
		}
	}
	a.renderPreview(c, page)
}

func (a *AdminModule) renderPreview(c *gin.Context, page *models.Page) {
	// Previews see drafts; the public surface never does.
	next, prev, err := models.NextAndPrevPages(a.store, page, a.cfg.BlogID, true)
	if err != nil {
		a.fail(c, err)
		return
	}
	name := page.Meta.Template
	if !a.pub.Has(name) {
		log.Printf("admin: theme has no template %q, falling back to page.html", name)
		name = "page.html"
	}
	html, err := a.pub.Render(name, map[string]any{
		"blogTitle":       a.cfg.BlogTitle,
		"blogDescription": a.cfg.BlogDescription,
		"footerLine":      a.cfg.FooterLine,
		"title":           page.Meta.Title + " // " + a.cfg.BlogTitle,
		"content":         theme.Markdown(page.Body),
		"page":            page,
		"nextPage":        next,
		"prevPage":        prev,
		"isPreview":       true,
	})
	if err != nil {
		a.fail(c, err)
		return
	}
	c.Data(http.StatusOK, contentTypeHTML, []byte(html))
}

func (a *AdminModule) deletePage(c *gin.Context) {
	user, ok := a.currentUser(c)
	if !ok {
		return
	}
	page, err := models.GetPageByID(a.store, c.PostForm("pageId"), a.cfg.BlogID)
	if err != nil {
		a.fail(c, err)
		return
	}
	if page == nil {
		a.fail(c, common.ErrNotFound)
		return
	}
	if err := auth.CanEditPage(user, page); err != nil {
		a.fail(c, err)
		return
	}
	if err := models.DeletePage(a.store, page, a.cfg.BlogID); err != nil {
		a.fail(c, err)
		return
	}
	a.message(c, http.StatusOK, "Done! Page deleted. See: /_pages")
}
