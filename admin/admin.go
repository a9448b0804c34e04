// Package admin wires the authenticated content-management workflow: setup,
// login, page and user CRUD, previews and resets. Handlers resolve the
// current user through the session subsystem and enforce the authorization
// policy before any mutation; every failure funnels through one adapter
// (fail) that decides the HTTP-facing shape.
package admin

import (
	"errors"
	"html/template"
	"log"
	"net/http"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"vilolog/auth"
	"vilolog/common"
	"vilolog/docstore"
	"vilolog/models"
	"vilolog/theme"
)

const contentTypeHTML = "text/html; charset=utf-8"

type AdminModule struct {
	store    *docstore.Store
	sessions *auth.Sessions
	theme    *theme.Renderer // admin theme
	pub      *theme.Renderer // public theme, used by previews
	cfg      *common.Config
}

func NewAdminModule(store *docstore.Store, sessions *auth.Sessions, adminTheme, publicTheme *theme.Renderer, cfg *common.Config) *AdminModule {
	return &AdminModule{
		store:    store,
		sessions: sessions,
		theme:    adminTheme,
		pub:      publicTheme,
		cfg:      cfg,
	}
}

func (a *AdminModule) RegisterRoutes(router *gin.Engine) {
	router.GET("/_hello", a.hello)
	router.GET("/_setup", a.setupForm)
	router.POST("/_setup", a.setupSubmit)

	loginPath := a.loginPath()
	router.GET(loginPath, a.loginForm)
	router.POST(loginPath, a.loginSubmit)
	router.GET("/_logout", a.logout)

	router.GET("/_resetAll", a.resetAll)
	router.GET("/_resetPages", a.resetPages)

	router.GET("/_pages", a.listPages)
	router.GET("/_newPage", a.newPageForm)
	router.POST("/_newPage", a.createPage)
	router.GET("/_editPage/:pageId", a.editPageForm)
	router.POST("/_editPage/:pageId", a.updatePage)
	router.GET("/_previewPage/:pageId", a.previewSaved)
	router.POST("/_previewPage", a.previewUnsaved)
	router.POST("/_previewPage/:pageId", a.previewUnsaved)
	router.POST("/_deletePage", a.deletePage)

	router.GET("/_users", a.listUsers)
	router.GET("/_newUser", a.newUserForm)
	router.POST("/_newUser", a.createUser)
	router.GET("/_editUser/:userId", a.editUserForm)
	router.POST("/_editUser/:userId", a.updateUser)

	if a.cfg.AdminThemeDir != "" {
		router.Static("/_static", filepath.Join(a.cfg.AdminThemeDir, "static"))
	}
}

// loginPath honors the configured login-slug override.
func (a *AdminModule) loginPath() string {
	if a.cfg.LoginSlug != "" {
		return "/" + strings.Trim(a.cfg.LoginSlug, "/")
	}
	return "/_login"
}

// currentUser resolves the requesting user or renders the failure and
// reports false.
func (a *AdminModule) currentUser(c *gin.Context) (*models.User, bool) {
	user, err := a.sessions.CurrentUser(c)
	if err != nil {
		a.fail(c, err)
		return nil, false
	}
	return user, true
}

// fail is the single place that turns an error kind into an admin-facing
// response.
func (a *AdminModule) fail(c *gin.Context, err error) {
	var schemaErr *common.SchemaError
	switch {
	case errors.Is(err, common.ErrCSRFInvalid):
		a.message(c, http.StatusForbidden, "CSRF invalid. Session expired. Please /_logout and then /_login again.")
	case errors.Is(err, common.ErrSessionExpired):
		a.message(c, http.StatusForbidden, "Session expired. Please /_logout and then /_login again.")
	case errors.Is(err, common.ErrAccessDeactivated):
		a.message(c, http.StatusForbidden, "Access deactivated.")
	case errors.Is(err, common.ErrAccessDenied):
		a.message(c, http.StatusForbidden, "Access denied.")
	case errors.Is(err, common.ErrSlugTaken):
		a.message(c, http.StatusBadRequest, "That slug is already taken. Pick another and resubmit.")
	case errors.Is(err, common.ErrEmailTaken):
		a.message(c, http.StatusBadRequest, "Error: Email address already registered.")
	case errors.Is(err, common.ErrSetupDone):
		a.message(c, http.StatusBadRequest, "Setup previously completed. Visit: /_login")
	case errors.Is(err, common.ErrNotFound):
		a.message(c, http.StatusNotFound, "No such record. See: /_pages")
	case errors.As(err, &schemaErr):
		a.message(c, http.StatusBadRequest, "Invalid input. "+schemaErr.Detail)
	default:
		log.Printf("admin: %v", err)
		a.message(c, http.StatusInternalServerError, "Something went wrong. Please try again.")
	}
}

var adminPathPattern = regexp.MustCompile(`\s/_\w+`)

// linkify turns " /_path" route mentions in a sentence into links.
func linkify(sentence string) template.HTML {
	escaped := template.HTMLEscapeString(sentence)
	linked := adminPathPattern.ReplaceAllStringFunc(escaped, func(sp string) string {
		path := strings.TrimSpace(sp)
		return " <a href='" + path + "'><code>" + path + "</code></a>"
	})
	return template.HTML(linked)
}

func (a *AdminModule) message(c *gin.Context, status int, text string) {
	html, err := a.theme.RenderInLayout("message.html", a.cfg.BlogTitle, map[string]any{
		"message": linkify(text),
	})
	if err != nil {
		log.Printf("admin: render message: %v", err)
		c.String(http.StatusInternalServerError, text)
		return
	}
	c.Data(status, contentTypeHTML, []byte(html))
}

func (a *AdminModule) render(c *gin.Context, name, title string, data map[string]any) {
	html, err := a.theme.RenderInLayout(name, title, data)
	if err != nil {
		a.fail(c, err)
		return
	}
	c.Data(http.StatusOK, contentTypeHTML, []byte(html))
}

func (a *AdminModule) hello(c *gin.Context) {
	a.message(c, http.StatusOK, "Hello, I'm the /_hello route! Try: /_setup")
}

func (a *AdminModule) setupForm(c *gin.Context) {
	anyUser, err := models.GetAnyUser(a.store, a.cfg.BlogID)
	if err != nil {
		a.fail(c, err)
		return
	}
	if anyUser != nil {
		a.fail(c, common.ErrSetupDone)
		return
	}
	a.render(c, "setup.html", "ViloLog Setup", nil)
}

func (a *AdminModule) setupSubmit(c *gin.Context) {
	anyUser, err := models.GetAnyUser(a.store, a.cfg.BlogID)
	if err != nil {
		a.fail(c, err)
		return
	}
	if anyUser != nil {
		a.fail(c, common.ErrSetupDone)
		return
	}

	// The first user is always an admin.
	user, err := models.BuildUser(
		c.PostForm("name"), c.PostForm("email"), c.PostForm("password"),
		models.RoleAdmin, a.cfg.BlogID,
	)
	if err != nil {
		a.fail(c, err)
		return
	}
	if err := models.InsertUser(a.store, user, a.cfg.BlogID); err != nil {
		a.fail(c, err)
		return
	}
	if err := a.sessions.Start(c, user); err != nil {
		a.fail(c, err)
		return
	}
	a.message(c, http.StatusOK, "Done! Setup complete and you're logged in. Proceed to: /_pages")
}

func (a *AdminModule) loginForm(c *gin.Context) {
	a.render(c, "login.html", "ViloLog Login", nil)
}

func (a *AdminModule) loginSubmit(c *gin.Context) {
	if a.cfg.DisableRemoteLogin && !isLoopback(c.ClientIP()) {
		a.message(c, http.StatusForbidden, "Remote login is disabled on this instance.")
		return
	}

	user, err := models.GetUserByEmail(a.store, c.PostForm("email"), a.cfg.BlogID)
	if err != nil {
		a.fail(c, err)
		return
	}
	if user == nil {
		a.message(c, http.StatusUnauthorized, "Email not recognized.")
		return
	}
	if !common.CheckPassword(c.PostForm("password"), user.PasswordHash) {
		a.message(c, http.StatusUnauthorized, "Email/password mismatch.")
		return
	}
	if user.Role == models.RoleDeactivated {
		a.fail(c, common.ErrAccessDeactivated)
		return
	}
	if err := a.sessions.Start(c, user); err != nil {
		a.fail(c, err)
		return
	}
	a.message(c, http.StatusOK, "Done! Proceed to: /_pages")
}

func (a *AdminModule) logout(c *gin.Context) {
	a.sessions.End(c)
	a.message(c, http.StatusOK, "You've logged out. Visit /_login to log back in.")
}

// confirmSure gates the irreversible reset routes behind ?sure=True.
func (a *AdminModule) confirmSure(c *gin.Context) bool {
	if c.Query("sure") != "True" {
		a.message(c, http.StatusOK, "Aborted. Pass ?sure=True if you're really sure.")
		return false
	}
	return true
}

func (a *AdminModule) resetAll(c *gin.Context) {
	user, ok := a.currentUser(c)
	if !ok {
		return
	}
	if err := auth.RequireAdmin(user); err != nil {
		a.fail(c, err)
		return
	}
	if !a.confirmSure(c) {
		return
	}
	if _, err := models.DeleteAllPages(a.store, a.cfg.BlogID); err != nil {
		a.fail(c, err)
		return
	}
	if err := models.DeleteAllUsers(a.store, a.cfg.BlogID); err != nil {
		a.fail(c, err)
		return
	}
	a.sessions.End(c)
	a.message(c, http.StatusOK, "Done! All pages and users deleted. Proceed to: /_setup")
}

func (a *AdminModule) resetPages(c *gin.Context) {
	user, ok := a.currentUser(c)
	if !ok {
		return
	}
	if err := auth.RequireAdmin(user); err != nil {
		a.fail(c, err)
		return
	}
	if !a.confirmSure(c) {
		return
	}
	n, err := models.DeleteAllPages(a.store, a.cfg.BlogID)
	if err != nil {
		a.fail(c, err)
		return
	}
	a.message(c, http.StatusOK, "Done! Deleted "+strconv.Itoa(n)+" pages. See: /_pages")
}

func isLoopback(ip string) bool {
	return ip == "127.0.0.1" || ip == "::1"
}
