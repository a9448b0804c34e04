package blog

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"vilolog/common"
	"vilolog/docstore"
	"vilolog/models"
	"vilolog/theme"
)

const testBlogID = "blog1"

type testEnv struct {
	store  *docstore.Store
	router *gin.Engine
	author *models.User
}

func setupTestEnv(t *testing.T) *testEnv {
	return setupTestEnvWithConfig(t, &common.Config{
		BlogID:          testBlogID,
		BlogTitle:       "Test Blog",
		BlogDescription: "A blog for tests.",
		FooterLine:      "Footer.",
	})
}

func setupTestEnvWithConfig(t *testing.T, cfg *common.Config) *testEnv {
	gin.SetMode(gin.TestMode)
	store, err := docstore.Open(":memory:")
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	publicTheme, err := theme.NewPublic("")
	if err != nil {
		t.Fatalf("failed to load public theme: %v", err)
	}
	author, err := models.BuildUser("Author", "author@example.com", "secret123", models.RoleAdmin, testBlogID)
	if err != nil {
		t.Fatalf("failed to build author: %v", err)
	}
	if err := models.InsertUser(store, author, testBlogID); err != nil {
		t.Fatalf("failed to insert author: %v", err)
	}

	router := gin.New()
	NewBlogModule(store, publicTheme, cfg).RegisterRoutes(router)
	return &testEnv{store: store, router: router, author: author}
}

func (e *testEnv) createPage(t *testing.T, slug, isoDate string, draft bool, body string) *models.Page {
	page, err := models.BuildPage(models.PageMeta{
		Title:    "Title of " + slug,
		Slug:     slug,
		ISODate:  isoDate,
		Template: "page.html",
		IsDraft:  draft,
	}, body, e.author, testBlogID)
	if err != nil {
		t.Fatalf("failed to build page: %v", err)
	}
	if err := models.InsertPage(e.store, page, testBlogID); err != nil {
		t.Fatalf("failed to insert page: %v", err)
	}
	return page
}

func (e *testEnv) get(path string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest("GET", path, nil)
	req.Host = "blog.example.com"
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func TestHome_ListsPublishedPages(t *testing.T) {
	e := setupTestEnv(t)
	e.createPage(t, "older-post", "2021-01-01", false, "body")
	e.createPage(t, "newer-post", "2021-02-01", false, "body")
	e.createPage(t, "secret-draft", "2021-03-01", true, "body")

	w := e.get("/")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "older-post")
	assert.Contains(t, w.Body.String(), "newer-post")
	assert.NotContains(t, w.Body.String(), "secret-draft")
}

func TestHome_Empty(t *testing.T) {
	e := setupTestEnv(t)

	w := e.get("/")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Nothing here, yet.")
}

func TestPageBySlug(t *testing.T) {
	e := setupTestEnv(t)
	e.createPage(t, "hello-world", "2021-01-01", false, "# Big Heading\n\nSome **bold** text.")

	w := e.get("/hello-world")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "<h1>Big Heading</h1>")
	assert.Contains(t, w.Body.String(), "<strong>bold</strong>")
	assert.Contains(t, w.Body.String(), "Title of hello-world // Test Blog")
	assert.NotContains(t, w.Body.String(), "[PREVIEW]")
}

func TestPageBySlug_DraftHidden(t *testing.T) {
	e := setupTestEnv(t)
	e.createPage(t, "secret-draft", "2021-01-01", true, "body")

	w := e.get("/secret-draft")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPageBySlug_Unknown(t *testing.T) {
	e := setupTestEnv(t)

	w := e.get("/no-such-page")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "404")
}

func TestPageBySlug_SiblingNavigation(t *testing.T) {
	e := setupTestEnv(t)
	e.createPage(t, "first-post", "2021-01-01", false, "body")
	e.createPage(t, "second-post", "2021-02-01", false, "body")
	e.createPage(t, "third-post", "2021-03-01", false, "body")

	w := e.get("/second-post")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `href="/third-post"`)
	assert.Contains(t, w.Body.String(), `href="/first-post"`)
}

func TestPageBySlug_DraftSiblingSkipped(t *testing.T) {
	e := setupTestEnv(t)
	e.createPage(t, "first-post", "2021-01-01", false, "body")
	e.createPage(t, "draft-post", "2021-02-01", true, "body")

	w := e.get("/first-post")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "draft-post")
}

func TestSitemap(t *testing.T) {
	e := setupTestEnv(t)
	e.createPage(t, "hello-world", "2021-01-01", false, "body")
	e.createPage(t, "secret-draft", "2021-02-01", true, "body")

	w := e.get("/sitemap.txt")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "http://blog.example.com/")
	assert.Contains(t, w.Body.String(), "http://blog.example.com/hello-world")
	assert.NotContains(t, w.Body.String(), "secret-draft")
}

func TestNotFound_RedirectMap(t *testing.T) {
	e := setupTestEnvWithConfig(t, &common.Config{
		BlogID:    testBlogID,
		BlogTitle: "Test Blog",
		Redirects: map[string]string{"/old/path": "/new-page"},
	})

	req, _ := http.NewRequest("GET", "/old/path", nil)
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/new-page", w.Header().Get("Location"))
}

func TestNotFound_DeepPathThemed(t *testing.T) {
	e := setupTestEnv(t)

	req, _ := http.NewRequest("GET", "/some/deep/path", nil)
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "404")
}
