package cache

import (
	"bytes"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

type responseWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w *responseWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

// Middleware serves public GET responses from the cache and captures misses.
// Every non-GET request clears the whole cache before dispatch, so mutations
// are never served stale.
func Middleware(store *Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet {
			store.InvalidateAll()
			c.Next()
			return
		}

		path := c.Request.URL.Path
		if !cacheablePath(path) {
			c.Next()
			return
		}

		if body, ok := store.Get(path); ok {
			c.Header("X-Cache", "HIT")
			c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(body))
			c.Abort()
			return
		}

		c.Header("X-Cache", "MISS")
		writer := &responseWriter{
			ResponseWriter: c.Writer,
			body:           bytes.NewBuffer(nil),
		}
		c.Writer = writer

		c.Next()

		// Only cache successful HTML responses
		if c.Writer.Status() == http.StatusOK &&
			strings.HasPrefix(c.Writer.Header().Get("Content-Type"), "text/html") {
			store.Put(path, writer.body.String())
		}
	}
}

// cacheablePath limits caching to the public surface: admin routes (the /_
// prefix) and static assets always bypass the cache.
func cacheablePath(path string) bool {
	if strings.HasPrefix(path, "/_") {
		return false
	}
	if strings.HasPrefix(path, "/static/") {
		return false
	}
	return true
}
