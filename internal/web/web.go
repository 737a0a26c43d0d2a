package web

import (
	"embed"
	"mime"
	"net/http"
	"path"

	"github.com/gin-gonic/gin"
)

//go:embed static/*
var staticFS embed.FS

var assets = map[string]string{
	"/":           "index.html",
	"/index.html": "index.html",
	"/app.js":     "app.js",
	"/styles.css": "styles.css",
}

// Register serves the embedded browser UI. It talks to /api/projects with the
// identity headers the user enters in the page.
func Register(r gin.IRouter) {
	for route, name := range assets {
		body, err := staticFS.ReadFile(path.Join("static", name))
		if err != nil {
			panic(err)
		}
		r.GET(route, serve(body, contentType(name)))
	}
}

func contentType(name string) string {
	if ct := mime.TypeByExtension(path.Ext(name)); ct != "" {
		return ct
	}
	return "application/octet-stream"
}

func serve(body []byte, ct string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Content-Security-Policy", "default-src 'self'; script-src 'self'; style-src 'self'")
		c.Data(http.StatusOK, ct, body)
	}
}
