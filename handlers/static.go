package handlers

import (
	"net/http"
	"os"
	"path"
	"path/filepath"

	"github.com/gin-gonic/gin"
)

// spaHandler serves files from a built front end and falls back to
// index.html so client-side routes resolve. It returns nil when dir is
// empty or has no index.html.
func spaHandler(dir string) gin.HandlerFunc {
	if dir == "" {
		return nil
	}
	index := filepath.Join(dir, "index.html")
	if _, err := os.Stat(index); err != nil {
		return nil
	}
	root := http.Dir(dir)
	return func(c *gin.Context) {
		p := path.Clean("/" + c.Request.URL.Path)
		if p != "/" && p != "/index.html" {
			if f, err := root.Open(p); err == nil {
				st, serr := f.Stat()
				f.Close()
				if serr == nil && !st.IsDir() {
					c.FileFromFS(p, root)
					return
				}
			}
		}
		c.File(index)
	}
}
