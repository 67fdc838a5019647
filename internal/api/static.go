package api

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// setupStaticRoutes serves the built client bundle with an index.html
// fallback so client-side routes survive a page reload.
func (s *Server) setupStaticRoutes(buildPath string) {
	fileServer := http.FileServer(http.Dir(buildPath))

	s.router.Get("/*", func(w http.ResponseWriter, r *http.Request) {
		// Never fall through to index.html for API paths.
		if strings.HasPrefix(r.URL.Path, "/graphql") || strings.HasPrefix(r.URL.Path, "/health") {
			http.NotFound(w, r)
			return
		}

		path := filepath.Join(buildPath, filepath.Clean("/"+r.URL.Path))
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			fileServer.ServeHTTP(w, r)
			return
		}

		http.ServeFile(w, r, filepath.Join(buildPath, "index.html"))
	})
}
