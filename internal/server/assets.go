package server

import (
	"embed"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
)

//go:embed assets
var assetFS embed.FS

// handleAssets serves /static/* from the embedded assets. When dir is set,
// files there take precedence, so a venue can restyle the kiosk without a
// rebuild.
func handleAssets(logger *slog.Logger, dir string) http.Handler {
	embedded, _ := fs.Sub(assetFS, "assets")
	embeddedServer := http.FileServer(http.FS(embedded))

	var override http.Handler
	if dir != "" {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			logger.Info("serving static overrides", "dir", dir)
			override = http.FileServer(http.Dir(dir))
		} else {
			logger.Warn("static override directory unavailable", "dir", dir)
		}
	}

	return http.StripPrefix("/static", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		name := strings.TrimPrefix(path.Clean("/"+r.URL.Path), "/")
		if override != nil {
			if info, err := os.Stat(filepath.Join(dir, filepath.FromSlash(name))); err == nil && !info.IsDir() {
				override.ServeHTTP(w, r)
				return
			}
		}
		embeddedServer.ServeHTTP(w, r)
	}))
}
