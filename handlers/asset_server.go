package handlers

import (
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// UploadServer creates a handler that serves raw uploaded videos from the
// uploads directory. The request path after routePrefix is the stored
// filename, e.g. GET /api/uploads/1693123456_clip.mp4.
func UploadServer(uploadsPath, routePrefix string) http.HandlerFunc {
	cleanBase := filepath.Clean(uploadsPath)
	log.Printf("Serving uploads for '%s*' from directory: %s", routePrefix, cleanBase)

	return func(w http.ResponseWriter, r *http.Request) {
		relativePath := strings.TrimPrefix(r.URL.Path, routePrefix)
		if relativePath == "" || strings.Contains(relativePath, "..") {
			http.Error(w, "Invalid asset path", http.StatusBadRequest)
			return
		}

		requestedPath := filepath.Clean(filepath.Join(cleanBase, relativePath))
		if !strings.HasPrefix(requestedPath, cleanBase) {
			log.Printf("SECURITY: Attempted upload access outside uploads directory: Request='%s', Resolved='%s'",
				r.URL.Path, requestedPath)
			http.Error(w, "Forbidden", http.StatusForbidden)
			return
		}

		if _, err := os.Stat(requestedPath); os.IsNotExist(err) {
			http.NotFound(w, r)
			return
		} else if err != nil {
			log.Printf("Error stating upload file %s: %v", requestedPath, err)
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}

		http.ServeFile(w, r, requestedPath)
	}
}
