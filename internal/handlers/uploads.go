package handlers

import (
	"net/http"
	"path/filepath"
	"strings"
)

// HandleUploads serves stored label images under /uploads/
func (h *Handler) HandleUploads(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimPrefix(r.URL.Path, "/uploads/")

	// Prevent directory traversal attacks
	if name == "" || strings.Contains(name, "..") || strings.ContainsAny(name, `/\`) {
		http.Error(w, "Invalid file path", http.StatusBadRequest)
		return
	}

	http.ServeFile(w, r, filepath.Join(h.uploadsDir, name))
}
