package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labelwise/eatability/internal/images"
)

// maxFormOverhead leaves room for multipart headers and the provider/model fields
const maxFormOverhead = 1 << 20

func (h *Handler) HandleAnalyze(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	// Check if this is a JSON request with image URL
	contentType := r.Header.Get("Content-Type")
	if strings.Contains(contentType, "application/json") {
		h.handleURLAnalyze(w, r)
		return
	}

	h.handleFileAnalyze(w, r)
}

func (h *Handler) handleURLAnalyze(w http.ResponseWriter, r *http.Request) {
	var request struct {
		ImageURL string `json:"image_url"`
		Provider string `json:"provider"`
		Model    string `json:"model"`
	}

	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		h.writeError(w, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}

	if request.ImageURL == "" {
		h.writeError(w, "image_url is required", http.StatusBadRequest)
		return
	}

	result, err := h.processImageURL(r.Context(), request.ImageURL)
	if err != nil {
		h.writeError(w, "Failed to process image URL: "+err.Error(), http.StatusBadRequest)
		return
	}

	h.finishAnalyze(w, r, result, request.Provider, request.Model)
}

func (h *Handler) handleFileAnalyze(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, images.MaxImageBytes+maxFormOverhead)

	file, header, err := r.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.writeError(w, "File too large (max 10MB)", http.StatusRequestEntityTooLarge)
			return
		}
		h.writeError(w, "Failed to read file: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer file.Close()

	provider := r.FormValue("provider")
	model := r.FormValue("model")

	fileData, err := io.ReadAll(io.LimitReader(file, images.MaxImageBytes+1))
	if err != nil {
		h.writeError(w, "Failed to read file contents: "+err.Error(), http.StatusInternalServerError)
		return
	}

	if len(fileData) > images.MaxImageBytes {
		h.writeError(w, "File too large (max 10MB)", http.StatusBadRequest)
		return
	}
	if len(fileData) == 0 {
		h.writeError(w, "File is empty", http.StatusBadRequest)
		return
	}

	result, err := h.processImageFile(fileData, header.Filename)
	if err != nil {
		h.writeError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	h.finishAnalyze(w, r, result, provider, model)
}

func (h *Handler) finishAnalyze(w http.ResponseWriter, r *http.Request, result *ImageProcessResult, provider, model string) {
	session := h.createAnalysisSession(r.Context(), result, provider, model)
	if session.ID == "" {
		session.ID = uuid.NewString()
	}
	h.sessionStore.Set(session.ID, session)

	h.writeJSON(w, session)
}
