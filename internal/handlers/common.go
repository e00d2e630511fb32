package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/labelwise/eatability/internal/analysis"
	"github.com/labelwise/eatability/internal/images"
	"github.com/labelwise/eatability/internal/models"
	"github.com/labelwise/eatability/internal/storage"
)

// Runner analyzes a label image stored on disk
type Runner interface {
	Run(ctx context.Context, imagePath string) (*analysis.Result, error)
}

// RunnerFactory builds a Runner for the requested provider and model.
// Empty values select the server defaults.
type RunnerFactory func(provider, model string) (Runner, error)

type Handler struct {
	sessionStore *storage.SessionStore
	newRunner    RunnerFactory
	fetcher      *images.Fetcher
	uploadsDir   string
}

type ImageProcessResult struct {
	ImageFilename string
	ImageFilePath string
	SourceURL     string
	Width         int
	Height        int
}

func New(newRunner RunnerFactory, uploadsDir string) *Handler {
	if uploadsDir == "" {
		uploadsDir = "uploads"
	}
	return &Handler{
		sessionStore: storage.New(),
		newRunner:    newRunner,
		fetcher:      images.NewFetcher(),
		uploadsDir:   uploadsDir,
	}
}

// Response helpers
func (h *Handler) writeJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("Unable to encode JSON response", "err", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, message string, code int) {
	slog.Error(message)
	http.Error(w, message, code)
}

// Session helpers
func (h *Handler) getSessionOrError(w http.ResponseWriter, sessionID string) (*models.AnalysisSession, bool) {
	session, exists := h.sessionStore.Get(sessionID)
	if !exists {
		h.writeError(w, "Session not found", http.StatusNotFound)
		return nil, false
	}
	return session, true
}

// File operation helpers
func (h *Handler) ensureUploadsDir() error {
	return os.MkdirAll(h.uploadsDir, 0755)
}

// createAnalysisSession runs the pipeline on a stored image. Pipeline
// problems are recorded on the session rather than failing the request.
func (h *Handler) createAnalysisSession(ctx context.Context, result *ImageProcessResult, provider, model string) *models.AnalysisSession {
	session := &models.AnalysisSession{
		Provider: provider,
		Model:    model,
		Image: models.ImageItem{
			ImagePath:   result.ImageFilename,
			ImageURL:    "/uploads/" + result.ImageFilename,
			SourceURL:   result.SourceURL,
			ImageWidth:  result.Width,
			ImageHeight: result.Height,
		},
		CreatedAt: time.Now(),
	}

	runner, err := h.newRunner(provider, model)
	if err != nil {
		slog.Error("Failed to create analysis runner", "provider", provider, "model", model, "error", err)
		session.Error = err.Error()
		return session
	}

	slog.Info("Analyzing label image", "image", result.ImageFilename, "provider", provider, "model", model)
	analysisResult, err := runner.Run(ctx, result.ImageFilePath)
	if analysisResult != nil {
		session.ID = analysisResult.ID
		session.Result = analysisResult
	}
	if err != nil {
		slog.Error("Label analysis failed", "error", err)
		session.Error = err.Error()
	} else if analysisResult != nil && analysisResult.Report == nil {
		session.Error = "no eatability report could be generated"
	}

	return session
}
