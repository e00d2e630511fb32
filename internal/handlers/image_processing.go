package handlers

import (
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/labelwise/eatability/internal/utils"
)

func (h *Handler) processImageFile(fileData []byte, filename string) (*ImageProcessResult, error) {
	if err := h.ensureUploadsDir(); err != nil {
		return nil, fmt.Errorf("failed to create uploads directory: %w", err)
	}

	md5Hash := utils.CalculateDataMD5(fileData)
	ext := strings.ToLower(filepath.Ext(filename))
	imageFilename := md5Hash + ext
	imageFilePath := filepath.Join(h.uploadsDir, imageFilename)

	if err := os.WriteFile(imageFilePath, fileData, 0644); err != nil {
		return nil, fmt.Errorf("failed to save image: %w", err)
	}

	slog.Info("Image saved", "filename", imageFilename)

	width, height, err := getImageDimensions(imageFilePath)
	if err != nil {
		slog.Warn("Failed to get image dimensions", "error", err)
		width, height = 0, 0
	}

	return &ImageProcessResult{
		ImageFilename: imageFilename,
		ImageFilePath: imageFilePath,
		Width:         width,
		Height:        height,
	}, nil
}

func (h *Handler) processImageURL(ctx context.Context, imageURL string) (*ImageProcessResult, error) {
	imageData, err := h.fetcher.Fetch(ctx, imageURL)
	if err != nil {
		return nil, err
	}

	filename := path.Base(strings.SplitN(imageURL, "?", 2)[0])
	if filename == "" || filename == "." || filename == "/" {
		filename = uuid.NewString() + ".jpg"
	}

	result, err := h.processImageFile(imageData, filename)
	if err != nil {
		return nil, err
	}
	result.SourceURL = imageURL
	return result, nil
}

func getImageDimensions(imagePath string) (int, int, error) {
	file, err := os.Open(imagePath)
	if err != nil {
		return 0, 0, err
	}
	defer file.Close()

	img, _, err := image.DecodeConfig(file)
	if err != nil {
		return 0, 0, err
	}

	return img.Width, img.Height, nil
}
