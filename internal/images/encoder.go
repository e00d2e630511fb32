package images

import (
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
)

// ErrInputMissing is returned when the label image cannot be read
var ErrInputMissing = errors.New("image input missing")

// DefaultMIMEType is used when the content type cannot be sniffed
const DefaultMIMEType = "image/jpeg"

// Encoded is a base64 encoded label image
type Encoded struct {
	Data     string
	MIMEType string
}

// DataURI returns the image as a data: URI
func (e Encoded) DataURI() string {
	return "data:" + e.MIMEType + ";base64," + e.Data
}

// Decode returns the raw image bytes
func (e Encoded) Decode() ([]byte, error) {
	return base64.StdEncoding.DecodeString(e.Data)
}

// Encode reads the image at path and base64 encodes it.
// The whole file is loaded into memory.
func Encode(path string) (Encoded, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Encoded{}, fmt.Errorf("%w: file %q not found", ErrInputMissing, path)
		}
		return Encoded{}, fmt.Errorf("%w: failed to read %q: %v", ErrInputMissing, path, err)
	}
	return EncodeBytes(data), nil
}

// EncodeBytes encodes image bytes that are already in memory
func EncodeBytes(data []byte) Encoded {
	return Encoded{
		Data:     base64.StdEncoding.EncodeToString(data),
		MIMEType: DetectMIMEType(data),
	}
}

// DetectMIMEType sniffs the image type, falling back to DefaultMIMEType
func DetectMIMEType(data []byte) string {
	mimeType := http.DetectContentType(data)
	if !strings.HasPrefix(mimeType, "image/") {
		return DefaultMIMEType
	}
	return mimeType
}
