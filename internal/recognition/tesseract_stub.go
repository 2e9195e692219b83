//go:build !tesseract

package recognition

import (
	"context"
	"image"
)

// DefaultEngine is the engine selected when none is configured. Without
// libtesseract a local Ollama server is the default.
const DefaultEngine = "ollama"

// Tesseract is the stub used when the "tesseract" build tag is not set.
// Rebuild with -tags tesseract (requires libtesseract and cgo) to enable it.
type Tesseract struct{}

// NewTesseract returns ErrTesseractNotEnabled
func NewTesseract(tessdataPrefix string) (*Tesseract, error) {
	return nil, ErrTesseractNotEnabled
}

// Recognize returns ErrTesseractNotEnabled
func (t *Tesseract) Recognize(ctx context.Context, img image.Image, language string, progress ProgressFunc) (string, error) {
	return "", ErrTesseractNotEnabled
}

// Close is a no-op for the stub engine
func (t *Tesseract) Close() error {
	return nil
}
