package recognition

import (
	"context"
	"image"
)

// DefaultLanguage is the Tesseract code of the English language model
const DefaultLanguage = "eng"

// Progress is an advisory progress report from an engine
type Progress struct {
	Status   string  `json:"status"`
	Progress float64 `json:"progress"` // 0 to 1
}

// ProgressFunc receives progress reports; it may be called any number of times
type ProgressFunc func(Progress)

// Engine turns an image into text
type Engine interface {
	// Recognize returns the text found in img using the given language model
	Recognize(ctx context.Context, img image.Image, language string, progress ProgressFunc) (string, error)
	// Close closes the engine and releases resources
	Close() error
}
