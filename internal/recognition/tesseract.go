//go:build tesseract

package recognition

import (
	"context"
	"fmt"
	"image"

	"github.com/otiai10/gosseract/v2"
)

// DefaultEngine is the engine selected when none is configured
const DefaultEngine = "tesseract"

// Tesseract recognizes text locally with libtesseract.
// Each call uses its own client, so concurrent calls are safe.
type Tesseract struct {
	tessdataPrefix string
}

// NewTesseract creates a Tesseract engine. tessdataPrefix may be empty to use
// the library's default training data location.
func NewTesseract(tessdataPrefix string) (*Tesseract, error) {
	return &Tesseract{tessdataPrefix: tessdataPrefix}, nil
}

// Recognize runs Tesseract on img
func (t *Tesseract) Recognize(ctx context.Context, img image.Image, language string, progress ProgressFunc) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	report(progress, "initializing tesseract", 0)

	client := gosseract.NewClient()
	defer client.Close()

	if t.tessdataPrefix != "" {
		client.SetTessdataPrefix(t.tessdataPrefix)
	}
	if err := client.SetLanguage(language); err != nil {
		return "", fmt.Errorf("setting language: %w", err)
	}

	data, err := encodePNG(img)
	if err != nil {
		return "", err
	}
	if err := client.SetImageFromBytes(data); err != nil {
		return "", fmt.Errorf("setting image: %w", err)
	}
	report(progress, "recognizing text", 0.5)

	text, err := client.Text()
	if err != nil {
		return "", fmt.Errorf("tesseract: %w", err)
	}
	report(progress, "recognizing text", 1)

	return text, nil
}

// Close is a no-op; clients are released after every call
func (t *Tesseract) Close() error {
	return nil
}
