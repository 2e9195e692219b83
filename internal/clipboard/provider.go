package clipboard

import (
	"context"
	"errors"

	"github.com/zombor/imgtext/internal/capture"
)

var (
	// ErrUnavailable is returned when no clipboard capability can serve a request
	ErrUnavailable = errors.New("clipboard unavailable")

	// ErrNoImage is returned when the clipboard holds no usable image
	ErrNoImage = errors.New("no image found in clipboard")
)

// ImageProvider reads an image from a clipboard
type ImageProvider interface {
	// Available reports whether the capability can be used at all
	Available() bool
	// ReadImage returns the clipboard image, or ErrNoImage
	ReadImage(ctx context.Context) (capture.Image, error)
}

// TextWriter writes text to a clipboard
type TextWriter interface {
	// Available reports whether the capability can be used at all
	Available() bool
	// WriteText replaces the clipboard contents with text
	WriteText(ctx context.Context, text string) error
}
