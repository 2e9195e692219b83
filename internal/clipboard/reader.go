package clipboard

import (
	"context"
	"log/slog"

	"github.com/zombor/imgtext/internal/capture"
)

// Reader acquires a pasted image from the native clipboard or, failing that,
// from the HTML fragment staged by the browser
type Reader struct {
	native ImageProvider
}

// NewReader creates a Reader. Pass a nil interface, not a nil pointer, when
// the host has no clipboard.
func NewReader(native ImageProvider) *Reader {
	return &Reader{native: native}
}

// ReadImage returns the pasted image. It returns ErrNoImage when neither the
// native clipboard nor the fragment holds one.
func (r *Reader) ReadImage(ctx context.Context, fragment string) (capture.Image, error) {
	if r.native != nil && r.native.Available() {
		img, err := r.native.ReadImage(ctx)
		if err == nil {
			return img, nil
		}
		slog.Debug("Native clipboard read failed, using pasted fragment", "error", err)
	}
	return FromHTML(fragment)
}
