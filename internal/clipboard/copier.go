package clipboard

import (
	"context"
	"log/slog"
)

// Copier writes text to the native clipboard when it is available and to the
// legacy copy command otherwise
type Copier struct {
	native TextWriter
	legacy TextWriter
}

// NewCopier creates a Copier. Either writer may be a nil interface; a typed
// nil pointer is not checked.
func NewCopier(native TextWriter, legacy TextWriter) *Copier {
	return &Copier{
		native: native,
		legacy: legacy,
	}
}

// Copy writes text once. A failed native write is not retried.
func (c *Copier) Copy(ctx context.Context, text string) error {
	if c.native != nil && c.native.Available() {
		return c.native.WriteText(ctx, text)
	}
	if c.legacy != nil && c.legacy.Available() {
		slog.Debug("Native clipboard unavailable, using legacy copy")
		return c.legacy.WriteText(ctx, text)
	}
	return ErrUnavailable
}
