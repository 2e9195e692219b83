package clipboard

import (
	"context"
	"fmt"
	"log/slog"

	cmdclip "github.com/atotto/clipboard"
)

// Legacy copies text through the platform copy command (xclip, xsel,
// wl-copy, pbcopy or clip). The text is staged in a scratch file first and the
// staged contents are what gets copied; the file is removed afterwards
// whatever the outcome.
type Legacy struct {
	scratch     *Scratch
	copyFn      func(string) error
	unsupported bool
}

// NewLegacy creates a Legacy writer staging through scratch
func NewLegacy(scratch *Scratch) *Legacy {
	return NewLegacyWithCopier(scratch, cmdclip.WriteAll, cmdclip.Unsupported)
}

// NewLegacyWithCopier creates a Legacy writer with a custom copy command for testing
func NewLegacyWithCopier(scratch *Scratch, copyFn func(string) error, unsupported bool) *Legacy {
	return &Legacy{
		scratch:     scratch,
		copyFn:      copyFn,
		unsupported: unsupported,
	}
}

// Available reports whether a copy command was found on this host
func (l *Legacy) Available() bool {
	return !l.unsupported
}

// WriteText copies text via the staged file
func (l *Legacy) WriteText(ctx context.Context, text string) error {
	if !l.Available() {
		return ErrUnavailable
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	name, err := l.scratch.Stage("copy-*.txt", []byte(text))
	if err != nil {
		return err
	}
	defer func() {
		if err := l.scratch.Delete(name); err != nil {
			slog.Warn("Failed to remove staged copy", "name", name, "error", err)
		}
	}()

	selected, err := l.scratch.Get(name)
	if err != nil {
		return err
	}

	if err := l.copyFn(string(selected)); err != nil {
		return fmt.Errorf("running copy command: %w", err)
	}
	return nil
}
