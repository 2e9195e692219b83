package clipboard

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"sync"

	sysclip "golang.design/x/clipboard"

	"github.com/zombor/imgtext/internal/capture"
)

// System is the native clipboard of the host. It serves both reading images
// and writing text once the platform clipboard initializes.
type System struct {
	initFn  func() error
	readFn  func(sysclip.Format) []byte
	writeFn func(sysclip.Format, []byte) <-chan struct{}

	once    sync.Once
	initErr error
	mu      sync.Mutex
}

// NewSystem creates a System backed by golang.design/x/clipboard.
// Initialization is deferred to the first capability probe.
func NewSystem() *System {
	return &System{
		initFn:  sysclip.Init,
		readFn:  sysclip.Read,
		writeFn: sysclip.Write,
	}
}

// Available reports whether the platform clipboard initialized
func (s *System) Available() bool {
	s.once.Do(func() {
		s.initErr = s.initFn()
		if s.initErr != nil {
			slog.Info("System clipboard unavailable", "error", s.initErr)
		}
	})
	return s.initErr == nil
}

// ReadImage returns the clipboard image as a PNG
func (s *System) ReadImage(ctx context.Context) (capture.Image, error) {
	if !s.Available() {
		return capture.Image{}, ErrUnavailable
	}
	if err := ctx.Err(); err != nil {
		return capture.Image{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// The platform hands images over PNG-encoded whatever their origin
	data := s.readFn(sysclip.FmtImage)
	if len(data) == 0 {
		return capture.Image{}, ErrNoImage
	}
	return capture.Pasted(data, "image/png"), nil
}

// WriteText replaces the clipboard text and confirms it by reading it back
func (s *System) WriteText(ctx context.Context, text string) error {
	if !s.Available() {
		return ErrUnavailable
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.writeFn(sysclip.FmtText, []byte(text))
	if got := s.readFn(sysclip.FmtText); !bytes.Equal(got, []byte(text)) {
		return errors.New("clipboard write not confirmed")
	}
	return nil
}
