package session

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log/slog"
	"sync"

	"github.com/zombor/imgtext/internal/capture"
	"github.com/zombor/imgtext/internal/clipboard"
	"github.com/zombor/imgtext/internal/recognition"
)

// Notices shown to the user
const (
	MsgInvalidFileType   = "Invalid file type. Please drop an image file."
	MsgNoImage           = "No image found in clipboard."
	MsgPasteUnreadable   = "The pasted image could not be read."
	MsgBusy              = "Text recognition is already in progress."
	MsgRecognitionFailed = "Text recognition failed."
	MsgCopied            = "Text copied to clipboard!"
	MsgCopyFailed        = "Failed to copy text to clipboard."
)

var (
	// ErrBusy is returned when a recognition is started while another one runs
	ErrBusy = errors.New("text recognition already in progress")

	// ErrRecognitionFailed wraps decode and engine failures
	ErrRecognitionFailed = errors.New("text recognition failed")
)

// Recognizer turns a decoded image into text
type Recognizer interface {
	Recognize(ctx context.Context, img image.Image) (string, error)
}

// ImageReader acquires a pasted image
type ImageReader interface {
	ReadImage(ctx context.Context, fragment string) (capture.Image, error)
}

// TextCopier copies text to the clipboard
type TextCopier interface {
	Copy(ctx context.Context, text string) error
}

// Deps are the collaborators shared by every session
type Deps struct {
	Recognizer Recognizer
	Reader     ImageReader
	Copier     TextCopier
}

// Session is the UI context of one page: it owns the recognized text and
// drives the page's view in response to user actions
type Session struct {
	id   string
	view View
	deps Deps

	mu       sync.Mutex
	inFlight bool
	text     string
}

// New creates a Session rendering into view
func New(id string, view View, deps Deps) *Session {
	return &Session{
		id:   id,
		view: view,
		deps: deps,
	}
}

// ID returns the session ID
func (s *Session) ID() string {
	return s.id
}

// Text returns the text of the most recently completed recognition
func (s *Session) Text() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.text
}

// InFlight reports whether a recognition is running
func (s *Session) InFlight() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inFlight
}

// Convert recognizes the first file chosen with the file picker.
// Nothing happens when no file was chosen.
func (s *Session) Convert(ctx context.Context, files []capture.Image) error {
	file, ok := capture.First(files)
	if !ok {
		return nil
	}
	return s.recognize(ctx, file)
}

// DragOver marks the drop zone active
func (s *Session) DragOver() {
	s.view.SetDragging(true)
}

// Drop recognizes the first dropped file if it is an image
func (s *Session) Drop(ctx context.Context, files []capture.Image) error {
	s.view.SetDragging(false)

	file, ok, err := capture.AcceptDrop(files)
	if err != nil {
		s.view.Alert(MsgInvalidFileType)
		return err
	}
	if !ok {
		return nil
	}
	return s.recognize(ctx, file)
}

// Paste recognizes the image on the clipboard. fragment is the HTML the
// browser staged in its paste container, used when the native clipboard has
// no image.
func (s *Session) Paste(ctx context.Context, fragment string) error {
	img, err := s.deps.Reader.ReadImage(ctx, fragment)
	if err != nil {
		if errors.Is(err, clipboard.ErrNoImage) {
			s.view.Alert(MsgNoImage)
		} else {
			slog.Warn("Failed to read pasted image", "session", s.id, "error", err)
			s.view.Alert(MsgPasteUnreadable)
		}
		return err
	}
	return s.recognize(ctx, img)
}

// Edit replaces the text with the user's edits to the output
func (s *Session) Edit(text string) {
	s.mu.Lock()
	s.text = text
	s.mu.Unlock()
	s.view.SetText(text)
}

// Copy copies the current text to the clipboard
func (s *Session) Copy(ctx context.Context) error {
	if err := s.deps.Copier.Copy(ctx, s.Text()); err != nil {
		slog.Error("Error copying text to clipboard", "session", s.id, "error", err)
		s.view.Alert(MsgCopyFailed)
		return fmt.Errorf("copying text: %w", err)
	}
	s.view.Alert(MsgCopied)
	return nil
}

// recognize decodes file, runs the recognizer and publishes the text.
// Only one recognition runs per session at a time.
func (s *Session) recognize(ctx context.Context, file capture.Image) error {
	if !s.claim() {
		s.view.Alert(MsgBusy)
		return ErrBusy
	}
	defer s.release()

	img, err := recognition.Decode(file.Data, file.MIMEType)
	if err != nil {
		slog.Error("Failed to decode image",
			"session", s.id,
			"filename", file.Name,
			"content_type", file.MIMEType,
			"file_size", len(file.Data),
			"error", err,
		)
		s.view.Alert(MsgRecognitionFailed)
		return fmt.Errorf("%w: decoding %s: %w", ErrRecognitionFailed, file.Name, err)
	}

	text, err := s.invoke(ctx, img)
	if err != nil {
		slog.Error("Failed to recognize text", "session", s.id, "filename", file.Name, "error", err)
		s.view.Alert(MsgRecognitionFailed)
		return fmt.Errorf("%w: %w", ErrRecognitionFailed, err)
	}

	s.mu.Lock()
	s.text = text
	s.mu.Unlock()
	s.view.SetText(text)

	slog.Info("Recognized text", "session", s.id, "filename", file.Name, "characters", len(text))
	return nil
}

// invoke runs the recognizer with the busy indicator shown
func (s *Session) invoke(ctx context.Context, img image.Image) (string, error) {
	s.view.SetBusy(true)
	defer s.view.SetBusy(false)
	return s.deps.Recognizer.Recognize(ctx, img)
}

func (s *Session) claim() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.inFlight {
		return false
	}
	s.inFlight = true
	return true
}

func (s *Session) release() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inFlight = false
}
