package recognition

import (
	"context"
	"fmt"
	"image"
	"log/slog"
)

// Recognizer invokes an engine with a fixed language and logs its progress
type Recognizer struct {
	engine   Engine
	language string
}

// NewRecognizer creates a Recognizer. An empty language selects DefaultLanguage.
func NewRecognizer(engine Engine, language string) *Recognizer {
	if language == "" {
		language = DefaultLanguage
	}
	return &Recognizer{
		engine:   engine,
		language: language,
	}
}

// Language returns the language model passed to the engine
func (r *Recognizer) Language() string {
	return r.language
}

// Recognize runs the engine on a decoded image
func (r *Recognizer) Recognize(ctx context.Context, img image.Image) (string, error) {
	text, err := r.engine.Recognize(ctx, img, r.language, logProgress)
	if err != nil {
		return "", fmt.Errorf("recognizing text: %w", err)
	}
	return text, nil
}

func logProgress(p Progress) {
	slog.Debug("Recognition progress", "status", p.Status, "progress", p.Progress)
}
