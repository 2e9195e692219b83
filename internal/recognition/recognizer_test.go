package recognition

import (
	"context"
	"errors"
	"image"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

// mockEngine is a mock implementation of Engine
type mockEngine struct {
	text      string
	err       error
	languages []string
	reports   int
}

func (m *mockEngine) Recognize(ctx context.Context, img image.Image, language string, progress ProgressFunc) (string, error) {
	m.languages = append(m.languages, language)
	for i := 0; i < 3; i++ {
		progress(Progress{Status: "recognizing text", Progress: float64(i) / 2})
		m.reports++
	}
	if m.err != nil {
		return "", m.err
	}
	return m.text, nil
}

func (m *mockEngine) Close() error {
	return nil
}

var _ = Describe("Recognizer", func() {
	var engine *mockEngine

	BeforeEach(func() {
		engine = &mockEngine{text: "Hello\nWorld\n"}
	})

	It("defaults to the English model", func() {
		r := NewRecognizer(engine, "")
		Expect(r.Language()).To(Equal("eng"))
		_, err := r.Recognize(context.Background(), testImage(2, 2))
		Expect(err).NotTo(HaveOccurred())
		Expect(engine.languages).To(Equal([]string{"eng"}))
	})

	It("passes a configured language through", func() {
		r := NewRecognizer(engine, "deu")
		_, err := r.Recognize(context.Background(), testImage(2, 2))
		Expect(err).NotTo(HaveOccurred())
		Expect(engine.languages).To(Equal([]string{"deu"}))
	})

	It("returns the engine text unchanged", func() {
		text, err := NewRecognizer(engine, "").Recognize(context.Background(), testImage(2, 2))
		Expect(err).NotTo(HaveOccurred())
		Expect(text).To(Equal("Hello\nWorld\n"))
	})

	It("accepts any number of progress reports", func() {
		_, err := NewRecognizer(engine, "").Recognize(context.Background(), testImage(2, 2))
		Expect(err).NotTo(HaveOccurred())
		Expect(engine.reports).To(Equal(3))
	})

	It("wraps engine failures", func() {
		engine.err = errors.New("engine crashed")
		_, err := NewRecognizer(engine, "").Recognize(context.Background(), testImage(2, 2))
		Expect(err).To(MatchError(ContainSubstring("engine crashed")))
	})
})
