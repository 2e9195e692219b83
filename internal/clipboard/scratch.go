package clipboard

import (
	"fmt"
	"os"
	"path/filepath"
)

// Scratch is a directory for short-lived staging files
type Scratch struct {
	basePath string
}

// NewScratch creates a Scratch rooted at basePath, creating it if needed
func NewScratch(basePath string) (*Scratch, error) {
	if err := os.MkdirAll(basePath, 0700); err != nil {
		return nil, fmt.Errorf("creating scratch directory: %w", err)
	}

	return &Scratch{
		basePath: basePath,
	}, nil
}

// Stage writes data to a new uniquely named file and returns its name
func (s *Scratch) Stage(pattern string, data []byte) (string, error) {
	f, err := os.CreateTemp(s.basePath, pattern)
	if err != nil {
		return "", fmt.Errorf("creating staged file: %w", err)
	}
	name := filepath.Base(f.Name())

	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", fmt.Errorf("writing staged file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("closing staged file: %w", err)
	}
	return name, nil
}

// Get reads a staged file
func (s *Scratch) Get(name string) ([]byte, error) {
	data, err := os.ReadFile(filepath.Join(s.basePath, name))
	if err != nil {
		return nil, fmt.Errorf("reading staged file: %w", err)
	}
	return data, nil
}

// Delete removes a staged file
func (s *Scratch) Delete(name string) error {
	if err := os.Remove(filepath.Join(s.basePath, name)); err != nil {
		return fmt.Errorf("deleting staged file: %w", err)
	}
	return nil
}
