package recognition

import "errors"

// ErrTesseractNotEnabled is returned when the binary was built without the
// "tesseract" build tag
var ErrTesseractNotEnabled = errors.New("tesseract support not enabled; rebuild with -tags tesseract")

// report calls progress if it is set
func report(progress ProgressFunc, status string, fraction float64) {
	if progress != nil {
		progress(Progress{Status: status, Progress: fraction})
	}
}
