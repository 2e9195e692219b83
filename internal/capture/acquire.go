package capture

import (
	"fmt"
	"path/filepath"
	"strings"
)

// First returns the first selected file, if any.
// Any file type is accepted; decoding decides later whether it is usable.
func First(files []Image) (Image, bool) {
	if len(files) == 0 {
		return Image{}, false
	}
	return files[0], true
}

// AcceptDrop returns the first dropped file when its declared type is an image.
// An empty drop yields no image and no error.
func AcceptDrop(files []Image) (Image, bool, error) {
	file, ok := First(files)
	if !ok {
		return Image{}, false, nil
	}
	if !strings.HasPrefix(file.MIMEType, "image/") {
		return Image{}, false, fmt.Errorf("%w: %q", ErrInvalidFileType, file.MIMEType)
	}
	return file, true, nil
}

// ContentType normalizes a declared content type, falling back to the file
// extension when nothing was declared
func ContentType(filename string, declared string) string {
	contentType := strings.ToLower(strings.TrimSpace(declared))
	if contentType != "" {
		// Drop parameters such as "; charset=binary"
		if i := strings.Index(contentType, ";"); i >= 0 {
			contentType = strings.TrimSpace(contentType[:i])
		}
		return contentType
	}

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".gif":
		return "image/gif"
	case ".pdf":
		return "application/pdf"
	case ".heic":
		return "image/heic"
	case ".heif":
		return "image/heif"
	default:
		return "application/octet-stream"
	}
}
