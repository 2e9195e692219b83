package capture

import "errors"

// PastedName is the file name given to every image acquired from the clipboard
const PastedName = "pasted-image.png"

// ErrInvalidFileType is returned when a dropped file is not an image
var ErrInvalidFileType = errors.New("invalid file type")

// Image is an acquired image waiting for recognition
type Image struct {
	Name     string
	MIMEType string
	Data     []byte
}

// Pasted wraps clipboard image bytes as an Image
func Pasted(data []byte, mimeType string) Image {
	return Image{
		Name:     PastedName,
		MIMEType: mimeType,
		Data:     data,
	}
}
