package clipboard

import (
	"encoding/base64"
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/net/html"

	"github.com/zombor/imgtext/internal/capture"
)

// dataURIPattern matches the only embedded images we accept from a paste
var dataURIPattern = regexp.MustCompile(`(?s)^data:image/(png|jpeg);base64,(.*)$`)

// FromHTML extracts the first embedded PNG or JPEG data URI image from a
// pasted HTML fragment
func FromHTML(fragment string) (capture.Image, error) {
	doc, err := html.Parse(strings.NewReader(fragment))
	if err != nil {
		return capture.Image{}, fmt.Errorf("parsing pasted fragment: %w", err)
	}

	match := findDataURI(doc)
	if match == nil {
		return capture.Image{}, ErrNoImage
	}

	payload := strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '\n', '\r', '\f':
			return -1
		}
		return r
	}, match[2])

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return capture.Image{}, fmt.Errorf("decoding pasted image: %w", err)
	}

	return capture.Pasted(data, "image/"+match[1]), nil
}

// findDataURI walks the tree in document order and returns the submatches of
// the first img src that is an accepted data URI
func findDataURI(n *html.Node) []string {
	if n.Type == html.ElementNode && n.Data == "img" {
		for _, attr := range n.Attr {
			if attr.Key != "src" {
				continue
			}
			if m := dataURIPattern.FindStringSubmatch(attr.Val); m != nil {
				return m
			}
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if m := findDataURI(c); m != nil {
			return m
		}
	}
	return nil
}
