package photos

import (
	"bytes"
	"fmt"
	"mime"
	"net/http"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
)

// Preview is a web-ready rendition of a photo.
type Preview struct {
	Data        []byte
	ContentType string
}

// Renderer produces downscaled JPEG previews for the organizer UI.
type Renderer struct {
	maxDim  int
	quality int
}

// NewRenderer constructs a Renderer. Dimension and quality fall back to
// sensible web defaults when unset.
func NewRenderer(maxDim, quality int) *Renderer {
	if maxDim <= 0 {
		maxDim = 800
	}
	if quality <= 0 {
		quality = 75
	}
	return &Renderer{maxDim: maxDim, quality: quality}
}

// Render loads the photo and re-encodes it as a JPEG no larger than the
// configured dimension. Formats the decoder does not understand are
// returned verbatim with their sniffed content type, leaving conversion
// to the browser.
func (r *Renderer) Render(path string) (Preview, error) {
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return rawPreview(path)
	}

	img = imaging.Fit(img, r.maxDim, r.maxDim, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(r.quality)); err != nil {
		return Preview{}, fmt.Errorf("encode preview: %w", err)
	}
	return Preview{Data: buf.Bytes(), ContentType: "image/jpeg"}, nil
}

func rawPreview(path string) (Preview, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Preview{}, err
	}
	contentType := mime.TypeByExtension(filepath.Ext(path))
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}
	return Preview{Data: data, ContentType: contentType}, nil
}
