package detection

import (
	"bytes"
	"errors"
	"fmt"
	"image"

	// Decoders for the upload formats we accept.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// ImageRecord holds a decode-validated upload. It is immutable after
// construction and discarded once the request completes.
type ImageRecord struct {
	data     []byte
	filename string
	format   string
	width    int
	height   int
}

// NewImageRecord validates that data decodes as an image and captures its
// format and dimensions. Only the header is decoded; pixel data is never
// inspected locally.
func NewImageRecord(data []byte, filename string) (ImageRecord, error) {
	if len(data) == 0 {
		return ImageRecord{}, errors.New("empty image payload")
	}
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return ImageRecord{}, fmt.Errorf("decode image: %w", err)
	}
	if filename == "" {
		filename = "unknown"
	}
	return ImageRecord{
		data:     data,
		filename: filename,
		format:   format,
		width:    cfg.Width,
		height:   cfg.Height,
	}, nil
}

// Data returns the raw image bytes.
func (r ImageRecord) Data() []byte {
	return r.data
}

// Filename returns the original upload filename.
func (r ImageRecord) Filename() string {
	return r.filename
}

// Format returns the detected image format, e.g. "png" or "jpeg".
func (r ImageRecord) Format() string {
	return r.format
}

// MIMEType returns the content type derived from the detected format.
func (r ImageRecord) MIMEType() string {
	return "image/" + r.format
}

// Width returns the image width in pixels.
func (r ImageRecord) Width() int {
	return r.width
}

// Height returns the image height in pixels.
func (r ImageRecord) Height() int {
	return r.height
}
