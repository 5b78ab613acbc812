// Package screenshot decodes a GraphNode's embedded screenshot and
// renders a small thumbnail for manifest/report output, grounded on the
// ancestor project's decode-resize-encode pipeline (processor.go's
// Process, generalized here from "shrink for seam carving" to "shrink
// for a human-readable report").
package screenshot

import (
	"bytes"
	"encoding/base64"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"

	"github.com/disintegration/imaging"
	"github.com/pkg/errors"
	_ "golang.org/x/image/bmp" // register bmp.Decode with image.Decode
)

// ThumbnailWidth is the fixed width a full-resolution capture is scaled
// down to before being embedded in a report.
const ThumbnailWidth = 240

// Decode decodes a base64-encoded screenshot (PNG, JPEG, GIF or BMP) as
// captured by a Describer.
func Decode(encoded string) (image.Image, error) {
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, errors.Wrap(err, "screenshot: decode base64")
	}
	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, errors.Wrap(err, "screenshot: decode image")
	}
	return img, nil
}

// Thumbnail resizes img to ThumbnailWidth, preserving aspect ratio.
func Thumbnail(img image.Image) image.Image {
	return imaging.Resize(img, ThumbnailWidth, 0, imaging.Lanczos)
}

// EncodeBase64 PNG-encodes img and returns it as a base64 string,
// suitable for embedding in a SessionData report.
func EncodeBase64(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", errors.Wrap(err, "screenshot: encode png")
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// ThumbnailBase64 is the Decode -> Thumbnail -> EncodeBase64 pipeline in
// one call, returning "" (not an error) when encoded is empty -- a
// Describer with no screenshot support simply omits the field.
func ThumbnailBase64(encoded string) (string, error) {
	if encoded == "" {
		return "", nil
	}
	img, err := Decode(encoded)
	if err != nil {
		return "", err
	}
	return EncodeBase64(Thumbnail(img))
}
