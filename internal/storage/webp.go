package storage

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"

	"github.com/chai2010/webp"
	"golang.org/x/image/draw"
)

const (
	maxPhotoWidth = 800
	webpQuality   = 82
)

// EncodePhoto decodes an uploaded JPEG/PNG, scales it down to the site's
// display width when needed and re-encodes as WebP.
func EncodePhoto(r io.Reader) ([]byte, error) {
	src, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	bounds := src.Bounds()
	if bounds.Dx() > maxPhotoWidth {
		h := bounds.Dy() * maxPhotoWidth / bounds.Dx()
		dst := image.NewRGBA(image.Rect(0, 0, maxPhotoWidth, h))
		draw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, draw.Over, nil)
		src = dst
	}

	var buf bytes.Buffer
	if err := webp.Encode(&buf, src, &webp.Options{Quality: webpQuality}); err != nil {
		return nil, fmt.Errorf("encode webp: %w", err)
	}
	return buf.Bytes(), nil
}
