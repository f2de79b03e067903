package bmp

import (
	"image"
	"image/color"
	"image/draw"
	"io"

	"github.com/ericpauley/go-quantize/quantize"
	xbmp "golang.org/x/image/bmp"
)

// MaxColors is the largest palette Convert will reduce an image to.
const MaxColors = 256

// Convert writes the Image m to w as an uncompressed 24-bit BMP suitable for
// use with this package. Any transparency is flattened onto black. If colors
// is between 2 and MaxColors the image is first reduced to a palette of at
// most that many colors using median cut quantization.
func Convert(w io.Writer, m image.Image, colors int) error {
	b := m.Bounds()
	r := image.Rect(0, 0, b.Dx(), b.Dy())
	if r.Empty() {
		return errBadSize
	}

	// An opaque *image.RGBA is always encoded with 24 bits per pixel
	rgba := image.NewRGBA(r)
	draw.Draw(rgba, r, image.NewUniform(color.Black), image.Point{}, draw.Src)
	draw.Draw(rgba, r, m, b.Min, draw.Over)

	if colors > 1 && colors <= MaxColors {
		q := quantize.MedianCutQuantizer{}
		pm := image.NewPaletted(r, q.Quantize(make(color.Palette, 0, colors), rgba))
		draw.Draw(pm, r, rgba, image.Point{}, draw.Src)
		draw.Draw(rgba, r, pm, image.Point{}, draw.Src)

		// Premultiplied, so forcing alpha flattens onto black
		for i := 3; i < len(rgba.Pix); i += 4 {
			rgba.Pix[i] = 0xff
		}
	}

	return xbmp.Encode(w, rgba)
}
