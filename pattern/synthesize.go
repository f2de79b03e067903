package pattern

import (
	"math"

	"github.com/bodgit/bmpsteg/bmp"
)

// paintFunc returns the red, green and blue values of the pixel at column x
// of stored row y, each nominally in the range [0, 256)
type paintFunc func(x, y int) (r, g, b float64, err error)

// channel floors v to a byte, clamping anything out of range
func channel(v float64) byte {
	v = math.Floor(v)
	switch {
	case v < 0 || math.IsNaN(v):
		return 0
	case v > 255:
		return 255
	default:
		return byte(v)
	}
}

func render(src []byte, g bmp.Geometry, paint paintFunc, cs ColorScheme) ([]byte, error) {
	dst := make([]byte, len(src))
	copy(dst, src)

	for y := 0; y < g.Height; y++ {
		i := g.PixelOffset(0, y)
		for x := 0; x < g.Width; x++ {
			r, gr, b, err := paint(x, y)
			if err != nil {
				return nil, err
			}
			r, gr, b = cs.apply(r, gr, b)

			// Stored as B, G, R
			dst[i+0] = channel(b)
			dst[i+1] = channel(gr)
			dst[i+2] = channel(r)
			i += bmp.BytesPerPixel
		}
		for p := 0; p < g.RowPadding; p++ {
			dst[i+p] = 0
		}
	}

	return dst, nil
}

// Synthesize returns a copy of the BMP in b with the pixel data regenerated
// using pattern p and color scheme cs. The input is not modified.
func Synthesize(b []byte, p Pattern, cs ColorScheme) ([]byte, error) {
	g, err := bmp.Parse(b)
	if err != nil {
		return nil, err
	}
	return render(b, g, p.painter(b, g), cs)
}
