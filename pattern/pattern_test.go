package pattern

import (
	"bytes"
	"errors"
	"testing"

	"github.com/bodgit/bmpsteg/bmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	xbmp "golang.org/x/image/bmp"
)

// testBMP returns a BMP with every pixel byte set to a distinct value and
// zero padding
func testBMP(t *testing.T, width, height int) ([]byte, bmp.Geometry) {
	b, err := bmp.New(width, height)
	require.Nil(t, err)

	g, err := bmp.Parse(b)
	require.Nil(t, err)

	for y := 0; y < g.Height; y++ {
		for i := 0; i < g.RowStride; i++ {
			b[g.PixelOffset(0, y)+i] = byte(y*g.RowStride + i + 1)
		}
	}
	return b, g
}

func pixel(b []byte, g bmp.Geometry, x, y int) [3]byte {
	i := g.PixelOffset(x, y)
	return [3]byte{b[i+2], b[i+1], b[i]} // R, G, B
}

func TestSynthesize(t *testing.T) {
	for _, p := range append(Patterns(), "unknown", "") {
		for _, cs := range append(ColorSchemes(), "unknown") {
			t.Run(p+"/"+cs, func(t *testing.T) {
				b, g := testBMP(t, 5, 3)
				in := append([]byte(nil), b...)

				out, err := Synthesize(b, Pattern(p), ColorScheme(cs))
				require.Nil(t, err)

				assert.Equal(t, in, b, "input modified")
				assert.Len(t, out, len(b))
				assert.Equal(t, b[:g.Offset], out[:g.Offset])
				for y := 0; y < g.Height; y++ {
					i := g.PixelOffset(g.Width, y)
					assert.Equal(t, make([]byte, g.RowPadding), out[i:i+g.RowPadding])
				}

				m, err := xbmp.Decode(bytes.NewReader(out))
				require.Nil(t, err)
				assert.Equal(t, g.Width, m.Bounds().Dx())
				assert.Equal(t, g.Height, m.Bounds().Dy())
			})
		}
	}
}

func TestSynthesizeGradient(t *testing.T) {
	b, g := testBMP(t, 10, 10)

	out, err := Synthesize(b, Gradient, RGB)
	require.Nil(t, err)

	assert.Equal(t, [3]byte{0, 0, 0}, pixel(out, g, 0, 0))
	assert.Equal(t, [3]byte{127, 0, 63}, pixel(out, g, 5, 0))
	assert.Equal(t, [3]byte{229, 229, 229}, pixel(out, g, 9, 9))
}

func TestSynthesizeGrayscale(t *testing.T) {
	b, g := testBMP(t, 7, 9)

	for _, p := range []Pattern{Gradient, Spiral, Mosaic, Original} {
		out, err := Synthesize(b, p, Grayscale)
		require.Nil(t, err)

		for y := 0; y < g.Height; y++ {
			for x := 0; x < g.Width; x++ {
				c := pixel(out, g, x, y)
				assert.True(t, c[0] == c[1] && c[1] == c[2], "%s: pixel %d,%d is %v", p, x, y, c)
			}
		}
	}
}

func TestSynthesizeInverted(t *testing.T) {
	b, g := testBMP(t, 6, 4)

	once, err := Synthesize(b, Original, Inverted)
	require.Nil(t, err)
	assert.Equal(t, [3]byte{255 - 3, 255 - 2, 255 - 1}, pixel(once, g, 0, 0))

	twice, err := Synthesize(once, "not a pattern", Inverted)
	require.Nil(t, err)
	assert.Equal(t, b, twice)
}

func TestSynthesizePassThrough(t *testing.T) {
	b, _ := testBMP(t, 3, 3)

	out, err := Synthesize(b, "sparkles", "sepia")
	require.Nil(t, err)
	assert.Equal(t, b, out)
}

func TestSynthesizeStripes(t *testing.T) {
	b, g := testBMP(t, 2, 61)

	out, err := Synthesize(b, Stripes, RGB)
	require.Nil(t, err)

	assert.Equal(t, [3]byte{0, 255, 0}, pixel(out, g, 0, 0))
	assert.Equal(t, [3]byte{0, 255, 0}, pixel(out, g, 1, 19))
	assert.Equal(t, [3]byte{255, 0, 0}, pixel(out, g, 0, 20))
	assert.Equal(t, [3]byte{0, 255, 255}, pixel(out, g, 0, 40))
	assert.Equal(t, [3]byte{255, 0, 0}, pixel(out, g, 0, 60))
}

func TestSynthesizeMosaic(t *testing.T) {
	b, g := testBMP(t, 40, 21)

	out, err := Synthesize(b, Mosaic, RGB)
	require.Nil(t, err)

	assert.Equal(t, pixel(out, g, 0, 0), pixel(out, g, 19, 19))
	assert.Equal(t, pixel(out, g, 20, 0), pixel(out, g, 39, 19))
	assert.NotEqual(t, pixel(out, g, 0, 0), pixel(out, g, 20, 0))
	assert.NotEqual(t, pixel(out, g, 0, 0), pixel(out, g, 0, 20))
}

func TestSynthesizeSpiral(t *testing.T) {
	b, g := testBMP(t, 8, 8)

	out, err := Synthesize(b, Spiral, RGB)
	require.Nil(t, err)

	// At the center distance and angle are both zero
	assert.Equal(t, [3]byte{128, 255, 128}, pixel(out, g, 4, 4))
}

func TestSynthesizeWaves(t *testing.T) {
	b, g := testBMP(t, 4, 4)

	out, err := Synthesize(b, Waves, RGB)
	require.Nil(t, err)

	assert.Equal(t, [3]byte{128, 128, 128}, pixel(out, g, 0, 0))
	// sin(0.06)*127+128 = 135.6, sin(0.04)*127+128 = 133.08, sin(0.1)*127+128 = 140.68
	assert.Equal(t, [3]byte{135, 133, 140}, pixel(out, g, 3, 2))
}

func TestSynthesizeNoise(t *testing.T) {
	b, g := testBMP(t, 64, 64)

	out, err := Synthesize(b, Noise, RGB)
	require.Nil(t, err)

	colors := make(map[[3]byte]struct{})
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			c := pixel(out, g, x, y)
			for _, v := range c {
				assert.True(t, v < 255, "pixel %d,%d is %v", x, y, c)
			}
			colors[c] = struct{}{}
		}
	}
	assert.True(t, len(colors) > 1)
}

func TestSynthesizeErrors(t *testing.T) {
	b, _ := testBMP(t, 4, 4)

	offset := append([]byte(nil), b...)
	offset[10] = 0
	_, err := Synthesize(offset, Gradient, Inverted)
	assert.Equal(t, bmp.FormatError("bad pixel data offset"), err)

	_, err = Synthesize(b[:len(b)-1], Gradient, RGB)
	assert.Equal(t, bmp.FormatError("truncated pixel data"), err)

	b[28] = 8
	_, err = Synthesize(b, Gradient, RGB)
	var ue bmp.UnsupportedFormatError
	assert.True(t, errors.As(err, &ue))

	b[0] = 'X'
	_, err = Synthesize(b, Gradient, RGB)
	var fe bmp.FormatError
	assert.True(t, errors.As(err, &fe))
}

func TestParse(t *testing.T) {
	p, err := ParsePattern("waves")
	assert.Nil(t, err)
	assert.Equal(t, Waves, p)

	_, err = ParsePattern("plaid")
	assert.Equal(t, UnknownPatternError("plaid"), err)

	cs, err := ParseColorScheme("inverted")
	assert.Nil(t, err)
	assert.Equal(t, Inverted, cs)

	_, err = ParseColorScheme("")
	assert.Equal(t, UnknownColorSchemeError(""), err)
}

func bmpGeometry(t *testing.T, b []byte) bmp.Geometry {
	g, err := bmp.Parse(b)
	require.Nil(t, err)
	return g
}
