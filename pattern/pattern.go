/*
Package pattern regenerates the pixel data of an uncompressed 24-bit BMP.

Every pixel is computed from its coordinates by one of a fixed set of
patterns, or by user supplied expressions, and then passed through a color
scheme. The header and any bytes outside the pixel region are copied
verbatim so the result is always the same length as the input. Unknown
pattern names leave pixels as they are and unknown color schemes are treated
as the identity; use ParsePattern and ParseColorScheme for strict checking.
*/
package pattern

import (
	"fmt"
	"math"
	"math/rand"
	"sort"

	"github.com/bodgit/bmpsteg/bmp"
)

// Pattern selects how pixel colors are generated.
type Pattern string

// Patterns understood by Synthesize. Any other value copies the original
// pixels.
const (
	Gradient Pattern = "gradient"
	Waves    Pattern = "waves"
	Noise    Pattern = "noise"
	Spiral   Pattern = "spiral"
	Stripes  Pattern = "stripes"
	Mosaic   Pattern = "mosaic"
	Original Pattern = "original"
)

const (
	waveLength  = 50
	spiralPitch = 20
	stripeWidth = 20
	blockSize   = 20
	blockSeed   = 12345
)

var patterns = map[Pattern]struct{}{
	Gradient: {},
	Waves:    {},
	Noise:    {},
	Spiral:   {},
	Stripes:  {},
	Mosaic:   {},
	Original: {},
}

// UnknownPatternError is returned by ParsePattern for a name that isn't a
// known pattern.
type UnknownPatternError string

func (e UnknownPatternError) Error() string {
	return fmt.Sprintf("pattern: unknown pattern %q", string(e))
}

// ParsePattern returns the named Pattern or an error if it isn't one of the
// known patterns.
func ParsePattern(s string) (Pattern, error) {
	if _, ok := patterns[Pattern(s)]; !ok {
		return "", UnknownPatternError(s)
	}
	return Pattern(s), nil
}

// Patterns returns the names of all known patterns, sorted.
func Patterns() []string {
	names := make([]string, 0, len(patterns))
	for p := range patterns {
		names = append(names, string(p))
	}
	sort.Strings(names)
	return names
}

// wave maps an angle to the 1..255 range
func wave(f func(float64) float64, v float64) float64 {
	return f(v)*127 + 128
}

func (p Pattern) painter(src []byte, g bmp.Geometry) paintFunc {
	w, h := float64(g.Width), float64(g.Height)

	switch p {
	case Gradient:
		return func(x, y int) (float64, float64, float64, error) {
			fx, fy := float64(x), float64(y)
			return fx / w * 255, fy / h * 255, (fx + fy) / (w + h) * 255, nil
		}
	case Waves:
		return func(x, y int) (float64, float64, float64, error) {
			fx, fy := float64(x), float64(y)
			return wave(math.Sin, fx/waveLength), wave(math.Sin, fy/waveLength), wave(math.Sin, (fx+fy)/waveLength), nil
		}
	case Noise:
		return func(int, int) (float64, float64, float64, error) {
			return rand.Float64() * 255, rand.Float64() * 255, rand.Float64() * 255, nil
		}
	case Spiral:
		cx, cy := w/2, h/2
		return func(x, y int) (float64, float64, float64, error) {
			dx, dy := float64(x)-cx, float64(y)-cy
			d := math.Hypot(dx, dy) / spiralPitch
			a := math.Atan2(dy, dx)
			return wave(math.Sin, d+a), wave(math.Cos, d+a), wave(math.Sin, d-a), nil
		}
	case Stripes:
		return func(_, y int) (float64, float64, float64, error) {
			band := y / stripeWidth
			parity := float64(band % 2)
			var b float64
			if band%3 == 2 {
				b = 255
			}
			return parity * 255, (1 - parity) * 255, b, nil
		}
	case Mosaic:
		return func(x, y int) (float64, float64, float64, error) {
			seed := float64((x/blockSize*1000+y/blockSize)*blockSeed) * 0.1
			return wave(math.Sin, seed), wave(math.Cos, seed+1), wave(math.Sin, seed+2), nil
		}
	default:
		return func(x, y int) (float64, float64, float64, error) {
			i := g.PixelOffset(x, y)
			return float64(src[i+2]), float64(src[i+1]), float64(src[i]), nil
		}
	}
}
