package pattern

import "fmt"

// ColorScheme is applied to every pixel after the pattern has been computed.
type ColorScheme string

// Color schemes understood by Synthesize. Any other value is treated as RGB.
const (
	RGB       ColorScheme = "rgb"
	Grayscale ColorScheme = "grayscale"
	Inverted  ColorScheme = "inverted"
)

// UnknownColorSchemeError is returned by ParseColorScheme for a name that
// isn't a known color scheme.
type UnknownColorSchemeError string

func (e UnknownColorSchemeError) Error() string {
	return fmt.Sprintf("pattern: unknown color scheme %q", string(e))
}

// ParseColorScheme returns the named ColorScheme or an error if it isn't one
// of the known schemes.
func ParseColorScheme(s string) (ColorScheme, error) {
	switch cs := ColorScheme(s); cs {
	case RGB, Grayscale, Inverted:
		return cs, nil
	default:
		return "", UnknownColorSchemeError(s)
	}
}

// ColorSchemes returns the names of all known color schemes.
func ColorSchemes() []string {
	return []string{string(Grayscale), string(Inverted), string(RGB)}
}

func (cs ColorScheme) apply(r, g, b float64) (float64, float64, float64) {
	switch cs {
	case Grayscale:
		avg := (r + g + b) / 3
		return avg, avg, avg
	case Inverted:
		return 255 - r, 255 - g, 255 - b
	default:
		return r, g, b
	}
}
