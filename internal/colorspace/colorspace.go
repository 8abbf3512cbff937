// Package colorspace converts the #RRGGBB colors theme authors write into
// the RGB and HSL triples the stylesheet's custom properties expect.
package colorspace

import (
	"errors"
	"fmt"
	"math"
	"strconv"
)

// ErrInvalidColorFormat is returned when a color is not '#' followed by
// exactly six hex digits.
var ErrInvalidColorFormat = errors.New("invalid color format")

// RGB holds 8-bit channel values.
type RGB struct {
	R, G, B uint8
}

// Hex returns the color as an upper-case #RRGGBB string.
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

// Triple returns "r, g, b", the form used inside rgba().
func (c RGB) Triple() string {
	return fmt.Sprintf("%d, %d, %d", c.R, c.G, c.B)
}

// HSL holds a hue in degrees [0,360) and saturation/lightness as
// whole percentages.
type HSL struct {
	H, S, L int
}

// String returns "h s% l%", the space separated triple of the
// HSL design-token convention.
func (c HSL) String() string {
	return fmt.Sprintf("%d %d%% %d%%", c.H, c.S, c.L)
}

// ParseHex parses a #RRGGBB string. Upper and lower case digits are
// accepted; shorthand (#RGB) and alpha forms are not.
func ParseHex(hex string) (RGB, error) {
	if len(hex) != 7 || hex[0] != '#' {
		return RGB{}, fmt.Errorf("%w: %q", ErrInvalidColorFormat, hex)
	}
	var ch [3]uint8
	for i := range ch {
		v, err := strconv.ParseUint(hex[1+2*i:3+2*i], 16, 8)
		if err != nil {
			return RGB{}, fmt.Errorf("%w: %q", ErrInvalidColorFormat, hex)
		}
		ch[i] = uint8(v)
	}
	return RGB{R: ch[0], G: ch[1], B: ch[2]}, nil
}

// HexToRGBTriple converts "#DC586D" to "220, 88, 109".
func HexToRGBTriple(hex string) (string, error) {
	c, err := ParseHex(hex)
	if err != nil {
		return "", err
	}
	return c.Triple(), nil
}

// HexToHSLTriple converts "#DC586D" to "350 65% 60%".
func HexToHSLTriple(hex string) (string, error) {
	c, err := ParseHex(hex)
	if err != nil {
		return "", err
	}
	return ToHSL(c).String(), nil
}

// ToHSL converts an RGB color using the CSS hex-to-HSL formula, rounding
// each component half-up to an integer.
func ToHSL(c RGB) HSL {
	r := float64(c.R) / 255
	g := float64(c.G) / 255
	b := float64(c.B) / 255

	max := math.Max(r, math.Max(g, b))
	min := math.Min(r, math.Min(g, b))
	l := (max + min) / 2

	var h, s float64
	if max != min {
		d := max - min
		if l > 0.5 {
			s = d / (2 - max - min)
		} else {
			s = d / (max + min)
		}

		switch max {
		case r:
			h = (g - b) / d
			if g < b {
				h += 6
			}
		case g:
			h = (b-r)/d + 2
		default:
			h = (r-g)/d + 4
		}
		h /= 6
	}

	hue := roundHalfUp(h * 360)
	if hue >= 360 {
		hue = 0
	}
	return HSL{
		H: hue,
		S: roundHalfUp(s * 100),
		L: roundHalfUp(l * 100),
	}
}

func roundHalfUp(v float64) int {
	return int(math.Floor(v + 0.5))
}
