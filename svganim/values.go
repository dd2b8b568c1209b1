package svganim

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"
)

// Value is an attribute or property value pushed by an animation.
// Implementations are Number, Length, Color and Keyword.
type Value interface {
	String() string
}

// Number is a unitless value, such as an opacity.
type Number float64

func (n Number) String() string { return strconv.FormatFloat(float64(n), 'g', -1, 64) }

// Length is a value with a unit, to be resolved in user space.
type Length struct {
	Value float64
	Unit  UnitType
}

func (l Length) String() string {
	return strconv.FormatFloat(l.Value, 'g', -1, 64) + l.Unit.String()
}

// Color is an opaque color.
type Color struct{ colorful.Color }

func (c Color) String() string { return c.Hex() }

// Keyword is an identifier value, such as "none" or "hidden".
type Keyword string

func (k Keyword) String() string { return string(k) }

// NewColor converts a standard color, ignoring its alpha.
func NewColor(c color.Color) Color {
	cf, _ := colorful.MakeColor(withOpaqueAlpha(c))
	return Color{cf}
}

func withOpaqueAlpha(c color.Color) color.Color {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	n.A = 0xff
	return n
}

var errInvalidColor = errors.New("invalid color")

// ParseColor parses a SVG color: #rgb, #rrggbb, rgb(r, g, b) with
// integer or percentage components, or a color keyword.
func ParseColor(v string) (Color, error) {
	v = strings.TrimSpace(v)
	switch {
	case strings.HasPrefix(v, "#"):
		hex := v[1:]
		if len(hex) == 3 {
			hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
		}
		if len(hex) != 6 {
			return Color{}, fmt.Errorf("%w: %q", errInvalidColor, v)
		}
		c, err := colorful.Hex("#" + hex)
		if err != nil {
			return Color{}, fmt.Errorf("%w: %q", errInvalidColor, v)
		}
		return Color{c}, nil
	case strings.HasPrefix(v, "rgb(") && strings.HasSuffix(v, ")"):
		comps := splitOnCommaOrSpace(strings.TrimSuffix(strings.TrimPrefix(v, "rgb("), ")"))
		if len(comps) != 3 {
			return Color{}, fmt.Errorf("%w: %q", errInvalidColor, v)
		}
		var rgb [3]float64
		for i, comp := range comps {
			f, err := readColorComponent(comp)
			if err != nil {
				return Color{}, fmt.Errorf("%w: %q", errInvalidColor, v)
			}
			rgb[i] = f
		}
		return Color{colorful.Color{R: rgb[0], G: rgb[1], B: rgb[2]}}, nil
	default:
		c, ok := colornames.Map[strings.ToLower(v)]
		if !ok {
			return Color{}, fmt.Errorf("%w: %q", errInvalidColor, v)
		}
		return NewColor(c), nil
	}
}

// readColorComponent returns a value in [0, 1] from a 0-255 integer
// or a percentage.
func readColorComponent(v string) (float64, error) {
	v = strings.TrimSpace(v)
	d := 255.
	if strings.HasSuffix(v, "%") {
		d = 100
		v = strings.TrimSuffix(v, "%")
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, err
	}
	f /= d
	if f < 0 {
		f = 0
	} else if f > 1 {
		f = 1
	}
	return f, nil
}

// ParsePaint parses a fill or stroke value: "none" or a color.
func ParsePaint(v string) (Value, error) {
	if v = strings.TrimSpace(v); v == "none" {
		return Keyword("none"), nil
	}
	return ParseColor(v)
}

// splitOnCommaOrSpace returns a list of strings after splitting the input on comma and space delimiters
func splitOnCommaOrSpace(s string) []string {
	return strings.FieldsFunc(s,
		func(r rune) bool {
			return r == ',' || r == ' '
		})
}

// readFraction parses a number, or a percentage mapped to [0, 1].
func readFraction(v string) (f float64, err error) {
	v = strings.TrimSpace(v)
	d := 1.0
	if strings.HasSuffix(v, "%") {
		d = 100
		v = strings.TrimSuffix(v, "%")
	}
	f, err = strconv.ParseFloat(v, 64)
	f /= d
	return
}
