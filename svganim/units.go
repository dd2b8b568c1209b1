package svganim

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// PercentageMode selects the reference magnitude of a percentage length.
type PercentageMode uint8

const (
	// PercentageFontSize resolves against the font size.
	PercentageFontSize PercentageMode = iota
	// PercentageViewportWidth resolves against the viewport width.
	PercentageViewportWidth
	// PercentageViewportHeight resolves against the viewport height.
	PercentageViewportHeight
	// PercentageViewportSize resolves against the normalized viewport
	// diagonal, sqrt(w² + h²) / sqrt(2).
	PercentageViewportSize
)

func (m PercentageMode) String() string {
	switch m {
	case PercentageFontSize:
		return "font-size"
	case PercentageViewportWidth:
		return "viewport-width"
	case PercentageViewportHeight:
		return "viewport-height"
	case PercentageViewportSize:
		return "viewport-size"
	default:
		return "<unknown PercentageMode>"
	}
}

// UnitType is the unit of a length.
type UnitType uint8

const (
	UnitNumber UnitType = iota // no unit, same as px
	UnitPx
	UnitPercentage
	UnitEm
	UnitEx
	UnitCm
	UnitMm
	UnitIn
	UnitPt
	UnitPc
)

var unitSuffixes = [...]string{
	UnitNumber:     "",
	UnitPx:         "px",
	UnitPercentage: "%",
	UnitEm:         "em",
	UnitEx:         "ex",
	UnitCm:         "cm",
	UnitMm:         "mm",
	UnitIn:         "in",
	UnitPt:         "pt",
	UnitPc:         "pc",
}

func (u UnitType) String() string {
	if int(u) < len(unitSuffixes) {
		return unitSuffixes[u]
	}
	return "<unknown UnitType>"
}

const (
	// DefaultPixelUnitToMillimeter is the size of a pixel at 96 dpi.
	DefaultPixelUnitToMillimeter = 0.26458333333333333
	// DefaultFontSize is the medium font size, in user units.
	DefaultFontSize = 16
)

// UnitContext provides the reference magnitudes used to convert
// relative lengths to user space units.
type UnitContext struct {
	ViewportWidth, ViewportHeight float64
	FontSize                      float64
	// XHeight is the height of the lowercase x; zero means unknown,
	// and half the font size is used.
	XHeight               float64
	PixelUnitToMillimeter float64
}

// DefaultUnitContext returns a context with the given viewport,
// the default font size and a 96 dpi resolution.
func DefaultUnitContext(viewportWidth, viewportHeight float64) UnitContext {
	return UnitContext{
		ViewportWidth:         viewportWidth,
		ViewportHeight:        viewportHeight,
		FontSize:              DefaultFontSize,
		PixelUnitToMillimeter: DefaultPixelUnitToMillimeter,
	}
}

func (uc UnitContext) pixelToMM() float64 {
	if uc.PixelUnitToMillimeter <= 0 {
		return DefaultPixelUnitToMillimeter
	}
	return uc.PixelUnitToMillimeter
}

// PercentageReference returns the magnitude 100% refers to.
func (uc UnitContext) PercentageReference(mode PercentageMode) float64 {
	switch mode {
	case PercentageFontSize:
		return uc.FontSize
	case PercentageViewportWidth:
		return uc.ViewportWidth
	case PercentageViewportHeight:
		return uc.ViewportHeight
	default:
		w, h := uc.ViewportWidth, uc.ViewportHeight
		return math.Sqrt(w*w+h*h) / math.Sqrt2
	}
}

// ToUserSpace converts the length v, expressed in unit, to user space units.
// mode is only used for percentages.
func (uc UnitContext) ToUserSpace(v float64, unit UnitType, mode PercentageMode) float64 {
	switch unit {
	case UnitPercentage:
		return v / 100 * uc.PercentageReference(mode)
	case UnitEm:
		return v * uc.FontSize
	case UnitEx:
		if uc.XHeight > 0 {
			return v * uc.XHeight
		}
		return v * uc.FontSize / 2
	case UnitCm:
		return v * 10 / uc.pixelToMM()
	case UnitMm:
		return v / uc.pixelToMM()
	case UnitIn:
		return v * 25.4 / uc.pixelToMM()
	case UnitPt:
		return v * 25.4 / 72 / uc.pixelToMM()
	case UnitPc:
		return v * 25.4 / 6 / uc.pixelToMM()
	default: // number, px
		return v
	}
}

// errInvalidLength is returned when a length can't be parsed.
var errInvalidLength = errors.New("invalid length")

// ParseLength parses a SVG length, such as "12", "1.5em" or "50%".
func ParseLength(s string) (Length, error) {
	s = strings.TrimSpace(s)
	unit := UnitNumber
	for u := UnitPx; int(u) < len(unitSuffixes); u++ {
		if strings.HasSuffix(s, unitSuffixes[u]) {
			unit = u
			s = strings.TrimSuffix(s, unitSuffixes[u])
			break
		}
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return Length{}, fmt.Errorf("%w: %q", errInvalidLength, s+unit.String())
	}
	return Length{Value: v, Unit: unit}, nil
}
