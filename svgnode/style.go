package svgnode

import (
	"image/color"

	"github.com/benoitkugler/svgscene/svgpath"
)

// JoinMode type to specify how segments join.
type JoinMode uint8

// JoinMode constants determine how stroke segments bridge the gap at a join
// ArcClip mode is like MiterClip applied to arcs, and is not part of the SVG2.0
// standard.
const (
	Arc JoinMode = iota // New in SVG2
	Round
	Bevel
	Miter
	MiterClip // New in SVG2
	ArcClip   // Like MiterClip applied to arcs, and is not part of the SVG2.0 standard.
)

func (s JoinMode) String() string {
	switch s {
	case Round:
		return "Round"
	case Bevel:
		return "Bevel"
	case Miter:
		return "Miter"
	case MiterClip:
		return "MiterClip"
	case Arc:
		return "Arc"
	case ArcClip:
		return "ArcClip"
	default:
		return "<unknown JoinMode>"
	}
}

// CapMode defines how to draw caps on the ends of lines
type CapMode uint8

const (
	NilCap CapMode = iota // default value
	ButtCap
	SquareCap
	RoundCap
	CubicCap     // Not part of the SVG2.0 standard.
	QuadraticCap // Not part of the SVG2.0 standard.
)

func (c CapMode) String() string {
	switch c {
	case NilCap:
		return "NilCap"
	case ButtCap:
		return "ButtCap"
	case SquareCap:
		return "SquareCap"
	case RoundCap:
		return "RoundCap"
	case CubicCap:
		return "CubicCap"
	case QuadraticCap:
		return "QuadraticCap"
	default:
		return "<unknown CapMode>"
	}
}

// GapMode defines how to bridge gaps when the miter limit is exceeded,
// and is not part of the SVG2.0 standard.
type GapMode uint8

const (
	NilGap GapMode = iota
	FlatGap
	RoundGap
	CubicGap
	QuadraticGap
)

func (g GapMode) String() string {
	switch g {
	case NilGap:
		return "NilGap"
	case FlatGap:
		return "FlatGap"
	case RoundGap:
		return "RoundGap"
	case CubicGap:
		return "CubicGap"
	case QuadraticGap:
		return "QuadraticGap"
	default:
		return "<unknown GapMode>"
	}
}

// Style holds the presentation state used to paint a leaf.
type Style struct {
	Fill, Stroke               color.Color // nil disables filling or stroking
	FillOpacity, StrokeOpacity float64
	StrokeWidth                float64
	MiterLimit                 float64
	LineJoin                   JoinMode
	LineCap                    CapMode   // trailing cap, also used at the start when LeadLineCap is NilCap
	LeadLineCap                CapMode   // not part of the standard specification
	LineGap                    GapMode   // not part of the standard specification
	Dash                       []float64 // nil or empty for no dashes
	DashOffset                 float64
	UseNonZeroWinding          bool
}

// DefaultStyle is the SVG initial style: black fill, no stroke,
// full opacity, 1 unit wide miter joined butt capped lines.
var DefaultStyle = Style{
	Fill:              color.Black,
	FillOpacity:       1,
	StrokeOpacity:     1,
	StrokeWidth:       1,
	MiterLimit:        4,
	LineJoin:          Miter,
	LineCap:           ButtCap,
	UseNonZeroWinding: true,
}

// Geometry is the outline of a shape node, in the node coordinates.
type Geometry interface {
	// Path returns the outline, or nil when the shape is not rendered
	// (for instance a rectangle with a zero width).
	Path() svgpath.Path
}

// RectGeometry is a (possibly rounded) rectangle.
type RectGeometry struct {
	X, Y, Width, Height float64
	RX, RY              float64
}

func (g *RectGeometry) Path() svgpath.Path {
	if g.Width <= 0 || g.Height <= 0 {
		return nil
	}
	var p svgpath.Path
	p.AddRoundRect(g.X, g.Y, g.X+g.Width, g.Y+g.Height, g.RX, g.RY, 0)
	return p
}

// EllipseGeometry is an axis aligned ellipse; circles use RX == RY.
type EllipseGeometry struct {
	CX, CY, RX, RY float64
}

func (g *EllipseGeometry) Path() svgpath.Path {
	if g.RX <= 0 || g.RY <= 0 { // not drawn, but not an error
		return nil
	}
	var p svgpath.Path
	p.AddEllipse(g.CX, g.CY, g.RX, g.RY)
	return p
}

// LineGeometry is a single segment.
type LineGeometry struct {
	X1, Y1, X2, Y2 float64
}

func (g *LineGeometry) Path() svgpath.Path {
	var p svgpath.Path
	p.AddLine(g.X1, g.Y1, g.X2, g.Y2)
	return p
}

// PathGeometry wraps an arbitrary path.
type PathGeometry struct {
	Data svgpath.Path
}

func (g *PathGeometry) Path() svgpath.Path { return g.Data }
