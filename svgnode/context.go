package svgnode

import (
	"image"
	"math"

	"github.com/srwiley/rasterx"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Rect defines an axis aligned rectangle, such as a viewport,
// an area of interest or a node extent.
type Rect struct{ X, Y, W, H float64 }

// IsEmpty returns true if the rectangle has no area.
func (r Rect) IsEmpty() bool { return !(r.W > 0 && r.H > 0) }

// Contains reports whether (x, y) lies inside the rectangle, borders included.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.W && y >= r.Y && y <= r.Y+r.H
}

// Union returns the smallest rectangle containing r and o.
// Empty rectangles are ignored.
func (r Rect) Union(o Rect) Rect {
	if r.IsEmpty() {
		return o
	}
	if o.IsEmpty() {
		return r
	}
	minX, minY := math.Min(r.X, o.X), math.Min(r.Y, o.Y)
	maxX, maxY := math.Max(r.X+r.W, o.X+o.W), math.Max(r.Y+r.H, o.Y+o.H)
	return Rect{X: minX, Y: minY, W: maxX - minX, H: maxY - minY}
}

// Device returns the pixel rectangle covering r once transformed by m.
func (r Rect) Device(m rasterx.Matrix2D) image.Rectangle {
	if r.IsEmpty() {
		return image.Rectangle{}
	}
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, c := range [4][2]float64{
		{r.X, r.Y}, {r.X + r.W, r.Y}, {r.X, r.Y + r.H}, {r.X + r.W, r.Y + r.H},
	} {
		x, y := m.Transform(c[0], c[1])
		minX, minY = math.Min(minX, x), math.Min(minY, y)
		maxX, maxY = math.Max(maxX, x), math.Max(maxY, y)
	}
	return image.Rect(int(math.Floor(minX)), int(math.Floor(minY)), int(math.Ceil(maxX)), int(math.Ceil(maxY)))
}

// rectFromFixed converts a path extent.
func rectFromFixed(b fixed.Rectangle26_6) Rect {
	return Rect{
		X: float64(b.Min.X) / 64, Y: float64(b.Min.Y) / 64,
		W: float64(b.Max.X-b.Min.X) / 64, H: float64(b.Max.Y-b.Min.Y) / 64,
	}
}

// Interpolation selects the resampling used when drawing images.
type Interpolation uint8

const (
	NearestNeighbor Interpolation = iota
	ApproxBiLinear
	BiLinear
	CatmullRom
)

// Interpolator returns the matching golang.org/x/image/draw interpolator.
func (i Interpolation) Interpolator() draw.Interpolator {
	switch i {
	case ApproxBiLinear:
		return draw.ApproxBiLinear
	case BiLinear:
		return draw.BiLinear
	case CatmullRom:
		return draw.CatmullRom
	default:
		return draw.NearestNeighbor
	}
}

func (i Interpolation) String() string {
	switch i {
	case NearestNeighbor:
		return "nearest"
	case ApproxBiLinear:
		return "approx-bilinear"
	case BiLinear:
		return "bilinear"
	case CatmullRom:
		return "catmull-rom"
	default:
		return "<unknown Interpolation>"
	}
}

// Hints are the rendering quality settings applied to a surface.
type Hints struct {
	// Antialias disabled snaps the outlines to whole pixels.
	Antialias     bool
	Interpolation Interpolation
}

// DefaultHints turns antialiasing on, with bilinear image interpolation.
var DefaultHints = Hints{Antialias: true, Interpolation: BiLinear}

// LayerFactory builds offscreen images from group nodes, so that
// group effects (such as opacity) apply to the group as a whole.
type LayerFactory interface {
	// NewLayer paints the group n, ignoring its own opacity, into a new
	// image covering the device rectangle bounds. m maps the group
	// parent coordinates to device space.
	NewLayer(n *Node, ctx *RenderContext, m rasterx.Matrix2D, bounds image.Rectangle) image.Image
}

// RenderContext bundles the state shared by a painting pass.
// It is owned by the renderer, which rebuilds it for each repaint.
type RenderContext struct {
	// Transform maps user space to device space.
	Transform rasterx.Matrix2D
	// AreaOfInterest is the clip of the pass, in user space.
	AreaOfInterest Rect
	Hints          Hints
	// FontFace provides the font metrics and glyphs used by text nodes.
	FontFace font.Face
	// Layers is optional; without it, group opacity is applied
	// to each leaf.
	Layers LayerFactory
}

// NewRenderContext returns a context with an identity transform,
// the default hints and the basicfont face.
func NewRenderContext() *RenderContext {
	return &RenderContext{
		Transform: rasterx.Identity,
		Hints:     DefaultHints,
		FontFace:  basicfont.Face7x13,
	}
}

// Face returns the context font face, defaulting to basicfont.
func (ctx *RenderContext) Face() font.Face {
	if ctx == nil || ctx.FontFace == nil {
		return basicfont.Face7x13
	}
	return ctx.FontFace
}

// Surface is a drawing surface acquired on a raster target.
// Implementations never interpret the tree structure: they only
// draw the leaves they are given.
type Surface interface {
	SetHints(h Hints)
	// SetTransform sets the user to device transform.
	SetTransform(m rasterx.Matrix2D)
	Transform() rasterx.Matrix2D
	// Clip restricts the drawing to area, expressed in the current
	// user space. Clips are intersected.
	Clip(area Rect)
	// Bounds returns the current device clip.
	Bounds() image.Rectangle

	// PaintLeaf draws the leaf n with the complete node to device
	// transform m and the accumulated opacity.
	PaintLeaf(n *Node, m rasterx.Matrix2D, opacity float64, ctx *RenderContext)
	// DrawLayer composites an image returned by a LayerFactory.
	DrawLayer(img image.Image, opacity float64)
}

// Backend acquires drawing surfaces on raster targets.
type Backend interface {
	NewSurface(dst draw.Image) Surface
}
