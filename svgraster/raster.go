// Implements a raster backend to render scene trees,
// by wrapping rasterx.
package svgraster

import (
	"image"
	"image/color"
	"math"

	"github.com/benoitkugler/svgscene/svgnode"
	"github.com/srwiley/rasterx"
	"golang.org/x/image/draw"
	"golang.org/x/image/math/fixed"
)

var (
	_ svgnode.Backend      = Backend{}       // assert interface conformance
	_ svgnode.Surface      = (*Surface)(nil) // assert interface conformance
	_ svgnode.LayerFactory = LayerFactory{}  // assert interface conformance
)

// Backend acquires rasterx surfaces.
type Backend struct{}

func (Backend) NewSurface(dst draw.Image) svgnode.Surface { return NewSurface(dst) }

// Surface paints leaves into a destination image.
// The destination bounds are expected to start at the origin.
type Surface struct {
	dst     draw.Image
	scanner *rasterx.ScannerGV
	dasher  *rasterx.Dasher // to avoid shared state
	filler  *rasterx.Filler // we use separated instance

	hints svgnode.Hints
	m     rasterx.Matrix2D
	clip  image.Rectangle // device space, empty means nothing is painted
}

// NewSurface returns a surface with an identity transform, the default
// hints and a clip covering dst.
// In addition to rasterizing lines like a Scanner,
// it can also rasterize quadratic and cubic bezier curves.
func NewSurface(dst draw.Image) *Surface {
	b := dst.Bounds()
	w, h := b.Dx(), b.Dy()
	scanner := rasterx.NewScannerGV(w, h, dst, b)
	return &Surface{
		dst:     dst,
		scanner: scanner,
		dasher:  rasterx.NewDasher(w, h, scanner),
		filler:  rasterx.NewFiller(w, h, scanner),
		hints:   svgnode.DefaultHints,
		m:       rasterx.Identity,
		clip:    b,
	}
}

func (s *Surface) SetHints(h svgnode.Hints) { s.hints = h }

func (s *Surface) SetTransform(m rasterx.Matrix2D) { s.m = m }

func (s *Surface) Transform() rasterx.Matrix2D { return s.m }

// Clip intersects the current clip with the device bounding box of area.
func (s *Surface) Clip(area svgnode.Rect) {
	s.clip = s.clip.Intersect(area.Device(s.m))
	if !s.clip.Empty() {
		s.scanner.SetClip(s.clip)
	}
}

func (s *Surface) Bounds() image.Rectangle { return s.clip }

// PaintLeaf draws shapes, texts and images; groups are ignored.
func (s *Surface) PaintLeaf(n *svgnode.Node, m rasterx.Matrix2D, opacity float64, ctx *svgnode.RenderContext) {
	if s.clip.Empty() || opacity <= 0 {
		return
	}
	switch n.Kind {
	case svgnode.KindShape:
		s.paintShape(n, m, opacity)
	case svgnode.KindText:
		s.paintText(n, m, opacity, ctx)
	case svgnode.KindImage:
		s.paintImage(n, m, opacity)
	}
}

// DrawLayer composites img over the destination, using opacity as a
// uniform alpha mask.
func (s *Surface) DrawLayer(img image.Image, opacity float64) {
	r := img.Bounds().Intersect(s.clip)
	if r.Empty() || opacity <= 0 {
		return
	}
	var mask image.Image
	if opacity < 1 {
		mask = image.NewUniform(color.Alpha16{A: uint16(opacity * 0xffff)})
	}
	draw.DrawMask(s.dst, r, img, r.Min, mask, image.Point{}, draw.Over)
}

var (
	joinToJoin = [...]rasterx.JoinMode{
		svgnode.Round:     rasterx.Round,
		svgnode.Bevel:     rasterx.Bevel,
		svgnode.Miter:     rasterx.Miter,
		svgnode.MiterClip: rasterx.MiterClip,
		svgnode.Arc:       rasterx.Arc,
		svgnode.ArcClip:   rasterx.ArcClip,
	}

	capToFunc = [...]rasterx.CapFunc{
		svgnode.ButtCap:      rasterx.ButtCap,
		svgnode.SquareCap:    rasterx.SquareCap,
		svgnode.RoundCap:     rasterx.RoundCap,
		svgnode.CubicCap:     rasterx.CubicCap,
		svgnode.QuadraticCap: rasterx.QuadraticCap,
	}

	gapToFunc = [...]rasterx.GapFunc{
		svgnode.FlatGap:      rasterx.FlatGap,
		svgnode.RoundGap:     rasterx.RoundGap,
		svgnode.CubicGap:     rasterx.CubicGap,
		svgnode.QuadraticGap: rasterx.QuadraticGap,
	}
)

// snapAdder rounds every point to the pixel grid,
// which is used when antialiasing is disabled.
type snapAdder struct{ rasterx.Adder }

func snap(p fixed.Point26_6) fixed.Point26_6 {
	return fixed.Point26_6{X: fixed.I(p.X.Round()), Y: fixed.I(p.Y.Round())}
}

func (a snapAdder) Start(p fixed.Point26_6) { a.Adder.Start(snap(p)) }
func (a snapAdder) Line(b fixed.Point26_6)  { a.Adder.Line(snap(b)) }
func (a snapAdder) QuadBezier(b, c fixed.Point26_6) {
	a.Adder.QuadBezier(snap(b), snap(c))
}

func (a snapAdder) CubeBezier(b, c, d fixed.Point26_6) {
	a.Adder.CubeBezier(snap(b), snap(c), snap(d))
}

func (s *Surface) adder(d rasterx.Adder) rasterx.Adder {
	if s.hints.Antialias {
		return d
	}
	return snapAdder{d}
}

// transformScale returns the factor applied to lengths by m.
func transformScale(m rasterx.Matrix2D) float64 {
	return math.Sqrt(math.Abs(m.A*m.D - m.B*m.C))
}

func fToFixed(f float64) fixed.Int26_6 {
	return fixed.Int26_6(f * 64)
}

func (s *Surface) paintShape(n *svgnode.Node, m rasterx.Matrix2D, opacity float64) {
	if n.Geometry == nil {
		return
	}
	path := n.Geometry.Path()
	if len(path) == 0 {
		return
	}
	st := n.Style

	if st.Fill != nil { // nil color disable filling
		s.filler.Clear()
		s.filler.SetWinding(st.UseNonZeroWinding)
		path.AddTo(s.adder(s.filler), m)
		s.filler.Stop(false)
		s.filler.SetColor(rasterx.ApplyOpacity(st.Fill, st.FillOpacity*opacity))
		s.filler.Draw()
		s.filler.SetWinding(true) // default is true
	}

	if st.Stroke != nil && st.StrokeWidth > 0 { // nil color disable lining
		s.dasher.Clear()

		lineGap := st.LineGap
		if lineGap == svgnode.NilGap {
			lineGap = svgnode.FlatGap
		}
		lineCap := st.LineCap
		if lineCap == svgnode.NilCap {
			lineCap = svgnode.DefaultStyle.LineCap
		}
		leadLineCap := lineCap
		if st.LeadLineCap != svgnode.NilCap {
			leadLineCap = st.LeadLineCap
		}
		scale := transformScale(m)
		var dash []float64
		if len(st.Dash) != 0 {
			dash = make([]float64, len(st.Dash))
			for i, d := range st.Dash {
				dash[i] = d * scale
			}
		}
		s.dasher.SetStroke(
			fToFixed(st.StrokeWidth*scale), fToFixed(st.MiterLimit),
			capToFunc[leadLineCap], capToFunc[lineCap], gapToFunc[lineGap],
			joinToJoin[st.LineJoin], dash, st.DashOffset*scale,
		)
		path.AddTo(s.adder(s.dasher), m)
		s.dasher.Stop(false)
		s.dasher.SetColor(rasterx.ApplyOpacity(st.Stroke, st.StrokeOpacity*opacity))
		s.dasher.Draw()
	}
}
