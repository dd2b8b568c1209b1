package svgraster

import (
	"image"
	"image/color"

	"github.com/benoitkugler/svgscene/svgnode"
	"github.com/srwiley/rasterx"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/math/f64"
	"golang.org/x/image/math/fixed"
)

// clipImage restricts the bounds of an image, so that
// the x/image drawing functions honour the surface clip.
type clipImage struct {
	draw.Image
	r image.Rectangle
}

func (c clipImage) Bounds() image.Rectangle { return c.r }

// clipped returns the destination restricted to the clip.
func (s *Surface) clipped() draw.Image {
	r := s.clip.Intersect(s.dst.Bounds())
	if sub, ok := s.dst.(interface {
		SubImage(r image.Rectangle) image.Image
	}); ok {
		if img, ok := sub.SubImage(r).(draw.Image); ok {
			return img
		}
	}
	return clipImage{Image: s.dst, r: r}
}

// paintText draws the text with the context font face. Only the
// baseline origin is transformed: glyphs are drawn unscaled.
func (s *Surface) paintText(n *svgnode.Node, m rasterx.Matrix2D, opacity float64, ctx *svgnode.RenderContext) {
	if n.Text == "" || n.Style.Fill == nil {
		return
	}
	x, y := m.Transform(n.TextX, n.TextY)
	dot := fixed.Point26_6{X: fixed.Int26_6(x * 64), Y: fixed.Int26_6(y * 64)}
	if !s.hints.Antialias {
		dot = snap(dot)
	}
	d := font.Drawer{
		Dst:  s.clipped(),
		Src:  image.NewUniform(rasterx.ApplyOpacity(n.Style.Fill, n.Style.FillOpacity*opacity)),
		Face: ctx.Face(),
		Dot:  dot,
	}
	d.DrawString(n.Text)
}

// paintImage draws the node image scaled into its rectangle,
// with the interpolation selected by the hints.
func (s *Surface) paintImage(n *svgnode.Node, m rasterx.Matrix2D, opacity float64) {
	if n.Image == nil || n.ImageRect.IsEmpty() {
		return
	}
	sr := n.Image.Bounds()
	if sr.Empty() {
		return
	}
	r := n.ImageRect
	// source pixels -> image rect -> device
	m = m.Mult(rasterx.Identity.
		Translate(r.X, r.Y).
		Scale(r.W/float64(sr.Dx()), r.H/float64(sr.Dy())).
		Translate(-float64(sr.Min.X), -float64(sr.Min.Y)))
	s2d := f64.Aff3{m.A, m.C, m.E, m.B, m.D, m.F}

	interp := s.hints.Interpolation.Interpolator()
	if !s.hints.Antialias {
		interp = draw.NearestNeighbor
	}
	var opts *draw.Options
	if opacity < 1 {
		opts = &draw.Options{SrcMask: image.NewUniform(color.Alpha16{A: uint16(opacity * 0xffff)})}
	}
	interp.Transform(s.clipped(), s2d, n.Image, sr, draw.Over, opts)
}
