package svgraster

import (
	"image"

	"github.com/benoitkugler/svgscene/svgnode"
	"github.com/srwiley/rasterx"
)

// LayerFactory paints groups into offscreen RGBA images.
type LayerFactory struct{}

// NewLayer paints n, without its own opacity, into a transparent image
// covering bounds. The returned image has the requested bounds.
func (LayerFactory) NewLayer(n *svgnode.Node, ctx *svgnode.RenderContext, m rasterx.Matrix2D, bounds image.Rectangle) image.Image {
	// the scanner expects an image starting at the origin
	layer := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	s := NewSurface(layer)
	s.SetHints(ctx.Hints)
	s.SetTransform(rasterx.Identity.Translate(-float64(bounds.Min.X), -float64(bounds.Min.Y)).Mult(m))
	n.PaintIsolated(s, ctx)

	layer.Rect = bounds // same pixels, shifted to the device position
	return layer
}

// RasterTree paints the tree rooted at root into a new w x h image,
// with an identity transform and the default context.
func RasterTree(root *svgnode.Node, w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	ctx := svgnode.NewRenderContext()
	ctx.Layers = LayerFactory{}
	ctx.AreaOfInterest = svgnode.Rect{W: float64(w), H: float64(h)}

	s := NewSurface(img)
	s.SetHints(ctx.Hints)
	s.SetTransform(ctx.Transform)
	s.Clip(ctx.AreaOfInterest)
	root.Paint(s, ctx)
	return img
}
