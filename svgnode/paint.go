package svgnode

import (
	"math"

	"github.com/srwiley/rasterx"
	"golang.org/x/image/font"
)

// Transform returns the bounding box of r once transformed by m.
func (r Rect) Transform(m rasterx.Matrix2D) Rect {
	if r.IsEmpty() {
		return Rect{}
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
	return Rect{X: minX, Y: minY, W: maxX - minX, H: maxY - minY}
}

// LocalBounds returns the extent of a leaf in its own coordinates,
// stroke included. Groups return an empty rectangle: see Extent.
func (n *Node) LocalBounds(ctx *RenderContext) Rect {
	switch n.Kind {
	case KindShape:
		if n.Geometry == nil {
			return Rect{}
		}
		path := n.Geometry.Path()
		if len(path) == 0 {
			return Rect{}
		}
		r := rectFromFixed(path.Bounds())
		if n.Style.Stroke != nil && n.Style.StrokeWidth > 0 {
			pad := n.Style.strokePad()
			r = Rect{X: r.X - pad, Y: r.Y - pad, W: r.W + 2*pad, H: r.H + 2*pad}
		} else if r.W == 0 || r.H == 0 {
			return Rect{}
		}
		return r
	case KindText:
		if n.Text == "" {
			return Rect{}
		}
		face := ctx.Face()
		metrics := face.Metrics()
		ascent, descent := float64(metrics.Ascent)/64, float64(metrics.Descent)/64
		width := float64(font.MeasureString(face, n.Text)) / 64
		return Rect{X: n.TextX, Y: n.TextY - ascent, W: width, H: ascent + descent}
	case KindImage:
		return n.ImageRect
	default:
		return Rect{}
	}
}

// strokePad returns how far the stroke may reach beyond the path.
// Sharp joins extend up to the miter limit.
func (st *Style) strokePad() float64 {
	pad := st.StrokeWidth / 2
	switch st.LineJoin {
	case Miter, MiterClip, Arc, ArcClip:
		pad *= math.Max(1, st.MiterLimit)
	}
	return pad
}

// Extent returns the bounding box of the visible subtree rooted at n,
// in n coordinates (the transform of n itself is not applied).
func (n *Node) Extent(ctx *RenderContext) Rect {
	var (
		ext        Rect
		transforms []rasterx.Matrix2D
	)
	it := NewIterator(n)
	for it.HasNext() {
		node := it.Next()
		d := it.Depth()
		transforms = transforms[:d]
		if !node.Visible {
			it.SkipChildren()
			continue
		}
		m := rasterx.Identity
		if d > 0 {
			m = transforms[d-1].Mult(node.localTransform())
		}
		transforms = append(transforms, m)
		if !node.IsComposite() {
			ext = ext.Union(node.LocalBounds(ctx).Transform(m))
		}
	}
	return ext
}

// Paint draws the subtree rooted at n on the surface, in document order,
// starting from the surface transform. Invisible subtrees are skipped.
// The walk uses an Iterator: the tree depth is not limited by the call stack.
func (n *Node) Paint(s Surface, ctx *RenderContext) { n.paint(s, ctx, false) }

// PaintIsolated is the same as Paint, but ignores the opacity of n itself.
// It is meant for LayerFactory implementations.
func (n *Node) PaintIsolated(s Surface, ctx *RenderContext) { n.paint(s, ctx, true) }

func (n *Node) paint(s Surface, ctx *RenderContext, isolated bool) {
	base := s.Transform()
	// per depth accumulated transform and opacity
	transforms := make([]rasterx.Matrix2D, 0, 8)
	opacities := make([]float64, 0, 8)

	it := NewIterator(n)
	for it.HasNext() {
		node := it.Next()
		d := it.Depth()
		transforms, opacities = transforms[:d], opacities[:d]

		parentM, parentOp := base, 1.
		if d > 0 {
			parentM, parentOp = transforms[d-1], opacities[d-1]
		}
		op := node.Opacity
		if isolated && d == 0 {
			op = 1
		}
		if !node.Visible || op <= 0 {
			it.SkipChildren()
			continue
		}
		m := parentM.Mult(node.localTransform())

		if node.IsComposite() && op < 1 && ctx != nil && ctx.Layers != nil && len(node.children) != 0 {
			bounds := s.Bounds().Intersect(node.Extent(ctx).Device(m))
			if !bounds.Empty() {
				layer := ctx.Layers.NewLayer(node, ctx, parentM, bounds)
				s.DrawLayer(layer, parentOp*op)
			}
			it.SkipChildren()
			continue
		}

		transforms = append(transforms, m)
		opacities = append(opacities, parentOp*op)
		if !node.IsComposite() {
			s.PaintLeaf(node, m, parentOp*op, ctx)
		}
	}
}

// NodeAt returns the top-most visible leaf of the tree rooted at root
// whose bounds contain the point (x, y), expressed in root coordinates
// (the transform of root included). It returns nil if nothing is hit.
func NodeAt(root *Node, ctx *RenderContext, x, y float64) *Node {
	var (
		hit        *Node
		transforms []rasterx.Matrix2D
	)
	it := NewIterator(root)
	for it.HasNext() {
		node := it.Next()
		d := it.Depth()
		transforms = transforms[:d]
		if !node.Visible {
			it.SkipChildren()
			continue
		}
		m := node.localTransform()
		if d > 0 {
			m = transforms[d-1].Mult(m)
		}
		transforms = append(transforms, m)
		if node.IsComposite() {
			continue
		}
		lx, ly := m.Invert().Transform(x, y)
		if node.LocalBounds(ctx).Contains(lx, ly) {
			hit = node // later in paint order means on top
		}
	}
	return hit
}

// ToLocal converts a point from the root coordinates to the node coordinates.
func (n *Node) ToLocal(x, y float64) (float64, float64) {
	return n.GlobalTransform().Invert().Transform(x, y)
}
