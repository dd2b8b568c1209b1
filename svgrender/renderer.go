// Package svgrender paints scene trees into raster targets, and
// dispatches the mouse events of the target back to the scene nodes.
package svgrender

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/benoitkugler/svgscene/svganim"
	"github.com/benoitkugler/svgscene/svgnode"
	"github.com/benoitkugler/svgscene/svgraster"
	"github.com/srwiley/rasterx"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
)

// ErrInvalidArgument is returned when a renderer is given an unusable
// target.
var ErrInvalidArgument = errors.New("invalid argument")

// Option customizes a renderer at creation.
type Option func(*Renderer)

// WithHints sets the rendering hints stored in the render context.
func WithHints(h svgnode.Hints) Option {
	return func(r *Renderer) { r.ctx.Hints = h }
}

// WithFontFace sets the face used to draw and measure texts.
func WithFontFace(face font.Face) Option {
	return func(r *Renderer) { r.ctx.FontFace = face }
}

// WithSelector replaces the default text selector attached by InitSelectors.
func WithSelector(sel svgnode.MouseListener) Option {
	return func(r *Renderer) { r.selector = sel }
}

// WithLayers sets the factory used to composite group effects.
// A nil factory applies group opacity to each leaf.
func WithLayers(f svgnode.LayerFactory) Option {
	return func(r *Renderer) { r.ctx.Layers = f }
}

// WithConfig applies the settings of a configuration file.
func WithConfig(c Config) Option {
	return func(r *Renderer) {
		r.ctx.Hints = c.Hints()
		r.progressive = c.ProgressivePaint
		units := c.Units()
		r.fixedViewport = units.ViewportWidth > 0 && units.ViewportHeight > 0
		if !r.fixedViewport { // default to the target size
			units.ViewportWidth, units.ViewportHeight = r.units.ViewportWidth, r.units.ViewportHeight
		}
		r.units = units
	}
}

// Renderer paints a scene tree into an offscreen image.
//
// A renderer only paints on request: it never repaints on its own.
// It is not safe for concurrent use.
type Renderer struct {
	target  draw.Image
	backend svgnode.Backend
	ctx     *svgnode.RenderContext
	tree    *svgnode.Node

	// usr2dev maps user space to device space
	usr2dev rasterx.Matrix2D
	units   svganim.UnitContext

	// the viewport follows the target size unless configured
	fixedViewport bool

	progressive bool

	selector svgnode.MouseListener
	attached map[*svgnode.Node]bool

	mouse mouseState
}

// NewRenderer returns a renderer painting into target. A nil backend
// selects the rasterx backend.
func NewRenderer(target draw.Image, backend svgnode.Backend, opts ...Option) (*Renderer, error) {
	if err := checkTarget(target); err != nil {
		return nil, err
	}
	if backend == nil {
		backend = svgraster.Backend{}
	}
	r := &Renderer{
		target:   target,
		backend:  backend,
		ctx:      svgnode.NewRenderContext(),
		usr2dev:  rasterx.Identity,
		attached: make(map[*svgnode.Node]bool),
	}
	r.ctx.Layers = svgraster.LayerFactory{}
	b := target.Bounds()
	r.units = svganim.DefaultUnitContext(float64(b.Dx()), float64(b.Dy()))
	for _, opt := range opts {
		opt(r)
	}
	r.ctx.Transform = r.usr2dev
	return r, nil
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func:
		return rv.IsNil()
	}
	return false
}

func checkTarget(target draw.Image) error {
	if isNil(target) {
		return fmt.Errorf("%w: nil offscreen target", ErrInvalidArgument)
	}
	b := target.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return fmt.Errorf("%w: offscreen target should have a positive size, got %d x %d",
			ErrInvalidArgument, b.Dx(), b.Dy())
	}
	return nil
}

// SetOffScreen replaces the painting target. On error, the renderer
// is left unchanged. Unless configured, the viewport of Units is
// resized to the new target.
func (r *Renderer) SetOffScreen(target draw.Image) error {
	if err := checkTarget(target); err != nil {
		return err
	}
	r.target = target
	if !r.fixedViewport {
		b := target.Bounds()
		r.units.ViewportWidth, r.units.ViewportHeight = float64(b.Dx()), float64(b.Dy())
	}
	return nil
}

// OffScreen returns the painting target.
func (r *Renderer) OffScreen() draw.Image { return r.target }

// SetTree sets the root of the painted tree, which may be nil.
// Selectors are not attached: see InitSelectors.
func (r *Renderer) SetTree(root *svgnode.Node) {
	r.tree = root
	r.mouse = mouseState{}
}

// Tree returns the painted tree, or nil.
func (r *Renderer) Tree() *svgnode.Node { return r.tree }

// SetTransform sets the user to device transform, and propagates it
// to the render context. The zero matrix is interpreted as the identity.
func (r *Renderer) SetTransform(usr2dev rasterx.Matrix2D) {
	if usr2dev == (rasterx.Matrix2D{}) {
		usr2dev = rasterx.Identity
	}
	r.usr2dev = usr2dev
	r.ctx.Transform = usr2dev
}

// Transform returns the user to device transform of the render context.
func (r *Renderer) Transform() rasterx.Matrix2D { return r.ctx.Transform }

// Context returns the render context shared by the painting passes.
func (r *Renderer) Context() *svgnode.RenderContext { return r.ctx }

// Units returns the unit context used to resolve lengths of the
// elements bound to the tree.
func (r *Renderer) Units() svganim.UnitContext { return r.units }

// Repaint paints the part of the tree inside area, given in user space,
// into the offscreen target. The target is not cleared beforehand.
func (r *Renderer) Repaint(area svgnode.Rect) {
	r.ctx.Transform = r.usr2dev
	r.ctx.AreaOfInterest = area

	s := r.backend.NewSurface(r.target)
	s.SetHints(r.ctx.Hints)
	s.SetTransform(r.ctx.Transform)
	s.Clip(r.ctx.AreaOfInterest)

	if r.tree != nil {
		r.tree.Paint(s, r.ctx)
	}
}

// RepaintAll repaints the whole target.
func (r *Renderer) RepaintAll() {
	b := r.target.Bounds()
	device := svgnode.Rect{X: float64(b.Min.X), Y: float64(b.Min.Y), W: float64(b.Dx()), H: float64(b.Dy())}
	r.Repaint(device.Transform(r.usr2dev.Invert()))
}

// IsProgressivePaintAllowed returns the progressive paint flag.
func (r *Renderer) IsProgressivePaintAllowed() bool { return r.progressive }

// SetProgressivePaintAllowed stores the progressive paint flag,
// which is only an advisory setting for the caller.
func (r *Renderer) SetProgressivePaintAllowed(allowed bool) { r.progressive = allowed }

// Selector returns the selection controller, which is created
// by the first call to InitSelectors if not provided as an option.
func (r *Renderer) Selector() svgnode.MouseListener { return r.selector }

// InitSelectors attaches the selection controller to every selectable
// node of the tree. Calling it again only attaches the controller to
// the nodes added since: a node never receives it twice.
func (r *Renderer) InitSelectors() {
	if r.tree == nil {
		return
	}
	if r.selector == nil {
		r.selector = NewTextSelector(r.ctx)
	}
	it := svgnode.NewIterator(r.tree)
	for it.HasNext() {
		node := it.Next()
		if !node.IsSelectable() || node.HasMouseListener(r.selector) {
			continue
		}
		node.AddMouseListener(r.selector)
		r.attached[node] = true
	}
}

// DetachSelectors removes the selection controller from the nodes
// InitSelectors attached it to.
func (r *Renderer) DetachSelectors() {
	for node := range r.attached {
		node.RemoveMouseListener(r.selector)
	}
	clear(r.attached)
}
