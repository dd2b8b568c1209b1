package svganim

import (
	"bytes"
	"image/color"
	"log"
	"os"
	"testing"

	"github.com/benoitkugler/svgscene/svgnode"
	"github.com/benoitkugler/svgscene/svgpath"
	"github.com/srwiley/rasterx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRectElement() *Element {
	return NewElement("rect", svgnode.NewRect("r", 0, 0, 0, 0), DefaultUnitContext(200, 100))
}

func rectGeometry(t *testing.T, e *Element) *svgnode.RectGeometry {
	g, ok := e.Node.Geometry.(*svgnode.RectGeometry)
	require.True(t, ok)
	return g
}

func TestElementGeometry(t *testing.T) {
	e := NewElement("rect", svgnode.NewRect("r", 0, 0, 0, 0), DefaultUnitContext(200, 100))
	require.NoError(t, e.SetAttributeNS("", "x", "10"))
	require.NoError(t, e.SetAttributeNS("", "width", "50%"))
	require.NoError(t, e.SetAttributeNS("", "height", "50%"))
	require.NoError(t, e.SetAttributeNS("", "y", "1in"))

	g := rectGeometry(t, e)
	assert.Equal(t, 10., g.X)
	assert.InDelta(t, 96, g.Y, 1e-4)
	assert.Equal(t, 100., g.Width)
	assert.Equal(t, 50., g.Height)

	c := NewElement("circle", svgnode.NewEllipse("c", 0, 0, 1, 1), DefaultUnitContext(300, 400))
	require.NoError(t, c.SetAttributeNS("", "r", "10%"))
	ell := c.Node.Geometry.(*svgnode.EllipseGeometry)
	assert.InDelta(t, 0.1*500/1.4142135623730951, ell.RX, 1e-9)
	assert.Equal(t, ell.RX, ell.RY)

	l := NewElement("line", svgnode.NewLine("l", 0, 0, 0, 0), DefaultUnitContext(300, 400))
	require.NoError(t, l.SetAttributeNS("", "x2", "2em"))
	assert.Equal(t, 32., l.Node.Geometry.(*svgnode.LineGeometry).X2)
	assert.Nil(t, l.Node.Style.Fill)

	txt := NewElement("text", svgnode.NewText("t", "hello", 0, 0), DefaultUnitContext(300, 400))
	require.NoError(t, txt.SetAttributeNS("", "x", "5"))
	require.NoError(t, txt.SetAttributeNS("", "y", "25%"))
	assert.Equal(t, 5., txt.Node.TextX)
	assert.Equal(t, 100., txt.Node.TextY)
}

func TestElementStyle(t *testing.T) {
	e := newRectElement()
	n := e.Node
	assert.Equal(t, svgnode.DefaultStyle.Fill, n.Style.Fill)
	assert.Nil(t, n.Style.Stroke)

	require.NoError(t, e.SetAttributeNS("", "fill", "red"))
	require.NoError(t, e.SetAttributeNS("", "stroke-width", "3"))
	assert.Equal(t, "#ff0000", n.Style.Fill.(Color).Hex())
	assert.Equal(t, 3., n.Style.StrokeWidth)
	assert.True(t, e.HasProperty("fill"))

	// style wins over presentation attributes
	require.NoError(t, e.SetStyle("fill: blue; stroke: #00ff00; opacity: 50%; stroke-linejoin: round; fill-rule: evenodd"))
	assert.Equal(t, "#0000ff", n.Style.Fill.(Color).Hex())
	assert.Equal(t, "#00ff00", n.Style.Stroke.(Color).Hex())
	assert.Equal(t, 0.5, n.Opacity)
	assert.Equal(t, svgnode.Round, n.Style.LineJoin)
	assert.False(t, n.Style.UseNonZeroWinding)
	v, ok := e.Property("fill")
	assert.True(t, ok)
	assert.Equal(t, "blue", v)

	require.NoError(t, e.SetStyle("fill: none; stroke-dasharray: 5, 10; visibility: hidden"))
	assert.Nil(t, n.Style.Fill)
	assert.Nil(t, n.Style.Stroke, "removed from the style")
	assert.Equal(t, []float64{5, 10}, n.Style.Dash)
	assert.False(t, n.Visible)
	assert.Equal(t, 1., n.Opacity)

	require.NoError(t, e.SetStyle(""))
	assert.Equal(t, "#ff0000", n.Style.Fill.(Color).Hex(), "back to the presentation attribute")
	assert.True(t, n.Visible)

	require.NoError(t, e.SetAttributeNS("", "display", "none"))
	assert.False(t, n.Visible)
	e.RemoveAttributeNS("", "display")
	assert.True(t, n.Visible)
}

func TestElementStyleLastDeclaration(t *testing.T) {
	e := newRectElement()
	e.ErrorMode = StrictErrorMode
	require.NoError(t, e.SetStyle("fill: none"))
	assert.Nil(t, e.Node.Style.Fill)
	v, _ := e.Property("fill")
	assert.Equal(t, "none", v)

	require.NoError(t, e.SetStyle(" stroke: blue; visibility: hidden  "))
	assert.Equal(t, "#0000ff", e.Node.Style.Stroke.(Color).Hex())
	assert.False(t, e.Node.Visible)

	require.NoError(t, e.SetStyle("opacity: 0.25;"))
	assert.Equal(t, 0.25, e.Node.Opacity)
}

func TestElementErrorModes(t *testing.T) {
	e := newRectElement()
	e.ErrorMode = StrictErrorMode
	assert.Error(t, e.SetAttributeNS("", "width", "wide"))
	assert.False(t, e.HasAttributeNS("", "width"), "rejected values are not declared")
	assert.Error(t, e.SetAttributeNS("", "fill", "reddish"))
	assert.Error(t, e.SetAttributeNS("", "stroke-linecap", "pointy"))
	assert.Error(t, e.SetStyle("opacity: half"))
	assert.NoError(t, e.SetAttributeNS("", "unknown", "whatever"))
	assert.NoError(t, e.SetAttributeNS("urn:custom", "width", "wide"), "namespaced attributes are not checked")

	var buf bytes.Buffer
	log.SetOutput(&buf)
	defer log.SetOutput(os.Stderr)

	e.ErrorMode = WarnErrorMode
	assert.NoError(t, e.SetAttributeNS("", "width", "wide"))
	assert.Contains(t, buf.String(), "width")
	assert.Equal(t, 0., rectGeometry(t, e).Width, "invalid values use the initial value")

	buf.Reset()
	e.ErrorMode = IgnoreErrorMode
	assert.NoError(t, e.SetAttributeNS("", "height", "tall"))
	assert.Empty(t, buf.String())
}

func TestElementAnimatedOverride(t *testing.T) {
	e := newRectElement()
	var repaints int
	e.Scheduler = RepaintFunc(func(n *svgnode.Node) {
		assert.Equal(t, e.Node, n)
		repaints++
	})
	require.NoError(t, e.SetAttributeNS("", "width", "10"))
	assert.Equal(t, 1, repaints)

	width := e.AnimatedValue("", "width")
	assert.Same(t, width, e.AnimatedValue("", "width"))
	l := &countingListener{}
	e.AddTargetListener("", "width", false, l)
	e.AddTargetListener("", "width", false, l)

	e.UpdateAttributeValue("", "width", Length{25, UnitPercentage})
	assert.Equal(t, 50., rectGeometry(t, e).Width)
	assert.True(t, width.HasAnimatedValue())
	assert.Equal(t, 1, l.calls)
	assert.Equal(t, 2, repaints)

	// the declared value reappears when the override is removed
	e.UpdateAttributeValue("", "width", nil)
	assert.Equal(t, 10., rectGeometry(t, e).Width)
	assert.False(t, width.HasAnimatedValue())
	assert.True(t, width.IsSpecified())
	assert.Equal(t, 2, l.calls)

	// declared changes are notified too
	require.NoError(t, e.SetAttributeNS("", "width", "12"))
	assert.Equal(t, 3, l.calls)

	e.RemoveTargetListener("", "width", false, l)
	e.UpdateAttributeValue("", "width", Number(1))
	assert.Equal(t, 3, l.calls)

	// an animated value is specified without declaration
	height := e.AnimatedValue("", "height")
	assert.False(t, height.IsSpecified())
	e.UpdateAttributeValue("", "height", Number(4))
	assert.True(t, height.IsSpecified())
	assert.Equal(t, 4., rectGeometry(t, e).Height)
}

func TestElementAnimatedProperty(t *testing.T) {
	e := newRectElement()
	require.NoError(t, e.SetStyle("fill: red"))

	fill := &countingListener{}
	e.AddTargetListener("", "fill", true, fill)
	e.UpdatePropertyValue("fill", NewColor(color.RGBA{0, 0, 255, 255}))
	assert.Equal(t, "#0000ff", e.Node.Style.Fill.(Color).Hex())
	assert.Equal(t, 1, fill.calls)

	e.UpdatePropertyValue("fill", nil)
	assert.Equal(t, "#ff0000", e.Node.Style.Fill.(Color).Hex())
	assert.Equal(t, 2, fill.calls)

	// presentation attributes notify the property listeners
	require.NoError(t, e.SetAttributeNS("", "fill", "green"))
	assert.Equal(t, 3, fill.calls)

	assert.False(t, e.UseLinearRGBColorInterpolation())
	e.UpdatePropertyValue("color-interpolation", Keyword("linearRGB"))
	assert.True(t, e.UseLinearRGBColorInterpolation())
}

func TestElementFontSize(t *testing.T) {
	e := NewElement("text", svgnode.NewText("t", "x", 0, 0), DefaultUnitContext(100, 100))
	assert.Equal(t, 16., e.FontSize())

	require.NoError(t, e.SetAttributeNS("", "font-size", "150%"))
	assert.Equal(t, 24., e.FontSize())
	require.NoError(t, e.SetAttributeNS("", "x", "1em"))
	assert.Equal(t, 24., e.Node.TextX)
	assert.Equal(t, 12., e.SVGToUserSpace(0.5, UnitEm, PercentageViewportSize))

	// resolved against the inherited size, not the computed one
	require.NoError(t, e.SetAttributeNS("", "font-size", "2em"))
	assert.Equal(t, 32., e.FontSize())

	uc := e.Units
	uc.FontSize = 10
	e.SetUnits(uc)
	assert.Equal(t, 20., e.FontSize())
	assert.Equal(t, 20., e.Node.TextX)
}

func TestElementTransform(t *testing.T) {
	node := svgnode.NewRect("r", 0, 0, 1, 1)
	node.Transform = rasterx.Identity.Translate(1, 1)
	e := NewElement("rect", node, DefaultUnitContext(100, 100))
	assert.Equal(t, rasterx.Identity.Translate(1, 1), node.Transform)

	require.NoError(t, e.SetAttributeNS("", "transform", "translate(5, 6)"))
	assert.Equal(t, rasterx.Identity.Translate(5, 6), node.Transform)

	e.UpdateAttributeValue("", "transform", Transform{rasterx.Identity.Scale(2, 2)})
	assert.Equal(t, rasterx.Identity.Scale(2, 2), node.Transform)

	e.UpdateAttributeValue("", "transform", nil)
	e.RemoveAttributeNS("", "transform")
	assert.Equal(t, rasterx.Identity.Translate(1, 1), node.Transform)
}

func TestElementPathGeometry(t *testing.T) {
	e := NewElement("path", svgnode.NewShape("p", nil), DefaultUnitContext(100, 100))
	assert.Empty(t, e.Node.Geometry.Path())
	require.NoError(t, e.SetAttributeNS("", "d", "M0 0 H10 V10 Z"))
	assert.Len(t, e.Node.Geometry.Path(), 4)

	e.ErrorMode = StrictErrorMode
	assert.Error(t, e.SetAttributeNS("", "d", "M0 0 L5 5 L"))
	assert.Len(t, e.Node.Geometry.Path(), 4, "rejected")

	// drawn up to the error
	e.ErrorMode = IgnoreErrorMode
	require.NoError(t, e.SetAttributeNS("", "d", "M0 0 L5 5 L"))
	assert.Len(t, e.Node.Geometry.Path(), 2)

	pg := NewElement("polygon", svgnode.NewShape("pg", nil), DefaultUnitContext(100, 100))
	require.NoError(t, pg.SetAttributeNS("", "points", "0,0 10,0 5,5"))
	path := pg.Node.Geometry.Path()
	require.Len(t, path, 4)
	assert.Equal(t, svgpath.Close{}, path[3])
}

func TestElementAnimatedPathData(t *testing.T) {
	e := NewElement("path", svgnode.NewShape("p", nil), DefaultUnitContext(100, 100))
	require.NoError(t, e.SetAttributeNS("", "d", "M0 0 L10 0"))
	require.Len(t, e.Node.Geometry.Path(), 2)

	e.UpdateAttributeValue("", "d", Keyword("M0 0 L10 0 L10 10 L0 10 Z"))
	assert.True(t, e.AnimatedValue("", "d").IsSpecified())
	assert.Len(t, e.Node.Geometry.Path(), 5)

	e.UpdateAttributeValue("", "d", nil)
	assert.Len(t, e.Node.Geometry.Path(), 2, "back to the declared data")

	pg := NewElement("polygon", svgnode.NewShape("pg", nil), DefaultUnitContext(100, 100))
	assert.Empty(t, pg.Node.Geometry.Path())
	pg.UpdateAttributeValue("", "points", Keyword("0,0 10,0 5,5"))
	path := pg.Node.Geometry.Path()
	require.Len(t, path, 4)
	assert.Equal(t, svgpath.Close{}, path[3])
}
