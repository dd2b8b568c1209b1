package svganim

import (
	"testing"

	"github.com/benoitkugler/svgscene/svgnode"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/srwiley/rasterx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnimationFillModes(t *testing.T) {
	e := newRectElement()
	require.NoError(t, e.SetAttributeNS("", "width", "10"))

	a, err := NewAnimation(e, "", "width", false, Number(0), Length{50, UnitPercentage}, 1, nil)
	require.NoError(t, err)

	a.Update(0)
	assert.Equal(t, 0., rectGeometry(t, e).Width)
	a.Update(0.5)
	assert.InDelta(t, 50, rectGeometry(t, e).Width, 1e-4) // half of 100
	assert.False(t, a.Done)
	a.Update(0.5)
	assert.True(t, a.Done)
	assert.Equal(t, 10., rectGeometry(t, e).Width, "removed: the declared value is back")
	assert.False(t, e.AnimatedValue("", "width").HasAnimatedValue())

	a.Reset()
	a.Fill = FillFreeze
	a.Update(2)
	assert.True(t, a.Done)
	assert.InDelta(t, 100, rectGeometry(t, e).Width, 1e-4)
	assert.True(t, e.AnimatedValue("", "width").HasAnimatedValue())
}

func TestAnimationValues(t *testing.T) {
	e := newRectElement()

	a, err := NewAnimation(e, "", "x", false, Length{1, UnitEm}, Length{3, UnitEm}, 1, nil)
	require.NoError(t, err)
	assert.Equal(t, Length{2, UnitEm}, a.ValueAt(0.5))

	a, err = NewAnimation(e, "", "visibility", true, Keyword("visible"), Keyword("hidden"), 1, nil)
	require.NoError(t, err)
	assert.Equal(t, Keyword("visible"), a.ValueAt(0.2))
	assert.Equal(t, Keyword("hidden"), a.ValueAt(0.7))

	a, err = NewAnimation(e, "", "transform", false,
		Transform{rasterx.Identity}, Transform{rasterx.Identity.Translate(10, 0)}, 1, nil)
	require.NoError(t, err)
	assert.Equal(t, Transform{rasterx.Identity.Translate(5, 0)}, a.ValueAt(0.5))

	_, err = NewAnimation(e, "", "fill", true, Number(1), Keyword("none"), 1, nil)
	assert.ErrorIs(t, err, errIncompatibleValues)
	_, err = NewAnimation(e, "", "fill", true, nil, Number(1), 1, nil)
	assert.ErrorIs(t, err, errIncompatibleValues)
}

func TestAnimationColorSpace(t *testing.T) {
	e := newRectElement()
	black, white := Color{colorful.Color{}}, Color{colorful.Color{R: 1, G: 1, B: 1}}
	a, err := NewAnimation(e, "", "fill", true, black, white, 1, nil)
	require.NoError(t, err)

	srgb := a.ValueAt(0.5).(Color)
	assert.InDelta(t, 0.5, srgb.R, 1e-9)

	e.UpdatePropertyValue("color-interpolation", Keyword("linearRGB"))
	linear := a.ValueAt(0.5).(Color)
	assert.Greater(t, linear.R, 0.7, "linear blending is lighter in sRGB")

	a.Fill = FillFreeze
	a.Update(1)
	assert.Equal(t, white.Hex(), e.Node.Style.Fill.(Color).Hex())
}

func TestTimeline(t *testing.T) {
	e := newRectElement()
	short, err := NewAnimation(e, "", "x", false, Number(0), Number(10), 1, nil)
	require.NoError(t, err)
	long, err := NewAnimation(e, "", "y", false, Number(0), Number(10), 3, nil)
	require.NoError(t, err)
	long.Fill = FillFreeze

	var tl Timeline
	tl.Add(short)
	tl.Add(long)
	assert.Equal(t, 2, tl.Len())

	tl.Update(1.5)
	assert.Equal(t, 1, tl.Len())
	assert.Equal(t, 0., rectGeometry(t, e).X)
	assert.InDelta(t, 5, rectGeometry(t, e).Y, 1e-4)

	tl.Update(2)
	assert.Equal(t, 0, tl.Len())
	assert.InDelta(t, 10, rectGeometry(t, e).Y, 1e-4)

	var node *svgnode.Node
	e.Scheduler = RepaintFunc(func(n *svgnode.Node) { node = n })
	long.Reset()
	tl.Add(long)
	tl.Update(0.1)
	assert.Equal(t, e.Node, node)
}
