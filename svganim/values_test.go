package svganim

import (
	"math"
	"testing"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/srwiley/rasterx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseColor(t *testing.T) {
	for _, tc := range []struct {
		in  string
		hex string
	}{
		{"#ff0000", "#ff0000"},
		{"#0F0", "#00ff00"},
		{"rgb(0, 0, 255)", "#0000ff"},
		{"rgb(100%,50%,0%)", "#ff8000"},
		{"red", "#ff0000"},
		{"CornflowerBlue", "#6495ed"},
		{" white ", "#ffffff"},
	} {
		c, err := ParseColor(tc.in)
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.hex, c.String(), tc.in)
	}

	for _, in := range []string{"", "#12", "#gggggg", "rgb(1,2)", "rgb(a,b,c)", "notacolor"} {
		_, err := ParseColor(in)
		assert.ErrorIs(t, err, errInvalidColor, in)
	}

	v, err := ParsePaint("none")
	require.NoError(t, err)
	assert.Equal(t, Keyword("none"), v)
	v, err = ParsePaint("blue")
	require.NoError(t, err)
	assert.Equal(t, Color{colorful.Color{B: 1}}, v)
}

func TestParseTransform(t *testing.T) {
	m, err := ParseTransform("translate(10, 20) scale(2)")
	require.NoError(t, err)
	x, y := m.Transform(1, 1)
	assert.InDelta(t, 12, x, 1e-9)
	assert.InDelta(t, 22, y, 1e-9)

	m, err = ParseTransform("rotate(90 10 10)")
	require.NoError(t, err)
	x, y = m.Transform(20, 10)
	assert.InDelta(t, 10, x, 1e-9)
	assert.InDelta(t, 20, y, 1e-9)

	m, err = ParseTransform("matrix(1 0 0 1 5 6)")
	require.NoError(t, err)
	assert.Equal(t, rasterx.Identity.Translate(5, 6), m)

	m, err = ParseTransform("skewX(45)")
	require.NoError(t, err)
	x, _ = m.Transform(0, 1)
	assert.InDelta(t, math.Tan(math.Pi/4), x, 1e-9)

	for _, in := range []string{"translate(1,2,3)", "scale()", "foo(1)", "translate(a)"} {
		_, err := ParseTransform(in)
		assert.Error(t, err, in)
	}

	assert.Equal(t, "matrix(1 0 0 1 5 6)", Transform{rasterx.Identity.Translate(5, 6)}.String())
}
