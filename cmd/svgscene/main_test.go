package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/benoitkugler/svgscene/svganim"
	"github.com/benoitkugler/svgscene/svgnode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildScene(t *testing.T) {
	var repainted int
	sc, err := buildScene(svganim.DefaultUnitContext(200, 100), svganim.RepaintFunc(func(*svgnode.Node) { repainted++ }), 1)
	require.NoError(t, err)
	assert.Len(t, sc.elements, len(demoElements))
	assert.Equal(t, 4, sc.timeline.Len())

	var names []string
	for n := range svgnode.All(sc.root) {
		names = append(names, n.Name)
	}
	assert.Equal(t, []string{"root", "background", "group", "ball", "square", "baseline", "wave", "marker", "caption"}, names)

	bg := sc.elements[0].Node.Geometry.(*svgnode.RectGeometry)
	assert.Equal(t, 200., bg.Width)
	assert.Equal(t, 100., bg.Height)

	sc.timeline.Update(1)
	assert.Equal(t, 0, sc.timeline.Len())
	assert.NotZero(t, repainted)
	caption := sc.elements[len(sc.elements)-1].Node
	assert.False(t, caption.Visible, "frozen at the end value")
}

func TestRenderFrames(t *testing.T) {
	dir := t.TempDir()
	cmd := newRootCmd()
	cmd.SetArgs([]string{"render", "--out", dir, "--frames", "3", "--width", "40", "--height", "30"})
	require.NoError(t, cmd.Execute())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "frame000.png", entries[0].Name())

	cmd = newRootCmd()
	cmd.SetArgs([]string{"render", "--out", dir, "--config", filepath.Join(dir, "missing.toml")})
	assert.Error(t, cmd.Execute())

	cmd = newRootCmd()
	cmd.SetArgs([]string{"render", "--out", dir, "--frames", "0"})
	assert.Error(t, cmd.Execute())
}
