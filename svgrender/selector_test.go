package svgrender

import (
	"testing"

	"github.com/benoitkugler/svgscene/svgnode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/basicfont"
)

func TestCaretIndex(t *testing.T) {
	n := svgnode.NewText("t", "Hello", 10, 20)
	face := basicfont.Face7x13 // 7 pixels per glyph
	for _, test := range []struct {
		x    float64
		want int
	}{
		{0, 0},
		{13, 0},
		{14, 1},
		{20, 1},
		{40, 4},
		{100, 5},
	} {
		assert.Equal(t, test.want, caretIndex(face, n, test.x), "x = %g", test.x)
	}
}

func TestTextSelection(t *testing.T) {
	r, err := NewRenderer(newTarget(100, 40), &fakeBackend{})
	require.NoError(t, err)
	root := svgnode.NewGroup("root")
	txt := svgnode.NewText("t", "Hello", 0, 20)
	root.AddChild(txt)
	r.SetTree(root)
	r.InitSelectors()

	ts := r.Selector().(*TextSelector)
	var changes []Selection
	ts.AddSelectionListener(SelectionFunc(func(sel Selection) { changes = append(changes, sel) }))

	r.HandleMouse(mouse(svgnode.MousePressed, 8, 15))
	r.HandleMouse(mouse(svgnode.MouseMoved, 30, 15))
	r.HandleMouse(mouse(svgnode.MouseMoved, 31, 15)) // same caret
	r.HandleMouse(mouse(svgnode.MouseReleased, 31, 15))

	sel := ts.Selection()
	assert.Equal(t, Selection{Node: txt, Start: 1, End: 4}, sel)
	assert.Equal(t, "ell", sel.Text())
	require.Len(t, changes, 2)
	assert.True(t, changes[0].IsEmpty())
	assert.Equal(t, sel, changes[1])

	// moving without button does not change the selection
	r.HandleMouse(mouse(svgnode.MouseMoved, 2, 15))
	assert.Equal(t, sel, ts.Selection())

	// backward selection
	r.HandleMouse(mouse(svgnode.MousePressed, 30, 15))
	r.HandleMouse(mouse(svgnode.MouseMoved, 2, 15))
	assert.Equal(t, "Hell", ts.Selection().Text())

	ts.ClearSelection()
	assert.True(t, ts.Selection().IsEmpty())
	assert.Equal(t, "", ts.Selection().Text())
	assert.Len(t, changes, 5)
}

func TestSelectorIgnoresOtherNodes(t *testing.T) {
	ts := NewTextSelector(svgnode.NewRenderContext())
	rect := svgnode.NewRect("r", 0, 0, 10, 10)
	ts.HandleMouseEvent(svgnode.MouseEvent{Type: svgnode.MousePressed, Button: svgnode.ButtonLeft, Node: rect})
	assert.Nil(t, ts.Selection().Node)

	txt := svgnode.NewText("t", "abc", 0, 10)
	ts.HandleMouseEvent(svgnode.MouseEvent{Type: svgnode.MousePressed, Button: svgnode.ButtonRight, Node: txt})
	assert.Nil(t, ts.Selection().Node, "only the left button selects")
}

func TestSelectionTextClamped(t *testing.T) {
	txt := svgnode.NewText("t", "hello world", 0, 10)
	sel := Selection{Node: txt, Start: 0, End: 10}
	assert.Equal(t, "hello worl", sel.Text())

	txt.Text = "hi"
	assert.Equal(t, "hi", sel.Text())

	sel.Start = 5
	assert.Equal(t, "", sel.Text())
}
