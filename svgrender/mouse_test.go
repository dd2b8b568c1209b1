package svgrender

import (
	"testing"

	"github.com/benoitkugler/svgscene/svgnode"
	"github.com/srwiley/rasterx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type eventLog struct{ events []svgnode.MouseEvent }

func (l *eventLog) HandleMouseEvent(ev svgnode.MouseEvent) { l.events = append(l.events, ev) }

func (l *eventLog) types() []svgnode.MouseEventType {
	var out []svgnode.MouseEventType
	for _, ev := range l.events {
		out = append(out, ev.Type)
	}
	return out
}

func (l *eventLog) reset() { l.events = nil }

func mouse(t svgnode.MouseEventType, x, y float64) svgnode.MouseEvent {
	return svgnode.MouseEvent{Type: t, Button: svgnode.ButtonLeft, X: x, Y: y}
}

// newMouseScene returns a renderer with a 2x zoom over two rectangles
// a (0,0)-(10,10) and b (20,0)-(30,10), in user space.
func newMouseScene(t *testing.T) (r *Renderer, a, b *svgnode.Node) {
	r, err := NewRenderer(newTarget(60, 20), &fakeBackend{})
	require.NoError(t, err)
	root := svgnode.NewGroup("root")
	a = svgnode.NewRect("a", 0, 0, 10, 10)
	b = svgnode.NewRect("b", 20, 0, 10, 10)
	root.AddChild(a)
	root.AddChild(b)
	r.SetTree(root)
	r.SetTransform(rasterx.Identity.Scale(2, 2))
	return r, a, b
}

func TestMouseClick(t *testing.T) {
	r, a, _ := newMouseScene(t)
	la := &eventLog{}
	a.AddMouseListener(la)

	r.HandleMouse(mouse(svgnode.MouseMoved, 10, 10))
	r.HandleMouse(mouse(svgnode.MousePressed, 10, 10))
	r.HandleMouse(mouse(svgnode.MouseReleased, 10, 10))
	assert.Equal(t, []svgnode.MouseEventType{
		svgnode.MouseEntered, svgnode.MouseMoved,
		svgnode.MousePressed, svgnode.MouseReleased, svgnode.MouseClicked,
	}, la.types())

	ev := la.events[0]
	assert.Equal(t, a, ev.Node)
	assert.Equal(t, 5., ev.X, "user space")
	assert.Equal(t, 5., ev.LocalX)

	la.reset()
	r.HandleMouse(mouse(svgnode.MouseMoved, 50, 10))
	assert.Equal(t, []svgnode.MouseEventType{svgnode.MouseExited}, la.types())

	// nothing under the pointer
	la.reset()
	r.HandleMouse(mouse(svgnode.MouseMoved, 30, 30))
	r.HandleMouse(mouse(svgnode.MousePressed, 30, 30))
	r.HandleMouse(mouse(svgnode.MouseReleased, 30, 30))
	assert.Empty(t, la.events)
}

func TestMouseDrag(t *testing.T) {
	r, a, b := newMouseScene(t)
	la, lb := &eventLog{}, &eventLog{}
	a.AddMouseListener(la)
	b.AddMouseListener(lb)

	r.HandleMouse(mouse(svgnode.MousePressed, 10, 10))
	r.HandleMouse(mouse(svgnode.MouseMoved, 50, 10))
	r.HandleMouse(mouse(svgnode.MouseReleased, 50, 10))

	assert.Equal(t, []svgnode.MouseEventType{
		svgnode.MouseEntered, svgnode.MousePressed,
		svgnode.MouseExited, svgnode.MouseDragged, svgnode.MouseReleased,
	}, la.types(), "a captures the events")
	assert.Equal(t, svgnode.ButtonLeft, la.events[3].Button)
	assert.Equal(t, 25., la.events[3].X)
	assert.Equal(t, []svgnode.MouseEventType{svgnode.MouseEntered}, lb.types())
}

func TestMouseBubbling(t *testing.T) {
	r, a, _ := newMouseScene(t)
	lroot := &eventLog{}
	r.Tree().AddMouseListener(lroot)

	r.HandleMouse(mouse(svgnode.MousePressed, 10, 10))
	require.Equal(t, []svgnode.MouseEventType{svgnode.MouseEntered, svgnode.MousePressed}, lroot.types())
	assert.Equal(t, r.Tree(), lroot.events[1].Node)
	assert.NotEqual(t, a, lroot.events[1].Node)

	// a new tree resets the pointer state
	r.SetTree(nil)
	r.HandleMouse(mouse(svgnode.MouseReleased, 10, 10))
	assert.Len(t, lroot.events, 2)
}
