package svgrender

import (
	"github.com/benoitkugler/svgscene/svgnode"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// Selection is a range of characters of a text node.
// Start and End are rune indices, with Start <= End.
type Selection struct {
	Node       *svgnode.Node
	Start, End int
}

// IsEmpty returns true if no character is selected.
func (s Selection) IsEmpty() bool { return s.Node == nil || s.Start == s.End }

// Text returns the selected characters. The range is clamped to the
// current text of the node.
func (s Selection) Text() string {
	if s.IsEmpty() {
		return ""
	}
	runes := []rune(s.Node.Text)
	start := min(max(s.Start, 0), len(runes))
	end := min(max(s.End, start), len(runes))
	return string(runes[start:end])
}

// SelectionListener is notified when the selection changes.
type SelectionListener interface {
	SelectionChanged(sel Selection)
}

// SelectionFunc adapts a function to SelectionListener.
type SelectionFunc func(sel Selection)

func (f SelectionFunc) SelectionChanged(sel Selection) { f(sel) }

// TextSelector is the default selection controller: pressing a button on
// a text node sets the selection anchor, and dragging moves its focus.
// Caret positions are computed with the advances of the render context
// font face.
type TextSelector struct {
	ctx *svgnode.RenderContext

	node          *svgnode.Node
	anchor, focus int
	selecting     bool

	listeners []SelectionListener
}

// NewTextSelector returns a selector measuring glyphs with ctx.
func NewTextSelector(ctx *svgnode.RenderContext) *TextSelector {
	return &TextSelector{ctx: ctx}
}

// Selection returns the current selection, which may be empty.
func (ts *TextSelector) Selection() Selection {
	start, end := min(ts.anchor, ts.focus), max(ts.anchor, ts.focus)
	return Selection{Node: ts.node, Start: start, End: end}
}

// ClearSelection empties the selection.
func (ts *TextSelector) ClearSelection() {
	if ts.node == nil {
		return
	}
	ts.node, ts.anchor, ts.focus, ts.selecting = nil, 0, 0, false
	ts.notify()
}

// AddSelectionListener registers l; it is called after every change.
func (ts *TextSelector) AddSelectionListener(l SelectionListener) {
	ts.listeners = append(ts.listeners, l)
}

func (ts *TextSelector) notify() {
	sel := ts.Selection()
	for _, l := range ts.listeners {
		l.SelectionChanged(sel)
	}
}

// HandleMouseEvent implements svgnode.MouseListener.
func (ts *TextSelector) HandleMouseEvent(ev svgnode.MouseEvent) {
	n := ev.Node
	if n == nil || n.Kind != svgnode.KindText {
		return
	}
	switch ev.Type {
	case svgnode.MousePressed:
		if ev.Button != svgnode.ButtonLeft {
			return
		}
		index := caretIndex(ts.ctx.Face(), n, ev.LocalX)
		ts.node, ts.anchor, ts.focus, ts.selecting = n, index, index, true
		ts.notify()
	case svgnode.MouseDragged:
		if !ts.selecting || n != ts.node {
			return
		}
		if index := caretIndex(ts.ctx.Face(), n, ev.LocalX); index != ts.focus {
			ts.focus = index
			ts.notify()
		}
	case svgnode.MouseReleased:
		ts.selecting = false
	}
}

// caretIndex returns the caret position, between 0 and the number of
// runes of the text, closest to the abscissa x (in node coordinates).
func caretIndex(face font.Face, n *svgnode.Node, x float64) int {
	pos := fixed.Int26_6((x - n.TextX) * 64)
	var (
		dot   fixed.Int26_6
		prev  rune = -1
		index int
	)
	for _, c := range n.Text {
		if prev >= 0 {
			dot += face.Kern(prev, c)
		}
		adv, _ := face.GlyphAdvance(c)
		if pos < dot+adv/2 {
			return index
		}
		dot += adv
		prev = c
		index++
	}
	return index
}
