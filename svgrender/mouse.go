package svgrender

import "github.com/benoitkugler/svgscene/svgnode"

type mouseState struct {
	hover   *svgnode.Node // node under the pointer
	pressed *svgnode.Node // node capturing the events while a button is down
	button  svgnode.MouseButton
	dragged bool
}

// HandleMouse dispatches a pointer event of the offscreen target.
// ev.X and ev.Y are given in device space, and ev.Type should be one of
// MousePressed, MouseReleased or MouseMoved: the renderer derives the
// entered, exited, dragged and clicked events.
//
// Events are delivered to the node under the pointer, then to its
// ancestors. While a button is down, the pressed node captures
// the moves, as dragged events.
func (r *Renderer) HandleMouse(ev svgnode.MouseEvent) {
	if r.tree == nil {
		return
	}
	ev.X, ev.Y = r.usr2dev.Invert().Transform(ev.X, ev.Y)
	target := svgnode.NodeAt(r.tree, r.ctx, ev.X, ev.Y)

	ms := &r.mouse
	if target != ms.hover {
		if ms.hover != nil {
			dispatch(ms.hover, withType(ev, svgnode.MouseExited))
		}
		if target != nil {
			dispatch(target, withType(ev, svgnode.MouseEntered))
		}
		ms.hover = target
	}

	switch ev.Type {
	case svgnode.MousePressed:
		ms.pressed, ms.button, ms.dragged = target, ev.Button, false
		dispatch(target, ev)
	case svgnode.MouseMoved:
		if ms.pressed != nil {
			ms.dragged = true
			ev.Type, ev.Button = svgnode.MouseDragged, ms.button
			dispatch(ms.pressed, ev)
		} else {
			dispatch(target, ev)
		}
	case svgnode.MouseReleased:
		pressed, dragged := ms.pressed, ms.dragged
		ms.pressed, ms.dragged = nil, false
		if pressed == nil {
			dispatch(target, ev)
			return
		}
		dispatch(pressed, ev)
		if pressed == target && !dragged {
			dispatch(target, withType(ev, svgnode.MouseClicked))
		}
	default:
		dispatch(target, ev)
	}
}

func withType(ev svgnode.MouseEvent, t svgnode.MouseEventType) svgnode.MouseEvent {
	ev.Type = t
	return ev
}

// dispatch fires ev on n and its ancestors.
func dispatch(n *svgnode.Node, ev svgnode.MouseEvent) {
	for ; n != nil; n = n.Parent {
		n.FireMouseEvent(ev)
	}
}
