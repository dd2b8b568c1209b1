package svgnode

// MouseEventType identifies the kind of a MouseEvent.
type MouseEventType uint8

const (
	MousePressed MouseEventType = iota
	MouseReleased
	MouseClicked
	MouseMoved
	MouseDragged
	MouseEntered
	MouseExited
)

func (t MouseEventType) String() string {
	switch t {
	case MousePressed:
		return "Pressed"
	case MouseReleased:
		return "Released"
	case MouseClicked:
		return "Clicked"
	case MouseMoved:
		return "Moved"
	case MouseDragged:
		return "Dragged"
	case MouseEntered:
		return "Entered"
	case MouseExited:
		return "Exited"
	default:
		return "<unknown MouseEventType>"
	}
}

// MouseButton identifies the button involved in an event.
type MouseButton uint8

const (
	ButtonNone MouseButton = iota
	ButtonLeft
	ButtonMiddle
	ButtonRight
)

// MouseEvent is dispatched to the listeners of the node under the pointer.
type MouseEvent struct {
	Type   MouseEventType
	Button MouseButton
	// X, Y are expressed in the root user space.
	X, Y float64
	// LocalX, LocalY are expressed in the coordinates of Node.
	LocalX, LocalY float64
	// Node is the target of the event.
	Node *Node
}

// MouseListener receives the mouse events of a node.
// Listeners are compared with ==, so they should be pointers
// or other comparable values.
type MouseListener interface {
	HandleMouseEvent(ev MouseEvent)
}

// AddMouseListener registers l. Registering the same listener twice
// delivers the events twice.
func (n *Node) AddMouseListener(l MouseListener) {
	n.mouseListeners = append(n.mouseListeners, l)
}

// RemoveMouseListener removes the first registration of l, if any.
func (n *Node) RemoveMouseListener(l MouseListener) {
	for i, other := range n.mouseListeners {
		if other == l {
			n.mouseListeners = append(n.mouseListeners[:i:i], n.mouseListeners[i+1:]...)
			return
		}
	}
}

// HasMouseListener reports whether l is registered on n.
func (n *Node) HasMouseListener(l MouseListener) bool {
	for _, other := range n.mouseListeners {
		if other == l {
			return true
		}
	}
	return false
}

// FireMouseEvent delivers ev to the listeners of n, in registration order,
// with ev.Node set to n. Listeners may add or remove listeners: the
// delivery uses the list as it was when the call started.
func (n *Node) FireMouseEvent(ev MouseEvent) {
	if len(n.mouseListeners) == 0 {
		return
	}
	ev.Node = n
	ev.LocalX, ev.LocalY = n.ToLocal(ev.X, ev.Y)
	snapshot := append([]MouseListener(nil), n.mouseListeners...)
	for _, l := range snapshot {
		l.HandleMouseEvent(ev)
	}
}
