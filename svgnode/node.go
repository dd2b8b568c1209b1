// Implements the graphics node tree: a mutable scene graph of
// groups and leaves (shapes, text, images) which can be painted
// through a raster backend and wired to mouse listeners.
//
// The tree is not safe for concurrent use: structural edits must not
// happen while a traversal or a paint is in progress.
package svgnode

import (
	"image"

	"github.com/srwiley/rasterx"
)

// Kind tags the capability set of a Node.
type Kind uint8

const (
	// KindGroup is a composite node, owning an ordered list of children.
	KindGroup Kind = iota
	// KindShape is a leaf painted from its Geometry.
	KindShape
	// KindText is a selectable leaf holding a single line of text.
	KindText
	// KindImage is a leaf drawing a raster image.
	KindImage
)

func (k Kind) String() string {
	switch k {
	case KindGroup:
		return "Group"
	case KindShape:
		return "Shape"
	case KindText:
		return "Text"
	case KindImage:
		return "Image"
	default:
		return "<unknown Kind>"
	}
}

// nodeIDCounter is a plain counter (the tree is single-threaded).
var nodeIDCounter uint32

func nextNodeID() uint32 {
	nodeIDCounter++
	return nodeIDCounter
}

// Node is the element of the scene tree. A single flat struct is used for
// all kinds of nodes; the Kind field selects which payload is meaningful.
type Node struct {
	ID   uint32
	Name string
	Kind Kind

	// Parent is a non-owning back reference, nil for a root.
	Parent   *Node
	children []*Node // paint order = list order = document order

	// Transform maps the node coordinates to its parent coordinates.
	// The zero matrix is treated as the identity.
	Transform rasterx.Matrix2D

	Visible bool
	Opacity float64
	Style   Style

	// Shape payload (KindShape)
	Geometry Geometry

	// Text payload (KindText): a single line starting at the baseline
	// point (TextX, TextY)
	Text         string
	TextX, TextY float64

	// Image payload (KindImage): Image is scaled into ImageRect
	Image     image.Image
	ImageRect Rect

	// Selectable nodes receive the renderer selection controller.
	Selectable bool

	UserData any

	mouseListeners []MouseListener
}

// nodeDefaults sets the common default field values shared by all constructors.
func nodeDefaults(n *Node) {
	n.ID = nextNodeID()
	n.Transform = rasterx.Identity
	n.Visible = true
	n.Opacity = 1
	n.Style = DefaultStyle
}

// NewGroup creates a composite node with no visual representation.
func NewGroup(name string) *Node {
	n := &Node{Name: name, Kind: KindGroup}
	nodeDefaults(n)
	return n
}

// NewShape creates a shape node painted from the given geometry.
func NewShape(name string, g Geometry) *Node {
	n := &Node{Name: name, Kind: KindShape, Geometry: g}
	nodeDefaults(n)
	return n
}

// NewRect is a shortcut for a shape with a RectGeometry.
func NewRect(name string, x, y, w, h float64) *Node {
	return NewShape(name, &RectGeometry{X: x, Y: y, Width: w, Height: h})
}

// NewEllipse is a shortcut for a shape with an EllipseGeometry.
func NewEllipse(name string, cx, cy, rx, ry float64) *Node {
	return NewShape(name, &EllipseGeometry{CX: cx, CY: cy, RX: rx, RY: ry})
}

// NewLine is a shortcut for a shape with a LineGeometry.
// Lines are only stroked.
func NewLine(name string, x1, y1, x2, y2 float64) *Node {
	n := NewShape(name, &LineGeometry{X1: x1, Y1: y1, X2: x2, Y2: y2})
	n.Style.Fill = nil
	return n
}

// NewText creates a selectable text node, with its baseline starting at (x, y).
func NewText(name, text string, x, y float64) *Node {
	n := &Node{Name: name, Kind: KindText, Text: text, TextX: x, TextY: y, Selectable: true}
	nodeDefaults(n)
	return n
}

// NewImage creates a node drawing img scaled into the rectangle r.
func NewImage(name string, img image.Image, r Rect) *Node {
	n := &Node{Name: name, Kind: KindImage, Image: img, ImageRect: r}
	nodeDefaults(n)
	return n
}

// IsComposite returns true for group nodes.
func (n *Node) IsComposite() bool { return n.Kind == KindGroup }

// IsSelectable returns true if the node accepts the selection controller.
func (n *Node) IsSelectable() bool { return n.Selectable }

// IsMouseListenable returns true if at least one mouse listener is registered.
func (n *Node) IsMouseListenable() bool { return len(n.mouseListeners) > 0 }

// localTransform returns the node transform, mapping the zero matrix to Identity.
func (n *Node) localTransform() rasterx.Matrix2D {
	if n.Transform == (rasterx.Matrix2D{}) {
		return rasterx.Identity
	}
	return n.Transform
}

// --- Tree manipulation ---

// Children returns the ordered children of a group.
// The returned slice must not be modified.
func (n *Node) Children() []*Node { return n.children }

// NumChildren returns the number of children.
func (n *Node) NumChildren() int { return len(n.children) }

// AddChild appends child to this node's children.
// If child already has a parent, it is removed from that parent first.
// Panics if n is not a group, if child is nil or if child is an
// ancestor of this node (cycle).
func (n *Node) AddChild(child *Node) {
	n.InsertChild(child, len(n.children))
}

// InsertChild inserts child at the given index.
// Same reparenting and cycle-check behavior as AddChild.
func (n *Node) InsertChild(child *Node, index int) {
	if !n.IsComposite() {
		panic("svgnode: only groups may have children")
	}
	if child == nil {
		panic("svgnode: cannot add nil child")
	}
	if isAncestor(child, n) {
		panic("svgnode: adding child would create a cycle")
	}
	if child.Parent != nil {
		child.Parent.removeChild(child)
		if child.Parent == n && index > len(n.children) {
			index = len(n.children)
		}
	}
	if index < 0 || index > len(n.children) {
		panic("svgnode: child index out of range")
	}
	child.Parent = n
	n.children = append(n.children, nil)
	copy(n.children[index+1:], n.children[index:])
	n.children[index] = child
}

// RemoveChild detaches child from this node.
// Panics if child.Parent != n.
func (n *Node) RemoveChild(child *Node) {
	if child.Parent != n {
		panic("svgnode: child's parent is not this node")
	}
	n.removeChild(child)
	child.Parent = nil
}

func (n *Node) removeChild(child *Node) {
	for i, c := range n.children {
		if c == child {
			copy(n.children[i:], n.children[i+1:])
			n.children[len(n.children)-1] = nil
			n.children = n.children[:len(n.children)-1]
			return
		}
	}
}

// isAncestor reports whether candidate is n or one of its ancestors.
func isAncestor(candidate, n *Node) bool {
	for p := n; p != nil; p = p.Parent {
		if p == candidate {
			return true
		}
	}
	return false
}

// Root walks up the parent chain.
func (n *Node) Root() *Node {
	for n.Parent != nil {
		n = n.Parent
	}
	return n
}

// GlobalTransform returns the transform from the node coordinates
// to the coordinates of its root.
func (n *Node) GlobalTransform() rasterx.Matrix2D {
	m := n.localTransform()
	for p := n.Parent; p != nil; p = p.Parent {
		m = p.localTransform().Mult(m)
	}
	return m
}
