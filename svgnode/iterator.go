package svgnode

import (
	"errors"
	"iter"
)

// frame records a composite being expanded and the index
// of its next child to produce.
type frame struct {
	node *Node
	next int
}

// Iterator is a non recursive, pre-order traversal of a tree:
// every node is produced exactly once, parents before their children,
// children in list order and before the following siblings.
// The root is the first node produced.
//
// The walk keeps one explicit stack of frames, so its memory use only
// depends on the depth of the tree, which may be arbitrary.
// The tree must not be structurally modified during the traversal.
type Iterator struct {
	root  *Node
	stack []frame // ancestors of the current node, root first

	current *Node // last produced node
	depth   int   // depth of current

	peeked    *Node
	peekDepth int
	hasPeek   bool

	started bool
	skip    bool
}

// NewIterator returns an iterator over the tree rooted at root.
// A nil root produces nothing.
func NewIterator(root *Node) *Iterator {
	return &Iterator{root: root}
}

// Reset restarts the traversal from the root.
func (it *Iterator) Reset() {
	it.stack = it.stack[:0]
	it.current, it.depth = nil, 0
	it.peeked, it.peekDepth, it.hasPeek = nil, 0, false
	it.started, it.skip = false, false
}

// advance computes the node following current, updating the stack.
func (it *Iterator) advance() (*Node, int) {
	if !it.started {
		it.started = true
		return it.root, 0
	}
	cur := it.current
	if cur == nil { // exhausted
		return nil, 0
	}
	skip := it.skip
	it.skip = false
	if !skip && len(cur.children) != 0 {
		it.stack = append(it.stack, frame{node: cur, next: 1})
		return cur.children[0], len(it.stack)
	}
	for len(it.stack) != 0 {
		top := &it.stack[len(it.stack)-1]
		if top.next < len(top.node.children) {
			child := top.node.children[top.next]
			top.next++
			return child, len(it.stack)
		}
		// this level is exhausted, resume the parent level
		it.stack = it.stack[:len(it.stack)-1]
	}
	return nil, 0
}

// HasNext returns true while there are nodes left to produce.
func (it *Iterator) HasNext() bool {
	if !it.hasPeek {
		it.peeked, it.peekDepth = it.advance()
		it.hasPeek = true
	}
	return it.peeked != nil
}

// Next returns the next node, or nil when the traversal is over.
func (it *Iterator) Next() *Node {
	if !it.hasPeek {
		it.peeked, it.peekDepth = it.advance()
	}
	it.hasPeek = false
	it.current, it.depth = it.peeked, it.peekDepth
	return it.current
}

// Depth returns the depth of the node last returned by Next,
// the root having depth 0.
func (it *Iterator) Depth() int { return it.depth }

// SkipChildren prunes the descendants of the node last returned by Next.
func (it *Iterator) SkipChildren() {
	cur := it.current
	if cur == nil || len(cur.children) == 0 {
		return
	}
	if !it.hasPeek {
		it.skip = true
		return
	}
	// HasNext already descended into cur: undo it
	if n := len(it.stack); n != 0 && it.stack[n-1].node == cur && it.stack[n-1].next == 1 {
		it.stack = it.stack[:n-1]
		it.hasPeek = false
		it.skip = true
	}
}

// Remove is not supported: the iterator never mutates the tree.
func (it *Iterator) Remove() error {
	return errors.ErrUnsupported
}

// All returns the pre-order sequence of the nodes of the tree rooted at root.
func All(root *Node) iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		it := NewIterator(root)
		for it.HasNext() {
			if !yield(it.Next()) {
				return
			}
		}
	}
}
