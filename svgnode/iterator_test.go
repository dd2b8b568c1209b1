package svgnode

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sampleTree builds
//
//	root
//	├── a
//	│   ├── a1
//	│   └── a2
//	├── b
//	└── c
//	    └── c1
//	        └── c11
func sampleTree() (*Node, map[string]*Node) {
	nodes := map[string]*Node{}
	group := func(name string) *Node {
		n := NewGroup(name)
		nodes[name] = n
		return n
	}
	leaf := func(name string) *Node {
		n := NewRect(name, 0, 0, 1, 1)
		nodes[name] = n
		return n
	}
	root := group("root")
	a := group("a")
	a.AddChild(leaf("a1"))
	a.AddChild(leaf("a2"))
	c := group("c")
	c1 := group("c1")
	c1.AddChild(leaf("c11"))
	c.AddChild(c1)
	root.AddChild(a)
	root.AddChild(leaf("b"))
	root.AddChild(c)
	return root, nodes
}

func names(it *Iterator) (out []string, depths []int) {
	for it.HasNext() {
		n := it.Next()
		out = append(out, n.Name)
		depths = append(depths, it.Depth())
	}
	return out, depths
}

func TestIteratorPreOrder(t *testing.T) {
	root, _ := sampleTree()
	got, depths := names(NewIterator(root))
	assert.Equal(t, []string{"root", "a", "a1", "a2", "b", "c", "c1", "c11"}, got)
	assert.Equal(t, []int{0, 1, 2, 2, 1, 1, 2, 3}, depths)
}

func TestIteratorExhaustion(t *testing.T) {
	root, _ := sampleTree()
	it := NewIterator(root)
	for it.HasNext() {
		it.Next()
	}
	assert.False(t, it.HasNext())
	assert.False(t, it.HasNext(), "HasNext must be idempotent")
	assert.Nil(t, it.Next())

	it.Reset()
	require.True(t, it.HasNext())
	assert.Equal(t, root, it.Next())
}

func TestIteratorSingleNode(t *testing.T) {
	leaf := NewRect("leaf", 0, 0, 1, 1)
	got, _ := names(NewIterator(leaf))
	assert.Equal(t, []string{"leaf"}, got)

	empty := NewGroup("empty")
	got, _ = names(NewIterator(empty))
	assert.Equal(t, []string{"empty"}, got)

	assert.False(t, NewIterator(nil).HasNext())
}

func TestIteratorSubtree(t *testing.T) {
	_, nodes := sampleTree()
	got, depths := names(NewIterator(nodes["c"]))
	assert.Equal(t, []string{"c", "c1", "c11"}, got)
	assert.Equal(t, []int{0, 1, 2}, depths)
}

func TestIteratorSkipChildren(t *testing.T) {
	root, nodes := sampleTree()

	// skip before peeking
	var got []string
	it := NewIterator(root)
	for it.HasNext() {
		n := it.Next()
		got = append(got, n.Name)
		if n == nodes["a"] || n == nodes["c1"] {
			it.SkipChildren()
		}
	}
	assert.Equal(t, []string{"root", "a", "b", "c", "c1"}, got)

	// skip after peeking
	it = NewIterator(root)
	it.Next() // root
	require.Equal(t, nodes["a"], it.Next())
	require.True(t, it.HasNext())
	it.SkipChildren()
	rest, depths := names(it)
	assert.Equal(t, []string{"b", "c", "c1", "c11"}, rest)
	assert.Equal(t, []int{1, 1, 2, 3}, depths)
}

func TestIteratorRemove(t *testing.T) {
	root, _ := sampleTree()
	it := NewIterator(root)
	it.Next()
	assert.True(t, errors.Is(it.Remove(), errors.ErrUnsupported))
	assert.Equal(t, 3, root.NumChildren())
}

func TestIteratorDeepTree(t *testing.T) {
	const depth = 100_000
	root := NewGroup("root")
	current := root
	for range depth {
		child := NewGroup("")
		current.AddChild(child)
		current = child
	}
	count, maxDepth := 0, 0
	it := NewIterator(root)
	for it.HasNext() {
		it.Next()
		count++
		maxDepth = max(maxDepth, it.Depth())
	}
	assert.Equal(t, depth+1, count)
	assert.Equal(t, depth, maxDepth)
}

func TestAll(t *testing.T) {
	root, _ := sampleTree()
	var got []string
	for n := range All(root) {
		got = append(got, n.Name)
		if n.Name == "b" {
			break
		}
	}
	assert.Equal(t, []string{"root", "a", "a1", "a2", "b"}, got)
}
