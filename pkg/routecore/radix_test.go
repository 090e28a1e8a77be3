package routecore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPayload() *NodePayload[int] { return NewNodePayload[int]() }

func TestRadixNode_FindOrCreateThenFindExact(t *testing.T) {
	root := NewRadixRoot(newTestPayload)

	root.FindOrCreate("/about/us")
	root.FindOrCreate("/about/team")

	assert.NotNil(t, root.FindExact("/about/us"))
	assert.NotNil(t, root.FindExact("/about/team"))
	assert.Nil(t, root.FindExact("/about"))
	assert.Nil(t, root.FindExact("/contact"))
}

func TestRadixNode_SplittingInvariant(t *testing.T) {
	root := NewRadixRoot(newTestPayload)

	root.FindOrCreate("/aa")
	root.FindOrCreate("/ab")

	require.NotNil(t, root.FindExact("/aa"))
	require.NotNil(t, root.FindExact("/ab"))
	require.NotNil(t, root.FindExact("/a"))

	// siblings under "/a" must not share a first character
	intermediate := root.FindExact("/a")
	seen := map[byte]bool{}
	for _, c := range intermediate.children {
		first := c.segment[0]
		assert.False(t, seen[first], "two children share first byte %q", first)
		seen[first] = true
	}
}

func TestRadixNode_NoTwoChildrenShareFirstByte(t *testing.T) {
	root := NewRadixRoot(newTestPayload)
	root.FindOrCreate("/users")
	root.FindOrCreate("/products")
	root.FindOrCreate("/orders")

	seen := map[byte]bool{}
	for _, c := range root.children {
		first := c.segment[0]
		require.False(t, seen[first])
		seen[first] = true
	}
}

func TestWalker_YieldsRootThenDescendants(t *testing.T) {
	root := NewRadixRoot(newTestPayload)
	root.FindOrCreate("/api/user")

	w := NewWalker[int](root, "/api/user")

	step, ok := w.Next()
	require.True(t, ok)
	assert.Equal(t, "/api/user", step.Remaining)
	assert.Same(t, root, step.Node)

	step, ok = w.Next()
	require.True(t, ok)
	assert.Equal(t, "", step.Remaining)

	_, ok = w.Next()
	assert.False(t, ok)
}

func TestWalker_PeekNextChildLabel(t *testing.T) {
	root := NewRadixRoot(newTestPayload)
	root.FindOrCreate("/api/user")

	w := NewWalker[int](root, "/api/user")
	_, _ = w.Next()

	label, ok := w.PeekNextChildLabel()
	require.True(t, ok)
	assert.Equal(t, "/api/user", label)
}
