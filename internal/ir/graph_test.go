package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_AllocatesEmptyRoot(t *testing.T) {
	g := New("g")

	assert.Equal(t, 1, g.BlockCount())
	assert.Equal(t, 0, g.NodeCount())
	assert.Equal(t, NoNode, g.Block(g.Root()).Owner, "root block has no owning node")
	assert.Empty(t, g.Block(g.Root()).Nodes)
}

func TestAddPlain_AppendsInOrder(t *testing.T) {
	g := New("g")
	a := g.AddPlain(g.Root(), "a")
	b := g.AddPlain(g.Root(), "b")

	assert.Equal(t, []NodeID{a, b}, g.Block(g.Root()).Nodes)
	assert.Equal(t, g.Root(), g.Node(a).Owner)
	assert.Equal(t, Plain, g.Node(a).Kind)
	assert.Empty(t, g.Node(a).Blocks, "plain nodes never own child blocks")
}

func TestAddConditional_OwnsTwoOrderedBlocks(t *testing.T) {
	g := New("g")
	n, thenB, elseB := g.AddConditional(g.Root(), "if")

	node := g.Node(n)
	require.Equal(t, Conditional, node.Kind)
	require.Equal(t, []BlockID{thenB, elseB}, node.Blocks, "then before else")
	assert.NotEqual(t, thenB, elseB, "child blocks are distinct")
	assert.Equal(t, n, g.Block(thenB).Owner)
	assert.Equal(t, n, g.Block(elseB).Owner)
}

func TestAddRegion_OwnsSingleBlock(t *testing.T) {
	g := New("g")
	n, body := g.AddRegion(g.Root(), "loop")

	node := g.Node(n)
	require.Equal(t, Region, node.Kind)
	require.Equal(t, []BlockID{body}, node.Blocks)
	assert.Equal(t, n, g.Block(body).Owner)
}

func TestKind_ChildBlockCount(t *testing.T) {
	assert.Equal(t, 0, Plain.ChildBlockCount())
	assert.Equal(t, 1, Region.ChildBlockCount())
	assert.Equal(t, 2, Conditional.ChildBlockCount())
}

func TestKind_StringRoundTrip(t *testing.T) {
	for _, k := range []Kind{Plain, Conditional, Region} {
		got, err := KindFromString(k.String())
		require.NoError(t, err)
		assert.Equal(t, k, got)
	}

	_, err := KindFromString("loop")
	assert.Error(t, err)
}
