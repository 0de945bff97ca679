// Package testutil provides graph fixtures shared across package tests.
//
// Fixtures cover the traversal shapes that matter: flat blocks, both
// conditional branches, empty branches, nested regions, and an empty
// region body. Node ops are single letters so expected orders read as
// strings in test tables.
package testutil

import "github.com/cinderlang/cinder/internal/ir"

// LinearGraph builds a graph whose root block holds one plain node per
// op, in order.
func LinearGraph(ops ...string) *ir.Graph {
	g := ir.New("linear")
	for _, op := range ops {
		g.AddPlain(g.Root(), op)
	}
	return g
}

// BranchGraph builds [A, cond(then=[B], else=[C]), D].
func BranchGraph() *ir.Graph {
	g := ir.New("branch")
	g.AddPlain(g.Root(), "A")
	_, thenB, elseB := g.AddConditional(g.Root(), "cond")
	g.AddPlain(thenB, "B")
	g.AddPlain(elseB, "C")
	g.AddPlain(g.Root(), "D")
	return g
}

// EmptyThenGraph builds [A, cond(then=[], else=[C]), D].
func EmptyThenGraph() *ir.Graph {
	g := ir.New("empty-then")
	g.AddPlain(g.Root(), "A")
	_, _, elseB := g.AddConditional(g.Root(), "cond")
	g.AddPlain(elseB, "C")
	g.AddPlain(g.Root(), "D")
	return g
}

// NestedRegionGraph builds [A, R1(body=[B, R2(body=[C])]), D].
func NestedRegionGraph() *ir.Graph {
	g := ir.New("nested-region")
	g.AddPlain(g.Root(), "A")
	_, body1 := g.AddRegion(g.Root(), "R1")
	g.AddPlain(body1, "B")
	_, body2 := g.AddRegion(body1, "R2")
	g.AddPlain(body2, "C")
	g.AddPlain(g.Root(), "D")
	return g
}

// EmptyRegionGraph builds [A, R(body=[]), D].
func EmptyRegionGraph() *ir.Graph {
	g := ir.New("empty-region")
	g.AddPlain(g.Root(), "A")
	g.AddRegion(g.Root(), "R")
	g.AddPlain(g.Root(), "D")
	return g
}

// DeepRegionGraph builds depth nested regions with a single plain node
// at the innermost level. Used to prove traversal runs in constant
// stack space.
func DeepRegionGraph(depth int) *ir.Graph {
	g := ir.New("deep")
	block := g.Root()
	for i := 0; i < depth; i++ {
		_, block = g.AddRegion(block, "R")
	}
	g.AddPlain(block, "leaf")
	return g
}

// Ops maps node IDs back to their op mnemonics.
func Ops(g *ir.Graph, ids []ir.NodeID) []string {
	ops := make([]string, len(ids))
	for i, id := range ids {
		ops[i] = g.Node(id).Op
	}
	return ops
}
