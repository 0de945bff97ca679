package traverse

import "github.com/cinderlang/cinder/internal/ir"

// Cursor is a forward-only depth-first iterator over a graph's nodes.
//
// A cursor assumes exclusive, unmutated access to the graph for its
// whole lifetime: inserting, removing, or reordering nodes or blocks
// during an active traversal invalidates it. This is a documented
// precondition, not a runtime check. Independent cursors over the same
// unmutated graph are safe to use concurrently; each one owns all of
// its state.
type Cursor struct {
	g   *ir.Graph
	cur ir.NodeID // next node to emit; ir.NoNode once exhausted
	err error
}

// New creates a cursor positioned at the first node of the graph's
// root block. If the root block is empty the cursor starts exhausted.
func New(g *ir.Graph) *Cursor {
	return &Cursor{g: g, cur: firstNode(g, g.Root())}
}

// Next returns the next node in depth-first pre-order.
// ok is false once the graph is exhausted; exhaustion is terminal and
// idempotent, so further calls keep returning ok == false.
//
// If the graph violates a structural invariant mid-traversal, Next
// emits the node it was positioned on, then the cursor stops and Err
// reports the violation. Exhaustion itself is never an error.
func (c *Cursor) Next() (ir.NodeID, bool) {
	if c.cur == ir.NoNode {
		return ir.NoNode, false
	}

	n := c.cur
	if err := c.advance(n); err != nil {
		c.err = err
		c.cur = ir.NoNode
	}
	return n, true
}

// Err returns the invariant violation that terminated the traversal
// early, or nil. Check it after Next reports exhaustion.
func (c *Cursor) Err() error {
	return c.err
}

// Collect drains the cursor and returns the remaining nodes in order.
func (c *Cursor) Collect() ([]ir.NodeID, error) {
	var nodes []ir.NodeID
	for {
		n, ok := c.Next()
		if !ok {
			return nodes, c.Err()
		}
		nodes = append(nodes, n)
	}
}

// advance moves the cursor from the just-emitted node n to the node
// that follows it in depth-first order.
//
// Control nodes descend into their first non-empty child block; a
// conditional tries then before else. A control node whose child
// blocks are all empty advances like a plain node: there is nothing
// beneath it, so the traversal must not stall there.
func (c *Cursor) advance(n ir.NodeID) error {
	node := c.g.Node(n)

	switch node.Kind {
	case ir.Conditional:
		if first := firstNode(c.g, node.Blocks[0]); first != ir.NoNode {
			c.cur = first
			return nil
		}
		if first := firstNode(c.g, node.Blocks[1]); first != ir.NoNode {
			c.cur = first
			return nil
		}
		return c.stepOrClimb(n)

	case ir.Region:
		if first := firstNode(c.g, node.Blocks[0]); first != ir.NoNode {
			c.cur = first
			return nil
		}
		return c.stepOrClimb(n)

	default:
		return c.stepOrClimb(n)
	}
}

// stepOrClimb resumes at the node immediately after n within its
// block, or climbs out of the block if n was its last node.
func (c *Cursor) stepOrClimb(n ir.NodeID) error {
	block := c.g.Block(c.g.Node(n).Owner)
	i, err := c.locate(block, n)
	if err != nil {
		return err
	}
	if i+1 < len(block.Nodes) {
		c.cur = block.Nodes[i+1]
		return nil
	}
	return c.climb(n)
}

// climb resumes the traversal after the subtree rooted at `from` when
// from's block has no nodes left. Each iteration walks one level up
// the ownership chain:
//
//   - If the exhausted block is the root block, the whole graph is
//     exhausted.
//   - If it is a conditional's then-block, the traversal falls through
//     into a non-empty else-block: both branches are always visited,
//     in lexical order.
//   - Otherwise the owner itself is finished; resume at the owner's
//     next sibling, or keep climbing if the owner was the last node of
//     its own block.
//
// Only Conditional and Region nodes may own blocks; any other owner
// kind is an invariant violation in the graph the builder handed us.
func (c *Cursor) climb(from ir.NodeID) error {
	for {
		owningBlock := c.g.Node(from).Owner
		owner := c.g.Block(owningBlock).Owner
		if owner == ir.NoNode {
			// Climbed out of the root block: traversal complete.
			c.cur = ir.NoNode
			return nil
		}

		ownerNode := c.g.Node(owner)
		switch ownerNode.Kind {
		case ir.Conditional:
			if owningBlock == ownerNode.Blocks[0] {
				if first := firstNode(c.g, ownerNode.Blocks[1]); first != ir.NoNode {
					c.cur = first
					return nil
				}
			}
		case ir.Region:
			// Region body finished; the region itself is done.
		default:
			return ir.NewInvalidOwnerKindError(owner, ownerNode.Kind)
		}

		// The owner's subtree is fully visited. Resume at its next
		// sibling, or climb another level if it has none.
		parent := c.g.Block(ownerNode.Owner)
		i, err := c.locate(parent, owner)
		if err != nil {
			return err
		}
		if i+1 < len(parent.Nodes) {
			c.cur = parent.Nodes[i+1]
			return nil
		}
		from = owner
	}
}

// locate finds n's position in block by linear scan. This is the
// re-derivation of an ancestor's position that stands in for an
// explicit frame stack.
func (c *Cursor) locate(block *ir.Block, n ir.NodeID) (int, error) {
	for i, id := range block.Nodes {
		if id == n {
			return i, nil
		}
	}
	return 0, ir.NewUnreachableNodeError(n, c.g.Node(n).Owner)
}

// firstNode returns the first node of a block, or ir.NoNode if the
// block is empty.
func firstNode(g *ir.Graph, b ir.BlockID) ir.NodeID {
	nodes := g.Block(b).Nodes
	if len(nodes) == 0 {
		return ir.NoNode
	}
	return nodes[0]
}
