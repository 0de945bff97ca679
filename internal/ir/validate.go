package ir

import "fmt"

// Validate checks the structural invariants of a graph:
//
//  1. Every node is contained in exactly one block, and its Owner
//     back-reference names that block.
//  2. A node's child block count matches its kind (0 for Plain, 1 for
//     Region, 2 for Conditional), and each child block's Owner names
//     the node.
//  3. The ownership structure is a tree: every block is reachable from
//     the root exactly once.
//  4. No node or block in the arena is left unreachable from the root.
//
// The walk is iterative over an explicit block worklist, so arbitrarily
// deep graphs validate without growing the call stack. Validate returns
// the first violation found as a *GraphError, or nil.
func Validate(g *Graph) error {
	seenBlocks := make([]bool, g.BlockCount())
	seenNodes := make([]bool, g.NodeCount())

	work := []BlockID{g.Root()}
	for len(work) > 0 {
		bid := work[len(work)-1]
		work = work[:len(work)-1]

		if seenBlocks[bid] {
			return &GraphError{
				Code:    ErrCodeCyclicStructure,
				Message: "block reachable more than once from root",
				Node:    NoNode,
				Block:   bid,
			}
		}
		seenBlocks[bid] = true

		for _, nid := range g.Block(bid).Nodes {
			if seenNodes[nid] {
				return &GraphError{
					Code:    ErrCodeCyclicStructure,
					Message: "node contained in more than one block",
					Node:    nid,
					Block:   bid,
				}
			}
			seenNodes[nid] = true

			node := g.Node(nid)
			if node.Owner != bid {
				return &GraphError{
					Code:    ErrCodeOwnershipMismatch,
					Message: fmt.Sprintf("node owner is block %d but node is contained in block %d", node.Owner, bid),
					Node:    nid,
					Block:   bid,
				}
			}

			if got, want := len(node.Blocks), node.Kind.ChildBlockCount(); got != want {
				if node.Kind == Plain && got > 0 {
					return NewInvalidOwnerKindError(nid, node.Kind)
				}
				return &GraphError{
					Code:    ErrCodeChildBlockArity,
					Message: fmt.Sprintf("%s node owns %d child block(s), want %d", node.Kind, got, want),
					Node:    nid,
					Block:   NoBlock,
				}
			}

			for _, cid := range node.Blocks {
				if g.Block(cid).Owner != nid {
					return &GraphError{
						Code:    ErrCodeOwnershipMismatch,
						Message: fmt.Sprintf("child block owner is node %d, want %d", g.Block(cid).Owner, nid),
						Node:    nid,
						Block:   cid,
					}
				}
				work = append(work, cid)
			}
		}
	}

	for bid, seen := range seenBlocks {
		if !seen {
			return &GraphError{
				Code:    ErrCodeUnreachableNode,
				Message: "block not reachable from root",
				Node:    NoNode,
				Block:   BlockID(bid),
			}
		}
	}
	for nid, seen := range seenNodes {
		if !seen {
			return &GraphError{
				Code:    ErrCodeUnreachableNode,
				Message: "node not reachable from root",
				Node:    NodeID(nid),
				Block:   NoBlock,
			}
		}
	}

	return nil
}
