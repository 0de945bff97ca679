// Package traverse enumerates every node of a graph in depth-first
// pre-order without call-stack recursion.
//
// The Cursor visits each node of each block in insertion order,
// descending into a control node's child blocks immediately after
// emitting the node and resuming at the node's next sibling once the
// child blocks are exhausted. Both branches of a conditional are
// visited, then before else: the order is structural, not an execution
// order.
//
// Instead of an auxiliary stack of frames, the cursor climbs out of
// exhausted blocks through the graph's owner back-references,
// relocating each ancestor in its containing block with a linear scan.
// This keeps the cursor constant-sized at the cost of O(n·d) worst
// case for n nodes at nesting depth d. Both the descent and the climb
// are loops, so graphs nested arbitrarily deep traverse in constant
// stack space.
package traverse
