// Package ir provides the block-structured intermediate representation
// for cinder graphs.
//
// A Graph owns a single root Block; a Block is an ordered sequence of
// Nodes; a Node of a control kind (Conditional, Region) exclusively owns
// one or two child Blocks. Ownership forms a tree: no block is shared
// and no block is its own ancestor.
//
// Graphs are arenas. Nodes and blocks live in flat slices inside the
// Graph and are addressed by stable NodeID/BlockID indices. Upward
// back-references (Node.Owner, Block.Owner) are plain indices, so a
// position in the graph is a small copyable value with no lifetime
// concerns.
//
// All other internal packages import ir; ir imports nothing internal.
package ir
