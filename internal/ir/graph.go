package ir

// NodeID is a stable index into a graph's node arena.
type NodeID int32

// BlockID is a stable index into a graph's block arena.
type BlockID int32

// Sentinel values for absent back-references.
//
// NoNode is the root block's owner (nothing owns the root) and the
// traversal cursor's exhausted position. NoBlock never appears in a
// well-formed graph but keeps zero-value bugs loud.
const (
	NoNode  NodeID  = -1
	NoBlock BlockID = -1
)

// Node is a single IR instruction.
//
// Owner is the block that directly contains the node; it is an
// association for upward navigation, not ownership. Blocks lists the
// child blocks the node owns, in declared order (then before else for
// conditionals). Its length must match Kind.ChildBlockCount.
type Node struct {
	Op     string
	Kind   Kind
	Owner  BlockID
	Blocks []BlockID
}

// Block is an ordered sequence of nodes. Insertion order is traversal
// order within the block. Owner is the node owning this block, or
// NoNode for the root block.
type Block struct {
	Owner NodeID
	Nodes []NodeID
}

// Graph owns one root block and the arenas behind all IDs.
//
// A graph must not be mutated while a traversal cursor over it is
// live; this is a documented precondition, not a runtime check.
// Multiple cursors may read an unmutated graph concurrently.
type Graph struct {
	Name string

	nodes  []Node
	blocks []Block
	root   BlockID
}

// New creates an empty graph with an allocated root block.
func New(name string) *Graph {
	g := &Graph{Name: name}
	g.root = g.newBlock(NoNode)
	return g
}

// Root returns the graph's root block.
func (g *Graph) Root() BlockID {
	return g.root
}

// Node returns the node for id. The pointer stays valid until the next
// Add* call.
func (g *Graph) Node(id NodeID) *Node {
	return &g.nodes[id]
}

// Block returns the block for id. The pointer stays valid until the
// next Add* call.
func (g *Graph) Block(id BlockID) *Block {
	return &g.blocks[id]
}

// NodeCount returns the total number of nodes across all blocks.
func (g *Graph) NodeCount() int {
	return len(g.nodes)
}

// BlockCount returns the total number of blocks, including the root.
func (g *Graph) BlockCount() int {
	return len(g.blocks)
}

// AddPlain appends a plain node to block.
func (g *Graph) AddPlain(block BlockID, op string) NodeID {
	return g.newNode(block, Plain, op)
}

// AddConditional appends a conditional node to block and allocates its
// then and else child blocks, in that order.
func (g *Graph) AddConditional(block BlockID, op string) (n NodeID, thenBlock, elseBlock BlockID) {
	n = g.newNode(block, Conditional, op)
	thenBlock = g.newBlock(n)
	elseBlock = g.newBlock(n)
	g.nodes[n].Blocks = []BlockID{thenBlock, elseBlock}
	return n, thenBlock, elseBlock
}

// AddRegion appends a region node to block and allocates its body.
func (g *Graph) AddRegion(block BlockID, op string) (n NodeID, body BlockID) {
	n = g.newNode(block, Region, op)
	body = g.newBlock(n)
	g.nodes[n].Blocks = []BlockID{body}
	return n, body
}

func (g *Graph) newNode(block BlockID, kind Kind, op string) NodeID {
	id := NodeID(len(g.nodes))
	g.nodes = append(g.nodes, Node{Op: op, Kind: kind, Owner: block})
	g.blocks[block].Nodes = append(g.blocks[block].Nodes, id)
	return id
}

func (g *Graph) newBlock(owner NodeID) BlockID {
	id := BlockID(len(g.blocks))
	g.blocks = append(g.blocks, Block{Owner: owner})
	return id
}
