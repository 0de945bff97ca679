// Package compiler turns CUE graph documents into ir graphs.
//
// A graph document is a CUE struct with an optional name and a nodes
// list. Each node has an op mnemonic; a node with then and else lists
// is a conditional, a node with a body list is a region, anything else
// is plain. Blocks nest recursively:
//
//	graph: {
//		name: "demo"
//		nodes: [
//			{op: "load"},
//			{op: "branch", then: [{op: "inc"}], else: []},
//			{op: "loop", body: [{op: "step"}]},
//		]
//	}
//
// Compilation uses the CUE SDK's Go API directly, never the CLI, and
// reports errors with source positions.
package compiler
