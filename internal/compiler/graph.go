package compiler

import (
	"fmt"

	"cuelang.org/go/cue"

	"github.com/cinderlang/cinder/internal/ir"
)

// CompileGraph parses a CUE value into an ir.Graph.
// Uses CUE SDK's Go API directly (not CLI subprocess).
//
// The CUE value should be the graph struct itself, e.g.:
//
//	ctx := cuecontext.New()
//	v := ctx.CompileString(`graph: { nodes: [...] }`)
//	g, err := CompileGraph(v.LookupPath(cue.ParsePath("graph")))
func CompileGraph(v cue.Value) (*ir.Graph, error) {
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}

	// Parse name (optional)
	name := ""
	nameVal := v.LookupPath(cue.ParsePath("name"))
	if nameVal.Exists() {
		n, err := nameVal.String()
		if err != nil {
			return nil, formatCUEError(err)
		}
		name = n
	}

	g := ir.New(name)

	// Parse nodes (required, may be an empty list)
	nodesVal := v.LookupPath(cue.ParsePath("nodes"))
	if !nodesVal.Exists() {
		return nil, &CompileError{
			Field:   "nodes",
			Message: "nodes list is required (use [] for an empty graph)",
			Pos:     v.Pos(),
		}
	}

	if err := compileBlock(g, g.Root(), "nodes", nodesVal); err != nil {
		return nil, err
	}

	return g, nil
}

// compileBlock appends one node per list entry to block, recursing
// into child block lists.
func compileBlock(g *ir.Graph, block ir.BlockID, field string, v cue.Value) error {
	iter, err := v.List()
	if err != nil {
		return formatCUEError(err)
	}

	i := 0
	for iter.Next() {
		if err := compileNode(g, block, fmt.Sprintf("%s[%d]", field, i), iter.Value()); err != nil {
			return err
		}
		i++
	}
	return nil
}

// compileNode parses a single node entry. The node's kind is inferred
// from its child block fields: then/else mean conditional, body means
// region, neither means plain.
func compileNode(g *ir.Graph, block ir.BlockID, field string, v cue.Value) error {
	opVal := v.LookupPath(cue.ParsePath("op"))
	if !opVal.Exists() {
		return &CompileError{
			Field:   field + ".op",
			Message: "op is required",
			Pos:     v.Pos(),
		}
	}
	op, err := opVal.String()
	if err != nil {
		return formatCUEError(err)
	}

	thenVal := v.LookupPath(cue.ParsePath("then"))
	elseVal := v.LookupPath(cue.ParsePath("else"))
	bodyVal := v.LookupPath(cue.ParsePath("body"))

	switch {
	case bodyVal.Exists() && (thenVal.Exists() || elseVal.Exists()):
		return &CompileError{
			Field:   field,
			Message: "body cannot be combined with then/else",
			Pos:     v.Pos(),
		}

	case thenVal.Exists() || elseVal.Exists():
		if !thenVal.Exists() || !elseVal.Exists() {
			return &CompileError{
				Field:   field,
				Message: "a conditional requires both then and else (use [] for an empty branch)",
				Pos:     v.Pos(),
			}
		}
		_, thenBlock, elseBlock := g.AddConditional(block, op)
		if err := compileBlock(g, thenBlock, field+".then", thenVal); err != nil {
			return err
		}
		return compileBlock(g, elseBlock, field+".else", elseVal)

	case bodyVal.Exists():
		_, body := g.AddRegion(block, op)
		return compileBlock(g, body, field+".body", bodyVal)

	default:
		g.AddPlain(block, op)
		return nil
	}
}
