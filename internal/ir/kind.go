package ir

import "fmt"

// Kind identifies the structural category of a node.
//
// The set is closed: traversal and validation dispatch on the number of
// child blocks a kind owns rather than on the kind name, so adding a
// kind means deciding its child-block arity here and nowhere else.
type Kind uint8

const (
	// Plain is an ordinary instruction with no child blocks.
	Plain Kind = iota

	// Conditional owns exactly two ordered child blocks: then, else.
	// Both are part of the structure and both are traversed, regardless
	// of which branch would execute at runtime.
	Conditional

	// Region owns exactly one child block. Loop bodies and scoped
	// sub-blocks are both regions; they traverse identically.
	Region
)

// ChildBlockCount returns the number of child blocks a node of this
// kind owns.
func (k Kind) ChildBlockCount() int {
	switch k {
	case Conditional:
		return 2
	case Region:
		return 1
	default:
		return 0
	}
}

// String returns the lower-case kind name used in serialized graphs
// and CLI output.
func (k Kind) String() string {
	switch k {
	case Plain:
		return "plain"
	case Conditional:
		return "conditional"
	case Region:
		return "region"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// KindFromString parses a serialized kind name.
func KindFromString(s string) (Kind, error) {
	switch s {
	case "plain":
		return Plain, nil
	case "conditional":
		return Conditional, nil
	case "region":
		return Region, nil
	default:
		return Plain, fmt.Errorf("unknown node kind %q", s)
	}
}
