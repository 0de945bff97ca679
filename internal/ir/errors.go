package ir

import (
	"errors"
	"fmt"
)

// GraphError reports a structural invariant violation.
//
// Invariant violations are fatal and non-recoverable: they mean the
// layer that built the graph failed to uphold the data model, so
// neither validation nor traversal should be retried on the same
// graph.
type GraphError struct {
	// Code identifies the violated invariant.
	Code GraphErrorCode

	// Message is a human-readable description.
	Message string

	// Node identifies the offending node, or NoNode.
	Node NodeID

	// Block identifies the offending block, or NoBlock.
	Block BlockID
}

// GraphErrorCode categorizes invariant violations.
type GraphErrorCode string

const (
	// ErrCodeInvalidOwnerKind indicates a node owns child blocks but is
	// not a Conditional or Region.
	ErrCodeInvalidOwnerKind GraphErrorCode = "INVALID_OWNER_KIND"

	// ErrCodeChildBlockArity indicates a node's child block count does
	// not match its kind.
	ErrCodeChildBlockArity GraphErrorCode = "CHILD_BLOCK_ARITY"

	// ErrCodeOwnershipMismatch indicates a back-reference disagrees
	// with the forward structure (a node absent from its owning block,
	// or a child block not pointing back at its owner).
	ErrCodeOwnershipMismatch GraphErrorCode = "OWNERSHIP_MISMATCH"

	// ErrCodeCyclicStructure indicates a block is reachable twice from
	// the root, so the ownership structure is shared or cyclic.
	ErrCodeCyclicStructure GraphErrorCode = "CYCLIC_STRUCTURE"

	// ErrCodeUnreachableNode indicates a node or block exists in the
	// arena but is not reachable from the root block.
	ErrCodeUnreachableNode GraphErrorCode = "UNREACHABLE_NODE"
)

// Error implements the error interface.
func (e *GraphError) Error() string {
	switch {
	case e.Node != NoNode && e.Block != NoBlock:
		return fmt.Sprintf("%s: %s (node=%d, block=%d)", e.Code, e.Message, e.Node, e.Block)
	case e.Node != NoNode:
		return fmt.Sprintf("%s: %s (node=%d)", e.Code, e.Message, e.Node)
	case e.Block != NoBlock:
		return fmt.Sprintf("%s: %s (block=%d)", e.Code, e.Message, e.Block)
	default:
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
}

// IsInvariantError returns true if the error is a graph invariant
// violation. Uses errors.As to handle wrapped errors.
func IsInvariantError(err error) bool {
	var ge *GraphError
	return errors.As(err, &ge)
}

// NewInvalidOwnerKindError reports a node of the given kind owning
// child blocks.
func NewInvalidOwnerKindError(node NodeID, kind Kind) *GraphError {
	return &GraphError{
		Code:    ErrCodeInvalidOwnerKind,
		Message: fmt.Sprintf("%s node must not own child blocks", kind),
		Node:    node,
		Block:   NoBlock,
	}
}

// NewUnreachableNodeError reports a node missing from the block that
// claims to contain it.
func NewUnreachableNodeError(node NodeID, block BlockID) *GraphError {
	return &GraphError{
		Code:    ErrCodeUnreachableNode,
		Message: "node not found in its owning block",
		Node:    node,
		Block:   block,
	}
}
