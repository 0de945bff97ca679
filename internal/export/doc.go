// Package export bridges validated graphs to hardware backends.
//
// A backend registers a Preprocessor under a name; Preprocess validates
// the graph, checks that it traverses to completion, validates the
// shape spec describing the expected inputs, and hands both to the
// backend. The bridge is deliberately thin: backends own all conversion
// logic and return an opaque payload, which Preprocess wraps in an
// Artifact with a fresh id.
//
// The built-in "reference" backend serializes the canonical graph form
// and exists to exercise the seam; real backends live out of tree.
package export
