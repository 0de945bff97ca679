package ir

import (
	"bytes"
	"encoding/json"
	"fmt"

	"golang.org/x/text/unicode/norm"
)

// MarshalCanonical produces the canonical JSON form of a graph.
// This is the ONLY serialization that should be used for
// content-addressed identity computation (see GraphID).
//
// Canonical form rules:
//  1. Compact output, fixed key order (no map iteration anywhere)
//  2. Strings NFC normalized at the serialization boundary
//  3. No HTML escaping (< > & are NOT escaped)
//  4. Blocks serialize as node arrays in insertion order; IDs never
//     appear, so two independently built but structurally identical
//     graphs share a canonical form
//
// Shape:
//
//	{"name":"g","nodes":[
//	  {"op":"a","kind":"plain"},
//	  {"op":"b","kind":"conditional","then":[...],"else":[...]},
//	  {"op":"c","kind":"region","body":[...]}
//	]}
func MarshalCanonical(g *Graph) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(`{"name":`)
	if err := writeCanonicalString(&buf, g.Name); err != nil {
		return nil, err
	}
	buf.WriteString(`,"nodes":`)
	if err := marshalBlock(&buf, g, g.Root()); err != nil {
		return nil, err
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func marshalBlock(buf *bytes.Buffer, g *Graph, id BlockID) error {
	buf.WriteByte('[')
	for i, nid := range g.Block(id).Nodes {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := marshalNode(buf, g, nid); err != nil {
			return fmt.Errorf("block %d node %d: %w", id, nid, err)
		}
	}
	buf.WriteByte(']')
	return nil
}

func marshalNode(buf *bytes.Buffer, g *Graph, id NodeID) error {
	node := g.Node(id)

	buf.WriteString(`{"op":`)
	if err := writeCanonicalString(buf, node.Op); err != nil {
		return err
	}
	buf.WriteString(`,"kind":`)
	if err := writeCanonicalString(buf, node.Kind.String()); err != nil {
		return err
	}

	switch node.Kind {
	case Conditional:
		buf.WriteString(`,"then":`)
		if err := marshalBlock(buf, g, node.Blocks[0]); err != nil {
			return err
		}
		buf.WriteString(`,"else":`)
		if err := marshalBlock(buf, g, node.Blocks[1]); err != nil {
			return err
		}
	case Region:
		buf.WriteString(`,"body":`)
		if err := marshalBlock(buf, g, node.Blocks[0]); err != nil {
			return err
		}
	}

	buf.WriteByte('}')
	return nil
}

// writeCanonicalString appends a JSON string with NFC normalization and
// HTML escaping disabled.
func writeCanonicalString(buf *bytes.Buffer, s string) error {
	normalized := norm.NFC.String(s)

	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(normalized); err != nil {
		return err
	}

	// json.Encoder adds a trailing newline, remove it.
	buf.Truncate(buf.Len() - 1)
	return nil
}
