package ir

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// DomainGraph is the domain prefix for content-addressed graph
// identity. The version suffix enables future algorithm migration.
const DomainGraph = "cinder/graph/v1"

// hashWithDomain computes SHA-256 with domain separation.
// Format: SHA256(domain + 0x00 + data). The null byte prevents
// domain/data boundary ambiguity.
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// GraphID computes the content-addressed identity of a graph.
// The ID is stable across processes and arena layouts: it hashes the
// canonical form, which contains structure only, never arena indices.
func GraphID(g *Graph) (string, error) {
	canonical, err := MarshalCanonical(g)
	if err != nil {
		return "", fmt.Errorf("GraphID: failed to marshal: %w", err)
	}
	return hashWithDomain(DomainGraph, canonical), nil
}

// MustGraphID is like GraphID but panics on error.
// Use only in tests or when inputs are known to be valid.
func MustGraphID(g *Graph) string {
	id, err := GraphID(g)
	if err != nil {
		panic(err)
	}
	return id
}
