package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/cinderlang/cinder/internal/export"
)

// ErrNotFound is returned when a graph or artifact id is not in the
// store.
var ErrNotFound = errors.New("not found")

// GraphRecord is a stored graph. Canonical holds the canonical JSON
// form; the CUE source remains the authority for rebuilding a live
// graph.
type GraphRecord struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	NodeCount int    `json:"node_count"`
	Canonical []byte `json:"canonical,omitempty"`
}

// LoadGraph returns the stored graph for id, including its canonical
// form. Returns ErrNotFound if the id is unknown.
func (s *Store) LoadGraph(ctx context.Context, id string) (*GraphRecord, error) {
	var rec GraphRecord
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, node_count, canonical FROM graphs WHERE id = ?
	`, id).Scan(&rec.ID, &rec.Name, &rec.NodeCount, &rec.Canonical)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("graph %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("load graph: %w", err)
	}
	return &rec, nil
}

// ListGraphs returns all stored graphs without their canonical blobs,
// ordered by name then id for stable output.
func (s *Store) ListGraphs(ctx context.Context) ([]GraphRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, node_count FROM graphs ORDER BY name, id
	`)
	if err != nil {
		return nil, fmt.Errorf("list graphs: %w", err)
	}
	defer rows.Close()

	var recs []GraphRecord
	for rows.Next() {
		var rec GraphRecord
		if err := rows.Scan(&rec.ID, &rec.Name, &rec.NodeCount); err != nil {
			return nil, fmt.Errorf("scan graph row: %w", err)
		}
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}

// LoadArtifact returns a stored artifact by id.
// Returns ErrNotFound if the id is unknown.
func (s *Store) LoadArtifact(ctx context.Context, id string) (*export.Artifact, error) {
	var a export.Artifact
	var payload []byte
	err := s.db.QueryRowContext(ctx, `
		SELECT id, backend, graph_id, payload FROM artifacts WHERE id = ?
	`, id).Scan(&a.ID, &a.Backend, &a.GraphID, &payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("artifact %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("load artifact: %w", err)
	}

	if err := json.Unmarshal(payload, &a.Payload); err != nil {
		return nil, fmt.Errorf("decode artifact payload: %w", err)
	}
	return &a, nil
}

// ListArtifacts returns the artifacts exported from a graph, ordered
// by id (UUIDv7, so ordered by export time).
func (s *Store) ListArtifacts(ctx context.Context, graphID string) ([]export.Artifact, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, backend, graph_id, payload FROM artifacts
		WHERE graph_id = ? ORDER BY id
	`, graphID)
	if err != nil {
		return nil, fmt.Errorf("list artifacts: %w", err)
	}
	defer rows.Close()

	var artifacts []export.Artifact
	for rows.Next() {
		var a export.Artifact
		var payload []byte
		if err := rows.Scan(&a.ID, &a.Backend, &a.GraphID, &payload); err != nil {
			return nil, fmt.Errorf("scan artifact row: %w", err)
		}
		if err := json.Unmarshal(payload, &a.Payload); err != nil {
			return nil, fmt.Errorf("decode artifact payload: %w", err)
		}
		artifacts = append(artifacts, a)
	}
	return artifacts, rows.Err()
}
