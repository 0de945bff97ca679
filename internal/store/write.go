package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/cinderlang/cinder/internal/export"
	"github.com/cinderlang/cinder/internal/ir"
)

// SaveGraph persists a graph under its content-addressed id and
// returns the id. Saving a structurally identical graph again is a
// no-op, so SaveGraph is idempotent across restarts and replays.
func (s *Store) SaveGraph(ctx context.Context, g *ir.Graph) (string, error) {
	id, err := ir.GraphID(g)
	if err != nil {
		return "", err
	}
	canonical, err := ir.MarshalCanonical(g)
	if err != nil {
		return "", err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO graphs (id, name, node_count, canonical)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`, id, g.Name, g.NodeCount(), canonical)
	if err != nil {
		return "", fmt.Errorf("save graph: %w", err)
	}

	return id, nil
}

// SaveArtifact persists an export artifact. The referenced graph must
// already be saved; foreign keys are enforced.
func (s *Store) SaveArtifact(ctx context.Context, a *export.Artifact) error {
	payload, err := json.Marshal(a.Payload)
	if err != nil {
		return fmt.Errorf("encode artifact payload: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO artifacts (id, backend, graph_id, payload)
		VALUES (?, ?, ?, ?)
	`, a.ID, a.Backend, a.GraphID, payload)
	if err != nil {
		return fmt.Errorf("save artifact: %w", err)
	}

	return nil
}
