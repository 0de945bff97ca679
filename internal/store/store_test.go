package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cinderlang/cinder/internal/export"
	"github.com/cinderlang/cinder/internal/ir"
	"github.com/cinderlang/cinder/internal/testutil"
)

func openTemp(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpen_Idempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	s1, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s1.Close())

	s2, err := Open(path)
	require.NoError(t, err)
	assert.NoError(t, s2.Close())
}

func TestSaveGraph_RoundTrip(t *testing.T) {
	s := openTemp(t)
	ctx := context.Background()
	g := testutil.BranchGraph()

	id, err := s.SaveGraph(ctx, g)
	require.NoError(t, err)
	assert.Equal(t, ir.MustGraphID(g), id)

	rec, err := s.LoadGraph(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "branch", rec.Name)
	assert.Equal(t, g.NodeCount(), rec.NodeCount)

	canonical, err := ir.MarshalCanonical(g)
	require.NoError(t, err)
	assert.Equal(t, canonical, rec.Canonical)
}

func TestSaveGraph_Idempotent(t *testing.T) {
	s := openTemp(t)
	ctx := context.Background()
	g := testutil.LinearGraph("a", "b")

	first, err := s.SaveGraph(ctx, g)
	require.NoError(t, err)
	second, err := s.SaveGraph(ctx, g)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	recs, err := s.ListGraphs(ctx)
	require.NoError(t, err)
	assert.Len(t, recs, 1, "content-addressed save never duplicates rows")
}

func TestLoadGraph_NotFound(t *testing.T) {
	s := openTemp(t)

	_, err := s.LoadGraph(context.Background(), "no-such-id")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListGraphs_OrderedByName(t *testing.T) {
	s := openTemp(t)
	ctx := context.Background()

	_, err := s.SaveGraph(ctx, testutil.NestedRegionGraph()) // "nested-region"
	require.NoError(t, err)
	_, err = s.SaveGraph(ctx, testutil.BranchGraph()) // "branch"
	require.NoError(t, err)

	recs, err := s.ListGraphs(ctx)
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, "branch", recs[0].Name)
	assert.Equal(t, "nested-region", recs[1].Name)
	assert.Nil(t, recs[0].Canonical, "listing omits canonical blobs")
}

func TestSaveArtifact_RoundTrip(t *testing.T) {
	s := openTemp(t)
	ctx := context.Background()
	g := testutil.BranchGraph()

	spec, err := export.ParseShapeSpec([]byte("forward:\n  inputs:\n    - shape: [1]\n      dtype: float32\n"))
	require.NoError(t, err)
	artifact, err := export.Preprocess("reference", g, spec)
	require.NoError(t, err)

	_, err = s.SaveGraph(ctx, g)
	require.NoError(t, err)
	require.NoError(t, s.SaveArtifact(ctx, artifact))

	loaded, err := s.LoadArtifact(ctx, artifact.ID)
	require.NoError(t, err)
	assert.Equal(t, artifact.Backend, loaded.Backend)
	assert.Equal(t, artifact.GraphID, loaded.GraphID)
	assert.Equal(t, artifact.Payload["Module"], loaded.Payload["Module"])

	listed, err := s.ListArtifacts(ctx, artifact.GraphID)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, artifact.ID, listed[0].ID)
}

func TestSaveArtifact_RequiresGraph(t *testing.T) {
	s := openTemp(t)

	err := s.SaveArtifact(context.Background(), &export.Artifact{
		ID:      "orphan",
		Backend: "reference",
		GraphID: "missing-graph",
		Payload: map[string][]byte{"Module": []byte("{}")},
	})
	assert.Error(t, err, "foreign keys are enforced")
}
