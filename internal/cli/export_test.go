package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cinderlang/cinder/internal/store"
)

const demoShapeSpec = `
forward:
  inputs:
    - shape: [1, 4]
      dtype: float32
`

func writeShapeSpec(t *testing.T, src string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "shapes.yaml")
	require.NoError(t, os.WriteFile(path, []byte(src), 0644))
	return path
}

func TestExport_ReferenceBackend(t *testing.T) {
	graphPath := writeGraphFile(t, demoGraph)
	specPath := writeShapeSpec(t, demoShapeSpec)

	buf := &bytes.Buffer{}
	cmd := NewExportCommand(&RootOptions{Format: "text"})
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{graphPath, "--spec", specPath})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, buf.String(), `✓ Exported graph "demo" with backend "reference"`)
	assert.Contains(t, buf.String(), "artifact: ")
}

func TestExport_MissingSpecFlag(t *testing.T) {
	graphPath := writeGraphFile(t, demoGraph)

	buf := &bytes.Buffer{}
	cmd := NewExportCommand(&RootOptions{Format: "text"})
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{graphPath})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "spec")
}

func TestExport_UnknownBackend(t *testing.T) {
	graphPath := writeGraphFile(t, demoGraph)
	specPath := writeShapeSpec(t, demoShapeSpec)

	buf := &bytes.Buffer{}
	cmd := NewExportCommand(&RootOptions{Format: "text"})
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{graphPath, "--spec", specPath, "--backend", "npu9000"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, buf.String(), "unknown backend")
}

func TestExport_BadShapeSpec(t *testing.T) {
	graphPath := writeGraphFile(t, demoGraph)
	specPath := writeShapeSpec(t, "forward:\n  inputs: []\n")

	buf := &bytes.Buffer{}
	cmd := NewExportCommand(&RootOptions{Format: "text"})
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{graphPath, "--spec", specPath})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, buf.String(), `"inputs"`)
}

func TestExport_SavesArtifact(t *testing.T) {
	graphPath := writeGraphFile(t, demoGraph)
	specPath := writeShapeSpec(t, demoShapeSpec)
	dbPath := filepath.Join(t.TempDir(), "cinder.db")

	buf := &bytes.Buffer{}
	cmd := NewExportCommand(&RootOptions{Format: "text"})
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{graphPath, "--spec", specPath, "--db", dbPath})

	require.NoError(t, cmd.Execute())

	s, err := store.Open(dbPath)
	require.NoError(t, err)
	defer s.Close()

	ctx := context.Background()
	recs, err := s.ListGraphs(ctx)
	require.NoError(t, err)
	require.Len(t, recs, 1)

	artifacts, err := s.ListArtifacts(ctx, recs[0].ID)
	require.NoError(t, err)
	require.Len(t, artifacts, 1)
	assert.Equal(t, "reference", artifacts[0].Backend)
}
