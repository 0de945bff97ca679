package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cinderlang/cinder/internal/export"
	"github.com/cinderlang/cinder/internal/store"
)

// ExportOptions holds flags for the export command.
type ExportOptions struct {
	*RootOptions
	SpecPath string // YAML shape spec path (required)
	Backend  string // backend name
	DBPath   string // optional store path for the artifact
}

// ExportResult is the success payload of the export command.
type ExportResult struct {
	ArtifactID string `json:"artifact_id"`
	Backend    string `json:"backend"`
	GraphID    string `json:"graph_id"`
	Entries    int    `json:"entries"`
	Saved      bool   `json:"saved,omitempty"`
}

// NewExportCommand creates the export command.
func NewExportCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ExportOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "export <graph.cue>",
		Short: "Preprocess a graph for a hardware backend",
		Long: `Compile a graph document, validate it, and run a registered backend's
preprocessor over it. The shape spec describes the expected inputs of
the graph's forward entry point.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.SpecPath, "spec", "", "YAML shape spec file (required)")
	cmd.Flags().StringVar(&opts.Backend, "backend", "reference", "registered backend name")
	cmd.Flags().StringVar(&opts.DBPath, "db", "", "save the graph and artifact to a SQLite store")
	_ = cmd.MarkFlagRequired("spec")

	return cmd
}

func runExport(opts *ExportOptions, path string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	g, err := loadAndValidate(formatter, path)
	if err != nil {
		return err
	}

	specData, err := os.ReadFile(opts.SpecPath)
	if err != nil {
		return outputCommandError(formatter, ErrCodeFileNotFound, fmt.Sprintf("cannot read %s: %v", opts.SpecPath, err))
	}
	spec, err := export.ParseShapeSpec(specData)
	if err != nil {
		return outputCommandError(formatter, ErrCodeGeneric, err.Error())
	}

	formatter.VerboseLog("Exporting graph %q with backend %q", g.Name, opts.Backend)

	artifact, err := export.Preprocess(opts.Backend, g, spec)
	if err != nil {
		_ = formatter.Error(ErrCodeGeneric, err.Error(), nil)
		return WrapExitError(ExitFailure, "export failed", err)
	}

	result := ExportResult{
		ArtifactID: artifact.ID,
		Backend:    artifact.Backend,
		GraphID:    artifact.GraphID,
		Entries:    len(artifact.Payload),
	}

	if opts.DBPath != "" {
		s, err := store.Open(opts.DBPath)
		if err != nil {
			return outputCommandError(formatter, ErrCodeGeneric, err.Error())
		}
		defer s.Close()

		ctx := context.Background()
		if _, err := s.SaveGraph(ctx, g); err != nil {
			return outputCommandError(formatter, ErrCodeGeneric, err.Error())
		}
		if err := s.SaveArtifact(ctx, artifact); err != nil {
			return outputCommandError(formatter, ErrCodeGeneric, err.Error())
		}
		result.Saved = true
	}

	if formatter.Format == "json" {
		return formatter.Success(result)
	}

	fmt.Fprintf(formatter.Writer, "✓ Exported graph %q with backend %q\n", g.Name, result.Backend)
	fmt.Fprintf(formatter.Writer, "  artifact: %s\n", result.ArtifactID)
	fmt.Fprintf(formatter.Writer, "  graph:    %s\n", result.GraphID)
	if result.Saved {
		fmt.Fprintf(formatter.Writer, "Saved to %s\n", opts.DBPath)
	}
	return nil
}
