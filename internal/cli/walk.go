package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cinderlang/cinder/internal/traverse"
)

// WalkOptions holds flags for the walk command.
type WalkOptions struct {
	*RootOptions
}

// WalkEntry is one visited node in the walk command's output.
type WalkEntry struct {
	Op   string `json:"op"`
	Kind string `json:"kind"`
}

// NewWalkCommand creates the walk command.
func NewWalkCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &WalkOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "walk <graph.cue>",
		Short: "Print the depth-first node order of a graph",
		Long: `Compile a graph document and print every node in depth-first
pre-order: each control node first, then the contents of its child
blocks in declared order, then its next sibling.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWalk(opts, args[0], cmd)
		},
	}

	return cmd
}

func runWalk(opts *WalkOptions, path string, cmd *cobra.Command) error {
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

	nodes, err := traverse.New(g).Collect()
	if err != nil {
		_ = formatter.Error(ErrCodeGeneric, err.Error(), nil)
		return WrapExitError(ExitFailure, "traversal failed", err)
	}

	entries := make([]WalkEntry, len(nodes))
	for i, id := range nodes {
		node := g.Node(id)
		entries[i] = WalkEntry{Op: node.Op, Kind: node.Kind.String()}
	}

	if formatter.Format == "json" {
		return formatter.Success(entries)
	}

	for i, e := range entries {
		fmt.Fprintf(formatter.Writer, "%3d  %-12s %s\n", i, e.Kind, e.Op)
	}
	fmt.Fprintf(formatter.Writer, "✓ Visited %d node(s)\n", len(entries))
	return nil
}
