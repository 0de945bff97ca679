package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cinderlang/cinder/internal/ir"
)

// ValidateOptions holds flags for the validate command.
type ValidateOptions struct {
	*RootOptions
}

// ValidateResult is the success payload of the validate command.
type ValidateResult struct {
	Name      string `json:"name"`
	NodeCount int    `json:"node_count"`
	Valid     bool   `json:"valid"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ValidateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:           "validate <graph.cue>",
		Short:         "Check a graph document against the IR invariants",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(opts, args[0], cmd)
		},
	}

	return cmd
}

func runValidate(opts *ValidateOptions, path string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	g, err := LoadGraphFile(path)
	if err != nil {
		code, message := parseLoadError(err)
		return outputCommandError(formatter, code, message)
	}

	if err := ir.Validate(g); err != nil {
		_ = formatter.Error(ErrCodeGeneric, err.Error(), nil)
		return WrapExitError(ExitFailure, "graph failed validation", err)
	}

	result := ValidateResult{Name: g.Name, NodeCount: g.NodeCount(), Valid: true}
	if formatter.Format == "json" {
		return formatter.Success(result)
	}

	fmt.Fprintf(formatter.Writer, "✓ Graph %q is well-formed (%d node(s))\n", g.Name, g.NodeCount())
	return nil
}
