package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cinderlang/cinder/internal/compiler"
	"github.com/cinderlang/cinder/internal/ir"
	"github.com/cinderlang/cinder/internal/store"
)

// CompileOptions holds flags for the compile command.
type CompileOptions struct {
	*RootOptions
	Output string // output file path for canonical JSON
	DBPath string // optional store path
}

// CompileResult is the success payload of the compile command.
type CompileResult struct {
	GraphID    string `json:"graph_id"`
	Name       string `json:"name"`
	NodeCount  int    `json:"node_count"`
	BlockCount int    `json:"block_count"`
	Saved      bool   `json:"saved,omitempty"`
}

// NewCompileCommand creates the compile command.
func NewCompileCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CompileOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "compile <graph.cue>",
		Short: "Compile a CUE graph document to canonical IR",
		Long: `Compile a CUE graph document, validate the result, and report its
content-addressed identity. Optionally write the canonical JSON form
or persist the graph to a store.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true, // Errors get our own output handling
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompile(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "write canonical JSON to file")
	cmd.Flags().StringVar(&opts.DBPath, "db", "", "save the compiled graph to a SQLite store")

	return cmd
}

func runCompile(opts *CompileOptions, path string, cmd *cobra.Command) error {
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

	canonical, err := ir.MarshalCanonical(g)
	if err != nil {
		return outputCommandError(formatter, ErrCodeGeneric, err.Error())
	}

	result := CompileResult{
		GraphID:    ir.MustGraphID(g),
		Name:       g.Name,
		NodeCount:  g.NodeCount(),
		BlockCount: g.BlockCount(),
	}

	if opts.Output != "" {
		if err := os.WriteFile(opts.Output, canonical, 0644); err != nil {
			return outputCommandError(formatter, ErrCodeGeneric, fmt.Sprintf("writing output file: %v", err))
		}
	}

	if opts.DBPath != "" {
		s, err := store.Open(opts.DBPath)
		if err != nil {
			return outputCommandError(formatter, ErrCodeGeneric, err.Error())
		}
		defer s.Close()
		if _, err := s.SaveGraph(context.Background(), g); err != nil {
			return outputCommandError(formatter, ErrCodeGeneric, err.Error())
		}
		result.Saved = true
	}

	if formatter.Format == "json" {
		return formatter.Success(result)
	}

	fmt.Fprintf(formatter.Writer, "✓ Compiled graph %q: %d node(s), %d block(s)\n",
		result.Name, result.NodeCount, result.BlockCount)
	fmt.Fprintf(formatter.Writer, "  id: %s\n", result.GraphID)
	if opts.Output != "" {
		fmt.Fprintf(formatter.Writer, "Wrote canonical IR to %s\n", opts.Output)
	}
	if result.Saved {
		fmt.Fprintf(formatter.Writer, "Saved to %s\n", opts.DBPath)
	}
	return nil
}

// loadAndValidate loads a graph document and checks structural
// invariants, emitting formatted errors on failure.
func loadAndValidate(formatter *OutputFormatter, path string) (*ir.Graph, error) {
	g, err := LoadGraphFile(path)
	if err != nil {
		code, message := parseLoadError(err)
		return nil, outputCommandError(formatter, code, message)
	}

	if err := ir.Validate(g); err != nil {
		// The compiler only builds well-formed graphs, so this means a
		// bug on our side rather than bad user input.
		_ = formatter.Error(ErrCodeGeneric, err.Error(), nil)
		return nil, WrapExitError(ExitFailure, "graph failed validation", err)
	}

	return g, nil
}

// parseLoadError extracts error code and message from a load failure.
func parseLoadError(err error) (string, string) {
	var loadErr *LoadError
	if errors.As(err, &loadErr) {
		return loadErr.Code, loadErr.Message
	}
	var compileErr *compiler.CompileError
	if errors.As(err, &compileErr) {
		return ErrCodeCompile, compileErr.Error()
	}
	return ErrCodeGeneric, err.Error()
}

// outputCommandError emits a formatted error and wraps it with the
// command-error exit code.
func outputCommandError(formatter *OutputFormatter, code, message string) error {
	_ = formatter.Error(code, message, nil)
	return WrapExitError(ExitCommandError, fmt.Sprintf("%s: %s", code, message), nil)
}
