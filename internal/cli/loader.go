package cli

import (
	"fmt"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"

	"github.com/cinderlang/cinder/internal/compiler"
	"github.com/cinderlang/cinder/internal/ir"
)

// Loader error codes.
const (
	ErrCodeFileNotFound = "E001"
	ErrCodeNoGraph      = "E002"
	ErrCodeCompile      = "E003"
	ErrCodeGeneric      = "E999"
)

// LoadError reports a failure to load a graph document before
// compilation proper begins.
type LoadError struct {
	Code    string
	Message string
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// LoadGraphFile reads a CUE graph document and compiles it.
//
// The file must declare a top-level graph struct:
//
//	graph: { name: "demo", nodes: [...] }
func LoadGraphFile(path string) (*ir.Graph, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{
			Code:    ErrCodeFileNotFound,
			Message: fmt.Sprintf("cannot read %s: %v", path, err),
		}
	}

	ctx := cuecontext.New()
	v := ctx.CompileBytes(data, cue.Filename(path))
	if err := v.Err(); err != nil {
		return nil, &LoadError{
			Code:    ErrCodeCompile,
			Message: err.Error(),
		}
	}

	graphVal := v.LookupPath(cue.ParsePath("graph"))
	if !graphVal.Exists() {
		return nil, &LoadError{
			Code:    ErrCodeNoGraph,
			Message: fmt.Sprintf("%s does not declare a top-level graph struct", path),
		}
	}

	g, err := compiler.CompileGraph(graphVal)
	if err != nil {
		return nil, err
	}
	return g, nil
}
