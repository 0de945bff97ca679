package export

import (
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/cinderlang/cinder/internal/ir"
	"github.com/cinderlang/cinder/internal/traverse"
)

// Preprocessor converts a validated graph for one backend.
// It receives a graph that is known to validate and traverse to
// completion, plus the caller's shape spec, and returns an opaque
// payload map (entry name to serialized blob).
type Preprocessor func(g *ir.Graph, spec *ShapeSpec) (map[string][]byte, error)

// Artifact is the result of preprocessing a graph for a backend.
type Artifact struct {
	// ID is a fresh UUIDv7 identifying this export run.
	ID string

	// Backend is the registered backend name.
	Backend string

	// GraphID is the content-addressed identity of the source graph.
	GraphID string

	// Payload is the backend's opaque output, keyed by entry name.
	Payload map[string][]byte
}

var (
	registryMu sync.RWMutex
	registry   = map[string]Preprocessor{}
)

// Register makes a backend available under name. Registering the same
// name twice panics: backend wiring is a process-startup concern and a
// collision is a programming error.
func Register(name string, p Preprocessor) {
	registryMu.Lock()
	defer registryMu.Unlock()

	if _, dup := registry[name]; dup {
		panic(fmt.Sprintf("export: backend %q registered twice", name))
	}
	registry[name] = p
}

// Backends returns the registered backend names, sorted.
func Backends() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Preprocess runs the named backend over a graph.
//
// Before the backend sees anything, the graph must validate and a full
// traversal must succeed; backends may therefore assume a well-formed,
// completely enumerable module. The shape spec is validated the same
// way, so malformed input is rejected here with a useful error instead
// of deep inside a backend.
func Preprocess(name string, g *ir.Graph, spec *ShapeSpec) (*Artifact, error) {
	registryMu.RLock()
	p, ok := registry[name]
	registryMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("unknown backend %q (registered: %v)", name, Backends())
	}

	if spec == nil {
		return nil, fmt.Errorf("shape spec is required")
	}
	if err := spec.Validate(); err != nil {
		return nil, err
	}

	if err := ir.Validate(g); err != nil {
		return nil, fmt.Errorf("graph failed validation: %w", err)
	}
	if _, err := traverse.New(g).Collect(); err != nil {
		return nil, fmt.Errorf("graph failed traversal: %w", err)
	}

	graphID, err := ir.GraphID(g)
	if err != nil {
		return nil, err
	}

	payload, err := p(g, spec)
	if err != nil {
		return nil, fmt.Errorf("backend %q: %w", name, err)
	}

	return &Artifact{
		ID:      uuid.Must(uuid.NewV7()).String(),
		Backend: name,
		GraphID: graphID,
		Payload: payload,
	}, nil
}

// referencePreprocess is the built-in backend: the canonical graph
// form under a single "Module" entry.
func referencePreprocess(g *ir.Graph, _ *ShapeSpec) (map[string][]byte, error) {
	canonical, err := ir.MarshalCanonical(g)
	if err != nil {
		return nil, err
	}
	return map[string][]byte{"Module": canonical}, nil
}

func init() {
	Register("reference", referencePreprocess)
}
