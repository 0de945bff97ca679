package export

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// ShapeSpec describes the inputs a backend should compile a graph
// against. Parsed from YAML:
//
//	forward:
//	  inputs:
//	    - shape: [1, 3, 224, 224]
//	      dtype: float32
//	    - shape: [0, 16]   # 0 = load-time flexible dimension
//	      dtype: int32
type ShapeSpec struct {
	Forward *EntrySpec `yaml:"forward"`
}

// EntrySpec bundles the input descriptions of one entry point.
type EntrySpec struct {
	Inputs []TensorSpec `yaml:"inputs"`
}

// TensorSpec describes one expected input tensor. A zero dimension
// means the size is flexible until load time.
type TensorSpec struct {
	Shape []int64 `yaml:"shape"`
	DType string  `yaml:"dtype"`
}

// validDTypes is the closed set of element types backends agree on.
var validDTypes = map[string]bool{
	"float32": true,
	"int32":   true,
	"int64":   true,
	"uint8":   true,
}

// ParseShapeSpec decodes and validates a YAML shape spec.
func ParseShapeSpec(data []byte) (*ShapeSpec, error) {
	var spec ShapeSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("parsing shape spec: %w", err)
	}
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	return &spec, nil
}

// Validate checks that the spec names a forward entry with at least one
// well-formed input.
func (s *ShapeSpec) Validate() error {
	if s.Forward == nil {
		return fmt.Errorf(`shape spec does not contain the "forward" key`)
	}
	if len(s.Forward.Inputs) == 0 {
		return fmt.Errorf(`shape spec does not contain any "inputs" under its "forward" key`)
	}
	for i, in := range s.Forward.Inputs {
		if !validDTypes[in.DType] {
			return fmt.Errorf("inputs[%d]: unknown dtype %q", i, in.DType)
		}
		if len(in.Shape) == 0 {
			return fmt.Errorf("inputs[%d]: shape is required", i)
		}
		for j, dim := range in.Shape {
			if dim < 0 {
				return fmt.Errorf("inputs[%d]: shape[%d] is negative (use 0 for a flexible dimension)", i, j)
			}
		}
	}
	return nil
}
