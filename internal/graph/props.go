package graph

import (
	"fmt"
	"time"
)

// sanitizeProps validates that every value in the bag is storable as a graph
// scalar. Nested structures must be flattened or serialized upstream; finding
// one here is a per-item failure, not a batch failure. Nil-valued keys are
// dropped so an absent optional field never overwrites an existing property
// with null.
func sanitizeProps(props map[string]any) (map[string]any, error) {
	if len(props) == 0 {
		return map[string]any{}, nil
	}
	out := make(map[string]any, len(props))
	for k, v := range props {
		if v == nil {
			continue
		}
		switch v.(type) {
		case string, bool,
			int, int8, int16, int32, int64,
			uint, uint8, uint16, uint32,
			float32, float64,
			time.Time:
			out[k] = v
		default:
			return nil, fmt.Errorf("%w: property %q has type %T", ErrUnsupportedProperty, k, v)
		}
	}
	return out, nil
}
