package matching

import (
	"fmt"

	"github.com/ohler55/ojg/jp"

	"github.com/getmockd/mockroute/pkg/value"
)

// SelectJSONPath evaluates a JSONPath expression against a document and
// returns every matching node.
func SelectJSONPath(doc value.Value, path string) ([]value.Value, error) {
	expr, err := jp.ParseString(path)
	if err != nil {
		return nil, fmt.Errorf("invalid JSONPath %q: %w", path, err)
	}

	results := expr.Get(doc.ToAny())
	out := make([]value.Value, 0, len(results))
	for _, r := range results {
		v, err := value.FromAny(r)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}
