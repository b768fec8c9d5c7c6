package animj

import (
	"fmt"

	"github.com/goccy/go-yaml"
	jsoniter "github.com/json-iterator/go"
)

// jsonAPI keeps numbers as json.Number so 64-bit integers are not rounded through float64.
var jsonAPI = jsoniter.Config{
	EscapeHTML:             true,
	SortMapKeys:            true,
	ValidateJsonRawMessage: true,
	UseNumber:              true,
}.Froze()

// ParseJSON parses an AnimJ JSON document into the generic tree Decode consumes.
func ParseJSON(data []byte) (any, error) {
	var doc any
	if err := jsonAPI.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse AnimJ JSON: %w", err)
	}

	return doc, nil
}

// ParseYAML parses an AnimJ document written as YAML into the generic tree Decode consumes.
func ParseYAML(data []byte) (any, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse AnimJ YAML: %w", err)
	}

	return normalize(doc), nil
}

// normalize rewrites maps with non-string keys into map[string]any.
func normalize(node any) any {
	switch n := node.(type) {
	case map[string]any:
		for k, v := range n {
			n[k] = normalize(v)
		}

		return n
	case map[any]any:
		out := make(map[string]any, len(n))
		for k, v := range n {
			out[fmt.Sprint(k)] = normalize(v)
		}

		return out
	case []any:
		for i, v := range n {
			n[i] = normalize(v)
		}

		return n
	default:
		return node
	}
}
