package normalize

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// DecodeJSON parses a raw scheme document keeping integer and decimal
// literals distinguishable.
func DecodeJSON(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var out any
	if err := dec.Decode(&out); err != nil {
		return nil, fmt.Errorf("decode scheme JSON: %w", err)
	}
	if dec.More() {
		return nil, fmt.Errorf("decode scheme JSON: trailing data after top-level value")
	}
	return out, nil
}

// DecodeYAML parses a YAML scheme document into the same generic shape.
func DecodeYAML(data []byte) (any, error) {
	var out any
	if err := yaml.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("decode scheme YAML: %w", err)
	}
	return out, nil
}
