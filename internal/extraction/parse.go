package extraction

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// stripFences removes a surrounding Markdown code fence, with or without a
// language tag.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if rest, ok := strings.CutPrefix(s, "```"); ok {
		if nl := strings.IndexByte(rest, '\n'); nl >= 0 && !strings.ContainsAny(rest[:nl], "[{") {
			rest = rest[nl+1:]
		} else {
			rest = strings.TrimPrefix(rest, "json")
		}
		s = rest
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

// parseSchemes decodes a model reply. A reply that is valid JSON but not an
// array yields no schemes.
func parseSchemes(reply string) ([]any, error) {
	body := stripFences(reply)
	if body == "" {
		return nil, fmt.Errorf("empty model reply")
	}

	dec := json.NewDecoder(bytes.NewReader([]byte(body)))
	dec.UseNumber()
	var parsed any
	if err := dec.Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode model reply: %w", err)
	}
	list, ok := parsed.([]any)
	if !ok {
		return nil, nil
	}
	return list, nil
}
