// Package normalize canonicalizes LLM-extracted scheme data: arbitrary criterion
// names are resolved through a fixed alias table and loosely typed values are
// coerced into typed criterion values.
package normalize

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"

	"eligo/internal/eligibility/models"
)

// ErrNotAList is returned when the top-level payload is not a list of schemes.
var ErrNotAList = errors.New("schemes payload must be a list")

// Stats counts what normalization discarded.
type Stats struct {
	Schemes         int
	DroppedSchemes  int
	DroppedCriteria int
}

// Schemes normalizes a raw scheme list. Entries that are not objects, or whose
// criteria field is present but not an object, are dropped so a malformed
// scheme can never be reported as eligible.
func Schemes(raw any) ([]models.Scheme, Stats, error) {
	var stats Stats
	items, ok := raw.([]any)
	if !ok {
		return nil, stats, fmt.Errorf("%w, got %s", ErrNotAList, describe(raw))
	}

	out := make([]models.Scheme, 0, len(items))
	for _, item := range items {
		obj, ok := asObject(item)
		if !ok {
			stats.DroppedSchemes++
			continue
		}
		rawCriteria, ok := criteriaObject(obj["criteria"])
		if !ok {
			stats.DroppedSchemes++
			continue
		}
		criteria, dropped := Criteria(rawCriteria)
		stats.DroppedCriteria += dropped

		name := textField(obj["scheme_name"])
		if name == "" {
			name = models.DefaultSchemeName
		}
		out = append(out, models.Scheme{
			Name:     name,
			Benefits: textField(obj["benefits"]),
			Criteria: criteria,
		})
	}
	stats.Schemes = len(out)
	return out, stats, nil
}

// Criteria canonicalizes one criteria object. It returns the number of entries
// dropped for a non-string key, a value with no canonical shape, or a spelling
// shadowed by another key with the same canonical form. On such a collision the
// key already written in canonical form wins; among synonyms the first in byte
// order wins.
func Criteria(raw map[any]any) (models.Criteria, int) {
	dropped := 0
	keys := make([]string, 0, len(raw))
	for k := range raw {
		key, ok := k.(string)
		if !ok {
			dropped++
			continue
		}
		keys = append(keys, key)
	}
	slices.Sort(keys)

	out := make(models.Criteria, len(keys))
	direct := make(map[string]bool, len(keys))
	for _, key := range keys {
		canon := CanonicalKey(key)
		if canon == "" {
			dropped++
			continue
		}
		value, ok := coerce(raw[key])
		if !ok {
			dropped++
			continue
		}
		isDirect := lowerTrim(key) == canon
		if _, taken := out[canon]; taken {
			dropped++
			if direct[canon] || !isDirect {
				continue
			}
		}
		out[canon] = fixSuffix(canon, raw[key], value)
		direct[canon] = isDirect
	}
	return out, dropped
}

// Keys returns the sorted distinct canonical keys used across schemes.
func Keys(schemes []models.Scheme) []string {
	set := make(map[string]struct{})
	for _, s := range schemes {
		for k := range s.Criteria {
			set[k] = struct{}{}
		}
	}
	keys := slices.Sorted(maps.Keys(set))
	if keys == nil {
		keys = []string{}
	}
	return keys
}

// asObject accepts the two map shapes produced by encoding/json and yaml.v3.
func asObject(raw any) (map[string]any, bool) {
	switch m := raw.(type) {
	case map[string]any:
		return m, true
	case map[any]any:
		out := make(map[string]any, len(m))
		for k, v := range m {
			if s, ok := k.(string); ok {
				out[s] = v
			}
		}
		return out, true
	}
	return nil, false
}

// criteriaObject treats a missing or null criteria field as no criteria.
func criteriaObject(raw any) (map[any]any, bool) {
	switch m := raw.(type) {
	case nil:
		return map[any]any{}, true
	case map[string]any:
		out := make(map[any]any, len(m))
		for k, v := range m {
			out[k] = v
		}
		return out, true
	case map[any]any:
		return m, true
	}
	return nil, false
}

func textField(raw any) string {
	if raw == nil {
		return ""
	}
	if s, ok := scalarString(raw); ok {
		return s
	}
	return strings.TrimSpace(fmt.Sprint(raw))
}

func describe(raw any) string {
	switch raw.(type) {
	case nil:
		return "null"
	case map[string]any, map[any]any:
		return "object"
	case string:
		return "string"
	case bool:
		return "boolean"
	}
	if _, _, ok := rawNumber(raw); ok {
		return "number"
	}
	return fmt.Sprintf("%T", raw)
}
