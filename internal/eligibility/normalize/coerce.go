package normalize

import (
	"encoding/json"
	"math"
	"regexp"
	"strconv"
	"strings"

	"eligo/internal/eligibility/models"
	pstrings "eligo/pkg/platform/strings"
)

const listSeparators = ",/|"

var numericPattern = regexp.MustCompile(`^\d+(\.\d+)?$`)

var (
	trueTokens  = map[string]bool{"yes": true, "y": true, "true": true, "1": true, "required": true}
	falseTokens = map[string]bool{"no": true, "n": true, "false": true, "0": true, "not required": true}
)

func lowerTrim(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// coerce turns a raw extracted value into a typed criterion value. Steps run in
// a fixed order: boolean tokens, then delimiter lists, then numeric strings.
// ok is false for values with no canonical shape (null, nested objects).
func coerce(raw any) (models.Value, bool) {
	switch v := raw.(type) {
	case nil:
		return models.Value{}, false
	case bool:
		return models.Bool(v), true
	case string:
		return coerceString(v), true
	case []any:
		return models.List(scalarStrings(v)...), true
	case []string:
		return models.List(pstrings.DedupeAndTrim(v)...), true
	}
	if n, isInt, ok := rawNumber(raw); ok {
		return numberValue(n, isInt), true
	}
	return models.Value{}, false
}

// int64 bounds as float64; 2^63 itself is out of range.
const (
	minInt64Float = -(1 << 63)
	maxInt64Float = 1 << 63
)

// numberValue keeps integral values as Int only while they fit in an int64.
func numberValue(n float64, isInt bool) models.Value {
	if isInt && n >= minInt64Float && n < maxInt64Float {
		return models.Int(int64(n))
	}
	return models.Float(n)
}

func coerceString(s string) models.Value {
	token := lowerTrim(s)
	if trueTokens[token] {
		return models.Bool(true)
	}
	if falseTokens[token] {
		return models.Bool(false)
	}
	if parts := pstrings.SplitAny(s, listSeparators); len(parts) >= 2 {
		return models.List(parts...)
	}
	trimmed := strings.TrimSpace(s)
	if n, isInt, ok := parseNumeric(trimmed); ok {
		return numberValue(n, isInt)
	}
	return models.String(trimmed)
}

// parseNumeric accepts unsigned integer or decimal literals only.
func parseNumeric(s string) (float64, bool, bool) {
	if !numericPattern.MatchString(s) {
		return 0, false, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false, false
	}
	return f, !strings.Contains(s, "."), true
}

// rawNumber unpacks the numeric types produced by encoding/json (with
// UseNumber), yaml.v3 and Go callers. NaN and infinities are rejected: no
// profile value compares against them, so such a bound would pass everyone.
func rawNumber(raw any) (float64, bool, bool) {
	n, isInt, ok := anyNumber(raw)
	if !ok || math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, false, false
	}
	return n, isInt, true
}

func anyNumber(raw any) (float64, bool, bool) {
	switch n := raw.(type) {
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return float64(i), true, true
		}
		f, err := n.Float64()
		if err != nil {
			return 0, false, false
		}
		return f, false, true
	case int:
		return float64(n), true, true
	case int64:
		return float64(n), true, true
	case int32:
		return float64(n), true, true
	case uint64:
		return float64(n), true, true
	case float64:
		return n, false, true
	case float32:
		return float64(n), false, true
	}
	return 0, false, false
}

// scalarString renders a raw scalar as list/set text. Non-scalars are skipped.
func scalarString(raw any) (string, bool) {
	switch v := raw.(type) {
	case string:
		return strings.TrimSpace(v), true
	case bool:
		return strconv.FormatBool(v), true
	}
	if n, isInt, ok := rawNumber(raw); ok {
		return models.FormatNumber(n, isInt), true
	}
	return "", false
}

func scalarStrings(items []any) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := scalarString(item); ok {
			out = append(out, s)
		}
	}
	return pstrings.DedupeAndTrim(out)
}

// fixSuffix applies the suffix-aware adjustments that make a value's shape
// match its key: _allowed is always a list, _min/_max stay numeric when the raw
// input was numeric, _required is always a boolean when the raw input was a number.
func fixSuffix(key string, raw any, v models.Value) models.Value {
	switch models.KeySuffix(key) {
	case models.SuffixAllowed:
		if v.Kind() != models.KindList {
			return models.List(valueText(v))
		}
	case models.SuffixMin, models.SuffixMax:
		if v.Kind() == models.KindBool {
			if s, ok := raw.(string); ok {
				if n, isInt, ok := parseNumeric(strings.TrimSpace(s)); ok {
					return numberValue(n, isInt)
				}
			}
		}
	case models.SuffixRequired:
		if n, ok := v.Number(); ok {
			return models.Bool(n != 0)
		}
	}
	return v
}

// valueText is the string form used when a scalar is wrapped into a set.
func valueText(v models.Value) string {
	switch v.Kind() {
	case models.KindBool:
		b, _ := v.Bool()
		return strconv.FormatBool(b)
	case models.KindNumber:
		n, _ := v.Number()
		return models.FormatNumber(n, v.IsInt())
	default:
		s, _ := v.Str()
		return s
	}
}
