// Package engine holds the pure eligibility rules: evaluating a profile against
// a scheme's canonical criteria and synthesizing follow-up questions for the
// schemes that cannot be decided yet. No I/O, no side effects.
package engine

import (
	"encoding/json"
	"math"
	"slices"
	"strconv"
	"strings"

	"eligo/internal/eligibility/models"
)

// Evaluate checks every criterion of a scheme against the profile.
//
// A criterion whose base field is not present in the profile is recorded as
// missing and produces no reason. Every criterion is visited so the caller
// sees all disqualifying reasons and all missing fields at once. Verdict
// priority: any reason is not_eligible, else any missing field is needs_info,
// else eligible.
func Evaluate(profile models.Profile, criteria models.Criteria) models.Evaluation {
	var missing, reasons []string

	for _, key := range criteria.Keys() {
		field := models.BaseField(key)
		userValue, ok := profile.Lookup(field)
		if !ok {
			if !slices.Contains(missing, field) {
				missing = append(missing, field)
			}
			continue
		}
		if reason, failed := check(key, field, criteria[key], userValue); failed {
			reasons = append(reasons, reason)
		}
	}

	switch {
	case len(reasons) > 0:
		return models.Evaluation{Verdict: models.VerdictNotEligible, Missing: missing, Reasons: reasons}
	case len(missing) > 0:
		return models.Evaluation{Verdict: models.VerdictNeedsInfo, Missing: missing}
	default:
		return models.Evaluation{Verdict: models.VerdictEligible}
	}
}

// check applies the rule for the criterion's value kind.
func check(key, field string, rule models.Value, userValue any) (string, bool) {
	switch rule.Kind() {
	case models.KindNumber:
		bound, _ := rule.Number()
		uv, ok := toFloat(userValue)
		if !ok {
			return invalidReason(field, userValue), true
		}
		switch models.KeySuffix(key) {
		case models.SuffixMin:
			if uv < bound {
				return compareReason(field, "≥", rule, userValue), true
			}
		case models.SuffixMax:
			if uv > bound {
				return compareReason(field, "≤", rule, userValue), true
			}
		default:
			if uv != bound {
				return compareReason(field, "=", rule, userValue), true
			}
		}

	case models.KindBool:
		required, _ := rule.Bool()
		actual := truthy(userValue)
		if actual != required {
			return requiredReason(field, required, actual), true
		}

	case models.KindList:
		allowed, _ := rule.Items()
		if !containsFold(allowed, displayValue(userValue)) {
			return allowedReason(field, allowed, userValue), true
		}

	case models.KindString:
		want, _ := rule.Str()
		if !strings.EqualFold(strings.TrimSpace(want), strings.TrimSpace(displayValue(userValue))) {
			return allowedReason(field, []string{want}, userValue), true
		}
	}
	return "", false
}

func containsFold(allowed []string, v string) bool {
	v = strings.TrimSpace(v)
	for _, a := range allowed {
		if strings.EqualFold(strings.TrimSpace(a), v) {
			return true
		}
	}
	return false
}

// toFloat reads a user value as a number. Booleans are not numbers.
func toFloat(v any) (float64, bool) {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int64:
		f = float64(n)
	case int32:
		f = float64(n)
	case json.Number:
		parsed, err := n.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// truthy defines how a user answer satisfies a yes/no requirement: booleans as
// is, numbers when non-zero, yes/no style tokens by meaning, any other
// non-empty text as yes.
func truthy(v any) bool {
	switch t := v.(type) {
	case bool:
		return t
	case string:
		switch strings.ToLower(strings.TrimSpace(t)) {
		case "yes", "y", "true", "1":
			return true
		case "no", "n", "false", "0", "":
			return false
		}
		return true
	}
	if f, ok := toFloat(v); ok {
		return f != 0
	}
	return v != nil
}

// displayValue renders a user value for comparison and reason text.
func displayValue(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case bool:
		return models.YesNo(t)
	case json.Number:
		return t.String()
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case float64:
		return models.FormatNumber(t, false)
	}
	if f, ok := toFloat(v); ok {
		return models.FormatNumber(f, false)
	}
	return toString(v)
}

func toString(v any) string {
	if s, ok := v.(interface{ String() string }); ok {
		return s.String()
	}
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(b)
}
