// Package profile types raw check submissions into an evaluation profile.
package profile

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"eligo/internal/eligibility/models"
)

// Build types the basic fields of a submission and overlays the extra answers.
// A basic field that cannot be read is treated as not provided. Extra entries
// fill any key that is not a present basic field; they never override one.
func Build(sub models.Submission) models.Profile {
	fields := map[string]any{
		models.FieldAge:                  toInt(sub.Basic[models.FieldAge]),
		models.FieldIncome:               toInt(sub.Basic[models.FieldIncome]),
		models.FieldBPL:                  toBool(sub.Basic[models.FieldBPL]),
		models.FieldCategory:             toText(sub.Basic[models.FieldCategory]),
		models.FieldGender:               toText(sub.Basic[models.FieldGender]),
		models.FieldResidenceType:        toText(sub.Basic[models.FieldResidenceType]),
		models.FieldDisability:           toBool(sub.Basic[models.FieldDisability]),
		models.FieldDisabilityPercentage: toFloat(sub.Basic[models.FieldDisabilityPercentage]),
	}

	p := models.NewProfile(fields)
	for k, v := range sub.Extra {
		if _, present := p.Lookup(k); present {
			continue
		}
		fields[k] = v
	}
	return p
}

// toInt returns an int64, or nil when v is empty or unreadable. Fractions are
// truncated; numeric strings must be whole numbers.
func toInt(v any) any {
	switch t := v.(type) {
	case nil, bool:
		return nil
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(t), 10, 64)
		if err != nil {
			return nil
		}
		return n
	case json.Number:
		if n, err := t.Int64(); err == nil {
			return n
		}
		f, err := t.Float64()
		if err != nil {
			return nil
		}
		return truncate(f)
	case int:
		return int64(t)
	case int64:
		return t
	case int32:
		return int64(t)
	case float64:
		return truncate(t)
	case float32:
		return truncate(float64(t))
	}
	return nil
}

func truncate(f float64) any {
	if math.IsNaN(f) || f < -(1<<63) || f >= 1<<63 {
		return nil
	}
	return int64(f)
}

// toFloat returns a float64, or nil when v is empty or unreadable.
func toFloat(v any) any {
	var f float64
	switch t := v.(type) {
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return nil
		}
		f = parsed
	case json.Number:
		parsed, err := t.Float64()
		if err != nil {
			return nil
		}
		f = parsed
	case int:
		f = float64(t)
	case int64:
		f = float64(t)
	case float64:
		f = t
	case float32:
		f = float64(t)
	default:
		return nil
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return f
}

// toBool reads yes/no style answers. Unrecognised non-empty text counts as yes.
func toBool(v any) any {
	switch t := v.(type) {
	case nil:
		return nil
	case bool:
		return t
	case string:
		s := strings.ToLower(strings.TrimSpace(t))
		switch s {
		case "":
			return nil
		case "true", "yes", "1":
			return true
		case "false", "no", "0":
			return false
		}
		return true
	}
	if f, ok := toFloat(v).(float64); ok {
		return f != 0
	}
	return true
}

func toText(v any) any {
	switch t := v.(type) {
	case nil:
		return nil
	case string:
		if s := strings.TrimSpace(t); s != "" {
			return s
		}
		return nil
	case json.Number:
		return t.String()
	case bool:
		return models.YesNo(t)
	case float64:
		return models.FormatNumber(t, false)
	case int:
		return strconv.Itoa(t)
	}
	return nil
}
