package engine

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eligo/internal/eligibility/models"
)

func profileOf(fields map[string]any) models.Profile {
	return models.NewProfile(fields)
}

func TestEvaluate_Scenarios(t *testing.T) {
	t.Run("under minimum age is not eligible", func(t *testing.T) {
		got := Evaluate(profileOf(map[string]any{"age": 16}), models.Criteria{"age_min": models.Int(18)})

		assert.Equal(t, models.VerdictNotEligible, got.Verdict)
		assert.Equal(t, []string{"Age must be ≥ 18 (you entered 16)."}, got.Reasons)
	})

	t.Run("empty profile needs info for every referenced field", func(t *testing.T) {
		got := Evaluate(profileOf(nil), models.Criteria{
			"age_min":        models.Int(18),
			"gender_allowed": models.List("Female"),
		})

		assert.Equal(t, models.VerdictNeedsInfo, got.Verdict)
		assert.Equal(t, []string{"age", "gender"}, got.Missing)
		assert.Empty(t, got.Reasons)
	})

	t.Run("zero criteria is always eligible", func(t *testing.T) {
		got := Evaluate(profileOf(nil), models.Criteria{})
		assert.Equal(t, models.VerdictEligible, got.Verdict)
		assert.Empty(t, got.Missing)
	})

	t.Run("reason outranks missing data", func(t *testing.T) {
		got := Evaluate(profileOf(map[string]any{"age": 70}), models.Criteria{
			"age_max":      models.Int(60),
			"bpl_required": models.Bool(true),
		})

		assert.Equal(t, models.VerdictNotEligible, got.Verdict)
		assert.Equal(t, []string{"bpl"}, got.Missing, "missing fields are still collected")
		assert.Equal(t, []string{"Age must be ≤ 60 (you entered 70)."}, got.Reasons)
	})
}

func TestEvaluate_BoundsAreInclusive(t *testing.T) {
	criteria := models.Criteria{"age_min": models.Int(18), "age_max": models.Int(60), "income_max": models.Float(50000.5)}

	for _, age := range []any{18, 60, "18", json.Number("60")} {
		got := Evaluate(profileOf(map[string]any{"age": age, "income": 50000.5}), criteria)
		assert.Equal(t, models.VerdictEligible, got.Verdict, "age %v", age)
	}
}

func TestEvaluate_RequiredMissingIsNeverAReason(t *testing.T) {
	for _, v := range []any{nil, ""} {
		got := Evaluate(profileOf(map[string]any{"bpl": v}), models.Criteria{"bpl_required": models.Bool(true)})
		assert.Equal(t, models.VerdictNeedsInfo, got.Verdict)
		assert.Equal(t, []string{"bpl"}, got.Missing)
		assert.Empty(t, got.Reasons)
	}
}

func TestEvaluate_Rules(t *testing.T) {
	tests := []struct {
		name     string
		profile  map[string]any
		criteria models.Criteria
		reason   string
	}{
		{
			name:     "exact numeric mismatch",
			profile:  map[string]any{"children": 2},
			criteria: models.Criteria{"children": models.Int(3)},
			reason:   "Children must be = 3 (you entered 2).",
		},
		{
			name:     "non numeric value on numeric rule",
			profile:  map[string]any{"income": "lots"},
			criteria: models.Criteria{"income_max": models.Int(50000)},
			reason:   "Annual income has an invalid value (you entered lots).",
		},
		{
			name:     "boolean on numeric rule is invalid",
			profile:  map[string]any{"land_acres": true},
			criteria: models.Criteria{"land_acres_max": models.Float(2.5)},
			reason:   "Land Acres has an invalid value (you entered Yes).",
		},
		{
			name:     "boolean requirement unmet",
			profile:  map[string]any{"bpl": false},
			criteria: models.Criteria{"bpl_required": models.Bool(true)},
			reason:   "BPL status must be Yes (you entered No).",
		},
		{
			name:     "textual no does not satisfy a requirement",
			profile:  map[string]any{"widow_required": "no"},
			criteria: models.Criteria{"widow_required": models.Bool(true)},
			reason:   "Widow Required must be Yes (you entered No).",
		},
		{
			name:     "allowed set mismatch",
			profile:  map[string]any{"category": "OBC"},
			criteria: models.Criteria{"category_allowed": models.List("SC", "ST")},
			reason:   "Category must be one of [SC, ST] (you entered OBC).",
		},
		{
			name:     "exact string mismatch",
			profile:  map[string]any{"state": "Kerala"},
			criteria: models.Criteria{"state": models.String("Karnataka")},
			reason:   "State must be one of [Karnataka] (you entered Kerala).",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Evaluate(profileOf(tt.profile), tt.criteria)
			require.Equal(t, models.VerdictNotEligible, got.Verdict)
			assert.Equal(t, []string{tt.reason}, got.Reasons)
		})
	}
}

func TestEvaluate_CaseInsensitiveMatches(t *testing.T) {
	got := Evaluate(profileOf(map[string]any{
		"gender":         " female ",
		"residence_type": "RURAL",
		"state":          "karnataka",
		"disability":     "yes",
	}), models.Criteria{
		"gender_allowed":         models.List("Female"),
		"residence_type_allowed": models.List("Rural", "Urban"),
		"state":                  models.String(" Karnataka"),
		"disability_required":    models.Bool(true),
	})
	assert.Equal(t, models.VerdictEligible, got.Verdict)
}

func TestEvaluate_CollectsEveryReason(t *testing.T) {
	got := Evaluate(profileOf(map[string]any{"age": 70, "gender": "Male", "income": 90000}), models.Criteria{
		"age_max":          models.Int(60),
		"gender_allowed":   models.List("Female"),
		"income_max":       models.Int(50000),
		"student_required": models.Bool(true),
	})
	assert.Equal(t, models.VerdictNotEligible, got.Verdict)
	assert.Len(t, got.Reasons, 3)
	assert.Equal(t, []string{"student_required"}, got.Missing)
}

func TestEvaluate_EmptyAllowedSetFailsClosed(t *testing.T) {
	got := Evaluate(profileOf(map[string]any{"state_allowed": "Goa"}), models.Criteria{"state_allowed": models.List()})
	assert.Equal(t, models.VerdictNotEligible, got.Verdict)
}

func TestPrettyField(t *testing.T) {
	assert.Equal(t, "Annual income", PrettyField("income"))
	assert.Equal(t, "Land Holding", PrettyField("land_holding"))
}
