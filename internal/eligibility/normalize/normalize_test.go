package normalize

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eligo/internal/eligibility/models"
)

func mustDecode(t *testing.T, doc string) any {
	t.Helper()
	raw, err := DecodeJSON([]byte(doc))
	require.NoError(t, err)
	return raw
}

func criteriaOf(t *testing.T, doc string) models.Criteria {
	t.Helper()
	schemes, _, err := Schemes(mustDecode(t, `[{"scheme_name":"S","criteria":`+doc+`}]`))
	require.NoError(t, err)
	require.Len(t, schemes, 1)
	return schemes[0].Criteria
}

func TestCanonicalKey(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"min_age", "age_min"},
		{"  Minimum_Age ", "age_min"},
		{"income_limit", "income_max"},
		{"category", "category_allowed"},
		{"caste", "category_allowed"},
		{"bpl", "bpl_required"},
		{"disability", "disability_required"},
		{"disability_percentage", "disability_percentage_min"},
		{"rural_urban", "residence_type_allowed"},
		{"land_holding_max", "land_holding_max"},
		{"STATE_ALLOWED", "state_allowed"},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, CanonicalKey(tt.raw))
		})
	}
}

func TestAliasKeysNormalizeIdentically(t *testing.T) {
	a := criteriaOf(t, `{"min_age": 18}`)
	b := criteriaOf(t, `{"age_min": 18}`)
	assert.Empty(t, cmp.Diff(a, b))
	assert.True(t, a["age_min"].Equal(models.Int(18)))
}

func TestCoercion(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		key  string
		want models.Value
	}{
		{"yes under required", `{"widow_required": "yes"}`, "widow_required", models.Bool(true)},
		{"not required phrase", `{"student_required": "Not Required"}`, "student_required", models.Bool(false)},
		{"one under required is boolean", `{"bpl_required": "1"}`, "bpl_required", models.Bool(true)},
		{"number under required is truthiness", `{"farmer_required": 0}`, "farmer_required", models.Bool(false)},
		{"numeric string under min", `{"age_min": "18"}`, "age_min", models.Int(18)},
		{"decimal string under max", `{"land_acres_max": "2.5"}`, "land_acres_max", models.Float(2.5)},
		{"one under min stays numeric", `{"children_min": "1"}`, "children_min", models.Int(1)},
		{"raw decimal literal", `{"ratio_max": 2.0}`, "ratio_max", models.Float(2)},
		{"slash list", `{"category_allowed": "SC/ST"}`, "category_allowed", models.List("SC", "ST")},
		{"pipe and comma list", `{"state_allowed": "Karnataka | Kerala, Goa"}`, "state_allowed", models.List("Karnataka", "Kerala", "Goa")},
		{"scalar allowed wraps", `{"gender": "Female"}`, "gender_allowed", models.List("Female")},
		{"number allowed wraps", `{"class_allowed": 10}`, "class_allowed", models.List("10")},
		{"raw list trims", `{"occupation_allowed": [" Farmer ", "Weaver", 3]}`, "occupation_allowed", models.List("Farmer", "Weaver", "3")},
		{"plain string stays", `{"state": " Karnataka "}`, "state", models.String("Karnataka")},
		{"negative number string stays string", `{"temp_min": "-5"}`, "temp_min", models.String("-5")},
		{"single part list stays scalar", `{"district": "Mysuru,"}`, "district", models.String("Mysuru,")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := criteriaOf(t, tt.doc)
			got, ok := c[tt.key]
			require.True(t, ok, "missing key %s in %v", tt.key, c.Keys())
			assert.True(t, got.Equal(tt.want), "got %s (%s), want %s (%s)", got, got.Kind(), tt.want, tt.want.Kind())
		})
	}
}

func TestSchemeDefaultsAndDrops(t *testing.T) {
	raw := mustDecode(t, `[
		{"scheme_name": "  Old Age Pension ", "benefits": " Rs 1000/month ", "criteria": {"min_age": 60}},
		{"benefits": "no name"},
		"not an object",
		42,
		{"scheme_name": "Broken", "criteria": ["age_min", 18]},
		{"scheme_name": "   ", "criteria": {"note": null, "nested": {"a": 1}, "state": "Goa"}}
	]`)

	schemes, stats, err := Schemes(raw)
	require.NoError(t, err)
	require.Len(t, schemes, 3)

	assert.Equal(t, "Old Age Pension", schemes[0].Name)
	assert.Equal(t, "Rs 1000/month", schemes[0].Benefits)

	assert.Equal(t, models.DefaultSchemeName, schemes[1].Name)
	assert.Empty(t, schemes[1].Criteria)

	assert.Equal(t, models.DefaultSchemeName, schemes[2].Name)
	assert.Equal(t, []string{"state"}, schemes[2].Criteria.Keys())

	assert.Equal(t, Stats{Schemes: 3, DroppedSchemes: 3, DroppedCriteria: 2}, stats)
}

func TestSchemesRejectsNonList(t *testing.T) {
	for _, doc := range []string{`{"scheme_name": "x"}`, `"schemes"`, `null`, `12`} {
		t.Run(doc, func(t *testing.T) {
			_, _, err := Schemes(mustDecode(t, doc))
			require.ErrorIs(t, err, ErrNotAList)
		})
	}
}

func TestNormalizeIsIdempotent(t *testing.T) {
	first, _, err := Schemes(mustDecode(t, `[
		{"scheme_name": "Pension", "benefits": "cash", "criteria": {
			"min_age": "60", "income_limit": "50000", "bpl": "yes", "caste": "SC/ST",
			"gender": "Female", "disability_percentage": 40, "ratio_max": 1.5,
			"state": "Goa", "widow_required": 1, "flag": "0", "empty_allowed": []
		}},
		{"scheme_name": "Open", "criteria": {}}
	]`))
	require.NoError(t, err)

	encoded, err := json.Marshal(first)
	require.NoError(t, err)

	second, stats, err := Schemes(mustDecode(t, string(encoded)))
	require.NoError(t, err)
	assert.Zero(t, stats.DroppedCriteria)
	assert.Empty(t, cmp.Diff(first, second))
}

func TestYAMLAndJSONNormalizeIdentically(t *testing.T) {
	fromJSON, _, err := Schemes(mustDecode(t, `[{"scheme_name": "Scholarship", "criteria": {
		"age_max": 25, "category": ["SC", "ST"], "student_required": true, "income_limit": 250000.5}}]`))
	require.NoError(t, err)

	rawYAML, err := DecodeYAML([]byte(`
- scheme_name: Scholarship
  criteria:
    age_max: 25
    category: [SC, ST]
    student_required: true
    income_limit: 250000.5
`))
	require.NoError(t, err)
	fromYAML, _, err := Schemes(rawYAML)
	require.NoError(t, err)

	assert.Empty(t, cmp.Diff(fromJSON, fromYAML))
}

func TestKeys(t *testing.T) {
	schemes := []models.Scheme{
		{Name: "a", Criteria: models.Criteria{"age_min": models.Int(18), "gender_allowed": models.List("Female")}},
		{Name: "b", Criteria: models.Criteria{"age_min": models.Int(21), "bpl_required": models.Bool(true)}},
		{Name: "c"},
	}
	assert.Equal(t, []string{"age_min", "bpl_required", "gender_allowed"}, Keys(schemes))

	empty := Keys(nil)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestDecodeJSONRejectsTrailingData(t *testing.T) {
	_, err := DecodeJSON([]byte(`[] []`))
	require.Error(t, err)
}

func TestCriteria_SynonymCollisionsAreDeterministic(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want models.Value
	}{
		{"canonical spelling wins", `{"min_age": 18, "age_min": 21, "minimum_age": 30}`, models.Int(21)},
		{"first synonym in byte order wins", `{"minimum_age": 30, "min_age": 18}`, models.Int(18)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := mustDecode(t, `[{"scheme_name": "S", "criteria": `+tt.doc+`}]`)
			for range 200 {
				schemes, stats, err := Schemes(raw)
				require.NoError(t, err)
				got := schemes[0].Criteria["age_min"]
				require.True(t, got.Equal(tt.want), "got %s, want %s", got, tt.want)
				require.Equal(t, []string{"age_min"}, schemes[0].Criteria.Keys())
				require.Positive(t, stats.DroppedCriteria)
			}
		})
	}
}

func TestCriteria_NonFiniteBoundsAreDropped(t *testing.T) {
	raw, err := DecodeYAML([]byte(`
- scheme_name: Broken Bounds
  criteria:
    age_min: .nan
    income_max: .inf
    age_max: -.inf
    occupation_allowed: [farmer, .nan]
    land_max: 2
`))
	require.NoError(t, err)

	schemes, stats, err := Schemes(raw)
	require.NoError(t, err)
	require.Len(t, schemes, 1)
	assert.Equal(t, []string{"land_max", "occupation_allowed"}, schemes[0].Criteria.Keys())
	assert.True(t, schemes[0].Criteria["occupation_allowed"].Equal(models.List("farmer")))
	assert.Equal(t, 3, stats.DroppedCriteria)

	_, err = json.Marshal(schemes)
	assert.NoError(t, err)
}

func TestCriteria_HugeIntegersKeepTheirSign(t *testing.T) {
	fromJSON := criteriaOf(t, `{"income_max": 9223372036854775807, "land_max": "18446744073709551615"}`)
	rawYAML, err := DecodeYAML([]byte("- criteria:\n    income_max: 18446744073709551615\n"))
	require.NoError(t, err)
	schemes, _, err := Schemes(rawYAML)
	require.NoError(t, err)

	for name, v := range map[string]models.Value{
		"json int64 max":      fromJSON["income_max"],
		"numeric string":      fromJSON["land_max"],
		"yaml uint64 literal": schemes[0].Criteria["income_max"],
	} {
		n, ok := v.Number()
		require.True(t, ok, name)
		assert.Greater(t, n, 9e18, name)
	}
}
