package engine

import (
	"math"
	"sort"

	"eligo/internal/eligibility/models"
	pstrings "eligo/pkg/platform/strings"
)

var questionLabels = map[string]string{
	models.FieldBPL:                  "Are you BPL?",
	models.FieldDisability:           "Do you have a disability?",
	models.FieldDisabilityPercentage: "Disability percentage",
	models.FieldGender:               "Gender",
	models.FieldCategory:             "Category",
	models.FieldResidenceType:        "Residence type",
	"widow_required":                 "Are you a widow?",
	"student_required":               "Are you a student?",
	"farmer_required":                "Are you a farmer?",
	"minority_required":              "Do you belong to a minority community?",
	"bank_account_required":          "Do you have a bank account?",
	"aadhaar_required":               "Do you have Aadhaar?",
	"occupation_allowed":             "Occupation",
	"state_allowed":                  "State",
	"district_allowed":               "District",
}

// QuestionLabel returns the prompt shown for a missing field.
func QuestionLabel(field string) string {
	if label, ok := questionLabels[field]; ok {
		return label
	}
	return PrettyField(field)
}

type questionDraft struct {
	q       models.MissingQuestion
	options []string
	min     float64
	max     float64
}

// Questions builds one follow-up question per missing field, in the given
// order, merging the constraints of every pending scheme that references the
// field. Numeric limits tighten across schemes so an answer inside them
// satisfies all of them at once.
func Questions(possible []models.Scheme, missing []string) []models.MissingQuestion {
	out := make([]models.MissingQuestion, 0, len(missing))
	for _, field := range missing {
		d := &questionDraft{
			q: models.MissingQuestion{
				Key:       field,
				Label:     QuestionLabel(field),
				InputType: models.InputText,
				DataType:  models.DataText,
			},
			min: math.Inf(-1),
			max: math.Inf(1),
		}
		for _, scheme := range possible {
			for _, key := range scheme.Criteria.Keys() {
				if models.BaseField(key) == field {
					d.merge(key, scheme.Criteria[key])
				}
			}
		}
		out = append(out, d.finalize())
	}
	return out
}

func (d *questionDraft) merge(key string, v models.Value) {
	switch v.Kind() {
	case models.KindList:
		items, _ := v.Items()
		d.q.InputType = models.InputSelect
		d.options = append(d.options, items...)
	case models.KindString:
		s, _ := v.Str()
		d.q.InputType = models.InputSelect
		d.options = append(d.options, s)
	case models.KindBool:
		if models.KeySuffix(key) != models.SuffixRequired {
			return
		}
		d.q.InputType = models.InputSelect
		d.q.DataType = models.DataBool
		d.options = []string{"Yes", "No"}
	case models.KindNumber:
		n, _ := v.Number()
		d.q.InputType = models.InputNumber
		d.q.DataType = models.DataNumber
		switch models.KeySuffix(key) {
		case models.SuffixMin:
			d.min = math.Max(d.min, n)
		case models.SuffixMax:
			d.max = math.Min(d.max, n)
		}
	}
}

func (d *questionDraft) finalize() models.MissingQuestion {
	q := d.q
	if q.InputType == models.InputSelect {
		opts := pstrings.DedupeAndTrim(d.options)
		sort.Strings(opts)
		if len(opts) == 0 {
			q.InputType = models.InputText
			q.DataType = models.DataText
		} else {
			q.Options = opts
		}
	}
	if !math.IsInf(d.min, 0) {
		lo := d.min
		q.Min = &lo
	}
	if !math.IsInf(d.max, 0) {
		hi := d.max
		q.Max = &hi
	}
	return q
}
