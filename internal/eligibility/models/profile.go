package models

// Basic profile fields collected by the fixed part of the form.
const (
	FieldAge                  = "age"
	FieldIncome               = "income"
	FieldBPL                  = "bpl"
	FieldCategory             = "category"
	FieldGender               = "gender"
	FieldResidenceType        = "residence_type"
	FieldDisability           = "disability"
	FieldDisabilityPercentage = "disability_percentage"
)

// BasicFields lists the basic profile fields in form order.
var BasicFields = []string{
	FieldAge,
	FieldIncome,
	FieldBPL,
	FieldCategory,
	FieldGender,
	FieldResidenceType,
	FieldDisability,
	FieldDisabilityPercentage,
}

// Submission is the raw check payload: basic fields as they arrived from the
// transport (string, number, bool or null) plus open-ended extra answers.
type Submission struct {
	Basic map[string]any
	Extra map[string]any
}

// SubmissionFromMap splits a flat check payload into basic fields and the
// "extra" object. A non-object extra is ignored.
func SubmissionFromMap(m map[string]any) Submission {
	sub := Submission{Basic: make(map[string]any, len(BasicFields))}
	for _, field := range BasicFields {
		if v, ok := m[field]; ok {
			sub.Basic[field] = v
		}
	}
	if extra, ok := m["extra"].(map[string]any); ok {
		sub.Extra = extra
	}
	return sub
}

// Profile is a request-scoped view of what the user has told us.
type Profile struct {
	fields map[string]any
}

// NewProfile wraps fields. The map is owned by the profile afterwards.
func NewProfile(fields map[string]any) Profile {
	if fields == nil {
		fields = map[string]any{}
	}
	return Profile{fields: fields}
}

// Lookup returns the value for field when it is present: neither absent, nil,
// nor the empty string.
func (p Profile) Lookup(field string) (any, bool) {
	v, ok := p.fields[field]
	if !ok || v == nil {
		return nil, false
	}
	if s, isStr := v.(string); isStr && s == "" {
		return nil, false
	}
	return v, true
}

// Len returns the number of stored fields, present or not.
func (p Profile) Len() int {
	return len(p.fields)
}
