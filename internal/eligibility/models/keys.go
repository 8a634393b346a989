package models

import "strings"

// Suffix fixes the semantics of a canonical key.
type Suffix string

const (
	SuffixNone     Suffix = ""
	SuffixMin      Suffix = "_min"
	SuffixMax      Suffix = "_max"
	SuffixRequired Suffix = "_required"
	SuffixAllowed  Suffix = "_allowed"
)

// KeySuffix returns the semantic suffix of a canonical key.
func KeySuffix(key string) Suffix {
	for _, s := range []Suffix{SuffixMin, SuffixMax, SuffixRequired, SuffixAllowed} {
		if strings.HasSuffix(key, string(s)) && len(key) > len(s) {
			return s
		}
	}
	return SuffixNone
}

// companionFields maps the companion keys through which scheme data expresses
// basic profile fields to the profile field they constrain.
var companionFields = map[string]string{
	"gender_allowed":         FieldGender,
	"category_allowed":       FieldCategory,
	"residence_type_allowed": FieldResidenceType,
	"bpl_required":           FieldBPL,
	"disability_required":    FieldDisability,
}

// BaseField is the profile field a criterion key is matched against. Numeric
// bound suffixes are stripped; _required and _allowed keys are their own base
// field unless they are the companion key of a basic profile field.
func BaseField(key string) string {
	switch KeySuffix(key) {
	case SuffixMin, SuffixMax:
		return key[:len(key)-4]
	}
	if field, ok := companionFields[key]; ok {
		return field
	}
	return key
}
