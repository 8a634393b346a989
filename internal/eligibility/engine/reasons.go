package engine

import (
	"fmt"
	"strings"

	"eligo/internal/eligibility/models"
	pstrings "eligo/pkg/platform/strings"
)

var prettyNames = map[string]string{
	models.FieldAge:                  "Age",
	models.FieldIncome:               "Annual income",
	models.FieldBPL:                  "BPL status",
	models.FieldCategory:             "Category",
	models.FieldGender:               "Gender",
	models.FieldResidenceType:        "Residence type",
	models.FieldDisability:           "Disability",
	models.FieldDisabilityPercentage: "Disability percentage",
}

// PrettyField returns the display name for a base field.
func PrettyField(field string) string {
	if name, ok := prettyNames[field]; ok {
		return name
	}
	return pstrings.SnakeToTitle(field)
}

func compareReason(field, op string, required models.Value, actual any) string {
	return fmt.Sprintf("%s must be %s %s (you entered %s).", PrettyField(field), op, required, displayValue(actual))
}

func allowedReason(field string, allowed []string, actual any) string {
	return fmt.Sprintf("%s must be one of [%s] (you entered %s).", PrettyField(field), strings.Join(allowed, ", "), displayValue(actual))
}

func requiredReason(field string, required, actual bool) string {
	return fmt.Sprintf("%s must be %s (you entered %s).", PrettyField(field), models.YesNo(required), models.YesNo(actual))
}

func invalidReason(field string, actual any) string {
	return fmt.Sprintf("%s has an invalid value (you entered %s).", PrettyField(field), displayValue(actual))
}
