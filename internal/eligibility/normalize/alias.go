package normalize

// aliases maps known synonym spellings (lower-cased) to canonical keys. Keys
// not listed pass through unchanged, so new criteria need no code change and a
// new synonym is one line here.
var aliases = map[string]string{
	// Age
	"min_age":     "age_min",
	"minimum_age": "age_min",
	"max_age":     "age_max",
	"maximum_age": "age_max",

	// Income
	"annual_income_max":   "income_max",
	"income_limit":        "income_max",
	"annual_income_limit": "income_max",
	"income_ceiling":      "income_max",
	"annual_income_min":   "income_min",

	// Category
	"category":       "category_allowed",
	"caste":          "category_allowed",
	"caste_category": "category_allowed",

	// BPL
	"bpl":        "bpl_required",
	"bpl_only":   "bpl_required",
	"bpl_status": "bpl_required",

	// Gender
	"gender": "gender_allowed",

	// Residence
	"residence":   "residence_type_allowed",
	"rural_urban": "residence_type_allowed",

	// Disability
	"disabled":               "disability_required",
	"disability":             "disability_required",
	"disability_percent_min": "disability_percentage_min",
	"disability_percentage":  "disability_percentage_min",
}

// CanonicalKey lower-cases and trims key and resolves it through the alias table.
func CanonicalKey(key string) string {
	k := lowerTrim(key)
	if canon, ok := aliases[k]; ok {
		return canon
	}
	return k
}
