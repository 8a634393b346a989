package models

// SchemeSummary identifies a scheme in check results.
type SchemeSummary struct {
	Name     string `json:"scheme_name"`
	Benefits string `json:"benefits"`
}

// IneligibleScheme is a scheme the profile fails, with every failed rule.
type IneligibleScheme struct {
	SchemeSummary
	Reasons []string `json:"reasons"`
}

// CheckResult is the outcome of checking one profile against the loaded set.
// MissingFields is ranked by how many pending schemes need each field.
type CheckResult struct {
	Eligible         []SchemeSummary    `json:"eligible_schemes"`
	NotEligible      []IneligibleScheme `json:"not_eligible_schemes"`
	MissingFields    []string           `json:"missing_fields"`
	MissingQuestions []MissingQuestion  `json:"missing_questions"`
}

// NewCheckResult returns a result with empty, non-nil lists.
func NewCheckResult() *CheckResult {
	return &CheckResult{
		Eligible:         []SchemeSummary{},
		NotEligible:      []IneligibleScheme{},
		MissingFields:    []string{},
		MissingQuestions: []MissingQuestion{},
	}
}
