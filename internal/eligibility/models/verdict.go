package models

// Verdict is the outcome of evaluating one profile against one scheme.
type Verdict string

const (
	VerdictEligible    Verdict = "eligible"
	VerdictNeedsInfo   Verdict = "needs_info"
	VerdictNotEligible Verdict = "not_eligible"
)

// Evaluation is the evaluator's output for a (profile, scheme) pair.
type Evaluation struct {
	Verdict Verdict
	Missing []string
	Reasons []string
}
