package charapi

// Evaluation is the per-payee result returned by the evaluation service.
// AlignmentScore is nullable: a nil pointer means the service could not
// align the organization against the configured preferences.
type Evaluation struct {
	PayeeID          string
	OrganizationName string
	AlignmentScore   *int // 0-100 when present
	Outstanding      int
	Acceptable       int
	Unacceptable     int
	Grade            string
	Summary          string
}

// TotalMetrics is the number of metrics the service classified.
func (e *Evaluation) TotalMetrics() int {
	return e.Outstanding + e.Acceptable + e.Unacceptable
}

// ForConsideration reports whether the evaluation clears both thresholds:
// alignment score at least minAlignment and at least minAcceptablePct
// percent of metrics rated acceptable or better. Nil evaluations, absent
// alignment scores and zero-metric evaluations never qualify. Exclusion of
// already-recurring payees is the caller's concern.
func ForConsideration(e *Evaluation, minAlignment, minAcceptablePct int) bool {
	if e == nil || e.AlignmentScore == nil {
		return false
	}
	if *e.AlignmentScore < minAlignment {
		return false
	}
	total := e.TotalMetrics()
	if total == 0 {
		return false
	}
	acceptableOrBetter := e.Outstanding + e.Acceptable
	return acceptableOrBetter*100 >= minAcceptablePct*total
}

// gradeThresholds maps total scores to letter grades.
var gradeThresholds = []struct {
	min   int
	grade string
}{
	{90, "A"},
	{75, "B"},
	{60, "C"},
	{45, "D"},
}

func assignGrade(score int) string {
	for _, t := range gradeThresholds {
		if score >= t.min {
			return t.grade
		}
	}
	return "F"
}
