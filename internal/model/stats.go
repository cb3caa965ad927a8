package model

// FormStats aggregates visits and submissions across every form a user
// owns.
//
// SubmissionRate and BounceRate are percentages and are not clamped: when
// submissions exceed visits the submission rate goes above 100 and the
// bounce rate goes negative. They always sum to 100.
type FormStats struct {
	Visits         int64   `json:"visits"`
	Submissions    int64   `json:"submissions"`
	SubmissionRate float64 `json:"submissionRate"`
	BounceRate     float64 `json:"bounceRate"`
}

// NewFormStats derives the rates from raw totals.
func NewFormStats(visits, submissions int64) FormStats {
	var submissionRate float64
	if visits > 0 {
		submissionRate = float64(submissions) / float64(visits) * 100
	}

	return FormStats{
		Visits:         visits,
		Submissions:    submissions,
		SubmissionRate: submissionRate,
		BounceRate:     100 - submissionRate,
	}
}
