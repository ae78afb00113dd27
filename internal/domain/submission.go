package domain

type SubmissionStatus string

const (
	SubmissionIdle       SubmissionStatus = "IDLE"
	SubmissionSubmitting SubmissionStatus = "SUBMITTING"
	SubmissionSuccess    SubmissionStatus = "SUCCESS"
	SubmissionFailed     SubmissionStatus = "FAILED"
)

func (s SubmissionStatus) IsTerminal() bool {
	return s == SubmissionSuccess || s == SubmissionFailed
}

// CanTransitionTo enforces the submission lifecycle: a fresh attempt may
// start from idle or from either terminal state, and an in-flight attempt
// only resolves to success or failure.
func (s SubmissionStatus) CanTransitionTo(next SubmissionStatus) bool {
	switch next {
	case SubmissionSubmitting:
		return s != SubmissionSubmitting
	case SubmissionSuccess, SubmissionFailed:
		return s == SubmissionSubmitting
	}
	return false
}

// String representation (for logging)
func (s SubmissionStatus) String() string {
	return string(s)
}
