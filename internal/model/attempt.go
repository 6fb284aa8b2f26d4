package model

// AttemptState is the explicit lifecycle of a test attempt.
// Transitions only move forward: IN_PROGRESS -> SUBMITTED -> GRADED.
type AttemptState string

const (
	AttemptInProgress AttemptState = "IN_PROGRESS"
	AttemptSubmitted  AttemptState = "SUBMITTED"
	AttemptGraded     AttemptState = "GRADED"
)

func (s AttemptState) Valid() bool {
	switch s {
	case AttemptInProgress, AttemptSubmitted, AttemptGraded:
		return true
	}
	return false
}

// Rank orders states along the lifecycle. Unknown states rank lowest.
func (s AttemptState) Rank() int {
	switch s {
	case AttemptInProgress:
		return 1
	case AttemptSubmitted:
		return 2
	case AttemptGraded:
		return 3
	}
	return 0
}

// AttemptFilter narrows the "my attempts" listing.
type AttemptFilter struct {
	TestID *uint
	State  AttemptState
}
