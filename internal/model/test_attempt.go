package model

import (
	"errors"
	"fmt"
	"time"

	"github.com/lshigami/Gradebook/internal/apperr"
)

type TestAttempt struct {
	ID          uint       `json:"id"`
	TestID      uint       `json:"test_id"`
	StudentID   uint       `json:"student_id"`
	Answers     []Answer   `json:"answers,omitempty"`
	StartedAt   time.Time  `json:"started_at"`
	SubmittedAt *time.Time `json:"submitted_at,omitempty"`
	IsGraded    bool       `json:"is_graded"`
	Score       *float64   `json:"score"`
	TotalMarks  int        `json:"total_marks"`
	IsPassed    *bool      `json:"is_passed"`
	GradedBy    *uint      `json:"graded_by,omitempty"`
	GradedAt    *time.Time `json:"graded_at,omitempty"`

	// State is derived once from the wire fields by Normalize and from then on
	// only changes through Submit and MarkGraded.
	State AttemptState `json:"-"`
}

var errInconsistentAttempt = errors.New("inconsistent attempt payload")

// Normalize derives State from the backend's submitted_at/is_graded fields and
// checks the grading invariants. Score fields of an ungraded attempt are cleared
// so a default zero is never mistaken for a real score.
func (a *TestAttempt) Normalize() error {
	switch {
	case a.IsGraded:
		if a.SubmittedAt == nil {
			return fmt.Errorf("%w: attempt %d graded without submitted_at", errInconsistentAttempt, a.ID)
		}
		if a.Score == nil || a.IsPassed == nil {
			return fmt.Errorf("%w: attempt %d graded without score or is_passed", errInconsistentAttempt, a.ID)
		}
		a.State = AttemptGraded
	case a.SubmittedAt != nil:
		a.State = AttemptSubmitted
	default:
		a.State = AttemptInProgress
	}

	if a.State != AttemptGraded {
		a.Score = nil
		a.IsPassed = nil
		a.GradedBy = nil
		a.GradedAt = nil
		for i := range a.Answers {
			a.Answers[i].MarksObtained = nil
			a.Answers[i].IsCorrect = nil
		}
	}
	return nil
}

// Require fails with an InvalidStateError unless the attempt is in want.
func (a *TestAttempt) Require(op string, want AttemptState) error {
	if a.State != want {
		return apperr.InvalidState(op, string(a.State))
	}
	return nil
}

// Submit freezes the answers. Only an in-progress attempt can be submitted.
func (a *TestAttempt) Submit(answers []Answer, at time.Time) error {
	if err := a.Require("submit", AttemptInProgress); err != nil {
		return err
	}
	a.Answers = append([]Answer(nil), answers...)
	for i := range a.Answers {
		a.Answers[i].AttemptID = a.ID
		a.Answers[i].MarksObtained = nil
		a.Answers[i].IsCorrect = nil
	}
	submitted := at
	a.SubmittedAt = &submitted
	a.State = AttemptSubmitted
	return nil
}

// MarkGraded records the outcome of grading. Only a submitted, ungraded attempt
// can be graded; there is no re-grading through this path.
func (a *TestAttempt) MarkGraded(answers []Answer, score float64, passed bool, graderID uint, at time.Time) error {
	if err := a.Require("grade", AttemptSubmitted); err != nil {
		return err
	}
	a.Answers = append([]Answer(nil), answers...)
	a.Score = &score
	a.IsPassed = &passed
	grader := graderID
	a.GradedBy = &grader
	graded := at
	a.GradedAt = &graded
	a.IsGraded = true
	a.State = AttemptGraded
	return nil
}

// Clone returns a deep copy so cached attempts cannot be mutated by callers.
func (a *TestAttempt) Clone() *TestAttempt {
	if a == nil {
		return nil
	}
	c := *a
	c.Answers = make([]Answer, len(a.Answers))
	for i, ans := range a.Answers {
		c.Answers[i] = ans
		c.Answers[i].IsCorrect = cloneBool(ans.IsCorrect)
		c.Answers[i].MarksObtained = cloneFloat(ans.MarksObtained)
	}
	c.SubmittedAt = cloneTime(a.SubmittedAt)
	c.GradedAt = cloneTime(a.GradedAt)
	c.Score = cloneFloat(a.Score)
	c.IsPassed = cloneBool(a.IsPassed)
	if a.GradedBy != nil {
		g := *a.GradedBy
		c.GradedBy = &g
	}
	return &c
}

func cloneBool(v *bool) *bool {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

func cloneFloat(v *float64) *float64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

func cloneTime(v *time.Time) *time.Time {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
