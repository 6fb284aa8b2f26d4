package model

import "time"

// DefaultPassingRatio applies when the backend defines neither a ratio nor passing marks.
const DefaultPassingRatio = 0.4

type Test struct {
	ID           uint       `json:"id"`
	Title        string     `json:"title"`
	Description  string     `json:"description,omitempty"`
	SubjectID    *uint      `json:"subject_id,omitempty"`
	ClassID      *uint      `json:"class_id,omitempty"`
	TotalMarks   int        `json:"total_marks"`
	PassingRatio float64    `json:"passing_ratio,omitempty"`
	PassingMarks *int       `json:"passing_marks,omitempty"`
	MaxAttempts  int        `json:"max_attempts,omitempty"`
	Questions    []Question `json:"questions,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// Ratio is the minimum score/total_marks fraction needed to pass.
func (t *Test) Ratio() float64 {
	if t.PassingRatio > 0 {
		return t.PassingRatio
	}
	if t.PassingMarks != nil && t.TotalMarks > 0 {
		return float64(*t.PassingMarks) / float64(t.TotalMarks)
	}
	return DefaultPassingRatio
}

func (t *Test) QuestionByID(id uint) (Question, bool) {
	for _, q := range t.Questions {
		if q.ID == id {
			return q, true
		}
	}
	return Question{}, false
}

// Clone returns a deep copy, including each question's options and answer key.
func (t *Test) Clone() *Test {
	c := *t
	if t.SubjectID != nil {
		v := *t.SubjectID
		c.SubjectID = &v
	}
	if t.ClassID != nil {
		v := *t.ClassID
		c.ClassID = &v
	}
	if t.PassingMarks != nil {
		v := *t.PassingMarks
		c.PassingMarks = &v
	}
	if t.Questions != nil {
		c.Questions = make([]Question, len(t.Questions))
		for i, q := range t.Questions {
			if q.Options != nil {
				q.Options = append([]string(nil), q.Options...)
			}
			if q.CorrectAnswer != nil {
				v := *q.CorrectAnswer
				q.CorrectAnswer = &v
			}
			c.Questions[i] = q
		}
	}
	return &c
}
