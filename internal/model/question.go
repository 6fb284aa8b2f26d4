package model

type QuestionType string

const (
	QuestionMultipleChoice QuestionType = "multiple_choice"
	QuestionTrueFalse      QuestionType = "true_false"
	QuestionShortAnswer    QuestionType = "short_answer"
)

type Question struct {
	ID            uint         `json:"id"`
	TestID        uint         `json:"test_id"`
	Prompt        string       `json:"prompt"`
	Type          QuestionType `json:"type"`
	OrderInTest   int          `json:"order"`
	Options       []string     `json:"options,omitempty"`
	CorrectAnswer *string      `json:"correct_answer,omitempty"`
	Marks         float64      `json:"marks"`
}

// RequiresHumanJudgement reports whether correctness must be supplied by a grader.
// Free-text answers are never matched automatically.
func (q Question) RequiresHumanJudgement() bool {
	switch q.Type {
	case QuestionMultipleChoice, QuestionTrueFalse:
		return false
	default:
		return true
	}
}
