package model

type Answer struct {
	ID            uint     `json:"id,omitempty"`
	AttemptID     uint     `json:"attempt_id,omitempty"`
	QuestionID    uint     `json:"question_id"`
	Content       string   `json:"answer"`
	IsCorrect     *bool    `json:"is_correct,omitempty"`
	MarksObtained *float64 `json:"marks_obtained,omitempty"`
	Feedback      string   `json:"feedback,omitempty"`
}

// AnswerMark is a grader's verdict for the answer to one question.
type AnswerMark struct {
	QuestionID    uint    `json:"question_id"`
	MarksObtained float64 `json:"marks_obtained"`
	IsCorrect     *bool   `json:"is_correct,omitempty"`
	Feedback      string  `json:"feedback,omitempty"`
}
