package dto

// StartAttemptDTO starts a new attempt. The attempt-count limit is enforced by the backend.
type StartAttemptDTO struct {
	StudentID uint `json:"student_id" binding:"required"` // Temporary, until identity comes from the session
}

// AnswerSubmitDTO is one answer inside a submission.
type AnswerSubmitDTO struct {
	QuestionID uint   `json:"question_id" binding:"required"`
	Answer     string `json:"answer"`
}

// TestAttemptSubmitDTO submits the final answer set of an attempt.
type TestAttemptSubmitDTO struct {
	Answers []AnswerSubmitDTO `json:"answers" binding:"required,min=1,dive"`
}

// AnswerMarkDTO is a grader's verdict for one answer. is_correct is mandatory for short answers.
type AnswerMarkDTO struct {
	QuestionID    uint     `json:"question_id" binding:"required"`
	MarksObtained *float64 `json:"marks_obtained" binding:"required"`
	IsCorrect     *bool    `json:"is_correct"`
	Feedback      string   `json:"feedback" binding:"max=2000"`
}

// GradeAttemptDTO finalizes the marks of a submitted attempt.
type GradeAttemptDTO struct {
	GraderID uint            `json:"grader_id" binding:"required"` // Temporary, until identity comes from the session
	Answers  []AnswerMarkDTO `json:"answers" binding:"required,min=1,dive"`
}
