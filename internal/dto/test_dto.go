package dto

import "time"

// QuestionResponseDTO is a question as shown to a student; answer keys are never included.
type QuestionResponseDTO struct {
	ID          uint     `json:"id"`
	Prompt      string   `json:"prompt"`
	Type        string   `json:"type"`
	OrderInTest int      `json:"order"`
	Options     []string `json:"options,omitempty"`
	Marks       float64  `json:"marks"`
}

// TestResponseDTO is a full test definition for a student about to start an attempt.
type TestResponseDTO struct {
	ID                uint                  `json:"id"`
	Title             string                `json:"title"`
	Description       string                `json:"description,omitempty"`
	TotalMarks        int                   `json:"total_marks"`
	PassingPercentage string                `json:"passing_percentage"`
	MaxAttempts       int                   `json:"max_attempts,omitempty"`
	Questions         []QuestionResponseDTO `json:"questions,omitempty"`
}

// AnswerResultDTO is one answer of a graded attempt.
type AnswerResultDTO struct {
	QuestionID    uint     `json:"question_id"`
	Answer        string   `json:"answer"`
	IsCorrect     *bool    `json:"is_correct"`
	MarksObtained *float64 `json:"marks_obtained"`
	MaxMarks      float64  `json:"max_marks"`
	Feedback      string   `json:"feedback,omitempty"`
}

// TestAttemptResultDTO is the results view of one attempt. Until the attempt is
// graded only its status and submission time are filled; score fields stay null.
type TestAttemptResultDTO struct {
	ID          uint              `json:"id"`
	TestID      uint              `json:"test_id"`
	StudentID   uint              `json:"student_id"`
	Status      string            `json:"status"`
	Badge       string            `json:"badge"`
	SubmittedAt *time.Time        `json:"submitted_at"`
	Score       *float64          `json:"score"`
	TotalMarks  *int              `json:"total_marks"`
	Percentage  *string           `json:"percentage"`
	IsPassed    *bool             `json:"is_passed"`
	GradedBy    *uint             `json:"graded_by,omitempty"`
	GradedAt    *time.Time        `json:"graded_at,omitempty"`
	Answers     []AnswerResultDTO `json:"answers,omitempty"`
}

// TestAttemptSummaryDTO is a row in an attempt listing.
type TestAttemptSummaryDTO struct {
	ID          uint       `json:"id"`
	TestID      uint       `json:"test_id"`
	StudentID   uint       `json:"student_id"`
	Status      string     `json:"status"`
	Badge       string     `json:"badge"`
	SubmittedAt *time.Time `json:"submitted_at"`
	Percentage  *string    `json:"percentage"`
}
