package dto

// TestResultsSummaryDTO aggregates every attempt of one test for the grader dashboard.
type TestResultsSummaryDTO struct {
	TestID            uint    `json:"test_id"`
	TestTitle         string  `json:"test_title"`
	PassingPercentage string  `json:"passing_percentage"`
	Attempts          int     `json:"attempts"`
	InProgress        int     `json:"in_progress"`
	PendingGrading    int     `json:"pending_grading"`
	Graded            int     `json:"graded"`
	Passed            int     `json:"passed"`
	Failed            int     `json:"failed"`
	AveragePercentage *string `json:"average_percentage"`
	PassRate          *string `json:"pass_rate"`
}
