package service

import (
	"fmt"
	"math"
	"strings"

	"github.com/lshigami/Gradebook/internal/apperr"
	"github.com/lshigami/Gradebook/internal/model"
)

// GradeResult is the outcome of aggregating per-answer marks. Nothing is persisted here.
type GradeResult struct {
	Score         float64
	Percentage    float64
	IsPassed      bool
	GradedAnswers []model.Answer
}

type GradingAggregator struct {
	converter ScoreConverterService
}

func NewGradingAggregator(converter ScoreConverterService) *GradingAggregator {
	return &GradingAggregator{converter: converter}
}

// Grade validates every mark first and only then sums them. A single bad entry
// rejects the whole input.
func (g *GradingAggregator) Grade(attempt *model.TestAttempt, test *model.Test, marks []model.AnswerMark) (*GradeResult, error) {
	if attempt.TotalMarks <= 0 {
		return nil, apperr.Validation("attempt has no total marks", fmt.Sprintf("attempt %d: total_marks=%d", attempt.ID, attempt.TotalMarks))
	}

	answered := make(map[uint]bool, len(attempt.Answers))
	for _, ans := range attempt.Answers {
		answered[ans.QuestionID] = true
	}

	var details []string
	markByQuestion := make(map[uint]model.AnswerMark, len(marks))
	for _, m := range marks {
		if _, dup := markByQuestion[m.QuestionID]; dup {
			details = append(details, fmt.Sprintf("question %d: marked more than once", m.QuestionID))
			continue
		}
		if !answered[m.QuestionID] {
			details = append(details, fmt.Sprintf("question %d: no answer in this attempt", m.QuestionID))
			continue
		}
		markByQuestion[m.QuestionID] = m
	}

	graded := make([]model.Answer, len(attempt.Answers))
	for i, ans := range attempt.Answers {
		graded[i] = ans

		question, ok := test.QuestionByID(ans.QuestionID)
		if !ok {
			details = append(details, fmt.Sprintf("question %d: not part of test %d", ans.QuestionID, test.ID))
			continue
		}
		mark, ok := markByQuestion[ans.QuestionID]
		if !ok {
			details = append(details, fmt.Sprintf("question %d: missing marks", ans.QuestionID))
			continue
		}
		if math.IsNaN(mark.MarksObtained) || math.IsInf(mark.MarksObtained, 0) {
			details = append(details, fmt.Sprintf("question %d: marks must be a finite number", ans.QuestionID))
			continue
		}
		if mark.MarksObtained < 0 || mark.MarksObtained > question.Marks {
			details = append(details, fmt.Sprintf("question %d: marks %.2f outside [0, %.2f]", ans.QuestionID, mark.MarksObtained, question.Marks))
			continue
		}

		correct := mark.IsCorrect
		if correct == nil {
			if question.RequiresHumanJudgement() {
				details = append(details, fmt.Sprintf("question %d: %s answers need an explicit is_correct", ans.QuestionID, question.Type))
				continue
			}
			derived := objectiveCorrectness(question, ans, mark)
			correct = &derived
		} else {
			c := *correct
			correct = &c
		}

		obtained := mark.MarksObtained
		graded[i].MarksObtained = &obtained
		graded[i].IsCorrect = correct
		if mark.Feedback != "" {
			graded[i].Feedback = mark.Feedback
		}
	}

	if len(details) > 0 {
		return nil, apperr.Validation("invalid grading input", details...)
	}

	var score float64
	for _, ans := range graded {
		score += *ans.MarksObtained
	}
	score = math.Round(score*100) / 100
	if score > float64(attempt.TotalMarks) {
		return nil, apperr.Validation("score exceeds total marks", fmt.Sprintf("score %.2f > total_marks %d", score, attempt.TotalMarks))
	}

	percentage, err := g.converter.ConvertToPercentage(score, attempt.TotalMarks)
	if err != nil {
		return nil, apperr.Validation("cannot compute percentage", err.Error())
	}

	return &GradeResult{
		Score:         score,
		Percentage:    percentage,
		IsPassed:      g.converter.MeetsPassingRatio(percentage, test.Ratio()),
		GradedAnswers: graded,
	}, nil
}

// objectiveCorrectness compares a selected option against the answer key, falling
// back to "full marks means correct" when the test carries no key.
func objectiveCorrectness(q model.Question, ans model.Answer, mark model.AnswerMark) bool {
	if q.CorrectAnswer != nil {
		return strings.EqualFold(strings.TrimSpace(ans.Content), strings.TrimSpace(*q.CorrectAnswer))
	}
	return q.Marks > 0 && mark.MarksObtained == q.Marks
}
