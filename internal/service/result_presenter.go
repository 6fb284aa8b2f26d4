package service

import (
	"github.com/jinzhu/copier"
	"github.com/lshigami/Gradebook/internal/dto"
	"github.com/lshigami/Gradebook/internal/model"
	"github.com/rs/zerolog/log"
)

type Badge string

const (
	BadgePassed  Badge = "PASSED"
	BadgeFailed  Badge = "FAILED"
	BadgePending Badge = "PENDING"
)

// ResultPresenter is a read-only projection of attempts into result views.
// Score fields are only ever read from graded attempts.
type ResultPresenter struct {
	converter ScoreConverterService
}

func NewResultPresenter(converter ScoreConverterService) *ResultPresenter {
	return &ResultPresenter{converter: converter}
}

func (p *ResultPresenter) Badge(a *model.TestAttempt) Badge {
	if a.State != model.AttemptGraded || a.IsPassed == nil {
		return BadgePending
	}
	if *a.IsPassed {
		return BadgePassed
	}
	return BadgeFailed
}

// Percentage returns the display percentage of a graded attempt, nil otherwise.
func (p *ResultPresenter) Percentage(a *model.TestAttempt) *string {
	if a.State != model.AttemptGraded || a.Score == nil {
		return nil
	}
	pct, err := p.converter.ConvertToPercentage(*a.Score, a.TotalMarks)
	if err != nil {
		log.Warn().Err(err).Uint("attemptID", a.ID).Msg("ResultPresenter: Cannot compute percentage")
		return nil
	}
	s := p.converter.FormatPercentage(pct)
	return &s
}

// PresentAttempt builds the results view. test may be nil, in which case the
// per-question max marks are left at zero.
func (p *ResultPresenter) PresentAttempt(a *model.TestAttempt, test *model.Test) *dto.TestAttemptResultDTO {
	resp := &dto.TestAttemptResultDTO{
		ID:          a.ID,
		TestID:      a.TestID,
		StudentID:   a.StudentID,
		Status:      string(a.State),
		Badge:       string(p.Badge(a)),
		SubmittedAt: a.SubmittedAt,
	}
	if a.State != model.AttemptGraded {
		return resp
	}

	if test != nil {
		p.checkPassFlag(a, test)
	}

	total := a.TotalMarks
	resp.Score = a.Score
	resp.TotalMarks = &total
	resp.IsPassed = a.IsPassed
	resp.GradedBy = a.GradedBy
	resp.GradedAt = a.GradedAt
	resp.Percentage = p.Percentage(a)

	resp.Answers = make([]dto.AnswerResultDTO, len(a.Answers))
	for i, ans := range a.Answers {
		var ansDTO dto.AnswerResultDTO
		if err := copier.Copy(&ansDTO, &ans); err != nil {
			log.Error().Err(err).Uint("attemptID", a.ID).Msg("ResultPresenter: Error copying answer to DTO")
		}
		ansDTO.Answer = ans.Content
		if test != nil {
			if q, ok := test.QuestionByID(ans.QuestionID); ok {
				ansDTO.MaxMarks = q.Marks
			}
		}
		resp.Answers[i] = ansDTO
	}
	return resp
}

func (p *ResultPresenter) PresentSummary(a *model.TestAttempt) dto.TestAttemptSummaryDTO {
	return dto.TestAttemptSummaryDTO{
		ID:          a.ID,
		TestID:      a.TestID,
		StudentID:   a.StudentID,
		Status:      string(a.State),
		Badge:       string(p.Badge(a)),
		SubmittedAt: a.SubmittedAt,
		Percentage:  p.Percentage(a),
	}
}

func (p *ResultPresenter) PresentSummaries(attempts []model.TestAttempt) []dto.TestAttemptSummaryDTO {
	out := make([]dto.TestAttemptSummaryDTO, 0, len(attempts))
	for i := range attempts {
		out = append(out, p.PresentSummary(&attempts[i]))
	}
	return out
}

// Summarize aggregates a test's attempts. Averages only consider graded attempts.
func (p *ResultPresenter) Summarize(test *model.Test, attempts []model.TestAttempt) *dto.TestResultsSummaryDTO {
	summary := &dto.TestResultsSummaryDTO{
		TestID:            test.ID,
		TestTitle:         test.Title,
		PassingPercentage: p.converter.FormatPercentage(test.Ratio() * 100),
		Attempts:          len(attempts),
	}

	var pctSum float64
	var pctCount int
	for i := range attempts {
		a := &attempts[i]
		switch a.State {
		case model.AttemptInProgress:
			summary.InProgress++
		case model.AttemptSubmitted:
			summary.PendingGrading++
		case model.AttemptGraded:
			summary.Graded++
			p.checkPassFlag(a, test)
			if p.Badge(a) == BadgePassed {
				summary.Passed++
			} else {
				summary.Failed++
			}
			if pct, err := p.converter.ConvertToPercentage(*a.Score, a.TotalMarks); err == nil {
				pctSum += pct
				pctCount++
			}
		}
	}

	if pctCount > 0 {
		avg := p.converter.FormatPercentage(pctSum / float64(pctCount))
		summary.AveragePercentage = &avg
	}
	if summary.Graded > 0 {
		rate := p.converter.FormatPercentage(float64(summary.Passed) / float64(summary.Graded) * 100)
		summary.PassRate = &rate
	}
	return summary
}

// checkPassFlag logs a graded attempt whose recorded pass flag does not match its
// score against the test's current passing ratio. The recorded flag is still shown,
// since the ratio may have changed after grading.
func (p *ResultPresenter) checkPassFlag(a *model.TestAttempt, test *model.Test) bool {
	if a.Score == nil || a.IsPassed == nil {
		return true
	}
	pct, err := p.converter.ConvertToPercentage(*a.Score, a.TotalMarks)
	if err != nil {
		return true
	}
	want := p.converter.MeetsPassingRatio(pct, test.Ratio())
	if want == *a.IsPassed {
		return true
	}
	log.Warn().
		Uint("attemptID", a.ID).
		Uint("testID", test.ID).
		Float64("percentage", pct).
		Bool("isPassed", *a.IsPassed).
		Msg("ResultPresenter: Recorded pass flag disagrees with score and passing ratio")
	return false
}

// PresentTest maps a test definition for students. Answer keys are dropped.
func (p *ResultPresenter) PresentTest(test *model.Test) (*dto.TestResponseDTO, error) {
	var resp dto.TestResponseDTO
	if err := copier.Copy(&resp, test); err != nil {
		return nil, err
	}
	resp.PassingPercentage = p.converter.FormatPercentage(test.Ratio() * 100)
	resp.Questions = make([]dto.QuestionResponseDTO, len(test.Questions))
	for i, q := range test.Questions {
		var qDTO dto.QuestionResponseDTO
		if err := copier.Copy(&qDTO, &q); err != nil {
			return nil, err
		}
		qDTO.Type = string(q.Type)
		resp.Questions[i] = qDTO
	}
	return &resp, nil
}
