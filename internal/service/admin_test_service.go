package service

import (
	"context"
	"fmt"
	"sort"

	"github.com/lshigami/Gradebook/internal/dto"
	"github.com/lshigami/Gradebook/internal/model"
	"github.com/lshigami/Gradebook/internal/repository"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

type AdminTestService interface {
	GetTestAttempts(ctx context.Context, testID uint) ([]dto.TestAttemptSummaryDTO, error)
	GetGradingQueue(ctx context.Context, testID uint) ([]dto.TestAttemptSummaryDTO, error)
	GetResultsSummary(ctx context.Context, testID uint) (*dto.TestResultsSummaryDTO, error)
	GradeAttempt(ctx context.Context, attemptID uint, req dto.GradeAttemptDTO) (*dto.TestAttemptResultDTO, error)
}

type adminTestService struct {
	testRepo  repository.TestRepository
	attempts  TestAttemptService
	presenter *ResultPresenter
}

func NewAdminTestService(testRepo repository.TestRepository, attempts TestAttemptService, presenter *ResultPresenter) AdminTestService {
	return &adminTestService{testRepo: testRepo, attempts: attempts, presenter: presenter}
}

func (s *adminTestService) GetTestAttempts(ctx context.Context, testID uint) ([]dto.TestAttemptSummaryDTO, error) {
	attempts, err := s.attempts.GetTestAttempts(ctx, testID)
	if err != nil {
		return nil, err
	}
	return s.presenter.PresentSummaries(attempts), nil
}

// GetGradingQueue lists submitted attempts still waiting for a grader, oldest submission first.
func (s *adminTestService) GetGradingQueue(ctx context.Context, testID uint) ([]dto.TestAttemptSummaryDTO, error) {
	attempts, err := s.attempts.GetTestAttempts(ctx, testID)
	if err != nil {
		return nil, err
	}
	queue := make([]model.TestAttempt, 0, len(attempts))
	for _, a := range attempts {
		if a.State == model.AttemptSubmitted {
			queue = append(queue, a)
		}
	}
	sortBySubmission(queue)
	return s.presenter.PresentSummaries(queue), nil
}

func (s *adminTestService) GetResultsSummary(ctx context.Context, testID uint) (*dto.TestResultsSummaryDTO, error) {
	var (
		test     *model.Test
		attempts []model.TestAttempt
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		t, err := s.testRepo.FindByIDWithQuestions(gctx, testID)
		if err != nil {
			return fmt.Errorf("test %d: %w", testID, err)
		}
		test = t
		return nil
	})
	g.Go(func() error {
		a, err := s.attempts.GetTestAttempts(gctx, testID)
		if err != nil {
			return err
		}
		attempts = a
		return nil
	})
	if err := g.Wait(); err != nil {
		log.Error().Err(err).Uint("testID", testID).Msg("GetResultsSummary: Failed to load test results")
		return nil, err
	}
	return s.presenter.Summarize(test, attempts), nil
}

func (s *adminTestService) GradeAttempt(ctx context.Context, attemptID uint, req dto.GradeAttemptDTO) (*dto.TestAttemptResultDTO, error) {
	marks := make([]model.AnswerMark, 0, len(req.Answers))
	for _, m := range req.Answers {
		marks = append(marks, model.AnswerMark{
			QuestionID:    m.QuestionID,
			MarksObtained: *m.MarksObtained,
			IsCorrect:     m.IsCorrect,
			Feedback:      m.Feedback,
		})
	}

	attempt, err := s.attempts.GradeAttempt(ctx, attemptID, req.GraderID, marks)
	if err != nil {
		return nil, err
	}

	test, err := s.testRepo.FindByIDWithQuestions(ctx, attempt.TestID)
	if err != nil {
		log.Warn().Err(err).Uint("testID", attempt.TestID).Msg("GradeAttempt: Test unavailable, omitting max marks")
		test = nil
	}
	return s.presenter.PresentAttempt(attempt, test), nil
}

func sortBySubmission(attempts []model.TestAttempt) {
	sort.SliceStable(attempts, func(i, j int) bool {
		return attempts[i].SubmittedAt.Before(*attempts[j].SubmittedAt)
	})
}
