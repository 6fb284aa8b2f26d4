package service

import (
	"context"
	"fmt"

	"github.com/lshigami/Gradebook/internal/dto"
	"github.com/lshigami/Gradebook/internal/model"
	"github.com/lshigami/Gradebook/internal/repository"
	"github.com/rs/zerolog/log"
)

type UserTestService interface {
	GetTestDetails(ctx context.Context, testID uint) (*dto.TestResponseDTO, error)
	StartAttempt(ctx context.Context, testID, studentID uint) (*dto.TestAttemptResultDTO, error)
	SubmitAttempt(ctx context.Context, attemptID uint, req dto.TestAttemptSubmitDTO) (*dto.TestAttemptResultDTO, error)
	GetAttemptResult(ctx context.Context, attemptID uint) (*dto.TestAttemptResultDTO, error)
	GetMyAttempts(ctx context.Context, filter model.AttemptFilter) ([]dto.TestAttemptSummaryDTO, error)
}

type userTestService struct {
	testRepo  repository.TestRepository
	attempts  TestAttemptService
	presenter *ResultPresenter
}

func NewUserTestService(testRepo repository.TestRepository, attempts TestAttemptService, presenter *ResultPresenter) UserTestService {
	return &userTestService{testRepo: testRepo, attempts: attempts, presenter: presenter}
}

func (s *userTestService) GetTestDetails(ctx context.Context, testID uint) (*dto.TestResponseDTO, error) {
	test, err := s.testRepo.FindByIDWithQuestions(ctx, testID)
	if err != nil {
		log.Error().Err(err).Uint("testID", testID).Msg("Failed to get test details from backend")
		return nil, fmt.Errorf("test %d: %w", testID, err)
	}

	resp, err := s.presenter.PresentTest(test)
	if err != nil {
		log.Error().Err(err).Msg("Failed to copy Test model to TestResponseDTO")
		return nil, fmt.Errorf("error preparing test details response: %w", err)
	}
	return resp, nil
}

func (s *userTestService) StartAttempt(ctx context.Context, testID, studentID uint) (*dto.TestAttemptResultDTO, error) {
	attempt, err := s.attempts.StartAttempt(ctx, testID, studentID)
	if err != nil {
		return nil, err
	}
	return s.presenter.PresentAttempt(attempt, nil), nil
}

func (s *userTestService) SubmitAttempt(ctx context.Context, attemptID uint, req dto.TestAttemptSubmitDTO) (*dto.TestAttemptResultDTO, error) {
	answers := make([]model.Answer, 0, len(req.Answers))
	for _, a := range req.Answers {
		answers = append(answers, model.Answer{AttemptID: attemptID, QuestionID: a.QuestionID, Content: a.Answer})
	}
	attempt, err := s.attempts.SubmitAttempt(ctx, attemptID, answers)
	if err != nil {
		return nil, err
	}
	return s.presenter.PresentAttempt(attempt, nil), nil
}

// GetAttemptResult loads the test alongside a graded attempt so each answer can show its max marks.
func (s *userTestService) GetAttemptResult(ctx context.Context, attemptID uint) (*dto.TestAttemptResultDTO, error) {
	attempt, err := s.attempts.GetAttempt(ctx, attemptID)
	if err != nil {
		return nil, err
	}
	if attempt.State != model.AttemptGraded {
		return s.presenter.PresentAttempt(attempt, nil), nil
	}

	test, err := s.testRepo.FindByIDWithQuestions(ctx, attempt.TestID)
	if err != nil {
		log.Warn().Err(err).Uint("testID", attempt.TestID).Msg("GetAttemptResult: Test unavailable, omitting max marks")
		test = nil
	}
	return s.presenter.PresentAttempt(attempt, test), nil
}

func (s *userTestService) GetMyAttempts(ctx context.Context, filter model.AttemptFilter) ([]dto.TestAttemptSummaryDTO, error) {
	attempts, err := s.attempts.GetMyAttempts(ctx, filter)
	if err != nil {
		return nil, err
	}
	return s.presenter.PresentSummaries(attempts), nil
}
