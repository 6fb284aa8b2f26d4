package service

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/lshigami/Gradebook/internal/apperr"
	"github.com/lshigami/Gradebook/internal/model"
	"github.com/lshigami/Gradebook/internal/repository"
	"github.com/lshigami/Gradebook/internal/seqguard"
	"github.com/rs/zerolog/log"
)

// TestAttemptService drives an attempt through IN_PROGRESS -> SUBMITTED -> GRADED.
// Local validation and state errors are returned before anything is sent to the
// backend; backend failures are returned as *apperr.RemoteError.
type TestAttemptService interface {
	StartAttempt(ctx context.Context, testID, studentID uint) (*model.TestAttempt, error)
	SubmitAttempt(ctx context.Context, attemptID uint, answers []model.Answer) (*model.TestAttempt, error)
	GradeAttempt(ctx context.Context, attemptID, graderID uint, marks []model.AnswerMark) (*model.TestAttempt, error)
	GetAttempt(ctx context.Context, attemptID uint) (*model.TestAttempt, error)
	GetTestAttempts(ctx context.Context, testID uint) ([]model.TestAttempt, error)
	GetMyAttempts(ctx context.Context, filter model.AttemptFilter) ([]model.TestAttempt, error)
}

type testAttemptService struct {
	testRepo    repository.TestRepository
	attemptRepo repository.TestAttemptRepository
	aggregator  *GradingAggregator
	now         func() time.Time

	guard *seqguard.Guard

	mu       sync.Mutex
	cache    map[uint]cachedAttempt
	pending  map[uint]int
	inFlight map[uint]string
}

type cachedAttempt struct {
	seq     uint64
	attempt *model.TestAttempt
}

func NewTestAttemptService(
	testRepo repository.TestRepository,
	attemptRepo repository.TestAttemptRepository,
	aggregator *GradingAggregator,
) TestAttemptService {
	return &testAttemptService{
		testRepo:    testRepo,
		attemptRepo: attemptRepo,
		aggregator:  aggregator,
		now:         time.Now,
		guard:       seqguard.New(),
		cache:       make(map[uint]cachedAttempt),
		pending:     make(map[uint]int),
		inFlight:    make(map[uint]string),
	}
}

func (s *testAttemptService) StartAttempt(ctx context.Context, testID, studentID uint) (*model.TestAttempt, error) {
	test, err := s.testRepo.FindByIDWithQuestions(ctx, testID)
	if err != nil {
		log.Error().Err(err).Uint("testID", testID).Msg("StartAttempt: Test not found")
		return nil, fmt.Errorf("test %d: %w", testID, err)
	}

	attempt, err := s.attemptRepo.Start(ctx, testID)
	if err != nil {
		log.Error().Err(err).Uint("testID", testID).Uint("studentID", studentID).Msg("StartAttempt: Backend refused to start attempt")
		return nil, fmt.Errorf("start attempt for test %d: %w", testID, err)
	}
	if attempt.State != model.AttemptInProgress {
		return nil, apperr.Remote(http.StatusBadGateway, fmt.Sprintf("backend started attempt %d in state %s", attempt.ID, attempt.State), nil)
	}
	if attempt.StudentID == 0 {
		attempt.StudentID = studentID
	}
	// total_marks is pinned at creation; later edits to the test do not move it.
	if attempt.TotalMarks <= 0 {
		attempt.TotalMarks = testTotalMarks(test)
	}

	seq, done := s.track(attempt.ID)
	defer done()
	log.Info().Uint("attemptID", attempt.ID).Uint("testID", testID).Int("totalMarks", attempt.TotalMarks).Msg("StartAttempt: Attempt started")
	return s.resolve(attempt.ID, seq, attempt, true), nil
}

func (s *testAttemptService) SubmitAttempt(ctx context.Context, attemptID uint, answers []model.Answer) (*model.TestAttempt, error) {
	release, err := s.begin(attemptID, "submit")
	if err != nil {
		return nil, err
	}
	defer release()

	seq, done := s.track(attemptID)
	defer done()

	current, err := s.attemptRepo.FindByID(ctx, attemptID)
	if err != nil {
		log.Error().Err(err).Uint("attemptID", attemptID).Msg("SubmitAttempt: Failed to load attempt")
		return nil, fmt.Errorf("load attempt %d: %w", attemptID, err)
	}
	if err := current.Require("submit", model.AttemptInProgress); err != nil {
		log.Warn().Err(err).Uint("attemptID", attemptID).Msg("SubmitAttempt: Rejected transition")
		return nil, err
	}

	test, err := s.testRepo.FindByIDWithQuestions(ctx, current.TestID)
	if err != nil {
		log.Error().Err(err).Uint("testID", current.TestID).Msg("SubmitAttempt: Failed to load test")
		return nil, fmt.Errorf("load test %d: %w", current.TestID, err)
	}
	if err := validateAnswers(test, answers); err != nil {
		return nil, err
	}

	local := current.Clone()
	if err := local.Submit(answers, s.now()); err != nil {
		return nil, err
	}

	updated, err := s.attemptRepo.Submit(ctx, attemptID, local.Answers)
	if err != nil {
		log.Error().Err(err).Uint("attemptID", attemptID).Msg("SubmitAttempt: Backend rejected submission")
		return nil, fmt.Errorf("submit attempt %d: %w", attemptID, err)
	}
	if updated.State == model.AttemptInProgress {
		log.Warn().Uint("attemptID", attemptID).Msg("SubmitAttempt: Backend echoed an in-progress attempt, using local transition")
		updated = local
	}
	if updated.TotalMarks <= 0 {
		updated.TotalMarks = current.TotalMarks
	}

	log.Info().Uint("attemptID", attemptID).Int("answerCount", len(answers)).Msg("SubmitAttempt: Attempt submitted")
	return s.resolve(attemptID, seq, updated, true), nil
}

func (s *testAttemptService) GradeAttempt(ctx context.Context, attemptID, graderID uint, marks []model.AnswerMark) (*model.TestAttempt, error) {
	release, err := s.begin(attemptID, "grade")
	if err != nil {
		return nil, err
	}
	defer release()

	seq, done := s.track(attemptID)
	defer done()

	current, err := s.attemptRepo.FindByID(ctx, attemptID)
	if err != nil {
		log.Error().Err(err).Uint("attemptID", attemptID).Msg("GradeAttempt: Failed to load attempt")
		return nil, fmt.Errorf("load attempt %d: %w", attemptID, err)
	}
	if err := current.Require("grade", model.AttemptSubmitted); err != nil {
		log.Warn().Err(err).Uint("attemptID", attemptID).Msg("GradeAttempt: Rejected transition")
		return nil, err
	}

	test, err := s.testRepo.FindByIDWithQuestions(ctx, current.TestID)
	if err != nil {
		log.Error().Err(err).Uint("testID", current.TestID).Msg("GradeAttempt: Failed to load test")
		return nil, fmt.Errorf("load test %d: %w", current.TestID, err)
	}
	if current.TotalMarks <= 0 {
		log.Warn().Uint("attemptID", attemptID).Msg("GradeAttempt: Backend attempt has no total marks, using the test's")
		current.TotalMarks = testTotalMarks(test)
	}

	result, err := s.aggregator.Grade(current, test, marks)
	if err != nil {
		log.Warn().Err(err).Uint("attemptID", attemptID).Msg("GradeAttempt: Grading input rejected")
		return nil, err
	}

	local := current.Clone()
	if err := local.MarkGraded(result.GradedAnswers, result.Score, result.IsPassed, graderID, s.now()); err != nil {
		return nil, err
	}

	updated, err := s.attemptRepo.Grade(ctx, attemptID, repository.GradeSubmission{
		Answers:  gradedMarks(result.GradedAnswers),
		GradedBy: graderID,
		Score:    result.Score,
		IsPassed: result.IsPassed,
	})
	if err != nil {
		log.Error().Err(err).Uint("attemptID", attemptID).Uint("graderID", graderID).Msg("GradeAttempt: Backend rejected grading")
		return nil, fmt.Errorf("grade attempt %d: %w", attemptID, err)
	}

	switch {
	case updated.State != model.AttemptGraded:
		log.Warn().Uint("attemptID", attemptID).Str("state", string(updated.State)).Msg("GradeAttempt: Backend echoed an ungraded attempt, using local result")
		updated = local
	case *updated.Score != result.Score || *updated.IsPassed != result.IsPassed || updated.TotalMarks != current.TotalMarks:
		log.Warn().
			Uint("attemptID", attemptID).
			Float64("backendScore", *updated.Score).
			Float64("score", result.Score).
			Msg("GradeAttempt: Backend result disagrees with aggregation, keeping aggregated values")
		updated.Score = local.Score
		updated.IsPassed = local.IsPassed
		updated.TotalMarks = current.TotalMarks
	}

	log.Info().
		Uint("attemptID", attemptID).
		Uint("graderID", graderID).
		Float64("score", result.Score).
		Float64("percentage", result.Percentage).
		Bool("passed", result.IsPassed).
		Msg("GradeAttempt: Attempt graded")
	return s.resolve(attemptID, seq, updated, true), nil
}

func (s *testAttemptService) GetAttempt(ctx context.Context, attemptID uint) (*model.TestAttempt, error) {
	seq, done := s.track(attemptID)
	defer done()
	attempt, err := s.attemptRepo.FindByID(ctx, attemptID)
	if err != nil {
		log.Error().Err(err).Uint("attemptID", attemptID).Msg("GetAttempt: Failed to load attempt")
		return nil, fmt.Errorf("load attempt %d: %w", attemptID, err)
	}
	return s.resolve(attemptID, seq, attempt, false), nil
}

func (s *testAttemptService) GetTestAttempts(ctx context.Context, testID uint) ([]model.TestAttempt, error) {
	attempts, err := s.attemptRepo.FindAllByTest(ctx, testID)
	if err != nil {
		log.Error().Err(err).Uint("testID", testID).Msg("GetTestAttempts: Failed to load attempts")
		return nil, fmt.Errorf("load attempts for test %d: %w", testID, err)
	}
	return attempts, nil
}

func (s *testAttemptService) GetMyAttempts(ctx context.Context, filter model.AttemptFilter) ([]model.TestAttempt, error) {
	if filter.State != "" && !filter.State.Valid() {
		return nil, apperr.Validation("unknown attempt status", string(filter.State))
	}
	attempts, err := s.attemptRepo.FindMine(ctx, filter)
	if err != nil {
		log.Error().Err(err).Interface("filter", filter).Msg("GetMyAttempts: Failed to load attempts")
		return nil, fmt.Errorf("load my attempts: %w", err)
	}
	return attempts, nil
}

// begin rejects a second submit/grade on the same attempt while one is in flight here.
func (s *testAttemptService) begin(attemptID uint, op string) (func(), error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if running, busy := s.inFlight[attemptID]; busy {
		return nil, apperr.InvalidState(op, inFlightStates[running])
	}
	s.inFlight[attemptID] = op
	return func() {
		s.mu.Lock()
		delete(s.inFlight, attemptID)
		s.mu.Unlock()
	}, nil
}

var inFlightStates = map[string]string{
	"submit": "SUBMITTING",
	"grade":  "GRADING",
}

// track tags a request for the attempt. The returned func must be called once the
// request is finished; the attempt's bookkeeping is dropped when none remain.
func (s *testAttemptService) track(attemptID uint) (uint64, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending[attemptID]++
	seq := s.guard.Issue(attemptKey(attemptID))
	return seq, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.pending[attemptID]--
		if s.pending[attemptID] > 0 {
			return
		}
		delete(s.pending, attemptID)
		delete(s.cache, attemptID)
		s.guard.Forget(attemptKey(attemptID))
	}
}

// resolve reconciles overlapping requests for one attempt. A caller never gets a
// state earlier in the lifecycle than one already seen by another request. At the
// same state, a completed submit or grade (write) wins over reads, and otherwise
// the newest request wins.
func (s *testAttemptService) resolve(attemptID uint, seq uint64, fresh *model.TestAttempt, write bool) *model.TestAttempt {
	s.mu.Lock()
	defer s.mu.Unlock()
	if cached, ok := s.cache[attemptID]; ok {
		cachedRank, freshRank := cached.attempt.State.Rank(), fresh.State.Rank()
		if cachedRank > freshRank || (cachedRank == freshRank && !write && cached.seq > seq) {
			log.Debug().Uint("attemptID", attemptID).Uint64("seq", seq).Msg("Discarding superseded attempt response")
			return cached.attempt.Clone()
		}
	}
	s.cache[attemptID] = cachedAttempt{seq: seq, attempt: fresh.Clone()}
	return fresh
}

func attemptKey(id uint) string {
	return "attempt:" + strconv.FormatUint(uint64(id), 10)
}

func testTotalMarks(test *model.Test) int {
	if test.TotalMarks > 0 {
		return test.TotalMarks
	}
	var sum float64
	for _, q := range test.Questions {
		sum += q.Marks
	}
	return int(sum)
}

func validateAnswers(test *model.Test, answers []model.Answer) error {
	if len(answers) == 0 {
		return apperr.Validation("submission must contain at least one answer")
	}
	var details []string
	seen := make(map[uint]bool, len(answers))
	for _, ans := range answers {
		if _, ok := test.QuestionByID(ans.QuestionID); !ok {
			details = append(details, fmt.Sprintf("question %d: not part of test %d", ans.QuestionID, test.ID))
			continue
		}
		if seen[ans.QuestionID] {
			details = append(details, fmt.Sprintf("question %d: answered more than once", ans.QuestionID))
			continue
		}
		seen[ans.QuestionID] = true
	}
	if len(details) > 0 {
		return apperr.Validation("invalid answers", details...)
	}
	return nil
}

func gradedMarks(answers []model.Answer) []model.AnswerMark {
	marks := make([]model.AnswerMark, 0, len(answers))
	for _, ans := range answers {
		marks = append(marks, model.AnswerMark{
			QuestionID:    ans.QuestionID,
			MarksObtained: *ans.MarksObtained,
			IsCorrect:     ans.IsCorrect,
			Feedback:      ans.Feedback,
		})
	}
	return marks
}
