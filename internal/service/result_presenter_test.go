package service

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/lshigami/Gradebook/internal/dto"
	"github.com/lshigami/Gradebook/internal/model"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gradedAttempt(id uint, score float64, passed bool) model.TestAttempt {
	submitted := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC).Add(time.Duration(id) * time.Minute)
	graded := submitted.Add(time.Hour)
	a := model.TestAttempt{
		ID:          id,
		TestID:      1,
		StudentID:   40 + id,
		SubmittedAt: &submitted,
		IsGraded:    true,
		Score:       ptr(score),
		IsPassed:    ptr(passed),
		GradedBy:    ptr(uint(7)),
		GradedAt:    &graded,
		TotalMarks:  100,
		Answers: []model.Answer{
			{QuestionID: 11, Content: "B", MarksObtained: ptr(30.0), IsCorrect: ptr(true)},
			{QuestionID: 13, Content: "x = 4", MarksObtained: ptr(score - 30), IsCorrect: ptr(false), Feedback: "check sign"},
		},
	}
	if err := a.Normalize(); err != nil {
		panic(err)
	}
	return a
}

func submittedAttempt(id uint, at time.Time) model.TestAttempt {
	a := model.TestAttempt{ID: id, TestID: 1, StudentID: 40 + id, SubmittedAt: &at, TotalMarks: 100}
	if err := a.Normalize(); err != nil {
		panic(err)
	}
	return a
}

func TestPresentGradedAttempt(t *testing.T) {
	test, _ := quizFixture()
	p := NewResultPresenter(NewScoreConverterService())
	a := gradedAttempt(1, 72, true)

	resp := p.PresentAttempt(&a, test)
	assert.Equal(t, "GRADED", resp.Status)
	assert.Equal(t, string(BadgePassed), resp.Badge)
	require.NotNil(t, resp.Percentage)
	assert.Equal(t, "72.0", *resp.Percentage)
	assert.Equal(t, 72.0, *resp.Score)
	assert.Equal(t, 100, *resp.TotalMarks)
	require.Len(t, resp.Answers, 2)
	assert.Equal(t, "B", resp.Answers[0].Answer)
	assert.Equal(t, 30.0, resp.Answers[0].MaxMarks)
	assert.Equal(t, 50.0, resp.Answers[1].MaxMarks)
	assert.Equal(t, "check sign", resp.Answers[1].Feedback)
}

func TestPresentAttemptFlagsInconsistentPassFlag(t *testing.T) {
	var buf bytes.Buffer
	prev := log.Logger
	log.Logger = zerolog.New(&buf)
	t.Cleanup(func() { log.Logger = prev })

	test, _ := quizFixture()
	p := NewResultPresenter(NewScoreConverterService())

	consistent := gradedAttempt(1, 72, true)
	assert.True(t, p.checkPassFlag(&consistent, test))
	p.PresentAttempt(&consistent, test)
	assert.Empty(t, buf.String())

	// 72% against a 40% ratio should pass, but the backend recorded a fail.
	inconsistent := gradedAttempt(2, 72, false)
	assert.False(t, p.checkPassFlag(&inconsistent, test))
	buf.Reset()
	resp := p.PresentAttempt(&inconsistent, test)
	assert.Equal(t, string(BadgeFailed), resp.Badge, "recorded flag is still shown")
	assert.Contains(t, buf.String(), "Recorded pass flag disagrees")
	assert.Contains(t, buf.String(), `"attemptID":2`)
}

func TestPresentFailedAttempt(t *testing.T) {
	p := NewResultPresenter(NewScoreConverterService())
	a := gradedAttempt(2, 36, false)

	resp := p.PresentAttempt(&a, nil)
	assert.Equal(t, string(BadgeFailed), resp.Badge)
	assert.Equal(t, "36.0", *resp.Percentage)
	assert.Equal(t, 0.0, resp.Answers[0].MaxMarks)
}

func TestPresentUngradedAttemptHidesScore(t *testing.T) {
	p := NewResultPresenter(NewScoreConverterService())
	at := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	a := submittedAttempt(3, at)

	resp := p.PresentAttempt(&a, nil)
	assert.Equal(t, "SUBMITTED", resp.Status)
	assert.Equal(t, string(BadgePending), resp.Badge)
	assert.Equal(t, &at, resp.SubmittedAt)
	assert.Nil(t, resp.Score)
	assert.Nil(t, resp.TotalMarks)
	assert.Nil(t, resp.Percentage)
	assert.Nil(t, resp.IsPassed)
	assert.Empty(t, resp.Answers)
}

func TestSummarize(t *testing.T) {
	test, _ := quizFixture()
	p := NewResultPresenter(NewScoreConverterService())
	inProgress := model.TestAttempt{ID: 9, TestID: 1, TotalMarks: 100}
	require.NoError(t, inProgress.Normalize())

	summary := p.Summarize(test, []model.TestAttempt{
		gradedAttempt(1, 72, true),
		gradedAttempt(2, 36, false),
		gradedAttempt(3, 90, true),
		submittedAttempt(4, time.Now()),
		inProgress,
	})

	assert.Equal(t, "40.0", summary.PassingPercentage)
	assert.Equal(t, 5, summary.Attempts)
	assert.Equal(t, 1, summary.InProgress)
	assert.Equal(t, 1, summary.PendingGrading)
	assert.Equal(t, 3, summary.Graded)
	assert.Equal(t, 2, summary.Passed)
	assert.Equal(t, 1, summary.Failed)
	require.NotNil(t, summary.AveragePercentage)
	assert.Equal(t, "66.0", *summary.AveragePercentage)
	require.NotNil(t, summary.PassRate)
	assert.Equal(t, "66.7", *summary.PassRate)
}

func TestSummarizeWithoutGradedAttempts(t *testing.T) {
	test, _ := quizFixture()
	p := NewResultPresenter(NewScoreConverterService())

	summary := p.Summarize(test, []model.TestAttempt{submittedAttempt(1, time.Now())})
	assert.Nil(t, summary.AveragePercentage)
	assert.Nil(t, summary.PassRate)
}

func TestPresentTestOmitsAnswerKeys(t *testing.T) {
	test, _ := quizFixture()
	p := NewResultPresenter(NewScoreConverterService())

	resp, err := p.PresentTest(test)
	require.NoError(t, err)
	assert.Equal(t, "Algebra quiz", resp.Title)
	assert.Equal(t, "40.0", resp.PassingPercentage)
	require.Len(t, resp.Questions, 3)
	assert.Equal(t, "multiple_choice", resp.Questions[0].Type)
	assert.Equal(t, 30.0, resp.Questions[0].Marks)
}

func TestGradingQueueOnlyListsSubmittedOldestFirst(t *testing.T) {
	repo := newFakeAttemptRepo()
	early := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)
	late := early.Add(2 * time.Hour)
	repo.put(&model.TestAttempt{ID: 1, TestID: 1, TotalMarks: 100})
	s2 := submittedAttempt(2, late)
	repo.put(&s2)
	s3 := submittedAttempt(3, early)
	repo.put(&s3)
	g4 := gradedAttempt(4, 50, true)
	repo.put(&g4)

	test, _ := quizFixture()
	testRepo := &fakeTestRepo{tests: map[uint]*model.Test{1: test}}
	converter := NewScoreConverterService()
	attempts := NewTestAttemptService(testRepo, repo, NewGradingAggregator(converter))
	admin := NewAdminTestService(testRepo, attempts, NewResultPresenter(converter))

	queue, err := admin.GetGradingQueue(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, queue, 2)
	assert.Equal(t, uint(3), queue[0].ID)
	assert.Equal(t, uint(2), queue[1].ID)
	for _, row := range queue {
		assert.Equal(t, string(BadgePending), row.Badge)
		assert.Nil(t, row.Percentage)
	}

	summary, err := admin.GetResultsSummary(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 4, summary.Attempts)
	assert.Equal(t, 2, summary.PendingGrading)
}

func TestAdminGradeAttemptPresentsResult(t *testing.T) {
	repo := newFakeAttemptRepo()
	s := submittedAttempt(5, time.Now())
	s.Answers = quizAnswers()
	repo.put(&s)

	test, _ := quizFixture()
	testRepo := &fakeTestRepo{tests: map[uint]*model.Test{1: test}}
	converter := NewScoreConverterService()
	attempts := NewTestAttemptService(testRepo, repo, NewGradingAggregator(converter))
	admin := NewAdminTestService(testRepo, attempts, NewResultPresenter(converter))

	resp, err := admin.GradeAttempt(context.Background(), 5, dto.GradeAttemptDTO{
		GraderID: 7,
		Answers: []dto.AnswerMarkDTO{
			{QuestionID: 11, MarksObtained: ptr(30.0)},
			{QuestionID: 12, MarksObtained: ptr(0.0)},
			{QuestionID: 13, MarksObtained: ptr(8.0), IsCorrect: ptr(false)},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, string(BadgeFailed), resp.Badge)
	assert.Equal(t, "38.0", *resp.Percentage)
}

func TestUserSubmitAndResult(t *testing.T) {
	test, _ := quizFixture()
	testRepo := &fakeTestRepo{tests: map[uint]*model.Test{1: test}}
	repo := newFakeAttemptRepo()
	converter := NewScoreConverterService()
	attempts := NewTestAttemptService(testRepo, repo, NewGradingAggregator(converter))
	user := NewUserTestService(testRepo, attempts, NewResultPresenter(converter))
	ctx := context.Background()

	started, err := user.StartAttempt(ctx, 1, 42)
	require.NoError(t, err)
	assert.Equal(t, "IN_PROGRESS", started.Status)

	submitted, err := user.SubmitAttempt(ctx, started.ID, dto.TestAttemptSubmitDTO{Answers: []dto.AnswerSubmitDTO{
		{QuestionID: 11, Answer: "B"},
		{QuestionID: 13, Answer: "x = 4"},
	}})
	require.NoError(t, err)
	assert.Equal(t, "SUBMITTED", submitted.Status)

	result, err := user.GetAttemptResult(ctx, started.ID)
	require.NoError(t, err)
	assert.Equal(t, string(BadgePending), result.Badge)
	assert.Nil(t, result.Score)

	mine, err := user.GetMyAttempts(ctx, model.AttemptFilter{State: model.AttemptSubmitted})
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, started.ID, mine[0].ID)
}
