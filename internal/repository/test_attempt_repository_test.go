package repository

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/lshigami/Gradebook/internal/apperr"
	"github.com/lshigami/Gradebook/internal/gateway"
	"github.com/lshigami/Gradebook/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBackend(t *testing.T, handler http.HandlerFunc) *gateway.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return gateway.NewClientWithHTTPClient(srv.URL, srv.Client())
}

func TestFindByIDNormalizesState(t *testing.T) {
	client := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/attempts/5", r.URL.Path)
		_, _ = io.WriteString(w, `{"success":true,"data":{
			"id":5,"test_id":1,"student_id":42,"started_at":"2024-05-01T09:00:00Z",
			"submitted_at":"2024-05-01T09:40:00Z","is_graded":false,
			"score":0,"is_passed":false,"total_marks":100}}`)
	})
	repo := NewTestAttemptRepository(client)

	a, err := repo.FindByID(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, model.AttemptSubmitted, a.State)
	assert.Nil(t, a.Score, "placeholder zero score of an ungraded attempt is dropped")
	assert.Nil(t, a.IsPassed)
	assert.Equal(t, 100, a.TotalMarks)
}

func TestFindByIDRejectsInconsistentAttempt(t *testing.T) {
	client := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"data":{"id":5,"is_graded":true,"score":50,"is_passed":true}}`)
	})
	repo := NewTestAttemptRepository(client)

	_, err := repo.FindByID(context.Background(), 5)
	require.Error(t, err)
	assert.Equal(t, http.StatusBadGateway, apperr.HTTPStatus(err))
}

func TestFindMineSendsFilter(t *testing.T) {
	client := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/attempts/me", r.URL.Path)
		assert.Equal(t, "3", r.URL.Query().Get("test_id"))
		assert.Equal(t, "graded", r.URL.Query().Get("status"))
		_, _ = io.WriteString(w, `{"data":[{"id":1,"test_id":3,"submitted_at":"2024-05-01T09:40:00Z","is_graded":true,"score":80,"is_passed":true,"total_marks":100}]}`)
	})
	repo := NewTestAttemptRepository(client)

	testID := uint(3)
	attempts, err := repo.FindMine(context.Background(), model.AttemptFilter{TestID: &testID, State: model.AttemptGraded})
	require.NoError(t, err)
	require.Len(t, attempts, 1)
	assert.Equal(t, model.AttemptGraded, attempts[0].State)
	assert.Equal(t, 80.0, *attempts[0].Score)
}

func TestGradePostsSubmission(t *testing.T) {
	client := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/attempts/5/grade", r.URL.Path)
		var req GradeSubmission
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, uint(7), req.GradedBy)
		assert.Equal(t, 72.0, req.Score)
		assert.True(t, req.IsPassed)
		require.Len(t, req.Answers, 1)

		now := time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC).Format(time.RFC3339)
		resp := map[string]any{"data": map[string]any{
			"id": 5, "test_id": 1, "submitted_at": now, "is_graded": true,
			"score": req.Score, "is_passed": req.IsPassed, "total_marks": 100, "graded_by": req.GradedBy,
		}}
		_ = json.NewEncoder(w).Encode(resp)
	})
	repo := NewTestAttemptRepository(client)

	a, err := repo.Grade(context.Background(), 5, GradeSubmission{
		Answers:  []model.AnswerMark{{QuestionID: 11, MarksObtained: 72}},
		GradedBy: 7,
		Score:    72,
		IsPassed: true,
	})
	require.NoError(t, err)
	assert.Equal(t, model.AttemptGraded, a.State)
	assert.Equal(t, uint(7), *a.GradedBy)
}

func TestFindTestSharesConcurrentLoads(t *testing.T) {
	var calls atomic.Int32
	release := make(chan struct{})
	client := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		<-release
		_, _ = io.WriteString(w, `{"data":{"id":1,"title":"Quiz","total_marks":10,"questions":[{"id":11,"type":"short_answer","marks":10}]}}`)
	})
	repo := NewTestRepository(client)

	results := make(chan *model.Test, 2)
	for i := 0; i < 2; i++ {
		go func() {
			test, err := repo.FindByIDWithQuestions(context.Background(), 1)
			assert.NoError(t, err)
			results <- test
		}()
	}
	time.Sleep(50 * time.Millisecond)
	close(release)

	a, b := <-results, <-results
	require.NotNil(t, a)
	require.NotNil(t, b)
	assert.Equal(t, "Quiz", a.Title)
	a.Questions[0].Marks = 99
	assert.Equal(t, 10.0, b.Questions[0].Marks, "callers get independent copies")
	assert.LessOrEqual(t, calls.Load(), int32(2))
}

func TestFindTestCopiesQuestionOptionsAndKeys(t *testing.T) {
	release := make(chan struct{})
	client := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		<-release
		_, _ = io.WriteString(w, `{"data":{"id":2,"title":"MCQ","total_marks":5,"questions":[{"id":21,"type":"multiple_choice","options":["A","B"],"correct_answer":"B","marks":5}]}}`)
	})
	repo := NewTestRepository(client)

	results := make(chan *model.Test, 2)
	for i := 0; i < 2; i++ {
		go func() {
			test, err := repo.FindByIDWithQuestions(context.Background(), 2)
			assert.NoError(t, err)
			results <- test
		}()
	}
	time.Sleep(50 * time.Millisecond)
	close(release)

	a, b := <-results, <-results
	require.NotNil(t, a)
	require.NotNil(t, b)
	a.Questions[0].Options[0] = "Z"
	*a.Questions[0].CorrectAnswer = "A"
	assert.Equal(t, []string{"A", "B"}, b.Questions[0].Options)
	assert.Equal(t, "B", *b.Questions[0].CorrectAnswer)
}

func TestNotificationMutationsHitBackend(t *testing.T) {
	var seen []string
	client := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		seen = append(seen, r.Method+" "+r.URL.Path)
		if r.Method == http.MethodGet {
			assert.Equal(t, "20", r.URL.Query().Get("limit"))
			_, _ = io.WriteString(w, `{"data":[{"id":1,"title":"Graded","is_read":false,"created_at":"2024-05-01T09:00:00Z"}]}`)
			return
		}
		_, _ = io.WriteString(w, `{"success":true}`)
	})
	repo := NewNotificationRepository(client)
	ctx := context.Background()

	items, err := repo.FindRecent(ctx, 20)
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.NoError(t, repo.MarkRead(ctx, 1))
	require.NoError(t, repo.MarkAllRead(ctx))
	require.NoError(t, repo.Delete(ctx, 1))

	assert.Equal(t, []string{
		"GET /notifications",
		"PATCH /notifications/1/read",
		"PATCH /notifications/read-all",
		"DELETE /notifications/1",
	}, seen)
}
